package population

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/lcsgo/classifier"
)

// ClassifierSet is an ordered collection of macroclassifiers.
//
// The total numerosity always equals the sum of the entries' numerosities.
type ClassifierSet struct {
	macros  []*Macroclassifier
	total   int
	control ControlStrategy
	logger  *slog.Logger
	metrics MetricsCollector
}

// New creates an empty set.
func New(opts ...Option) *ClassifierSet {
	s := &ClassifierSet{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.metrics == nil {
		s.metrics = NoopMetricsCollector{}
	}
	return s
}

// derived returns an uncontrolled set for match sets and filters.
func (s *ClassifierSet) derived(capacity int) *ClassifierSet {
	return &ClassifierSet{
		macros:  make([]*Macroclassifier, 0, capacity),
		logger:  s.logger,
		metrics: NoopMetricsCollector{},
	}
}

// Len returns the number of macroclassifiers.
func (s *ClassifierSet) Len() int {
	return len(s.macros)
}

// TotalNumerosity returns the number of micro-classifiers.
func (s *ClassifierSet) TotalNumerosity() int {
	return s.total
}

// IsEmpty reports whether the set holds no classifiers.
func (s *ClassifierSet) IsEmpty() bool {
	return len(s.macros) == 0
}

// Macroclassifier returns the entry at position i.
func (s *ClassifierSet) Macroclassifier(i int) *Macroclassifier {
	return s.macros[i]
}

// Classifier returns the classifier at position i.
func (s *ClassifierSet) Classifier(i int) *classifier.Classifier {
	return s.macros[i].Classifier
}

// Numerosity returns the numerosity of the entry at position i.
func (s *ClassifierSet) Numerosity(i int) int {
	return s.macros[i].Numerosity
}

// IndexOf returns the position of the entry holding c (by serial), or -1.
func (s *ClassifierSet) IndexOf(c *classifier.Classifier) int {
	if c == nil {
		return -1
	}
	serial := c.Serial()
	for i, m := range s.macros {
		if m.Classifier.Serial() == serial {
			return i
		}
	}
	return -1
}

// All iterates over the entries in order.
// The set must not be modified during iteration.
func (s *ClassifierSet) All() iter.Seq2[int, *Macroclassifier] {
	return func(yield func(int, *Macroclassifier) bool) {
		for i, m := range s.macros {
			if !yield(i, m) {
				return
			}
		}
	}
}

// ControlStrategy returns the strategy bound to the set, or nil.
func (s *ClassifierSet) ControlStrategy() ControlStrategy {
	return s.control
}

// SetControlStrategy binds a control strategy. Pass nil to remove it.
func (s *ClassifierSet) SetControlStrategy(cs ControlStrategy) {
	s.control = cs
}

// Add wraps c with the given numerosity and calls AddClassifier.
func (s *ClassifierSet) Add(c *classifier.Classifier, numerosity int, thorough bool) {
	s.AddClassifier(NewMacroclassifier(c, numerosity), thorough)
}

// AddClassifier adds m to the set.
//
// The total numerosity grows by m.Numerosity in every case. Without
// thorough, m is appended as a new entry. With thorough, the first entry
// that is either a subsumption-eligible generalization of m or structurally
// equal to it absorbs m's numerosity, and m is appended only when no such
// entry exists. The control strategy runs afterwards.
func (s *ClassifierSet) AddClassifier(m *Macroclassifier, thorough bool) {
	s.total += m.Numerosity

	merged := false
	if thorough {
		incoming := m.Classifier
		for _, e := range s.macros {
			c := e.Classifier
			if (c.CanSubsume && c.IsMoreGeneral(incoming)) || c.Equal(incoming) {
				e.Numerosity += m.Numerosity
				merged = true
				break
			}
		}
	}
	if !merged {
		s.macros = append(s.macros, m)
	}

	s.metrics.RecordAdd(m.Numerosity, merged)
	s.runControl()
}

func (s *ClassifierSet) runControl() {
	if s.control == nil {
		return
	}
	before := s.total
	start := time.Now()
	s.control.ControlPopulation(s)
	s.metrics.RecordControl(before-s.total, time.Since(start))
}

// DeleteClassifier removes one micro-classifier of the entry holding c,
// found by serial. It reports false when c is not in the set.
func (s *ClassifierSet) DeleteClassifier(c *classifier.Classifier) bool {
	i := s.IndexOf(c)
	if i < 0 {
		return false
	}
	return s.DeleteClassifierAt(i)
}

// DeleteClassifierAt removes one micro-classifier of the entry at position i.
// Entries whose numerosity drops to zero leave the set. It reports false
// when i is out of range.
func (s *ClassifierSet) DeleteClassifierAt(i int) bool {
	if i < 0 || i >= len(s.macros) {
		return false
	}
	m := s.macros[i]
	removed := m.Numerosity <= 1
	if removed {
		s.removeAt(i)
	} else {
		m.Numerosity--
	}
	s.total--
	s.metrics.RecordDelete(removed)
	return true
}

func (s *ClassifierSet) removeAt(i int) {
	copy(s.macros[i:], s.macros[i+1:])
	s.macros[len(s.macros)-1] = nil
	s.macros = s.macros[:len(s.macros)-1]
}

// GenerateMatchSet returns an uncontrolled set holding, in order, the
// entries whose classifier matches inst. The classifiers are shared with s.
func (s *ClassifierSet) GenerateMatchSet(inst classifier.Instance) *ClassifierSet {
	start := time.Now()
	ms := s.Filter(func(m *Macroclassifier) bool {
		return m.Classifier.IsMatch(inst)
	})
	s.metrics.RecordMatchSet(len(s.macros), len(ms.macros), time.Since(start))
	return ms
}

// Filter returns an uncontrolled set holding, in order, the entries for
// which keep returns true. Classifiers are shared with s; numerosities are
// copied, so deleting through the result leaves s untouched and vice versa.
func (s *ClassifierSet) Filter(keep func(m *Macroclassifier) bool) *ClassifierSet {
	out := s.derived(0)
	for _, m := range s.macros {
		if keep(m) {
			out.macros = append(out.macros, &Macroclassifier{Classifier: m.Classifier, Numerosity: m.Numerosity})
			out.total += m.Numerosity
		}
	}
	return out
}

// Merge adds every entry of other without deduplication. The classifiers
// are shared with other; each merged entry gets its own numerosity so that
// later deletes in one set do not change the other.
func (s *ClassifierSet) Merge(other *ClassifierSet) {
	if other == nil {
		return
	}
	// Snapshot so merging a set into itself terminates.
	macros := append([]*Macroclassifier(nil), other.macros...)
	for _, m := range macros {
		s.AddClassifier(&Macroclassifier{Classifier: m.Classifier, Numerosity: m.Numerosity}, false)
	}
}

// SelfSubsume compacts the set by popping the first entry and adding it
// back with thorough set, once for every entry present at the start.
// The result depends on the entry order.
func (s *ClassifierSet) SelfSubsume() {
	before := len(s.macros)
	for n := before; n > 0 && len(s.macros) > 0; n-- {
		m := s.macros[0]
		s.removeAt(0)
		s.total -= m.Numerosity
		s.AddClassifier(m, true)
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "self-subsumption",
		slog.Int("before", before),
		slog.Int("after", len(s.macros)),
		slog.Int("numerosity", s.total),
	)
}

// String renders one entry per line.
func (s *ClassifierSet) String() string {
	var sb strings.Builder
	for _, m := range s.macros {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
