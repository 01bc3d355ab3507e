package persistence

import (
	"fmt"
	"io"

	"github.com/hupe1980/lcsgo/bitfield"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/codec"
	"github.com/hupe1980/lcsgo/population"
)

// Formatter is implemented by representations that can render a chromosome
// in a human-readable form, such as ternary.Representation.
type Formatter interface {
	Format(chromosome *bitfield.BitField) string
}

// Document is the JSON form of a population.
type Document struct {
	Version         int    `json:"version"`
	TotalNumerosity int    `json:"totalNumerosity"`
	Rules           []Rule `json:"rules"`
}

// Rule is the JSON form of one macroclassifier.
type Rule struct {
	Chromosome string  `json:"chromosome"`
	Rule       string  `json:"rule,omitempty"`
	Numerosity int     `json:"numerosity"`
	Fitness    float64 `json:"fitness"`
	Experience int     `json:"experience"`
	Timestamp  int     `json:"timestamp"`
	CanSubsume bool    `json:"canSubsume"`
}

// NewDocument converts set to its JSON form. Rule is filled in when the
// classifiers' representation implements Formatter.
func NewDocument(set *population.ClassifierSet) *Document {
	doc := &Document{
		Version:         1,
		TotalNumerosity: set.TotalNumerosity(),
		Rules:           make([]Rule, 0, set.Len()),
	}
	for _, m := range set.All() {
		c := m.Classifier
		r := Rule{
			Chromosome: c.Chromosome().String(),
			Numerosity: m.Numerosity,
			Fitness:    c.Fitness,
			Experience: c.Experience,
			Timestamp:  c.Timestamp,
			CanSubsume: c.CanSubsume,
		}
		if f, ok := c.Representation().(Formatter); ok {
			r.Rule = f.Format(c.Chromosome())
		}
		doc.Rules = append(doc.Rules, r)
	}
	return doc
}

// ExportJSON writes set as a JSON Document followed by a newline.
func ExportJSON(w io.Writer, set *population.ClassifierSet, optFns ...Option) error {
	o := applyOptions(optFns)
	return codec.Encode(w, o.codec, NewDocument(set), o.indent)
}

// ImportJSON reads a JSON Document and rebuilds the population.
// Chromosomes are taken from the Chromosome field; Rule is ignored.
func ImportJSON(r io.Reader, factory *classifier.Factory, optFns ...Option) (*population.ClassifierSet, error) {
	o := applyOptions(optFns)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := o.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s unmarshal: %w", ErrCorruptPopulation, o.codec.Name(), err)
	}

	set := population.New(o.setOptions...)
	control := set.ControlStrategy()
	set.SetControlStrategy(nil)

	for i, rule := range doc.Rules {
		if rule.Numerosity < 1 {
			return nil, fmt.Errorf("%w: rule %d: invalid numerosity %d", ErrCorruptPopulation, i, rule.Numerosity)
		}
		c := factory.Restore(bitfield.FromString(rule.Chromosome), classifier.Metadata{
			Fitness:    rule.Fitness,
			Experience: rule.Experience,
			Timestamp:  rule.Timestamp,
			CanSubsume: rule.CanSubsume,
		})
		set.Add(c, rule.Numerosity, false)
	}

	set.SetControlStrategy(control)
	return set, nil
}
