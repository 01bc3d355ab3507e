package lcsgo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/lcsgo/blobstore"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/persistence"
	"github.com/hupe1980/lcsgo/population"
)

// System binds a representation with its update algorithm, control
// strategy and checkpoint store.
type System struct {
	factory *classifier.Factory
	opts    options
	logger  *Logger
}

// New creates a System for rep.
func New(rep classifier.Representation, optFns ...Option) (*System, error) {
	if rep == nil {
		return nil, ErrNilRepresentation
	}
	o := applyOptions(optFns)

	var fopts []classifier.FactoryOption
	if o.updater != nil {
		fopts = append(fopts, classifier.WithUpdateAlgorithm(o.updater))
	}
	if o.ids != nil {
		fopts = append(fopts, classifier.WithIDSource(o.ids))
	}

	return &System{
		factory: classifier.NewFactory(rep, fopts...),
		opts:    o,
		logger:  o.logger,
	}, nil
}

// Factory returns the classifier factory.
func (s *System) Factory() *classifier.Factory { return s.factory }

// Representation returns the bound representation.
func (s *System) Representation() classifier.Representation { return s.factory.Representation() }

// Logger returns the configured logger.
func (s *System) Logger() *Logger { return s.logger }

// BlobStore returns the checkpoint store, or nil.
func (s *System) BlobStore() blobstore.BlobStore { return s.opts.store }

func (s *System) setOptions(extra []population.Option) []population.Option {
	opts := []population.Option{
		population.WithControlStrategy(s.opts.control),
		population.WithMetricsCollector(s.opts.metricsCollector),
		population.WithLogger(s.logger.Logger),
	}
	return append(opts, extra...)
}

// NewPopulation returns an empty population wired with the System's control
// strategy, metrics collector and logger. extra options are applied last.
func (s *System) NewPopulation(extra ...population.Option) *population.ClassifierSet {
	return population.New(s.setOptions(extra)...)
}

// Compact runs SelfSubsume on set.
func (s *System) Compact(ctx context.Context, set *population.ClassifierSet) {
	before := set.Len()
	set.SelfSubsume()
	s.logger.LogCompact(ctx, before, set.Len(), set.TotalNumerosity())
}

func (s *System) store() (blobstore.BlobStore, error) {
	if s.opts.store == nil {
		return nil, ErrNoBlobStore
	}
	return s.opts.store, nil
}

// Save writes set to the blob store under name.
func (s *System) Save(ctx context.Context, name string, set *population.ClassifierSet) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if name == blobstore.CurrentPointer {
		return fmt.Errorf("save: %q is reserved", name)
	}

	data, err := persistence.Marshal(set, persistence.WithCompression(s.opts.compression))
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	if err != nil {
		err = fmt.Errorf("save %s: %w", name, err)
	}
	s.logger.LogSave(ctx, name, set.Len(), len(data), err)
	return err
}

// Open loads the population stored under name. The returned set is wired
// like NewPopulation. Every chromosome must have the representation's size.
func (s *System) Open(ctx context.Context, name string) (*population.ClassifierSet, error) {
	set, err := s.open(ctx, name)
	if err != nil {
		s.logger.LogOpen(ctx, name, 0, err)
		return nil, err
	}
	s.logger.LogOpen(ctx, name, set.Len(), nil)
	return set, nil
}

func (s *System) open(ctx context.Context, name string) (*population.ClassifierSet, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	data, err := blobstore.Load(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	set, err := persistence.Unmarshal(data, s.factory, persistence.WithSetOptions(s.setOptions(nil)...))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	want := s.factory.Representation().ChromosomeSize()
	for i, m := range set.All() {
		if got := m.Classifier.Chromosome().Len(); got != want {
			return nil, &ErrChromosomeSize{Name: name, Entry: i, Expected: want, Actual: got}
		}
	}
	return set, nil
}

// Commit points the current checkpoint at name. The blob must exist.
func (s *System) Commit(ctx context.Context, name string) error {
	err := s.commit(ctx, name)
	s.logger.LogCheckpoint(ctx, name, err)
	return err
}

func (s *System) commit(ctx context.Context, name string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	b, err := store.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	_ = b.Close()

	if err := store.Put(ctx, blobstore.CurrentPointer, []byte(name)); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// Checkpoint saves set under name and commits it.
func (s *System) Checkpoint(ctx context.Context, name string, set *population.ClassifierSet) error {
	if err := s.Save(ctx, name, set); err != nil {
		return err
	}
	return s.Commit(ctx, name)
}

// Latest returns the name of the committed checkpoint.
func (s *System) Latest(ctx context.Context) (string, error) {
	store, err := s.store()
	if err != nil {
		return "", err
	}
	data, err := blobstore.Load(ctx, store, blobstore.CurrentPointer)
	if errors.Is(err, blobstore.ErrNotFound) {
		return "", ErrNoCheckpoint
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", blobstore.CurrentPointer, err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNoCheckpoint
	}
	return name, nil
}

// OpenLatest loads the committed checkpoint.
func (s *System) OpenLatest(ctx context.Context) (string, *population.ClassifierSet, error) {
	name, err := s.Latest(ctx)
	if err != nil {
		return "", nil, err
	}
	set, err := s.Open(ctx, name)
	if err != nil {
		return "", nil, err
	}
	return name, set, nil
}

// Checkpoints lists the stored checkpoint names in order.
func (s *System) Checkpoints(ctx context.Context) ([]string, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if n != blobstore.CurrentPointer {
			out = append(out, n)
		}
	}
	return out, nil
}
