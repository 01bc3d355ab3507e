package classifier

import "github.com/hupe1980/lcsgo/bitfield"

// Factory builds classifiers bound to one representation.
type Factory struct {
	rep     Representation
	updater UpdateAlgorithm
	ids     IDSource
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithUpdateAlgorithm sets the algorithm that creates per-classifier state.
// Without one, classifiers start with a nil update state.
func WithUpdateAlgorithm(u UpdateAlgorithm) FactoryOption {
	return func(f *Factory) {
		f.updater = u
	}
}

// WithIDSource sets the serial number source.
// If nil is passed, a new Counter is used.
func WithIDSource(ids IDSource) FactoryOption {
	return func(f *Factory) {
		f.ids = ids
	}
}

// NewFactory creates a factory for rep. rep must not be nil.
func NewFactory(rep Representation, opts ...FactoryOption) *Factory {
	f := &Factory{rep: rep}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.ids == nil {
		f.ids = NewCounter(0)
	}
	return f
}

// Representation returns the bound representation.
func (f *Factory) Representation() Representation {
	return f.rep
}

// UpdateAlgorithm returns the bound update algorithm, or nil.
func (f *Factory) UpdateAlgorithm() UpdateAlgorithm {
	return f.updater
}

// IDSource returns the serial number source.
func (f *Factory) IDSource() IDSource {
	return f.ids
}

// New returns a classifier with an all-zero chromosome of the
// representation's size.
func (f *Factory) New() *Classifier {
	return f.newClassifier(bitfield.New(f.rep.ChromosomeSize()), nil)
}

// FromBitField returns a classifier owning chromosome.
// The caller must not keep using chromosome afterwards.
func (f *Factory) FromBitField(chromosome *bitfield.BitField) *Classifier {
	if chromosome == nil {
		chromosome = bitfield.New(f.rep.ChromosomeSize())
	}
	return f.newClassifier(chromosome, nil)
}

// Restore returns a classifier owning chromosome with md applied before the
// update algorithm creates its state.
func (f *Factory) Restore(chromosome *bitfield.BitField, md Metadata) *Classifier {
	if chromosome == nil {
		chromosome = bitfield.New(f.rep.ChromosomeSize())
	}
	return f.newClassifier(chromosome, func(c *Classifier) {
		c.setMetadata(md)
	})
}

// FromString returns a classifier whose chromosome is parsed from s,
// most significant bit first.
func (f *Factory) FromString(s string) *Classifier {
	return f.newClassifier(bitfield.FromString(s), nil)
}

// newClassifier assigns the serial, applies init and only then asks the
// update algorithm for state, so the algorithm sees the final metadata.
func (f *Factory) newClassifier(chromosome *bitfield.BitField, init func(*Classifier)) *Classifier {
	c := &Classifier{
		chromosome: chromosome,
		serial:     f.ids.Next(),
		factory:    f,
	}
	if init != nil {
		init(c)
	}
	if f.updater != nil {
		c.state = f.updater.NewState(c)
	}
	return c
}
