package classifier

import "github.com/hupe1980/lcsgo/bitfield"

// Instance is a training or test sample presented to the rules.
type Instance struct {
	// Index identifies the instance within its dataset and keys the match
	// cache. A negative index disables caching for this instance.
	Index int

	// Values holds the attribute values.
	Values []float64

	// Labels holds the true labels, if known.
	Labels []int
}

// Representation defines the semantics of chromosome bits.
type Representation interface {
	// ChromosomeSize returns the number of bits of a chromosome.
	ChromosomeSize() int

	// IsMatch reports whether the condition of chromosome matches inst.
	IsMatch(chromosome *bitfield.BitField, inst Instance) bool

	// IsMoreGeneral reports whether a is strictly more general than b.
	IsMoreGeneral(a, b *bitfield.BitField) bool

	// AreEqual reports whether a and b encode the same rule.
	AreEqual(a, b *bitfield.BitField) bool

	// Classification returns the labels advocated by chromosome.
	Classification(chromosome *bitfield.BitField) []int

	// SetClassification writes the advocated labels into chromosome.
	SetClassification(chromosome *bitfield.BitField, labels []int)
}

// UpdateAlgorithm owns the per-classifier update state.
//
// The state returned by NewState is opaque to everything except the
// algorithm that created it.
type UpdateAlgorithm interface {
	NewState(c *Classifier) any
}

// UpdateFunc adapts a function to the UpdateAlgorithm interface.
type UpdateFunc func(c *Classifier) any

// NewState implements UpdateAlgorithm.
func (f UpdateFunc) NewState(c *Classifier) any { return f(c) }
