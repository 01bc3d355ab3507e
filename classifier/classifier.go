package classifier

import (
	"fmt"

	"github.com/hupe1980/lcsgo/bitfield"
)

// Classifier is a condition-action rule with learned metadata.
type Classifier struct {
	// Fitness is maintained by the update algorithm.
	Fitness float64

	// Experience counts how often the classifier took part in an update.
	Experience int

	// Timestamp is the last iteration the classifier took part in the GA.
	Timestamp int

	// CanSubsume marks the classifier as eligible to subsume others.
	CanSubsume bool

	chromosome *bitfield.BitField
	serial     uint64
	state      any
	factory    *Factory
	cache      matchCache
}

// Metadata is the learned state of a classifier that survives saving,
// loading and migration.
type Metadata struct {
	Fitness    float64
	Experience int
	Timestamp  int
	CanSubsume bool
}

// Metadata returns a copy of the learned state.
func (c *Classifier) Metadata() Metadata {
	return Metadata{
		Fitness:    c.Fitness,
		Experience: c.Experience,
		Timestamp:  c.Timestamp,
		CanSubsume: c.CanSubsume,
	}
}

func (c *Classifier) setMetadata(md Metadata) {
	c.Fitness = md.Fitness
	c.Experience = md.Experience
	c.Timestamp = md.Timestamp
	c.CanSubsume = md.CanSubsume
}

// Chromosome returns the chromosome owned by the classifier.
// Changing its bits changes the rule; call ResetMatchCache afterwards.
func (c *Classifier) Chromosome() *bitfield.BitField {
	return c.chromosome
}

// Serial returns the identity of the classifier.
func (c *Classifier) Serial() uint64 {
	return c.serial
}

// UpdateState returns the opaque state created by the update algorithm.
func (c *Classifier) UpdateState() any {
	return c.state
}

// SetUpdateState replaces the opaque update state.
func (c *Classifier) SetUpdateState(state any) {
	c.state = state
}

// Representation returns the representation the classifier was built with.
func (c *Classifier) Representation() Representation {
	return c.factory.rep
}

// IsMatch reports whether the classifier matches inst. Results are cached
// per instance index.
func (c *Classifier) IsMatch(inst Instance) bool {
	switch c.cache.lookup(inst.Index) {
	case MatchHit:
		return true
	case MatchMiss:
		return false
	}
	matched := c.factory.rep.IsMatch(c.chromosome, inst)
	c.cache.record(inst.Index, matched)
	return matched
}

// CachedMatch returns the cached match result for an instance index
// without evaluating the representation.
func (c *Classifier) CachedMatch(index int) MatchState {
	return c.cache.lookup(index)
}

// Coverage returns the fraction of checked instances the classifier matched.
// It is 0 before any instance was checked.
func (c *Classifier) Coverage() float64 {
	checked, matched := c.cache.counts()
	if checked == 0 {
		return 0
	}
	return float64(matched) / float64(checked)
}

// ResetMatchCache forgets all cached match results.
func (c *Classifier) ResetMatchCache() {
	c.cache.reset()
}

// IsMoreGeneral reports whether c is strictly more general than other.
func (c *Classifier) IsMoreGeneral(other *Classifier) bool {
	if other == nil {
		return false
	}
	return c.factory.rep.IsMoreGeneral(c.chromosome, other.chromosome)
}

// Equal reports structural equality as defined by the representation.
// Use Serial to compare identity.
func (c *Classifier) Equal(other *Classifier) bool {
	if other == nil {
		return false
	}
	return c.factory.rep.AreEqual(c.chromosome, other.chromosome)
}

// Classification returns the labels advocated by the classifier.
func (c *Classifier) Classification() []int {
	return c.factory.rep.Classification(c.chromosome)
}

// SetClassification writes the advocated labels into the chromosome and
// drops cached match results.
func (c *Classifier) SetClassification(labels []int) {
	c.factory.rep.SetClassification(c.chromosome, labels)
	c.cache.reset()
}

// Clone returns a copy with a fresh serial, a copied chromosome, zero
// experience, a new update state and an empty match cache. Fitness,
// timestamp and the subsumption flag are carried over.
func (c *Classifier) Clone() *Classifier {
	return c.factory.newClassifier(c.chromosome.Clone(), func(n *Classifier) {
		n.Fitness = c.Fitness
		n.Timestamp = c.Timestamp
		n.CanSubsume = c.CanSubsume
	})
}

// String returns a short human-readable description.
func (c *Classifier) String() string {
	return fmt.Sprintf("#%d %s fit=%.4g exp=%d ts=%d", c.serial, c.chromosome, c.Fitness, c.Experience, c.Timestamp)
}
