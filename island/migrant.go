package island

import (
	"github.com/google/uuid"
	"github.com/hupe1980/lcsgo/bitfield"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/population"
)

// Migrant is a value copy of a macroclassifier in transit between islands.
type Migrant struct {
	Origin     uuid.UUID
	Chromosome *bitfield.BitField
	Numerosity int
	Metadata   classifier.Metadata
}

// NewMigrant copies m. Later changes to m do not reach the migrant.
func NewMigrant(origin uuid.UUID, m *population.Macroclassifier) Migrant {
	return Migrant{
		Origin:     origin,
		Chromosome: m.Classifier.Chromosome().Clone(),
		Numerosity: m.Numerosity,
		Metadata:   m.Classifier.Metadata(),
	}
}

// Materialize builds a classifier from the migrant with f. The result gets
// a serial from f and update state built for the carried metadata.
func (m Migrant) Materialize(f *classifier.Factory) *classifier.Classifier {
	return f.Restore(m.Chromosome.Clone(), m.Metadata)
}
