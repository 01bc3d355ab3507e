package population

import (
	"fmt"

	"github.com/hupe1980/lcsgo/classifier"
)

// Macroclassifier stands for Numerosity identical copies of Classifier.
type Macroclassifier struct {
	Classifier *classifier.Classifier
	Numerosity int
}

// NewMacroclassifier returns a macroclassifier for c. A numerosity below 1
// is raised to 1.
func NewMacroclassifier(c *classifier.Classifier, numerosity int) *Macroclassifier {
	if numerosity < 1 {
		numerosity = 1
	}
	return &Macroclassifier{Classifier: c, Numerosity: numerosity}
}

// Equal reports whether the wrapped classifier is structurally equal to c.
func (m *Macroclassifier) Equal(c *classifier.Classifier) bool {
	if m == nil || m.Classifier == nil {
		return false
	}
	return m.Classifier.Equal(c)
}

// EqualMacro compares the wrapped classifiers. Numerosity is ignored.
func (m *Macroclassifier) EqualMacro(other *Macroclassifier) bool {
	if other == nil {
		return false
	}
	return m.Equal(other.Classifier)
}

func (m *Macroclassifier) String() string {
	return fmt.Sprintf("%s num=%d", m.Classifier, m.Numerosity)
}
