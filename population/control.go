package population

// ControlStrategy keeps a population within bounds.
//
// ControlPopulation runs after every AddClassifier. It may delete any number
// of micro-classifiers through the set's delete methods but must terminate.
type ControlStrategy interface {
	ControlPopulation(set *ClassifierSet)
}

// ControlFunc adapts a function to the ControlStrategy interface.
type ControlFunc func(set *ClassifierSet)

// ControlPopulation implements ControlStrategy.
func (f ControlFunc) ControlPopulation(set *ClassifierSet) { f(set) }
