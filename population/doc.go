// Package population implements numerosity-compressed rule populations.
//
// A Macroclassifier pairs a shared *classifier.Classifier with a numerosity,
// the number of identical micro-classifiers it stands for. A ClassifierSet is
// an ordered list of macroclassifiers plus their total numerosity. Sets
// derived from a population (match sets, correct sets, niches) hold the same
// *Macroclassifier pointers as the population itself, so updates made
// through one set are visible through all of them.
//
// A ControlStrategy bounds the size of a set. It runs synchronously after
// every AddClassifier call and usually deletes micro-classifiers until the
// total numerosity is back below a limit.
//
// ClassifierSet is not safe for concurrent use.
package population
