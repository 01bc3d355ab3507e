// Package classifier provides the rule type of a learning classifier system.
//
// A Classifier owns one chromosome (a *bitfield.BitField) plus learned
// metadata. It never interprets the chromosome itself: matching, generality
// and equality are delegated to an injected Representation. Classifiers are
// created through a Factory, which binds the Representation, the optional
// UpdateAlgorithm and the IDSource that hands out serial numbers.
//
// Classifiers are shared by pointer between classifier sets; a change to
// Fitness or Experience is visible through every set holding the pointer.
// None of the types in this package are safe for concurrent mutation.
package classifier
