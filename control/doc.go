// Package control provides population control strategies.
//
// A strategy runs after every add to a population and deletes
// micro-classifiers until the total numerosity is within its limit. Every
// strategy here removes at least one micro-classifier per loop iteration,
// so it always terminates.
package control
