// Package ternary provides a {0, 1, #} condition representation over binary
// attributes with a single integer action.
//
// Each attribute takes two chromosome bits: bit 2i marks the attribute as
// specific, bit 2i+1 holds the expected value. A non-specific attribute is a
// don't-care (#) and matches any value. The action follows the condition in
// a window just wide enough for the number of classes.
package ternary
