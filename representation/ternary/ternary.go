package ternary

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/hupe1980/lcsgo/bitfield"
	"github.com/hupe1980/lcsgo/classifier"
)

// ErrInvalidRule is returned by Parse for malformed rule strings.
var ErrInvalidRule = errors.New("ternary: invalid rule")

// Representation implements classifier.Representation.
type Representation struct {
	attributes  int
	classes     int
	actionWidth int
	threshold   float64
}

var _ classifier.Representation = (*Representation)(nil)

// New returns a representation for the given number of binary attributes
// and classes. Attribute values at or above 0.5 read as 1.
func New(attributes, classes int) *Representation {
	if attributes < 0 {
		attributes = 0
	}
	if classes < 1 {
		classes = 1
	}
	width := bits.Len(uint(classes - 1))
	if width == 0 {
		width = 1
	}
	return &Representation{
		attributes:  attributes,
		classes:     classes,
		actionWidth: width,
		threshold:   0.5,
	}
}

// Attributes returns the number of condition attributes.
func (r *Representation) Attributes() int { return r.attributes }

// Classes returns the number of classes.
func (r *Representation) Classes() int { return r.classes }

// ChromosomeSize implements classifier.Representation.
func (r *Representation) ChromosomeSize() int {
	return 2*r.attributes + r.actionWidth
}

func (r *Representation) actionOffset() int {
	return 2 * r.attributes
}

func (r *Representation) action(c *bitfield.BitField) int32 {
	return c.GetIntAt(r.actionOffset(), r.actionWidth)
}

func (r *Representation) value(inst classifier.Instance, i int) bool {
	return i < len(inst.Values) && inst.Values[i] >= r.threshold
}

// IsMatch implements classifier.Representation.
func (r *Representation) IsMatch(c *bitfield.BitField, inst classifier.Instance) bool {
	for i := 0; i < r.attributes; i++ {
		if c.Get(2*i) && c.Get(2*i+1) != r.value(inst, i) {
			return false
		}
	}
	return true
}

// IsMoreGeneral implements classifier.Representation. a is more general
// than b when both advocate the same action, every specific attribute of a
// is specific in b with the same value, and a has fewer specific attributes.
func (r *Representation) IsMoreGeneral(a, b *bitfield.BitField) bool {
	if r.action(a) != r.action(b) {
		return false
	}
	specA, specB := 0, 0
	for i := 0; i < r.attributes; i++ {
		sa, sb := a.Get(2*i), b.Get(2*i)
		if sb {
			specB++
		}
		if !sa {
			continue
		}
		specA++
		if !sb || a.Get(2*i+1) != b.Get(2*i+1) {
			return false
		}
	}
	return specA < specB
}

// AreEqual implements classifier.Representation. Value bits under a
// don't-care do not take part.
func (r *Representation) AreEqual(a, b *bitfield.BitField) bool {
	if r.action(a) != r.action(b) {
		return false
	}
	for i := 0; i < r.attributes; i++ {
		sa := a.Get(2 * i)
		if sa != b.Get(2*i) {
			return false
		}
		if sa && a.Get(2*i+1) != b.Get(2*i+1) {
			return false
		}
	}
	return true
}

// Classification implements classifier.Representation.
func (r *Representation) Classification(c *bitfield.BitField) []int {
	return []int{int(r.action(c))}
}

// SetClassification implements classifier.Representation. Only the first
// label is used; an empty slice leaves the action unchanged.
func (r *Representation) SetClassification(c *bitfield.BitField, labels []int) {
	if len(labels) == 0 {
		return
	}
	c.SetIntAt(r.actionOffset(), r.actionWidth, int32(labels[0]))
}

// Specificity returns the number of specific attributes of c.
func (r *Representation) Specificity(c *bitfield.BitField) int {
	n := 0
	for i := 0; i < r.attributes; i++ {
		if c.Get(2 * i) {
			n++
		}
	}
	return n
}

// Float64Source is satisfied by *math/rand.Rand and *math/rand/v2.Rand.
type Float64Source interface {
	Float64() float64
}

// Cover builds a chromosome that matches inst and advocates label. Each
// attribute becomes a don't-care with probability dontCare.
func (r *Representation) Cover(inst classifier.Instance, label int, dontCare float64, rng Float64Source) *bitfield.BitField {
	c := bitfield.New(r.ChromosomeSize())
	for i := 0; i < r.attributes; i++ {
		if rng.Float64() < dontCare {
			continue
		}
		c.Set(2 * i)
		c.SetTo(2*i+1, r.value(inst, i))
	}
	r.SetClassification(c, []int{label})
	return c
}

// Format renders c as condition characters in attribute order, a colon and
// the action, e.g. "01#:1".
func (r *Representation) Format(c *bitfield.BitField) string {
	var sb strings.Builder
	sb.Grow(r.attributes + 4)
	for i := 0; i < r.attributes; i++ {
		switch {
		case !c.Get(2 * i):
			sb.WriteByte('#')
		case c.Get(2*i + 1):
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(int(r.action(c))))
	return sb.String()
}

// Parse is the inverse of Format.
func (r *Representation) Parse(s string) (*bitfield.BitField, error) {
	cond, act, ok := strings.Cut(s, ":")
	if !ok || len(cond) != r.attributes {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	label, err := strconv.Atoi(act)
	if err != nil || label < 0 || label >= r.classes {
		return nil, fmt.Errorf("%w: action %q", ErrInvalidRule, act)
	}
	c := bitfield.New(r.ChromosomeSize())
	for i := 0; i < len(cond); i++ {
		switch cond[i] {
		case '#':
		case '0':
			c.Set(2 * i)
		case '1':
			c.Set(2 * i)
			c.Set(2*i + 1)
		default:
			return nil, fmt.Errorf("%w: condition %q", ErrInvalidRule, cond)
		}
	}
	r.SetClassification(c, []int{label})
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed rule tables.
func (r *Representation) MustParse(s string) *bitfield.BitField {
	c, err := r.Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
