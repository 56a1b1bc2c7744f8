// Package ranged provides bounded integer parameter values.
//
// Synth parameters live in closed integer ranges and are stored on the
// wire as a single data byte, usually with a fixed offset: depths in
// -50..50 are stored as 0..100, signed levels in -63..63 as 1..127,
// 1-based patch numbers as 0-based bytes. A Kind describes one such
// category; a Value is an integer checked against its Kind when it is
// constructed, so encoding can never produce an out-of-range byte.
package ranged

import (
	"fmt"
	"strconv"
)

// Kind describes one parameter category: its closed range and the
// offset added to the wire byte when decoding (and subtracted again
// when encoding).
type Kind struct {
	Name string
	Min  int
	Max  int
	Bias int
}

// RangeError reports a value outside its category's range.
type RangeError struct {
	Kind  *Kind
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %d out of range %d..%d",
		e.Kind.Name, e.Value, e.Kind.Min, e.Kind.Max)
}

// Value is an integer known to lie inside its Kind's range. Construct
// one through New, MustNew or FromByte; the zero Value has no Kind and
// encodes as 0x00.
type Value struct {
	kind *Kind
	n    int
}

// New returns a Value of kind k, or a *RangeError if n lies outside
// the kind's range.
func New(k *Kind, n int) (Value, error) {
	if n < k.Min || n > k.Max {
		return Value{}, &RangeError{Kind: k, Value: n}
	}
	return Value{kind: k, n: n}, nil
}

// MustNew is New for values known to be in range; it panics on a
// range error.
func MustNew(k *Kind, n int) Value {
	v, err := New(k, n)
	if err != nil {
		panic(err)
	}
	return v
}

// FromByte decodes a wire byte into a Value of kind k.
func FromByte(k *Kind, b byte) (Value, error) {
	return New(k, int(b)-k.Bias)
}

// Int returns the model-facing integer.
func (v Value) Int() int { return v.n }

// Byte returns the wire representation, inverting the decode bias.
func (v Value) Byte() byte {
	if v.kind == nil {
		return 0
	}
	return byte(v.n + v.kind.Bias)
}

// Kind returns the value's category, or nil for the zero Value.
func (v Value) Kind() *Kind { return v.kind }

func (v Value) String() string { return strconv.Itoa(v.n) }

// MarshalJSON emits the plain integer, so model structs holding
// Values serialize the way a struct of ints would.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(v.n)), nil
}
