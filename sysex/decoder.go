package sysex

import "ksynth/ranged"

// Decoder reads fixed-layout fields out of a dump slice. It remembers
// the first error it hits, so parse functions can read every field in
// a straight line and check Err once at the end.
type Decoder struct {
	data []byte
	err  error
}

// NewDecoder wraps data, failing with a *TooShortError if fewer than
// size bytes are available. The decoder only ever sees the first size
// bytes.
func NewDecoder(data []byte, size int) (*Decoder, error) {
	if len(data) < size {
		return nil, &TooShortError{Expected: size, Actual: len(data)}
	}
	return &Decoder{data: data[:size]}, nil
}

// Byte returns the raw byte at off.
func (d *Decoder) Byte(off int) byte { return d.data[off] }

// Bytes returns a copy of size bytes starting at off.
func (d *Decoder) Bytes(off, size int) []byte {
	out := make([]byte, size)
	copy(out, d.data[off:off+size])
	return out
}

// Ranged decodes the byte at off as a value of kind k.
func (d *Decoder) Ranged(k *ranged.Kind, off int) ranged.Value {
	return d.RangedByte(k, d.data[off])
}

// RangedByte decodes b, already extracted from a packed byte, as a
// value of kind k.
func (d *Decoder) RangedByte(k *ranged.Kind, b byte) ranged.Value {
	if d.err != nil {
		return ranged.Value{}
	}
	v, err := ranged.FromByte(k, b)
	if err != nil {
		d.err = err
	}
	return v
}

// RangedInt checks n, already in model units, against kind k.
func (d *Decoder) RangedInt(k *ranged.Kind, n int) ranged.Value {
	if d.err != nil {
		return ranged.Value{}
	}
	v, err := ranged.New(k, n)
	if err != nil {
		d.err = err
	}
	return v
}

// Enum records a *DiscriminantError if b exceeds the largest variant
// of the named field; it returns b either way.
func (d *Decoder) Enum(field string, b, max byte) byte {
	if d.err == nil && b > max {
		d.err = &DiscriminantError{Field: field, Value: b}
	}
	return b
}

// Name decodes a fixed-width name field at off.
func (d *Decoder) Name(off, width int) string {
	if d.err != nil {
		return ""
	}
	s, err := ParseName(d.data[off : off+width])
	if err != nil {
		d.err = err
	}
	return s
}

// Err returns the first field error, or nil.
func (d *Decoder) Err() error { return d.err }
