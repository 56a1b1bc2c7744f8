// Package sysex holds the codec machinery shared by both dialect
// packages: the entity contract, the data checksum, the stride
// gather/scatter used for interleaved multi-voice blocks, fixed-width
// name handling and the error kinds a decode can surface.
//
// A dump payload here is the bytes between the SysEx frame and the end
// marker, with the manufacturer header already consumed; framing and
// transport are the caller's business.
package sysex

import "strings"

// Entity is implemented by every data object that can be written back
// to a dump. For each entity type X the owning package provides a
// ParseX function and a size constant; ToBytes emits exactly that many
// bytes and ParseX consumes exactly that many.
type Entity interface {
	ToBytes() []byte
}

// Checksum computes the data checksum used by both dialects: the sum
// of the body bytes plus 0xA5, masked to seven bits.
func Checksum(body []byte) byte {
	var sum int
	for _, b := range body {
		sum += int(b)
	}
	return byte((sum + 0xA5) & 0x7F)
}

// VerifyChecksum compares the stored trailing checksum against the one
// computed over body and returns a *ChecksumError on mismatch.
func VerifyChecksum(body []byte, stored byte) error {
	if c := Checksum(body); c != stored {
		return &ChecksumError{Computed: c, Stored: stored}
	}
	return nil
}

// EveryNth gathers data[offset], data[offset+stride], ... Interleaved
// blocks store byte k of voice i at position k*stride+i, so gathering
// with offset i yields voice i's contiguous bytes.
func EveryNth(data []byte, stride, offset int) []byte {
	out := make([]byte, 0, (len(data)+stride-1)/stride)
	for i := offset; i < len(data); i += stride {
		out = append(out, data[i])
	}
	return out
}

// ScatterNth writes src back into dst at dst[offset], dst[offset+stride],
// ... It is the inverse of EveryNth over a dst of len(src)*stride bytes.
func ScatterNth(dst, src []byte, stride, offset int) {
	for i, b := range src {
		dst[i*stride+offset] = b
	}
}

// ParseName decodes a fixed-width, space-padded ASCII name field,
// trimming the padding. Bytes outside printable ASCII yield an
// *InvalidTextError.
func ParseName(data []byte) (string, error) {
	for i, b := range data {
		if b < 0x20 || b > 0x7E {
			return "", &InvalidTextError{Offset: i, Value: b}
		}
	}
	return strings.TrimRight(string(data), " "), nil
}

// NameBytes encodes name into a width-byte field, padding with spaces
// and truncating anything longer.
func NameBytes(name string, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		if i < len(name) {
			out[i] = name[i]
		} else {
			out[i] = ' '
		}
	}
	return out
}
