package sysex

import (
	"errors"
	"fmt"
)

// ErrUnidentified is returned by the dialect dispatchers when a header
// matches none of their rules.
var ErrUnidentified = errors.New("unidentified dump header")

// TooShortError reports a payload shorter than the layout it claims to
// carry.
type TooShortError struct {
	Expected int
	Actual   int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("not enough data: got %d bytes, need %d", e.Actual, e.Expected)
}

// ChecksumError reports a stored block checksum that disagrees with
// the one computed over the block body. Parsers that detect it still
// return the decoded block, so callers choose whether a mismatch is
// fatal.
type ChecksumError struct {
	Computed byte
	Stored   byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed %#02x, stored %#02x", e.Computed, e.Stored)
}

// DiscriminantError reports a byte that maps to no variant of the
// enumerated field it was read into.
type DiscriminantError struct {
	Field string
	Value byte
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("invalid %s byte %#02x", e.Field, e.Value)
}

// InvalidTextError reports a non-ASCII byte inside a name field.
type InvalidTextError struct {
	Offset int
	Value  byte
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("invalid name byte %#02x at offset %d", e.Value, e.Offset)
}

// OffsetError reports a structural walk that ended up somewhere other
// than the offset the layout promises.
type OffsetError struct {
	Expected int
	Actual   int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset mismatch: at %d, expected %d", e.Actual, e.Expected)
}
