package k4

import (
	"errors"
	"fmt"

	"ksynth/sysex"
)

const (
	// SinglePatchCount is the number of single patches in a bank.
	SinglePatchCount = 64
	// MultiPatchCount is the number of multi patches in a bank.
	MultiPatchCount = 64
	// EffectPatchCount is the number of effect patches in a bank.
	EffectPatchCount = 32

	// BankSize is the dump size of a full bank: all singles, multis,
	// the drum patch and all effects.
	BankSize = SinglePatchCount*SinglePatchSize +
		MultiPatchCount*MultiPatchSize +
		DrumPatchSize +
		EffectPatchCount*EffectPatchSize
)

// ChecksumMismatch records a block whose stored checksum disagreed
// with the computed one during a bank decode.
type ChecksumMismatch struct {
	Block string
	Index int
	Err   error
}

func (m ChecksumMismatch) String() string {
	return fmt.Sprintf("%s %d: %v", m.Block, m.Index, m.Err)
}

// Bank is a full K4 bank. Mismatches holds the checksum faults found
// while decoding; a dump with stale checksums still yields a usable
// bank.
type Bank struct {
	Singles [SinglePatchCount]SinglePatch `json:"singles"`
	Multis  [MultiPatchCount]MultiPatch   `json:"multis"`
	Drum    DrumPatch                     `json:"drum"`
	Effects [EffectPatchCount]EffectPatch `json:"effects"`

	Mismatches []ChecksumMismatch `json:"-"`
}

// NewBank returns a bank filled with default patches.
func NewBank() *Bank {
	b := &Bank{Drum: *NewDrumPatch()}
	for i := range b.Singles {
		b.Singles[i] = *NewSinglePatch()
	}
	for i := range b.Multis {
		b.Multis[i] = *NewMultiPatch()
	}
	for i := range b.Effects {
		b.Effects[i] = *NewEffectPatch()
	}
	return b
}

// ParseBank decodes a full bank dump. Structural errors abort the
// decode; checksum mismatches are collected into Bank.Mismatches and
// the walk continues.
func ParseBank(data []byte) (*Bank, error) {
	if len(data) < BankSize {
		return nil, &sysex.TooShortError{Expected: BankSize, Actual: len(data)}
	}

	var bank Bank
	offset := 0

	record := func(block string, index int, err error) error {
		var ce *sysex.ChecksumError
		if err == nil {
			return nil
		}
		if errors.As(err, &ce) {
			bank.Mismatches = append(bank.Mismatches, ChecksumMismatch{Block: block, Index: index, Err: err})
			return nil
		}
		return fmt.Errorf("%s %d: %w", block, index, err)
	}

	for i := 0; i < SinglePatchCount; i++ {
		p, err := ParseSinglePatch(data[offset:])
		if err := record("single", i, err); err != nil {
			return nil, err
		}
		bank.Singles[i] = *p
		offset += SinglePatchSize
	}
	if want := SinglePatchCount * SinglePatchSize; offset != want {
		return nil, &sysex.OffsetError{Expected: want, Actual: offset}
	}

	for i := 0; i < MultiPatchCount; i++ {
		p, err := ParseMultiPatch(data[offset:])
		if err := record("multi", i, err); err != nil {
			return nil, err
		}
		bank.Multis[i] = *p
		offset += MultiPatchSize
	}

	drum, err := ParseDrumPatch(data[offset:])
	if err := record("drum", 0, err); err != nil {
		return nil, err
	}
	bank.Drum = *drum
	offset += DrumPatchSize

	for i := 0; i < EffectPatchCount; i++ {
		p, err := ParseEffectPatch(data[offset:])
		if err := record("effect", i, err); err != nil {
			return nil, err
		}
		bank.Effects[i] = *p
		offset += EffectPatchSize
	}

	if offset != BankSize {
		return nil, &sysex.OffsetError{Expected: BankSize, Actual: offset}
	}
	return &bank, nil
}

// ToBytes emits the full bank dump form.
func (b *Bank) ToBytes() []byte {
	buf := make([]byte, 0, BankSize)
	for i := range b.Singles {
		buf = append(buf, b.Singles[i].ToBytes()...)
	}
	for i := range b.Multis {
		buf = append(buf, b.Multis[i].ToBytes()...)
	}
	buf = append(buf, b.Drum.ToBytes()...)
	for i := range b.Effects {
		buf = append(buf, b.Effects[i].ToBytes()...)
	}
	return buf
}
