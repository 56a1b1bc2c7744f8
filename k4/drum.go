package k4

import (
	"errors"
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

const (
	// DrumNoteCount is the number of notes in the drum patch (C1..C6).
	DrumNoteCount = 61
	// DrumCommonSize includes the seven reserved bytes and the
	// checksum.
	DrumCommonSize = 11
	// DrumNoteSize is two interleaved five-byte sources plus the note
	// checksum.
	DrumNoteSize = 11
	// DrumPatchSize is the dump size of the whole drum patch. There is
	// no overall checksum on top of the per-block ones.
	DrumPatchSize = DrumCommonSize + DrumNoteCount*DrumNoteSize
)

// DrumCommon is the drum patch common block.
type DrumCommon struct {
	Channel       ranged.Value `json:"channel"`
	Volume        ranged.Value `json:"volume"`
	VelocityDepth ranged.Value `json:"velocity_depth"`
}

// NewDrumCommon returns the default drum common block.
func NewDrumCommon() DrumCommon {
	return DrumCommon{
		Channel:       ranged.MustNew(Channel, 10),
		Volume:        ranged.MustNew(Level, 100),
		VelocityDepth: ranged.MustNew(Level, 0),
	}
}

// ParseDrumCommon decodes the eleven common bytes. On a checksum
// mismatch the decoded block is returned together with a
// *sysex.ChecksumError.
func ParseDrumCommon(data []byte) (*DrumCommon, error) {
	d, err := sysex.NewDecoder(data, DrumCommonSize)
	if err != nil {
		return nil, err
	}
	c := DrumCommon{
		Channel:       d.RangedInt(Channel, int(d.Byte(0)&0x0F)+1),
		Volume:        d.RangedByte(Level, d.Byte(1)&0x7F),
		VelocityDepth: d.RangedByte(Level, d.Byte(2)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &c, sysex.VerifyChecksum(data[:DrumCommonSize-1], data[DrumCommonSize-1])
}

func (c *DrumCommon) collectData() []byte {
	return []byte{
		byte(c.Channel.Int() - 1),
		c.Volume.Byte(),
		c.VelocityDepth.Byte(),
		0, 0, 0, 0, 0, 0, 0,
	}
}

// ToBytes emits the eleven common bytes, checksum included.
func (c *DrumCommon) ToBytes() []byte {
	data := c.collectData()
	return append(data, sysex.Checksum(data))
}

// DrumSource is one of the two sources of a drum note.
type DrumSource struct {
	Wave  Wave         `json:"wave"`
	Decay ranged.Value `json:"decay"`
	Tune  ranged.Value `json:"tune"`
	Level ranged.Value `json:"level"`
}

// NewDrumSource returns a drum source with the default settings.
func NewDrumSource() DrumSource {
	return DrumSource{
		Wave:  Wave{Number: ranged.MustNew(WaveNumber, 1)},
		Decay: ranged.MustNew(Level, 1),
		Tune:  ranged.MustNew(Depth, 0),
		Level: ranged.MustNew(Level, 100),
	}
}

// ParseDrumSource decodes the five gathered source bytes.
func ParseDrumSource(data []byte) (*DrumSource, error) {
	d, err := sysex.NewDecoder(data, 5)
	if err != nil {
		return nil, err
	}
	wave, err := ParseWave(d.Byte(0), d.Byte(1))
	if err != nil {
		return nil, err
	}
	s := DrumSource{
		Wave:  wave,
		Decay: d.RangedByte(Level, d.Byte(2)&0x7F),
		Tune:  d.RangedByte(Depth, d.Byte(3)&0x7F),
		Level: d.RangedByte(Level, d.Byte(4)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *DrumSource) ToBytes() []byte {
	return []byte{
		s.Wave.HighByte(),
		s.Wave.LowByte(),
		s.Decay.Byte(),
		s.Tune.Byte(),
		s.Level.Byte(),
	}
}

// DrumNote is one note of the drum patch: two sources stored
// interleaved, with the submix carried in bits 4..6 of the first
// source's first byte.
type DrumNote struct {
	Submix  Submix     `json:"submix"`
	Source1 DrumSource `json:"source1"`
	Source2 DrumSource `json:"source2"`
}

// NewDrumNote returns a drum note with the default settings.
func NewDrumNote() DrumNote {
	return DrumNote{
		Submix:  SubmixA,
		Source1: NewDrumSource(),
		Source2: NewDrumSource(),
	}
}

// ParseDrumNote decodes the eleven note bytes. On a checksum mismatch
// the decoded note is returned together with a *sysex.ChecksumError.
func ParseDrumNote(data []byte) (*DrumNote, error) {
	if _, err := sysex.NewDecoder(data, DrumNoteSize); err != nil {
		return nil, err
	}

	s1Bytes := sysex.EveryNth(data[:10], 2, 0)
	s2Bytes := sysex.EveryNth(data[:10], 2, 1)

	var n DrumNote
	n.Submix = Submix((s1Bytes[0] >> 4) & 0x07)
	s1Bytes[0] &= 0x0F

	s1, err := ParseDrumSource(s1Bytes)
	if err != nil {
		return nil, err
	}
	n.Source1 = *s1

	s2, err := ParseDrumSource(s2Bytes)
	if err != nil {
		return nil, err
	}
	n.Source2 = *s2

	return &n, sysex.VerifyChecksum(data[:DrumNoteSize-1], data[DrumNoteSize-1])
}

func (n *DrumNote) collectData() []byte {
	s1 := n.Source1.ToBytes()
	s2 := n.Source2.ToBytes()
	s1[0] |= byte(n.Submix) << 4

	buf := make([]byte, 2*len(s1))
	sysex.ScatterNth(buf, s1, 2, 0)
	sysex.ScatterNth(buf, s2, 2, 1)
	return buf
}

// ToBytes emits the eleven note bytes, checksum included.
func (n *DrumNote) ToBytes() []byte {
	data := n.collectData()
	return append(data, sysex.Checksum(data))
}

// DrumPatch is the K4 drum patch: the common block and one note per
// key from C1 to C6.
type DrumPatch struct {
	Common DrumCommon              `json:"common"`
	Notes  [DrumNoteCount]DrumNote `json:"notes"`
}

// NewDrumPatch returns a drum patch with the default settings.
func NewDrumPatch() *DrumPatch {
	p := &DrumPatch{Common: NewDrumCommon()}
	for i := range p.Notes {
		p.Notes[i] = NewDrumNote()
	}
	return p
}

// ParseDrumPatch decodes the whole drum patch. Checksum mismatches in
// the common block or any note are collected into a single error
// wrapping the first one; the decoded patch is returned regardless.
func ParseDrumPatch(data []byte) (*DrumPatch, error) {
	if len(data) < DrumPatchSize {
		return nil, &sysex.TooShortError{Expected: DrumPatchSize, Actual: len(data)}
	}

	var p DrumPatch
	common, err := ParseDrumCommon(data)
	if err != nil && !isChecksum(err) {
		return nil, err
	}
	checksumErr := err
	p.Common = *common

	offset := DrumCommonSize
	for i := 0; i < DrumNoteCount; i++ {
		note, err := ParseDrumNote(data[offset : offset+DrumNoteSize])
		if err != nil {
			if !isChecksum(err) {
				return nil, fmt.Errorf("drum note %d: %w", i, err)
			}
			if checksumErr == nil {
				checksumErr = fmt.Errorf("drum note %d: %w", i, err)
			}
		}
		p.Notes[i] = *note
		offset += DrumNoteSize
	}

	return &p, checksumErr
}

// ToBytes emits the full drum patch dump form.
func (p *DrumPatch) ToBytes() []byte {
	buf := make([]byte, 0, DrumPatchSize)
	buf = append(buf, p.Common.ToBytes()...)
	for i := range p.Notes {
		buf = append(buf, p.Notes[i].ToBytes()...)
	}
	return buf
}

func isChecksum(err error) bool {
	var ce *sysex.ChecksumError
	return errors.As(err, &ce)
}
