package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// HarmonicLevelsSize is the byte count of the harmonic level block.
const HarmonicLevelsSize = 2 * HarmonicCount

// HarmonicLevels holds the 64 soft and 64 loud harmonic levels of an
// additive kit.
type HarmonicLevels struct {
	Soft [HarmonicCount]byte `json:"soft"`
	Loud [HarmonicCount]byte `json:"loud"`
}

// ParseHarmonicLevels decodes the 128 level bytes, soft set first.
func ParseHarmonicLevels(data []byte) (*HarmonicLevels, error) {
	if len(data) < HarmonicLevelsSize {
		return nil, &sysex.TooShortError{Expected: HarmonicLevelsSize, Actual: len(data)}
	}
	var l HarmonicLevels
	copy(l.Soft[:], data[:HarmonicCount])
	copy(l.Loud[:], data[HarmonicCount:HarmonicLevelsSize])
	return &l, nil
}

func (l *HarmonicLevels) ToBytes() []byte {
	buf := make([]byte, 0, HarmonicLevelsSize)
	buf = append(buf, l.Soft[:]...)
	buf = append(buf, l.Loud[:]...)
	return buf
}

// HarmonicEnvelopeSize is the byte count of one harmonic envelope.
const HarmonicEnvelopeSize = 8

// EnvelopeSegment is one rate/level stage of a harmonic envelope.
type EnvelopeSegment struct {
	Rate  ranged.Value `json:"rate"`
	Level ranged.Value `json:"level"`
}

// NewEnvelopeSegment returns a zeroed segment.
func NewEnvelopeSegment() EnvelopeSegment {
	return EnvelopeSegment{
		Rate:  ranged.MustNew(EnvelopeRate, 0),
		Level: ranged.MustNew(HarmonicLevel, 0),
	}
}

// HarmonicEnvelope is the four-stage envelope of one harmonic. The
// loop kind is packed into bit 6 of the two decay level bytes on the
// wire: decay1 set and decay2 clear (or both clear) is off, both set
// is loop 1, decay2 alone is loop 2.
type HarmonicEnvelope struct {
	Attack   EnvelopeSegment `json:"attack"`
	Decay1   EnvelopeSegment `json:"decay1"`
	Decay2   EnvelopeSegment `json:"decay2"`
	Release  EnvelopeSegment `json:"release"`
	LoopKind Loop            `json:"loop_kind"`
}

// NewHarmonicEnvelope returns a zeroed envelope.
func NewHarmonicEnvelope() HarmonicEnvelope {
	return HarmonicEnvelope{
		Attack:  NewEnvelopeSegment(),
		Decay1:  NewEnvelopeSegment(),
		Decay2:  NewEnvelopeSegment(),
		Release: NewEnvelopeSegment(),
	}
}

// ParseHarmonicEnvelope decodes the eight envelope bytes.
func ParseHarmonicEnvelope(data []byte) (*HarmonicEnvelope, error) {
	d, err := sysex.NewDecoder(data, HarmonicEnvelopeSize)
	if err != nil {
		return nil, err
	}
	e := HarmonicEnvelope{
		Attack: EnvelopeSegment{
			Rate:  d.Ranged(EnvelopeRate, 0),
			Level: d.RangedByte(HarmonicLevel, d.Byte(1)&0x3F),
		},
		Decay1: EnvelopeSegment{
			Rate:  d.Ranged(EnvelopeRate, 2),
			Level: d.RangedByte(HarmonicLevel, d.Byte(3)&0x3F),
		},
		Decay2: EnvelopeSegment{
			Rate:  d.Ranged(EnvelopeRate, 4),
			Level: d.RangedByte(HarmonicLevel, d.Byte(5)&0x3F),
		},
		Release: EnvelopeSegment{
			Rate:  d.Ranged(EnvelopeRate, 6),
			Level: d.RangedByte(HarmonicLevel, d.Byte(7)&0x3F),
		},
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	decay1Bit := data[3]&0x40 != 0
	decay2Bit := data[5]&0x40 != 0
	switch {
	case decay1Bit && decay2Bit:
		e.LoopKind = Loop1
	case !decay1Bit && decay2Bit:
		e.LoopKind = Loop2
	default:
		e.LoopKind = LoopOff
	}
	return &e, nil
}

func (e *HarmonicEnvelope) ToBytes() []byte {
	decay1 := e.Decay1.Level.Byte()
	decay2 := e.Decay2.Level.Byte()
	switch e.LoopKind {
	case Loop1:
		decay1 |= 0x40
		decay2 |= 0x40
	case Loop2:
		decay2 |= 0x40
	}
	return []byte{
		e.Attack.Rate.Byte(), e.Attack.Level.Byte(),
		e.Decay1.Rate.Byte(), decay1,
		e.Decay2.Rate.Byte(), decay2,
		e.Release.Rate.Byte(), e.Release.Level.Byte(),
	}
}
