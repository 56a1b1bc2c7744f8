package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// AdditiveWave is the wave number that marks a source as additive.
const AdditiveWave = 512

// KeyScalingToPitch selects how far key scaling bends the pitch.
type KeyScalingToPitch byte

const (
	KSZeroCent KeyScalingToPitch = iota
	KSTwentyFiveCent
	KSThirtyThreeCent
	KSFiftyCent
)

func (k KeyScalingToPitch) String() string {
	switch k {
	case KSZeroCent:
		return "0 cent"
	case KSTwentyFiveCent:
		return "25 cent"
	case KSThirtyThreeCent:
		return "33 cent"
	case KSFiftyCent:
		return "50 cent"
	}
	return "?"
}

// PitchEnvelopeSize is the byte count of the pitch envelope.
const PitchEnvelopeSize = 6

// PitchEnvelope shapes the pitch of a source over time.
type PitchEnvelope struct {
	Start       ranged.Value `json:"start"`
	AttackTime  ranged.Value `json:"attack_time"`
	AttackLevel ranged.Value `json:"attack_level"`
	DecayTime   ranged.Value `json:"decay_time"`
	TimeVel     ranged.Value `json:"time_vel"`
	LevelVel    ranged.Value `json:"level_vel"`
}

// NewPitchEnvelope returns a flat pitch envelope.
func NewPitchEnvelope() PitchEnvelope {
	return PitchEnvelope{
		Start:       ranged.MustNew(EnvelopeLevel, 0),
		AttackTime:  ranged.MustNew(EnvelopeTime, 0),
		AttackLevel: ranged.MustNew(EnvelopeLevel, 0),
		DecayTime:   ranged.MustNew(EnvelopeTime, 0),
		TimeVel:     ranged.MustNew(EnvelopeLevel, 0),
		LevelVel:    ranged.MustNew(EnvelopeLevel, 0),
	}
}

// ParsePitchEnvelope decodes the six pitch envelope bytes.
func ParsePitchEnvelope(data []byte) (*PitchEnvelope, error) {
	d, err := sysex.NewDecoder(data, PitchEnvelopeSize)
	if err != nil {
		return nil, err
	}
	e := PitchEnvelope{
		Start:       d.Ranged(EnvelopeLevel, 0),
		AttackTime:  d.Ranged(EnvelopeTime, 1),
		AttackLevel: d.Ranged(EnvelopeLevel, 2),
		DecayTime:   d.Ranged(EnvelopeTime, 3),
		TimeVel:     d.Ranged(EnvelopeLevel, 4),
		LevelVel:    d.Ranged(EnvelopeLevel, 5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *PitchEnvelope) ToBytes() []byte {
	return []byte{
		e.Start.Byte(),
		e.AttackTime.Byte(),
		e.AttackLevel.Byte(),
		e.DecayTime.Byte(),
		e.TimeVel.Byte(),
		e.LevelVel.Byte(),
	}
}

// OscillatorSize is the byte count of the oscillator block.
const OscillatorSize = 12

// Oscillator is the wave selection and pitch block of a source. The
// wave number is stored on the wire in ten bits split across two
// bytes, MSB first; wave 512 selects the additive engine.
type Oscillator struct {
	Wave          uint16            `json:"wave"`
	Coarse        ranged.Value      `json:"coarse"`
	Fine          ranged.Value      `json:"fine"`
	FixedKey      ranged.Value      `json:"fixed_key"`
	KSToPitch     KeyScalingToPitch `json:"ks_to_pitch"`
	PitchEnvelope PitchEnvelope     `json:"pitch_envelope"`
}

// NewOscillator returns a PCM oscillator with the default settings.
func NewOscillator() Oscillator {
	return Oscillator{
		Wave:          384,
		Coarse:        ranged.MustNew(Coarse, 0),
		Fine:          ranged.MustNew(Fine, 0),
		FixedKey:      ranged.MustNew(Key, 60),
		PitchEnvelope: NewPitchEnvelope(),
	}
}

// NewAdditiveOscillator returns an oscillator set to the additive wave.
func NewAdditiveOscillator() Oscillator {
	o := NewOscillator()
	o.Wave = AdditiveWave
	return o
}

// IsAdditive reports whether the oscillator drives the additive engine.
func (o *Oscillator) IsAdditive() bool { return o.Wave == AdditiveWave }

// ParseOscillator decodes the 12-byte oscillator block.
func ParseOscillator(data []byte) (*Oscillator, error) {
	d, err := sysex.NewDecoder(data, OscillatorSize)
	if err != nil {
		return nil, err
	}
	o := Oscillator{
		Wave:      uint16(d.Byte(0)&0x07)<<7 | uint16(d.Byte(1)&0x7F),
		Coarse:    d.Ranged(Coarse, 2),
		Fine:      d.Ranged(Fine, 3),
		FixedKey:  d.Ranged(Key, 4),
		KSToPitch: KeyScalingToPitch(d.Enum("KS to pitch", d.Byte(5), byte(KSFiftyCent))),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	env, err := ParsePitchEnvelope(data[6:OscillatorSize])
	if err != nil {
		return nil, err
	}
	o.PitchEnvelope = *env
	return &o, nil
}

func (o *Oscillator) ToBytes() []byte {
	buf := make([]byte, 0, OscillatorSize)
	buf = append(buf, byte(o.Wave>>7)&0x07, byte(o.Wave)&0x7F)
	buf = append(buf, o.Coarse.Byte(), o.Fine.Byte(), o.FixedKey.Byte(), byte(o.KSToPitch))
	buf = append(buf, o.PitchEnvelope.ToBytes()...)
	return buf
}
