package k4

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

// AmplifierSize is the per-amplifier byte count inside a single patch.
const AmplifierSize = 11

// Envelope is a DCA envelope.
type Envelope struct {
	Attack  ranged.Value `json:"attack"`
	Decay   ranged.Value `json:"decay"`
	Sustain ranged.Value `json:"sustain"`
	Release ranged.Value `json:"release"`
}

// NewEnvelope returns the default DCA envelope.
func NewEnvelope() Envelope {
	return Envelope{
		Attack:  ranged.MustNew(Level, 54),
		Decay:   ranged.MustNew(Level, 72),
		Sustain: ranged.MustNew(Level, 90),
		Release: ranged.MustNew(Level, 64),
	}
}

// ParseEnvelope decodes four envelope bytes.
func ParseEnvelope(data []byte) (*Envelope, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	e := Envelope{
		Attack:  d.RangedByte(Level, d.Byte(0)&0x7F),
		Decay:   d.RangedByte(Level, d.Byte(1)&0x7F),
		Sustain: d.RangedByte(Level, d.Byte(2)&0x7F),
		Release: d.RangedByte(Level, d.Byte(3)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *Envelope) ToBytes() []byte {
	return []byte{e.Attack.Byte(), e.Decay.Byte(), e.Sustain.Byte(), e.Release.Byte()}
}

func (e *Envelope) String() string {
	return fmt.Sprintf("A=%s D=%s S=%s R=%s", e.Attack, e.Decay, e.Sustain, e.Release)
}

// LevelModulation scales a level by velocity, pressure and key
// scaling.
type LevelModulation struct {
	VelocityDepth   ranged.Value `json:"velocity_depth"`
	PressureDepth   ranged.Value `json:"pressure_depth"`
	KeyScalingDepth ranged.Value `json:"key_scaling_depth"`
}

// ParseLevelModulation decodes three depth bytes.
func ParseLevelModulation(data []byte) (*LevelModulation, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	m := LevelModulation{
		VelocityDepth:   d.Ranged(Depth, 0),
		PressureDepth:   d.Ranged(Depth, 1),
		KeyScalingDepth: d.Ranged(Depth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *LevelModulation) ToBytes() []byte {
	return []byte{m.VelocityDepth.Byte(), m.PressureDepth.Byte(), m.KeyScalingDepth.Byte()}
}

// TimeModulation scales envelope times by velocity and key scaling.
type TimeModulation struct {
	AttackVelocity  ranged.Value `json:"attack_velocity"`
	ReleaseVelocity ranged.Value `json:"release_velocity"`
	KeyScaling      ranged.Value `json:"key_scaling"`
}

// ParseTimeModulation decodes three depth bytes.
func ParseTimeModulation(data []byte) (*TimeModulation, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	m := TimeModulation{
		AttackVelocity:  d.Ranged(Depth, 0),
		ReleaseVelocity: d.Ranged(Depth, 1),
		KeyScaling:      d.Ranged(Depth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *TimeModulation) ToBytes() []byte {
	return []byte{m.AttackVelocity.Byte(), m.ReleaseVelocity.Byte(), m.KeyScaling.Byte()}
}

// Amplifier is the DCA of one source.
type Amplifier struct {
	Level           ranged.Value    `json:"level"`
	Envelope        Envelope        `json:"envelope"`
	LevelModulation LevelModulation `json:"level_modulation"`
	TimeModulation  TimeModulation  `json:"time_modulation"`
}

// NewAmplifier returns an amplifier with the default settings.
func NewAmplifier() Amplifier {
	return Amplifier{
		Level:    ranged.MustNew(Level, 75),
		Envelope: NewEnvelope(),
		LevelModulation: LevelModulation{
			VelocityDepth:   ranged.MustNew(Depth, 15),
			PressureDepth:   ranged.MustNew(Depth, 0),
			KeyScalingDepth: ranged.MustNew(Depth, -6),
		},
		TimeModulation: TimeModulation{
			AttackVelocity:  ranged.MustNew(Depth, 0),
			ReleaseVelocity: ranged.MustNew(Depth, 0),
			KeyScaling:      ranged.MustNew(Depth, 0),
		},
	}
}

// ParseAmplifier decodes the eleven gathered amplifier bytes.
func ParseAmplifier(data []byte) (*Amplifier, error) {
	d, err := sysex.NewDecoder(data, AmplifierSize)
	if err != nil {
		return nil, err
	}

	var a Amplifier
	a.Level = d.RangedByte(Level, d.Byte(0)&0x7F)
	if err := d.Err(); err != nil {
		return nil, err
	}

	env, err := ParseEnvelope(data[1:5])
	if err != nil {
		return nil, err
	}
	a.Envelope = *env

	lm, err := ParseLevelModulation(data[5:8])
	if err != nil {
		return nil, err
	}
	a.LevelModulation = *lm

	tm, err := ParseTimeModulation(data[8:11])
	if err != nil {
		return nil, err
	}
	a.TimeModulation = *tm

	return &a, nil
}

// ToBytes emits the eleven amplifier bytes in gathered order.
func (a *Amplifier) ToBytes() []byte {
	buf := make([]byte, 0, AmplifierSize)
	buf = append(buf, a.Level.Byte())
	buf = append(buf, a.Envelope.ToBytes()...)
	buf = append(buf, a.LevelModulation.ToBytes()...)
	buf = append(buf, a.TimeModulation.ToBytes()...)
	return buf
}
