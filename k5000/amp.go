package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// AmplifierSize is the byte count of the amplifier block.
const AmplifierSize = 15

// AmplifierEnvelope shapes the level of a source over time.
type AmplifierEnvelope struct {
	AttackTime  ranged.Value `json:"attack_time"`
	Decay1Time  ranged.Value `json:"decay1_time"`
	Decay1Level ranged.Value `json:"decay1_level"`
	Decay2Time  ranged.Value `json:"decay2_time"`
	Decay2Level ranged.Value `json:"decay2_level"`
	ReleaseTime ranged.Value `json:"release_time"`
}

// NewAmplifierEnvelope returns a flat amplifier envelope.
func NewAmplifierEnvelope() AmplifierEnvelope {
	return AmplifierEnvelope{
		AttackTime:  ranged.MustNew(EnvelopeTime, 0),
		Decay1Time:  ranged.MustNew(EnvelopeTime, 0),
		Decay1Level: ranged.MustNew(EnvelopeTime, 0),
		Decay2Time:  ranged.MustNew(EnvelopeTime, 0),
		Decay2Level: ranged.MustNew(EnvelopeTime, 0),
		ReleaseTime: ranged.MustNew(EnvelopeTime, 0),
	}
}

// ParseAmplifierEnvelope decodes the six envelope bytes. The decay
// levels are unsigned here, unlike in the filter envelope.
func ParseAmplifierEnvelope(data []byte) (*AmplifierEnvelope, error) {
	d, err := sysex.NewDecoder(data, 6)
	if err != nil {
		return nil, err
	}
	e := AmplifierEnvelope{
		AttackTime:  d.Ranged(EnvelopeTime, 0),
		Decay1Time:  d.Ranged(EnvelopeTime, 1),
		Decay1Level: d.Ranged(EnvelopeTime, 2),
		Decay2Time:  d.Ranged(EnvelopeTime, 3),
		Decay2Level: d.Ranged(EnvelopeTime, 4),
		ReleaseTime: d.Ranged(EnvelopeTime, 5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *AmplifierEnvelope) ToBytes() []byte {
	return []byte{
		e.AttackTime.Byte(),
		e.Decay1Time.Byte(),
		e.Decay1Level.Byte(),
		e.Decay2Time.Byte(),
		e.Decay2Level.Byte(),
		e.ReleaseTime.Byte(),
	}
}

// EnvelopeControl is four signed offsets onto the amplifier envelope,
// one block for key scaling and one for velocity.
type EnvelopeControl struct {
	Level       ranged.Value `json:"level"`
	AttackTime  ranged.Value `json:"attack_time"`
	Decay1Time  ranged.Value `json:"decay1_time"`
	ReleaseTime ranged.Value `json:"release_time"`
}

// NewEnvelopeControl returns a zeroed control block.
func NewEnvelopeControl() EnvelopeControl {
	return EnvelopeControl{
		Level:       ranged.MustNew(KeyScaling, 0),
		AttackTime:  ranged.MustNew(ControlTime, 0),
		Decay1Time:  ranged.MustNew(ControlTime, 0),
		ReleaseTime: ranged.MustNew(ControlTime, 0),
	}
}

// ParseEnvelopeControl decodes the four control bytes.
func ParseEnvelopeControl(data []byte) (*EnvelopeControl, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	c := EnvelopeControl{
		Level:       d.Ranged(KeyScaling, 0),
		AttackTime:  d.Ranged(ControlTime, 1),
		Decay1Time:  d.Ranged(ControlTime, 2),
		ReleaseTime: d.Ranged(ControlTime, 3),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *EnvelopeControl) ToBytes() []byte {
	return []byte{
		c.Level.Byte(),
		c.AttackTime.Byte(),
		c.Decay1Time.Byte(),
		c.ReleaseTime.Byte(),
	}
}

// Amplifier is the 15-byte DCA block of a source.
type Amplifier struct {
	VelocityCurve ranged.Value      `json:"velocity_curve"`
	Envelope      AmplifierEnvelope `json:"envelope"`
	KSToEnvelope  EnvelopeControl   `json:"ks_to_envelope"`
	VelToEnvelope EnvelopeControl   `json:"vel_to_envelope"`
}

// NewAmplifier returns an amplifier with the defaults.
func NewAmplifier() Amplifier {
	return Amplifier{
		VelocityCurve: ranged.MustNew(VelocityCurve, 1),
		Envelope:      NewAmplifierEnvelope(),
		KSToEnvelope:  NewEnvelopeControl(),
		VelToEnvelope: NewEnvelopeControl(),
	}
}

// ParseAmplifier decodes the 15-byte amplifier block. The velocity
// curve is stored 0-based.
func ParseAmplifier(data []byte) (*Amplifier, error) {
	d, err := sysex.NewDecoder(data, AmplifierSize)
	if err != nil {
		return nil, err
	}
	var a Amplifier
	a.VelocityCurve = d.RangedInt(VelocityCurve, int(d.Byte(0))+1)
	if err := d.Err(); err != nil {
		return nil, err
	}
	env, err := ParseAmplifierEnvelope(data[1:7])
	if err != nil {
		return nil, err
	}
	a.Envelope = *env
	ks, err := ParseEnvelopeControl(data[7:11])
	if err != nil {
		return nil, err
	}
	a.KSToEnvelope = *ks
	vel, err := ParseEnvelopeControl(data[11:AmplifierSize])
	if err != nil {
		return nil, err
	}
	a.VelToEnvelope = *vel
	return &a, nil
}

func (a *Amplifier) ToBytes() []byte {
	buf := make([]byte, 0, AmplifierSize)
	buf = append(buf, byte(a.VelocityCurve.Int()-1))
	buf = append(buf, a.Envelope.ToBytes()...)
	buf = append(buf, a.KSToEnvelope.ToBytes()...)
	buf = append(buf, a.VelToEnvelope.ToBytes()...)
	return buf
}
