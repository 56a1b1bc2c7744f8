package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// FormantFilterSize is the byte count of the formant filter block.
const FormantFilterSize = 17

// FormantMode selects whether the formant filter follows its envelope
// or its LFO.
type FormantMode byte

const (
	FormantEnvelope FormantMode = iota
	FormantLFO
)

func (m FormantMode) String() string {
	if m == FormantLFO {
		return "LFO"
	}
	return "ENV"
}

// FormantEnvelopeSettings is the 11-byte formant envelope: four
// rate/level segments, the decay loop kind, and velocity and key
// scaling depths.
type FormantEnvelopeSettings struct {
	Attack        EnvelopeSegment `json:"attack"`
	Decay1        EnvelopeSegment `json:"decay1"`
	Decay2        EnvelopeSegment `json:"decay2"`
	Release       EnvelopeSegment `json:"release"`
	DecayLoop     Loop            `json:"decay_loop"`
	VelocityDepth ranged.Value    `json:"velocity_depth"`
	KSDepth       ranged.Value    `json:"ks_depth"`
}

func newFormantSegment() EnvelopeSegment {
	return EnvelopeSegment{
		Rate:  ranged.MustNew(EnvelopeRate, 0),
		Level: ranged.MustNew(EnvelopeLevel, 0),
	}
}

// NewFormantEnvelopeSettings returns a flat formant envelope.
func NewFormantEnvelopeSettings() FormantEnvelopeSettings {
	return FormantEnvelopeSettings{
		Attack:        newFormantSegment(),
		Decay1:        newFormantSegment(),
		Decay2:        newFormantSegment(),
		Release:       newFormantSegment(),
		VelocityDepth: ranged.MustNew(EnvelopeDepth, 0),
		KSDepth:       ranged.MustNew(EnvelopeDepth, 0),
	}
}

// ParseFormantEnvelope decodes the 11 envelope bytes. Segment levels
// are signed here, unlike in the harmonic envelopes.
func ParseFormantEnvelope(data []byte) (*FormantEnvelopeSettings, error) {
	d, err := sysex.NewDecoder(data, 11)
	if err != nil {
		return nil, err
	}
	e := FormantEnvelopeSettings{
		Attack:        EnvelopeSegment{Rate: d.Ranged(EnvelopeRate, 0), Level: d.Ranged(EnvelopeLevel, 1)},
		Decay1:        EnvelopeSegment{Rate: d.Ranged(EnvelopeRate, 2), Level: d.Ranged(EnvelopeLevel, 3)},
		Decay2:        EnvelopeSegment{Rate: d.Ranged(EnvelopeRate, 4), Level: d.Ranged(EnvelopeLevel, 5)},
		Release:       EnvelopeSegment{Rate: d.Ranged(EnvelopeRate, 6), Level: d.Ranged(EnvelopeLevel, 7)},
		DecayLoop:     Loop(d.Enum("decay loop", d.Byte(8), byte(Loop2))),
		VelocityDepth: d.Ranged(EnvelopeDepth, 9),
		KSDepth:       d.Ranged(EnvelopeDepth, 10),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *FormantEnvelopeSettings) ToBytes() []byte {
	return []byte{
		e.Attack.Rate.Byte(), e.Attack.Level.Byte(),
		e.Decay1.Rate.Byte(), e.Decay1.Level.Byte(),
		e.Decay2.Rate.Byte(), e.Decay2.Level.Byte(),
		e.Release.Rate.Byte(), e.Release.Level.Byte(),
		byte(e.DecayLoop),
		e.VelocityDepth.Byte(),
		e.KSDepth.Byte(),
	}
}

// FormantLFOShape selects the formant filter LFO shape.
type FormantLFOShape byte

const (
	FormantTriangle FormantLFOShape = iota
	FormantSawtooth
	FormantRandom
)

func (s FormantLFOShape) String() string {
	switch s {
	case FormantTriangle:
		return "TRI"
	case FormantSawtooth:
		return "SAW"
	case FormantRandom:
		return "RND"
	}
	return "?"
}

// FormantLFOSettings is the three-byte formant filter LFO.
type FormantLFOSettings struct {
	Speed ranged.Value    `json:"speed"`
	Shape FormantLFOShape `json:"shape"`
	Depth ranged.Value    `json:"depth"`
}

// NewFormantLFOSettings returns a stopped LFO.
func NewFormantLFOSettings() FormantLFOSettings {
	return FormantLFOSettings{
		Speed: ranged.MustNew(LFOSpeed, 0),
		Depth: ranged.MustNew(LFODepth, 0),
	}
}

// ParseFormantLFO decodes the three LFO bytes.
func ParseFormantLFO(data []byte) (*FormantLFOSettings, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	l := FormantLFOSettings{
		Speed: d.Ranged(LFOSpeed, 0),
		Shape: FormantLFOShape(d.Enum("formant LFO shape", d.Byte(1), byte(FormantRandom))),
		Depth: d.Ranged(LFODepth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *FormantLFOSettings) ToBytes() []byte {
	return []byte{l.Speed.Byte(), byte(l.Shape), l.Depth.Byte()}
}

// FormantFilter is the 17-byte formant filter block of an additive
// kit.
type FormantFilter struct {
	Bias          ranged.Value            `json:"bias"`
	Mode          FormantMode             `json:"mode"`
	EnvelopeDepth ranged.Value            `json:"envelope_depth"`
	Envelope      FormantEnvelopeSettings `json:"envelope"`
	LFO           FormantLFOSettings      `json:"lfo"`
}

// NewFormantFilter returns a formant filter with the defaults.
func NewFormantFilter() FormantFilter {
	return FormantFilter{
		Bias:          ranged.MustNew(Bias, 0),
		EnvelopeDepth: ranged.MustNew(EnvelopeDepth, 0),
		Envelope:      NewFormantEnvelopeSettings(),
		LFO:           NewFormantLFOSettings(),
	}
}

// ParseFormantFilter decodes the 17-byte formant filter block.
func ParseFormantFilter(data []byte) (*FormantFilter, error) {
	d, err := sysex.NewDecoder(data, FormantFilterSize)
	if err != nil {
		return nil, err
	}
	f := FormantFilter{
		Bias:          d.Ranged(Bias, 0),
		Mode:          FormantMode(d.Enum("formant mode", d.Byte(1), byte(FormantLFO))),
		EnvelopeDepth: d.Ranged(EnvelopeDepth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	env, err := ParseFormantEnvelope(data[3:14])
	if err != nil {
		return nil, err
	}
	f.Envelope = *env
	lfo, err := ParseFormantLFO(data[14:FormantFilterSize])
	if err != nil {
		return nil, err
	}
	f.LFO = *lfo
	return &f, nil
}

func (f *FormantFilter) ToBytes() []byte {
	buf := make([]byte, 0, FormantFilterSize)
	buf = append(buf, f.Bias.Byte(), byte(f.Mode), f.EnvelopeDepth.Byte())
	buf = append(buf, f.Envelope.ToBytes()...)
	buf = append(buf, f.LFO.ToBytes()...)
	return buf
}
