package k4

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

// EffectPatchSize is the dump size of an effect patch, checksum
// included.
const EffectPatchSize = 35

// Effect enumerates the sixteen K4 effect types, numbered 1..16.
type Effect byte

const (
	Reverb1 Effect = iota + 1
	Reverb2
	Reverb3
	Reverb4
	GateReverb
	ReverseGate
	NormalDelay
	StereoPanpotDelay
	Chorus
	OverdriveFlanger
	OverdriveNormalDelay
	OverdriveReverb
	DoubleNormalDelay
	NormalDelayPanpotDelay
	ChorusNormalDelay
	ChorusPanpotDelay
)

var effectNames = [16]string{
	"Reverb 1",
	"Reverb 2",
	"Reverb 3",
	"Reverb 4",
	"Gate Reverb",
	"Reverse Gate",
	"Normal Delay",
	"Stereo Panpot Delay",
	"Chorus",
	"Overdrive + Flanger",
	"Overdrive + Normal Delay",
	"Overdrive + Reverb",
	"Normal Delay + Normal Delay",
	"Normal Delay + Stereo Panpot Delay",
	"Chorus + Normal Delay",
	"Chorus + Stereo Panpot Delay",
}

// effectParameterNames gives the panel labels of the three parameters
// of each effect type.
var effectParameterNames = [16][3]string{
	{"Pre.delay", "Rev.Time", "Tone"},
	{"Pre.delay", "Rev.Time", "Tone"},
	{"Pre.delay", "Rev.Time", "Tone"},
	{"Pre.delay", "Rev.Time", "Tone"},
	{"Pre.delay", "Gate Time", "Tone"},
	{"Pre.delay", "Gate Time", "Tone"},
	{"Feedback", "Tone", "Delay"},
	{"Feedback", "L/R Delay", "Delay"},
	{"Width", "Feedback", "Rate"},
	{"Drive", "Fl.Type", "1-2 Bal"},
	{"Drive", "Delay Time", "1-2 Bal"},
	{"Drive", "Rev.Type", "1-2 Bal"},
	{"Delay1", "Delay2", "1-2 Bal"},
	{"Delay1", "Delay2", "1-2 Bal"},
	{"Chorus", "Delay", "1-2 Bal"},
	{"Chorus", "Delay", "1-2 Bal"},
}

func (e Effect) String() string {
	if e < Reverb1 || e > ChorusPanpotDelay {
		return "?"
	}
	return effectNames[e-1]
}

// ParameterNames returns the labels of the effect's three parameters.
func (e Effect) ParameterNames() [3]string {
	return effectParameterNames[e-1]
}

// SubmixSettings routes one submix channel through the effect
// section.
type SubmixSettings struct {
	Pan   ranged.Value `json:"pan"`
	Send1 ranged.Value `json:"send1"`
	Send2 ranged.Value `json:"send2"`
}

// NewSubmixSettings returns settings with centered pan and no sends.
func NewSubmixSettings() SubmixSettings {
	return SubmixSettings{
		Pan:   ranged.MustNew(Pan, 0),
		Send1: ranged.MustNew(Level, 0),
		Send2: ranged.MustNew(Level, 0),
	}
}

// ParseSubmixSettings decodes the three submix bytes.
func ParseSubmixSettings(data []byte) (*SubmixSettings, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	s := SubmixSettings{
		Pan:   d.Ranged(Pan, 0),
		Send1: d.RangedByte(Level, d.Byte(1)&0x7F),
		Send2: d.RangedByte(Level, d.Byte(2)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *SubmixSettings) ToBytes() []byte {
	return []byte{s.Pan.Byte(), s.Send1.Byte(), s.Send2.Byte()}
}

// EffectPatch is one K4 effect patch: the effect type, its three
// parameters and the routing of the eight submix channels.
type EffectPatch struct {
	Effect   Effect                      `json:"effect"`
	Param1   ranged.Value                `json:"param1"`
	Param2   ranged.Value                `json:"param2"`
	Param3   ranged.Value                `json:"param3"`
	Submixes [SubmixCount]SubmixSettings `json:"submixes"`
}

// NewEffectPatch returns an effect patch with the default settings.
func NewEffectPatch() *EffectPatch {
	p := &EffectPatch{
		Effect: Reverb1,
		Param1: ranged.MustNew(SmallEffectParameter, 0),
		Param2: ranged.MustNew(SmallEffectParameter, 0),
		Param3: ranged.MustNew(BigEffectParameter, 0),
	}
	for i := range p.Submixes {
		p.Submixes[i] = NewSubmixSettings()
	}
	return p
}

// ParseEffectPatch decodes a 35-byte effect patch. On a checksum
// mismatch the decoded patch is returned together with a
// *sysex.ChecksumError.
func ParseEffectPatch(data []byte) (*EffectPatch, error) {
	d, err := sysex.NewDecoder(data, EffectPatchSize)
	if err != nil {
		return nil, err
	}

	var p EffectPatch
	p.Effect = Effect(d.Enum("effect type", d.Byte(0), byte(ChorusPanpotDelay)-1) + 1)
	p.Param1 = d.Ranged(SmallEffectParameter, 1)
	p.Param2 = d.Ranged(SmallEffectParameter, 2)
	p.Param3 = d.RangedByte(BigEffectParameter, d.Byte(3)&0x1F)
	if err := d.Err(); err != nil {
		return nil, err
	}

	// bytes 4..9 are reserved; submix settings start at 10
	offset := 10
	for i := 0; i < SubmixCount; i++ {
		s, err := ParseSubmixSettings(data[offset : offset+3])
		if err != nil {
			return nil, fmt.Errorf("submix %s: %w", Submix(i), err)
		}
		p.Submixes[i] = *s
		offset += 3
	}

	return &p, sysex.VerifyChecksum(data[:EffectPatchSize-1], data[EffectPatchSize-1])
}

func (p *EffectPatch) collectData() []byte {
	buf := make([]byte, 0, EffectPatchSize-1)
	buf = append(buf, byte(p.Effect)-1, p.Param1.Byte(), p.Param2.Byte(), p.Param3.Byte())
	buf = append(buf, 0, 0, 0, 0, 0, 0)
	for i := range p.Submixes {
		buf = append(buf, p.Submixes[i].ToBytes()...)
	}
	return buf
}

// ToBytes emits the 35-byte dump form, checksum included.
func (p *EffectPatch) ToBytes() []byte {
	data := p.collectData()
	return append(data, sysex.Checksum(data))
}

func (p *EffectPatch) String() string {
	names := p.Effect.ParameterNames()
	return fmt.Sprintf("%s, %s = %s, %s = %s, %s = %s",
		p.Effect, names[0], p.Param1, names[1], p.Param2, names[2], p.Param3)
}
