package k4

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

const (
	// MultiPatchSize is the dump size of a multi patch, checksum
	// included.
	MultiPatchSize = 77
	// SectionCount is the number of sections in a multi patch.
	SectionCount = 8

	sectionSize = 8
)

// VelocitySwitch restricts a section to part of the velocity range.
type VelocitySwitch byte

const (
	VelocityAll VelocitySwitch = iota
	VelocitySoft
	VelocityLoud
)

func (v VelocitySwitch) String() string {
	switch v {
	case VelocityAll:
		return "All"
	case VelocitySoft:
		return "Soft"
	case VelocityLoud:
		return "Loud"
	}
	return "?"
}

// PlayMode selects what triggers a section.
type PlayMode byte

const (
	PlayKeyboard PlayMode = iota
	PlayMidi
	PlayMix
)

func (m PlayMode) String() string {
	switch m {
	case PlayKeyboard:
		return "Keyboard"
	case PlayMidi:
		return "MIDI"
	case PlayMix:
		return "Mix"
	}
	return "?"
}

// Zone is the key range a section responds to.
type Zone struct {
	LowKey  byte `json:"low_key"`
	HighKey byte `json:"high_key"`
}

func (z Zone) String() string {
	return fmt.Sprintf("%s ... %s", NoteName(z.LowKey), NoteName(z.HighKey))
}

// Section assigns one single patch to a zone of the keyboard.
type Section struct {
	SingleNumber   ranged.Value   `json:"single_number"`
	Zone           Zone           `json:"zone"`
	VelocitySwitch VelocitySwitch `json:"velocity_switch"`
	ReceiveChannel ranged.Value   `json:"receive_channel"`
	Muted          bool           `json:"muted"`
	OutSelect      Submix         `json:"out_select"`
	PlayMode       PlayMode       `json:"play_mode"`
	Level          ranged.Value   `json:"level"`
	Transpose      ranged.Value   `json:"transpose"`
	Tune           ranged.Value   `json:"tune"`
}

// NewSection returns a section with the default settings.
func NewSection() Section {
	return Section{
		SingleNumber:   ranged.MustNew(PatchNumber, 0),
		Zone:           Zone{LowKey: 0, HighKey: 127},
		VelocitySwitch: VelocityAll,
		ReceiveChannel: ranged.MustNew(Channel, 1),
		OutSelect:      SubmixA,
		PlayMode:       PlayKeyboard,
		Level:          ranged.MustNew(Level, 100),
		Transpose:      ranged.MustNew(Transpose, 0),
		Tune:           ranged.MustNew(Depth, 0),
	}
}

// ParseSection decodes the eight section bytes.
func ParseSection(data []byte) (*Section, error) {
	d, err := sysex.NewDecoder(data, sectionSize)
	if err != nil {
		return nil, err
	}

	var s Section
	s.SingleNumber = d.RangedByte(PatchNumber, d.Byte(0)&0x3F)
	s.Zone = Zone{LowKey: d.Byte(1) & 0x7F, HighKey: d.Byte(2) & 0x7F}

	// m15: receive channel b0..3, velocity switch b4..5, mute b6
	b := d.Byte(3)
	s.ReceiveChannel = d.RangedInt(Channel, int(b&0x0F)+1)
	s.VelocitySwitch = VelocitySwitch(d.Enum("velocity switch", (b>>4)&0x03, byte(VelocityLoud)))
	s.Muted = b&0x40 != 0

	// m16: out select b0..2, play mode b3..4
	b = d.Byte(4)
	s.OutSelect = Submix(b & 0x07)
	s.PlayMode = PlayMode(d.Enum("play mode", (b>>3)&0x03, byte(PlayMix)))

	s.Level = d.RangedByte(Level, d.Byte(5)&0x7F)
	s.Transpose = d.Ranged(Transpose, 6)
	s.Tune = d.RangedByte(Depth, d.Byte(7)&0x7F)

	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Section) ToBytes() []byte {
	m15 := byte(s.ReceiveChannel.Int()-1) | byte(s.VelocitySwitch)<<4
	if s.Muted {
		m15 |= 0x40
	}
	m16 := byte(s.OutSelect) | byte(s.PlayMode)<<3
	return []byte{
		s.SingleNumber.Byte(),
		s.Zone.LowKey,
		s.Zone.HighKey,
		m15,
		m16,
		s.Level.Byte(),
		s.Transpose.Byte(),
		s.Tune.Byte(),
	}
}

// MultiPatch is one K4 multi patch: a name, total volume, an effect
// assignment and eight sections.
type MultiPatch struct {
	Name     string                `json:"name"`
	Volume   ranged.Value          `json:"volume"`
	Effect   ranged.Value          `json:"effect"`
	Sections [SectionCount]Section `json:"sections"`
}

// NewMultiPatch returns a multi patch with the default settings.
func NewMultiPatch() *MultiPatch {
	p := &MultiPatch{
		Name:   "NewMulti",
		Volume: ranged.MustNew(Level, 100),
		Effect: ranged.MustNew(EffectNumber, 1),
	}
	for i := range p.Sections {
		p.Sections[i] = NewSection()
	}
	return p
}

// ParseMultiPatch decodes a 77-byte multi patch. On a checksum
// mismatch the decoded patch is returned together with a
// *sysex.ChecksumError.
func ParseMultiPatch(data []byte) (*MultiPatch, error) {
	d, err := sysex.NewDecoder(data, MultiPatchSize)
	if err != nil {
		return nil, err
	}

	var p MultiPatch
	p.Name = d.Name(0, NameLength)
	p.Volume = d.RangedByte(Level, d.Byte(10)&0x7F)
	p.Effect = d.RangedInt(EffectNumber, int(d.Byte(11)&0x1F)+1)
	if err := d.Err(); err != nil {
		return nil, err
	}

	offset := NameLength + 2
	for i := 0; i < SectionCount; i++ {
		s, err := ParseSection(data[offset : offset+sectionSize])
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
		p.Sections[i] = *s
		offset += sectionSize
	}

	return &p, sysex.VerifyChecksum(data[:MultiPatchSize-1], data[MultiPatchSize-1])
}

func (p *MultiPatch) collectData() []byte {
	buf := make([]byte, 0, MultiPatchSize-1)
	buf = append(buf, sysex.NameBytes(p.Name, NameLength)...)
	buf = append(buf, p.Volume.Byte(), p.Effect.Byte())
	for i := range p.Sections {
		buf = append(buf, p.Sections[i].ToBytes()...)
	}
	return buf
}

// ToBytes emits the 77-byte dump form, checksum included.
func (p *MultiPatch) ToBytes() []byte {
	data := p.collectData()
	return append(data, sysex.Checksum(data))
}

func (p *MultiPatch) String() string {
	return fmt.Sprintf("%s volume=%s effect=%s", p.Name, p.Volume, p.Effect)
}
