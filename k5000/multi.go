package k5000

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

const (
	// MultiCommonSize is the byte count of the multi common block.
	MultiCommonSize = 54
	// SectionSize is the byte count of one multi section.
	SectionSize = 12
	// MultiPatchSize is the dump size of a multi patch, checksum
	// included.
	MultiPatchSize = 1 + MultiCommonSize + SectionCount*SectionSize
)

// MultiCommon is the common block of a multi patch. SectionMutes is
// true for a muted section.
type MultiCommon struct {
	Effects       EffectSettings     `json:"effects"`
	GEQ           [7]ranged.Value    `json:"geq"`
	Name          string             `json:"name"`
	Volume        ranged.Value       `json:"volume"`
	SectionMutes  [SectionCount]bool `json:"section_mutes"`
	EffectControl EffectControl      `json:"effect_control"`
}

// NewMultiCommon returns a common block with the defaults.
func NewMultiCommon() MultiCommon {
	c := MultiCommon{
		Effects:       *NewEffectSettings(),
		Name:          "NewMulti",
		Volume:        ranged.MustNew(Volume, 99),
		EffectControl: NewEffectControl(),
	}
	for i := range c.GEQ {
		c.GEQ[i] = ranged.MustNew(GEQBand, 0)
	}
	return c
}

// ParseMultiCommon decodes the 54-byte common block.
func ParseMultiCommon(data []byte) (*MultiCommon, error) {
	d, err := sysex.NewDecoder(data, MultiCommonSize)
	if err != nil {
		return nil, err
	}

	var c MultiCommon
	effects, err := ParseEffectSettings(data[0:31])
	if err != nil {
		return nil, err
	}
	c.Effects = *effects

	for i := range c.GEQ {
		c.GEQ[i] = d.Ranged(GEQBand, 31+i)
	}
	c.Name = d.Name(38, NameLength)
	c.Volume = d.Ranged(Volume, 46)
	for i := 0; i < SectionCount; i++ {
		c.SectionMutes[i] = d.Byte(47)&(1<<i) != 0
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	control, err := ParseEffectControl(data[48:54])
	if err != nil {
		return nil, err
	}
	c.EffectControl = *control
	return &c, nil
}

func (c *MultiCommon) ToBytes() []byte {
	buf := make([]byte, 0, MultiCommonSize)
	buf = append(buf, c.Effects.ToBytes()...)
	for i := range c.GEQ {
		buf = append(buf, c.GEQ[i].Byte())
	}
	buf = append(buf, sysex.NameBytes(c.Name, NameLength)...)
	buf = append(buf, c.Volume.Byte())

	var mutes byte
	for i := 0; i < SectionCount; i++ {
		if c.SectionMutes[i] {
			mutes |= 1 << i
		}
	}
	buf = append(buf, mutes)
	buf = append(buf, c.EffectControl.ToBytes()...)
	return buf
}

// Section is one of the four instrument slots of a multi patch. The
// instrument number is stored in ten bits split across two bytes,
// MSB first, like an oscillator wave number.
type Section struct {
	Instrument     uint16                 `json:"instrument"`
	Volume         ranged.Value           `json:"volume"`
	Pan            PanSettings            `json:"pan"`
	EffectPath     byte                   `json:"effect_path"`
	Transpose      ranged.Value           `json:"transpose"`
	Tune           ranged.Value           `json:"tune"`
	ZoneLow        ranged.Value           `json:"zone_low"`
	ZoneHigh       ranged.Value           `json:"zone_high"`
	VelocitySwitch VelocitySwitchSettings `json:"velocity_switch"`
	ReceiveChannel ranged.Value           `json:"receive_channel"`
}

// NewSection returns a full-range section playing instrument 0.
func NewSection() Section {
	return Section{
		Volume:         ranged.MustNew(Volume, 127),
		Pan:            NewPanSettings(),
		Transpose:      ranged.MustNew(Transpose, 0),
		Tune:           ranged.MustNew(Tune, 0),
		ZoneLow:        ranged.MustNew(Key, 0),
		ZoneHigh:       ranged.MustNew(Key, 127),
		VelocitySwitch: NewVelocitySwitch(VelocitySwitchOff, 0),
		ReceiveChannel: ranged.MustNew(Channel, 1),
	}
}

// ParseSection decodes the 12 section bytes.
func ParseSection(data []byte) (*Section, error) {
	d, err := sysex.NewDecoder(data, SectionSize)
	if err != nil {
		return nil, err
	}
	s := Section{
		Instrument:     uint16(d.Byte(0)&0x07)<<7 | uint16(d.Byte(1)&0x7F),
		Volume:         d.Ranged(Volume, 2),
		EffectPath:     d.Byte(5),
		Transpose:      d.Ranged(Transpose, 6),
		Tune:           d.Ranged(Tune, 7),
		ZoneLow:        d.Ranged(Key, 8),
		ZoneHigh:       d.Ranged(Key, 9),
		ReceiveChannel: d.RangedInt(Channel, int(d.Byte(11)&0x0F)+1),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	pan, err := ParsePanSettings(data[3:5])
	if err != nil {
		return nil, err
	}
	s.Pan = *pan
	s.VelocitySwitch, err = ParseVelocitySwitch(data[10])
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Section) ToBytes() []byte {
	buf := make([]byte, 0, SectionSize)
	buf = append(buf, byte(s.Instrument>>7)&0x07, byte(s.Instrument)&0x7F)
	buf = append(buf, s.Volume.Byte())
	buf = append(buf, s.Pan.ToBytes()...)
	buf = append(buf, s.EffectPath, s.Transpose.Byte(), s.Tune.Byte())
	buf = append(buf, s.ZoneLow.Byte(), s.ZoneHigh.Byte())
	buf = append(buf, s.VelocitySwitch.ToByte())
	buf = append(buf, byte(s.ReceiveChannel.Int()-1))
	return buf
}

// MultiPatch is one K5000 multi patch (a combi on the K5000W): the
// common block and four sections.
type MultiPatch struct {
	Common   MultiCommon           `json:"common"`
	Sections [SectionCount]Section `json:"sections"`
}

// NewMultiPatch returns a multi patch with the defaults.
func NewMultiPatch() *MultiPatch {
	p := &MultiPatch{Common: NewMultiCommon()}
	for i := range p.Sections {
		p.Sections[i] = NewSection()
	}
	return p
}

// multiChecksum folds the common block and each section of the wire
// form separately, then applies the shared final step.
func multiChecksum(data []byte) byte {
	total := blockSum(data[1 : 1+MultiCommonSize])
	for i := 0; i < SectionCount; i++ {
		off := 1 + MultiCommonSize + i*SectionSize
		total += blockSum(data[off : off+SectionSize])
	}
	total += 0xA5
	return byte(total & 0x7F)
}

// ParseMultiPatch decodes a 103-byte multi patch. On a checksum
// mismatch the decoded patch is returned together with a
// *sysex.ChecksumError, so the caller decides whether to keep it.
func ParseMultiPatch(data []byte) (*MultiPatch, error) {
	if len(data) < MultiPatchSize {
		return nil, &sysex.TooShortError{Expected: MultiPatchSize, Actual: len(data)}
	}

	var p MultiPatch
	common, err := ParseMultiCommon(data[1 : 1+MultiCommonSize])
	if err != nil {
		return nil, err
	}
	p.Common = *common

	for i := 0; i < SectionCount; i++ {
		off := 1 + MultiCommonSize + i*SectionSize
		s, err := ParseSection(data[off : off+SectionSize])
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
		p.Sections[i] = *s
	}

	if sum := multiChecksum(data); sum != data[0] {
		return &p, &sysex.ChecksumError{Computed: sum, Stored: data[0]}
	}
	return &p, nil
}

// ToBytes emits the 103-byte dump form, checksum first.
func (p *MultiPatch) ToBytes() []byte {
	buf := make([]byte, 0, MultiPatchSize)
	buf = append(buf, 0) // checksum placeholder
	buf = append(buf, p.Common.ToBytes()...)
	for i := range p.Sections {
		buf = append(buf, p.Sections[i].ToBytes()...)
	}
	buf[0] = multiChecksum(buf)
	return buf
}

func (p *MultiPatch) String() string {
	return fmt.Sprintf("%s volume=%s sections=%d",
		p.Common.Name, p.Common.Volume, SectionCount)
}
