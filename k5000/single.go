package k5000

import (
	"fmt"
	"strings"

	"ksynth/ranged"
	"ksynth/sysex"
)

// CommonSize is the byte count of the single patch common block.
const CommonSize = 81

// Portamento is either off, or on with a speed.
type Portamento struct {
	On    bool         `json:"on"`
	Speed ranged.Value `json:"speed,omitempty"`
}

func (p Portamento) String() string {
	if p.On {
		return p.Speed.String()
	}
	return "OFF"
}

// Common is the 81-byte common block of a single patch. SourceMutes
// is true for a muted source.
type Common struct {
	Effects       EffectSettings       `json:"effects"`
	GEQ           [7]ranged.Value      `json:"geq"`
	Name          string               `json:"name"`
	Volume        ranged.Value         `json:"volume"`
	Polyphony     Polyphony            `json:"polyphony"`
	SourceCount   int                  `json:"source_count"`
	SourceMutes   [MaxSourceCount]bool `json:"source_mutes"`
	AM            AmplitudeModulation  `json:"am"`
	EffectControl EffectControl        `json:"effect_control"`
	Portamento    Portamento           `json:"portamento"`
	Macros        [4]MacroController   `json:"macros"`
	Switches      SwitchControl        `json:"switches"`
}

// NewCommon returns a two-source common block with the defaults.
func NewCommon() *Common {
	c := Common{
		Effects:       *NewEffectSettings(),
		Name:          "NewSound",
		Volume:        ranged.MustNew(Volume, 99),
		SourceCount:   2,
		EffectControl: NewEffectControl(),
	}
	for i := range c.GEQ {
		c.GEQ[i] = ranged.MustNew(GEQBand, 0)
	}
	for i := 2; i < MaxSourceCount; i++ {
		c.SourceMutes[i] = true
	}
	for i := range c.Macros {
		c.Macros[i] = NewMacroController()
	}
	return &c
}

// ParseCommon decodes the 81-byte common block.
func ParseCommon(data []byte) (*Common, error) {
	d, err := sysex.NewDecoder(data, CommonSize)
	if err != nil {
		return nil, err
	}

	var c Common
	effects, err := ParseEffectSettings(data[0:31])
	if err != nil {
		return nil, err
	}
	c.Effects = *effects

	for i := range c.GEQ {
		c.GEQ[i] = d.Ranged(GEQBand, 31+i)
	}

	// byte 38 is the drum mark, byte 49 is unused
	c.Name = d.Name(39, NameLength)
	c.Volume = d.Ranged(Volume, 47)
	c.Polyphony = Polyphony(d.Enum("polyphony", d.Byte(48), byte(Solo2)))

	c.SourceCount = int(d.Byte(50))
	if c.SourceCount < 1 || c.SourceCount > MaxSourceCount {
		return nil, &sysex.DiscriminantError{Field: "source count", Value: d.Byte(50)}
	}
	for i := 0; i < MaxSourceCount; i++ {
		c.SourceMutes[i] = d.Byte(51)&(1<<i) != 0
	}
	c.AM = AmplitudeModulation(d.Enum("amplitude modulation", d.Byte(52), byte(AMSource6)))

	if d.Byte(59) == 1 {
		c.Portamento = Portamento{On: true, Speed: d.Ranged(PortamentoSpeed, 60)}
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	control, err := ParseEffectControl(data[53:59])
	if err != nil {
		return nil, err
	}
	c.EffectControl = *control

	// Macro destinations come first, then all the depths.
	for i := range c.Macros {
		m, err := ParseMacroController([]byte{
			data[61+i*2], data[69+i*2],
			data[62+i*2], data[70+i*2],
		})
		if err != nil {
			return nil, fmt.Errorf("macro %d: %w", i+1, err)
		}
		c.Macros[i] = *m
	}

	switches, err := ParseSwitchControl(data[77:81])
	if err != nil {
		return nil, err
	}
	c.Switches = *switches
	return &c, nil
}

// ToBytes emits the 81 common bytes.
func (c *Common) ToBytes() []byte {
	buf := make([]byte, 0, CommonSize)
	buf = append(buf, c.Effects.ToBytes()...)
	for i := range c.GEQ {
		buf = append(buf, c.GEQ[i].Byte())
	}
	buf = append(buf, 0) // drum mark
	buf = append(buf, sysex.NameBytes(c.Name, NameLength)...)
	buf = append(buf, c.Volume.Byte(), byte(c.Polyphony))
	buf = append(buf, 0) // unused
	buf = append(buf, byte(c.SourceCount))

	var mutes byte
	for i := 0; i < MaxSourceCount; i++ {
		if c.SourceMutes[i] {
			mutes |= 1 << i
		}
	}
	buf = append(buf, mutes, byte(c.AM))
	buf = append(buf, c.EffectControl.ToBytes()...)

	if c.Portamento.On {
		buf = append(buf, 1, c.Portamento.Speed.Byte())
	} else {
		buf = append(buf, 0, 0)
	}

	for i := range c.Macros {
		buf = append(buf, byte(c.Macros[i].Destination1), byte(c.Macros[i].Destination2))
	}
	for i := range c.Macros {
		buf = append(buf, c.Macros[i].Depth1.Byte(), c.Macros[i].Depth2.Byte())
	}
	buf = append(buf, c.Switches.ToBytes()...)
	return buf
}

// SinglePatch is one K5000 single patch: the common block, one to six
// sources, and an additive kit for every additive source, in source
// order.
type SinglePatch struct {
	Common       Common        `json:"common"`
	Sources      []Source      `json:"sources"`
	AdditiveKits []AdditiveKit `json:"additive_kits,omitempty"`
}

// NewSinglePatch returns a patch with the given numbers of default
// PCM and additive sources.
func NewSinglePatch(pcmCount, additiveCount int) *SinglePatch {
	p := &SinglePatch{Common: *NewCommon()}
	p.Common.SourceCount = pcmCount + additiveCount
	for i := 0; i < MaxSourceCount; i++ {
		p.Common.SourceMutes[i] = i >= p.Common.SourceCount
	}
	for i := 0; i < pcmCount; i++ {
		p.Sources = append(p.Sources, NewPCMSource())
	}
	for i := 0; i < additiveCount; i++ {
		p.Sources = append(p.Sources, NewAdditiveSource())
		p.AdditiveKits = append(p.AdditiveKits, *NewAdditiveKit())
	}
	return p
}

// SinglePatchSize is the dump size of a patch with the given source
// counts, checksum included.
func SinglePatchSize(pcmCount, additiveCount int) int {
	return 1 + CommonSize + (pcmCount+additiveCount)*SourceSize + additiveCount*AdditiveKitSize
}

// Size is the dump size of the patch, checksum included.
func (p *SinglePatch) Size() int {
	additive := 0
	for i := range p.Sources {
		if p.Sources[i].IsAdditive() {
			additive++
		}
	}
	return SinglePatchSize(len(p.Sources)-additive, additive)
}

// singleChecksum folds the common block and each source block of the
// wire form separately, then applies the shared final step.
func singleChecksum(data []byte, sourceCount int) byte {
	total := blockSum(data[1 : 1+CommonSize])
	for i := 0; i < sourceCount; i++ {
		off := 1 + CommonSize + i*SourceSize
		total += blockSum(data[off : off+SourceSize])
	}
	total += 0xA5
	return byte(total & 0x7F)
}

// ParseSinglePatch decodes a single patch. The size depends on the
// source count in the common block and on how many sources are
// additive, so short data can fail after the common block is read.
// On a checksum mismatch the decoded patch is returned together with
// a *sysex.ChecksumError, so the caller decides whether to keep it.
func ParseSinglePatch(data []byte) (*SinglePatch, error) {
	if len(data) < 1+CommonSize {
		return nil, &sysex.TooShortError{Expected: 1 + CommonSize, Actual: len(data)}
	}

	var p SinglePatch
	common, err := ParseCommon(data[1 : 1+CommonSize])
	if err != nil {
		return nil, err
	}
	p.Common = *common

	offset := 1 + CommonSize
	additive := 0
	for i := 0; i < p.Common.SourceCount; i++ {
		if len(data) < offset+SourceSize {
			return nil, &sysex.TooShortError{Expected: offset + SourceSize, Actual: len(data)}
		}
		s, err := ParseSource(data[offset : offset+SourceSize])
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		p.Sources = append(p.Sources, *s)
		if s.IsAdditive() {
			additive++
		}
		offset += SourceSize
	}

	var checksumErr error
	for i := 0; i < additive; i++ {
		if len(data) < offset+AdditiveKitSize {
			return nil, &sysex.TooShortError{Expected: offset + AdditiveKitSize, Actual: len(data)}
		}
		k, err := ParseAdditiveKit(data[offset : offset+AdditiveKitSize])
		if k == nil {
			return nil, fmt.Errorf("additive kit %d: %w", i+1, err)
		}
		if err != nil && checksumErr == nil {
			checksumErr = fmt.Errorf("additive kit %d: %w", i+1, err)
		}
		p.AdditiveKits = append(p.AdditiveKits, *k)
		offset += AdditiveKitSize
	}

	if sum := singleChecksum(data, p.Common.SourceCount); sum != data[0] {
		return &p, &sysex.ChecksumError{Computed: sum, Stored: data[0]}
	}
	return &p, checksumErr
}

// ToBytes emits the dump form, checksum first.
func (p *SinglePatch) ToBytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, 0) // checksum placeholder
	buf = append(buf, p.Common.ToBytes()...)
	for i := range p.Sources {
		buf = append(buf, p.Sources[i].ToBytes()...)
	}
	for i := range p.AdditiveKits {
		buf = append(buf, p.AdditiveKits[i].ToBytes()...)
	}
	buf[0] = singleChecksum(buf, len(p.Sources))
	return buf
}

func (p *SinglePatch) sourceString() string {
	var b strings.Builder
	for i := range p.Sources {
		if i > 0 {
			b.WriteByte('+')
		}
		if p.Sources[i].IsAdditive() {
			b.WriteString("ADD")
		} else {
			b.WriteString("PCM")
		}
	}
	return b.String()
}

func (p *SinglePatch) String() string {
	return fmt.Sprintf("%s volume=%s poly=%s sources=%s",
		p.Common.Name, p.Common.Volume, p.Common.Polyphony, p.sourceString())
}
