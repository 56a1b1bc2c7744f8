package k4

import (
	"fmt"
	"strings"

	"ksynth/ranged"
	"ksynth/sysex"
)

// SinglePatchSize is the dump size of a single patch, checksum
// included.
const SinglePatchSize = 131

// SourceMode selects how the four sources are combined.
type SourceMode byte

const (
	SourceModeNormal SourceMode = iota
	SourceModeTwin
	SourceModeDouble
)

func (m SourceMode) String() string {
	switch m {
	case SourceModeNormal:
		return "Normal"
	case SourceModeTwin:
		return "Twin"
	case SourceModeDouble:
		return "Double"
	}
	return "?"
}

// PolyphonyMode selects the voice assignment mode.
type PolyphonyMode byte

const (
	Poly1 PolyphonyMode = iota
	Poly2
	Solo1
	Solo2
)

func (m PolyphonyMode) String() string {
	switch m {
	case Poly1:
		return "Poly 1"
	case Poly2:
		return "Poly 2"
	case Solo1:
		return "Solo 1"
	case Solo2:
		return "Solo 2"
	}
	return "?"
}

// WheelAssign selects the target of the modulation wheel.
type WheelAssign byte

const (
	WheelVibrato WheelAssign = iota
	WheelLFO
	WheelDCF
)

func (w WheelAssign) String() string {
	switch w {
	case WheelVibrato:
		return "VIB"
	case WheelLFO:
		return "LFO"
	case WheelDCF:
		return "DCF"
	}
	return "?"
}

// SinglePatch is one K4 single patch. SourceMutes is true for a muted
// source; the wire stores the inverse.
type SinglePatch struct {
	Name          string                 `json:"name"`
	Volume        ranged.Value           `json:"volume"`
	Effect        ranged.Value           `json:"effect"`
	Submix        Submix                 `json:"submix"`
	SourceMode    SourceMode             `json:"source_mode"`
	PolyphonyMode PolyphonyMode          `json:"polyphony_mode"`
	AM12          bool                   `json:"am12"`
	AM34          bool                   `json:"am34"`
	SourceMutes   [SourceCount]bool      `json:"source_mutes"`
	BenderRange   ranged.Value           `json:"bender_range"`
	WheelAssign   WheelAssign            `json:"wheel_assign"`
	WheelDepth    ranged.Value           `json:"wheel_depth"`
	AutoBend      AutoBend               `json:"auto_bend"`
	LFO           LFO                    `json:"lfo"`
	Vibrato       Vibrato                `json:"vibrato"`
	PressureFreq  ranged.Value           `json:"pressure_freq"`
	Sources       [SourceCount]Source    `json:"sources"`
	Amplifiers    [SourceCount]Amplifier `json:"amplifiers"`
	Filters       [2]Filter              `json:"filters"`
}

// NewSinglePatch returns a single patch with the default settings.
func NewSinglePatch() *SinglePatch {
	p := &SinglePatch{
		Name:          "NewSound",
		Volume:        ranged.MustNew(Level, 100),
		Effect:        ranged.MustNew(EffectNumber, 1),
		Submix:        SubmixA,
		SourceMode:    SourceModeNormal,
		PolyphonyMode: Poly1,
		BenderRange:   ranged.MustNew(BenderRange, 0),
		WheelAssign:   WheelDCF,
		WheelDepth:    ranged.MustNew(Depth, 0),
		AutoBend:      NewAutoBend(),
		LFO:           NewLFO(),
		Vibrato:       NewVibrato(),
		PressureFreq:  ranged.MustNew(Depth, 0),
		Filters:       [2]Filter{NewFilter(), NewFilter()},
	}
	for i := 0; i < SourceCount; i++ {
		p.Sources[i] = NewSource()
		p.Amplifiers[i] = NewAmplifier()
	}
	return p
}

// ParseSinglePatch decodes a 131-byte single patch. On a checksum
// mismatch the decoded patch is returned together with a
// *sysex.ChecksumError, so the caller decides whether to keep it.
func ParseSinglePatch(data []byte) (*SinglePatch, error) {
	d, err := sysex.NewDecoder(data, SinglePatchSize)
	if err != nil {
		return nil, err
	}

	var p SinglePatch
	p.Name = d.Name(0, NameLength)
	p.Volume = d.RangedByte(Level, d.Byte(10)&0x7F)

	// effect number, s11 bits 0..4, stored 0-based
	p.Effect = d.RangedInt(EffectNumber, int(d.Byte(11)&0x1F)+1)
	p.Submix = Submix(d.Byte(12) & 0x07)

	// s13: source mode b0..1, polyphony b2..3, AM 1>2 b4, AM 3>4 b5
	b := d.Byte(13)
	p.SourceMode = SourceMode(d.Enum("source mode", b&0x03, byte(SourceModeDouble)))
	p.PolyphonyMode = PolyphonyMode((b >> 2) & 0x03)
	p.AM12 = b&0x10 != 0
	p.AM34 = b&0x20 != 0

	// s14 carries the source mutes in bits 0..3 (0 means muted on the
	// wire) and the vibrato shape in bits 4..5.
	b = d.Byte(14)
	for i := 0; i < SourceCount; i++ {
		p.SourceMutes[i] = b&(1<<i) == 0
	}

	// s15: bender range b0..3, wheel assign b4..5
	b = d.Byte(15)
	p.BenderRange = d.RangedInt(BenderRange, int(b&0x0F))
	p.WheelAssign = WheelAssign(d.Enum("wheel assign", (b>>4)&0x03, byte(WheelDCF)))

	p.WheelDepth = d.RangedByte(Depth, d.Byte(17)&0x7F)
	p.PressureFreq = d.RangedByte(Depth, d.Byte(29)&0x7F)
	if err := d.Err(); err != nil {
		return nil, err
	}

	ab, err := ParseAutoBend(data[18:22])
	if err != nil {
		return nil, err
	}
	p.AutoBend = *ab

	vib, err := ParseVibrato([]byte{data[14], data[16], data[22], data[23]})
	if err != nil {
		return nil, err
	}
	p.Vibrato = *vib

	lfo, err := ParseLFO(data[24:29])
	if err != nil {
		return nil, err
	}
	p.LFO = *lfo

	// The per-source blocks are interleaved byte by byte.
	offset := 30
	sourceData := data[offset : offset+SourceCount*SourceSize]
	for i := 0; i < SourceCount; i++ {
		s, err := ParseSource(sysex.EveryNth(sourceData, SourceCount, i))
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		p.Sources[i] = *s
	}
	offset += SourceCount * SourceSize

	ampData := data[offset : offset+SourceCount*AmplifierSize]
	for i := 0; i < SourceCount; i++ {
		a, err := ParseAmplifier(sysex.EveryNth(ampData, SourceCount, i))
		if err != nil {
			return nil, fmt.Errorf("amplifier %d: %w", i+1, err)
		}
		p.Amplifiers[i] = *a
	}
	offset += SourceCount * AmplifierSize

	filterData := data[offset : offset+2*FilterSize]
	for i := 0; i < 2; i++ {
		f, err := ParseFilter(sysex.EveryNth(filterData, 2, i))
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i+1, err)
		}
		p.Filters[i] = *f
	}

	return &p, sysex.VerifyChecksum(data[:SinglePatchSize-1], data[SinglePatchSize-1])
}

func (p *SinglePatch) collectData() []byte {
	buf := make([]byte, 0, SinglePatchSize-1)
	buf = append(buf, sysex.NameBytes(p.Name, NameLength)...)
	buf = append(buf, p.Volume.Byte())
	buf = append(buf, p.Effect.Byte())
	buf = append(buf, byte(p.Submix))

	s13 := byte(p.SourceMode) | byte(p.PolyphonyMode)<<2
	if p.AM12 {
		s13 |= 0x10
	}
	if p.AM34 {
		s13 |= 0x20
	}
	buf = append(buf, s13)

	vib := p.Vibrato.ToBytes()
	s14 := vib[0] << 4
	for i := 0; i < SourceCount; i++ {
		if !p.SourceMutes[i] {
			s14 |= 1 << i
		}
	}
	buf = append(buf, s14)

	buf = append(buf, byte(p.WheelAssign)<<4|p.BenderRange.Byte())
	buf = append(buf, vib[1])
	buf = append(buf, p.WheelDepth.Byte())
	buf = append(buf, p.AutoBend.ToBytes()...)
	buf = append(buf, vib[2], vib[3])
	buf = append(buf, p.LFO.ToBytes()...)
	buf = append(buf, p.PressureFreq.Byte())

	sourceData := make([]byte, SourceCount*SourceSize)
	for i := 0; i < SourceCount; i++ {
		sysex.ScatterNth(sourceData, p.Sources[i].ToBytes(), SourceCount, i)
	}
	buf = append(buf, sourceData...)

	ampData := make([]byte, SourceCount*AmplifierSize)
	for i := 0; i < SourceCount; i++ {
		sysex.ScatterNth(ampData, p.Amplifiers[i].ToBytes(), SourceCount, i)
	}
	buf = append(buf, ampData...)

	filterData := make([]byte, 2*FilterSize)
	for i := 0; i < 2; i++ {
		sysex.ScatterNth(filterData, p.Filters[i].ToBytes(), 2, i)
	}
	buf = append(buf, filterData...)

	return buf
}

// ToBytes emits the 131-byte dump form, checksum included.
func (p *SinglePatch) ToBytes() []byte {
	data := p.collectData()
	return append(data, sysex.Checksum(data))
}

func (p *SinglePatch) sourceMuteString() string {
	var b strings.Builder
	for i := 0; i < SourceCount; i++ {
		if p.SourceMutes[i] {
			b.WriteByte('-')
		} else {
			b.WriteByte('1' + byte(i))
		}
	}
	return b.String()
}

func (p *SinglePatch) String() string {
	return fmt.Sprintf("%s volume=%s effect=%s submix=%s mode=%s poly=%s sources=%s",
		p.Name, p.Volume, p.Effect, p.Submix, p.SourceMode, p.PolyphonyMode,
		p.sourceMuteString())
}
