package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// Loop selects how an envelope repeats its decay segments.
type Loop byte

const (
	LoopOff Loop = iota
	Loop1
	Loop2
)

func (l Loop) String() string {
	switch l {
	case LoopOff:
		return "OFF"
	case Loop1:
		return "LOOP1"
	case Loop2:
		return "LOOP2"
	}
	return "?"
}

// HarmonicCommonSize is the byte count of the harmonic common block.
const HarmonicCommonSize = 6

// HarmonicGroup selects the low or high half of the harmonics.
type HarmonicGroup byte

const (
	GroupLow HarmonicGroup = iota
	GroupHigh
)

func (g HarmonicGroup) String() string {
	if g == GroupHigh {
		return "HI"
	}
	return "LO"
}

// HarmonicCommon is the common block of an additive kit.
type HarmonicCommon struct {
	MorfEnabled   bool          `json:"morf_enabled"`
	TotalGain     byte          `json:"total_gain"`
	Group         HarmonicGroup `json:"group"`
	KSToGain      ranged.Value  `json:"ks_to_gain"`
	VelocityCurve ranged.Value  `json:"velocity_curve"`
	VelocityDepth ranged.Value  `json:"velocity_depth"`
}

// NewHarmonicCommon returns the block with the defaults.
func NewHarmonicCommon() HarmonicCommon {
	return HarmonicCommon{
		KSToGain:      ranged.MustNew(KeyScaling, 0),
		VelocityCurve: ranged.MustNew(VelocityCurve, 1),
		VelocityDepth: ranged.MustNew(VelocityDepth, 0),
	}
}

// ParseHarmonicCommon decodes the six common bytes. The velocity
// curve is stored 0-based.
func ParseHarmonicCommon(data []byte) (*HarmonicCommon, error) {
	d, err := sysex.NewDecoder(data, HarmonicCommonSize)
	if err != nil {
		return nil, err
	}
	c := HarmonicCommon{
		MorfEnabled:   d.Byte(0) == 1,
		TotalGain:     d.Byte(1),
		Group:         HarmonicGroup(d.Enum("harmonic group", d.Byte(2), byte(GroupHigh))),
		KSToGain:      d.Ranged(KeyScaling, 3),
		VelocityCurve: d.RangedInt(VelocityCurve, int(d.Byte(4))+1),
		VelocityDepth: d.Ranged(VelocityDepth, 5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *HarmonicCommon) ToBytes() []byte {
	morf := byte(0)
	if c.MorfEnabled {
		morf = 1
	}
	return []byte{
		morf,
		c.TotalGain,
		byte(c.Group),
		c.KSToGain.Byte(),
		byte(c.VelocityCurve.Int() - 1),
		c.VelocityDepth.Byte(),
	}
}

// MorfCopy names a harmonic set to copy from: a patch and one of its
// sources.
type MorfCopy struct {
	PatchNumber  byte `json:"patch_number"`
	SourceNumber byte `json:"source_number"`
}

// MorfEnvelope is the four-stage MORF transition envelope.
type MorfEnvelope struct {
	Time1    ranged.Value `json:"time1"`
	Time2    ranged.Value `json:"time2"`
	Time3    ranged.Value `json:"time3"`
	Time4    ranged.Value `json:"time4"`
	LoopKind Loop         `json:"loop_kind"`
}

// NewMorfEnvelope returns a zeroed MORF envelope.
func NewMorfEnvelope() MorfEnvelope {
	return MorfEnvelope{
		Time1: ranged.MustNew(EnvelopeTime, 0),
		Time2: ranged.MustNew(EnvelopeTime, 0),
		Time3: ranged.MustNew(EnvelopeTime, 0),
		Time4: ranged.MustNew(EnvelopeTime, 0),
	}
}

// MorfHarmonicSize is the byte count of the MORF harmonic block.
const MorfHarmonicSize = 13

// MorfHarmonic is the MORF block of an additive kit: four copy
// sources and the transition envelope.
type MorfHarmonic struct {
	Copies   [4]MorfCopy  `json:"copies"`
	Envelope MorfEnvelope `json:"envelope"`
}

// NewMorfHarmonic returns a zeroed MORF block.
func NewMorfHarmonic() MorfHarmonic {
	return MorfHarmonic{Envelope: NewMorfEnvelope()}
}

// ParseMorfHarmonic decodes the 13-byte MORF block.
func ParseMorfHarmonic(data []byte) (*MorfHarmonic, error) {
	d, err := sysex.NewDecoder(data, MorfHarmonicSize)
	if err != nil {
		return nil, err
	}
	var m MorfHarmonic
	for i := range m.Copies {
		m.Copies[i] = MorfCopy{
			PatchNumber:  d.Byte(i * 2),
			SourceNumber: d.Byte(i*2 + 1),
		}
	}
	m.Envelope = MorfEnvelope{
		Time1:    d.Ranged(EnvelopeTime, 8),
		Time2:    d.Ranged(EnvelopeTime, 9),
		Time3:    d.Ranged(EnvelopeTime, 10),
		Time4:    d.Ranged(EnvelopeTime, 11),
		LoopKind: Loop(d.Enum("MORF loop", d.Byte(12), byte(Loop2))),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *MorfHarmonic) ToBytes() []byte {
	buf := make([]byte, 0, MorfHarmonicSize)
	for i := range m.Copies {
		buf = append(buf, m.Copies[i].PatchNumber, m.Copies[i].SourceNumber)
	}
	buf = append(buf,
		m.Envelope.Time1.Byte(),
		m.Envelope.Time2.Byte(),
		m.Envelope.Time3.Byte(),
		m.Envelope.Time4.Byte(),
		byte(m.Envelope.LoopKind))
	return buf
}
