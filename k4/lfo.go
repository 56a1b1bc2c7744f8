package k4

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// LFOShape is the waveform of the LFO and the vibrato oscillator.
type LFOShape byte

const (
	ShapeTriangle LFOShape = iota
	ShapeSawtooth
	ShapeSquare
	ShapeRandom
)

func (s LFOShape) String() string {
	switch s {
	case ShapeTriangle:
		return "TRI"
	case ShapeSawtooth:
		return "SAW"
	case ShapeSquare:
		return "SQR"
	case ShapeRandom:
		return "RND"
	}
	return "?"
}

// LFO is the single patch LFO block, bytes s24..s28.
type LFO struct {
	Shape         LFOShape     `json:"shape"`
	Speed         ranged.Value `json:"speed"`
	Delay         ranged.Value `json:"delay"`
	Depth         ranged.Value `json:"depth"`
	PressureDepth ranged.Value `json:"pressure_depth"`
}

// NewLFO returns an LFO with the default settings.
func NewLFO() LFO {
	return LFO{
		Shape:         ShapeTriangle,
		Speed:         ranged.MustNew(Level, 0),
		Delay:         ranged.MustNew(Level, 0),
		Depth:         ranged.MustNew(Depth, 0),
		PressureDepth: ranged.MustNew(Depth, 0),
	}
}

// ParseLFO decodes the five LFO bytes.
func ParseLFO(data []byte) (*LFO, error) {
	d, err := sysex.NewDecoder(data, 5)
	if err != nil {
		return nil, err
	}
	l := LFO{
		Shape:         LFOShape(d.Byte(0) & 0x03),
		Speed:         d.RangedByte(Level, d.Byte(1)&0x7F),
		Delay:         d.RangedByte(Level, d.Byte(2)&0x7F),
		Depth:         d.RangedByte(Depth, d.Byte(3)&0x7F),
		PressureDepth: d.RangedByte(Depth, d.Byte(4)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *LFO) ToBytes() []byte {
	return []byte{
		byte(l.Shape),
		l.Speed.Byte(),
		l.Delay.Byte(),
		l.Depth.Byte(),
		l.PressureDepth.Byte(),
	}
}

// Vibrato is assembled from bytes scattered around the single patch
// common block: the shape shares s14 with the source mutes, the other
// three live in s16, s22 and s23.
type Vibrato struct {
	Shape    LFOShape     `json:"shape"`
	Speed    ranged.Value `json:"speed"`
	Pressure ranged.Value `json:"pressure"`
	Depth    ranged.Value `json:"depth"`
}

// NewVibrato returns a vibrato block with the default settings.
func NewVibrato() Vibrato {
	return Vibrato{
		Shape:    ShapeTriangle,
		Speed:    ranged.MustNew(Level, 0),
		Pressure: ranged.MustNew(Depth, 0),
		Depth:    ranged.MustNew(Depth, 0),
	}
}

// ParseVibrato decodes the four gathered vibrato bytes; the shape is
// taken from bits 4..5 of the first.
func ParseVibrato(data []byte) (*Vibrato, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	v := Vibrato{
		Shape:    LFOShape((d.Byte(0) >> 4) & 0x03),
		Speed:    d.RangedByte(Level, d.Byte(1)&0x7F),
		Pressure: d.RangedByte(Depth, d.Byte(2)&0x7F),
		Depth:    d.RangedByte(Depth, d.Byte(3)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &v, nil
}

// ToBytes emits the gathered form: the shape unshifted in byte 0,
// followed by speed, pressure and depth.
func (v *Vibrato) ToBytes() []byte {
	return []byte{
		byte(v.Shape),
		v.Speed.Byte(),
		v.Pressure.Byte(),
		v.Depth.Byte(),
	}
}

// AutoBend is the automatic pitch bend block, bytes s18..s21.
type AutoBend struct {
	Time           ranged.Value `json:"time"`
	Depth          ranged.Value `json:"depth"`
	KeyScalingTime ranged.Value `json:"key_scaling_time"`
	VelocityDepth  ranged.Value `json:"velocity_depth"`
}

// NewAutoBend returns an auto-bend block with the default settings.
func NewAutoBend() AutoBend {
	return AutoBend{
		Time:           ranged.MustNew(Level, 0),
		Depth:          ranged.MustNew(Depth, 0),
		KeyScalingTime: ranged.MustNew(Depth, 0),
		VelocityDepth:  ranged.MustNew(Depth, 0),
	}
}

// ParseAutoBend decodes the four auto-bend bytes.
func ParseAutoBend(data []byte) (*AutoBend, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	a := AutoBend{
		Time:           d.RangedByte(Level, d.Byte(0)&0x7F),
		Depth:          d.RangedByte(Depth, d.Byte(1)&0x7F),
		KeyScalingTime: d.RangedByte(Depth, d.Byte(2)&0x7F),
		VelocityDepth:  d.RangedByte(Depth, d.Byte(3)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *AutoBend) ToBytes() []byte {
	return []byte{
		a.Time.Byte(),
		a.Depth.Byte(),
		a.KeyScalingTime.Byte(),
		a.VelocityDepth.Byte(),
	}
}
