package k4

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

// SourceSize is the per-source byte count inside a single patch.
const SourceSize = 7

// KeyTrack is either on, or fixed to a single key.
type KeyTrack struct {
	On       bool `json:"on"`
	FixedKey byte `json:"fixed_key,omitempty"`
}

func (k KeyTrack) String() string {
	if k.On {
		return "ON"
	}
	return fmt.Sprintf("fixed %s", NoteName(k.FixedKey))
}

// Source is one of the four oscillators of a single patch.
type Source struct {
	Delay         ranged.Value `json:"delay"`
	Wave          Wave         `json:"wave"`
	KSCurve       ranged.Value `json:"ks_curve"`
	Coarse        ranged.Value `json:"coarse"`
	KeyTrack      KeyTrack     `json:"key_track"`
	Fine          ranged.Value `json:"fine"`
	PressFreq     bool         `json:"press_freq"`
	Vibrato       bool         `json:"vibrato"`
	VelocityCurve ranged.Value `json:"velocity_curve"`
}

// NewSource returns a source with the default settings.
func NewSource() Source {
	return Source{
		Delay:         ranged.MustNew(Level, 0),
		Wave:          Wave{Number: ranged.MustNew(WaveNumber, 1)},
		KSCurve:       ranged.MustNew(Curve, 1),
		Coarse:        ranged.MustNew(Coarse, 0),
		KeyTrack:      KeyTrack{On: true},
		Fine:          ranged.MustNew(Fine, 0),
		PressFreq:     true,
		Vibrato:       true,
		VelocityCurve: ranged.MustNew(Curve, 1),
	}
}

// ParseSource decodes the seven gathered source bytes.
func ParseSource(data []byte) (*Source, error) {
	d, err := sysex.NewDecoder(data, SourceSize)
	if err != nil {
		return nil, err
	}

	var s Source
	s.Delay = d.RangedByte(Level, d.Byte(0)&0x7F)

	// s34: wave select h in bit 0, KS curve in bits 4..6.
	s.KSCurve = d.RangedInt(Curve, int((d.Byte(1)>>4)&0x07)+1)
	s.Wave, err = ParseWave(d.Byte(1), d.Byte(2))
	if err != nil {
		return nil, err
	}

	// s42: coarse in bits 0..5, key track switch in bit 6.
	b := d.Byte(3)
	s.Coarse = d.RangedInt(Coarse, int(b&0x3F)-24)
	if b&0x40 != 0 {
		s.KeyTrack = KeyTrack{On: true}
	} else {
		s.KeyTrack = KeyTrack{FixedKey: d.Byte(4) & 0x7F}
	}

	s.Fine = d.RangedByte(Fine, d.Byte(5)&0x7F)

	b = d.Byte(6)
	s.PressFreq = b&0x01 != 0
	s.Vibrato = b&0x02 != 0
	s.VelocityCurve = d.RangedInt(Curve, int((b>>2)&0x07)+1)

	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ToBytes emits the seven source bytes in gathered order.
func (s *Source) ToBytes() []byte {
	buf := make([]byte, 0, SourceSize)
	buf = append(buf, s.Delay.Byte())

	s34 := byte(s.KSCurve.Int()-1) << 4
	s34 |= s.Wave.HighByte()
	buf = append(buf, s34, s.Wave.LowByte())

	s42 := byte(s.Coarse.Int() + 24)
	var key byte
	if s.KeyTrack.On {
		s42 |= 0x40
	} else {
		key = s.KeyTrack.FixedKey
	}
	buf = append(buf, s42, key)

	buf = append(buf, s.Fine.Byte())

	s54 := byte(s.VelocityCurve.Int()-1) << 2
	if s.PressFreq {
		s54 |= 0x01
	}
	if s.Vibrato {
		s54 |= 0x02
	}
	buf = append(buf, s54)

	return buf
}
