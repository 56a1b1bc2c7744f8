package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// LFOSize is the byte count of the LFO block.
const LFOSize = 11

// LFOWaveform selects the LFO shape.
type LFOWaveform byte

const (
	LFOTriangle LFOWaveform = iota
	LFOSquare
	LFOSawtooth
	LFOSine
	LFORandom
)

func (w LFOWaveform) String() string {
	switch w {
	case LFOTriangle:
		return "TRI"
	case LFOSquare:
		return "SQR"
	case LFOSawtooth:
		return "SAW"
	case LFOSine:
		return "SIN"
	case LFORandom:
		return "RND"
	}
	return "?"
}

// LFORoute is the per-destination depth and key scaling pair of the
// LFO: one each for vibrato, growl and tremolo.
type LFORoute struct {
	Depth      ranged.Value `json:"depth"`
	KeyScaling ranged.Value `json:"key_scaling"`
}

// NewLFORoute returns a zeroed route.
func NewLFORoute() LFORoute {
	return LFORoute{
		Depth:      ranged.MustNew(LFODepth, 0),
		KeyScaling: ranged.MustNew(KeyScaling, 0),
	}
}

// LFO is the 11-byte LFO block of a source.
type LFO struct {
	Waveform      LFOWaveform  `json:"waveform"`
	Speed         ranged.Value `json:"speed"`
	DelayOnset    ranged.Value `json:"delay_onset"`
	FadeInTime    ranged.Value `json:"fade_in_time"`
	FadeInToSpeed ranged.Value `json:"fade_in_to_speed"`
	Vibrato       LFORoute     `json:"vibrato"`
	Growl         LFORoute     `json:"growl"`
	Tremolo       LFORoute     `json:"tremolo"`
}

// NewLFO returns an LFO with the defaults.
func NewLFO() LFO {
	return LFO{
		Speed:         ranged.MustNew(LFOSpeed, 0),
		DelayOnset:    ranged.MustNew(Level, 0),
		FadeInTime:    ranged.MustNew(Level, 0),
		FadeInToSpeed: ranged.MustNew(Level, 0),
		Vibrato:       NewLFORoute(),
		Growl:         NewLFORoute(),
		Tremolo:       NewLFORoute(),
	}
}

// ParseLFO decodes the 11-byte LFO block.
func ParseLFO(data []byte) (*LFO, error) {
	d, err := sysex.NewDecoder(data, LFOSize)
	if err != nil {
		return nil, err
	}
	l := LFO{
		Waveform:      LFOWaveform(d.Enum("LFO waveform", d.Byte(0), byte(LFORandom))),
		Speed:         d.Ranged(LFOSpeed, 1),
		DelayOnset:    d.Ranged(Level, 2),
		FadeInTime:    d.Ranged(Level, 3),
		FadeInToSpeed: d.Ranged(Level, 4),
		Vibrato:       LFORoute{Depth: d.Ranged(LFODepth, 5), KeyScaling: d.Ranged(KeyScaling, 6)},
		Growl:         LFORoute{Depth: d.Ranged(LFODepth, 7), KeyScaling: d.Ranged(KeyScaling, 8)},
		Tremolo:       LFORoute{Depth: d.Ranged(LFODepth, 9), KeyScaling: d.Ranged(KeyScaling, 10)},
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *LFO) ToBytes() []byte {
	return []byte{
		byte(l.Waveform),
		l.Speed.Byte(),
		l.DelayOnset.Byte(),
		l.FadeInTime.Byte(),
		l.FadeInToSpeed.Byte(),
		l.Vibrato.Depth.Byte(), l.Vibrato.KeyScaling.Byte(),
		l.Growl.Depth.Byte(), l.Growl.KeyScaling.Byte(),
		l.Tremolo.Depth.Byte(), l.Tremolo.KeyScaling.Byte(),
	}
}
