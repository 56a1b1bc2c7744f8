package k5000

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

const (
	// SourceControlSize is the byte count of the source control block.
	SourceControlSize = 28
	// SourceSize is the byte count of one full source.
	SourceSize = 86
)

// SourceControl is the zone, routing and modulation block at the
// start of a source.
type SourceControl struct {
	ZoneLow        ranged.Value           `json:"zone_low"`
	ZoneHigh       ranged.Value           `json:"zone_high"`
	VelocitySwitch VelocitySwitchSettings `json:"velocity_switch"`
	EffectPath     byte                   `json:"effect_path"`
	Volume         ranged.Value           `json:"volume"`
	BenderPitch    ranged.Value           `json:"bender_pitch"`
	BenderCutoff   ranged.Value           `json:"bender_cutoff"`
	Modulation     ModulationSettings     `json:"modulation"`
	KeyOnDelay     ranged.Value           `json:"key_on_delay"`
	Pan            PanSettings            `json:"pan"`
}

// NewSourceControl returns a full-range source control block.
func NewSourceControl() SourceControl {
	return SourceControl{
		ZoneLow:        ranged.MustNew(Key, 0),
		ZoneHigh:       ranged.MustNew(Key, 127),
		VelocitySwitch: NewVelocitySwitch(VelocitySwitchOff, 0),
		Volume:         ranged.MustNew(Volume, 100),
		BenderPitch:    ranged.MustNew(BenderPitch, 0),
		BenderCutoff:   ranged.MustNew(BenderCutoff, 0),
		Modulation:     NewModulationSettings(),
		KeyOnDelay:     ranged.MustNew(KeyOnDelay, 0),
		Pan:            NewPanSettings(),
	}
}

// ParseSourceControl decodes the 28-byte control block.
func ParseSourceControl(data []byte) (*SourceControl, error) {
	d, err := sysex.NewDecoder(data, SourceControlSize)
	if err != nil {
		return nil, err
	}
	c := SourceControl{
		ZoneLow:      d.Ranged(Key, 0),
		ZoneHigh:     d.Ranged(Key, 1),
		EffectPath:   d.Byte(3),
		Volume:       d.Ranged(Volume, 4),
		BenderPitch:  d.Ranged(BenderPitch, 5),
		BenderCutoff: d.Ranged(BenderCutoff, 6),
		KeyOnDelay:   d.Ranged(KeyOnDelay, 25),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	c.VelocitySwitch, err = ParseVelocitySwitch(data[2])
	if err != nil {
		return nil, err
	}
	mod, err := ParseModulationSettings(data[7:25])
	if err != nil {
		return nil, err
	}
	c.Modulation = *mod
	pan, err := ParsePanSettings(data[26:28])
	if err != nil {
		return nil, err
	}
	c.Pan = *pan
	return &c, nil
}

func (c *SourceControl) ToBytes() []byte {
	buf := make([]byte, 0, SourceControlSize)
	buf = append(buf, c.ZoneLow.Byte(), c.ZoneHigh.Byte(), c.VelocitySwitch.ToByte())
	buf = append(buf, c.EffectPath, c.Volume.Byte(), c.BenderPitch.Byte(), c.BenderCutoff.Byte())
	buf = append(buf, c.Modulation.ToBytes()...)
	buf = append(buf, c.KeyOnDelay.Byte())
	buf = append(buf, c.Pan.ToBytes()...)
	return buf
}

// Source is one of the up to six sources of a single patch: control,
// oscillator, filter, amplifier and LFO blocks back to back.
type Source struct {
	Control    SourceControl `json:"control"`
	Oscillator Oscillator    `json:"oscillator"`
	Filter     Filter        `json:"filter"`
	Amplifier  Amplifier     `json:"amplifier"`
	LFO        LFO           `json:"lfo"`
}

// NewPCMSource returns a PCM source with the defaults.
func NewPCMSource() Source {
	return Source{
		Control:    NewSourceControl(),
		Oscillator: NewOscillator(),
		Filter:     NewFilter(),
		Amplifier:  NewAmplifier(),
		LFO:        NewLFO(),
	}
}

// NewAdditiveSource returns an additive source with the defaults. The
// patch must carry an additive kit for it.
func NewAdditiveSource() Source {
	s := NewPCMSource()
	s.Oscillator = NewAdditiveOscillator()
	return s
}

// IsAdditive reports whether the source uses the additive engine.
func (s *Source) IsAdditive() bool { return s.Oscillator.IsAdditive() }

// ParseSource decodes an 86-byte source.
func ParseSource(data []byte) (*Source, error) {
	if len(data) < SourceSize {
		return nil, &sysex.TooShortError{Expected: SourceSize, Actual: len(data)}
	}
	var s Source

	control, err := ParseSourceControl(data[0:28])
	if err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}
	s.Control = *control

	osc, err := ParseOscillator(data[28:40])
	if err != nil {
		return nil, fmt.Errorf("oscillator: %w", err)
	}
	s.Oscillator = *osc

	filter, err := ParseFilter(data[40:60])
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	s.Filter = *filter

	amp, err := ParseAmplifier(data[60:75])
	if err != nil {
		return nil, fmt.Errorf("amplifier: %w", err)
	}
	s.Amplifier = *amp

	lfo, err := ParseLFO(data[75:86])
	if err != nil {
		return nil, fmt.Errorf("lfo: %w", err)
	}
	s.LFO = *lfo

	return &s, nil
}

// ToBytes emits the 86 source bytes.
func (s *Source) ToBytes() []byte {
	buf := make([]byte, 0, SourceSize)
	buf = append(buf, s.Control.ToBytes()...)
	buf = append(buf, s.Oscillator.ToBytes()...)
	buf = append(buf, s.Filter.ToBytes()...)
	buf = append(buf, s.Amplifier.ToBytes()...)
	buf = append(buf, s.LFO.ToBytes()...)
	return buf
}
