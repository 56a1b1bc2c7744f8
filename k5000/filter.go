package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// FilterSize is the byte count of the filter block.
const FilterSize = 20

// FilterMode selects the filter slope direction.
type FilterMode byte

const (
	LowPass FilterMode = iota
	HighPass
)

func (m FilterMode) String() string {
	if m == HighPass {
		return "HP"
	}
	return "LP"
}

// FilterEnvelope shapes the cutoff over time.
type FilterEnvelope struct {
	AttackTime  ranged.Value `json:"attack_time"`
	Decay1Time  ranged.Value `json:"decay1_time"`
	Decay1Level ranged.Value `json:"decay1_level"`
	Decay2Time  ranged.Value `json:"decay2_time"`
	Decay2Level ranged.Value `json:"decay2_level"`
	ReleaseTime ranged.Value `json:"release_time"`
}

// NewFilterEnvelope returns a flat filter envelope.
func NewFilterEnvelope() FilterEnvelope {
	return FilterEnvelope{
		AttackTime:  ranged.MustNew(EnvelopeTime, 0),
		Decay1Time:  ranged.MustNew(EnvelopeTime, 0),
		Decay1Level: ranged.MustNew(EnvelopeLevel, 0),
		Decay2Time:  ranged.MustNew(EnvelopeTime, 0),
		Decay2Level: ranged.MustNew(EnvelopeLevel, 0),
		ReleaseTime: ranged.MustNew(EnvelopeTime, 0),
	}
}

// ParseFilterEnvelope decodes the six envelope bytes.
func ParseFilterEnvelope(data []byte) (*FilterEnvelope, error) {
	d, err := sysex.NewDecoder(data, 6)
	if err != nil {
		return nil, err
	}
	e := FilterEnvelope{
		AttackTime:  d.Ranged(EnvelopeTime, 0),
		Decay1Time:  d.Ranged(EnvelopeTime, 1),
		Decay1Level: d.Ranged(EnvelopeLevel, 2),
		Decay2Time:  d.Ranged(EnvelopeTime, 3),
		Decay2Level: d.Ranged(EnvelopeLevel, 4),
		ReleaseTime: d.Ranged(EnvelopeTime, 5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *FilterEnvelope) ToBytes() []byte {
	return []byte{
		e.AttackTime.Byte(),
		e.Decay1Time.Byte(),
		e.Decay1Level.Byte(),
		e.Decay2Time.Byte(),
		e.Decay2Level.Byte(),
		e.ReleaseTime.Byte(),
	}
}

// FilterModulation is the key scaling and velocity control block of
// the filter envelope: two key scaling times, then depth and two
// times for velocity.
type FilterModulation struct {
	KSAttackTime  ranged.Value `json:"ks_attack_time"`
	KSDecay1Time  ranged.Value `json:"ks_decay1_time"`
	VelDepth      ranged.Value `json:"vel_depth"`
	VelAttackTime ranged.Value `json:"vel_attack_time"`
	VelDecay1Time ranged.Value `json:"vel_decay1_time"`
}

// NewFilterModulation returns a zeroed modulation block.
func NewFilterModulation() FilterModulation {
	return FilterModulation{
		KSAttackTime:  ranged.MustNew(ControlTime, 0),
		KSDecay1Time:  ranged.MustNew(ControlTime, 0),
		VelDepth:      ranged.MustNew(EnvelopeDepth, 0),
		VelAttackTime: ranged.MustNew(ControlTime, 0),
		VelDecay1Time: ranged.MustNew(ControlTime, 0),
	}
}

// ParseFilterModulation decodes the five modulation bytes.
func ParseFilterModulation(data []byte) (*FilterModulation, error) {
	d, err := sysex.NewDecoder(data, 5)
	if err != nil {
		return nil, err
	}
	m := FilterModulation{
		KSAttackTime:  d.Ranged(ControlTime, 0),
		KSDecay1Time:  d.Ranged(ControlTime, 1),
		VelDepth:      d.Ranged(EnvelopeDepth, 2),
		VelAttackTime: d.Ranged(ControlTime, 3),
		VelDecay1Time: d.Ranged(ControlTime, 4),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *FilterModulation) ToBytes() []byte {
	return []byte{
		m.KSAttackTime.Byte(),
		m.KSDecay1Time.Byte(),
		m.VelDepth.Byte(),
		m.VelAttackTime.Byte(),
		m.VelDecay1Time.Byte(),
	}
}

// Filter is the 20-byte DCF block of a source. Active is inverted on
// the wire: a stored 1 bypasses the filter.
type Filter struct {
	Active        bool             `json:"active"`
	Mode          FilterMode       `json:"mode"`
	VelocityCurve ranged.Value     `json:"velocity_curve"`
	Resonance     ranged.Value     `json:"resonance"`
	Level         ranged.Value     `json:"level"`
	Cutoff        ranged.Value     `json:"cutoff"`
	KSToCutoff    ranged.Value     `json:"ks_to_cutoff"`
	VelToCutoff   ranged.Value     `json:"vel_to_cutoff"`
	EnvelopeDepth ranged.Value     `json:"envelope_depth"`
	Envelope      FilterEnvelope   `json:"envelope"`
	Modulation    FilterModulation `json:"modulation"`
}

// NewFilter returns an active low-pass filter with the defaults.
func NewFilter() Filter {
	return Filter{
		Active:        true,
		VelocityCurve: ranged.MustNew(VelocityCurve, 1),
		Resonance:     ranged.MustNew(Resonance, 0),
		Level:         ranged.MustNew(FilterLevel, 0),
		Cutoff:        ranged.MustNew(Cutoff, 0),
		KSToCutoff:    ranged.MustNew(EnvelopeDepth, 0),
		VelToCutoff:   ranged.MustNew(EnvelopeDepth, 0),
		EnvelopeDepth: ranged.MustNew(EnvelopeDepth, 0),
		Envelope:      NewFilterEnvelope(),
		Modulation:    NewFilterModulation(),
	}
}

// ParseFilter decodes the 20-byte filter block.
func ParseFilter(data []byte) (*Filter, error) {
	d, err := sysex.NewDecoder(data, FilterSize)
	if err != nil {
		return nil, err
	}
	f := Filter{
		Active:        d.Byte(0) != 1,
		Mode:          FilterMode(d.Enum("filter mode", d.Byte(1), byte(HighPass))),
		VelocityCurve: d.RangedInt(VelocityCurve, int(d.Byte(2))+1),
		Resonance:     d.Ranged(Resonance, 3),
		Level:         d.Ranged(FilterLevel, 4),
		Cutoff:        d.Ranged(Cutoff, 5),
		KSToCutoff:    d.Ranged(EnvelopeDepth, 6),
		VelToCutoff:   d.Ranged(EnvelopeDepth, 7),
		EnvelopeDepth: d.Ranged(EnvelopeDepth, 8),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	env, err := ParseFilterEnvelope(data[9:15])
	if err != nil {
		return nil, err
	}
	f.Envelope = *env
	mod, err := ParseFilterModulation(data[15:FilterSize])
	if err != nil {
		return nil, err
	}
	f.Modulation = *mod
	return &f, nil
}

func (f *Filter) ToBytes() []byte {
	buf := make([]byte, 0, FilterSize)
	bypass := byte(0)
	if !f.Active {
		bypass = 1
	}
	buf = append(buf, bypass, byte(f.Mode), byte(f.VelocityCurve.Int()-1))
	buf = append(buf, f.Resonance.Byte(), f.Level.Byte(), f.Cutoff.Byte())
	buf = append(buf, f.KSToCutoff.Byte(), f.VelToCutoff.Byte(), f.EnvelopeDepth.Byte())
	buf = append(buf, f.Envelope.ToBytes()...)
	buf = append(buf, f.Modulation.ToBytes()...)
	return buf
}
