package k4

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// FilterSize is the per-filter byte count inside a single patch.
const FilterSize = 14

// FilterEnvelope is a DCF envelope; unlike the DCA envelope its
// sustain is signed.
type FilterEnvelope struct {
	Attack  ranged.Value `json:"attack"`
	Decay   ranged.Value `json:"decay"`
	Sustain ranged.Value `json:"sustain"`
	Release ranged.Value `json:"release"`
}

// NewFilterEnvelope returns the default DCF envelope.
func NewFilterEnvelope() FilterEnvelope {
	return FilterEnvelope{
		Attack:  ranged.MustNew(Level, 0),
		Decay:   ranged.MustNew(Level, 50),
		Sustain: ranged.MustNew(Depth, 25),
		Release: ranged.MustNew(Level, 25),
	}
}

// ParseFilterEnvelope decodes four envelope bytes.
func ParseFilterEnvelope(data []byte) (*FilterEnvelope, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	e := FilterEnvelope{
		Attack:  d.RangedByte(Level, d.Byte(0)&0x7F),
		Decay:   d.RangedByte(Level, d.Byte(1)&0x7F),
		Sustain: d.Ranged(Depth, 2),
		Release: d.RangedByte(Level, d.Byte(3)&0x7F),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *FilterEnvelope) ToBytes() []byte {
	return []byte{e.Attack.Byte(), e.Decay.Byte(), e.Sustain.Byte(), e.Release.Byte()}
}

// Filter is one of the two DCFs of a single patch.
type Filter struct {
	Cutoff             ranged.Value    `json:"cutoff"`
	Resonance          ranged.Value    `json:"resonance"`
	CutoffModulation   LevelModulation `json:"cutoff_modulation"`
	LFOModulatesCutoff bool            `json:"lfo_modulates_cutoff"`
	EnvelopeDepth      ranged.Value    `json:"envelope_depth"`
	EnvelopeVelocity   ranged.Value    `json:"envelope_velocity"`
	Envelope           FilterEnvelope  `json:"envelope"`
	TimeModulation     TimeModulation  `json:"time_modulation"`
}

// NewFilter returns a filter with the default settings.
func NewFilter() Filter {
	return Filter{
		Cutoff:           ranged.MustNew(Cutoff, 49),
		Resonance:        ranged.MustNew(Resonance, 2),
		EnvelopeDepth:    ranged.MustNew(Depth, 0),
		EnvelopeVelocity: ranged.MustNew(Depth, 0),
		Envelope:         NewFilterEnvelope(),
		CutoffModulation: LevelModulation{
			VelocityDepth:   ranged.MustNew(Depth, 0),
			PressureDepth:   ranged.MustNew(Depth, 0),
			KeyScalingDepth: ranged.MustNew(Depth, 0),
		},
		TimeModulation: TimeModulation{
			AttackVelocity:  ranged.MustNew(Depth, 0),
			ReleaseVelocity: ranged.MustNew(Depth, 0),
			KeyScaling:      ranged.MustNew(Depth, 0),
		},
	}
}

// ParseFilter decodes the fourteen gathered filter bytes.
func ParseFilter(data []byte) (*Filter, error) {
	d, err := sysex.NewDecoder(data, FilterSize)
	if err != nil {
		return nil, err
	}

	var f Filter
	f.Cutoff = d.RangedByte(Cutoff, d.Byte(0)&0x7F)
	f.Resonance = d.RangedByte(Resonance, d.Byte(1)&0x07)
	f.LFOModulatesCutoff = d.Byte(1)&0x08 != 0
	f.EnvelopeDepth = d.Ranged(Depth, 5)
	f.EnvelopeVelocity = d.Ranged(Depth, 6)
	if err := d.Err(); err != nil {
		return nil, err
	}

	cm, err := ParseLevelModulation(data[2:5])
	if err != nil {
		return nil, err
	}
	f.CutoffModulation = *cm

	env, err := ParseFilterEnvelope(data[7:11])
	if err != nil {
		return nil, err
	}
	f.Envelope = *env

	tm, err := ParseTimeModulation(data[11:14])
	if err != nil {
		return nil, err
	}
	f.TimeModulation = *tm

	return &f, nil
}

// ToBytes emits the fourteen filter bytes in gathered order.
func (f *Filter) ToBytes() []byte {
	buf := make([]byte, 0, FilterSize)
	buf = append(buf, f.Cutoff.Byte())

	res := f.Resonance.Byte()
	if f.LFOModulatesCutoff {
		res |= 0x08
	}
	buf = append(buf, res)

	buf = append(buf, f.CutoffModulation.ToBytes()...)
	buf = append(buf, f.EnvelopeDepth.Byte(), f.EnvelopeVelocity.Byte())
	buf = append(buf, f.Envelope.ToBytes()...)
	buf = append(buf, f.TimeModulation.ToBytes()...)
	return buf
}
