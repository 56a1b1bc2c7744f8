package k5000

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

// Effect is one of the 48 K5000 effect types.
type Effect byte

const (
	Hall1 Effect = iota
	Hall2
	Hall3
	Room1
	Room2
	Room3
	Plate1
	Plate2
	Plate3
	Reverse
	LongDelay
	EarlyReflection1
	EarlyReflection2
	TapDelay1
	TapDelay2
	SingleDelay
	DualDelay
	StereoDelay
	CrossDelay
	AutoPan
	AutoPanAndDelay
	Chorus1
	Chorus2
	Chorus1AndDelay
	Chorus2AndDelay
	Flanger1
	Flanger2
	Flanger1AndDelay
	Flanger2AndDelay
	Ensemble
	EnsembleAndDelay
	Celeste
	CelesteAndDelay
	Tremolo
	TremoloAndDelay
	Phaser1
	Phaser2
	Phaser1AndDelay
	Phaser2AndDelay
	Rotary
	AutoWah
	Bandpass
	Exciter
	Enhancer
	Overdrive
	Distortion
	OverdriveAndDelay
	DistortionAndDelay
)

var effectNames = [48]string{
	"Hall 1", "Hall 2", "Hall 3", "Room 1", "Room 2", "Room 3",
	"Plate 1", "Plate 2", "Plate 3", "Reverse", "Long Delay",
	"Early Reflection 1", "Early Reflection 2", "Tap Delay 1",
	"Tap Delay 2", "Single Delay", "Dual Delay", "Stereo Delay",
	"Cross Delay", "Auto Pan", "Auto Pan & Delay", "Chorus 1",
	"Chorus 2", "Chorus 1 & Delay", "Chorus 2 & Delay", "Flanger 1",
	"Flanger 2", "Flanger 1 & Delay", "Flanger 2 & Delay", "Ensemble",
	"Ensemble & Delay", "Celeste", "Celeste & Delay", "Tremolo",
	"Tremolo & Delay", "Phaser 1", "Phaser 2", "Phaser 1 & Delay",
	"Phaser 2 & Delay", "Rotary", "Auto Wah", "Bandpass", "Exciter",
	"Enhancer", "Overdrive", "Distortion", "Overdrive & Delay",
	"Distortion & Delay",
}

// effectParameterNames holds the display names of the four parameters
// of each effect type.
var effectParameterNames = [48][4]string{
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Reverb Time", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Feedback", "Predelay Time", "High Frequency Damping"},
	{"Dry/Wet 2", "Feedback", "Delay Time", "High Frequency Damping"},
	{"Slope", "Predelay Time", "Feedback", "?"},
	{"Slope", "Predelay Time", "Feedback", "?"},
	{"Delay Time 1", "Tap Level", "Delay Time 2", "?"},
	{"Delay Time 1", "Tap Level", "Delay Time 2", "?"},
	{"Delay Time Fine", "Delay Time Coarse", "Feedback", "?"},
	{"Delay Time Left", "Feedback Left", "Delay Time Right", "Feedback Right"},
	{"Delay Time", "Feedback", "?", "?"},
	{"Delay Time", "Feedback", "?", "?"},
	{"Speed", "Depth", "Predelay Time", "Wave"},
	{"Speed", "Depth", "Delay Time", "Wave"},
	{"Speed", "Depth", "Predelay Time", "Wave"},
	{"Speed", "Depth", "Predelay Time", "Wave"},
	{"Speed", "Depth", "Delay Time", "Wave"},
	{"Speed", "Depth", "Delay Time", "Wave"},
	{"Speed", "Depth", "Predelay Time", "Feedback"},
	{"Speed", "Depth", "Predelay Time", "Feedback"},
	{"Speed", "Depth", "Delay Time", "Feedback"},
	{"Speed", "Depth", "Delay Time", "Feedback"},
	{"Depth", "Predelay Time", "?", "?"},
	{"Depth", "Delay Time", "?", "?"},
	{"Speed", "Depth", "Predelay Time", "?"},
	{"Speed", "Depth", "Delay Time", "?"},
	{"Speed", "Depth", "Predelay Time", "Wave"},
	{"Speed", "Depth", "Delay Time", "Wave"},
	{"Speed", "Depth", "Predelay Time", "Feedback"},
	{"Speed", "Depth", "Predelay Time", "Feedback"},
	{"Speed", "Depth", "Delay Time", "Feedback"},
	{"Speed", "Depth", "Delay Time", "Feedback"},
	{"Slow Speed", "Fast Speed", "Acceleration", "Slow/Fast Switch"},
	{"Sense", "Frequency Bottom", "Frequency Top", "Resonance"},
	{"Center Frequency", "Bandwidth", "?", "?"},
	{"EQ Low", "EQ High", "Intensity", "?"},
	{"EQ Low", "EQ High", "Intensity", "?"},
	{"EQ Low", "EQ High", "Output Level", "Drive"},
	{"EQ Low", "EQ High", "Output Level", "Drive"},
	{"EQ Low", "EQ High", "Delay Time", "Drive"},
	{"EQ Low", "EQ High", "Delay Time", "Drive"},
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect %#02x", byte(e))
}

// ParameterNames returns the display names of the effect's four
// parameters.
func (e Effect) ParameterNames() [4]string {
	return effectParameterNames[e]
}

// effectDefinitionSize is the byte count of one effect definition.
const effectDefinitionSize = 6

// EffectDefinition is one effect slot: type, depth and the four
// type-specific parameters.
type EffectDefinition struct {
	Effect     Effect       `json:"effect"`
	Depth      ranged.Value `json:"depth"`
	Parameter1 ranged.Value `json:"parameter1"`
	Parameter2 ranged.Value `json:"parameter2"`
	Parameter3 ranged.Value `json:"parameter3"`
	Parameter4 ranged.Value `json:"parameter4"`
}

// NewEffectDefinition returns a zeroed Hall 1 definition.
func NewEffectDefinition() *EffectDefinition {
	return &EffectDefinition{
		Depth:      ranged.MustNew(EffectDepth, 0),
		Parameter1: ranged.MustNew(EffectParameter, 0),
		Parameter2: ranged.MustNew(EffectParameter, 0),
		Parameter3: ranged.MustNew(EffectParameter, 0),
		Parameter4: ranged.MustNew(EffectParameter, 0),
	}
}

// ParseEffectDefinition decodes the six definition bytes.
func ParseEffectDefinition(data []byte) (*EffectDefinition, error) {
	d, err := sysex.NewDecoder(data, effectDefinitionSize)
	if err != nil {
		return nil, err
	}
	e := EffectDefinition{
		Effect:     Effect(d.Enum("effect", d.Byte(0), byte(DistortionAndDelay))),
		Depth:      d.Ranged(EffectDepth, 1),
		Parameter1: d.Ranged(EffectParameter, 2),
		Parameter2: d.Ranged(EffectParameter, 3),
		Parameter3: d.Ranged(EffectParameter, 4),
		Parameter4: d.Ranged(EffectParameter, 5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *EffectDefinition) ToBytes() []byte {
	return []byte{
		byte(e.Effect),
		e.Depth.Byte(),
		e.Parameter1.Byte(),
		e.Parameter2.Byte(),
		e.Parameter3.Byte(),
		e.Parameter4.Byte(),
	}
}

func (e *EffectDefinition) String() string {
	names := e.Effect.ParameterNames()
	return fmt.Sprintf("%s depth=%s %s=%s %s=%s %s=%s %s=%s",
		e.Effect, e.Depth,
		names[0], e.Parameter1, names[1], e.Parameter2,
		names[2], e.Parameter3, names[3], e.Parameter4)
}

// EffectSettingsSize is the byte count of the effect block of a patch.
const EffectSettingsSize = 31

// EffectAlgorithm selects how the four effects are chained, stored
// 0-based for algorithms 1..4.
type EffectAlgorithm byte

func (a EffectAlgorithm) String() string {
	return fmt.Sprintf("Algorithm %d", byte(a)+1)
}

// EffectSettings is the 31-byte effect block: algorithm, reverb and
// four effect definitions.
type EffectSettings struct {
	Algorithm EffectAlgorithm     `json:"algorithm"`
	Reverb    EffectDefinition    `json:"reverb"`
	Effects   [4]EffectDefinition `json:"effects"`
}

// NewEffectSettings returns the block with algorithm 1 and all slots
// zeroed.
func NewEffectSettings() *EffectSettings {
	s := EffectSettings{Reverb: *NewEffectDefinition()}
	for i := range s.Effects {
		s.Effects[i] = *NewEffectDefinition()
	}
	return &s
}

// ParseEffectSettings decodes the 31-byte effect block.
func ParseEffectSettings(data []byte) (*EffectSettings, error) {
	if len(data) < EffectSettingsSize {
		return nil, &sysex.TooShortError{Expected: EffectSettingsSize, Actual: len(data)}
	}
	alg := data[0]
	if alg > 3 {
		return nil, &sysex.DiscriminantError{Field: "effect algorithm", Value: alg}
	}
	s := EffectSettings{Algorithm: EffectAlgorithm(alg)}

	reverb, err := ParseEffectDefinition(data[1:7])
	if err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}
	s.Reverb = *reverb

	for i := range s.Effects {
		off := 7 + i*effectDefinitionSize
		e, err := ParseEffectDefinition(data[off : off+effectDefinitionSize])
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i+1, err)
		}
		s.Effects[i] = *e
	}
	return &s, nil
}

func (s *EffectSettings) ToBytes() []byte {
	buf := make([]byte, 0, EffectSettingsSize)
	buf = append(buf, byte(s.Algorithm))
	buf = append(buf, s.Reverb.ToBytes()...)
	for i := range s.Effects {
		buf = append(buf, s.Effects[i].ToBytes()...)
	}
	return buf
}

// EffectDestination is the effect parameter a control route drives.
type EffectDestination byte

const (
	Effect1DryWet EffectDestination = iota
	Effect1Parameter
	Effect2DryWet
	Effect2Parameter
	Effect3DryWet
	Effect3Parameter
	Effect4DryWet
	Effect4Parameter
)

// EffectControlSource is one route from a controller into the effect
// block.
type EffectControlSource struct {
	Source      ControlSource     `json:"source"`
	Destination EffectDestination `json:"destination"`
	Depth       ranged.Value      `json:"depth"`
}

// NewEffectControlSource returns a route with zero depth.
func NewEffectControlSource() EffectControlSource {
	return EffectControlSource{Depth: ranged.MustNew(ControlDepth, 0)}
}

// ParseEffectControlSource decodes three bytes: source, destination,
// biased depth.
func ParseEffectControlSource(data []byte) (*EffectControlSource, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	s := EffectControlSource{
		Source:      ControlSource(d.Enum("control source", d.Byte(0), byte(SourceGeneral8))),
		Destination: EffectDestination(d.Enum("effect destination", d.Byte(1), byte(Effect4Parameter))),
		Depth:       d.Ranged(ControlDepth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *EffectControlSource) ToBytes() []byte {
	return []byte{byte(s.Source), byte(s.Destination), s.Depth.Byte()}
}

// EffectControlSize is the byte count of the effect control block.
const EffectControlSize = 6

// EffectControl is the two control routes into the effect block.
type EffectControl struct {
	Source1 EffectControlSource `json:"source1"`
	Source2 EffectControlSource `json:"source2"`
}

// NewEffectControl returns both routes with zero depth.
func NewEffectControl() EffectControl {
	return EffectControl{
		Source1: NewEffectControlSource(),
		Source2: NewEffectControlSource(),
	}
}

// ParseEffectControl decodes the six effect control bytes.
func ParseEffectControl(data []byte) (*EffectControl, error) {
	if len(data) < EffectControlSize {
		return nil, &sysex.TooShortError{Expected: EffectControlSize, Actual: len(data)}
	}
	s1, err := ParseEffectControlSource(data[0:3])
	if err != nil {
		return nil, err
	}
	s2, err := ParseEffectControlSource(data[3:6])
	if err != nil {
		return nil, err
	}
	return &EffectControl{Source1: *s1, Source2: *s2}, nil
}

func (c *EffectControl) ToBytes() []byte {
	return append(c.Source1.ToBytes(), c.Source2.ToBytes()...)
}
