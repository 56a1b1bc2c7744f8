package k5000

import (
	"ksynth/ranged"
	"ksynth/sysex"
)

// VelocitySwitch selects how a source reacts to the velocity threshold.
type VelocitySwitch byte

const (
	VelocitySwitchOff VelocitySwitch = iota
	VelocitySwitchLoud
	VelocitySwitchSoft
)

func (v VelocitySwitch) String() string {
	switch v {
	case VelocitySwitchOff:
		return "Off"
	case VelocitySwitchLoud:
		return "Loud"
	case VelocitySwitchSoft:
		return "Soft"
	}
	return "?"
}

// velocityThresholds maps the five stored index bits to the actual
// velocity threshold.
var velocityThresholds = [32]byte{
	4, 8, 12, 16, 20, 24, 28, 32,
	36, 40, 44, 48, 52, 56, 60, 64,
	68, 72, 76, 80, 84, 88, 92, 96,
	100, 104, 108, 112, 116, 120, 124, 127,
}

// VelocitySwitchSettings packs the switch kind into bits 5..6 and the
// threshold table index into bits 0..4 of a single byte.
type VelocitySwitchSettings struct {
	Kind      VelocitySwitch `json:"kind"`
	Threshold byte           `json:"threshold"`
}

// NewVelocitySwitch snaps the threshold down to the nearest value the
// instrument stores; values below the first table entry clamp up to it.
func NewVelocitySwitch(kind VelocitySwitch, threshold byte) VelocitySwitchSettings {
	snapped := velocityThresholds[0]
	for _, t := range velocityThresholds {
		if t <= threshold {
			snapped = t
		}
	}
	return VelocitySwitchSettings{Kind: kind, Threshold: snapped}
}

// ParseVelocitySwitch decodes the packed velocity switch byte.
func ParseVelocitySwitch(b byte) (VelocitySwitchSettings, error) {
	kind := (b >> 5) & 0x03
	if kind > byte(VelocitySwitchSoft) {
		return VelocitySwitchSettings{}, &sysex.DiscriminantError{Field: "velocity switch", Value: kind}
	}
	return VelocitySwitchSettings{
		Kind:      VelocitySwitch(kind),
		Threshold: velocityThresholds[b&0x1F],
	}, nil
}

// ToByte emits the packed velocity switch byte. A threshold that is
// not in the table rounds down to the nearest entry.
func (v VelocitySwitchSettings) ToByte() byte {
	index := 0
	for i, t := range velocityThresholds {
		if t <= v.Threshold {
			index = i
		}
	}
	return byte(index) | byte(v.Kind)<<5
}

// ControlSource is a physical or MIDI controller feeding a modulation
// route.
type ControlSource byte

const (
	SourceBender ControlSource = iota
	SourceChannelPressure
	SourceWheel
	SourceExpression
	SourceMIDIVolume
	SourcePanPot
	SourceGeneral1
	SourceGeneral2
	SourceGeneral3
	SourceGeneral4
	SourceGeneral5
	SourceGeneral6
	SourceGeneral7
	SourceGeneral8
)

var controlSourceNames = [...]string{
	"Bender", "Channel pressure", "Wheel", "Expression", "MIDI volume",
	"Pan pot", "General 1", "General 2", "General 3", "General 4",
	"General 5", "General 6", "General 7", "General 8",
}

func (s ControlSource) String() string {
	if int(s) < len(controlSourceNames) {
		return controlSourceNames[s]
	}
	return "?"
}

// ControlDestination is the patch parameter a modulation route drives.
type ControlDestination byte

const (
	DestPitchOffset ControlDestination = iota
	DestCutoffOffset
	DestLevel
	DestVibratoDepthOffset
	DestGrowlDepthOffset
	DestTremoloDepthOffset
	DestLFOSpeedOffset
	DestAttackTimeOffset
	DestDecay1TimeOffset
	DestReleaseTimeOffset
	DestVelocityOffset
	DestResonanceOffset
	DestPanPotOffset
	DestFormantBiasOffset
	DestFormantEnvLFODepthOffset
	DestFormantEnvLFOSpeedOffset
	DestHarmonicLowOffset
	DestHarmonicHighOffset
	DestHarmonicEvenOffset
	DestHarmonicOddOffset
)

var controlDestinationNames = [...]string{
	"Pitch offset", "Cutoff offset", "Level", "Vibrato depth offset",
	"Growl depth offset", "Tremolo depth offset", "LFO speed offset",
	"Attack time offset", "Decay 1 time offset", "Release time offset",
	"Velocity offset", "Resonance offset", "Pan pot offset",
	"Formant filter bias offset", "Formant filter envelope LFO depth offset",
	"Formant filter envelope LFO speed offset", "Harmonic low offset",
	"Harmonic high offset", "Harmonic even offset", "Harmonic odd offset",
}

func (d ControlDestination) String() string {
	if int(d) < len(controlDestinationNames) {
		return controlDestinationNames[d]
	}
	return "?"
}

// MacroController drives two destinations with signed depths.
type MacroController struct {
	Destination1 ControlDestination `json:"destination1"`
	Depth1       ranged.Value       `json:"depth1"`
	Destination2 ControlDestination `json:"destination2"`
	Depth2       ranged.Value       `json:"depth2"`
}

// NewMacroController returns a macro with both routes at zero depth.
func NewMacroController() MacroController {
	return MacroController{
		Depth1: ranged.MustNew(MacroDepth, 0),
		Depth2: ranged.MustNew(MacroDepth, 0),
	}
}

// ParseMacroController decodes four bytes: destination and depth for
// each of the two routes.
func ParseMacroController(data []byte) (*MacroController, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	m := MacroController{
		Destination1: ControlDestination(d.Enum("macro destination", d.Byte(0), byte(DestHarmonicOddOffset))),
		Depth1:       d.Ranged(MacroDepth, 1),
		Destination2: ControlDestination(d.Enum("macro destination", d.Byte(2), byte(DestHarmonicOddOffset))),
		Depth2:       d.Ranged(MacroDepth, 3),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *MacroController) ToBytes() []byte {
	return []byte{byte(m.Destination1), m.Depth1.Byte(), byte(m.Destination2), m.Depth2.Byte()}
}

// AssignableController routes one control source to one destination.
type AssignableController struct {
	Source      ControlSource      `json:"source"`
	Destination ControlDestination `json:"destination"`
	Depth       ranged.Value       `json:"depth"`
}

// NewAssignableController returns a route with zero depth.
func NewAssignableController() AssignableController {
	return AssignableController{Depth: ranged.MustNew(ControlDepth, 0)}
}

// ParseAssignableController decodes three bytes: source, destination,
// depth.
func ParseAssignableController(data []byte) (*AssignableController, error) {
	d, err := sysex.NewDecoder(data, 3)
	if err != nil {
		return nil, err
	}
	a := AssignableController{
		Source:      ControlSource(d.Enum("control source", d.Byte(0), byte(SourceGeneral8))),
		Destination: ControlDestination(d.Enum("control destination", d.Byte(1), byte(DestHarmonicOddOffset))),
		Depth:       d.Ranged(ControlDepth, 2),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *AssignableController) ToBytes() []byte {
	return []byte{byte(a.Source), byte(a.Destination), a.Depth.Byte()}
}

// modulationSize is the byte count of the source modulation block.
const modulationSize = 18

// ModulationSettings is the per-source modulation block: a macro for
// each of pressure, wheel and expression, plus two assignable routes.
// The assignable routes are three bytes each, not four.
type ModulationSettings struct {
	Pressure    MacroController      `json:"pressure"`
	Wheel       MacroController      `json:"wheel"`
	Expression  MacroController      `json:"expression"`
	Assignable1 AssignableController `json:"assignable1"`
	Assignable2 AssignableController `json:"assignable2"`
}

// NewModulationSettings returns a modulation block with every route
// at zero depth.
func NewModulationSettings() ModulationSettings {
	return ModulationSettings{
		Pressure:    NewMacroController(),
		Wheel:       NewMacroController(),
		Expression:  NewMacroController(),
		Assignable1: NewAssignableController(),
		Assignable2: NewAssignableController(),
	}
}

// ParseModulationSettings decodes the 18-byte modulation block.
func ParseModulationSettings(data []byte) (*ModulationSettings, error) {
	if len(data) < modulationSize {
		return nil, &sysex.TooShortError{Expected: modulationSize, Actual: len(data)}
	}
	var m ModulationSettings
	press, err := ParseMacroController(data[0:4])
	if err != nil {
		return nil, err
	}
	m.Pressure = *press
	wheel, err := ParseMacroController(data[4:8])
	if err != nil {
		return nil, err
	}
	m.Wheel = *wheel
	expr, err := ParseMacroController(data[8:12])
	if err != nil {
		return nil, err
	}
	m.Expression = *expr
	a1, err := ParseAssignableController(data[12:15])
	if err != nil {
		return nil, err
	}
	m.Assignable1 = *a1
	a2, err := ParseAssignableController(data[15:18])
	if err != nil {
		return nil, err
	}
	m.Assignable2 = *a2
	return &m, nil
}

func (m *ModulationSettings) ToBytes() []byte {
	buf := make([]byte, 0, modulationSize)
	buf = append(buf, m.Pressure.ToBytes()...)
	buf = append(buf, m.Wheel.ToBytes()...)
	buf = append(buf, m.Expression.ToBytes()...)
	buf = append(buf, m.Assignable1.ToBytes()...)
	buf = append(buf, m.Assignable2.ToBytes()...)
	return buf
}

// PanKind selects how a source is panned.
type PanKind byte

const (
	PanNormal PanKind = iota
	PanRandom
	PanKeyScale
	PanNegativeKeyScale
)

func (p PanKind) String() string {
	switch p {
	case PanNormal:
		return "Normal"
	case PanRandom:
		return "Random"
	case PanKeyScale:
		return "Key scale"
	case PanNegativeKeyScale:
		return "Negative key scale"
	}
	return "?"
}

// PanSettings is the two-byte pan block of a source or multi section.
type PanSettings struct {
	Kind  PanKind      `json:"kind"`
	Value ranged.Value `json:"value"`
}

// NewPanSettings returns a centered normal pan.
func NewPanSettings() PanSettings {
	return PanSettings{Value: ranged.MustNew(Pan, 0)}
}

// ParsePanSettings decodes the two pan bytes.
func ParsePanSettings(data []byte) (*PanSettings, error) {
	d, err := sysex.NewDecoder(data, 2)
	if err != nil {
		return nil, err
	}
	p := PanSettings{
		Kind:  PanKind(d.Enum("pan kind", d.Byte(0), byte(PanNegativeKeyScale))),
		Value: d.Ranged(Pan, 1),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *PanSettings) ToBytes() []byte {
	return []byte{byte(p.Kind), p.Value.Byte()}
}

// Switch is one assignment of a panel or foot switch.
type Switch byte

const (
	SwitchOff Switch = iota
	SwitchHarmMax
	SwitchHarmBright
	SwitchHarmDark
	SwitchHarmSaw
	SwitchSelectLoud
	SwitchAddLoud
	SwitchAddFifth
	SwitchAddOdd
	SwitchAddEven
	SwitchHE1
	SwitchHE2
	SwitchHELoop
	SwitchFFMax
	SwitchFFComb
	SwitchFFHiCut
	SwitchFFComb2
)

var switchNames = [...]string{
	"Off", "Max harmonics", "Bright harmonics", "Dark harmonics",
	"Saw harmonics", "Select loud", "Add loud", "Add fifth", "Add odd",
	"Add even", "Harmonic Env 1", "Harmonic Env 2",
	"Harmonic envelope loop", "Formant filter max",
	"Formant filter comb", "Formant filter high cut",
	"Formant filter comb 2",
}

func (s Switch) String() string {
	if int(s) < len(switchNames) {
		return switchNames[s]
	}
	return "?"
}

// SwitchControl is the four switch assignments of a patch.
type SwitchControl struct {
	Switch1     Switch `json:"switch1"`
	Switch2     Switch `json:"switch2"`
	FootSwitch1 Switch `json:"foot_switch1"`
	FootSwitch2 Switch `json:"foot_switch2"`
}

// ParseSwitchControl decodes the four switch bytes.
func ParseSwitchControl(data []byte) (*SwitchControl, error) {
	d, err := sysex.NewDecoder(data, 4)
	if err != nil {
		return nil, err
	}
	s := SwitchControl{
		Switch1:     Switch(d.Enum("switch", d.Byte(0), byte(SwitchFFComb2))),
		Switch2:     Switch(d.Enum("switch", d.Byte(1), byte(SwitchFFComb2))),
		FootSwitch1: Switch(d.Enum("switch", d.Byte(2), byte(SwitchFFComb2))),
		FootSwitch2: Switch(d.Enum("switch", d.Byte(3), byte(SwitchFFComb2))),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *SwitchControl) ToBytes() []byte {
	return []byte{byte(s.Switch1), byte(s.Switch2), byte(s.FootSwitch1), byte(s.FootSwitch2)}
}

// Polyphony selects the voice assignment mode.
type Polyphony byte

const (
	Poly Polyphony = iota
	Solo1
	Solo2
)

func (p Polyphony) String() string {
	switch p {
	case Poly:
		return "POLY"
	case Solo1:
		return "SOLO1"
	case Solo2:
		return "SOLO2"
	}
	return "?"
}

// AmplitudeModulation routes one source's amplitude into the next.
type AmplitudeModulation byte

const (
	AMOff AmplitudeModulation = iota
	AMSource2
	AMSource3
	AMSource4
	AMSource5
	AMSource6
)

func (a AmplitudeModulation) String() string {
	if a == AMOff {
		return "OFF"
	}
	if a <= AMSource6 {
		return string(rune('0'+byte(a))) + "->" + string(rune('1'+byte(a)))
	}
	return "?"
}
