// Package k5000 implements the Kawai K5000 dump dialect: single and
// multi patches, additive kits with their harmonic data, and the dump
// header dispatch with tone maps.
//
// Layout offsets follow the K5000 MIDI implementation. Unlike the K4,
// the blocks of a patch are stored back to back, not interleaved, and
// a single patch has a variable size that depends on its source count
// and on how many of the sources are additive.
package k5000

import "ksynth/ranged"

const (
	// NameLength is the length of a patch name field.
	NameLength = 8
	// MaxSourceCount is the largest number of sources in a single patch.
	MaxSourceCount = 6
	// SectionCount is the number of sections in a multi patch.
	SectionCount = 4
	// HarmonicCount is the number of harmonics in an additive kit.
	HarmonicCount = 64
	// BandCount is the number of formant filter bands in an additive kit.
	BandCount = 128
)

// Parameter categories. Bias is the amount added to the wire byte
// when decoding; the signed categories are stored around 0x40.
var (
	Level           = &ranged.Kind{Name: "level", Min: 0, Max: 127}
	Volume          = &ranged.Kind{Name: "volume", Min: 0, Max: 127}
	BenderPitch     = &ranged.Kind{Name: "bender pitch", Min: 0, Max: 24}
	BenderCutoff    = &ranged.Kind{Name: "bender cutoff", Min: 0, Max: 31}
	EnvelopeTime    = &ranged.Kind{Name: "envelope time", Min: 0, Max: 127}
	EnvelopeLevel   = &ranged.Kind{Name: "envelope level", Min: -63, Max: 63, Bias: 64}
	EnvelopeRate    = &ranged.Kind{Name: "envelope rate", Min: 0, Max: 127}
	EnvelopeDepth   = &ranged.Kind{Name: "envelope depth", Min: -63, Max: 63, Bias: 64}
	HarmonicLevel   = &ranged.Kind{Name: "harmonic level", Min: 0, Max: 63}
	Bias            = &ranged.Kind{Name: "bias", Min: -63, Max: 63, Bias: 64}
	ControlTime     = &ranged.Kind{Name: "control time", Min: -63, Max: 63, Bias: 64}
	ControlDepth    = &ranged.Kind{Name: "control depth", Min: -63, Max: 63, Bias: 64}
	LFOSpeed        = &ranged.Kind{Name: "LFO speed", Min: 0, Max: 127}
	LFODepth        = &ranged.Kind{Name: "LFO depth", Min: 0, Max: 63}
	KeyScaling      = &ranged.Kind{Name: "key scaling", Min: -63, Max: 63, Bias: 64}
	EffectParameter = &ranged.Kind{Name: "effect parameter", Min: 0, Max: 127}
	EffectDepth     = &ranged.Kind{Name: "effect depth", Min: 0, Max: 100}
	Cutoff          = &ranged.Kind{Name: "cutoff", Min: 0, Max: 127}
	Resonance       = &ranged.Kind{Name: "resonance", Min: 0, Max: 31}
	FilterLevel     = &ranged.Kind{Name: "filter level", Min: 0, Max: 31}
	VelocityDepth   = &ranged.Kind{Name: "velocity depth", Min: 0, Max: 127}
	VelocityCurve   = &ranged.Kind{Name: "velocity curve", Min: 1, Max: 12, Bias: -1}
	KeyOnDelay      = &ranged.Kind{Name: "key-on delay", Min: 0, Max: 127}
	Key             = &ranged.Kind{Name: "key", Min: 0, Max: 127}
	Pan             = &ranged.Kind{Name: "pan", Min: -63, Max: 63, Bias: 64}
	Coarse          = &ranged.Kind{Name: "coarse", Min: -24, Max: 24, Bias: 24}
	Fine            = &ranged.Kind{Name: "fine", Min: -63, Max: 63, Bias: 64}
	MacroDepth      = &ranged.Kind{Name: "macro depth", Min: -31, Max: 31, Bias: 64}
	GEQBand         = &ranged.Kind{Name: "GEQ band", Min: -6, Max: 6, Bias: 64}
	Channel         = &ranged.Kind{Name: "MIDI channel", Min: 1, Max: 16, Bias: -1}
	PatchNumber     = &ranged.Kind{Name: "patch number", Min: 0, Max: 127}
	PortamentoSpeed = &ranged.Kind{Name: "portamento speed", Min: 0, Max: 127}
	Transpose       = &ranged.Kind{Name: "transpose", Min: -24, Max: 24, Bias: 24}
	Tune            = &ranged.Kind{Name: "tune", Min: -63, Max: 63, Bias: 63}
)

// blockSum is the per-block term of the K5000 patch checksums: the
// byte sum of one data region, folded to eight bits.
func blockSum(data []byte) int {
	sum := 0
	for _, b := range data {
		sum += int(b)
	}
	return sum & 0xFF
}
