// Package k4 implements the Kawai K4 dump dialect: single, multi,
// drum and effect patches, full banks and the dump header dispatch.
//
// Layout offsets and bit positions follow the K4 MIDI implementation.
// All multi-voice blocks inside a single patch are stored interleaved
// on the wire and are gathered per voice with sysex.EveryNth.
package k4

import (
	"fmt"

	"ksynth/ranged"
)

const (
	// NameLength is the length of a patch name field.
	NameLength = 10
	// SourceCount is the number of sources in a single patch.
	SourceCount = 4
	// SubmixCount is the number of submix channels in an effect patch.
	SubmixCount = 8
)

// Parameter categories. Bias is the amount added to the wire byte
// when decoding.
var (
	Level                = &ranged.Kind{Name: "level", Min: 0, Max: 100}
	Depth                = &ranged.Kind{Name: "modulation depth", Min: -50, Max: 50, Bias: 50}
	Coarse               = &ranged.Kind{Name: "coarse", Min: -24, Max: 24, Bias: 24}
	Fine                 = &ranged.Kind{Name: "fine", Min: -50, Max: 50, Bias: 50}
	EffectNumber         = &ranged.Kind{Name: "effect number", Min: 1, Max: 32, Bias: -1}
	Curve                = &ranged.Kind{Name: "curve", Min: 1, Max: 8, Bias: -1}
	Cutoff               = &ranged.Kind{Name: "cutoff", Min: 0, Max: 100}
	Resonance            = &ranged.Kind{Name: "resonance", Min: 0, Max: 7}
	PatchNumber          = &ranged.Kind{Name: "patch number", Min: 0, Max: 63}
	Transpose            = &ranged.Kind{Name: "transpose", Min: -24, Max: 24, Bias: 24}
	Channel              = &ranged.Kind{Name: "MIDI channel", Min: 1, Max: 16, Bias: -1}
	BenderRange          = &ranged.Kind{Name: "bender range", Min: 0, Max: 12}
	Pan                  = &ranged.Kind{Name: "pan", Min: -7, Max: 7, Bias: 7}
	SmallEffectParameter = &ranged.Kind{Name: "small effect parameter", Min: -7, Max: 7, Bias: 7}
	BigEffectParameter   = &ranged.Kind{Name: "big effect parameter", Min: 0, Max: 31}
	WaveNumber           = &ranged.Kind{Name: "wave number", Min: 1, Max: 256}
)

// Submix is one of the eight output channels A..H.
type Submix byte

const (
	SubmixA Submix = iota
	SubmixB
	SubmixC
	SubmixD
	SubmixE
	SubmixF
	SubmixG
	SubmixH
)

func (s Submix) String() string {
	return string(rune('A' + byte(s)))
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a MIDI note number the way the K4 panel does,
// "C-1" for note 0 up to "G9" for note 127.
func NoteName(note byte) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], int(note/12)-1)
}
