package k4

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

func TestEffectPatchFirstVariant(t *testing.T) {
	// A zeroed-out effect block: raw effect byte 0x00 is the first
	// effect type.
	data := make([]byte, EffectPatchSize)
	for i := 10; i < 34; i += 3 {
		data[i] = 7 // centered pan
	}
	data[EffectPatchSize-1] = sysex.Checksum(data[:EffectPatchSize-1])

	p, err := ParseEffectPatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if p.Effect != Reverb1 {
		t.Errorf("effect = %v, want %v", p.Effect, Reverb1)
	}
	if p.Effect.String() != "Reverb 1" {
		t.Errorf("effect name = %q", p.Effect.String())
	}
	if p.Param1.Int() != -7 {
		t.Errorf("param1 = %d, want -7", p.Param1.Int())
	}
}

func TestEffectPatchRoundTrip(t *testing.T) {
	p := NewEffectPatch()
	p.Effect = OverdriveFlanger
	p.Param1 = ranged.MustNew(SmallEffectParameter, 7)
	p.Param2 = ranged.MustNew(SmallEffectParameter, -5)
	p.Param3 = ranged.MustNew(BigEffectParameter, 31)
	p.Submixes[3].Pan = ranged.MustNew(Pan, -7)
	p.Submixes[3].Send1 = ranged.MustNew(Level, 100)

	data := p.ToBytes()
	if len(data) != EffectPatchSize {
		t.Fatalf("encoded size = %d, want %d", len(data), EffectPatchSize)
	}
	got, err := ParseEffectPatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded patch differs from the original bytes")
	}
	if got.Effect != OverdriveFlanger {
		t.Errorf("effect = %v", got.Effect)
	}
	if got.Submixes[3].Pan.Int() != -7 {
		t.Errorf("submix D pan = %d, want -7", got.Submixes[3].Pan.Int())
	}
}

func TestEffectParameterNames(t *testing.T) {
	names := Reverb1.ParameterNames()
	if names[0] != "Pre.delay" || names[1] != "Rev.Time" || names[2] != "Tone" {
		t.Errorf("Reverb 1 parameter names = %v", names)
	}
	names = ChorusPanpotDelay.ParameterNames()
	if names[2] != "1-2 Bal" {
		t.Errorf("parameter names = %v", names)
	}
}

func TestEffectPatchInvalidType(t *testing.T) {
	data := make([]byte, EffectPatchSize)
	data[0] = 0x20 // only 16 effect types
	data[EffectPatchSize-1] = sysex.Checksum(data[:EffectPatchSize-1])

	_, err := ParseEffectPatch(data)
	var de *sysex.DiscriminantError
	if !errors.As(err, &de) {
		t.Fatalf("want DiscriminantError, got %v", err)
	}
}
