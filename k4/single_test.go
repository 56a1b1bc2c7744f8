package k4

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

func TestSinglePatchFixture(t *testing.T) {
	src := NewSinglePatch()
	src.Name = "Melo Vox 1"
	src.Volume = ranged.MustNew(Level, 100)
	data := src.ToBytes()

	if len(data) != SinglePatchSize {
		t.Fatalf("encoded size = %d, want %d", len(data), SinglePatchSize)
	}

	p, err := ParseSinglePatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Melo Vox 1" {
		t.Errorf("name = %q, want %q", p.Name, "Melo Vox 1")
	}
	if p.Volume.Int() != 100 {
		t.Errorf("volume = %d, want 100", p.Volume.Int())
	}
}

func TestSinglePatchRoundTrip(t *testing.T) {
	p := NewSinglePatch()
	p.Name = "Round Trip"
	p.Effect = ranged.MustNew(EffectNumber, 17)
	p.Submix = SubmixF
	p.SourceMode = SourceModeTwin
	p.PolyphonyMode = Solo2
	p.AM12 = true
	p.SourceMutes = [SourceCount]bool{true, false, true, false}
	p.BenderRange = ranged.MustNew(BenderRange, 12)
	p.WheelAssign = WheelLFO
	p.WheelDepth = ranged.MustNew(Depth, -33)
	p.Vibrato.Shape = ShapeSquare
	p.Vibrato.Depth = ranged.MustNew(Depth, 42)
	p.LFO.Shape = ShapeRandom
	p.LFO.PressureDepth = ranged.MustNew(Depth, -7)
	p.PressureFreq = ranged.MustNew(Depth, 25)

	wave, err := NewWave(200)
	if err != nil {
		t.Fatal(err)
	}
	p.Sources[2].Wave = wave
	p.Sources[2].Coarse = ranged.MustNew(Coarse, -12)
	p.Sources[2].KeyTrack = KeyTrack{FixedKey: 60}
	p.Amplifiers[1].Level = ranged.MustNew(Level, 33)
	p.Filters[1].Cutoff = ranged.MustNew(Cutoff, 77)
	p.Filters[1].LFOModulatesCutoff = true

	data := p.ToBytes()
	got, err := ParseSinglePatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded patch differs from the original bytes")
	}

	if got.SourceMutes != p.SourceMutes {
		t.Errorf("source mutes = %v, want %v", got.SourceMutes, p.SourceMutes)
	}
	if !got.AM12 || got.AM34 {
		t.Errorf("AM flags = %v/%v, want true/false", got.AM12, got.AM34)
	}
	if got.Sources[2].Wave.Number.Int() != 200 {
		t.Errorf("source 3 wave = %d, want 200", got.Sources[2].Wave.Number.Int())
	}
	if got.Sources[2].KeyTrack.On || got.Sources[2].KeyTrack.FixedKey != 60 {
		t.Errorf("key track = %+v", got.Sources[2].KeyTrack)
	}
	if got.Vibrato.Shape != ShapeSquare {
		t.Errorf("vibrato shape = %v, want %v", got.Vibrato.Shape, ShapeSquare)
	}
}

func TestSinglePatchChecksumMismatch(t *testing.T) {
	data := NewSinglePatch().ToBytes()
	data[SinglePatchSize-1] ^= 0x01

	p, err := ParseSinglePatch(data)
	var ce *sysex.ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("want ChecksumError, got %v", err)
	}
	if p == nil {
		t.Fatal("patch not returned on checksum mismatch")
	}
	if p.Name != "NewSound" {
		t.Errorf("name = %q", p.Name)
	}
}

func TestSinglePatchTooShort(t *testing.T) {
	var tse *sysex.TooShortError
	if _, err := ParseSinglePatch(make([]byte, 42)); !errors.As(err, &tse) {
		t.Fatalf("want TooShortError, got %v", err)
	}
}

func TestSinglePatchOutOfRangeField(t *testing.T) {
	data := NewSinglePatch().ToBytes()
	data[17] = 0x7F // wheel depth byte decodes to 77, past +50

	_, err := ParseSinglePatch(data)
	var re *ranged.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("want RangeError, got %v", err)
	}
}
