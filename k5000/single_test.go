package k5000

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

// commonFixture is the common block of a two-source factory patch.
var commonFixture = []byte{
	// effects: algorithm, reverb, four effect slots
	0x00,
	0x00, 0x02, 0x02, 0x0d, 0x41, 0x0a,
	0x10, 0x00, 0x58, 0x33, 0x69, 0x22,
	0x1d, 0x00, 0x4a, 0x00, 0x00, 0x00,
	0x24, 0x00, 0x04, 0x3a, 0x04, 0x38,
	0x2a, 0x00, 0x0c, 0x0c, 0x63, 0x00,
	// GEQ
	0x42, 0x41, 0x40, 0x40, 0x3f, 0x3e, 0x41,
	// drum mark
	0x00,
	// name "WizooIni"
	0x57, 0x69, 0x7a, 0x6f, 0x6f, 0x49, 0x6e, 0x69,
	0x73, // volume
	0x00, // polyphony
	0x00, // unused
	0x02, // source count
	0x01, // source mutes
	0x00, // AM
	// effect control
	0x02, 0x01, 0x40,
	0x01, 0x03, 0x40,
	// portamento
	0x00, 0x00,
	// macro destinations, then depths
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x40,
	// switches
	0x00, 0x00, 0x00, 0x00,
}

func TestCommonFixture(t *testing.T) {
	c, err := ParseCommon(commonFixture)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "WizooIni" {
		t.Errorf("name = %q, want %q", c.Name, "WizooIni")
	}
	if c.Volume.Int() != 115 {
		t.Errorf("volume = %d, want 115", c.Volume.Int())
	}
	if c.Polyphony != Poly {
		t.Errorf("polyphony = %v, want %v", c.Polyphony, Poly)
	}
	if c.SourceCount != 2 {
		t.Errorf("source count = %d, want 2", c.SourceCount)
	}
	if !c.SourceMutes[0] || c.SourceMutes[1] {
		t.Errorf("source mutes = %v", c.SourceMutes)
	}
	if c.AM != AMOff {
		t.Errorf("AM = %v, want off", c.AM)
	}
	if c.GEQ[0].Int() != 2 || c.GEQ[5].Int() != -2 {
		t.Errorf("GEQ = %d/%d, want 2/-2", c.GEQ[0].Int(), c.GEQ[5].Int())
	}
	if c.Effects.Effects[0].Effect != DualDelay {
		t.Errorf("effect 1 = %v, want %v", c.Effects.Effects[0].Effect, DualDelay)
	}
	if c.Portamento.On {
		t.Error("portamento on, want off")
	}
	for i, m := range c.Macros {
		if m.Depth1.Int() != 0 || m.Depth2.Int() != 0 {
			t.Errorf("macro %d depths = %d/%d, want 0/0", i+1, m.Depth1.Int(), m.Depth2.Int())
		}
	}

	if !bytes.Equal(c.ToBytes(), commonFixture) {
		t.Error("re-encoded common block differs from the original bytes")
	}
}

func TestCommonRoundTrip(t *testing.T) {
	c := NewCommon()
	c.Name = "Add Pad"
	c.Volume = ranged.MustNew(Volume, 115)
	c.Polyphony = Solo1
	c.AM = AMSource2
	c.Portamento = Portamento{On: true, Speed: ranged.MustNew(PortamentoSpeed, 40)}
	c.GEQ[3] = ranged.MustNew(GEQBand, -4)
	c.Macros[1].Depth1 = ranged.MustNew(MacroDepth, -20)
	c.Switches.FootSwitch1 = SwitchHELoop

	data := c.ToBytes()
	if len(data) != CommonSize {
		t.Fatalf("encoded size = %d, want %d", len(data), CommonSize)
	}
	got, err := ParseCommon(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded common block differs from the original bytes")
	}
	if got.Name != "Add Pad" {
		t.Errorf("name = %q, want %q", got.Name, "Add Pad")
	}
	if got.Portamento.Speed.Int() != 40 {
		t.Errorf("portamento speed = %d, want 40", got.Portamento.Speed.Int())
	}
	if got.Macros[1].Depth1.Int() != -20 {
		t.Errorf("macro 2 depth 1 = %d, want -20", got.Macros[1].Depth1.Int())
	}
}

func TestCommonBadSourceCount(t *testing.T) {
	data := NewCommon().ToBytes()
	data[50] = 7
	var derr *sysex.DiscriminantError
	if _, err := ParseCommon(data); !errors.As(err, &derr) {
		t.Fatalf("err = %v, want a discriminant error", err)
	}
}

func TestSinglePatchRoundTrip(t *testing.T) {
	p := NewSinglePatch(1, 1)
	p.Common.Name = "PcmAdd"
	p.Sources[0].Oscillator.Wave = 300
	p.Sources[0].Control.Volume = ranged.MustNew(Volume, 99)
	p.Sources[1].Filter.Cutoff = ranged.MustNew(Cutoff, 77)
	p.AdditiveKits[0].Levels.Soft[0] = 63
	p.AdditiveKits[0].Envelopes[0].LoopKind = Loop1

	data := p.ToBytes()
	if want := SinglePatchSize(1, 1); len(data) != want {
		t.Fatalf("encoded size = %d, want %d", len(data), want)
	}
	got, err := ParseSinglePatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded patch differs from the original bytes")
	}
	if got.Sources[0].IsAdditive() || !got.Sources[1].IsAdditive() {
		t.Errorf("sources = %s, want PCM+ADD", got.sourceString())
	}
	if len(got.AdditiveKits) != 1 {
		t.Fatalf("additive kits = %d, want 1", len(got.AdditiveKits))
	}
	if got.Sources[0].Oscillator.Wave != 300 {
		t.Errorf("source 1 wave = %d, want 300", got.Sources[0].Oscillator.Wave)
	}
	if got.AdditiveKits[0].Envelopes[0].LoopKind != Loop1 {
		t.Errorf("harmonic 1 loop = %v, want %v", got.AdditiveKits[0].Envelopes[0].LoopKind, Loop1)
	}
}

func TestSinglePatchChecksum(t *testing.T) {
	data := NewSinglePatch(2, 0).ToBytes()
	data[0] ^= 0x55

	p, err := ParseSinglePatch(data)
	var cerr *sysex.ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want a checksum error", err)
	}
	if p == nil {
		t.Fatal("patch not returned alongside the checksum error")
	}
	if p.Common.Name != "NewSound" {
		t.Errorf("name = %q, want %q", p.Common.Name, "NewSound")
	}
}

func TestSinglePatchTooShort(t *testing.T) {
	// The common block asks for two sources but only one follows.
	data := NewSinglePatch(2, 0).ToBytes()
	var terr *sysex.TooShortError
	if _, err := ParseSinglePatch(data[:1+CommonSize+SourceSize]); !errors.As(err, &terr) {
		t.Fatalf("err = %v, want a too-short error", err)
	}
	if _, err := ParseSinglePatch(data[:40]); !errors.As(err, &terr) {
		t.Fatalf("err = %v, want a too-short error", err)
	}
}

func TestSinglePatchSize(t *testing.T) {
	cases := []struct {
		pcm, additive, want int
	}{
		{1, 0, 168},
		{2, 0, 254},
		{0, 1, 974},
		{1, 1, 1060},
		{0, 6, 5434},
	}
	for _, c := range cases {
		if got := SinglePatchSize(c.pcm, c.additive); got != c.want {
			t.Errorf("SinglePatchSize(%d, %d) = %d, want %d", c.pcm, c.additive, got, c.want)
		}
		p := NewSinglePatch(c.pcm, c.additive)
		if got := p.Size(); got != c.want {
			t.Errorf("patch size = %d, want %d", got, c.want)
		}
	}
}
