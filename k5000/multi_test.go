package k5000

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

func TestMultiPatchRoundTrip(t *testing.T) {
	p := NewMultiPatch()
	p.Common.Name = "SplitKbd"
	p.Common.Volume = ranged.MustNew(Volume, 110)
	p.Common.SectionMutes[3] = true

	p.Sections[0].Instrument = 384
	p.Sections[0].ZoneHigh = ranged.MustNew(Key, 59)
	p.Sections[1].Instrument = 12
	p.Sections[1].ZoneLow = ranged.MustNew(Key, 60)
	p.Sections[1].Transpose = ranged.MustNew(Transpose, -12)
	p.Sections[1].Tune = ranged.MustNew(Tune, 33)
	p.Sections[1].VelocitySwitch = VelocitySwitchSettings{Kind: VelocitySwitchLoud, Threshold: 64}
	p.Sections[2].ReceiveChannel = ranged.MustNew(Channel, 10)
	p.Sections[2].Pan = PanSettings{Kind: PanKeyScale, Value: ranged.MustNew(Pan, -30)}

	data := p.ToBytes()
	if len(data) != MultiPatchSize {
		t.Fatalf("encoded size = %d, want %d", len(data), MultiPatchSize)
	}
	got, err := ParseMultiPatch(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded patch differs from the original bytes")
	}
	if got.Common.Name != "SplitKbd" {
		t.Errorf("name = %q, want %q", got.Common.Name, "SplitKbd")
	}
	if got.Common.SectionMutes != p.Common.SectionMutes {
		t.Errorf("section mutes = %v, want %v", got.Common.SectionMutes, p.Common.SectionMutes)
	}
	if got.Sections[0].Instrument != 384 {
		t.Errorf("section 1 instrument = %d, want 384", got.Sections[0].Instrument)
	}
	if got.Sections[1].Transpose.Int() != -12 || got.Sections[1].Tune.Int() != 33 {
		t.Errorf("section 2 transpose/tune = %d/%d, want -12/33",
			got.Sections[1].Transpose.Int(), got.Sections[1].Tune.Int())
	}
	if got.Sections[2].ReceiveChannel.Int() != 10 {
		t.Errorf("section 3 channel = %d, want 10", got.Sections[2].ReceiveChannel.Int())
	}
}

func TestMultiPatchChecksum(t *testing.T) {
	data := NewMultiPatch().ToBytes()
	data[0] ^= 0x2A

	p, err := ParseMultiPatch(data)
	var cerr *sysex.ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want a checksum error", err)
	}
	if p == nil {
		t.Fatal("patch not returned alongside the checksum error")
	}
}

func TestMultiPatchTooShort(t *testing.T) {
	var terr *sysex.TooShortError
	if _, err := ParseMultiPatch(make([]byte, 50)); !errors.As(err, &terr) {
		t.Fatalf("err = %v, want a too-short error", err)
	}
}

func TestSectionRoundTrip(t *testing.T) {
	s := NewSection()
	s.Instrument = 1023 // the highest ten-bit instrument number
	data := s.ToBytes()
	got, err := ParseSection(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Instrument != 1023 {
		t.Errorf("instrument = %d, want 1023", got.Instrument)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded section differs from the original bytes")
	}
}
