package k5000

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

func TestOscillatorWaveNumber(t *testing.T) {
	o := NewOscillator()
	o.Wave = 300

	data := o.ToBytes()
	if data[0] != 0x02 || data[1] != 0x2C {
		t.Errorf("wave bytes = %#02x %#02x, want 0x02 0x2c", data[0], data[1])
	}
	got, err := ParseOscillator(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Wave != 300 {
		t.Errorf("wave = %d, want 300", got.Wave)
	}
	if got.IsAdditive() {
		t.Error("PCM oscillator reported as additive")
	}

	o.Wave = AdditiveWave
	got, err = ParseOscillator(o.ToBytes())
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsAdditive() {
		t.Error("additive oscillator not recognized")
	}
}

func TestOscillatorRoundTrip(t *testing.T) {
	o := NewOscillator()
	o.Coarse = ranged.MustNew(Coarse, -12)
	o.Fine = ranged.MustNew(Fine, 33)
	o.FixedKey = ranged.MustNew(Key, 72)
	o.KSToPitch = KSThirtyThreeCent
	o.PitchEnvelope.AttackTime = ranged.MustNew(EnvelopeTime, 20)
	o.PitchEnvelope.LevelVel = ranged.MustNew(EnvelopeDepth, -15)

	data := o.ToBytes()
	got, err := ParseOscillator(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded oscillator differs from the original bytes")
	}
	if got.Coarse.Int() != -12 || got.Fine.Int() != 33 {
		t.Errorf("coarse/fine = %d/%d, want -12/33", got.Coarse.Int(), got.Fine.Int())
	}
	if got.KSToPitch != KSThirtyThreeCent {
		t.Errorf("KS to pitch = %v, want %v", got.KSToPitch, KSThirtyThreeCent)
	}
}

func TestVelocitySwitch(t *testing.T) {
	v, err := ParseVelocitySwitch(0x20 | 5)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != VelocitySwitchLoud {
		t.Errorf("kind = %v, want %v", v.Kind, VelocitySwitchLoud)
	}
	if v.Threshold != 24 {
		t.Errorf("threshold = %d, want 24", v.Threshold)
	}
	if v.ToByte() != 0x25 {
		t.Errorf("byte = %#02x, want 0x25", v.ToByte())
	}

	// A threshold off the table rounds down to the nearest entry.
	odd := VelocitySwitchSettings{Kind: VelocitySwitchSoft, Threshold: 25}
	if odd.ToByte() != 0x45 {
		t.Errorf("byte = %#02x, want 0x45", odd.ToByte())
	}

	// The constructor snaps the threshold so encode and decode agree.
	low := NewVelocitySwitch(VelocitySwitchOff, 0)
	if low.Threshold != 4 {
		t.Errorf("snapped threshold = %d, want 4", low.Threshold)
	}
	back, err := ParseVelocitySwitch(low.ToByte())
	if err != nil {
		t.Fatal(err)
	}
	if back != low {
		t.Errorf("decoded = %+v, want %+v", back, low)
	}
	if snapped := NewVelocitySwitch(VelocitySwitchLoud, 25); snapped.Threshold != 24 {
		t.Errorf("snapped threshold = %d, want 24", snapped.Threshold)
	}

	var derr *sysex.DiscriminantError
	if _, err := ParseVelocitySwitch(0x60); !errors.As(err, &derr) {
		t.Fatalf("err = %v, want a discriminant error", err)
	}
}

func TestSourceRoundTrip(t *testing.T) {
	s := NewPCMSource()
	s.Control.ZoneLow = ranged.MustNew(Key, 36)
	s.Control.ZoneHigh = ranged.MustNew(Key, 96)
	s.Control.VelocitySwitch = VelocitySwitchSettings{Kind: VelocitySwitchSoft, Threshold: 64}
	s.Control.EffectPath = 2
	s.Control.Pan = PanSettings{Kind: PanRandom, Value: ranged.MustNew(Pan, 0)}
	s.Filter.Mode = HighPass
	s.Filter.Cutoff = ranged.MustNew(Cutoff, 90)
	s.Filter.Resonance = ranged.MustNew(Resonance, 12)
	s.Amplifier.Envelope.AttackTime = ranged.MustNew(EnvelopeTime, 5)
	s.LFO.Waveform = LFOSquare
	s.LFO.Speed = ranged.MustNew(LFOSpeed, 64)
	s.LFO.Vibrato.Depth = ranged.MustNew(LFODepth, 30)

	data := s.ToBytes()
	if len(data) != SourceSize {
		t.Fatalf("encoded size = %d, want %d", len(data), SourceSize)
	}
	got, err := ParseSource(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded source differs from the original bytes")
	}
	if got.Control.VelocitySwitch.Threshold != 64 {
		t.Errorf("velocity threshold = %d, want 64", got.Control.VelocitySwitch.Threshold)
	}
	if got.Filter.Mode != HighPass {
		t.Errorf("filter mode = %v, want %v", got.Filter.Mode, HighPass)
	}
	if got.LFO.Vibrato.Depth.Int() != 30 {
		t.Errorf("vibrato depth = %d, want 30", got.LFO.Vibrato.Depth.Int())
	}
}

func TestFilterBypass(t *testing.T) {
	f := NewFilter()
	f.Active = false
	data := f.ToBytes()
	if data[0] != 1 {
		t.Errorf("bypass byte = %d, want 1", data[0])
	}
	got, err := ParseFilter(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Error("bypassed filter parsed as active")
	}
}
