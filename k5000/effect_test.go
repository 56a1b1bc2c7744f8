package k5000

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/sysex"
)

func TestEffectNames(t *testing.T) {
	cases := []struct {
		effect Effect
		want   string
	}{
		{Hall1, "Hall 1"},
		{LongDelay, "Long Delay"},
		{StereoDelay, "Stereo Delay"},
		{Rotary, "Rotary"},
		{DistortionAndDelay, "Distortion & Delay"},
	}
	for _, c := range cases {
		if got := c.effect.String(); got != c.want {
			t.Errorf("effect %d = %q, want %q", c.effect, got, c.want)
		}
	}
	if names := DualDelay.ParameterNames(); names[0] != "Delay Time Left" {
		t.Errorf("dual delay parameter 1 = %q", names[0])
	}
}

func TestEffectSettingsRoundTrip(t *testing.T) {
	s := NewEffectSettings()
	s.Algorithm = 2
	s.Reverb.Effect = Plate3
	s.Effects[0].Effect = Chorus1AndDelay
	s.Effects[3].Effect = AutoWah

	data := s.ToBytes()
	if len(data) != EffectSettingsSize {
		t.Fatalf("encoded size = %d, want %d", len(data), EffectSettingsSize)
	}
	got, err := ParseEffectSettings(data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded settings differ from the original bytes")
	}
	if got.Algorithm.String() != "Algorithm 3" {
		t.Errorf("algorithm = %q, want %q", got.Algorithm.String(), "Algorithm 3")
	}
}

func TestEffectDefaults(t *testing.T) {
	data := NewEffectSettings().ToBytes()
	if len(data) != EffectSettingsSize {
		t.Fatalf("encoded size = %d, want %d", len(data), EffectSettingsSize)
	}
	if data[0] != 0 {
		t.Errorf("algorithm byte = %#02x, want 0x00", data[0])
	}
	if Effect(data[1]) != Hall1 {
		t.Errorf("reverb type = %d, want %d", data[1], Hall1)
	}
	if !bytes.Equal(NewEffectDefinition().ToBytes(), data[1:7]) {
		t.Error("default definition differs from the default reverb slot")
	}
}

func TestEffectSettingsBadAlgorithm(t *testing.T) {
	data := NewEffectSettings().ToBytes()
	data[0] = 4
	var derr *sysex.DiscriminantError
	if _, err := ParseEffectSettings(data); !errors.As(err, &derr) {
		t.Fatalf("err = %v, want a discriminant error", err)
	}
}

func TestEffectDefinitionBadType(t *testing.T) {
	data := NewEffectDefinition().ToBytes()
	data[0] = 48
	var derr *sysex.DiscriminantError
	if _, err := ParseEffectDefinition(data); !errors.As(err, &derr) {
		t.Fatalf("err = %v, want a discriminant error", err)
	}
}

func TestAmplitudeModulationString(t *testing.T) {
	if got := AMOff.String(); got != "OFF" {
		t.Errorf("AM off = %q, want %q", got, "OFF")
	}
	if got := AMSource2.String(); got != "1->2" {
		t.Errorf("AM source 2 = %q, want %q", got, "1->2")
	}
	if got := AMSource6.String(); got != "5->6" {
		t.Errorf("AM source 6 = %q, want %q", got, "5->6")
	}
}
