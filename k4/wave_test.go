package k4

import "testing"

func TestWaveName(t *testing.T) {
	w, err := NewWave(1)
	if err != nil {
		t.Fatal(err)
	}
	if w.Name() != "SIN 1ST" {
		t.Errorf("wave 1 name = %q, want %q", w.Name(), "SIN 1ST")
	}
}

func TestWaveFromBytes(t *testing.T) {
	w, err := ParseWave(0x01, 0x7F)
	if err != nil {
		t.Fatal(err)
	}
	if w.Number.Int() != 256 {
		t.Errorf("wave number = %d, want 256", w.Number.Int())
	}
}

func TestWaveToBytes(t *testing.T) {
	w, err := NewWave(256)
	if err != nil {
		t.Fatal(err)
	}
	if w.HighByte() != 0x01 || w.LowByte() != 0x7F {
		t.Errorf("wave 256 bytes = %#02x %#02x, want 0x01 0x7f", w.HighByte(), w.LowByte())
	}
}

func TestWaveSplitRoundTrip(t *testing.T) {
	for n := 1; n <= 256; n++ {
		w, err := NewWave(n)
		if err != nil {
			t.Fatal(err)
		}
		back, err := ParseWave(w.HighByte(), w.LowByte())
		if err != nil {
			t.Fatal(err)
		}
		if back.Number.Int() != n {
			t.Fatalf("wave %d round-trips to %d", n, back.Number.Int())
		}
	}
}

func TestNoteName(t *testing.T) {
	cases := []struct {
		note byte
		want string
	}{
		{0, "C-1"},
		{60, "C4"},
		{61, "C#4"},
		{127, "G9"},
	}
	for _, c := range cases {
		if got := NoteName(c.note); got != c.want {
			t.Errorf("NoteName(%d) = %q, want %q", c.note, got, c.want)
		}
	}
}
