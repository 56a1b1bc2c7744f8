package ranged

import (
	"errors"
	"testing"
)

var kinds = []*Kind{
	{Name: "volume", Min: 0, Max: 127, Bias: 0},
	{Name: "depth", Min: -50, Max: 50, Bias: 50},
	{Name: "signed level", Min: -63, Max: 63, Bias: 64},
	{Name: "coarse", Min: -24, Max: 24, Bias: 24},
	{Name: "effect number", Min: 1, Max: 32, Bias: -1},
	{Name: "macro depth", Min: -31, Max: 31, Bias: 32},
}

func TestByteRoundTrip(t *testing.T) {
	for _, k := range kinds {
		for n := k.Min; n <= k.Max; n++ {
			v, err := New(k, n)
			if err != nil {
				t.Fatalf("New(%s, %d): %v", k.Name, n, err)
			}
			back, err := FromByte(k, v.Byte())
			if err != nil {
				t.Fatalf("FromByte(%s, %#02x): %v", k.Name, v.Byte(), err)
			}
			if back.Int() != n {
				t.Errorf("%s: %d -> %#02x -> %d", k.Name, n, v.Byte(), back.Int())
			}
		}
	}
}

func TestOutOfRange(t *testing.T) {
	k := &Kind{Name: "depth", Min: -50, Max: 50, Bias: 50}
	for _, n := range []int{-51, 51, 128} {
		_, err := New(k, n)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Fatalf("New(depth, %d): want RangeError, got %v", n, err)
		}
		if re.Value != n {
			t.Errorf("RangeError value = %d, want %d", re.Value, n)
		}
	}
	// 0x7F decodes to 77, past the top of the range.
	if _, err := FromByte(k, 0x7F); err == nil {
		t.Error("FromByte(depth, 0x7F): expected range error")
	}
}

func TestZeroValueEncodesAsZero(t *testing.T) {
	var v Value
	if v.Byte() != 0 {
		t.Errorf("zero Value byte = %#02x, want 0", v.Byte())
	}
	if v.Kind() != nil {
		t.Error("zero Value has a kind")
	}
}
