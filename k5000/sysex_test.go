package k5000

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/sysex"
)

func TestToneMapRoundTrip(t *testing.T) {
	var m ToneMap
	for _, tone := range []int{0, 6, 7, 64, 127} {
		m.Include(tone)
	}

	data := m.ToBytes()
	if len(data) != ToneMapSize {
		t.Fatalf("encoded size = %d, want %d", len(data), ToneMapSize)
	}
	if data[0] != 0x41 || data[1] != 0x01 || data[18] != 0x02 {
		t.Errorf("map bytes = %#02x %#02x .. %#02x", data[0], data[1], data[18])
	}

	got, err := ParseToneMap(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count() != 5 {
		t.Errorf("count = %d, want 5", got.Count())
	}
	if !got.Contains(64) || got.Contains(65) {
		t.Error("membership bits misplaced")
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded map differs from the original bytes")
	}
}

func TestIdentifyDump(t *testing.T) {
	toneMap := make([]byte, ToneMapSize)
	toneMap[0] = 0x03 // tones 1 and 2

	cases := []struct {
		name     string
		payload  []byte
		kind     PatchKind
		card     Cardinality
		bank     Bank
		tone     byte
		mapCount int
	}{
		{
			name:    "one single bank A",
			payload: []byte{0x00, 0x20, 0x00, 0x0A, 0x00, 0x00, 0x05},
			kind:    Single, card: One, bank: BankA, tone: 5,
		},
		{
			name:    "one single bank D",
			payload: []byte{0x00, 0x20, 0x00, 0x0A, 0x00, 0x02, 0x10},
			kind:    Single, card: One, bank: BankD, tone: 0x10,
		},
		{
			name:    "one drum kit",
			payload: []byte{0x00, 0x20, 0x00, 0x0A, 0x10},
			kind:    DrumKit, card: One, bank: BankNone,
		},
		{
			name:    "one drum instrument",
			payload: []byte{0x00, 0x20, 0x00, 0x0A, 0x11, 0x1E},
			kind:    DrumInstrument, card: One, bank: BankNone, tone: 0x1E,
		},
		{
			name:    "one multi",
			payload: []byte{0x00, 0x20, 0x00, 0x0A, 0x20, 0x07},
			kind:    Multi, card: One, bank: BankNone, tone: 7,
		},
		{
			name:    "block single bank B",
			payload: []byte{0x01, 0x21, 0x00, 0x0A, 0x00, 0x01},
			kind:    Single, card: Block, bank: BankB,
		},
		{
			name:     "block single bank A",
			payload:  append([]byte{0x00, 0x21, 0x00, 0x0A, 0x00, 0x00}, toneMap...),
			kind:     Single, card: Block, bank: BankA, mapCount: 2,
		},
		{
			name:    "block multi",
			payload: []byte{0x00, 0x21, 0x00, 0x0A, 0x20},
			kind:    Multi, card: Block, bank: BankNone,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := IdentifyDump(append(c.payload, 0x42))
			if err != nil {
				t.Fatal(err)
			}
			h := d.Header
			if h.Kind != c.kind || h.Cardinality != c.card || h.Bank != c.bank {
				t.Errorf("header = %s", h.String())
			}
			if h.Tone != c.tone {
				t.Errorf("tone = %d, want %d", h.Tone, c.tone)
			}
			if c.mapCount > 0 {
				if h.ToneMap == nil {
					t.Fatal("tone map missing")
				}
				if h.ToneMap.Count() != c.mapCount {
					t.Errorf("tone map count = %d, want %d", h.ToneMap.Count(), c.mapCount)
				}
			} else if h.ToneMap != nil {
				t.Error("unexpected tone map")
			}
			if h.Size() != len(c.payload) {
				t.Errorf("header size = %d, want %d", h.Size(), len(c.payload))
			}
			if !bytes.Equal(h.ToBytes(), c.payload) {
				t.Error("re-encoded header differs from the original bytes")
			}
			if len(d.Payload) != 1 || d.Payload[0] != 0x42 {
				t.Errorf("payload = % x, want 42", d.Payload)
			}
		})
	}
}

func TestIdentifyDumpChannel(t *testing.T) {
	d, err := IdentifyDump([]byte{0x09, 0x20, 0x00, 0x0A, 0x10})
	if err != nil {
		t.Fatal(err)
	}
	if d.Header.Channel.Int() != 10 {
		t.Errorf("channel = %d, want 10", d.Header.Channel.Int())
	}
	if d.Header.ToBytes()[0] != 0x09 {
		t.Errorf("channel byte = %#02x, want 0x09", d.Header.ToBytes()[0])
	}
}

func TestIdentifyDumpUnidentified(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"wrong magic", []byte{0x00, 0x20, 0x01, 0x0A, 0x00, 0x00, 0x05}},
		{"dump request", []byte{0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x05}},
		{"unknown kind", []byte{0x00, 0x20, 0x00, 0x0A, 0x30, 0x00}},
		{"bad bank", []byte{0x00, 0x20, 0x00, 0x0A, 0x00, 0x05, 0x00}},
		{"block drum kit", []byte{0x00, 0x21, 0x00, 0x0A, 0x10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := IdentifyDump(c.payload); !errors.Is(err, sysex.ErrUnidentified) {
				t.Fatalf("err = %v, want %v", err, sysex.ErrUnidentified)
			}
		})
	}
}

func TestIdentifyDumpTooShort(t *testing.T) {
	var terr *sysex.TooShortError
	if _, err := IdentifyDump([]byte{0x00, 0x20, 0x00}); !errors.As(err, &terr) {
		t.Fatalf("err = %v, want a too-short error", err)
	}
	// A one-single header cut off before its tone byte.
	if _, err := IdentifyDump([]byte{0x00, 0x20, 0x00, 0x0A, 0x00, 0x00}); !errors.As(err, &terr) {
		t.Fatalf("err = %v, want a too-short error", err)
	}
}

func TestFunctionString(t *testing.T) {
	if got := OneBlockDump.String(); got != "One Block Dump" {
		t.Errorf("function = %q, want %q", got, "One Block Dump")
	}
	if got := Function(0x55).String(); got != "Function 0x55" {
		t.Errorf("function = %q, want %q", got, "Function 0x55")
	}
}
