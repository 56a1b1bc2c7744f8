package k4

import (
	"bytes"
	"errors"
	"testing"

	"ksynth/sysex"
)

func header(function Function, sub1, sub2 byte) []byte {
	return []byte{0x00, byte(function), 0x00, 0x04, sub1, sub2}
}

func TestIdentifyDump(t *testing.T) {
	cases := []struct {
		name     string
		payload  []byte
		kind     DumpKind
		locality Locality
		number   byte
	}{
		{"one single INT", header(OnePatchDataDump, 0x00, 0), DumpOneSingle, Internal, 0},
		{"one single EXT", header(OnePatchDataDump, 0x02, 63), DumpOneSingle, External, 63},
		{"one multi INT", header(OnePatchDataDump, 0x00, 64), DumpOneMulti, Internal, 64},
		{"one multi EXT", header(OnePatchDataDump, 0x02, 127), DumpOneMulti, External, 127},
		{"one effect INT", header(OnePatchDataDump, 0x01, 31), DumpOneEffect, Internal, 31},
		{"one effect EXT", header(OnePatchDataDump, 0x03, 0), DumpOneEffect, External, 0},
		{"drum INT", header(OnePatchDataDump, 0x01, 32), DumpDrum, Internal, 0},
		{"drum EXT", header(OnePatchDataDump, 0x03, 32), DumpDrum, External, 0},
		{"block single INT", header(BlockPatchDataDump, 0x00, 0x00), DumpBlockSingle, Internal, 0},
		{"block multi INT", header(BlockPatchDataDump, 0x00, 0x40), DumpBlockMulti, Internal, 0},
		{"block effect EXT", header(BlockPatchDataDump, 0x03, 0x00), DumpBlockEffect, External, 0},
		{"all INT", header(AllPatchDataDump, 0x00, 0x00), DumpAll, Internal, 0},
		{"all EXT", header(AllPatchDataDump, 0x02, 0x00), DumpAll, External, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := IdentifyDump(c.payload)
			if err != nil {
				t.Fatal(err)
			}
			if d.Kind != c.kind || d.Locality != c.locality || d.Number != c.number {
				t.Errorf("got %v/%v/%d, want %v/%v/%d",
					d.Kind, d.Locality, d.Number, c.kind, c.locality, c.number)
			}
		})
	}
}

func TestIdentifyDumpPayload(t *testing.T) {
	payload := append(header(OnePatchDataDump, 0x00, 5), 1, 2, 3)
	d, err := IdentifyDump(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d.Payload, []byte{1, 2, 3}) {
		t.Errorf("payload = % x", d.Payload)
	}
}

func TestIdentifyDumpUnidentified(t *testing.T) {
	cases := [][]byte{
		header(ParameterSend, 0x00, 0x00),
		header(OnePatchDataDump, 0x04, 0x00),
		header(BlockPatchDataDump, 0x00, 0x41),
		header(AllPatchDataDump, 0x00, 0x01),
	}
	for _, payload := range cases {
		if _, err := IdentifyDump(payload); !errors.Is(err, sysex.ErrUnidentified) {
			t.Errorf("header % x: want ErrUnidentified, got %v", payload, err)
		}
	}
}

func TestIdentifyDumpBadFunction(t *testing.T) {
	_, err := IdentifyDump([]byte{0x00, 0x7E, 0x00, 0x04, 0x00, 0x00})
	var de *sysex.DiscriminantError
	if !errors.As(err, &de) {
		t.Fatalf("want DiscriminantError, got %v", err)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h, err := ParseHeader(header(AllPatchDataDump, 0x00, 0x00))
	if err != nil {
		t.Fatal(err)
	}
	if h.Channel.Int() != 1 {
		t.Errorf("channel = %d, want 1", h.Channel.Int())
	}
	if !bytes.Equal(h.ToBytes(), header(AllPatchDataDump, 0x00, 0x00)) {
		t.Error("re-encoded header differs")
	}
}
