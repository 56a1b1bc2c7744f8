package main

import (
	"errors"
	"strings"
	"testing"

	"ksynth/k4"
	"ksynth/k5000"
	"ksynth/sysex"
)

func TestStripFrame(t *testing.T) {
	inner, err := stripFrame(frame([]byte{0x00, 0x20, 0x00, 0x04, 0x00, 0x00}))
	if err != nil {
		t.Fatal(err)
	}
	if len(inner) != 6 || inner[3] != k4Machine {
		t.Errorf("inner = % x", inner)
	}

	if _, err := stripFrame([]byte{0xF0, 0x43, 0x00, 0x00, 0x00, 0xF7}); err == nil {
		t.Error("accepted a non-Kawai frame")
	}
	if _, err := stripFrame([]byte{0x00, 0x01}); err == nil {
		t.Error("accepted a truncated frame")
	}
}

func TestIdentifyPayloadK4(t *testing.T) {
	p := k4.NewSinglePatch()
	p.Name = "Melo Vox 1"
	inner := append([]byte{0x00, 0x20, 0x00, k4Machine, 0x00, 0x07}, p.ToBytes()...)

	d, err := identifyPayload(inner)
	if err != nil {
		t.Fatal(err)
	}
	if d.k4 == nil || d.k4.Kind != k4.DumpOneSingle || d.k4.Number != 7 {
		t.Fatalf("identified = %s", d)
	}

	v, err := decodeDump(d)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(*k4.SinglePatch).Name; got != "Melo Vox 1" {
		t.Errorf("name = %q, want %q", got, "Melo Vox 1")
	}
}

func TestIdentifyPayloadK5000(t *testing.T) {
	p := k5000.NewSinglePatch(1, 1)
	p.Common.Name = "Add Pad"
	inner := append([]byte{0x00, 0x20, 0x00, k5000Machine, 0x00, 0x00, 0x05}, p.ToBytes()...)

	d, err := identifyPayload(inner)
	if err != nil {
		t.Fatal(err)
	}
	if d.k5 == nil || d.k5.Header.Kind != k5000.Single || d.k5.Header.Bank != k5000.BankA {
		t.Fatalf("identified = %s", d)
	}

	v, err := decodeDump(d)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(*k5000.SinglePatch).Common.Name; got != "Add Pad" {
		t.Errorf("name = %q, want %q", got, "Add Pad")
	}
}

func TestIdentifyPayloadUnknownMachine(t *testing.T) {
	inner := []byte{0x00, 0x20, 0x00, 0x22, 0x00, 0x00}
	if _, err := identifyPayload(inner); !errors.Is(err, sysex.ErrUnidentified) {
		t.Fatalf("err = %v, want %v", err, sysex.ErrUnidentified)
	}
}

func TestDecodeK5000Block(t *testing.T) {
	a := k5000.NewSinglePatch(2, 0)
	a.Common.Name = "First"
	b := k5000.NewSinglePatch(0, 1)
	b.Common.Name = "Second"
	payload := append(a.ToBytes(), b.ToBytes()...)

	patches, err := decodeK5000Block(payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(patches) != 2 {
		t.Fatalf("patches = %d, want 2", len(patches))
	}
	if patches[0].Common.Name != "First" || patches[1].Common.Name != "Second" {
		t.Errorf("names = %q/%q", patches[0].Common.Name, patches[1].Common.Name)
	}
}

func TestBankListing(t *testing.T) {
	bank := k4.NewBank()
	bank.Singles[0].Name = "Melo Vox 1"
	inner := append([]byte{0x00, 0x22, 0x00, k4Machine, 0x00, 0x00}, bank.ToBytes()...)

	d, err := identifyPayload(inner)
	if err != nil {
		t.Fatal(err)
	}
	out, err := bankListing(d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Melo Vox 1") {
		t.Errorf("listing does not mention the patch:\n%s", out)
	}
}
