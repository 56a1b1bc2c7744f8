package k4

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"ksynth/ranged"
	"ksynth/sysex"
)

func TestBankRoundTrip(t *testing.T) {
	bank := NewBank()
	for i := range bank.Singles {
		bank.Singles[i].Name = fmt.Sprintf("Single %02d", i)
	}
	bank.Multis[63].Name = "Last Multi"
	bank.Effects[31].Effect = ChorusPanpotDelay

	data := bank.ToBytes()
	if len(data) != BankSize {
		t.Fatalf("encoded size = %d, want %d", len(data), BankSize)
	}

	got, err := ParseBank(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Mismatches) != 0 {
		t.Errorf("fresh bank has %d checksum mismatches", len(got.Mismatches))
	}
	if got.Singles[5].Name != "Single 05" {
		t.Errorf("single 5 name = %q", got.Singles[5].Name)
	}
	if got.Multis[63].Name != "Last Multi" {
		t.Errorf("multi 63 name = %q", got.Multis[63].Name)
	}
	if got.Effects[31].Effect != ChorusPanpotDelay {
		t.Errorf("effect 31 = %v", got.Effects[31].Effect)
	}
	if !bytes.Equal(got.ToBytes(), data) {
		t.Error("re-encoded bank differs from the original bytes")
	}
}

func TestBankCounts(t *testing.T) {
	bank, err := ParseBank(NewBank().ToBytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(bank.Singles) != 64 {
		t.Errorf("singles = %d, want 64", len(bank.Singles))
	}
	if len(bank.Effects) != 32 {
		t.Errorf("effects = %d, want 32", len(bank.Effects))
	}
}

func TestBankTruncated(t *testing.T) {
	data := NewBank().ToBytes()
	var tse *sysex.TooShortError
	if _, err := ParseBank(data[:len(data)-1]); !errors.As(err, &tse) {
		t.Fatalf("want TooShortError, got %v", err)
	}
	if tse.Expected != BankSize {
		t.Errorf("expected size = %d, want %d", tse.Expected, BankSize)
	}
}

func TestBankChecksumMismatchRecorded(t *testing.T) {
	bank := NewBank()
	bank.Singles[7].Name = "Corrupted"
	data := bank.ToBytes()
	data[7*SinglePatchSize+SinglePatchSize-1] ^= 0x01

	got, err := ParseBank(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Mismatches) != 1 {
		t.Fatalf("mismatches = %d, want 1", len(got.Mismatches))
	}
	m := got.Mismatches[0]
	if m.Block != "single" || m.Index != 7 {
		t.Errorf("mismatch = %+v", m)
	}
	if got.Singles[7].Name != "Corrupted" {
		t.Errorf("patch with bad checksum not decoded: %q", got.Singles[7].Name)
	}
}

func TestBankStructuralErrorAborts(t *testing.T) {
	data := NewBank().ToBytes()
	// corrupt the source mode bits of single 0 (value 3 is unassigned)
	data[13] |= 0x03
	data[SinglePatchSize-1] = sysex.Checksum(data[:SinglePatchSize-1])

	_, err := ParseBank(data)
	var de *sysex.DiscriminantError
	if !errors.As(err, &de) {
		t.Fatalf("want DiscriminantError, got %v", err)
	}
}

func TestBankVolumeRangeError(t *testing.T) {
	data := NewBank().ToBytes()
	data[10] = 0x7F // single 0 volume byte, past 100
	data[SinglePatchSize-1] = sysex.Checksum(data[:SinglePatchSize-1])

	_, err := ParseBank(data)
	var re *ranged.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("want RangeError, got %v", err)
	}
}
