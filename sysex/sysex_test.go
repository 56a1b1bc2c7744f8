package sysex

import (
	"bytes"
	"errors"
	"testing"
)

func TestEveryNth(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if got := EveryNth(data, 4, 0); !bytes.Equal(got, []byte{1, 5, 9}) {
		t.Errorf("EveryNth(4, 0) = %v", got)
	}
	if got := EveryNth(data, 4, 1); !bytes.Equal(got, []byte{2, 6, 10}) {
		t.Errorf("EveryNth(4, 1) = %v", got)
	}
}

func TestScatterInvertsGather(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	out := make([]byte, len(data))
	for off := 0; off < 4; off++ {
		ScatterNth(out, EveryNth(data, 4, off), 4, off)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("scatter(gather) = %v, want %v", out, data)
	}
}

func TestChecksum(t *testing.T) {
	if c := Checksum(nil); c != 0xA5&0x7F {
		t.Errorf("Checksum(nil) = %#02x", c)
	}
	body := []byte{0x40, 0x3F, 0x01}
	if c := Checksum(body); c != byte((0x40+0x3F+0x01+0xA5)&0x7F) {
		t.Errorf("Checksum = %#02x", c)
	}
	if Checksum(body)&0x80 != 0 {
		t.Error("checksum has the high bit set")
	}
	if err := VerifyChecksum(body, Checksum(body)); err != nil {
		t.Errorf("VerifyChecksum: %v", err)
	}
	var ce *ChecksumError
	if err := VerifyChecksum(body, 0x00); !errors.As(err, &ce) {
		t.Fatalf("VerifyChecksum mismatch: %v", err)
	}
}

func TestName(t *testing.T) {
	got, err := ParseName([]byte("Melo Vox 1"))
	if err != nil || got != "Melo Vox 1" {
		t.Errorf("ParseName = %q, %v", got, err)
	}
	got, err = ParseName([]byte("Init      "))
	if err != nil || got != "Init" {
		t.Errorf("ParseName padded = %q, %v", got, err)
	}
	var ite *InvalidTextError
	if _, err := ParseName([]byte{0x80, 'a'}); !errors.As(err, &ite) {
		t.Errorf("ParseName control byte: %v", err)
	}
	if !bytes.Equal(NameBytes("Init", 10), []byte("Init      ")) {
		t.Error("NameBytes does not pad with spaces")
	}
	if !bytes.Equal(NameBytes("ABCDEFGHIJK", 10), []byte("ABCDEFGHIJ")) {
		t.Error("NameBytes does not truncate")
	}
}

func TestDecoderTooShort(t *testing.T) {
	var tse *TooShortError
	if _, err := NewDecoder([]byte{1, 2}, 3); !errors.As(err, &tse) {
		t.Fatalf("NewDecoder: %v", err)
	} else if tse.Expected != 3 || tse.Actual != 2 {
		t.Errorf("TooShortError = %+v", tse)
	}
}

func TestDecoderKeepsFirstError(t *testing.T) {
	d, err := NewDecoder([]byte{0x01, 0x7F}, 2)
	if err != nil {
		t.Fatal(err)
	}
	d.Enum("test field", d.Byte(1), 0x03)
	d.Enum("other field", d.Byte(0), 0x00)
	var de *DiscriminantError
	if !errors.As(d.Err(), &de) || de.Field != "test field" {
		t.Errorf("Err() = %v", d.Err())
	}
}
