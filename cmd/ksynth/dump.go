package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"ksynth/k4"
	"ksynth/k5000"
	"ksynth/sysex"
)

// kawaiID is the manufacturer byte after the SysEx frame marker.
const kawaiID = 0x40

// The machine ID byte of the dump header tells the dialects apart.
const (
	k4Machine    = 0x04
	k5000Machine = 0x0A
)

func readFrame(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return stripFrame(raw)
}

func stripFrame(raw []byte) ([]byte, error) {
	if len(raw) < 6 || raw[0] != 0xF0 || raw[len(raw)-1] != 0xF7 {
		return nil, errors.New("not a complete SysEx frame")
	}
	if raw[1] != kawaiID {
		return nil, fmt.Errorf("manufacturer %#02x is not Kawai", raw[1])
	}
	return raw[2 : len(raw)-1], nil
}

func frame(inner []byte) []byte {
	out := make([]byte, 0, len(inner)+3)
	out = append(out, 0xF0, kawaiID)
	out = append(out, inner...)
	return append(out, 0xF7)
}

// identified is a dump matched by one of the two dialect dispatchers;
// exactly one field is set.
type identified struct {
	k4 *k4.Dump
	k5 *k5000.Dump
}

func (d *identified) String() string {
	if d.k4 != nil {
		return "K4 " + d.k4.String()
	}
	return "K5000 " + d.k5.String()
}

func identifyPayload(inner []byte) (*identified, error) {
	if len(inner) < 4 {
		return nil, &sysex.TooShortError{Expected: 4, Actual: len(inner)}
	}
	switch inner[3] {
	case k4Machine:
		d, err := k4.IdentifyDump(inner)
		if err != nil {
			return nil, err
		}
		return &identified{k4: d}, nil
	case k5000Machine:
		d, err := k5000.IdentifyDump(inner)
		if err != nil {
			return nil, err
		}
		return &identified{k5: d}, nil
	}
	return nil, sysex.ErrUnidentified
}

func identifyFile(path string) {
	inner, err := readFrame(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	d, err := identifyPayload(inner)
	if err != nil {
		log.Fatalf("failed to identify %s: %v", path, err)
	}
	fmt.Println(d)
}

// checksumWarning downgrades a checksum mismatch to a logged warning
// so a dump with a stale checksum still decodes.
func checksumWarning(err error) error {
	var cerr *sysex.ChecksumError
	if err != nil && errors.As(err, &cerr) {
		log.Printf("warning: %v", err)
		return nil
	}
	return err
}

// decodeDump parses the data after an identified header into the
// matching patch model.
func decodeDump(d *identified) (any, error) {
	if d.k4 != nil {
		return decodeK4(d.k4)
	}
	return decodeK5000(d.k5)
}

func decodeK4(d *k4.Dump) (any, error) {
	switch d.Kind {
	case k4.DumpOneSingle:
		p, err := k4.ParseSinglePatch(d.Payload)
		return p, checksumWarning(err)
	case k4.DumpOneMulti:
		p, err := k4.ParseMultiPatch(d.Payload)
		return p, checksumWarning(err)
	case k4.DumpOneEffect:
		p, err := k4.ParseEffectPatch(d.Payload)
		return p, checksumWarning(err)
	case k4.DumpDrum:
		p, err := k4.ParseDrumPatch(d.Payload)
		return p, checksumWarning(err)
	case k4.DumpAll:
		bank, err := k4.ParseBank(d.Payload)
		if err != nil {
			return nil, err
		}
		for _, m := range bank.Mismatches {
			log.Printf("warning: checksum mismatch at %s", m)
		}
		return bank, nil
	case k4.DumpBlockSingle:
		var patches []*k4.SinglePatch
		for off := 0; off+k4.SinglePatchSize <= len(d.Payload); off += k4.SinglePatchSize {
			p, err := k4.ParseSinglePatch(d.Payload[off:])
			if err := checksumWarning(err); err != nil {
				return nil, fmt.Errorf("single %d: %w", len(patches)+1, err)
			}
			patches = append(patches, p)
		}
		return patches, nil
	case k4.DumpBlockMulti:
		var patches []*k4.MultiPatch
		for off := 0; off+k4.MultiPatchSize <= len(d.Payload); off += k4.MultiPatchSize {
			p, err := k4.ParseMultiPatch(d.Payload[off:])
			if err := checksumWarning(err); err != nil {
				return nil, fmt.Errorf("multi %d: %w", len(patches)+1, err)
			}
			patches = append(patches, p)
		}
		return patches, nil
	case k4.DumpBlockEffect:
		var patches []*k4.EffectPatch
		for off := 0; off+k4.EffectPatchSize <= len(d.Payload); off += k4.EffectPatchSize {
			p, err := k4.ParseEffectPatch(d.Payload[off:])
			if err := checksumWarning(err); err != nil {
				return nil, fmt.Errorf("effect %d: %w", len(patches)+1, err)
			}
			patches = append(patches, p)
		}
		return patches, nil
	}
	return nil, fmt.Errorf("no decoder for %s", d)
}

func decodeK5000(d *k5000.Dump) (any, error) {
	switch d.Header.Kind {
	case k5000.Single:
		if d.Header.Cardinality == k5000.One {
			p, err := k5000.ParseSinglePatch(d.Payload)
			return p, checksumWarning(err)
		}
		return decodeK5000Block(d.Payload)
	case k5000.Multi:
		if d.Header.Cardinality == k5000.One {
			p, err := k5000.ParseMultiPatch(d.Payload)
			return p, checksumWarning(err)
		}
		var patches []*k5000.MultiPatch
		for off := 0; off+k5000.MultiPatchSize <= len(d.Payload); off += k5000.MultiPatchSize {
			p, err := k5000.ParseMultiPatch(d.Payload[off:])
			if err := checksumWarning(err); err != nil {
				return nil, fmt.Errorf("multi %d: %w", len(patches)+1, err)
			}
			patches = append(patches, p)
		}
		return patches, nil
	}
	return nil, fmt.Errorf("no decoder for %s", d.Header.String())
}

// decodeK5000Block walks the singles of a block dump. Each patch
// declares its own source layout, so the sizes vary.
func decodeK5000Block(payload []byte) ([]*k5000.SinglePatch, error) {
	var patches []*k5000.SinglePatch
	off := 0
	for off+1+k5000.CommonSize <= len(payload) {
		p, err := k5000.ParseSinglePatch(payload[off:])
		if err := checksumWarning(err); err != nil {
			return nil, fmt.Errorf("single %d: %w", len(patches)+1, err)
		}
		patches = append(patches, p)
		off += p.Size()
	}
	return patches, nil
}

func showFile(path string) {
	inner, err := readFrame(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	d, err := identifyPayload(inner)
	if err != nil {
		log.Fatalf("failed to identify %s: %v", path, err)
	}
	log.Println(d)

	out, err := describeDump(d)
	if err != nil {
		log.Fatalf("failed to decode %s: %v", path, err)
	}
	fmt.Println(out)
}

func describeDump(d *identified) (string, error) {
	v, err := decodeDump(d)
	if err != nil {
		return "", err
	}
	asJson, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal patch to JSON: %v", err)
	}
	return string(asJson), nil
}

func listBank(path string) {
	inner, err := readFrame(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	d, err := identifyPayload(inner)
	if err != nil {
		log.Fatalf("failed to identify %s: %v", path, err)
	}
	out, err := bankListing(d)
	if err != nil {
		log.Fatalf("failed to list %s: %v", path, err)
	}
	fmt.Print(out)
}

func bankListing(d *identified) (string, error) {
	var b strings.Builder
	switch {
	case d.k4 != nil && d.k4.Kind == k4.DumpAll:
		bank, err := k4.ParseBank(d.k4.Payload)
		if err != nil {
			return "", err
		}
		for _, m := range bank.Mismatches {
			log.Printf("warning: checksum mismatch at %s", m)
		}
		for i := range bank.Singles {
			p := &bank.Singles[i]
			fmt.Fprintf(&b, "single %2d  %-10s  volume=%-3d  effect=%d sub=%s\n",
				i+1, p.Name, p.Volume.Int(), p.Effect.Int(), p.Submix)
		}
		for i := range bank.Multis {
			p := &bank.Multis[i]
			fmt.Fprintf(&b, "multi  %2d  %-10s  volume=%-3d  effect=%d\n",
				i+1, p.Name, p.Volume.Int(), p.Effect.Int())
		}
		fmt.Fprintf(&b, "drum       channel=%d volume=%d\n",
			bank.Drum.Common.Channel.Int(), bank.Drum.Common.Volume.Int())
		for i := range bank.Effects {
			fmt.Fprintf(&b, "effect %2d  %s\n", i+1, bank.Effects[i].String())
		}

	case d.k4 != nil && d.k4.Kind == k4.DumpBlockSingle:
		patches, err := decodeK4(d.k4)
		if err != nil {
			return "", err
		}
		for i, p := range patches.([]*k4.SinglePatch) {
			fmt.Fprintf(&b, "single %2d  %-10s  volume=%d\n", i+1, p.Name, p.Volume.Int())
		}

	case d.k5 != nil && d.k5.Header.Kind == k5000.Single && d.k5.Header.Cardinality == k5000.Block:
		patches, err := decodeK5000Block(d.k5.Payload)
		if err != nil {
			return "", err
		}
		tones := blockTones(d.k5.Header, len(patches))
		for i, p := range patches {
			fmt.Fprintf(&b, "single %3d  %s\n", tones[i]+1, p.String())
		}

	default:
		return "", fmt.Errorf("%s is not a bank dump", d)
	}
	return b.String(), nil
}

// blockTones maps block positions to tone numbers: the tone map lists
// them when present, otherwise the patches are stored in order.
func blockTones(h k5000.Header, count int) []int {
	if h.ToneMap != nil && h.ToneMap.Count() >= count {
		return h.ToneMap.Tones()
	}
	tones := make([]int, count)
	for i := range tones {
		tones[i] = i
	}
	return tones
}
