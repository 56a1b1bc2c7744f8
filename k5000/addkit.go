package k5000

import (
	"fmt"

	"ksynth/sysex"
)

// AdditiveKitSize is the dump size of an additive kit, checksum
// included.
const AdditiveKitSize = 806

// Additive kit region offsets. The blocks are stored back to back
// after the checksum, with one reserved byte at the end.
const (
	kitCommonOffset    = 1
	kitMorfOffset      = kitCommonOffset + HarmonicCommonSize
	kitFormantOffset   = kitMorfOffset + MorfHarmonicSize
	kitLevelsOffset    = kitFormantOffset + FormantFilterSize
	kitBandsOffset     = kitLevelsOffset + HarmonicLevelsSize
	kitEnvelopesOffset = kitBandsOffset + BandCount
)

// AdditiveKit is the harmonic data of one additive source: common and
// MORF blocks, the formant filter with its 128 bands, the harmonic
// levels and one envelope per harmonic.
type AdditiveKit struct {
	Common    HarmonicCommon                  `json:"common"`
	Morf      MorfHarmonic                    `json:"morf"`
	Formant   FormantFilter                   `json:"formant"`
	Levels    HarmonicLevels                  `json:"levels"`
	Bands     [BandCount]byte                 `json:"bands"`
	Envelopes [HarmonicCount]HarmonicEnvelope `json:"envelopes"`
}

// NewAdditiveKit returns a kit with the defaults.
func NewAdditiveKit() *AdditiveKit {
	k := &AdditiveKit{
		Common:  NewHarmonicCommon(),
		Morf:    NewMorfHarmonic(),
		Formant: NewFormantFilter(),
	}
	for i := range k.Envelopes {
		k.Envelopes[i] = NewHarmonicEnvelope()
	}
	return k
}

// kitChecksum computes the additive kit checksum over the kit body:
// the folded sum of the common, MORF and formant blocks, the raw sums
// of the levels and bands, and the folded sum of the envelope bytes.
func kitChecksum(data []byte) byte {
	total := blockSum(data[kitCommonOffset:kitLevelsOffset])
	for _, b := range data[kitLevelsOffset:kitBandsOffset] {
		total += int(b)
	}
	for _, b := range data[kitBandsOffset:kitEnvelopesOffset] {
		total += int(b)
	}
	total += blockSum(data[kitEnvelopesOffset : kitEnvelopesOffset+HarmonicCount*HarmonicEnvelopeSize])
	total += 0xA5
	return byte(total & 0x7F)
}

// ParseAdditiveKit decodes an 806-byte additive kit. On a checksum
// mismatch the decoded kit is returned together with a
// *sysex.ChecksumError, so the caller decides whether to keep it.
func ParseAdditiveKit(data []byte) (*AdditiveKit, error) {
	if len(data) < AdditiveKitSize {
		return nil, &sysex.TooShortError{Expected: AdditiveKitSize, Actual: len(data)}
	}
	var k AdditiveKit

	common, err := ParseHarmonicCommon(data[kitCommonOffset:kitMorfOffset])
	if err != nil {
		return nil, fmt.Errorf("common: %w", err)
	}
	k.Common = *common

	morf, err := ParseMorfHarmonic(data[kitMorfOffset:kitFormantOffset])
	if err != nil {
		return nil, fmt.Errorf("morf: %w", err)
	}
	k.Morf = *morf

	formant, err := ParseFormantFilter(data[kitFormantOffset:kitLevelsOffset])
	if err != nil {
		return nil, fmt.Errorf("formant: %w", err)
	}
	k.Formant = *formant

	levels, err := ParseHarmonicLevels(data[kitLevelsOffset:kitBandsOffset])
	if err != nil {
		return nil, err
	}
	k.Levels = *levels

	copy(k.Bands[:], data[kitBandsOffset:kitEnvelopesOffset])

	for i := range k.Envelopes {
		off := kitEnvelopesOffset + i*HarmonicEnvelopeSize
		env, err := ParseHarmonicEnvelope(data[off : off+HarmonicEnvelopeSize])
		if err != nil {
			return nil, fmt.Errorf("harmonic envelope %d: %w", i+1, err)
		}
		k.Envelopes[i] = *env
	}

	if sum := kitChecksum(data); sum != data[0] {
		return &k, &sysex.ChecksumError{Computed: sum, Stored: data[0]}
	}
	return &k, nil
}

// ToBytes emits the 806-byte dump form, checksum first.
func (k *AdditiveKit) ToBytes() []byte {
	buf := make([]byte, 0, AdditiveKitSize)
	buf = append(buf, 0) // checksum placeholder
	buf = append(buf, k.Common.ToBytes()...)
	buf = append(buf, k.Morf.ToBytes()...)
	buf = append(buf, k.Formant.ToBytes()...)
	buf = append(buf, k.Levels.ToBytes()...)
	buf = append(buf, k.Bands[:]...)
	for i := range k.Envelopes {
		buf = append(buf, k.Envelopes[i].ToBytes()...)
	}
	buf = append(buf, 0) // reserved
	buf[0] = kitChecksum(buf)
	return buf
}
