package k5000

import (
	"fmt"
	"strings"

	"ksynth/ranged"
	"ksynth/sysex"
)

// Function is the K5000 SysEx function code.
type Function byte

const (
	OneBlockDumpRequest Function = 0x00
	AllBlockDumpRequest Function = 0x01
	ParameterSend       Function = 0x10
	TrackControl        Function = 0x11
	OneBlockDump        Function = 0x20
	AllBlockDump        Function = 0x21
	ModeChange          Function = 0x31
	Remote              Function = 0x32
	WriteComplete       Function = 0x40
	WriteError          Function = 0x41
	WriteErrorProtect   Function = 0x42
	WriteErrorFull      Function = 0x44
	WriteErrorNoMemory  Function = 0x45
)

var functionNames = map[Function]string{
	OneBlockDumpRequest: "One Block Dump Request",
	AllBlockDumpRequest: "All Block Dump Request",
	ParameterSend:       "Parameter Send",
	TrackControl:        "Track Control",
	OneBlockDump:        "One Block Dump",
	AllBlockDump:        "All Block Dump",
	ModeChange:          "Mode Change",
	Remote:              "Remote",
	WriteComplete:       "Write Complete",
	WriteError:          "Write Error",
	WriteErrorProtect:   "Write Error (Protect)",
	WriteErrorFull:      "Write Error (Memory Full)",
	WriteErrorNoMemory:  "Write Error (No Expanded Memory)",
}

func (fn Function) String() string {
	if name, ok := functionNames[fn]; ok {
		return name
	}
	return fmt.Sprintf("Function %#02x", byte(fn))
}

// Cardinality tells a one-patch dump from a block dump.
type Cardinality byte

const (
	One   Cardinality = 0x20
	Block Cardinality = 0x21
)

func (c Cardinality) String() string {
	if c == Block {
		return "block"
	}
	return "one"
}

// Bank is a K5000 bank identifier. There is no bank C; banks D, E and
// F exist only with the matching models and expansions.
type Bank byte

const (
	BankA Bank = 0x00
	BankB Bank = 0x01
	BankD Bank = 0x02
	BankE Bank = 0x03
	BankF Bank = 0x04

	// BankNone marks a dump kind that carries no bank.
	BankNone Bank = 0x7F
)

func (b Bank) String() string {
	switch b {
	case BankA:
		return "A"
	case BankB:
		return "B"
	case BankD:
		return "D"
	case BankE:
		return "E"
	case BankF:
		return "F"
	}
	return "-"
}

// PatchKind is the dump kind byte of a K5000 header.
type PatchKind byte

const (
	Single         PatchKind = 0x00
	DrumKit        PatchKind = 0x10
	DrumInstrument PatchKind = 0x11
	Multi          PatchKind = 0x20
)

func (k PatchKind) String() string {
	switch k {
	case Single:
		return "single"
	case DrumKit:
		return "drum kit"
	case DrumInstrument:
		return "drum instrument"
	case Multi:
		return "multi"
	}
	return "?"
}

// ToneMapSize is the wire size of a tone map.
const ToneMapSize = 19

// MaxToneCount is the number of membership bits in a tone map.
const MaxToneCount = 128

// ToneMap records which tones a block dump includes: 128 bits packed
// seven per byte into 19 bytes, least significant bit first.
type ToneMap struct {
	included [MaxToneCount]bool
}

// Include marks a tone as included.
func (t *ToneMap) Include(tone int) { t.included[tone] = true }

// Contains reports whether a tone is included.
func (t *ToneMap) Contains(tone int) bool { return t.included[tone] }

// Count is the number of included tones.
func (t *ToneMap) Count() int {
	n := 0
	for _, in := range t.included {
		if in {
			n++
		}
	}
	return n
}

// Tones yields the included tone numbers in order.
func (t *ToneMap) Tones() []int {
	var tones []int
	for i, in := range t.included {
		if in {
			tones = append(tones, i)
		}
	}
	return tones
}

func (t *ToneMap) String() string {
	var b strings.Builder
	for _, tone := range t.Tones() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", tone+1)
	}
	return b.String()
}

// ParseToneMap decodes the 19 tone map bytes.
func ParseToneMap(data []byte) (*ToneMap, error) {
	if len(data) < ToneMapSize {
		return nil, &sysex.TooShortError{Expected: ToneMapSize, Actual: len(data)}
	}
	var t ToneMap
	for tone := 0; tone < MaxToneCount; tone++ {
		if data[tone/7]&(1<<(tone%7)) != 0 {
			t.included[tone] = true
		}
	}
	return &t, nil
}

// ToBytes emits the 19 tone map bytes. Only the two lowest bits of
// the last byte can ever be set.
func (t *ToneMap) ToBytes() []byte {
	buf := make([]byte, ToneMapSize)
	for tone := 0; tone < MaxToneCount; tone++ {
		if t.included[tone] {
			buf[tone/7] |= 1 << (tone % 7)
		}
	}
	return buf
}

// headerBaseSize covers channel, cardinality, the two constant bytes
// and the kind byte.
const headerBaseSize = 5

// Header is an identified K5000 dump header. Bank is BankNone and
// ToneMap nil when the dump kind carries none.
type Header struct {
	Channel     ranged.Value `json:"channel"`
	Cardinality Cardinality  `json:"cardinality"`
	Kind        PatchKind    `json:"kind"`
	Bank        Bank         `json:"bank"`
	Tone        byte         `json:"tone"`
	ToneMap     *ToneMap     `json:"tone_map,omitempty"`
}

// Size is the wire size of the header.
func (h *Header) Size() int {
	size := headerBaseSize
	if h.Kind == Single {
		size++
	}
	if h.ToneMap != nil {
		size += ToneMapSize
	} else if h.numbered() {
		size++
	}
	return size
}

// numbered reports whether the header carries a tone number byte.
func (h *Header) numbered() bool {
	if h.Cardinality != One {
		return false
	}
	return h.Kind == Single || h.Kind == DrumInstrument || h.Kind == Multi
}

// ToBytes emits the header in wire order.
func (h *Header) ToBytes() []byte {
	buf := []byte{
		byte(h.Channel.Int() - 1),
		byte(h.Cardinality),
		0x00,
		0x0A,
		byte(h.Kind),
	}
	if h.Kind == Single {
		buf = append(buf, byte(h.Bank))
	}
	if h.ToneMap != nil {
		buf = append(buf, h.ToneMap.ToBytes()...)
	} else if h.numbered() {
		buf = append(buf, h.Tone)
	}
	return buf
}

func (h *Header) String() string {
	s := fmt.Sprintf("%s %s", h.Cardinality, h.Kind)
	if h.Kind == Single {
		s += fmt.Sprintf(" bank %s", h.Bank)
	}
	if h.ToneMap != nil {
		return fmt.Sprintf("%s (%d tones)", s, h.ToneMap.Count())
	}
	if h.numbered() {
		return fmt.Sprintf("%s %d", s, h.Tone)
	}
	return s
}

// subForm tells what follows the kind and bank bytes of a header.
type subForm int

const (
	subNone subForm = iota
	subTone
	subToneMap
)

// dumpRule matches one (cardinality, kind, bank) combination. The
// dispatch walks the table in order and takes the first match;
// bankAny stands for any valid single bank.
type dumpRule struct {
	cardinality Cardinality
	kind        PatchKind
	bank        Bank
	sub         subForm
}

const bankAny Bank = 0x7E

var dumpRules = []dumpRule{
	{One, Single, bankAny, subTone},
	{One, DrumKit, BankNone, subNone},
	{One, DrumInstrument, BankNone, subTone},
	{One, Multi, BankNone, subTone},
	// Bank B is all PCM data: its block dump has no tone map.
	{Block, Single, BankB, subNone},
	{Block, Single, bankAny, subToneMap},
	{Block, DrumInstrument, BankNone, subNone},
	{Block, Multi, BankNone, subNone},
}

// Dump is an identified K5000 data dump: the parsed header and the
// data after it.
type Dump struct {
	Header  Header
	Payload []byte
}

func (d *Dump) String() string { return d.Header.String() }

func validBank(b byte) bool {
	return b <= byte(BankF)
}

// IdentifyDump parses the header at the start of payload and matches
// it against the dispatch table. The returned dump's Payload aliases
// the data after the header.
func IdentifyDump(payload []byte) (*Dump, error) {
	if len(payload) < headerBaseSize {
		return nil, &sysex.TooShortError{Expected: headerBaseSize, Actual: len(payload)}
	}
	if payload[2] != 0x00 || payload[3] != 0x0A {
		return nil, sysex.ErrUnidentified
	}

	cardinality := Cardinality(payload[1])
	kind := PatchKind(payload[4])
	channel, err := ranged.New(Channel, int(payload[0]&0x0F)+1)
	if err != nil {
		return nil, err
	}

	for _, r := range dumpRules {
		if cardinality != r.cardinality || kind != r.kind {
			continue
		}
		h := Header{
			Channel:     channel,
			Cardinality: cardinality,
			Kind:        kind,
			Bank:        BankNone,
		}
		next := headerBaseSize

		if r.bank != BankNone {
			if len(payload) < next+1 {
				return nil, &sysex.TooShortError{Expected: next + 1, Actual: len(payload)}
			}
			b := payload[next]
			if !validBank(b) {
				return nil, sysex.ErrUnidentified
			}
			if r.bank != bankAny && Bank(b) != r.bank {
				continue
			}
			h.Bank = Bank(b)
			next++
		}

		switch r.sub {
		case subTone:
			if len(payload) < next+1 {
				return nil, &sysex.TooShortError{Expected: next + 1, Actual: len(payload)}
			}
			h.Tone = payload[next]
			next++
		case subToneMap:
			toneMap, err := ParseToneMap(payload[next:])
			if err != nil {
				return nil, err
			}
			h.ToneMap = toneMap
			next += ToneMapSize
		}

		return &Dump{Header: h, Payload: payload[next:]}, nil
	}
	return nil, sysex.ErrUnidentified
}
