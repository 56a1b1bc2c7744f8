package k4

import (
	"fmt"

	"ksynth/ranged"
	"ksynth/sysex"
)

// HeaderSize is the size of the K4 dump header that follows the
// manufacturer ID.
const HeaderSize = 6

// Function is the K4 SysEx function code.
type Function byte

const (
	OnePatchDumpRequest   Function = 0x00
	BlockPatchDumpRequest Function = 0x01
	AllPatchDumpRequest   Function = 0x02
	ParameterSend         Function = 0x10
	OnePatchDataDump      Function = 0x20
	BlockPatchDataDump    Function = 0x21
	AllPatchDataDump      Function = 0x22
	EditBufferDump        Function = 0x23
	ProgramChange         Function = 0x30
	WriteComplete         Function = 0x40
	WriteError            Function = 0x41
	WriteErrorProtect     Function = 0x42
	WriteErrorNoCard      Function = 0x43
)

var functionNames = map[Function]string{
	OnePatchDumpRequest:   "One Patch Dump Request",
	BlockPatchDumpRequest: "Block Patch Dump Request",
	AllPatchDumpRequest:   "All Patch Dump Request",
	ParameterSend:         "Parameter Send",
	OnePatchDataDump:      "One Patch Data Dump",
	BlockPatchDataDump:    "Block Patch Data Dump",
	AllPatchDataDump:      "All Patch Data Dump",
	EditBufferDump:        "Edit Buffer Dump",
	ProgramChange:         "Program Change",
	WriteComplete:         "Write Complete",
	WriteError:            "Write Error",
	WriteErrorProtect:     "Write Error (Protect)",
	WriteErrorNoCard:      "Write Error (No Card)",
}

func (fn Function) String() string {
	if name, ok := functionNames[fn]; ok {
		return name
	}
	return fmt.Sprintf("Function %#02x", byte(fn))
}

// Header is the six-byte K4 dump header.
type Header struct {
	Channel   ranged.Value `json:"channel"`
	Function  Function     `json:"function"`
	Group     byte         `json:"group"`
	MachineID byte         `json:"machine_id"`
	Sub1      byte         `json:"sub1"`
	Sub2      byte         `json:"sub2"`
}

// ParseHeader decodes the dump header. The channel is stored 0-based
// on the wire. A function byte outside the known table fails with a
// discriminant error; ErrUnidentified is reserved for well-formed
// headers that match no dispatch rule.
func ParseHeader(data []byte) (*Header, error) {
	d, err := sysex.NewDecoder(data, HeaderSize)
	if err != nil {
		return nil, err
	}
	fn := Function(d.Byte(1))
	if _, ok := functionNames[fn]; !ok {
		return nil, &sysex.DiscriminantError{Field: "function", Value: byte(fn)}
	}
	h := Header{
		Channel:   d.RangedInt(Channel, int(d.Byte(0)&0x0F)+1),
		Function:  fn,
		Group:     d.Byte(2),
		MachineID: d.Byte(3),
		Sub1:      d.Byte(4),
		Sub2:      d.Byte(5),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return &h, nil
}

func (h *Header) ToBytes() []byte {
	return []byte{
		byte(h.Channel.Int() - 1),
		byte(h.Function),
		h.Group,
		h.MachineID,
		h.Sub1,
		h.Sub2,
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("ch: %s fn: %s sub1: %#02x sub2: %#02x",
		h.Channel, h.Function, h.Sub1, h.Sub2)
}

// Locality tells internal memory from the external card.
type Locality byte

const (
	Internal Locality = iota
	External
)

func (l Locality) String() string {
	if l == External {
		return "EXT"
	}
	return "INT"
}

// DumpKind classifies a K4 data dump.
type DumpKind int

const (
	DumpAll DumpKind = iota
	DumpOneSingle
	DumpOneMulti
	DumpOneEffect
	DumpDrum
	DumpBlockSingle
	DumpBlockMulti
	DumpBlockEffect
)

func (k DumpKind) String() string {
	switch k {
	case DumpAll:
		return "all patch data"
	case DumpOneSingle:
		return "one single patch"
	case DumpOneMulti:
		return "one multi patch"
	case DumpOneEffect:
		return "one effect patch"
	case DumpDrum:
		return "drum patch"
	case DumpBlockSingle:
		return "block of single patches"
	case DumpBlockMulti:
		return "block of multi patches"
	case DumpBlockEffect:
		return "block of effect patches"
	}
	return "?"
}

// Dump is an identified K4 data dump: its kind and locality, the
// parsed header, the patch number for one-patch dumps, and the data
// after the header.
type Dump struct {
	Kind     DumpKind
	Locality Locality
	Number   byte
	Header   Header
	Payload  []byte
}

func (d *Dump) String() string {
	if d.Kind == DumpOneSingle || d.Kind == DumpOneMulti || d.Kind == DumpOneEffect {
		return fmt.Sprintf("%s %d (%s)", d.Kind, d.Number, d.Locality)
	}
	return fmt.Sprintf("%s (%s)", d.Kind, d.Locality)
}

// dumpRule matches one (function, sub1, sub2 range) combination. The
// dispatch walks the table in order and takes the first match.
type dumpRule struct {
	function   Function
	sub1       byte
	sub2Lo     byte
	sub2Hi     byte
	kind       DumpKind
	locality   Locality
	isNumbered bool
}

var dumpRules = []dumpRule{
	{OnePatchDataDump, 0x00, 0, 63, DumpOneSingle, Internal, true},
	{OnePatchDataDump, 0x00, 64, 127, DumpOneMulti, Internal, true},
	{OnePatchDataDump, 0x02, 0, 63, DumpOneSingle, External, true},
	{OnePatchDataDump, 0x02, 64, 127, DumpOneMulti, External, true},
	{OnePatchDataDump, 0x01, 0, 31, DumpOneEffect, Internal, true},
	{OnePatchDataDump, 0x03, 0, 31, DumpOneEffect, External, true},
	{OnePatchDataDump, 0x01, 32, 32, DumpDrum, Internal, false},
	{OnePatchDataDump, 0x03, 32, 32, DumpDrum, External, false},
	{BlockPatchDataDump, 0x00, 0x00, 0x00, DumpBlockSingle, Internal, false},
	{BlockPatchDataDump, 0x00, 0x40, 0x40, DumpBlockMulti, Internal, false},
	{BlockPatchDataDump, 0x02, 0x00, 0x00, DumpBlockSingle, External, false},
	{BlockPatchDataDump, 0x02, 0x40, 0x40, DumpBlockMulti, External, false},
	{BlockPatchDataDump, 0x01, 0x00, 0x00, DumpBlockEffect, Internal, false},
	{BlockPatchDataDump, 0x03, 0x00, 0x00, DumpBlockEffect, External, false},
	{AllPatchDataDump, 0x00, 0x00, 0x00, DumpAll, Internal, false},
	{AllPatchDataDump, 0x02, 0x00, 0x00, DumpAll, External, false},
}

// IdentifyDump parses the header at the start of payload and matches
// it against the dispatch table. The returned dump's Payload aliases
// the data after the header.
func IdentifyDump(payload []byte) (*Dump, error) {
	header, err := ParseHeader(payload)
	if err != nil {
		return nil, err
	}

	for _, r := range dumpRules {
		if header.Function != r.function || header.Sub1 != r.sub1 {
			continue
		}
		if header.Sub2 < r.sub2Lo || header.Sub2 > r.sub2Hi {
			continue
		}
		d := &Dump{
			Kind:     r.kind,
			Locality: r.locality,
			Header:   *header,
			Payload:  payload[HeaderSize:],
		}
		if r.isNumbered {
			d.Number = header.Sub2
		}
		return d, nil
	}
	return nil, sysex.ErrUnidentified
}
