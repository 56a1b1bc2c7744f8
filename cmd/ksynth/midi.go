package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"ksynth/k4"
	"ksynth/k5000"
)

// Synth is an open MIDI output to a K4 or K5000.
type Synth struct {
	out drivers.Out
}

func OpenSynth(portIndex int) (*Synth, func(), error) {
	outs, err := drivers.Outs()
	if err != nil {
		return nil, nil, err
	}

	if portIndex < 0 || portIndex >= len(outs) {
		return nil, nil, fmt.Errorf("output port index %d out of range", portIndex)
	}

	out := outs[portIndex]
	if err := out.Open(); err != nil {
		return nil, nil, err
	}

	closer := func() {
		_ = out.Close()
		drivers.Close()
	}
	log.Println("Opened MIDI output port", out.String())
	return &Synth{out: out}, closer, nil
}

// Send transmits a MIDI message to the output port.
func (s *Synth) Send(msg midi.Message) error {
	if !s.out.IsOpen() {
		if err := s.out.Open(); err != nil {
			return err
		}
	}
	return s.out.Send(msg.Bytes())
}

// SendSysEx transmits a raw SysEx payload.
func (s *Synth) SendSysEx(data []byte) error {
	return s.Send(midi.Message(data))
}

// RequestDump sends a framed dump request and waits for the first
// SysEx response. A full K5000 additive patch runs to a few kilobytes
// and a bank dump much further, hence the large buffer.
func (s *Synth) RequestDump(inPort drivers.In, req []byte) ([]byte, error) {
	msgCh := make(chan midi.Message, 1)

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, _ int32) {
		if len(msg) > 0 && msg[0] == 0xF0 {
			select {
			case msgCh <- msg:
			default:
			}
		}
	}, midi.UseSysEx(), midi.SysExBufferSize(1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to listen for dump: %w", err)
	}
	defer stop()

	log.Println("Sending SysEx dump request")
	if err := s.SendSysEx(req); err != nil {
		return nil, fmt.Errorf("failed to send dump request: %w", err)
	}

	select {
	case msg := <-msgCh:
		log.Println("Received SysEx message")
		return []byte(msg), nil
	case <-time.After(5 * time.Second):
		return nil, errors.New("timed out waiting for dump")
	}
}

func requestDump(args []string) {
	if len(args) < 3 {
		log.Fatal("usage: ksynth request <port> <k4|k5000> <number> [out.syx]")
	}
	portHint, dialect := args[0], args[1]
	number, err := strconv.Atoi(args[2])
	if err != nil || number < 1 || number > 128 {
		log.Fatalf("patch number must be 1-128, got %q", args[2])
	}

	var req []byte
	switch dialect {
	case "k4":
		req = []byte{0x00, byte(k4.OnePatchDumpRequest), 0x00, k4Machine, 0x00, byte(number - 1)}
	case "k5000":
		req = []byte{0x00, byte(k5000.OneBlockDumpRequest), 0x00, k5000Machine,
			byte(k5000.Single), byte(k5000.BankA), byte(number - 1)}
	default:
		log.Fatalf("dialect must be k4 or k5000, got %q", dialect)
	}

	outIdx, err := findOutPort(portHint)
	if err != nil {
		log.Fatalf("could not find MIDI out port: %v", err)
	}
	inIdx, err := findInPort(portHint)
	if err != nil {
		log.Fatalf("could not find MIDI in port: %v", err)
	}

	synth, closer, err := OpenSynth(outIdx)
	if err != nil {
		log.Fatalf("failed to open MIDI output: %v", err)
	}
	defer closer()

	msg, err := synth.RequestDump(midi.GetInPorts()[inIdx], frame(req))
	if err != nil {
		log.Fatalf("failed to request dump: %v", err)
	}

	inner, err := stripFrame(msg)
	if err != nil {
		log.Fatalf("unexpected response: %v", err)
	}
	d, err := identifyPayload(inner)
	if err != nil {
		log.Fatalf("unexpected response: %v", err)
	}
	log.Println(d)

	if len(args) > 3 {
		if err := os.WriteFile(args[3], msg, 0o644); err != nil {
			log.Fatalf("failed to write %s: %v", args[3], err)
		}
		log.Printf("wrote %d bytes to %s", len(msg), args[3])
		return
	}

	out, err := describeDump(d)
	if err != nil {
		log.Fatalf("failed to decode dump: %v", err)
	}
	fmt.Println(out)
}

func sendFile(args []string) {
	if len(args) < 2 {
		log.Fatal("usage: ksynth send <port> <file.syx>")
	}
	raw, err := os.ReadFile(args[1])
	if err != nil {
		log.Fatalf("failed to read %s: %v", args[1], err)
	}
	if _, err := stripFrame(raw); err != nil {
		log.Fatalf("%s: %v", args[1], err)
	}

	outIdx, err := findOutPort(args[0])
	if err != nil {
		log.Fatalf("could not find MIDI out port: %v", err)
	}
	synth, closer, err := OpenSynth(outIdx)
	if err != nil {
		log.Fatalf("failed to open MIDI output: %v", err)
	}
	defer closer()

	if err := synth.SendSysEx(raw); err != nil {
		log.Fatalf("failed to send %s: %v", args[1], err)
	}
	log.Printf("sent %d bytes", len(raw))
}
