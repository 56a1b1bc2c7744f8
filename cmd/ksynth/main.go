package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const usage = `usage: ksynth <command> [args]

commands:
  identify <file.syx>                 tell what kind of dump a file holds
  show <file.syx>                     decode a dump and print it as JSON
  bank <file.syx>                     list the patches of a bank dump
  request <port> <k4|k5000> <number> [out.syx]
                                      request a single patch over MIDI
  send <port> <file.syx>              send a dump file over MIDI
  mcp                                 run the MCP stdio server
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "identify":
		identifyFile(fileArg())
	case "show":
		showFile(fileArg())
	case "bank":
		listBank(fileArg())
	case "request":
		requestDump(os.Args[2:])
	case "send":
		sendFile(os.Args[2:])
	case "mcp":
		runMCP()
	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}

func fileArg() string {
	if len(os.Args) < 3 {
		log.Fatalf("%s needs a file argument", os.Args[1])
	}
	return os.Args[2]
}

func findOutPort(nameFragment string) (int, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return -1, fmt.Errorf("no MIDI outputs available")
	}

	lower := strings.ToLower(nameFragment)
	for _, out := range outs {
		if strings.Contains(strings.ToLower(out.String()), lower) {
			return out.Number(), nil
		}
	}

	return -1, fmt.Errorf("no MIDI output contains %q", nameFragment)
}

func findInPort(nameFragment string) (int, error) {
	ins := midi.GetInPorts()
	if len(ins) == 0 {
		return -1, fmt.Errorf("no MIDI inputs available")
	}

	lower := strings.ToLower(nameFragment)
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), lower) {
			return in.Number(), nil
		}
	}

	return -1, fmt.Errorf("no MIDI input contains %q", nameFragment)
}
