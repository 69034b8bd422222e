// Command dis disassembles a raw binary loaded at a fixed start address.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kschmidt/mos6502/bus"
	"github.com/kschmidt/mos6502/disassembler"
)

func main() {
	inputFile := flag.String("i", "", "input binary file")
	startAddr := flag.String("a", "0x8000", "start address (accepts $, 0x, or decimal)")
	flag.Parse()

	addr, err := parseAddress(*startAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		os.Exit(1)
	}

	mem := bus.NewFlat()
	length, err := loadBinary(mem, *inputFile, addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		os.Exit(1)
	}

	out, err := disassembler.Listing(mem, addr, length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dis: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing start address %q: %w", s, err)
	}
	return uint16(v), nil
}

func loadBinary(mem *bus.Flat, filename string, addr uint16) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("reading binary file: %w", err)
	}
	if int(addr)+len(data) > 1<<16 {
		return 0, fmt.Errorf("binary file too large to fit at $%04X", addr)
	}
	if err := mem.LoadROM(addr, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
