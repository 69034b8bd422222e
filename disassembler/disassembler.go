// Package disassembler renders the bytes at an address as 6502 assembly
// text, keyed off the same opcode.Table the cpu package executes
// against rather than a private copy of the opcode/mnemonic mapping.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/kschmidt/mos6502/opcode"
)

// Memory is the read-only view a disassembler needs. Both bus.Bus and
// bus.Flat satisfy it, as does any []byte wrapped by the caller.
type Memory interface {
	Read(addr uint16) (uint8, error)
}

// Line is one decoded instruction: its address, raw bytes, and rendered
// text.
type Line struct {
	Addr    uint16
	Opcode  uint8
	Operand []byte
	Desc    opcode.Descriptor
}

// Size is the number of bytes this instruction occupies, including the
// opcode byte.
func (l Line) Size() int {
	if l.Desc.Unmapped {
		return 1
	}
	return int(l.Desc.Length)
}

// Text renders the mnemonic and formatted operand, e.g. "LDA $10,X" or
// "BNE $8010". An unmapped opcode renders as a raw data byte.
func (l Line) Text() string {
	if l.Desc.Unmapped {
		return fmt.Sprintf("db $%02X", l.Opcode)
	}
	operand := formatOperand(l.Desc.Mode, l.Addr, l.Operand)
	if operand == "" {
		return l.Desc.Mnemonic.String()
	}
	return fmt.Sprintf("%s %s", l.Desc.Mnemonic.String(), operand)
}

// String renders a monitor-style line: address, hex dump, mnemonic.
func (l Line) String() string {
	hex := fmt.Sprintf("%02X", l.Opcode)
	for _, b := range l.Operand {
		hex += fmt.Sprintf(" %02X", b)
	}
	return fmt.Sprintf("$%04X: %-8s  %s", l.Addr, hex, l.Text())
}

func formatOperand(mode opcode.AddressingMode, addr uint16, operand []byte) string {
	switch mode {
	case opcode.Implicit, opcode.Accumulator:
		if mode == opcode.Accumulator {
			return "A"
		}
		return ""
	case opcode.Immediate:
		return fmt.Sprintf("#$%02X", operand[0])
	case opcode.ZeroPage:
		return fmt.Sprintf("$%02X", operand[0])
	case opcode.ZeroPageX:
		return fmt.Sprintf("$%02X,X", operand[0])
	case opcode.ZeroPageY:
		return fmt.Sprintf("$%02X,Y", operand[0])
	case opcode.Relative:
		target := addr + 2 + uint16(int8(operand[0]))
		return fmt.Sprintf("$%04X", target)
	case opcode.Absolute:
		return fmt.Sprintf("$%02X%02X", operand[1], operand[0])
	case opcode.AbsoluteX:
		return fmt.Sprintf("$%02X%02X,X", operand[1], operand[0])
	case opcode.AbsoluteY:
		return fmt.Sprintf("$%02X%02X,Y", operand[1], operand[0])
	case opcode.Indirect:
		return fmt.Sprintf("($%02X%02X)", operand[1], operand[0])
	case opcode.IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", operand[0])
	case opcode.IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", operand[0])
	default:
		return "???"
	}
}

// Decode reads one instruction at addr without side effects on CPU
// state.
func Decode(mem Memory, addr uint16) (Line, error) {
	op, err := mem.Read(addr)
	if err != nil {
		return Line{}, err
	}
	desc := opcode.Table[op]
	l := Line{Addr: addr, Opcode: op, Desc: desc}
	if desc.Unmapped {
		return l, nil
	}
	operandBytes := int(desc.Length) - 1
	for i := 0; i < operandBytes; i++ {
		b, err := mem.Read(addr + 1 + uint16(i))
		if err != nil {
			return Line{}, err
		}
		l.Operand = append(l.Operand, b)
	}
	return l, nil
}

// Range disassembles length bytes starting at start, one Line per
// instruction (an unmapped opcode consumes a single byte and continues).
func Range(mem Memory, start uint16, length int) ([]Line, error) {
	var lines []Line
	addr := start
	end := uint32(start) + uint32(length)
	for uint32(addr) < end {
		line, err := Decode(mem, addr)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
		addr += uint16(line.Size())
	}
	return lines, nil
}

// Listing renders Range's output as a monitor-style text block, one
// instruction per line.
func Listing(mem Memory, start uint16, length int) (string, error) {
	lines, err := Range(mem, start, length)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, l := range lines {
		out.WriteString(l.String())
		out.WriteByte('\n')
	}
	return out.String(), nil
}
