// Package cpu implements the fetch-decode-execute engine for the NMOS
// 6502: the register file, the status flags, every addressing mode's
// effective-address computation, every legal mnemonic's semantics, and
// the stack/interrupt protocols that drive the program counter (§3–§5).
package cpu

import (
	"github.com/kschmidt/mos6502/opcode"
)

// Bus is the CPU's sole memory collaborator. Every memory access —
// instruction fetch, operand read, stack push/pop, vector fetch — goes
// through it (§6).
type Bus interface {
	Read(addr uint16) (uint8, error)
	Write(addr uint16, value uint8) error
}

// Reset/NMI/IRQ vector addresses (§6).
const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
)

// CPU owns a Bus for its lifetime and interprets a stream of opcodes
// against it.
type CPU struct {
	A, X, Y uint8
	PC      uint16
	SP      uint8
	P       uint8

	bus Bus

	nmiPending bool
	irqPending bool
}

// NewCPU constructs a CPU around an already-constructed bus. The CPU
// takes ownership of bus for the session; Reset must be called before
// the first Step (§3 Lifecycle).
func NewCPU(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset re-initializes registers and loads PC from the reset vector
// (§3).
func (c *CPU) Reset() error {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagI | FlagU
	c.nmiPending = false
	c.irqPending = false

	pc, err := c.readVector(vectorReset)
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

// NMI raises a non-maskable interrupt, serviced at the next instruction
// boundary. Edge-setting: cleared once serviced (§5, §6).
func (c *CPU) NMI() { c.nmiPending = true }

// IRQ raises a maskable interrupt, serviced at the next instruction
// boundary if Interrupt-Disable is clear. Edge-setting: cleared once
// serviced (§5, §6).
func (c *CPU) IRQ() { c.irqPending = true }

func (c *CPU) readVector(addr uint16) (uint16, error) {
	lo, err := c.bus.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := c.bus.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *CPU) push(value uint8) error {
	err := c.bus.Write(0x0100|uint16(c.SP), value)
	c.SP--
	return err
}

func (c *CPU) push16(value uint16) error {
	if err := c.push(uint8(value >> 8)); err != nil {
		return err
	}
	return c.push(uint8(value))
}

func (c *CPU) pull() (uint8, error) {
	c.SP++
	return c.bus.Read(0x0100 | uint16(c.SP))
}

func (c *CPU) pull16() (uint16, error) {
	lo, err := c.pull()
	if err != nil {
		return 0, err
	}
	hi, err := c.pull()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// hardwareInterrupt performs the 7-cycle BRK-shaped entry sequence used
// by NMI/IRQ: push PC, push status with Break clear, set
// Interrupt-Disable, jump through vector (§4.4, §5).
func (c *CPU) hardwareInterrupt(vector uint16) error {
	if err := c.push16(c.PC); err != nil {
		return err
	}
	if err := c.push((c.P &^ FlagB) | FlagU); err != nil {
		return err
	}
	c.setFlag(FlagI, true)
	pc, err := c.readVector(vector)
	if err != nil {
		return err
	}
	c.PC = pc
	return nil
}

// serviceInterrupts checks pending NMI/IRQ signals in priority order and
// performs the hardware interrupt sequence if one fires, consuming this
// Step call instead of a fetch (§5).
func (c *CPU) serviceInterrupts() (cycles int, serviced bool, err error) {
	if c.nmiPending {
		c.nmiPending = false
		if err := c.hardwareInterrupt(vectorNMI); err != nil {
			return 0, true, err
		}
		return 7, true, nil
	}
	if c.irqPending && !c.getFlag(FlagI) {
		c.irqPending = false
		if err := c.hardwareInterrupt(vectorIRQ); err != nil {
			return 0, true, err
		}
		return 7, true, nil
	}
	return 0, false, nil
}

// Step executes one instruction (or, if a signal is pending, one
// hardware interrupt sequence) and returns the number of cycles elapsed
// (§4.5).
func (c *CPU) Step() (int, error) {
	if cycles, serviced, err := c.serviceInterrupts(); serviced {
		return cycles, err
	}

	opcodeAddr := c.PC
	opByte, err := c.fetch8()
	if err != nil {
		return 0, err
	}

	desc := opcode.Table[opByte]
	if desc.Unmapped {
		c.PC = opcodeAddr
		return 0, &UnknownOpcodeError{Opcode: opByte, Addr: opcodeAddr}
	}

	return c.execute(desc)
}

// RunUntil repeats Step until stop returns true or Step errors. Reset
// must have been called first.
func (c *CPU) RunUntil(stop func(*CPU) bool) (uint64, error) {
	var total uint64
	for !stop(c) {
		cycles, err := c.Step()
		total += uint64(cycles)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
