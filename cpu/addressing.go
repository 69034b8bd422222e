package cpu

import (
	"fmt"

	"github.com/kschmidt/mos6502/opcode"
)

// fetch8 reads the byte at PC and advances PC by one.
func (c *CPU) fetch8() (uint8, error) {
	v, err := c.bus.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

// fetch16 reads a little-endian word starting at PC and advances PC by
// two.
func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// effectiveAddress computes the address an instruction operates on for
// every addressing mode except Implicit and Accumulator, which have no
// memory operand and must be handled by the caller (§4.3). It consumes
// exactly the operand bytes that mode's Descriptor.Length accounts for,
// advancing PC as it goes.
func (c *CPU) effectiveAddress(mode opcode.AddressingMode) (addr uint16, pageCrossed bool, err error) {
	switch mode {
	case opcode.Immediate:
		addr = c.PC
		c.PC++
		return addr, false, nil

	case opcode.ZeroPage:
		b, err := c.fetch8()
		return uint16(b), false, err

	case opcode.ZeroPageX:
		b, err := c.fetch8()
		if err != nil {
			return 0, false, err
		}
		return uint16(b + c.X), false, nil

	case opcode.ZeroPageY:
		b, err := c.fetch8()
		if err != nil {
			return 0, false, err
		}
		return uint16(b + c.Y), false, nil

	case opcode.Relative:
		b, err := c.fetch8()
		if err != nil {
			return 0, false, err
		}
		base := c.PC
		target := uint16(int32(base) + int32(int8(b)))
		return target, (base & 0xFF00) != (target & 0xFF00), nil

	case opcode.Absolute:
		a, err := c.fetch16()
		return a, false, err

	case opcode.AbsoluteX:
		base, err := c.fetch16()
		if err != nil {
			return 0, false, err
		}
		final := base + uint16(c.X)
		return final, (base & 0xFF00) != (final & 0xFF00), nil

	case opcode.AbsoluteY:
		base, err := c.fetch16()
		if err != nil {
			return 0, false, err
		}
		final := base + uint16(c.Y)
		return final, (base & 0xFF00) != (final & 0xFF00), nil

	case opcode.Indirect:
		ptr, err := c.fetch16()
		if err != nil {
			return 0, false, err
		}
		lo, err := c.bus.Read(ptr)
		if err != nil {
			return 0, false, err
		}
		// Page-wrap bug: the high-byte fetch does not carry into the next page.
		hi, err := c.bus.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
		if err != nil {
			return 0, false, err
		}
		return uint16(hi)<<8 | uint16(lo), false, nil

	case opcode.IndexedIndirect:
		b, err := c.fetch8()
		if err != nil {
			return 0, false, err
		}
		zp := b + c.X
		lo, err := c.bus.Read(uint16(zp))
		if err != nil {
			return 0, false, err
		}
		hi, err := c.bus.Read(uint16(zp + 1))
		if err != nil {
			return 0, false, err
		}
		return uint16(hi)<<8 | uint16(lo), false, nil

	case opcode.IndirectIndexed:
		zp, err := c.fetch8()
		if err != nil {
			return 0, false, err
		}
		lo, err := c.bus.Read(uint16(zp))
		if err != nil {
			return 0, false, err
		}
		hi, err := c.bus.Read(uint16(zp + 1))
		if err != nil {
			return 0, false, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		final := base + uint16(c.Y)
		return final, (base & 0xFF00) != (final & 0xFF00), nil

	default:
		return 0, false, fmt.Errorf("cpu: addressing mode %s has no effective address", mode)
	}
}
