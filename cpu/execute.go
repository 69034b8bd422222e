package cpu

import "github.com/kschmidt/mos6502/opcode"

// readOperand resolves mode to a value, honoring Accumulator mode as a
// register read rather than a memory access.
func (c *CPU) readOperand(mode opcode.AddressingMode) (value uint8, pageCrossed bool, err error) {
	if mode == opcode.Accumulator {
		return c.A, false, nil
	}
	addr, crossed, err := c.effectiveAddress(mode)
	if err != nil {
		return 0, false, err
	}
	v, err := c.bus.Read(addr)
	return v, crossed, err
}

// execute dispatches on the decoded mnemonic and returns elapsed cycles
// (§4.4, §4.5). desc.Mode has already told the caller how many operand
// bytes exist; every branch below consumes exactly those bytes through
// effectiveAddress/readOperand before returning.
func (c *CPU) execute(desc opcode.Descriptor) (int, error) {
	cycles := int(desc.Cycles)

	switch desc.Mnemonic {

	// Loads
	case opcode.LDA, opcode.LDX, opcode.LDY:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		switch desc.Mnemonic {
		case opcode.LDA:
			c.A = v
		case opcode.LDX:
			c.X = v
		case opcode.LDY:
			c.Y = v
		}
		c.updateZN(v)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil

	// Stores
	case opcode.STA, opcode.STX, opcode.STY:
		addr, _, err := c.effectiveAddress(desc.Mode)
		if err != nil {
			return 0, err
		}
		var v uint8
		switch desc.Mnemonic {
		case opcode.STA:
			v = c.A
		case opcode.STX:
			v = c.X
		case opcode.STY:
			v = c.Y
		}
		return cycles, c.bus.Write(addr, v)

	// Register transfers
	case opcode.TAX:
		c.X = c.A
		c.updateZN(c.X)
		return cycles, nil
	case opcode.TAY:
		c.Y = c.A
		c.updateZN(c.Y)
		return cycles, nil
	case opcode.TXA:
		c.A = c.X
		c.updateZN(c.A)
		return cycles, nil
	case opcode.TYA:
		c.A = c.Y
		c.updateZN(c.A)
		return cycles, nil
	case opcode.TSX:
		c.X = c.SP
		c.updateZN(c.X)
		return cycles, nil
	case opcode.TXS:
		c.SP = c.X
		return cycles, nil

	// Stack
	case opcode.PHA:
		return cycles, c.push(c.A)
	case opcode.PHP:
		return cycles, c.push(c.P | FlagB | FlagU)
	case opcode.PLA:
		v, err := c.pull()
		if err != nil {
			return 0, err
		}
		c.A = v
		c.updateZN(c.A)
		return cycles, nil
	case opcode.PLP:
		v, err := c.pull()
		if err != nil {
			return 0, err
		}
		c.P = (v &^ FlagB) | FlagU
		return cycles, nil

	// Logic
	case opcode.AND:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.A &= v
		c.updateZN(c.A)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil
	case opcode.ORA:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.A |= v
		c.updateZN(c.A)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil
	case opcode.EOR:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.A ^= v
		c.updateZN(c.A)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil

	case opcode.BIT:
		v, _, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.setFlag(FlagZ, c.A&v == 0)
		c.setFlag(FlagV, v&0x40 != 0)
		c.setFlag(FlagN, v&0x80 != 0)
		return cycles, nil

	// Arithmetic
	case opcode.ADC:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.adc(v)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil
	case opcode.SBC:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.adc(v ^ 0xFF)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil

	case opcode.CMP:
		v, crossed, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.compare(c.A, v)
		if desc.PageCross != 0 && crossed {
			cycles++
		}
		return cycles, nil
	case opcode.CPX:
		v, _, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.compare(c.X, v)
		return cycles, nil
	case opcode.CPY:
		v, _, err := c.readOperand(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.compare(c.Y, v)
		return cycles, nil

	// Increments & decrements (memory)
	case opcode.INC, opcode.DEC:
		addr, _, err := c.effectiveAddress(desc.Mode)
		if err != nil {
			return 0, err
		}
		v, err := c.bus.Read(addr)
		if err != nil {
			return 0, err
		}
		if desc.Mnemonic == opcode.INC {
			v++
		} else {
			v--
		}
		c.updateZN(v)
		return cycles, c.bus.Write(addr, v)

	// Increments & decrements (register)
	case opcode.INX:
		c.X++
		c.updateZN(c.X)
		return cycles, nil
	case opcode.INY:
		c.Y++
		c.updateZN(c.Y)
		return cycles, nil
	case opcode.DEX:
		c.X--
		c.updateZN(c.X)
		return cycles, nil
	case opcode.DEY:
		c.Y--
		c.updateZN(c.Y)
		return cycles, nil

	// Shifts & rotates
	case opcode.ASL, opcode.LSR, opcode.ROL, opcode.ROR:
		return cycles, c.shift(desc)

	// Jumps & calls
	case opcode.JMP:
		addr, _, err := c.effectiveAddress(desc.Mode)
		if err != nil {
			return 0, err
		}
		c.PC = addr
		return cycles, nil

	case opcode.JSR:
		addr, _, err := c.effectiveAddress(desc.Mode)
		if err != nil {
			return 0, err
		}
		if err := c.push16(c.PC - 1); err != nil {
			return 0, err
		}
		c.PC = addr
		return cycles, nil

	case opcode.RTS:
		addr, err := c.pull16()
		if err != nil {
			return 0, err
		}
		c.PC = addr + 1
		return cycles, nil

	// Branches
	case opcode.BCC, opcode.BCS, opcode.BEQ, opcode.BMI,
		opcode.BNE, opcode.BPL, opcode.BVC, opcode.BVS:
		return c.branch(desc)

	// Flag changes
	case opcode.CLC:
		c.setFlag(FlagC, false)
		return cycles, nil
	case opcode.SEC:
		c.setFlag(FlagC, true)
		return cycles, nil
	case opcode.CLI:
		c.setFlag(FlagI, false)
		return cycles, nil
	case opcode.SEI:
		c.setFlag(FlagI, true)
		return cycles, nil
	case opcode.CLV:
		c.setFlag(FlagV, false)
		return cycles, nil
	case opcode.CLD:
		c.setFlag(FlagD, false)
		return cycles, nil
	case opcode.SED:
		c.setFlag(FlagD, true)
		return cycles, nil

	// System
	case opcode.BRK:
		c.PC++ // BRK is formally 2 bytes; the padding byte was never fetched.
		if err := c.push16(c.PC); err != nil {
			return 0, err
		}
		if err := c.push(c.P | FlagB | FlagU); err != nil {
			return 0, err
		}
		c.setFlag(FlagI, true)
		pc, err := c.readVector(vectorIRQ)
		if err != nil {
			return 0, err
		}
		c.PC = pc
		return cycles, nil

	case opcode.RTI:
		status, err := c.pull()
		if err != nil {
			return 0, err
		}
		c.P = (status &^ FlagB) | FlagU
		pc, err := c.pull16()
		if err != nil {
			return 0, err
		}
		c.PC = pc
		return cycles, nil

	case opcode.NOP:
		return cycles, nil
	}

	panic("cpu: opcode table produced a mnemonic with no execute case: " + desc.Mnemonic.String())
}

// adc implements ADC's carry/overflow semantics; SBC reuses it against
// the operand's ones' complement (§4.4).
func (c *CPU) adc(value uint8) {
	sum := uint16(c.A) + uint16(value) + uint16(c.P&FlagC)
	result := uint8(sum)

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^value)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.updateZN(c.A)
}

// compare implements CMP/CPX/CPY: Carry set on reg >= value, Zero/
// Negative from the wrapping difference (§4.4).
func (c *CPU) compare(reg, value uint8) {
	result := reg - value
	c.setFlag(FlagC, reg >= value)
	c.updateZN(result)
}

// shift implements ASL/LSR/ROL/ROR on either the accumulator or a memory
// operand (§4.4).
func (c *CPU) shift(desc opcode.Descriptor) error {
	var addr uint16
	var value uint8
	var err error

	if desc.Mode == opcode.Accumulator {
		value = c.A
	} else {
		addr, _, err = c.effectiveAddress(desc.Mode)
		if err != nil {
			return err
		}
		value, err = c.bus.Read(addr)
		if err != nil {
			return err
		}
	}

	var result uint8
	switch desc.Mnemonic {
	case opcode.ASL:
		c.setFlag(FlagC, value&0x80 != 0)
		result = value << 1
	case opcode.LSR:
		c.setFlag(FlagC, value&0x01 != 0)
		result = value >> 1
	case opcode.ROL:
		oldCarry := c.getFlag(FlagC)
		c.setFlag(FlagC, value&0x80 != 0)
		result = value << 1
		if oldCarry {
			result |= 0x01
		}
	case opcode.ROR:
		oldCarry := c.getFlag(FlagC)
		c.setFlag(FlagC, value&0x01 != 0)
		result = value >> 1
		if oldCarry {
			result |= 0x80
		}
	}
	c.updateZN(result)

	if desc.Mode == opcode.Accumulator {
		c.A = result
		return nil
	}
	return c.bus.Write(addr, result)
}

// branch performs BCC/BCS/BEQ/BMI/BNE/BPL/BVC/BVS: +1 cycle if taken, a
// further +1 if the branch crosses a page (§4.4).
func (c *CPU) branch(desc opcode.Descriptor) (int, error) {
	target, crossed, err := c.effectiveAddress(opcode.Relative)
	if err != nil {
		return 0, err
	}

	var taken bool
	switch desc.Mnemonic {
	case opcode.BCC:
		taken = !c.getFlag(FlagC)
	case opcode.BCS:
		taken = c.getFlag(FlagC)
	case opcode.BEQ:
		taken = c.getFlag(FlagZ)
	case opcode.BNE:
		taken = !c.getFlag(FlagZ)
	case opcode.BMI:
		taken = c.getFlag(FlagN)
	case opcode.BPL:
		taken = !c.getFlag(FlagN)
	case opcode.BVC:
		taken = !c.getFlag(FlagV)
	case opcode.BVS:
		taken = c.getFlag(FlagV)
	}

	cycles := int(desc.Cycles)
	if !taken {
		return cycles, nil
	}
	c.PC = target
	cycles++
	if crossed {
		cycles++
	}
	return cycles, nil
}
