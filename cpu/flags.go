package cpu

// Status register bits (§3). Modeled as a single 8-bit field with named
// bit positions rather than eight independent booleans, so PHP/PLP/BRK/
// RTI remain one-byte operations instead of needing to be packed and
// unpacked by hand at every stack boundary.
const (
	FlagC uint8 = 1 << iota // Carry
	FlagZ                   // Zero
	FlagI                   // Interrupt Disable
	FlagD                   // Decimal Mode (parsed, never consulted by ADC/SBC — §1 Non-goals)
	FlagB                   // Break (stack-image only, no control effect)
	FlagU                   // Unused (always 1 when the status byte is inspected)
	FlagV                   // Overflow
	FlagN                   // Negative
)

func (c *CPU) getFlag(mask uint8) bool { return c.P&mask != 0 }

func (c *CPU) setFlag(mask uint8, set bool) {
	if set {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

// updateZN sets Zero from value == 0 and Negative from bit 7 of value,
// the pair every load/transfer/logic/arithmetic/shift instruction
// updates.
func (c *CPU) updateZN(value uint8) {
	c.setFlag(FlagZ, value == 0)
	c.setFlag(FlagN, value&0x80 != 0)
}
