// Package opcode holds the immutable 256-entry dispatch table the CPU
// decodes against: for each opcode byte, either a Descriptor naming its
// mnemonic, addressing mode, instruction length, and cycle cost, or
// "unmapped" for anything not legal on the NMOS 6502. The table is built
// once at package init and never mutated afterward, so it can be shared
// by every CPU instance without locking.
package opcode

// Mnemonic identifies an instruction's operation, independent of
// addressing mode. A tag enum dispatches with a switch in the CPU rather
// than a string compare, for speed and exhaustiveness checking.
type Mnemonic uint8

const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var mnemonicNames = [...]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS", BEQ: "BEQ",
	BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL", BRK: "BRK", BVC: "BVC",
	BVS: "BVS", CLC: "CLC", CLD: "CLD", CLI: "CLI", CLV: "CLV", CMP: "CMP",
	CPX: "CPX", CPY: "CPY", DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR",
	INC: "INC", INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA", PHA: "PHA",
	PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL", ROR: "ROR", RTI: "RTI",
	RTS: "RTS", SBC: "SBC", SEC: "SEC", SED: "SED", SEI: "SEI", STA: "STA",
	STX: "STX", STY: "STY", TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA",
	TXS: "TXS", TYA: "TYA",
}

func (m Mnemonic) String() string { return mnemonicNames[m] }

// AddressingMode names the rule that turns operand bytes into an
// effective address or implicit operand (§4.3).
type AddressingMode uint8

const (
	Implicit AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
)

var modeNames = [...]string{
	Implicit: "Implicit", Accumulator: "Accumulator", Immediate: "Immediate",
	ZeroPage: "ZeroPage", ZeroPageX: "ZeroPageX", ZeroPageY: "ZeroPageY",
	Relative: "Relative", Absolute: "Absolute", AbsoluteX: "AbsoluteX",
	AbsoluteY: "AbsoluteY", Indirect: "Indirect",
	IndexedIndirect: "IndexedIndirect", IndirectIndexed: "IndirectIndexed",
}

func (m AddressingMode) String() string { return modeNames[m] }

// OperandBytes returns how many bytes follow the opcode byte for mode.
func (m AddressingMode) OperandBytes() int {
	switch m {
	case Implicit, Accumulator:
		return 0
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndexedIndirect, IndirectIndexed:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 0
	}
}

// Descriptor is the immutable per-opcode record the table holds. For
// AbsoluteX/AbsoluteY/IndirectIndexed load/logic/arithmetic instructions,
// PageCross is 1: a crossed page adds one cycle. Branch descriptors carry
// PageCross 0 — their page-cross bonus is data-dependent (taken or not,
// crossed or not) and is computed by the CPU at execution time instead
// (§4.4), not looked up here.
type Descriptor struct {
	Mnemonic  Mnemonic
	Mode      AddressingMode
	Length    uint8 // instruction length in bytes, including the opcode
	Cycles    uint8 // base cycle count
	PageCross uint8 // additional cycle on a page-crossing effective address
	Unmapped  bool
}

// Table is the 256-entry opcode dispatch table, built once at init and
// read-only from then on.
var Table [256]Descriptor

func init() {
	for i := range Table {
		Table[i] = Descriptor{Unmapped: true}
	}

	def := func(op uint8, m Mnemonic, mode AddressingMode, cycles uint8, pageCross uint8) {
		length := uint8(1 + mode.OperandBytes())
		Table[op] = Descriptor{Mnemonic: m, Mode: mode, Length: length, Cycles: cycles, PageCross: pageCross}
	}

	// Load/Store
	def(0xA9, LDA, Immediate, 2, 0)
	def(0xA5, LDA, ZeroPage, 3, 0)
	def(0xB5, LDA, ZeroPageX, 4, 0)
	def(0xAD, LDA, Absolute, 4, 0)
	def(0xBD, LDA, AbsoluteX, 4, 1)
	def(0xB9, LDA, AbsoluteY, 4, 1)
	def(0xA1, LDA, IndexedIndirect, 6, 0)
	def(0xB1, LDA, IndirectIndexed, 5, 1)

	def(0xA2, LDX, Immediate, 2, 0)
	def(0xA6, LDX, ZeroPage, 3, 0)
	def(0xB6, LDX, ZeroPageY, 4, 0)
	def(0xAE, LDX, Absolute, 4, 0)
	def(0xBE, LDX, AbsoluteY, 4, 1)

	def(0xA0, LDY, Immediate, 2, 0)
	def(0xA4, LDY, ZeroPage, 3, 0)
	def(0xB4, LDY, ZeroPageX, 4, 0)
	def(0xAC, LDY, Absolute, 4, 0)
	def(0xBC, LDY, AbsoluteX, 4, 1)

	def(0x85, STA, ZeroPage, 3, 0)
	def(0x95, STA, ZeroPageX, 4, 0)
	def(0x8D, STA, Absolute, 4, 0)
	def(0x9D, STA, AbsoluteX, 5, 0)
	def(0x99, STA, AbsoluteY, 5, 0)
	def(0x81, STA, IndexedIndirect, 6, 0)
	def(0x91, STA, IndirectIndexed, 6, 0)

	def(0x86, STX, ZeroPage, 3, 0)
	def(0x96, STX, ZeroPageY, 4, 0)
	def(0x8E, STX, Absolute, 4, 0)

	def(0x84, STY, ZeroPage, 3, 0)
	def(0x94, STY, ZeroPageX, 4, 0)
	def(0x8C, STY, Absolute, 4, 0)

	// Register transfers
	def(0xAA, TAX, Implicit, 2, 0)
	def(0xA8, TAY, Implicit, 2, 0)
	def(0x8A, TXA, Implicit, 2, 0)
	def(0x98, TYA, Implicit, 2, 0)
	def(0xBA, TSX, Implicit, 2, 0)
	def(0x9A, TXS, Implicit, 2, 0)

	// Stack
	def(0x48, PHA, Implicit, 3, 0)
	def(0x08, PHP, Implicit, 3, 0)
	def(0x68, PLA, Implicit, 4, 0)
	def(0x28, PLP, Implicit, 4, 0)

	// Logic
	def(0x29, AND, Immediate, 2, 0)
	def(0x25, AND, ZeroPage, 3, 0)
	def(0x35, AND, ZeroPageX, 4, 0)
	def(0x2D, AND, Absolute, 4, 0)
	def(0x3D, AND, AbsoluteX, 4, 1)
	def(0x39, AND, AbsoluteY, 4, 1)
	def(0x21, AND, IndexedIndirect, 6, 0)
	def(0x31, AND, IndirectIndexed, 5, 1)

	def(0x49, EOR, Immediate, 2, 0)
	def(0x45, EOR, ZeroPage, 3, 0)
	def(0x55, EOR, ZeroPageX, 4, 0)
	def(0x4D, EOR, Absolute, 4, 0)
	def(0x5D, EOR, AbsoluteX, 4, 1)
	def(0x59, EOR, AbsoluteY, 4, 1)
	def(0x41, EOR, IndexedIndirect, 6, 0)
	def(0x51, EOR, IndirectIndexed, 5, 1)

	def(0x09, ORA, Immediate, 2, 0)
	def(0x05, ORA, ZeroPage, 3, 0)
	def(0x15, ORA, ZeroPageX, 4, 0)
	def(0x0D, ORA, Absolute, 4, 0)
	def(0x1D, ORA, AbsoluteX, 4, 1)
	def(0x19, ORA, AbsoluteY, 4, 1)
	def(0x01, ORA, IndexedIndirect, 6, 0)
	def(0x11, ORA, IndirectIndexed, 5, 1)

	def(0x24, BIT, ZeroPage, 3, 0)
	def(0x2C, BIT, Absolute, 4, 0)

	// Arithmetic
	def(0x69, ADC, Immediate, 2, 0)
	def(0x65, ADC, ZeroPage, 3, 0)
	def(0x75, ADC, ZeroPageX, 4, 0)
	def(0x6D, ADC, Absolute, 4, 0)
	def(0x7D, ADC, AbsoluteX, 4, 1)
	def(0x79, ADC, AbsoluteY, 4, 1)
	def(0x61, ADC, IndexedIndirect, 6, 0)
	def(0x71, ADC, IndirectIndexed, 5, 1)

	def(0xE9, SBC, Immediate, 2, 0)
	def(0xE5, SBC, ZeroPage, 3, 0)
	def(0xF5, SBC, ZeroPageX, 4, 0)
	def(0xED, SBC, Absolute, 4, 0)
	def(0xFD, SBC, AbsoluteX, 4, 1)
	def(0xF9, SBC, AbsoluteY, 4, 1)
	def(0xE1, SBC, IndexedIndirect, 6, 0)
	def(0xF1, SBC, IndirectIndexed, 5, 1)

	def(0xC9, CMP, Immediate, 2, 0)
	def(0xC5, CMP, ZeroPage, 3, 0)
	def(0xD5, CMP, ZeroPageX, 4, 0)
	def(0xCD, CMP, Absolute, 4, 0)
	def(0xDD, CMP, AbsoluteX, 4, 1)
	def(0xD9, CMP, AbsoluteY, 4, 1)
	def(0xC1, CMP, IndexedIndirect, 6, 0)
	def(0xD1, CMP, IndirectIndexed, 5, 1)

	def(0xE0, CPX, Immediate, 2, 0)
	def(0xE4, CPX, ZeroPage, 3, 0)
	def(0xEC, CPX, Absolute, 4, 0)

	def(0xC0, CPY, Immediate, 2, 0)
	def(0xC4, CPY, ZeroPage, 3, 0)
	def(0xCC, CPY, Absolute, 4, 0)

	// Increments & decrements
	def(0xE6, INC, ZeroPage, 5, 0)
	def(0xF6, INC, ZeroPageX, 6, 0)
	def(0xEE, INC, Absolute, 6, 0)
	def(0xFE, INC, AbsoluteX, 7, 0)

	def(0xC6, DEC, ZeroPage, 5, 0)
	def(0xD6, DEC, ZeroPageX, 6, 0)
	def(0xCE, DEC, Absolute, 6, 0)
	def(0xDE, DEC, AbsoluteX, 7, 0)

	def(0xE8, INX, Implicit, 2, 0)
	def(0xC8, INY, Implicit, 2, 0)
	def(0xCA, DEX, Implicit, 2, 0)
	def(0x88, DEY, Implicit, 2, 0)

	// Shifts & rotates
	def(0x0A, ASL, Accumulator, 2, 0)
	def(0x06, ASL, ZeroPage, 5, 0)
	def(0x16, ASL, ZeroPageX, 6, 0)
	def(0x0E, ASL, Absolute, 6, 0)
	def(0x1E, ASL, AbsoluteX, 7, 0)

	def(0x4A, LSR, Accumulator, 2, 0)
	def(0x46, LSR, ZeroPage, 5, 0)
	def(0x56, LSR, ZeroPageX, 6, 0)
	def(0x4E, LSR, Absolute, 6, 0)
	def(0x5E, LSR, AbsoluteX, 7, 0)

	def(0x2A, ROL, Accumulator, 2, 0)
	def(0x26, ROL, ZeroPage, 5, 0)
	def(0x36, ROL, ZeroPageX, 6, 0)
	def(0x2E, ROL, Absolute, 6, 0)
	def(0x3E, ROL, AbsoluteX, 7, 0)

	def(0x6A, ROR, Accumulator, 2, 0)
	def(0x66, ROR, ZeroPage, 5, 0)
	def(0x76, ROR, ZeroPageX, 6, 0)
	def(0x6E, ROR, Absolute, 6, 0)
	def(0x7E, ROR, AbsoluteX, 7, 0)

	// Jumps & calls
	def(0x4C, JMP, Absolute, 3, 0)
	def(0x6C, JMP, Indirect, 5, 0)
	def(0x20, JSR, Absolute, 6, 0)
	def(0x60, RTS, Implicit, 6, 0)

	// Branches
	def(0x10, BPL, Relative, 2, 0)
	def(0x30, BMI, Relative, 2, 0)
	def(0x50, BVC, Relative, 2, 0)
	def(0x70, BVS, Relative, 2, 0)
	def(0x90, BCC, Relative, 2, 0)
	def(0xB0, BCS, Relative, 2, 0)
	def(0xD0, BNE, Relative, 2, 0)
	def(0xF0, BEQ, Relative, 2, 0)

	// Flag changes
	def(0x18, CLC, Implicit, 2, 0)
	def(0x38, SEC, Implicit, 2, 0)
	def(0x58, CLI, Implicit, 2, 0)
	def(0x78, SEI, Implicit, 2, 0)
	def(0xB8, CLV, Implicit, 2, 0)
	def(0xD8, CLD, Implicit, 2, 0)
	def(0xF8, SED, Implicit, 2, 0)

	// System
	Table[0x00] = Descriptor{Mnemonic: BRK, Mode: Implicit, Length: 2, Cycles: 7}
	def(0x40, RTI, Implicit, 6, 0)
	def(0xEA, NOP, Implicit, 2, 0)
}
