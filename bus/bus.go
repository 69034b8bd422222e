// Package bus implements the flat 16-bit address space the CPU reads and
// writes through. It owns CPU RAM and mirrors it, and forwards the PPU
// register window to whatever collaborator is connected — the PPU itself
// is out of scope for this module and defaults to a stub.
package bus

import "log"

const (
	ramSize   = 2048 // 2 KiB CPU RAM
	ramMask   = ramSize - 1
	ramMinAddr = 0x0000
	ramMaxAddr = 0x1FFF

	ppuMinAddr = 0x2000
	ppuMaxAddr = 0x3FFF
	ppuMask    = 0x0007

	apuMinAddr = 0x4000
	apuMaxAddr = 0x4017
)

// Peripheral is anything the bus forwards a memory-mapped register window
// to. The PPU and APU are external collaborators in this module's scope;
// a stub implementation is used when none is connected.
type Peripheral interface {
	Read(reg uint16) uint8
	Write(reg uint16, value uint8)
}

// stubPeripheral answers every access with zero and logs it once per
// address, matching the "non-fatal by default" rule in §7.
type stubPeripheral struct {
	name string
	seen map[uint16]bool
}

func newStub(name string) *stubPeripheral {
	return &stubPeripheral{name: name, seen: map[uint16]bool{}}
}

func (s *stubPeripheral) Read(reg uint16) uint8 {
	s.logOnce(reg)
	return 0
}

func (s *stubPeripheral) Write(reg uint16, value uint8) {
	s.logOnce(reg)
}

func (s *stubPeripheral) logOnce(reg uint16) {
	if s.seen[reg] {
		return
	}
	s.seen[reg] = true
	log.Printf("bus: unbacked %s register $%04X", s.name, reg)
}

// Bus is the CPU's memory collaborator: 2 KiB of mirrored RAM, a PPU
// register window mirrored every 8 bytes, and an APU/cartridge space that
// is out of scope and returns 0.
type Bus struct {
	RAM [ramSize]byte

	PPU Peripheral
	APU Peripheral

	unmapped map[uint16]bool
	Strict   bool // strict mode turns an out-of-range access into a hard error
}

// ErrBusOutOfRange is returned by Read/Write in strict mode when the
// address falls outside every modeled window.
type ErrBusOutOfRange struct {
	Addr  uint16
	Write bool
}

func (e *ErrBusOutOfRange) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return "bus: out-of-range " + op
}

// New constructs a bus with zeroed RAM and stub PPU/APU peripherals.
func New() *Bus {
	return &Bus{
		PPU:      newStub("PPU"),
		APU:      newStub("APU"),
		unmapped: map[uint16]bool{},
	}
}

// ConnectPPU attaches a real PPU collaborator in place of the stub.
func (b *Bus) ConnectPPU(p Peripheral) { b.PPU = p }

// ConnectAPU attaches a real APU collaborator in place of the stub.
func (b *Bus) ConnectAPU(p Peripheral) { b.APU = p }

// Read returns the byte at addr, routing through RAM mirrors and the PPU
// register window. Addresses backed by nothing return 0 and are logged
// once, unless Strict is set.
func (b *Bus) Read(addr uint16) (uint8, error) {
	switch {
	case addr >= ramMinAddr && addr <= ramMaxAddr:
		return b.RAM[addr&ramMask], nil
	case addr >= ppuMinAddr && addr <= ppuMaxAddr:
		return b.PPU.Read(addr & ppuMask), nil
	case addr >= apuMinAddr && addr <= apuMaxAddr:
		return b.APU.Read(addr - apuMinAddr), nil
	default:
		if b.Strict {
			return 0, &ErrBusOutOfRange{Addr: addr}
		}
		b.logUnmapped(addr)
		return 0, nil
	}
}

// Write stores value at addr, symmetric with Read.
func (b *Bus) Write(addr uint16, value uint8) error {
	switch {
	case addr >= ramMinAddr && addr <= ramMaxAddr:
		b.RAM[addr&ramMask] = value
		return nil
	case addr >= ppuMinAddr && addr <= ppuMaxAddr:
		b.PPU.Write(addr&ppuMask, value)
		return nil
	case addr >= apuMinAddr && addr <= apuMaxAddr:
		b.APU.Write(addr-apuMinAddr, value)
		return nil
	default:
		if b.Strict {
			return &ErrBusOutOfRange{Addr: addr, Write: true}
		}
		b.logUnmapped(addr)
		return nil
	}
}

func (b *Bus) logUnmapped(addr uint16) {
	if b.unmapped[addr] {
		return
	}
	b.unmapped[addr] = true
	log.Printf("bus: out-of-range access at $%04X", addr)
}

// Read16 performs a little-endian 16-bit read via two consecutive byte
// reads, as every compound fetch (vectors, absolute operands, stack
// frames) must.
func (b *Bus) Read16(addr uint16) (uint16, error) {
	lo, err := b.Read(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.Read(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Write16 performs a little-endian 16-bit write via two consecutive byte
// writes.
func (b *Bus) Write16(addr uint16, value uint16) error {
	if err := b.Write(addr, uint8(value)); err != nil {
		return err
	}
	return b.Write(addr+1, uint8(value>>8))
}

// LoadROM copies data into RAM/whatever window backs [origin, origin+len)
// byte by byte through Write, so mirroring and peripheral side effects
// behave exactly as they would for a program executing the same stores.
func (b *Bus) LoadROM(origin uint16, data []byte) error {
	for i, v := range data {
		if err := b.Write(origin+uint16(i), v); err != nil {
			return err
		}
	}
	return nil
}
