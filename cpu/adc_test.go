package cpu_test

import (
	"testing"

	"github.com/kschmidt/mos6502/bus"
	"github.com/kschmidt/mos6502/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADC(t *testing.T) {
	tests := []struct {
		name    string
		a, m, c uint8
		wantA   uint8
		wantC   bool
		wantV   bool
		wantZ   bool
		wantN   bool
	}{
		{"simple", 0x20, 0x10, 0, 0x30, false, false, false, false},
		{"carry in", 0x20, 0x10, 1, 0x31, false, false, false, false},
		{"overflow positive to negative", 0x50, 0x50, 0, 0xA0, false, true, false, true},
		{"wraps to zero with carry", 0xFF, 0x01, 0, 0x00, true, false, true, false},
		{"overflow at boundary", 0x7F, 0x01, 0, 0x80, false, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := bus.NewFlat()
			c := cpu.NewCPU(mem)
			require.NoError(t, mem.Write16(0xFFFC, 0x8000))
			require.NoError(t, c.Reset())
			c.A = tt.a
			if tt.c != 0 {
				c.P |= cpu.FlagC
			}
			require.NoError(t, mem.Write(0x8000, 0x69)) // ADC #imm
			require.NoError(t, mem.Write(0x8001, tt.m))

			cycles, err := c.Step()
			require.NoError(t, err)
			assert.Equal(t, 2, cycles)
			st := c.State()
			assert.Equal(t, tt.wantA, st.A)
			assert.Equal(t, tt.wantC, st.P&cpu.FlagC != 0, "carry")
			assert.Equal(t, tt.wantV, st.P&cpu.FlagV != 0, "overflow")
			assert.Equal(t, tt.wantZ, st.P&cpu.FlagZ != 0, "zero")
			assert.Equal(t, tt.wantN, st.P&cpu.FlagN != 0, "negative")
		})
	}
}

func TestADCPageCrossPenalty(t *testing.T) {
	mem := bus.NewFlat()
	c := cpu.NewCPU(mem)
	require.NoError(t, mem.Write16(0xFFFC, 0x8000))
	require.NoError(t, c.Reset())
	c.A = 0x01
	c.X = 0xFF
	require.NoError(t, mem.LoadROM(0x8000, []byte{0x7D, 0x80, 0x12})) // ADC $1280,X
	require.NoError(t, mem.Write(0x137F, 0x01))

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 5, cycles, "base 4 + 1 page-cross")
	assert.Equal(t, uint8(0x02), c.State().A)
}

// Scenario 2 (§8).
func TestADCOverflowScenario(t *testing.T) {
	mem := bus.NewFlat()
	c := cpu.NewCPU(mem)
	require.NoError(t, mem.Write16(0xFFFC, 0x8000))
	require.NoError(t, c.Reset())
	c.A = 0x50
	require.NoError(t, mem.LoadROM(0x8000, []byte{0x69, 0x50}))

	_, err := c.Step()
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, uint8(0xA0), st.A)
	assert.False(t, st.P&cpu.FlagC != 0)
	assert.True(t, st.P&cpu.FlagV != 0)
	assert.True(t, st.P&cpu.FlagN != 0)
	assert.False(t, st.P&cpu.FlagZ != 0)
}

func TestSBCIsADCOfComplement(t *testing.T) {
	mem := bus.NewFlat()
	c := cpu.NewCPU(mem)
	require.NoError(t, mem.Write16(0xFFFC, 0x8000))
	require.NoError(t, c.Reset())
	c.A = 0x50
	c.P |= cpu.FlagC // carry set: no incoming borrow
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xE9, 0xF0})) // SBC #$F0

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, cycles)
	st := c.State()
	assert.Equal(t, uint8(0x60), st.A)
	assert.False(t, st.P&cpu.FlagC != 0, "borrow out clears carry")
}

func TestCompareFamily(t *testing.T) {
	tests := []struct {
		name       string
		reg, value uint8
		wantC      bool
		wantZ      bool
		wantN      bool
	}{
		{"equal", 0x40, 0x40, true, true, false},
		{"greater", 0x40, 0x10, true, false, false},
		{"less", 0x10, 0x40, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := bus.NewFlat()
			c := cpu.NewCPU(mem)
			require.NoError(t, mem.Write16(0xFFFC, 0x8000))
			require.NoError(t, c.Reset())
			c.A = tt.reg
			require.NoError(t, mem.LoadROM(0x8000, []byte{0xC9, tt.value})) // CMP #imm

			_, err := c.Step()
			require.NoError(t, err)
			st := c.State()
			assert.Equal(t, tt.wantC, st.P&cpu.FlagC != 0, "carry")
			assert.Equal(t, tt.wantZ, st.P&cpu.FlagZ != 0, "zero")
			assert.Equal(t, tt.wantN, st.P&cpu.FlagN != 0, "negative")
			assert.Equal(t, tt.reg, st.A, "CMP never mutates A")
		})
	}
}

func TestBIT(t *testing.T) {
	mem := bus.NewFlat()
	c := cpu.NewCPU(mem)
	require.NoError(t, mem.Write16(0xFFFC, 0x8000))
	require.NoError(t, c.Reset())
	c.A = 0x0F
	require.NoError(t, mem.LoadROM(0x8000, []byte{0x24, 0x10})) // BIT $10
	require.NoError(t, mem.Write(0x0010, 0xC0))                 // bits 7 and 6 set, AND with A is 0

	_, err := c.Step()
	require.NoError(t, err)
	st := c.State()
	assert.True(t, st.P&cpu.FlagZ != 0)
	assert.True(t, st.P&cpu.FlagV != 0)
	assert.True(t, st.P&cpu.FlagN != 0)
	assert.Equal(t, uint8(0x0F), st.A, "BIT never mutates A")
}
