package cpu_test

import (
	"testing"

	"github.com/kschmidt/mos6502/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASLAccumulator(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A = 0x81
	require.NoError(t, mem.Write(0x8000, 0x0A)) // ASL A

	_, err := c.Step()
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, uint8(0x02), st.A)
	assert.True(t, st.P&cpu.FlagC != 0, "bit 7 shifted into carry")
}

func TestLSRMemory(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	require.NoError(t, mem.LoadROM(0x8000, []byte{0x46, 0x10})) // LSR $10
	require.NoError(t, mem.Write(0x0010, 0x01))

	_, err := c.Step()
	require.NoError(t, err)
	v, err := mem.Read(0x0010)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x00), v)
	st := c.State()
	assert.True(t, st.P&cpu.FlagC != 0)
	assert.True(t, st.P&cpu.FlagZ != 0)
}

func TestROLCarriesThrough(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A = 0x80
	c.P |= cpu.FlagC
	require.NoError(t, mem.Write(0x8000, 0x2A)) // ROL A

	_, err := c.Step()
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, uint8(0x01), st.A, "old carry rotated into bit 0")
	assert.True(t, st.P&cpu.FlagC != 0, "old bit 7 rotated into carry")
}

func TestRORCarriesThrough(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A = 0x01
	c.P &^= cpu.FlagC
	require.NoError(t, mem.Write(0x8000, 0x6A)) // ROR A

	_, err := c.Step()
	require.NoError(t, err)
	st := c.State()
	assert.Equal(t, uint8(0x00), st.A)
	assert.True(t, st.P&cpu.FlagC != 0, "old bit 0 rotated into carry")
	assert.True(t, st.P&cpu.FlagZ != 0)
}

func TestROLRoundTripIsIdentityOverNineRotations(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A = 0x5A
	c.P &^= cpu.FlagC
	program := make([]byte, 9)
	for i := range program {
		program[i] = 0x2A // ROL A
	}
	require.NoError(t, mem.LoadROM(0x8000, program))

	for i := 0; i < 9; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, uint8(0x5A), c.State().A, "nine rotations through carry (8 bits + C) return to start")
}

func TestIncDecMemory(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xE6, 0x10, 0xC6, 0x10})) // INC $10; DEC $10
	require.NoError(t, mem.Write(0x0010, 0xFF))

	_, err := c.Step() // INC wraps to 0
	require.NoError(t, err)
	v, err := mem.Read(0x0010)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x00), v)
	assert.True(t, c.State().P&cpu.FlagZ != 0)

	_, err = c.Step() // DEC wraps to 0xFF
	require.NoError(t, err)
	v, err = mem.Read(0x0010)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v)
	assert.True(t, c.State().P&cpu.FlagN != 0)
}

func TestIncDecRegisters(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xE8, 0xC8, 0xCA, 0x88})) // INX; INY; DEX; DEY

	_, err := c.Step()
	require.NoError(t, err)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), c.State().X)
	assert.Equal(t, uint8(1), c.State().Y)

	_, err = c.Step()
	require.NoError(t, err)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), c.State().X)
	assert.Equal(t, uint8(0), c.State().Y)
}
