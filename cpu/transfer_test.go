package cpu_test

import (
	"testing"

	"github.com/kschmidt/mos6502/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadsSetZeroAndNegative(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xA9, 0x00, 0xA2, 0x80, 0xA0, 0x01}))
	// LDA #0; LDX #$80; LDY #1

	_, err := c.Step()
	require.NoError(t, err)
	assert.True(t, c.State().P&cpu.FlagZ != 0)

	_, err = c.Step()
	require.NoError(t, err)
	assert.True(t, c.State().P&cpu.FlagN != 0)
	assert.Equal(t, uint8(0x80), c.State().X)

	_, err = c.Step()
	require.NoError(t, err)
	assert.False(t, c.State().P&cpu.FlagZ != 0)
	assert.False(t, c.State().P&cpu.FlagN != 0)
	assert.Equal(t, uint8(0x01), c.State().Y)
}

func TestStores(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A, c.X, c.Y = 0x11, 0x22, 0x33
	require.NoError(t, mem.LoadROM(0x8000, []byte{
		0x85, 0x10, // STA $10
		0x86, 0x11, // STX $11
		0x84, 0x12, // STY $12
	}))

	for i := 0; i < 3; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}
	v, err := mem.Read(0x10)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x11), v)
	v, err = mem.Read(0x11)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x22), v)
	v, err = mem.Read(0x12)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x33), v)
}

func TestRegisterTransfers(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.A = 0x55
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xAA, 0xA8, 0xA9, 0x00, 0x8A, 0x98}))
	// TAX; TAY; LDA #0; TXA; TYA

	_, err := c.Step() // TAX
	require.NoError(t, err)
	assert.Equal(t, uint8(0x55), c.State().X)

	_, err = c.Step() // TAY
	require.NoError(t, err)
	assert.Equal(t, uint8(0x55), c.State().Y)

	_, err = c.Step() // LDA #0
	require.NoError(t, err)

	_, err = c.Step() // TXA
	require.NoError(t, err)
	assert.Equal(t, uint8(0x55), c.State().A)

	_, err = c.Step() // TYA
	require.NoError(t, err)
	assert.Equal(t, uint8(0x55), c.State().A)
}

func TestStackTransfersAndPushPull(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.X = 0xAA
	require.NoError(t, mem.LoadROM(0x8000, []byte{
		0x9A,       // TXS
		0xBA,       // TSX
		0xA9, 0x42, // LDA #$42
		0x48, // PHA
		0x08, // PHP
		0xA9, 0x00, // LDA #0 (clobber A before pulling)
		0x28, // PLP
		0x68, // PLA
	}))

	_, err := c.Step() // TXS
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAA), c.State().SP)

	_, err = c.Step() // TSX
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAA), c.State().X)

	_, err = c.Step() // LDA #$42
	require.NoError(t, err)
	pBeforePush := c.State().P

	_, err = c.Step() // PHA
	require.NoError(t, err)
	_, err = c.Step() // PHP
	require.NoError(t, err)
	_, err = c.Step() // LDA #0
	require.NoError(t, err)

	_, err = c.Step() // PLP
	require.NoError(t, err)
	assert.Equal(t, pBeforePush, c.State().P, "Break/Unused bits normalized back out on pull")

	_, err = c.Step() // PLA
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), c.State().A)
}
