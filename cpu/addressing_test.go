package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroPageXWraps(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.X = 0xFF
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xB5, 0x80})) // LDA $80,X -> zero page wrap to $7F
	require.NoError(t, mem.Write(0x007F, 0x42))

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), c.State().A)
}

func TestAbsoluteXPageCrossSetsFlag(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.X = 0x01
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xBD, 0xFF, 0x10})) // LDA $10FF,X -> $1100
	require.NoError(t, mem.Write(0x1100, 0x77))

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x77), c.State().A)
	assert.Equal(t, 5, cycles, "base 4 + page-cross penalty")
}

func TestAbsoluteXNoPageCross(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.X = 0x01
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xBD, 0x00, 0x10})) // LDA $1000,X -> $1001
	require.NoError(t, mem.Write(0x1001, 0x77))

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x77), c.State().A)
	assert.Equal(t, 4, cycles)
}

func TestIndexedIndirectXWrapsInZeroPage(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.X = 0x01
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xA1, 0xFF})) // LDA ($FF,X) -> pointer at $00
	require.NoError(t, mem.Write16(0x0000, 0x1234))
	require.NoError(t, mem.Write(0x1234, 0x99))

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x99), c.State().A)
}

func TestIndirectIndexedYAddsAfterDereference(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.Y = 0x10
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xB1, 0x10})) // LDA ($10),Y
	require.NoError(t, mem.Write16(0x0010, 0x2000))
	require.NoError(t, mem.Write(0x2010, 0xAB))

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), c.State().A)
	assert.Equal(t, 5, cycles, "no page cross")
}

func TestIndirectIndexedYPageCross(t *testing.T) {
	c, mem := newTestCPU(t)
	resetAt(t, c, mem, 0x8000)
	c.Y = 0xFF
	require.NoError(t, mem.LoadROM(0x8000, []byte{0xB1, 0x10})) // LDA ($10),Y
	require.NoError(t, mem.Write16(0x0010, 0x2001))
	require.NoError(t, mem.Write(0x2100, 0xCD))

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xCD), c.State().A)
	assert.Equal(t, 6, cycles, "base 5 + page-cross")
}
