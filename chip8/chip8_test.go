package chip8

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWithProgram(t *testing.T, program []byte, opts ...Option) *CPU {
	t.Helper()
	c := New(opts...)
	require.NoError(t, c.LoadROM(program))
	return c
}

func TestNewInitialState(t *testing.T) {
	c := New()
	assert.Equal(t, uint16(ProgramOffset), c.PC())
	assert.Equal(t, uint16(0), c.I())
	for n := uint8(0); n < 16; n++ {
		assert.Equal(t, uint8(0), c.V(n))
	}
	assert.Equal(t, 0, c.StackDepth())
	assert.Equal(t, Timers{}, *c.Timers())
	_, waiting := c.AwaitingKey()
	assert.False(t, waiting)
	assert.Equal(t, fontset[:], c.mem.data[:len(fontset)])
}

func TestInstancesAreIndependent(t *testing.T) {
	a := newWithProgram(t, []byte{0x60, 0x11})
	b := newWithProgram(t, []byte{0x60, 0x22})
	require.NoError(t, a.Cycle())
	require.NoError(t, b.Cycle())
	assert.Equal(t, uint8(0x11), a.V(0))
	assert.Equal(t, uint8(0x22), b.V(0))
}

func TestCallThenReturn(t *testing.T) {
	c := newWithProgram(t, []byte{
		0x22, 0x04, // 200: CALL 204
		0x00, 0x00, // 202
		0x00, 0xEE, // 204: RET
	})
	require.NoError(t, c.Cycle())
	assert.Equal(t, uint16(0x204), c.PC())
	assert.Equal(t, 1, c.StackDepth())

	require.NoError(t, c.Cycle())
	assert.Equal(t, uint16(0x202), c.PC())
	assert.Equal(t, 0, c.StackDepth())
}

func TestReturnOnEmptyStack(t *testing.T) {
	c := newWithProgram(t, []byte{0x00, 0xEE})

	err := c.Cycle()
	require.ErrorIs(t, err, ErrStackUnderflow)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(0x200), execErr.PC)
	assert.Equal(t, uint16(0x00EE), execErr.Opcode)
	assert.Equal(t, uint16(0x200), c.PC(), "failed cycle must not advance pc")
}

func TestStackOverflow(t *testing.T) {
	// 200: CALL 200, recursing forever
	c := newWithProgram(t, []byte{0x22, 0x00})
	for i := 0; i < DefaultStackLimit; i++ {
		require.NoError(t, c.Cycle())
	}
	assert.Equal(t, DefaultStackLimit, c.StackDepth())

	err := c.Cycle()
	assert.ErrorIs(t, err, ErrStackOverflow)
	assert.Equal(t, DefaultStackLimit, c.StackDepth())
	assert.Equal(t, uint16(0x200), c.PC())
}

func TestUnboundedStack(t *testing.T) {
	c := newWithProgram(t, []byte{0x22, 0x00}, WithStackLimit(0))
	for i := 0; i < DefaultStackLimit*4; i++ {
		require.NoError(t, c.Cycle())
	}
	assert.Equal(t, DefaultStackLimit*4, c.StackDepth())
}

func TestUnknownOpcode(t *testing.T) {
	c := newWithProgram(t, []byte{0x51, 0x23})

	err := c.Cycle()
	assert.ErrorIs(t, err, ErrUnknownOpcode)
	assert.EqualError(t, err, "200-5123: unknown opcode")
	assert.Equal(t, uint16(0x200), c.PC())
}

func TestUnknownOpcodeLenient(t *testing.T) {
	c := newWithProgram(t, []byte{0x51, 0x23, 0x60, 0x07}, WithLenientOpcodes())

	require.NoError(t, c.Cycle())
	assert.Equal(t, uint16(0x202), c.PC())
	require.NoError(t, c.Cycle())
	assert.Equal(t, uint8(0x07), c.V(0))
}

func TestAwaitKey(t *testing.T) {
	c := newWithProgram(t, []byte{
		0xF3, 0x0A, // 200: LD V3, K
		0x60, 0x01, // 202: LD V0, 01
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Cycle())
		assert.Equal(t, uint16(0x202), c.PC())
	}
	reg, waiting := c.AwaitingKey()
	require.True(t, waiting)
	assert.Equal(t, uint8(3), reg)
	assert.Equal(t, uint8(0), c.V(0), "no instruction may run while waiting")

	c.Keypad().SetPressed(KeyE)
	c.Keypad().SetPressed(Key5)
	require.NoError(t, c.Cycle())
	assert.Equal(t, uint8(5), c.V(3))
	assert.Equal(t, uint16(0x202), c.PC())
	_, waiting = c.AwaitingKey()
	assert.False(t, waiting)

	require.NoError(t, c.Cycle())
	assert.Equal(t, uint8(1), c.V(0))
	assert.Equal(t, uint16(0x204), c.PC())
}

func TestTimersKeepTickingWhileAwaitingKey(t *testing.T) {
	c := newWithProgram(t, []byte{0xF0, 0x0A})
	c.Timers().Delay = 2
	require.NoError(t, c.Cycle())
	c.TickTimers()
	require.NoError(t, c.Cycle())
	c.TickTimers()
	assert.Equal(t, uint8(0), c.Timers().Delay)
}

func TestDrawSpriteTwice(t *testing.T) {
	c := newWithProgram(t, []byte{
		0xA0, 0x00, // 200: LD I, 000 (glyph "0")
		0xD0, 0x05, // 202: DRW V0, V0, 5
		0xD0, 0x05, // 204: DRW V0, V0, 5
	})
	require.NoError(t, c.Cycle())
	require.NoError(t, c.Cycle())
	assert.Equal(t, uint8(0), c.V(0xF))
	assert.Equal(t, uint8(1), c.Display().Get(0, 0))

	require.NoError(t, c.Cycle())
	assert.Equal(t, uint8(1), c.V(0xF))
	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, uint8(0), c.Display().Get(x, y))
		}
	}
}

func TestClearAfterDraw(t *testing.T) {
	c := newWithProgram(t, []byte{
		0xA0, 0x4B, // 200: LD I, 04B (glyph "F")
		0xD0, 0x05, // 202: DRW V0, V0, 5
		0x00, 0xE0, // 204: CLS
	})
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Cycle())
	}
	for y := 0; y < DisplayH; y++ {
		for x := 0; x < DisplayW; x++ {
			assert.Equal(t, uint8(0), c.Display().Get(x, y))
		}
	}
}

func TestFetchWrapsAtEndOfMemory(t *testing.T) {
	c := New()
	c.mem.WriteByte(0xFFF, 0x12)
	c.mem.WriteByte(0x000, 0x34)
	c.pc = 0xFFF

	require.NoError(t, c.Cycle())
	assert.Equal(t, uint16(0x234), c.PC())
}

func TestRegistersStayInByteRange(t *testing.T) {
	for vx := 0; vx < 256; vx += 17 {
		for nn := 0; nn < 256; nn += 13 {
			c := newWithProgram(t, []byte{0x70, byte(nn)})
			c.v[0] = uint8(vx)
			require.NoError(t, c.Cycle())
			assert.Equal(t, uint8((vx+nn)%256), c.V(0))
		}
	}
}
