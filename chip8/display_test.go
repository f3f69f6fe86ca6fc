package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXorSprite(t *testing.T) {
	var d Display
	sprite := []uint8{0xA0, 0x40}

	assert.False(t, d.XorSprite(10, 5, sprite))
	assert.Equal(t, uint8(1), d.Get(10, 5))
	assert.Equal(t, uint8(0), d.Get(11, 5))
	assert.Equal(t, uint8(1), d.Get(12, 5))
	assert.Equal(t, uint8(1), d.Get(11, 6))

	assert.True(t, d.XorSprite(10, 5, sprite))
	assert.Equal(t, uint8(0), d.Get(10, 5))
	assert.Equal(t, uint8(0), d.Get(11, 6))
}

func TestXorSpritePartialCollision(t *testing.T) {
	var d Display
	d.XorSprite(0, 0, []uint8{0x80})

	// the second row touches only unset pixels but the flag stays set
	assert.True(t, d.XorSprite(0, 0, []uint8{0xC0, 0xFF}))
	assert.Equal(t, uint8(0), d.Get(0, 0))
	assert.Equal(t, uint8(1), d.Get(1, 0))
}

func TestDisplayWraps(t *testing.T) {
	var d Display
	d.XorSprite(63, 31, []uint8{0xC0, 0xC0})
	assert.Equal(t, uint8(1), d.Get(63, 31))
	assert.Equal(t, uint8(1), d.Get(0, 31))
	assert.Equal(t, uint8(1), d.Get(63, 0))
	assert.Equal(t, uint8(1), d.Get(0, 0))
	assert.Equal(t, uint8(1), d.Get(64, 32))
	assert.Equal(t, uint8(1), d.Get(-1, -1))
}

func TestDisplayClear(t *testing.T) {
	var d Display
	d.XorSprite(4, 4, []uint8{0xFF, 0xFF})
	d.Clear()
	for y := 0; y < DisplayH; y++ {
		for x := 0; x < DisplayW; x++ {
			assert.Equal(t, uint8(0), d.Get(x, y))
		}
	}
}
