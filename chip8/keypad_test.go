package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypad(t *testing.T) {
	var kp Keypad

	_, ok := kp.Lowest()
	assert.False(t, ok)

	kp.SetPressed(KeyC)
	kp.SetPressed(Key3)
	kp.SetPressed(Key3)
	assert.True(t, kp.IsPressed(Key3))
	assert.Equal(t, []Key{Key3, KeyC}, kp.Pressed())

	k, ok := kp.Lowest()
	assert.True(t, ok)
	assert.Equal(t, Key3, k)

	kp.SetReleased(Key3)
	kp.SetReleased(Key3)
	k, _ = kp.Lowest()
	assert.Equal(t, KeyC, k)

	kp.ReleaseAll()
	assert.Empty(t, kp.Pressed())
}

func TestKeypadIgnoresOutOfRange(t *testing.T) {
	var kp Keypad
	kp.SetPressed(Key(0x10))
	assert.Empty(t, kp.Pressed())
	assert.False(t, kp.IsPressed(Key(0x10)))
}
