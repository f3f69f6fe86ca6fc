package emulator

import (
	"unicode"

	"github.com/tuboc/chip8vm/chip8"
)

// Layout maps the left hand block of a QWERTY keyboard onto the keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var Layout = map[rune]chip8.Key{
	'1': chip8.Key1, '2': chip8.Key2, '3': chip8.Key3, '4': chip8.KeyC,
	'q': chip8.Key4, 'w': chip8.Key5, 'e': chip8.Key6, 'r': chip8.KeyD,
	'a': chip8.Key7, 's': chip8.Key8, 'd': chip8.Key9, 'f': chip8.KeyE,
	'z': chip8.KeyA, 'x': chip8.Key0, 'c': chip8.KeyB, 'v': chip8.KeyF,
}

// KeyForRune looks up r in Layout, ignoring case.
func KeyForRune(r rune) (chip8.Key, bool) {
	k, ok := Layout[unicode.ToLower(r)]
	return k, ok
}
