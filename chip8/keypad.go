package chip8

// The keypad is a 16-key hexadecimal pad:
//
// +---+---+---+---+
// | 1 | 2 | 3 | C |
// +---+---+---+---+
// | 4 | 5 | 6 | D |
// +---+---+---+---+
// | 7 | 8 | 9 | E |
// +---+---+---+---+
// | A | 0 | B | F |
// +---+---+---+---+

const NumKeys = 16

type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Keypad tracks which keys are held. The pressed set is the set of true
// flags, so the two views never disagree.
type Keypad struct {
	keys [NumKeys]bool
}

// SetPressed marks k as held. Keys outside 0x0-0xF are ignored.
func (kp *Keypad) SetPressed(k Key) {
	if k < NumKeys {
		kp.keys[k] = true
	}
}

// SetReleased marks k as not held. Keys outside 0x0-0xF are ignored.
func (kp *Keypad) SetReleased(k Key) {
	if k < NumKeys {
		kp.keys[k] = false
	}
}

func (kp *Keypad) IsPressed(k Key) bool {
	return k < NumKeys && kp.keys[k]
}

// Lowest returns the lowest-indexed key currently held.
func (kp *Keypad) Lowest() (Key, bool) {
	for i, down := range kp.keys {
		if down {
			return Key(i), true
		}
	}
	return 0, false
}

// Pressed returns the held keys in ascending order.
func (kp *Keypad) Pressed() []Key {
	var held []Key
	for i, down := range kp.keys {
		if down {
			held = append(held, Key(i))
		}
	}
	return held
}

// ReleaseAll clears every key.
func (kp *Keypad) ReleaseAll() {
	kp.keys = [NumKeys]bool{}
}
