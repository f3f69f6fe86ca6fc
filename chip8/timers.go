package chip8

// Timers are the delay and sound countdown registers. Both are floored at
// zero.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}
