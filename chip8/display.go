package chip8

const (
	DisplayW = 64
	DisplayH = 32
)

// Display is the monochrome framebuffer. Pixels hold 0 or 1 and are only
// changed by XOR blits or Clear.
type Display struct {
	pixels [DisplayW * DisplayH]uint8
}

// Get returns the pixel at (x mod 64, y mod 32).
func (d *Display) Get(x, y int) uint8 {
	return d.pixels[index(x, y)]
}

func (d *Display) Clear() {
	d.pixels = [DisplayW * DisplayH]uint8{}
}

// XorSprite blits rows at (x0, y0), one byte per row with the most
// significant bit leftmost. Coordinates wrap around both edges. It reports
// whether any set pixel was turned off.
func (d *Display) XorSprite(x0, y0 int, rows []uint8) bool {
	collided := false
	for row, bits := range rows {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := index(x0+col, y0+row)
			if d.pixels[i] == 1 {
				collided = true
			}
			d.pixels[i] ^= 1
		}
	}
	return collided
}

func index(x, y int) int {
	x %= DisplayW
	if x < 0 {
		x += DisplayW
	}
	y %= DisplayH
	if y < 0 {
		y += DisplayH
	}
	return y*DisplayW + x
}
