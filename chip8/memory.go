package chip8

import "fmt"

const (
	MemorySize     = 4096
	AddressMask    = MemorySize - 1
	ProgramOffset  = 0x200
	MaxROMSize     = AddressMask - ProgramOffset + 1
	FontsetOffset  = 0x000
	FontGlyphBytes = 5
)

var fontset = [...]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4K address space. Every access is masked to 12 bits, so
// no address can fall outside of it.
type Memory struct {
	data [MemorySize]uint8
}

// LoadFontset writes the hexadecimal glyphs at 0x000.
func (m *Memory) LoadFontset() {
	copy(m.data[FontsetOffset:], fontset[:])
}

// LoadROM copies rom verbatim to 0x200. A ROM that does not fit is rejected
// as a whole and memory is left untouched.
func (m *Memory) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidROM, len(rom), MaxROMSize)
	}
	copy(m.data[ProgramOffset:], rom)
	return nil
}

func (m *Memory) ReadByte(addr uint16) uint8 {
	return m.data[addr&AddressMask]
}

func (m *Memory) WriteByte(addr uint16, v uint8) {
	m.data[addr&AddressMask] = v
}

// readWord returns the big-endian opcode at addr. The second byte wraps to
// 0x000 when addr is the last cell.
func (m *Memory) readWord(addr uint16) uint16 {
	return uint16(m.ReadByte(addr))<<8 | uint16(m.ReadByte(addr+1))
}
