package chip8

type opcode uint16

func (op opcode) group() uint8 { return uint8(op >> 12) }
func (op opcode) x() uint8     { return uint8(op>>8) & 0xF }
func (op opcode) y() uint8     { return uint8(op>>4) & 0xF }
func (op opcode) n() uint8     { return uint8(op) & 0xF }
func (op opcode) nn() uint8    { return uint8(op) }
func (op opcode) nnn() uint16  { return uint16(op) & 0xFFF }

type instruction struct {
	name string
	exec func(c *CPU, op opcode) error
}

// dispatchKey identifies an instruction by its high nibble and, for the
// groups that multiplex several instructions, the distinguishing sub-field.
type dispatchKey struct {
	group uint8
	sub   uint16
}

func keyOf(op opcode) dispatchKey {
	g := op.group()
	switch g {
	case 0x0:
		return dispatchKey{g, op.nnn()}
	case 0x5, 0x8, 0x9:
		return dispatchKey{g, uint16(op.n())}
	case 0xE, 0xF:
		return dispatchKey{g, uint16(op.nn())}
	}
	return dispatchKey{g, 0}
}

var instructions = map[dispatchKey]instruction{
	{0x0, 0x0E0}: {"CLS", opCLS},
	{0x0, 0x0EE}: {"RET", opRET},
	{0x1, 0}:     {"JP", opJP},
	{0x2, 0}:     {"CALL", opCALL},
	{0x3, 0}:     {"SE", opSEImm},
	{0x4, 0}:     {"SNE", opSNEImm},
	{0x5, 0}:     {"SE", opSEReg},
	{0x6, 0}:     {"LD", opLDImm},
	{0x7, 0}:     {"ADD", opADDImm},
	{0x8, 0x0}:   {"LD", opLDReg},
	{0x8, 0x1}:   {"OR", opOR},
	{0x8, 0x2}:   {"AND", opAND},
	{0x8, 0x3}:   {"XOR", opXOR},
	{0x8, 0x4}:   {"ADD", opADDReg},
	{0x8, 0x5}:   {"SUB", opSUB},
	{0x8, 0x6}:   {"SHR", opSHR},
	{0x8, 0x7}:   {"SUBN", opSUBN},
	{0x8, 0xE}:   {"SHL", opSHL},
	{0x9, 0}:     {"SNE", opSNEReg},
	{0xA, 0}:     {"LD I", opLDI},
	{0xB, 0}:     {"JP V0", opJPV0},
	{0xC, 0}:     {"RND", opRND},
	{0xD, 0}:     {"DRW", opDRW},
	{0xE, 0x9E}:  {"SKP", opSKP},
	{0xE, 0xA1}:  {"SKNP", opSKNP},
	{0xF, 0x07}:  {"LD DT", opLDVxDT},
	{0xF, 0x0A}:  {"LD K", opLDK},
	{0xF, 0x15}:  {"LD DT", opLDDTVx},
	{0xF, 0x18}:  {"LD ST", opLDSTVx},
	{0xF, 0x1E}:  {"ADD I", opADDI},
	{0xF, 0x29}:  {"LD F", opLDF},
	{0xF, 0x33}:  {"LD B", opLDB},
	{0xF, 0x55}:  {"LD [I]", opStore},
	{0xF, 0x65}:  {"LD Vx", opLoad},
}

func decode(op opcode) (instruction, bool) {
	instr, ok := instructions[keyOf(op)]
	return instr, ok
}

// 00E0 clear display
func opCLS(c *CPU, _ opcode) error {
	c.disp.Clear()
	return nil
}

// 00EE return from subroutine
func opRET(c *CPU, _ opcode) error {
	addr, err := c.stack.Pop()
	if err != nil {
		return err
	}
	c.pc = addr
	return nil
}

// 1NNN goto NNN
func opJP(c *CPU, op opcode) error {
	c.pc = op.nnn()
	return nil
}

// 2NNN call NNN
func opCALL(c *CPU, op opcode) error {
	if err := c.stack.Push(c.pc); err != nil {
		return err
	}
	c.pc = op.nnn()
	return nil
}

// 3XNN if(Vx==NN)
func opSEImm(c *CPU, op opcode) error {
	if c.v[op.x()] == op.nn() {
		c.skip()
	}
	return nil
}

// 4XNN if(Vx!=NN)
func opSNEImm(c *CPU, op opcode) error {
	if c.v[op.x()] != op.nn() {
		c.skip()
	}
	return nil
}

// 5XY0 if(Vx==Vy)
func opSEReg(c *CPU, op opcode) error {
	if c.v[op.x()] == c.v[op.y()] {
		c.skip()
	}
	return nil
}

// 6XNN Vx = NN
func opLDImm(c *CPU, op opcode) error {
	c.v[op.x()] = op.nn()
	return nil
}

// 7XNN Vx += NN (carry flag is not changed)
func opADDImm(c *CPU, op opcode) error {
	c.v[op.x()] += op.nn()
	return nil
}

// 8XY0 Vx = Vy
func opLDReg(c *CPU, op opcode) error {
	c.v[op.x()] = c.v[op.y()]
	return nil
}

// 8XY1 Vx |= Vy
func opOR(c *CPU, op opcode) error {
	c.v[op.x()] |= c.v[op.y()]
	return nil
}

// 8XY2 Vx &= Vy
func opAND(c *CPU, op opcode) error {
	c.v[op.x()] &= c.v[op.y()]
	return nil
}

// 8XY3 Vx ^= Vy
func opXOR(c *CPU, op opcode) error {
	c.v[op.x()] ^= c.v[op.y()]
	return nil
}

// 8XY4 Vx += Vy, VF = carry
func opADDReg(c *CPU, op opcode) error {
	sum := uint16(c.v[op.x()]) + uint16(c.v[op.y()])
	c.v[op.x()] = uint8(sum)
	c.setFlag(sum > 0xFF)
	return nil
}

// 8XY5 Vx -= Vy, VF = not borrow
func opSUB(c *CPU, op opcode) error {
	vx, vy := c.v[op.x()], c.v[op.y()]
	c.v[op.x()] = vx - vy
	c.setFlag(vx >= vy)
	return nil
}

// 8XY6 Vx >>= 1, VF = old bit 0
func opSHR(c *CPU, op opcode) error {
	vx := c.v[op.x()]
	c.v[op.x()] = vx >> 1
	c.v[0xF] = vx & 0x01
	return nil
}

// 8XY7 Vx = Vy - Vx, VF = not borrow
func opSUBN(c *CPU, op opcode) error {
	vx, vy := c.v[op.x()], c.v[op.y()]
	c.v[op.x()] = vy - vx
	c.setFlag(vy >= vx)
	return nil
}

// 8XYE Vx <<= 1, VF = old bit 7
func opSHL(c *CPU, op opcode) error {
	vx := c.v[op.x()]
	c.v[op.x()] = vx << 1
	c.v[0xF] = vx >> 7
	return nil
}

// 9XY0 if(Vx!=Vy)
func opSNEReg(c *CPU, op opcode) error {
	if c.v[op.x()] != c.v[op.y()] {
		c.skip()
	}
	return nil
}

// ANNN I = NNN
func opLDI(c *CPU, op opcode) error {
	c.i = op.nnn()
	return nil
}

// BNNN PC = V0 + NNN
func opJPV0(c *CPU, op opcode) error {
	c.pc = (op.nnn() + uint16(c.v[0])) & AddressMask
	return nil
}

// CXNN Vx = rand() & NN
func opRND(c *CPU, op opcode) error {
	c.v[op.x()] = uint8(c.random.Uint32()) & op.nn()
	return nil
}

// DXYN draw(Vx, Vy, N), VF = collision
func opDRW(c *CPU, op opcode) error {
	var buf [15]uint8
	rows := buf[:op.n()]
	for r := range rows {
		rows[r] = c.mem.ReadByte(c.i + uint16(r))
	}
	collided := c.disp.XorSprite(int(c.v[op.x()]), int(c.v[op.y()]), rows)
	c.setFlag(collided)
	return nil
}

// EX9E if(key(Vx) pressed)
func opSKP(c *CPU, op opcode) error {
	if c.keypad.IsPressed(Key(c.v[op.x()] & 0xF)) {
		c.skip()
	}
	return nil
}

// EXA1 if(key(Vx) not pressed)
func opSKNP(c *CPU, op opcode) error {
	if !c.keypad.IsPressed(Key(c.v[op.x()] & 0xF)) {
		c.skip()
	}
	return nil
}

// FX07 Vx = delay timer
func opLDVxDT(c *CPU, op opcode) error {
	c.v[op.x()] = c.timers.Delay
	return nil
}

// FX0A Vx = get_key(), blocking
func opLDK(c *CPU, op opcode) error {
	if k, ok := c.keypad.Lowest(); ok {
		c.v[op.x()] = uint8(k)
		return nil
	}
	c.wait = keyWait{reg: op.x(), active: true}
	return nil
}

// FX15 delay timer = Vx
func opLDDTVx(c *CPU, op opcode) error {
	c.timers.Delay = c.v[op.x()]
	return nil
}

// FX18 sound timer = Vx
func opLDSTVx(c *CPU, op opcode) error {
	c.timers.Sound = c.v[op.x()]
	return nil
}

// FX1E I += Vx
func opADDI(c *CPU, op opcode) error {
	c.i = (c.i + uint16(c.v[op.x()])) & AddressMask
	return nil
}

// FX29 I = sprite_addr[Vx]
func opLDF(c *CPU, op opcode) error {
	c.i = FontsetOffset + uint16(c.v[op.x()])*FontGlyphBytes
	return nil
}

// FX33 set_BCD(Vx)
func opLDB(c *CPU, op opcode) error {
	vx := c.v[op.x()]
	c.mem.WriteByte(c.i, vx/100)
	c.mem.WriteByte(c.i+1, (vx/10)%10)
	c.mem.WriteByte(c.i+2, vx%10)
	return nil
}

// FX55 reg_dump(Vx, &I)
func opStore(c *CPU, op opcode) error {
	for r := uint8(0); r <= op.x(); r++ {
		c.mem.WriteByte(c.i+uint16(r), c.v[r])
	}
	return nil
}

// FX65 reg_load(Vx, &I)
func opLoad(c *CPU, op opcode) error {
	for r := uint8(0); r <= op.x(); r++ {
		c.v[r] = c.mem.ReadByte(c.i + uint16(r))
	}
	return nil
}
