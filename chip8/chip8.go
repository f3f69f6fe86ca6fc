// Package chip8 implements the CHIP-8 virtual machine: memory, registers,
// call stack, timers, keypad and framebuffer, driven one opcode at a time.
//
// A CPU is not safe for concurrent use. The host calls Cycle and TickTimers
// at its own cadence and reads the display or writes the keypad between
// those calls.
package chip8

import (
	"context"
	"fmt"
	"log/slog"
)

// keyWait is the Fx0A sub-state: while active, Cycle only polls the keypad.
type keyWait struct {
	reg    uint8
	active bool
}

type CPU struct {
	mem    Memory
	v      [16]uint8
	i      uint16
	pc     uint16
	stack  *Stack
	timers Timers
	keypad Keypad
	disp   Display
	wait   keyWait

	lenient bool
	random  Random
	log     *slog.Logger
}

// New returns a CPU with the fontset loaded and pc at 0x200. The call stack
// is bounded to DefaultStackLimit and unknown opcodes are errors unless
// options say otherwise.
func New(opts ...Option) *CPU {
	cfg := config{
		stackLimit: DefaultStackLimit,
		random:     globalRandom{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &CPU{
		pc:      ProgramOffset,
		stack:   newStack(cfg.stackLimit),
		lenient: cfg.lenient,
		random:  cfg.random,
		log:     cfg.log,
	}
	c.mem.LoadFontset()
	return c
}

func (c *CPU) LoadROM(rom []byte) error {
	if err := c.mem.LoadROM(rom); err != nil {
		return err
	}
	c.log.Debug("rom loaded", "size", len(rom))
	return nil
}

// Cycle executes one opcode. While a key wait is pending it instead checks
// the keypad and consumes no instruction. On error the machine is left as
// it was before the call.
func (c *CPU) Cycle() error {
	if c.wait.active {
		c.resolveKeyWait()
		return nil
	}

	pc := c.pc
	op := opcode(c.mem.readWord(pc))
	c.pc = (pc + 2) & AddressMask

	instr, ok := decode(op)
	if !ok {
		if c.lenient {
			c.log.Debug("ignoring unknown opcode", "pc", fmt.Sprintf("%03X", pc), "opcode", fmt.Sprintf("%04X", uint16(op)))
			return nil
		}
		c.pc = pc
		return &ExecError{PC: pc, Opcode: uint16(op), Err: ErrUnknownOpcode}
	}

	if c.log.Enabled(context.Background(), slog.LevelDebug) {
		c.log.Debug("exec",
			"pc", fmt.Sprintf("%03X", pc),
			"opcode", fmt.Sprintf("%04X", uint16(op)),
			"instr", instr.name,
		)
	}

	if err := instr.exec(c, op); err != nil {
		c.pc = pc
		return &ExecError{PC: pc, Opcode: uint16(op), Err: err}
	}
	return nil
}

// TickTimers counts both timers down by one.
func (c *CPU) TickTimers() {
	c.timers.Tick()
}

func (c *CPU) resolveKeyWait() {
	k, ok := c.keypad.Lowest()
	if !ok {
		return
	}
	c.v[c.wait.reg] = uint8(k)
	c.wait = keyWait{}
}

func (c *CPU) skip() {
	c.pc = (c.pc + 2) & AddressMask
}

// setFlag writes VF. Callers write it after the destination register so the
// flag wins when the destination is VF.
func (c *CPU) setFlag(b bool) {
	if b {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
}

func (c *CPU) Display() *Display {
	return &c.disp
}

func (c *CPU) Keypad() *Keypad {
	return &c.keypad
}

func (c *CPU) Memory() *Memory {
	return &c.mem
}

func (c *CPU) Timers() *Timers {
	return &c.timers
}

func (c *CPU) PC() uint16 {
	return c.pc
}

func (c *CPU) I() uint16 {
	return c.i
}

// V returns general register n (0x0-0xF).
func (c *CPU) V(n uint8) uint8 {
	return c.v[n&0xF]
}

func (c *CPU) StackDepth() int {
	return c.stack.Depth()
}

// AwaitingKey reports the register an Fx0A instruction is waiting to fill.
func (c *CPU) AwaitingKey() (uint8, bool) {
	return c.wait.reg, c.wait.active
}
