// Package emulator drives a chip8.CPU at a fixed frame rate and connects it
// to a display frontend.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuboc/chip8vm/chip8"
)

const (
	FrameRate      = 60
	CyclesPerFrame = 8
)

// Events are reported by a frontend each time it is polled.
type Events struct {
	Quit   bool
	Reset  bool
	Paused bool
}

// Frontend presents the framebuffer and feeds the keypad. Poll and Render
// are only called from the goroutine running the emulator.
type Frontend interface {
	Poll(keys *chip8.Keypad) Events
	Render(d *chip8.Display) error
	Close() error
}

type Emulator struct {
	rom      []byte
	opts     []chip8.Option
	cpu      *chip8.CPU
	frontend Frontend
	log      *slog.Logger
	frames   uint64
}

func New(rom []byte, fe Frontend, log *slog.Logger, opts ...chip8.Option) (*Emulator, error) {
	e := &Emulator{
		rom:      rom,
		opts:     opts,
		frontend: fe,
		log:      log,
	}
	if err := e.reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// reset replaces the CPU with a fresh instance running the same ROM.
func (e *Emulator) reset() error {
	cpu := chip8.New(e.opts...)
	if err := cpu.LoadROM(e.rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	e.cpu = cpu
	e.frames = 0
	return nil
}

func (e *Emulator) CPU() *chip8.CPU {
	return e.cpu
}

func (e *Emulator) Frames() uint64 {
	return e.frames
}

// Run executes frames until the frontend quits, ctx is cancelled or the CPU
// faults. A fault is returned, the other two end with a nil error.
func (e *Emulator) Run(ctx context.Context) error {
	lim := newLimiter(FrameRate)
	defer lim.stop()

	e.log.Info("emulation started", "fps", FrameRate, "cycles_per_frame", CyclesPerFrame)
	for {
		ev := e.frontend.Poll(e.cpu.Keypad())
		if ev.Quit {
			e.log.Info("emulation stopped", "frames", e.frames)
			return nil
		}

		if ev.Reset {
			if err := e.reset(); err != nil {
				return err
			}
			e.log.Info("emulation reset")
		}

		if !ev.Paused {
			if err := e.Frame(); err != nil {
				e.log.Error("cpu halted", "error", err, "frames", e.frames)
				return err
			}
		}

		if err := e.frontend.Render(e.cpu.Display()); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}

		if err := lim.wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				e.log.Info("emulation cancelled", "frames", e.frames)
				return nil
			}
			return err
		}
	}
}

// Frame runs CyclesPerFrame instructions followed by one timer tick.
func (e *Emulator) Frame() error {
	for i := 0; i < CyclesPerFrame; i++ {
		if err := e.cpu.Cycle(); err != nil {
			return fmt.Errorf("cpu halted: %w", err)
		}
	}
	e.cpu.TickTimers()
	e.frames++
	return nil
}
