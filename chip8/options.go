package chip8

import (
	"log/slog"
	"math/rand/v2"
)

// Random supplies the bytes for the Cxnn instruction.
type Random interface {
	Uint32() uint32
}

type globalRandom struct{}

func (globalRandom) Uint32() uint32 {
	return rand.Uint32()
}

type config struct {
	stackLimit int
	lenient    bool
	random     Random
	log        *slog.Logger
}

type Option func(*config)

// WithStackLimit bounds the call stack depth. Zero removes the bound.
func WithStackLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.stackLimit = n
	}
}

// WithLenientOpcodes makes unknown opcodes no-ops instead of errors.
func WithLenientOpcodes() Option {
	return func(c *config) {
		c.lenient = true
	}
}

func WithRandom(r Random) Option {
	return func(c *config) {
		c.random = r
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}
