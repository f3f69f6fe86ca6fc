package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidROM     = errors.New("invalid rom")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrUnknownOpcode  = errors.New("unknown opcode")
)

// ExecError is returned by Cycle when an instruction cannot be executed.
// PC is the address the opcode was fetched from.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%03X-%04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
