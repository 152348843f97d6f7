package intcode

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	ErrResumeAfterFinish = errors.New("resume of a finished program")
	ErrNotSuspended      = errors.New("resume of a program that is not waiting for input")
)

// ParseError reports a token of the program text that is not a 64-bit integer.
type ParseError struct {
	Pos   lexer.Position
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%d:%d: empty cell", e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%d:%d: bad cell %q", e.Pos.Line, e.Pos.Column, e.Token)
}

type InvalidModeError struct {
	Word  int64
	Digit int64
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %d in instruction %d", e.Digit, e.Word)
}

type InvalidWriteTargetError struct {
	PC    int64
	Param int
}

func (e *InvalidWriteTargetError) Error() string {
	return fmt.Sprintf("immediate write target at pc %d param %d", e.PC, e.Param)
}

type UnknownOpcodeError struct {
	PC     int64
	Opcode int64
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %d at pc %d", e.Opcode, e.PC)
}

type AddressError struct {
	PC      int64
	Address int64
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("negative address %d at pc %d", e.Address, e.PC)
}
