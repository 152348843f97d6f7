package intcode

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

type RunState int

const (
	Running RunState = iota
	WaitingForInput
	Finished
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForInput:
		return "waiting for input"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ExitStatus is how an execution segment ended. For WaitingForInput, PC
// points at the input instruction that could not be executed.
type ExitStatus struct {
	State        RunState
	PC           int64
	RelativeBase int64
}

func (s ExitStatus) Finished() bool {
	return s.State == Finished
}

func (s ExitStatus) Waiting() bool {
	return s.State == WaitingForInput
}

func (s ExitStatus) String() string {
	if s.State == WaitingForInput {
		return fmt.Sprintf("%s at pc %d base %d", s.State, s.PC, s.RelativeBase)
	}
	return s.State.String()
}

type State struct {
	Mem          Memory
	PC           int64
	RelativeBase int64
}

type cpu struct {
	state   State
	inputs  []int64
	outputs []int64
	trace   io.Writer
}

func (c *cpu) param(i int) int64 {
	return c.state.Mem.Read(c.state.PC + 1 + int64(i))
}

func (c *cpu) address(in Instruction, i int) (int64, error) {
	p := c.param(i)
	var addr int64
	switch in.Modes[i] {
	case Immediate:
		return 0, &InvalidWriteTargetError{PC: c.state.PC, Param: i}
	case Relative:
		addr = c.state.RelativeBase + p
	default:
		addr = p
	}
	if addr < 0 {
		return 0, &AddressError{PC: c.state.PC, Address: addr}
	}
	return addr, nil
}

func (c *cpu) value(in Instruction, i int) (int64, error) {
	if in.Modes[i] == Immediate {
		return c.param(i), nil
	}
	addr, err := c.address(in, i)
	if err != nil {
		return 0, err
	}
	return c.state.Mem.Read(addr), nil
}

func (c *cpu) values(in Instruction, n int) ([]int64, error) {
	vals := make([]int64, n)
	for i := range vals {
		v, err := c.value(in, i)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (c *cpu) store(in Instruction, i int, v int64) error {
	addr, err := c.address(in, i)
	if err != nil {
		return err
	}
	c.state.Mem.Write(addr, v)
	return nil
}

func (c *cpu) tracef(in Instruction) {
	n := in.Arity()
	if c.trace == nil || n < 0 {
		return
	}
	params := make([]int64, n)
	for i := range params {
		params[i] = c.param(i)
	}
	fmt.Fprintf(c.trace, "%d\t%d\t%s\n", c.state.PC, c.state.RelativeBase, in.Format(params))
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (c *cpu) run() (ExitStatus, error) {
	for {
		s := &c.state
		if s.PC < 0 {
			return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, &AddressError{PC: s.PC, Address: s.PC}
		}
		in, err := Decode(s.Mem.Read(s.PC))
		if err != nil {
			return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, errors.Wrapf(err, "pc %d", s.PC)
		}
		c.tracef(in)
		switch in.Opcode {
		case OpAdd, OpMultiply, OpLessThan, OpEquals:
			vals, err := c.values(in, 2)
			if err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			var v int64
			switch in.Opcode {
			case OpAdd:
				v = vals[0] + vals[1]
			case OpMultiply:
				v = vals[0] * vals[1]
			case OpLessThan:
				v = boolWord(vals[0] < vals[1])
			case OpEquals:
				v = boolWord(vals[0] == vals[1])
			}
			if err := c.store(in, 2, v); err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			s.PC += 4
		case OpInput:
			if len(c.inputs) == 0 {
				return ExitStatus{State: WaitingForInput, PC: s.PC, RelativeBase: s.RelativeBase}, nil
			}
			if err := c.store(in, 0, c.inputs[0]); err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			c.inputs = c.inputs[1:]
			s.PC += 2
		case OpOutput:
			v, err := c.value(in, 0)
			if err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			c.outputs = append(c.outputs, v)
			s.PC += 2
		case OpJumpTrue, OpJumpFalse:
			vals, err := c.values(in, 2)
			if err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			if (vals[0] != 0) == (in.Opcode == OpJumpTrue) {
				s.PC = vals[1]
			} else {
				s.PC += 3
			}
		case OpAdjustBase:
			v, err := c.value(in, 0)
			if err != nil {
				return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, err
			}
			s.RelativeBase += v
			s.PC += 2
		case OpHalt:
			return ExitStatus{State: Finished, PC: s.PC, RelativeBase: s.RelativeBase}, nil
		default:
			return ExitStatus{PC: s.PC, RelativeBase: s.RelativeBase}, &UnknownOpcodeError{PC: s.PC, Opcode: in.Opcode}
		}
	}
}

func execute(state State, inputs []int64, trace io.Writer) (Memory, ExitStatus, []int64, error) {
	if state.Mem == nil {
		state.Mem = Memory{}
	}
	c := &cpu{
		state:   state,
		inputs:  inputs,
		outputs: []int64{},
		trace:   trace,
	}
	status, err := c.run()
	return c.state.Mem, status, c.outputs, err
}

// Execute runs mem from pc with the given relative base until the program
// halts, needs an input that was not supplied, or fails. Memory is mutated in
// place and returned. Outputs hold only what this segment produced.
func Execute(mem Memory, pc, base int64, inputs []int64) (Memory, ExitStatus, []int64, error) {
	return execute(State{Mem: mem, PC: pc, RelativeBase: base}, inputs, nil)
}

func Start(mem Memory, inputs []int64) (Memory, ExitStatus, []int64, error) {
	return Execute(mem, 0, 0, inputs)
}

func Resume(mem Memory, status ExitStatus, inputs []int64) (Memory, ExitStatus, []int64, error) {
	if err := resumable(status); err != nil {
		return mem, status, []int64{}, err
	}
	return Execute(mem, status.PC, status.RelativeBase, inputs)
}

func resumable(status ExitStatus) error {
	switch status.State {
	case WaitingForInput:
		return nil
	case Finished:
		return ErrResumeAfterFinish
	default:
		return ErrNotSuspended
	}
}
