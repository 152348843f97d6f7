package intcode

import (
	"io"

	"github.com/pkg/errors"
)

// Stepper is a program driven one input at a time.
type Stepper interface {
	Step(input int64) error
	Output() int64
	Fork() Stepper
}

// Machine owns a program's memory and its resumable state between execution
// segments.
type Machine struct {
	// Trace, when set, receives one line per executed instruction.
	Trace io.Writer

	mem     Memory
	status  ExitStatus
	started bool
	outputs []int64
	err     error
}

func NewMachine(mem Memory) *Machine {
	if mem == nil {
		mem = Memory{}
	}
	return &Machine{mem: mem}
}

// Memory is the live memory of the machine; writes are seen by the next Run.
func (m *Machine) Memory() Memory {
	return m.mem
}

func (m *Machine) State() State {
	return State{Mem: m.mem, PC: m.status.PC, RelativeBase: m.status.RelativeBase}
}

func (m *Machine) Status() ExitStatus {
	return m.status
}

func (m *Machine) Finished() bool {
	return m.status.Finished()
}

// Outputs of the latest segment.
func (m *Machine) Outputs() []int64 {
	return m.outputs
}

// Output is the last value of the latest segment, or 0 if it produced none.
func (m *Machine) Output() int64 {
	if len(m.outputs) == 0 {
		return 0
	}
	return m.outputs[len(m.outputs)-1]
}

// Run starts the program on the first call and resumes it afterwards,
// returning what the segment produced.
func (m *Machine) Run(inputs ...int64) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.started {
		if err := resumable(m.status); err != nil {
			return nil, err
		}
	}
	m.started = true
	mem, status, outputs, err := execute(m.State(), inputs, m.Trace)
	m.mem, m.status, m.outputs = mem, status, outputs
	if err != nil {
		m.err = errors.Wrap(err, "run")
		return outputs, m.err
	}
	return outputs, nil
}

func (m *Machine) Step(input int64) error {
	_, err := m.Run(input)
	return err
}

// Clone returns a machine with a deep copy of the memory and the same
// execution state. Trace is not copied.
func (m *Machine) Clone() *Machine {
	outputs := make([]int64, len(m.outputs))
	copy(outputs, m.outputs)
	return &Machine{
		mem:     m.mem.Clone(),
		status:  m.status,
		started: m.started,
		outputs: outputs,
		err:     m.err,
	}
}

func (m *Machine) Fork() Stepper {
	return m.Clone()
}
