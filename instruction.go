package intcode

import (
	"fmt"
	"strings"
)

type Mode int64

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "pos"
	case Immediate:
		return "imm"
	case Relative:
		return "rel"
	default:
		return fmt.Sprintf("mode(%d)", int64(m))
	}
}

const (
	OpAdd        = 1
	OpMultiply   = 2
	OpInput      = 3
	OpOutput     = 4
	OpJumpTrue   = 5
	OpJumpFalse  = 6
	OpLessThan   = 7
	OpEquals     = 8
	OpAdjustBase = 9
	OpHalt       = 99
)

var mnemonics = map[int64]string{
	OpAdd:        "add",
	OpMultiply:   "mul",
	OpInput:      "in",
	OpOutput:     "out",
	OpJumpTrue:   "jt",
	OpJumpFalse:  "jf",
	OpLessThan:   "lt",
	OpEquals:     "eq",
	OpAdjustBase: "rb",
	OpHalt:       "halt",
}

var arity = map[int64]int{
	OpAdd:        3,
	OpMultiply:   3,
	OpInput:      1,
	OpOutput:     1,
	OpJumpTrue:   2,
	OpJumpFalse:  2,
	OpLessThan:   3,
	OpEquals:     3,
	OpAdjustBase: 1,
	OpHalt:       0,
}

type Instruction struct {
	Opcode int64
	Modes  [3]Mode
}

// Decode splits an instruction word into its opcode, the two low decimal
// digits, and one mode per parameter slot, least significant digit first.
func Decode(word int64) (Instruction, error) {
	in := Instruction{Opcode: word % 100}
	rest := word / 100
	for i := range in.Modes {
		digit := rest % 10
		switch Mode(digit) {
		case Position, Immediate, Relative:
			in.Modes[i] = Mode(digit)
		default:
			return Instruction{}, &InvalidModeError{Word: word, Digit: digit}
		}
		rest /= 10
	}
	return in, nil
}

// Arity is the number of parameters following the opcode, or -1 when the
// opcode is unknown.
func (in Instruction) Arity() int {
	n, ok := arity[in.Opcode]
	if !ok {
		return -1
	}
	return n
}

func (in Instruction) String() string {
	name, ok := mnemonics[in.Opcode]
	if !ok {
		return fmt.Sprintf("op(%d)", in.Opcode)
	}
	n := in.Arity()
	if n == 0 {
		return name
	}
	modes := make([]string, n)
	for i := range modes {
		modes[i] = in.Modes[i].String()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(modes, ","))
}

// Format renders the instruction with its raw parameters: [a] for position,
// a for immediate and [rb+a] for relative.
func (in Instruction) Format(params []int64) string {
	name, ok := mnemonics[in.Opcode]
	if !ok {
		return fmt.Sprintf("op(%d)", in.Opcode)
	}
	res := &strings.Builder{}
	res.WriteString(name)
	for i, p := range params {
		if i == 0 {
			res.WriteString(" ")
		} else {
			res.WriteString(", ")
		}
		switch in.Modes[i] {
		case Immediate:
			fmt.Fprintf(res, "%d", p)
		case Relative:
			fmt.Fprintf(res, "[rb%+d]", p)
		default:
			fmt.Fprintf(res, "[%d]", p)
		}
	}
	return res.String()
}

// Disassemble renders the memory image as a linear listing starting at 0.
// Words that do not decode to a known instruction are listed as data.
func Disassemble(mem Memory) []string {
	lines := []string{}
	end := mem.Len()
	for pc := int64(0); pc < end; {
		word := mem.Read(pc)
		in, err := Decode(word)
		n := in.Arity()
		if err != nil || n < 0 || pc+int64(n) >= end {
			lines = append(lines, fmt.Sprintf("%d: data %d", pc, word))
			pc++
			continue
		}
		params := make([]int64, n)
		for i := range params {
			params[i] = mem.Read(pc + 1 + int64(i))
		}
		lines = append(lines, fmt.Sprintf("%d: %s", pc, in.Format(params)))
		pc += 1 + int64(n)
	}
	return lines
}
