// Command intcode runs an Intcode program from a file.
//
// Inputs given with --input are fed first. When the program asks for more,
// integers are read from standard input one per line. Every output is printed
// on its own line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"intcode"
	"intcode/droid"
)

type config struct {
	program string
	inputs  []int64
	pokes   []string
	lenient bool
	trace   bool
	disasm  bool
	droid   bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("intcode: ")

	var cfg config
	pflag.StringVarP(&cfg.program, "program", "p", "", "program file, comma separated integers")
	pflag.Int64SliceVarP(&cfg.inputs, "input", "i", nil, "inputs fed before reading standard input")
	pflag.StringArrayVar(&cfg.pokes, "poke", nil, "addr=value written to memory before start (repeatable)")
	pflag.BoolVar(&cfg.lenient, "lenient", false, "skip malformed cells instead of failing")
	pflag.BoolVarP(&cfg.trace, "trace", "t", false, "print every executed instruction to standard error")
	pflag.BoolVar(&cfg.disasm, "disasm", false, "print a disassembly and exit")
	pflag.BoolVar(&cfg.droid, "droid", false, "explore the repair droid maze and report route lengths")
	pflag.Parse()

	if cfg.program == "" && pflag.NArg() > 0 {
		cfg.program = pflag.Arg(0)
	}
	if cfg.program == "" {
		pflag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func load(cfg config) (intcode.Memory, error) {
	text, err := os.ReadFile(cfg.program)
	if err != nil {
		return nil, errors.Wrap(err, "read program")
	}
	var mem intcode.Memory
	if cfg.lenient {
		mem = intcode.LoadLenient(string(text))
	} else if mem, err = intcode.Load(string(text)); err != nil {
		return nil, errors.Wrap(err, cfg.program)
	}
	for _, poke := range cfg.pokes {
		addr, value, err := parsePoke(poke)
		if err != nil {
			return nil, err
		}
		mem.Write(addr, value)
	}
	return mem, nil
}

func parsePoke(poke string) (int64, int64, error) {
	a, v, ok := strings.Cut(poke, "=")
	if !ok {
		return 0, 0, errors.Errorf("poke %q: want addr=value", poke)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	if err != nil || addr < 0 {
		return 0, 0, errors.Errorf("poke %q: bad address", poke)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "poke %q", poke)
	}
	return addr, value, nil
}

func run(cfg config, stdin io.Reader, stdout, stderr io.Writer) error {
	mem, err := load(cfg)
	if err != nil {
		return err
	}
	if cfg.disasm {
		for _, line := range intcode.Disassemble(mem) {
			fmt.Fprintln(stdout, line)
		}
		return nil
	}

	m := intcode.NewMachine(mem)
	if cfg.droid {
		return explore(m, stdout)
	}
	if cfg.trace {
		m.Trace = stderr
	}

	scanner := bufio.NewScanner(stdin)
	inputs := cfg.inputs
	for {
		outputs, err := m.Run(inputs...)
		for _, v := range outputs {
			fmt.Fprintln(stdout, v)
		}
		if err != nil {
			return err
		}
		if m.Finished() {
			return nil
		}
		inputs, err = readInput(scanner)
		if err != nil {
			return errors.Wrapf(err, "program %s", m.Status())
		}
	}
}

func readInput(scanner *bufio.Scanner) ([]int64, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "input %q", line)
		}
		return []int64{n}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func explore(m *intcode.Machine, stdout io.Writer) error {
	world, err := droid.Explore(context.Background(), m)
	if err != nil {
		return err
	}
	path, err := droid.ShortestPath(world)
	if err != nil {
		return err
	}
	minutes, err := droid.FillTime(world)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "shortest path: %d\nfill time: %d\n", path, minutes)
	return nil
}
