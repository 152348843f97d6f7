package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intcode"
)

func writeProgram(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRunWithInputs(t *testing.T) {
	cfg := config{
		program: writeProgram(t, "3,9,8,9,10,9,4,9,99,-1,8\n"),
		inputs:  []int64{8},
	}
	stdout := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader(""), stdout, io.Discard))
	assert.Equal(t, "1\n", stdout.String())
}

func TestRunReadsStdinWhenWaiting(t *testing.T) {
	cfg := config{program: writeProgram(t, "3,20,4,20,3,20,4,20,99")}
	stdout := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader("5\n\n6\n"), stdout, io.Discard))
	assert.Equal(t, "5\n6\n", stdout.String())
}

func TestRunInputExhausted(t *testing.T) {
	cfg := config{program: writeProgram(t, "3,0,99")}
	err := run(cfg, strings.NewReader(""), io.Discard, io.Discard)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestRunPoke(t *testing.T) {
	cfg := config{
		program: writeProgram(t, "4,0,99"),
		pokes:   []string{"0=4", "1 = 2"},
	}
	stdout := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader(""), stdout, io.Discard))
	assert.Equal(t, "99\n", stdout.String())

	cfg.pokes = []string{"nope"}
	assert.Error(t, run(cfg, strings.NewReader(""), io.Discard, io.Discard))
}

func TestRunStrictAndLenient(t *testing.T) {
	cfg := config{program: writeProgram(t, "104,x,7,99")}
	err := run(cfg, strings.NewReader(""), io.Discard, io.Discard)
	var target *intcode.ParseError
	require.True(t, errors.As(err, &target))

	cfg.lenient = true
	stdout := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader(""), stdout, io.Discard))
	assert.Equal(t, "7\n", stdout.String())
}

func TestRunTraceAndDisasm(t *testing.T) {
	cfg := config{program: writeProgram(t, "1,0,0,0,99"), trace: true}
	stderr := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader(""), io.Discard, stderr))
	assert.Equal(t, "0\t0\tadd [0], [0], [0]\n4\t0\thalt\n", stderr.String())

	cfg = config{program: cfg.program, disasm: true}
	stdout := &bytes.Buffer{}
	require.NoError(t, run(cfg, strings.NewReader(""), stdout, io.Discard))
	assert.Equal(t, "0: add [0], [0], [0]\n4: halt\n", stdout.String())
}

func TestRunDroidWithoutOxygen(t *testing.T) {
	cfg := config{program: writeProgram(t, "3,100,104,0,1105,1,0"), droid: true}
	err := run(cfg, strings.NewReader(""), io.Discard, io.Discard)
	assert.Error(t, err)
}
