package intcode

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var programLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Junk", Pattern: `[^,\s]+`},
})

var programParser = participle.MustBuild[Source](
	participle.Lexer(programLexer),
	participle.Elide("Whitespace"),
)

// Source is the token stream of a program text.
type Source struct {
	Tokens []*Token `@@*`
}

type Token struct {
	Pos   lexer.Position
	Comma bool   `  @","`
	Text  string `| @(Int | Junk)`
}

type cell struct {
	pos   lexer.Position
	parts []string
}

func (c cell) value() (int64, bool) {
	if len(c.parts) != 1 {
		return 0, false
	}
	n, err := strconv.ParseInt(c.parts[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Source) cells() []cell {
	if len(s.Tokens) == 0 {
		return nil
	}
	cells := []cell{{pos: s.Tokens[0].Pos}}
	for _, tok := range s.Tokens {
		cur := &cells[len(cells)-1]
		if tok.Comma {
			cells = append(cells, cell{pos: tok.Pos})
			continue
		}
		if len(cur.parts) == 0 {
			cur.pos = tok.Pos
		}
		cur.parts = append(cur.parts, tok.Text)
	}
	return cells
}

func parse(text string) ([]cell, error) {
	src, err := programParser.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(err, "parse program")
	}
	return src.cells(), nil
}

// Load parses comma separated integers into consecutive addresses starting
// at 0. Any cell that is not exactly one integer fails with *ParseError.
func Load(text string) (Memory, error) {
	cells, err := parse(text)
	if err != nil {
		return nil, err
	}
	words := make([]int64, 0, len(cells))
	for _, c := range cells {
		n, ok := c.value()
		if !ok {
			return nil, &ParseError{Pos: c.pos, Token: strings.Join(c.parts, "")}
		}
		words = append(words, n)
	}
	return NewMemory(words...), nil
}

// LoadLenient is Load that drops malformed cells instead of failing. The
// remaining integers still occupy consecutive addresses.
func LoadLenient(text string) Memory {
	cells, err := parse(text)
	if err != nil {
		return Memory{}
	}
	words := make([]int64, 0, len(cells))
	for _, c := range cells {
		if n, ok := c.value(); ok {
			words = append(words, n)
		}
	}
	return NewMemory(words...)
}
