package schema

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

/*
The tokenizer for schema text. It skips whitespace and comments and then yields
one of:
* an identifier: the maximal run of letters, digits, and underscores. Numbers
  are identifier-shaped too and are interpreted by the parser.
* a string literal delimited by matching single or double quotes. There is no
  escape processing.
* any other single character.

An unterminated block comment runs to the end of input. An unterminated string
literal is an error.

Tokenizer implements participle's lexer.Lexer, and lexerDefinition plugs it into
the grammar.
*/

////////////////////////////////////////////////////////////////////////////////

// Token types produced by the tokenizer.
const (
	IdentToken lexer.TokenType = -(iota + 2)
	StringToken
	PunctToken
)

// Tokenizer yields schema tokens from source text.
type Tokenizer struct {
	filename string
	src      string
	off      int
	line     int
	col      int
}

// NewTokenizer returns a tokenizer over src. filename is used in positions.
func NewTokenizer(filename string, src string) *Tokenizer {
	return &Tokenizer{filename: filename, src: src, line: 1, col: 1}
}

func (t *Tokenizer) pos() lexer.Position {
	return lexer.Position{Filename: t.filename, Offset: t.off, Line: t.line, Column: t.col}
}

func (t *Tokenizer) advance(n int) {
	for _, r := range t.src[t.off : t.off+n] {
		if r == '\n' {
			t.line++
			t.col = 1
		} else {
			t.col++
		}
	}
	t.off += n
}

func (t *Tokenizer) skipWhitespace() {
	for t.off < len(t.src) {
		rest := t.src[t.off:]
		trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
		if len(trimmed) != len(rest) {
			t.advance(len(rest) - len(trimmed))
			continue
		}
		switch {
		case strings.HasPrefix(rest, "//"):
			n := strings.IndexAny(rest, "\r\n")
			if n < 0 {
				n = len(rest)
			}
			t.advance(n)
		case strings.HasPrefix(rest, "/*"):
			n := strings.Index(rest[2:], "*/")
			if n < 0 {
				t.advance(len(rest))
			} else {
				t.advance(n + 4)
			}
		default:
			return
		}
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Next returns the next token, or a token of type lexer.EOF at end of input.
func (t *Tokenizer) Next() (lexer.Token, error) {
	t.skipWhitespace()
	pos := t.pos()
	if t.off >= len(t.src) {
		return lexer.Token{Type: lexer.EOF, Pos: pos}, nil
	}
	rest := t.src[t.off:]
	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case r == '"' || r == '\'':
		end := strings.IndexRune(rest[size:], r)
		if end < 0 {
			return lexer.Token{}, &Error{
				Pos:    toPosition(pos),
				Err:    ErrUnterminatedString,
				Detail: fmt.Sprintf("missing closing %c", r),
			}
		}
		value := rest[size : size+end]
		t.advance(end + 2*size)
		return lexer.Token{Type: StringToken, Value: value, Pos: pos}, nil
	case isIdentRune(r):
		n := strings.IndexFunc(rest, func(r rune) bool { return !isIdentRune(r) })
		if n < 0 {
			n = len(rest)
		}
		t.advance(n)
		return lexer.Token{Type: IdentToken, Value: rest[:n], Pos: pos}, nil
	default:
		t.advance(size)
		return lexer.Token{Type: PunctToken, Value: rest[:size], Pos: pos}, nil
	}
}

func toPosition(p lexer.Position) Position {
	return Position{File: p.Filename, Line: p.Line, Column: p.Column}
}

type lexerDefinition struct{}

func (lexerDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":    lexer.EOF,
		"Ident":  IdentToken,
		"String": StringToken,
		"Punct":  PunctToken,
	}
}

func (lexerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return NewTokenizer(filename, string(b)), nil
}

func (lexerDefinition) LexString(filename string, input string) (lexer.Lexer, error) {
	return NewTokenizer(filename, input), nil
}

func (lexerDefinition) LexBytes(filename string, input []byte) (lexer.Lexer, error) {
	return NewTokenizer(filename, string(input)), nil
}
