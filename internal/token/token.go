// Package token defines the tagged token variants produced by the
// tree-source tokenizer (internal/lexer) and consumed by the parser.
package token

import (
	"strings"

	"github.com/bulloak-go/bulloak/internal/source"
)

// Kind is the tag of a Token.
type Kind uint8

const (
	// Invalid marks a token the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of input.
	EOF
	// Tee is the '├' branch bullet.
	Tee
	// Corner is the '└' branch bullet.
	Corner
	// When is the case-insensitive 'when' keyword.
	When
	// Given is the case-insensitive 'given' keyword.
	Given
	// It is the case-insensitive 'it' keyword.
	It
	// Word is a maximal run of identifier-like characters at line start,
	// used for root contract/function identifiers.
	Word
	// String is remainder-of-line text captured in title mode.
	String
	// Break is one or more consecutive newlines.
	Break
	// DoubleColon is the '::' root separator between contract and function.
	DoubleColon
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Tee:
		return "Tee"
	case Corner:
		return "Corner"
	case When:
		return "When"
	case Given:
		return "Given"
	case It:
		return "It"
	case Word:
		return "Word"
	case String:
		return "String"
	case Break:
		return "Break"
	case DoubleColon:
		return "DoubleColon"
	default:
		return "Unknown"
	}
}

// Token is a single lexed unit with its source span and exact lexeme.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsCondition reports whether the token kind starts a Condition branch.
func (k Kind) IsCondition() bool {
	return k == When || k == Given
}

// BlankLines reports how many fully blank lines a Break token's text
// spans: zero for an ordinary line-ending newline, one or more when the
// break crossed empty lines too. Only meaningful for Kind == Break.
func (t Token) BlankLines() int {
	n := strings.Count(t.Text, "\n") - 1
	if n < 0 {
		return 0
	}
	return n
}
