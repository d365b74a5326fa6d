package token

import (
	"strings"

	"lyread/internal/source"
)

// EscapePrefix starts an escape sequence inside a string literal.
const EscapePrefix = '\\'

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsComment reports whether the token is any kind of comment.
func (t Token) IsComment() bool { return t.Kind.Is(Comment) }

// IsEscape reports whether the token is an escaped character whose text
// starts with the escape prefix.
func (t Token) IsEscape() bool {
	return t.Kind.Is(Character) && strings.HasPrefix(t.Text, string(EscapePrefix))
}

// Opens reports whether the token opens a music container.
func (t Token) Opens() bool {
	switch t.Kind {
	case SequentialStart, SimultaneousStart, ChordStart:
		return true
	default:
		return false
	}
}

// Closes reports whether the token closes a music container.
func (t Token) Closes() bool {
	switch t.Kind {
	case SequentialEnd, SimultaneousEnd, ChordEnd:
		return true
	default:
		return false
	}
}

// Closer returns the kind that closes a container opened by k.
func Closer(k Kind) (Kind, bool) {
	switch k {
	case SequentialStart:
		return SequentialEnd, true
	case SimultaneousStart:
		return SimultaneousEnd, true
	case ChordStart:
		return ChordEnd, true
	default:
		return Invalid, false
	}
}
