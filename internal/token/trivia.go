package token

import "lyread/internal/source"

// TriviaKind classifies insignificant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	default:
		return "Trivia(?)"
	}
}

// Trivia is whitespace preceding a significant token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
