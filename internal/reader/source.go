package reader

import "lyread/internal/token"

// Source is a forward-only token cursor that tracks its own nesting depth.
// Depth must reflect the state after the most recently returned token.
type Source interface {
	// Next returns the next token; a token of kind EOF marks exhaustion.
	Next() token.Token
	Depth() int
}

// SliceSource replays a pre-tokenized stream with recorded depths.
type SliceSource struct {
	toks   []token.Token
	depths []int
	pos    int
	depth  int
}

// NewSliceSource returns a Source over toks where depths[i] is the depth
// after toks[i] has been returned. start is the depth before the first token.
func NewSliceSource(toks []token.Token, depths []int, start int) *SliceSource {
	if len(depths) != len(toks) {
		panic("reader: tokens and depths differ in length")
	}
	return &SliceSource{toks: toks, depths: depths, depth: start}
}

func (s *SliceSource) Next() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	t := s.toks[s.pos]
	s.depth = s.depths[s.pos]
	s.pos++
	return t
}

func (s *SliceSource) Depth() int { return s.depth }

// Pos returns how many tokens have been pulled.
func (s *SliceSource) Pos() int { return s.pos }
