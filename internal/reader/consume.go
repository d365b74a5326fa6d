package reader

import (
	"iter"

	"lyread/internal/token"
)

// Consume yields the tokens until the region entered by the last token is left.
//
// The depth is recorded before the first pull and re-read after every yielded
// token; the token that makes it drop below the recorded depth is the last one
// yielded. An exhausted source simply ends the sequence.
func Consume(src Source) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		depth := src.Depth()
		for {
			t := src.Next()
			if t.Kind.IsEOF() {
				return
			}
			if !yield(t) {
				return
			}
			if src.Depth() < depth {
				return
			}
		}
	}
}

func collect(src Source) []token.Token {
	var toks []token.Token
	for t := range Consume(src) {
		toks = append(toks, t)
	}
	return toks
}
