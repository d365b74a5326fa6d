package reader

import (
	"iter"
	"strings"

	"lyread/internal/item"
	"lyread/internal/token"
)

// Read yields Item instances reading from src. The sequence pulls from src
// only when the next item is requested and can be iterated once.
func Read(src Source, opts ...Option) iter.Seq[item.Item] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(yield func(item.Item) bool) {
		for {
			t := src.Next()
			if t.Kind.IsEOF() {
				return
			}
			it := cfg.classify(src, t)
			if it == nil {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// classify builds the item fronted by t, consuming its region when t opens one.
// It returns nil for dropped tokens.
func (cfg *config) classify(src Source, t token.Token) item.Item {
	c := t.Kind
	switch {
	case c == token.SchemeStart:
		it := &item.SchemeValue{}
		it.SetToken(t)
		it.SetTokens(collect(src))
		return it
	case c.Is(token.BlockCommentStart):
		it := &item.Comment{}
		it.SetToken(t)
		it.SetTokens(collect(src))
		return it
	case c.Is(token.Comment):
		it := &item.Comment{}
		it.SetToken(t)
		return it
	case c.Is(token.StringStart):
		it := &item.StringValue{}
		it.SetToken(t)
		it.SetTokens(collect(src))
		it.Value = DecodeString(it.Tokens())
		return it
	case c == token.SequentialStart || c == token.SimultaneousStart:
		it := &item.Music{Simultaneous: c == token.SimultaneousStart}
		it.SetToken(t)
		return it
	case c == token.ChordStart:
		it := &item.Chord{}
		it.SetToken(t)
		return it
	case c == token.Note:
		it := &item.Note{}
		it.SetToken(t)
		return it
	case c.Is(token.Rest):
		it := &item.Rest{}
		it.SetToken(t)
		return it
	case c == token.Skip:
		it := &item.Skip{}
		it.SetToken(t)
		return it
	case c.Is(token.Duration):
		it := &item.Duration{}
		it.SetToken(t)
		return it
	}

	if cfg.dropUnknown && !t.Closes() {
		if cfg.logger != nil {
			cfg.logger.Debug("dropping unrecognized token", "kind", t.Kind.String(), "text", t.Text, "span", t.Span.String())
		}
		return nil
	}
	it := &item.Token{}
	it.SetToken(t)
	return it
}

// DecodeString joins the interior tokens of a string, i.e. all but the last
// (closing) token. Escape tokens lose their leading prefix; nothing else is
// unescaped.
func DecodeString(toks []token.Token) string {
	if len(toks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range toks[:len(toks)-1] {
		if t.IsEscape() {
			b.WriteString(t.Text[1:])
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
