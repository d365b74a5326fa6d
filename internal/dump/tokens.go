package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lyread/internal/source"
	"lyread/internal/token"
)

// TokenNode is the serializable form of a token together with the source
// depth after it was produced.
type TokenNode struct {
	Kind    string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Text    string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Span    source.Span `json:"span" yaml:"span" msgpack:"span"`
	Pos     Pos         `json:"pos" yaml:"pos" msgpack:"pos"`
	Depth   int         `json:"depth" yaml:"depth" msgpack:"depth"`
	Leading []string    `json:"leading,omitempty" yaml:"leading,omitempty" msgpack:"leading,omitempty"`
}

// Tokens converts toks; depths[i] belongs to toks[i].
func (c Converter) Tokens(toks []token.Token, depths []int) []TokenNode {
	out := make([]TokenNode, 0, len(toks))
	for i, tok := range toks {
		n := TokenNode{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
			Pos:  c.pos(tok.Span),
		}
		if i < len(depths) {
			n.Depth = depths[i]
		}
		for _, tr := range tok.Leading {
			n.Leading = append(n.Leading, tr.Kind.String())
		}
		out = append(out, n)
	}
	return out
}

// TokensPretty prints one token per line:
// "  1: Note            "c" at 1:1 depth 1 (leading: Space)".
func TokensPretty(w io.Writer, toks []TokenNode, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	p := newPalette(opts.Color)
	for i, t := range toks {
		fmt.Fprintf(bw, "%3d: %s", i+1, p.kind.Sprintf("%-18s", t.Kind))
		if t.Text != "" {
			fmt.Fprint(bw, " ", p.text.Sprint(opts.quote(t.Text)))
		}
		fmt.Fprint(bw, " at ", p.pos.Sprintf("%d:%d", t.Pos.Line, t.Pos.Col))
		fmt.Fprint(bw, p.dim.Sprintf(" depth %d", t.Depth))
		if len(t.Leading) > 0 {
			fmt.Fprintf(bw, " (leading: %s)", strings.Join(t.Leading, ", "))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
