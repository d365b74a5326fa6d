// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lyread/internal/document"
	"lyread/internal/item"
	"lyread/internal/source"
	"lyread/internal/token"
)

// CheckTokens verifies that tokens lie inside the file in strictly
// increasing, non-overlapping order, that each token's text is the source
// text of its span and that depths[i] >= 1.
func CheckTokens(sf *source.File, toks []token.Token, depths []int) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(depths) != len(toks) {
		return fmt.Errorf("%d tokens but %d depths", len(toks), len(depths))
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		switch {
		case sp.File != sf.ID:
			return fmt.Errorf("token %d (%s): file %d, want %d", i, tok.Kind, sp.File, sf.ID)
		case sp.Empty():
			return fmt.Errorf("token %d (%s): empty span %v", i, tok.Kind, sp)
		case sp.End > size:
			return fmt.Errorf("token %d (%s): span %v beyond content (%d bytes)", i, tok.Kind, sp, size)
		case sp.Start < prevEnd:
			return fmt.Errorf("token %d (%s): span %v overlaps previous end %d", i, tok.Kind, sp, prevEnd)
		case tok.Text != sf.Text(sp):
			return fmt.Errorf("token %d (%s): text %q differs from source %q", i, tok.Kind, tok.Text, sf.Text(sp))
		case depths[i] < 1:
			return fmt.Errorf("token %d (%s): depth %d below top level", i, tok.Kind, depths[i])
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckCoverage verifies that leading trivia and tokens tile the file
// without gaps; only trailing whitespace may be left over.
func CheckCoverage(sf *source.File, toks []token.Token) error {
	var off uint32
	for i, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Span.Start != off {
				return fmt.Errorf("token %d: trivia starts at %d, want %d", i, tr.Span.Start, off)
			}
			off = tr.Span.End
		}
		if tok.Span.Start != off {
			return fmt.Errorf("token %d (%s): starts at %d, want %d (gap %q)",
				i, tok.Kind, tok.Span.Start, off, sf.Text(source.Span{File: sf.ID, Start: off, End: tok.Span.Start}))
		}
		off = tok.Span.End
	}
	for _, b := range sf.Content[off:] {
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			return fmt.Errorf("unconsumed content at %d: %q", off, sf.Content[off:])
		}
	}
	return nil
}

// CheckItemOrder verifies that the tokens of items, flattened in yield
// order, appear in strictly increasing source order.
func CheckItemOrder(items []item.Item) error {
	var (
		prev    source.Span
		hasPrev bool
	)
	for i, it := range items {
		for _, tok := range item.AllTokens(it) {
			if hasPrev && tok.Span.Start < prev.End {
				return fmt.Errorf("item %d (%s): token %q at %v precedes %v", i, it.Kind(), tok.Text, tok.Span, prev)
			}
			prev, hasPrev = tok.Span, true
		}
	}
	return nil
}

// CheckItemsCover verifies that items account for every token exactly once,
// which holds when nothing is dropped.
func CheckItemsCover(items []item.Item, toks []token.Token) error {
	var n int
	for i, it := range items {
		for _, tok := range item.AllTokens(it) {
			if n >= len(toks) {
				return fmt.Errorf("item %d (%s): more tokens than the source produced", i, it.Kind())
			}
			if tok.Span != toks[n].Span || tok.Kind != toks[n].Kind {
				return fmt.Errorf("item %d (%s): token %d is %s %v, want %s %v",
					i, it.Kind(), n, tok.Kind, tok.Span, toks[n].Kind, toks[n].Span)
			}
			n++
		}
	}
	if n != len(toks) {
		return fmt.Errorf("items hold %d tokens, source produced %d", n, len(toks))
	}
	return nil
}

// CheckDocument verifies that every item reachable from doc is stamped with
// its handle.
func CheckDocument(doc *document.Document) error {
	for it := range doc.Walk() {
		if it.Document() != doc.ID {
			tok, _ := it.Token()
			return fmt.Errorf("%s %q at %v is not attached to %s", it.Kind(), tok.Text, tok.Span, doc.ID)
		}
	}
	return nil
}
