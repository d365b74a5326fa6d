package document

import (
	"iter"

	"lyread/internal/diag"
	"lyread/internal/item"
	"lyread/internal/source"
	"lyread/internal/token"
)

// open is a container waiting for its closing token.
type open struct {
	c     item.Container
	close token.Kind
}

type builder struct {
	doc      *Document
	reporter diag.Reporter
	stack    []open
	// lastDurable is the durable a following Duration attaches to; it is
	// cleared by anything that is not a duration.
	lastDurable item.Durable
}

// Build drains items into doc. Every item is stamped with doc.ID; items
// between an opening Music or Chord and its closing token become children of
// that container; the closing token stays a child as well. Durations attach
// to the directly preceding note, rest, skip or chord; a second duration (a
// scaling) attaches to the same item only if the first one was attached.
func Build(doc *Document, items iter.Seq[item.Item], reporter diag.Reporter) {
	b := &builder{doc: doc, reporter: reporter}
	for it := range items {
		b.add(it)
	}
	for i := len(b.stack) - 1; i >= 0; i-- {
		lead, _ := b.stack[i].c.Token()
		b.report(diag.DocUnclosed, lead.Span, "container opened by "+lead.Text+" is never closed")
	}
	b.stack = nil
}

func (b *builder) add(it item.Item) {
	item.Attach(it, b.doc.ID)

	if d, ok := it.(*item.Duration); ok {
		b.addDuration(d)
		return
	}

	lead, _ := it.Token()
	if it.Kind() == item.KindToken && lead.Closes() {
		b.addCloser(it, lead)
		return
	}

	b.lastDurable = nil
	b.append(it)

	if c, ok := it.(item.Container); ok {
		if closer, ok := token.Closer(lead.Kind); ok {
			b.stack = append(b.stack, open{c: c, close: closer})
		}
		return
	}
	if d, ok := it.(item.Durable); ok {
		b.lastDurable = d
	}
}

func (b *builder) append(it item.Item) {
	if n := len(b.stack); n > 0 {
		b.stack[n-1].c.AppendChild(it)
		return
	}
	b.doc.Items = append(b.doc.Items, it)
}

func (b *builder) addCloser(it item.Item, lead token.Token) {
	b.lastDurable = nil
	n := len(b.stack)
	if n == 0 || b.stack[n-1].close != lead.Kind {
		b.report(diag.DocUnmatchedClose, lead.Span, "unmatched "+lead.Text)
		b.append(it)
		return
	}
	top := b.stack[n-1]
	top.c.AppendChild(it)
	b.stack = b.stack[:n-1]
	// a chord takes the duration written after its closing '>'
	if d, ok := top.c.(item.Durable); ok {
		b.lastDurable = d
	}
}

func (b *builder) addDuration(d *item.Duration) {
	lead, _ := d.Token()
	var prev *item.Duration
	if b.lastDurable != nil {
		prev = b.lastDurable.Duration()
	}
	switch {
	case b.lastDurable != nil && prev == nil:
		b.lastDurable.SetDuration(d)
	case prev != nil && lead.Kind == token.DurationScaling:
		// durations such as 4*3/2 arrive as two items; fold them together
		prev.SetTokens(append(prev.Tokens(), item.AllTokens(d)...))
	default:
		b.lastDurable = nil
		b.report(diag.DocDetachedLength, lead.Span, "duration "+lead.Text+" does not follow a note, rest, skip or chord")
		b.append(d)
	}
}

func (b *builder) report(code diag.Code, sp source.Span, msg string) {
	if b.reporter == nil {
		return
	}
	sev := diag.SevError
	if code == diag.DocDetachedLength {
		sev = diag.SevWarning
	}
	diag.NewReportBuilder(b.reporter, sev, code, sp, msg).Emit()
}
