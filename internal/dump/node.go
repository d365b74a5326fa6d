// Package dump turns read items, tokens and diagnostics into output trees
// and renders them as text, JSON, YAML or MessagePack.
package dump

import (
	"strings"

	"lyread/internal/diag"
	"lyread/internal/document"
	"lyread/internal/item"
	"lyread/internal/source"
)

// Pos is a 1-based line and column.
type Pos struct {
	Line uint32 `json:"line" yaml:"line" msgpack:"line"`
	Col  uint32 `json:"col" yaml:"col" msgpack:"col"`
}

// Node is the serializable form of one item.
type Node struct {
	Kind         string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Text         string      `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Span         source.Span `json:"span" yaml:"span" msgpack:"span"`
	Pos          Pos         `json:"pos" yaml:"pos" msgpack:"pos"`
	Value        *string     `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Simultaneous bool        `json:"simultaneous,omitempty" yaml:"simultaneous,omitempty" msgpack:"simultaneous,omitempty"`
	Duration     string      `json:"duration,omitempty" yaml:"duration,omitempty" msgpack:"duration,omitempty"`
	Tokens       []string    `json:"tokens,omitempty" yaml:"tokens,omitempty" msgpack:"tokens,omitempty"`
	Children     []Node      `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// NoteNode is the serializable form of a diagnostic note.
type NoteNode struct {
	Message string `json:"message" yaml:"message" msgpack:"message"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Pos     Pos    `json:"pos" yaml:"pos" msgpack:"pos"`
}

// DiagNode is the serializable form of a diagnostic.
type DiagNode struct {
	Severity string     `json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string     `json:"code" yaml:"code" msgpack:"code"`
	Message  string     `json:"message" yaml:"message" msgpack:"message"`
	Path     string     `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Pos      Pos        `json:"pos" yaml:"pos" msgpack:"pos"`
	Notes    []NoteNode `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
}

// File is the output of reading one source file.
type File struct {
	Path        string     `json:"path" yaml:"path" msgpack:"path"`
	Document    string     `json:"document,omitempty" yaml:"document,omitempty" msgpack:"document,omitempty"`
	Items       []Node     `json:"items" yaml:"items" msgpack:"items"`
	Diagnostics []DiagNode `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Stats       Stats      `json:"stats" yaml:"stats" msgpack:"stats"`
}

// Converter resolves spans against a file set while building nodes.
type Converter struct {
	fs *source.FileSet
}

func NewConverter(fs *source.FileSet) Converter { return Converter{fs: fs} }

func (c Converter) pos(sp source.Span) Pos {
	if c.fs == nil {
		return Pos{}
	}
	start, _ := c.fs.Resolve(sp)
	return Pos{Line: start.Line, Col: start.Col}
}

func (c Converter) path(sp source.Span) string {
	if c.fs == nil {
		return ""
	}
	if f := c.fs.Get(sp.File); f != nil {
		return f.Path
	}
	return ""
}

// Item converts it and, for containers, its children.
func (c Converter) Item(it item.Item) Node {
	n := Node{Kind: it.Kind().String()}
	if tok, ok := it.Token(); ok {
		n.Text = tok.Text
		n.Span = tok.Span
		n.Pos = c.pos(tok.Span)
	}
	for _, tok := range it.Tokens() {
		n.Tokens = append(n.Tokens, tok.Text)
	}
	switch v := it.(type) {
	case *item.StringValue:
		value := v.Value
		n.Value = &value
	case *item.Music:
		n.Simultaneous = v.Simultaneous
	}
	if d, ok := it.(item.Durable); ok && d.Duration() != nil {
		var sb strings.Builder
		for _, tok := range item.AllTokens(d.Duration()) {
			sb.WriteString(tok.Text)
		}
		n.Duration = sb.String()
	}
	if ct, ok := it.(item.Container); ok {
		n.Children = c.Items(ct.Children())
	}
	return n
}

func (c Converter) Items(items []item.Item) []Node {
	if len(items) == 0 {
		return nil
	}
	out := make([]Node, 0, len(items))
	for _, it := range items {
		out = append(out, c.Item(it))
	}
	return out
}

// Diagnostic converts d.
func (c Converter) Diagnostic(d diag.Diagnostic) DiagNode {
	out := DiagNode{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Path:     c.path(d.Primary),
		Pos:      c.pos(d.Primary),
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, NoteNode{Message: n.Msg, Path: c.path(n.Span), Pos: c.pos(n.Span)})
	}
	return out
}

func (c Converter) Diagnostics(bag *diag.Bag) []DiagNode {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	out := make([]DiagNode, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, c.Diagnostic(d))
	}
	return out
}

// Document converts a built document with its diagnostics.
func (c Converter) Document(doc *document.Document, bag *diag.Bag) File {
	f := File{
		Path:        doc.Path,
		Document:    doc.ID.String(),
		Items:       c.Items(doc.Items),
		Diagnostics: c.Diagnostics(bag),
	}
	f.Stats = Count(f.Items)
	return f
}

// Flat converts items read without a document, as the reader yields them.
func (c Converter) Flat(path string, items []item.Item, bag *diag.Bag) File {
	f := File{
		Path:        path,
		Items:       c.Items(items),
		Diagnostics: c.Diagnostics(bag),
	}
	f.Stats = Count(f.Items)
	return f
}
