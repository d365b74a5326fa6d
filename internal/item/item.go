package item

import (
	"github.com/google/uuid"

	"lyread/internal/token"
)

// DocRef identifies the document an item belongs to. It is a handle, not a
// pointer: the document owns its items, never the other way round.
type DocRef uuid.UUID

// NoDoc is the zero DocRef of an item not yet attached to a document.
var NoDoc DocRef

func (r DocRef) String() string { return uuid.UUID(r).String() }

// IsZero reports whether the reference is unset.
func (r DocRef) IsZero() bool { return r == NoDoc }

// Item is any element of read music.
type Item interface {
	Kind() Kind
	Document() DocRef
	// Token returns the single responsible token, if the item has one.
	Token() (token.Token, bool)
	// Tokens returns the tokens the item consists of beyond its responsible token.
	Tokens() []token.Token
	base() *Base
}

// Base holds the attributes shared by every item.
type Base struct {
	doc    DocRef
	tok    token.Token
	hasTok bool
	toks   []token.Token
}

func (b *Base) Document() DocRef { return b.doc }

func (b *Base) Token() (token.Token, bool) { return b.tok, b.hasTok }

func (b *Base) Tokens() []token.Token { return b.toks }

func (b *Base) base() *Base { return b }

// SetToken sets the responsible token.
func (b *Base) SetToken(t token.Token) {
	b.tok = t
	b.hasTok = true
}

// SetTokens replaces the item's token sequence.
func (b *Base) SetTokens(toks []token.Token) {
	b.toks = toks
}

// Attach stamps the owning document handle onto it.
func Attach(it Item, doc DocRef) {
	it.base().doc = doc
}

// AllTokens returns the responsible token followed by Tokens, in source order.
func AllTokens(it Item) []token.Token {
	toks := it.Tokens()
	t, ok := it.Token()
	if !ok {
		return toks
	}
	out := make([]token.Token, 0, len(toks)+1)
	out = append(out, t)
	return append(out, toks...)
}
