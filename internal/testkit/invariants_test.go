package testkit

import (
	"slices"
	"testing"

	"lyread/internal/diag"
	"lyread/internal/document"
	"lyread/internal/item"
	"lyread/internal/lexer"
	"lyread/internal/reader"
	"lyread/internal/source"
	"lyread/internal/token"
)

const sample = `\version "2.24.0"
% melody
\relative c' {
  \time 3/4 <c e g>4. r8 s2*3/4 R1 |
  c4( d) e"\"quoted\"" #(set-octavation 1) %{ block %}
  << { c } \\ { e } >> #(list #{ c4 #})
}
`

func lexAll(t *testing.T, input string) (*source.File, []token.Token, []int) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("sample.ly", []byte(input)))
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(0)}})
	var (
		toks   []token.Token
		depths []int
	)
	for tok := range lx.All() {
		toks = append(toks, tok)
		depths = append(depths, lx.Depth())
	}
	return file, toks, depths
}

func TestInvariantsHoldOnSample(t *testing.T) {
	file, toks, depths := lexAll(t, sample)
	if err := CheckTokens(file, toks, depths); err != nil {
		t.Fatal(err)
	}
	if err := CheckCoverage(file, toks); err != nil {
		t.Fatal(err)
	}
	var items []item.Item
	for it := range reader.Read(reader.NewSliceSource(toks, depths, 1)) {
		items = append(items, it)
	}
	if err := CheckItemOrder(items); err != nil {
		t.Fatal(err)
	}
	if err := CheckItemsCover(items, toks); err != nil {
		t.Fatal(err)
	}

	doc := document.NewRegistry().New(file.Path, file)
	var rebuilt []item.Item
	for it := range reader.Read(reader.NewSliceSource(toks, depths, 1)) {
		rebuilt = append(rebuilt, it)
	}
	document.Build(doc, slices.Values(rebuilt), nil)
	if err := CheckDocument(doc); err != nil {
		t.Fatal(err)
	}
}

func TestCheckersDetectViolations(t *testing.T) {
	file, toks, depths := lexAll(t, "c d e")

	swapped := []token.Token{toks[1], toks[0], toks[2]}
	if CheckTokens(file, swapped, depths) == nil {
		t.Error("CheckTokens accepted out-of-order tokens")
	}
	bad := append([]token.Token(nil), toks...)
	bad[1].Text = "x"
	if CheckTokens(file, bad, depths) == nil {
		t.Error("CheckTokens accepted wrong text")
	}
	if CheckTokens(file, toks, []int{1, 0, 1}) == nil {
		t.Error("CheckTokens accepted depth 0")
	}
	if CheckCoverage(file, toks[:1]) == nil {
		t.Error("CheckCoverage accepted unconsumed content")
	}

	var items []item.Item
	for _, tok := range []token.Token{toks[2], toks[0]} {
		it := &item.Note{}
		it.SetToken(tok)
		items = append(items, it)
	}
	if CheckItemOrder(items) == nil {
		t.Error("CheckItemOrder accepted reversed items")
	}
	if CheckItemsCover(items[1:], toks) == nil {
		t.Error("CheckItemsCover accepted missing tokens")
	}

	doc := document.NewRegistry().New("x.ly", file)
	doc.Items = items
	if CheckDocument(doc) == nil {
		t.Error("CheckDocument accepted unattached items")
	}
}
