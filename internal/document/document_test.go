package document_test

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

func build(t *testing.T, input string) (*document.Registry, *document.Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ly", []byte(input)))
	reg := document.NewRegistry()
	doc := reg.New(file.Path, file)
	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{})
	document.Build(doc, reader.Read(lx), diag.BagReporter{Bag: bag})
	return reg, doc, bag
}

func kinds(items []item.Item) []item.Kind {
	out := make([]item.Kind, 0, len(items))
	for _, it := range items {
		out = append(out, it.Kind())
	}
	return out
}

func leadText(it item.Item) string {
	tok, _ := it.Token()
	return tok.Text
}

func durationText(t *testing.T, it item.Item) string {
	t.Helper()
	d, ok := it.(item.Durable)
	if !ok {
		t.Fatalf("%s is not durable", it.Kind())
	}
	if d.Duration() == nil {
		return ""
	}
	var s string
	for _, tok := range item.AllTokens(d.Duration()) {
		s += tok.Text
	}
	return s
}

func TestBuildNestsContainers(t *testing.T) {
	_, doc, bag := build(t, `{ c4 <e g>8 r2 } s1`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if got, want := kinds(doc.Items), []item.Kind{item.KindMusic, item.KindSkip}; !slices.Equal(got, want) {
		t.Fatalf("top level = %v, want %v", got, want)
	}
	music := doc.Items[0].(*item.Music)
	want := []item.Kind{item.KindNote, item.KindChord, item.KindRest, item.KindToken}
	if got := kinds(music.Children()); !slices.Equal(got, want) {
		t.Fatalf("music children = %v, want %v", got, want)
	}
	chord := music.Children()[1].(*item.Chord)
	if got, want := kinds(chord.Children()), []item.Kind{item.KindNote, item.KindNote, item.KindToken}; !slices.Equal(got, want) {
		t.Fatalf("chord children = %v, want %v", got, want)
	}
	for i, want := range []string{"4", "8", "2"} {
		if got := durationText(t, music.Children()[i]); got != want {
			t.Errorf("duration of child %d = %q, want %q", i, got, want)
		}
	}
	if got := durationText(t, doc.Items[1]); got != "1" {
		t.Errorf("skip duration = %q, want 1", got)
	}
}

func TestBuildFoldsScaling(t *testing.T) {
	_, doc, bag := build(t, `R1*3/4 c`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(doc.Items) != 2 {
		t.Fatalf("want 2 top-level items, got %v", kinds(doc.Items))
	}
	if got := durationText(t, doc.Items[0]); got != "1*3/4" {
		t.Errorf("duration = %q, want 1*3/4", got)
	}
	if got := durationText(t, doc.Items[1]); got != "" {
		t.Errorf("note without length got %q", got)
	}
}

func TestBuildStampsDocument(t *testing.T) {
	reg, doc, _ := build(t, `\relative { c'4 "s" #(x) %{ b %} }`)
	n := 0
	for it := range doc.Walk() {
		n++
		if it.Document() != doc.ID {
			t.Fatalf("%s item not stamped", it.Kind())
		}
		got, ok := reg.Of(it)
		if !ok || got != doc {
			t.Fatalf("%s item does not resolve to its document", it.Kind())
		}
	}
	// \relative { c' 4 "s" #(x) %{ } plus the attached duration
	if n != 8 {
		t.Errorf("walked %d items, want 8", n)
	}
	reg.Release(doc.ID)
	if _, ok := reg.Lookup(doc.ID); ok {
		t.Error("released document still resolves")
	}
	if reg.Len() != 0 {
		t.Errorf("registry holds %d documents", reg.Len())
	}
}

func TestBuildWalkOrder(t *testing.T) {
	_, doc, _ := build(t, `{ <c e>4 d8 } f`)
	var texts []string
	for it := range doc.Walk() {
		texts = append(texts, leadText(it))
	}
	want := []string{"{", "<", "c", "e", ">", "4", "d", "8", "}", "f"}
	if !slices.Equal(texts, want) {
		t.Errorf("walk = %q, want %q", texts, want)
	}
}

func TestBuildDiagnostics(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []diag.Code
	}{
		{"unmatched close", `c }`, []diag.Code{diag.DocUnmatchedClose}},
		{"unclosed", `{ << c`, []diag.Code{diag.DocUnclosed, diag.DocUnclosed}},
		{"detached", `\time 4 c`, []diag.Code{diag.DocDetachedLength}},
		{"after container", `{ c } 4`, []diag.Code{diag.DocDetachedLength}},
		{"second length", `c4 8`, []diag.Code{diag.DocDetachedLength}},
		{"clean", `<< { c } \\ { d } >>`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, bag := build(t, tc.input)
			var got []diag.Code
			for _, d := range bag.Items() {
				got = append(got, d.Code)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("codes = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildDetachedStaysInTree(t *testing.T) {
	_, doc, bag := build(t, `{ 4 }`)
	if !bag.HasWarnings() {
		t.Fatal("expected a warning")
	}
	music := doc.Items[0].(*item.Music)
	if got, want := kinds(music.Children()), []item.Kind{item.KindDuration, item.KindToken}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}

func TestRegistryIDsAreUnique(t *testing.T) {
	reg := document.NewRegistry()
	a := reg.New("a.ly", nil)
	b := reg.New("b.ly", nil)
	if a.ID == b.ID || a.ID.IsZero() {
		t.Fatalf("ids not unique: %s %s", a.ID, b.ID)
	}
	if _, ok := reg.Lookup(item.NoDoc); ok {
		t.Error("zero handle resolved")
	}
	var tok item.Token
	tok.SetToken(token.Token{Kind: token.Name, Text: "x"})
	if _, ok := reg.Of(&tok); ok {
		t.Error("unattached item resolved")
	}
}
