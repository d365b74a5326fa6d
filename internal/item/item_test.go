package item

import (
	"testing"

	"github.com/google/uuid"

	"lyread/internal/token"
)

func TestCapabilities(t *testing.T) {
	items := []Item{
		&Token{}, &Duration{}, &Chord{}, &Note{}, &Skip{}, &Rest{},
		&Music{}, &SchemeValue{}, &StringValue{}, &Comment{},
	}
	durables := map[Kind]bool{KindChord: true, KindNote: true, KindSkip: true, KindRest: true}
	containers := map[Kind]bool{KindChord: true, KindMusic: true}

	for _, it := range items {
		_, isDurable := it.(Durable)
		_, isContainer := it.(Container)
		if isDurable != durables[it.Kind()] {
			t.Errorf("%v: Durable = %v", it.Kind(), isDurable)
		}
		if isContainer != containers[it.Kind()] {
			t.Errorf("%v: Container = %v", it.Kind(), isContainer)
		}
	}
}

func TestDefaults(t *testing.T) {
	m := &Music{}
	if m.Simultaneous {
		t.Errorf("music is sequential by default")
	}
	if _, ok := m.Token(); ok {
		t.Errorf("no responsible token by default")
	}
	if len(m.Tokens()) != 0 || len(m.Children()) != 0 {
		t.Errorf("tokens and children are empty by default")
	}
	if !m.Document().IsZero() {
		t.Errorf("document is unset by default")
	}
	n := &Note{}
	if n.Duration() != nil || n.Pitch != nil {
		t.Errorf("note duration and pitch are absent by default")
	}
}

func TestChordIsDurableContainer(t *testing.T) {
	c := &Chord{}
	n := &Note{}
	d := &Duration{}
	c.AppendChild(n)
	c.SetDuration(d)
	if len(c.Children()) != 1 || c.Children()[0] != Item(n) {
		t.Errorf("children = %v", c.Children())
	}
	if c.Duration() != d {
		t.Errorf("duration not attached")
	}
}

func TestAttachAndAllTokens(t *testing.T) {
	s := &SchemeValue{}
	s.SetToken(token.Token{Kind: token.SchemeStart, Text: "#"})
	s.SetTokens([]token.Token{{Kind: token.SchemeNumber, Text: "1"}})

	ref := DocRef(uuid.New())
	Attach(s, ref)
	if s.Document() != ref {
		t.Errorf("document = %v, want %v", s.Document(), ref)
	}

	all := AllTokens(s)
	if len(all) != 2 || all[0].Text != "#" || all[1].Text != "1" {
		t.Errorf("AllTokens = %+v", all)
	}
	if got := AllTokens(&Comment{}); len(got) != 0 {
		t.Errorf("empty item has no tokens, got %v", got)
	}
}

func TestKindString(t *testing.T) {
	if KindScheme.String() != "SchemeValue" || KindString.String() != "StringValue" {
		t.Errorf("unexpected names %v %v", KindScheme, KindString)
	}
	if Kind(99).String() != "Kind(?)" {
		t.Errorf("out of range kind")
	}
}
