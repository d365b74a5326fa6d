package token_test

import (
	"testing"

	"lyread/internal/token"
)

func TestKindHierarchy(t *testing.T) {
	tests := []struct {
		kind  token.Kind
		class token.Kind
		want  bool
	}{
		{token.BlockCommentStart, token.Comment, true},
		{token.BlockCommentStart, token.BlockCommentStart, true},
		{token.LineComment, token.Comment, true},
		{token.LineComment, token.BlockCommentStart, false},
		{token.SchemeComment, token.Comment, true},
		{token.SchemeComment, token.Scheme, false},
		{token.StringEscape, token.Character, true},
		{token.StringEscape, token.String, true},
		{token.StringText, token.Character, false},
		{token.StringStart, token.String, true},
		{token.Length, token.Duration, true},
		{token.DurationScaling, token.Duration, true},
		{token.Fraction, token.Duration, false},
		{token.MultiMeasureRest, token.Rest, true},
		{token.Note, token.Rest, false},
		{token.Note, token.Invalid, false},
		{token.Invalid, token.Invalid, true},
	}
	for _, tt := range tests {
		if got := tt.kind.Is(tt.class); got != tt.want {
			t.Errorf("%v.Is(%v) = %v, want %v", tt.kind, tt.class, got, tt.want)
		}
	}
}

func TestAbstractKindsAreRoots(t *testing.T) {
	for _, k := range []token.Kind{token.Comment, token.String, token.Duration, token.Scheme, token.Delimiter, token.Rest} {
		if !k.IsAbstract() {
			t.Errorf("%v must be abstract", k)
		}
		if k.Parent() != token.Invalid {
			t.Errorf("%v must be a root class, parent=%v", k, k.Parent())
		}
	}
	if token.Character.Parent() != token.String {
		t.Errorf("Character must descend from String")
	}
}

func TestKindString(t *testing.T) {
	if got := token.SchemeStart.String(); got != "SchemeStart" {
		t.Errorf("String() = %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("out of range String() = %q", got)
	}
}

func TestIsEscape(t *testing.T) {
	esc := token.Token{Kind: token.StringEscape, Text: `\n`}
	if !esc.IsEscape() {
		t.Errorf("%q must be an escape", esc.Text)
	}
	plain := token.Token{Kind: token.StringText, Text: `\n`}
	if plain.IsEscape() {
		t.Errorf("string text is never an escape")
	}
	odd := token.Token{Kind: token.StringEscape, Text: "n"}
	if odd.IsEscape() {
		t.Errorf("character without prefix is not an escape")
	}
}

func TestCloser(t *testing.T) {
	for open, want := range map[token.Kind]token.Kind{
		token.SequentialStart:   token.SequentialEnd,
		token.SimultaneousStart: token.SimultaneousEnd,
		token.ChordStart:        token.ChordEnd,
	} {
		got, ok := token.Closer(open)
		if !ok || got != want {
			t.Errorf("Closer(%v) = %v,%v", open, got, ok)
		}
	}
	if _, ok := token.Closer(token.Note); ok {
		t.Errorf("Note has no closer")
	}
}
