package diag

import (
	"testing"

	"lyread/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	for i := range 3 {
		r.Report(LexUnknownChar, SevError, source.Span{Start: uint32(i), End: uint32(i + 1)}, "bad", nil)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Errorf("errors must count as warnings too")
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for range 100 {
		b.Add(New(SevInfo, DocInfo, source.Span{}, "x"))
	}
	if b.Len() != 100 {
		t.Errorf("Len = %d", b.Len())
	}
	if b.HasWarnings() {
		t.Errorf("info diagnostics are not warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(LexUnterminatedString, source.Span{Start: 9, End: 10}, "late"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "early"))
	b.Add(New(SevWarning, DocDetachedLength, source.Span{Start: 1, End: 2}, "warn"))
	b.Add(NewError(LexUnknownChar, source.Span{Start: 1, End: 2}, "early again"))

	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[0].Primary.Start != 1 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[len(items)-1].Primary.Start != 9 {
		t.Errorf("last item = %+v", items[len(items)-1])
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Errorf("after Dedup Len = %d, want 3", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 3, End: 4}
	ReportError(r, LexUnbalancedClose, sp, "stray }").Emit()
	ReportError(r, LexUnbalancedClose, sp, "stray }").Emit()
	ReportError(r, LexUnbalancedClose, sp, "stray >>").WithNote(sp, "here").Emit()
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if len(b.Items()[1].Notes) != 1 {
		t.Errorf("note lost: %+v", b.Items()[1])
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString: "LEX1002",
		DocUnclosed:           "DOC2002",
		IOCacheError:          "IO4002",
		UnknownCode:           "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to the unknown title")
	}
}
