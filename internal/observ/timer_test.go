package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin(PhaseLex)
	time.Sleep(time.Millisecond)
	tm.End(idx, "12 tokens")
	tm.Measure(PhaseRead, func() {})
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Name != PhaseLex || r.Phases[0].DurationMS <= 0 || r.Phases[0].Note != "12 tokens" {
		t.Errorf("lex phase = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f < lex %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "lex") || !strings.Contains(s, "// 12 tokens") || !strings.Contains(s, "total") {
		t.Errorf("summary = %q", s)
	}
}

func TestTimerMerge(t *testing.T) {
	a, b := NewTimer(), NewTimer()
	a.Measure(PhaseLex, func() {})
	b.Measure(PhaseLex, func() {})
	b.Measure(PhaseBuild, func() {})
	a.Merge(b)
	a.Merge(a)
	a.Merge(nil)

	r := a.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Count != 2 || r.Phases[1].Name != PhaseBuild {
		t.Errorf("merged = %+v", r.Phases)
	}
	if !strings.Contains(a.Summary(), "x2") {
		t.Errorf("summary lacks count: %q", a.Summary())
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}
