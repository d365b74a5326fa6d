package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeItem, false},
		{LevelDebug, ScopeItem, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected level error")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected mode error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v, %v", f, err)
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	root := Begin(tr, ScopeDriver, "read", 0)
	pass := Begin(tr, ScopePass, "lex", root.ID())
	Begin(tr, ScopeFile, "file:a.ly", pass.ID()).End("")
	pass.WithExtra("tokens", "12").WithExtra("depth", "1").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ read") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "  ← lex {depth=1, tokens=12}") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if !strings.Contains(lines[3], "← read (ok)") {
		t.Errorf("line 3 = %q", lines[3])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeItem, "item", "Note", 7)
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if ev["kind"] != "point" || ev["scope"] != "item" || ev["parent_id"] != float64(7) {
		t.Errorf("event = %v", ev)
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelPhase)
	for i := range 5 {
		r.Emit(&Event{Seq: uint64(i), Scope: ScopePass, Kind: KindPoint})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	for i, ev := range snap {
		if ev.Seq != uint64(i+2) {
			t.Errorf("snap[%d].Seq = %d, want %d", i, ev.Seq, i+2)
		}
	}
}

func TestRingAtErrorLevel(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	ring := tr.(*ringDumper).Unwrap()
	Begin(tr, ScopePass, "read", 0).End("")
	Begin(tr, ScopeFile, "file", 0).End("")
	if n := len(ring.Snapshot()); n != 2 {
		t.Errorf("ring holds %d events, want begin and end of the pass", n)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "read") != 2 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestBothMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "build", 0).End("")
	multi := tr.(*MultiTracer)
	if multi.Ring() == nil || len(multi.Ring().Snapshot()) != 2 {
		t.Error("ring did not receive events")
	}
	if buf.Len() == 0 {
		t.Error("stream did not receive events")
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNopAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	s := Begin(tr, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Error("nop span has an id")
	}
	s.WithExtra("k", "v").End("")

	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatNDJSON))
	ctx, root := BeginContext(ctx, ScopeDriver, "root")
	_, child := BeginContext(ctx, ScopePass, "child")
	if CurrentSpan(ctx).SpanID != root.ID() {
		t.Error("context does not carry the root span")
	}
	if child.parentID != root.ID() {
		t.Errorf("child parent = %d, want %d", child.parentID, root.ID())
	}
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should yield Nop")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat started for nop tracer")
	}
}

func TestRingDumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "lex", 0).End("")
	if buf.Len() != 0 {
		t.Fatal("ring wrote before Close")
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("dumped %d lines, want 2:\n%s", n, buf.String())
	}
	if err := tr.Close(); err != nil || strings.Count(buf.String(), "\n") != 2 {
		t.Error("second Close dumped again")
	}
}
