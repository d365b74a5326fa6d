package ui

import (
	"strings"
	"testing"

	"lyread/internal/driver"
)

func TestApplyEvent(t *testing.T) {
	m := NewProgressModel("read", []string{"a.ly", "b.ly"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a.ly", Stage: driver.StageRead, Status: driver.StatusWorking})
	if m.items[0].status != "reading" {
		t.Errorf("status = %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.ly", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.ly", Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.ly", Status: driver.StatusDone})
	if m.finished() != 2 || m.failed != 1 {
		t.Errorf("finished = %d failed = %d", m.finished(), m.failed)
	}
	view := m.View()
	if !strings.Contains(view, "read (2/2)") || !strings.Contains(view, "a.ly") {
		t.Errorf("view:\n%s", view)
	}
}

func TestVisibleLimitsRows(t *testing.T) {
	files := []string{"1.ly", "2.ly", "3.ly", "4.ly"}
	m := NewProgressModel("read", files, nil).(*progressModel)
	m.maxRows = 2
	m.applyEvent(driver.Event{File: "4.ly", Stage: driver.StageLex, Status: driver.StatusWorking})
	vis := m.visible()
	if len(vis) != 2 || vis[0].path != "4.ly" || vis[1].path != "1.ly" {
		t.Errorf("visible = %+v", vis)
	}
	if !strings.Contains(m.View(), "… 2 more") {
		t.Errorf("view lacks overflow line:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
