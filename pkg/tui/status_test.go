package tui

import (
	"strings"
	"testing"
	"time"
)

func TestStatusManagerFeedback(t *testing.T) {
	sm := NewStatusManager()
	now := time.Unix(1000, 0)
	sm.now = func() time.Time { return now }

	if _, _, ok := sm.GetStatus(); ok {
		t.Fatal("expected no status initially")
	}

	if cmd := sm.ShowSuccess("Saved"); cmd == nil {
		t.Fatal("expected a clear command")
	}
	msg, typ, ok := sm.GetStatus()
	if !ok || typ != StatusTypeSuccess || !strings.Contains(msg, "Saved") {
		t.Errorf("unexpected status %q %v %v", msg, typ, ok)
	}

	now = now.Add(sm.DefaultDuration + time.Second)
	if sm.IsActive() {
		t.Error("expected status to expire")
	}
}

func TestStatusManagerErrorsLastLonger(t *testing.T) {
	sm := NewStatusManager()
	now := time.Unix(1000, 0)
	sm.now = func() time.Time { return now }

	sm.ShowError("boom")
	now = now.Add(sm.DefaultDuration + time.Second)
	if !sm.IsActive() {
		t.Error("expected error to outlast the default duration")
	}
}

func TestStatusManagerClearKeepsNewerStatus(t *testing.T) {
	sm := NewStatusManager()
	sm.ShowInfo("first")
	stale := ClearStatusMsg{status: sm.CurrentStatus}
	sm.ShowWarning("second")

	sm.HandleClear(stale)
	msg, typ, ok := sm.GetStatus()
	if !ok || typ != StatusTypeWarning || !strings.Contains(msg, "second") {
		t.Errorf("newer status was cleared: %q", msg)
	}

	sm.HandleClear(ClearStatusMsg{status: sm.CurrentStatus})
	if sm.CurrentStatus != nil {
		t.Error("expected current status to clear")
	}
}

func TestStatusManagerPersistentMessage(t *testing.T) {
	sm := NewStatusManager()
	sm.SetPersistentMessage("Paste a link", StatusTypeWarning)

	msg, typ, ok := sm.GetStatus()
	if !ok || typ != StatusTypeWarning || msg != "⚠ Paste a link" {
		t.Errorf("unexpected persistent status %q", msg)
	}

	sm.ShowSuccess("done")
	if msg, _, _ := sm.GetStatus(); !strings.Contains(msg, "done") {
		t.Errorf("feedback should win over persistent message, got %q", msg)
	}

	sm.Clear()
	sm.ClearPersistentMessage()
	if _, _, ok := sm.GetStatus(); ok {
		t.Error("expected no status after clearing")
	}
}
