package confirm

import (
	"strings"
	"testing"
)

func TestViewMentionsRunningSessionCount(t *testing.T) {
	m := Model{RunningSessionCount: 3}
	out := m.View(80, 24)
	if !strings.Contains(out, "3 running sessions") {
		t.Fatalf("expected plural session count, got %q", out)
	}
}

func TestViewSingularSession(t *testing.T) {
	m := Model{RunningSessionCount: 1}
	out := m.View(80, 24)
	if !strings.Contains(out, "1 running session") || strings.Contains(out, "1 running sessions") {
		t.Fatalf("expected singular wording, got %q", out)
	}
}
