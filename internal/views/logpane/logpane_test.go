package logpane

import (
	"strings"
	"testing"
	"time"

	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/registry"
)

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	m := Model{Width: 60, Height: 10}
	out := m.Render()
	if !strings.Contains(out, "no log output yet") {
		t.Fatalf("expected placeholder text, got %q", out)
	}
}

func TestRenderShowsScrollHintWhenNotFollowing(t *testing.T) {
	logs := []registry.LogEntry{
		{Timestamp: time.Unix(0, 0), Level: protocol.LevelInfo, Source: protocol.SourceApp, Message: "one"},
		{Timestamp: time.Unix(1, 0), Level: protocol.LevelError, Source: protocol.SourceFlutterError, Message: "two"},
	}
	m := Model{Logs: logs, View: registry.LogView{Offset: 1, Follow: false}, Width: 60, Height: 10}
	out := m.Render()
	if !strings.Contains(out, "scrolled") {
		t.Fatalf("expected scroll hint, got %q", out)
	}
	if !strings.Contains(out, "one") {
		t.Fatalf("expected entry 'one' visible when scrolled up, got %q", out)
	}
}

func TestRenderFollowingShowsMostRecent(t *testing.T) {
	logs := []registry.LogEntry{
		{Timestamp: time.Unix(0, 0), Level: protocol.LevelInfo, Source: protocol.SourceApp, Message: "old"},
		{Timestamp: time.Unix(1, 0), Level: protocol.LevelInfo, Source: protocol.SourceApp, Message: "new"},
	}
	m := Model{Logs: logs, View: registry.LogView{Offset: 0, Follow: true}, Width: 60, Height: 10}
	out := m.Render()
	if !strings.Contains(out, "new") {
		t.Fatalf("expected most recent entry visible, got %q", out)
	}
}
