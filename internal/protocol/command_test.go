package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCommandEncode(t *testing.T) {
	cmd := Command{ID: 7, Method: MethodReload, AppID: "app-1"}
	data, err := cmd.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatalf("Encode() = %q, want trailing newline", data)
	}

	var wire wireCommand
	if err := json.Unmarshal(data[:len(data)-1], &wire); err != nil {
		t.Fatalf("round-trip unmarshal failed: %v", err)
	}
	if wire.Method != "reload" || wire.ID != 7 || wire.Params.AppID != "app-1" {
		t.Errorf("got %+v", wire)
	}
}

func TestCommandEncodeMethods(t *testing.T) {
	for _, m := range []CommandMethod{MethodReload, MethodRestart, MethodStop} {
		cmd := Command{ID: 1, Method: m, AppID: "a"}
		data, err := cmd.Encode()
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", m, err)
		}
		if !strings.Contains(string(data), string(m)) {
			t.Errorf("Encode(%s) = %q, missing method name", m, data)
		}
	}
}
