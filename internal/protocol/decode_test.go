package protocol

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantOK  bool
		check   func(t *testing.T, msg Message)
	}{
		{
			name:   "app start",
			line:   `[{"event":"app.start","params":{"appId":"app-1"}}]`,
			wantOK: true,
			check: func(t *testing.T, msg Message) {
				start, ok := msg.(AppStart)
				if !ok {
					t.Fatalf("got %T, want AppStart", msg)
				}
				if start.AppID != "app-1" {
					t.Errorf("AppID = %q, want app-1", start.AppID)
				}
			},
		},
		{
			name:   "app log info",
			line:   `  [{"event":"app.log","params":{"log":"hello","level":"info"}}]  `,
			wantOK: true,
			check: func(t *testing.T, msg Message) {
				log, ok := msg.(AppLog)
				if !ok {
					t.Fatalf("got %T, want AppLog", msg)
				}
				if log.Message != "hello" || log.Level != LevelInfo || log.Source != SourceFlutter {
					t.Errorf("got %+v", log)
				}
			},
		},
		{
			name:   "app log error routes to flutter_error source",
			line:   `[{"event":"app.log","params":{"log":"boom","level":"error","stackTrace":"at foo()"}}]`,
			wantOK: true,
			check: func(t *testing.T, msg Message) {
				log, ok := msg.(AppLog)
				if !ok {
					t.Fatalf("got %T, want AppLog", msg)
				}
				if log.Source != SourceFlutterError || log.Stack != "at foo()" {
					t.Errorf("got %+v", log)
				}
			},
		},
		{
			name:   "response success",
			line:   `[{"id":3,"result":{"ok":true}}]`,
			wantOK: true,
			check: func(t *testing.T, msg Message) {
				resp, ok := msg.(Response)
				if !ok {
					t.Fatalf("got %T, want Response", msg)
				}
				if resp.ID != 3 || resp.Error != nil {
					t.Errorf("got %+v", resp)
				}
			},
		},
		{
			name:   "response error",
			line:   `[{"id":4,"error":{"message":"boom"}}]`,
			wantOK: true,
			check: func(t *testing.T, msg Message) {
				resp, ok := msg.(Response)
				if !ok {
					t.Fatalf("got %T, want Response", msg)
				}
				if resp.ID != 4 || resp.Error == nil || resp.Error.Message != "boom" {
					t.Errorf("got %+v", resp)
				}
			},
		},
		{
			name:   "plain text is not a message",
			line:   `Launching lib/main.dart on Pixel 7...`,
			wantOK: false,
		},
		{
			name:   "unbracketed json is not a message",
			line:   `{"event":"app.start","params":{"appId":"x"}}`,
			wantOK: false,
		},
		{
			name:   "malformed json inside brackets",
			line:   `[{"event": "app.start", }]`,
			wantOK: false,
		},
		{
			name:   "unknown event and no id is discarded",
			line:   `[{"event":"daemon.ready"}]`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Decode(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Decode() ok = %v, want %v (msg=%v)", ok, tt.wantOK, msg)
			}
			if ok && tt.check != nil {
				tt.check(t, msg)
			}
		})
	}
}
