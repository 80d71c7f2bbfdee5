package child

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fdaemon/supervisor/internal/protocol"
	"github.com/fdaemon/supervisor/internal/tracker"
)

const defaultReplyTimeout = 10 * time.Second

// Sender writes commands to a child process's stdin and waits for the
// matching Response via a shared Tracker. A *Sender is safe to share
// across goroutines — all writes are serialized by mu.
type Sender struct {
	mu      sync.Mutex
	stdin   io.Writer
	tracker *tracker.Tracker
	timeout time.Duration
}

// NewSender returns a Sender that writes to stdin and resolves replies
// through tr. A non-positive timeout falls back to defaultReplyTimeout.
func NewSender(stdin io.Writer, tr *tracker.Tracker, timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = defaultReplyTimeout
	}
	return &Sender{stdin: stdin, tracker: tr, timeout: timeout}
}

// Send writes method/appID as a Command and blocks until the matching
// Response arrives, the timeout elapses, or ctx is cancelled. On timeout
// or cancellation the pending slot is cancelled so a late reply is
// discarded rather than leaking.
func (s *Sender) Send(ctx context.Context, method protocol.CommandMethod, appID string) (json.RawMessage, error) {
	id := s.tracker.NextID()
	replies := s.tracker.Register(id)

	data, err := (protocol.Command{ID: id, Method: method, AppID: appID}).Encode()
	if err != nil {
		s.tracker.Cancel(id)
		return nil, fmt.Errorf("child: encoding %s command: %w", method, err)
	}

	s.mu.Lock()
	_, werr := s.stdin.Write(data)
	s.mu.Unlock()
	if werr != nil {
		s.tracker.Cancel(id)
		return nil, fmt.Errorf("child: writing %s command: %w", method, werr)
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case out := <-replies:
		if out.Err != nil {
			return nil, out.Err
		}
		return out.Result, nil
	case <-timer.C:
		s.tracker.Cancel(id)
		return nil, fmt.Errorf("child: %s command timed out after %s", method, s.timeout)
	case <-ctx.Done():
		s.tracker.Cancel(id)
		return nil, ctx.Err()
	}
}
