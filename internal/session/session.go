package session

import (
	"fmt"
	"net"
	"sync"
	"time"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/protocol"
	"live-auction/utils"
)

// Session is one bidder's live connection. The manager's reader goroutine owns the
// inbound side; a dedicated writer goroutine drains the outbox so a slow peer never
// blocks anyone else.
type Session struct {
	ID     string
	conn   net.Conn
	dec    *protocol.Decoder
	enc    *protocol.Encoder
	remote string

	writeTimeout time.Duration

	mu         sync.Mutex
	bidder     string
	outbox     chan protocol.Envelope
	finished   bool // outbox closed
	terminated bool

	done chan struct{}
}

func newSession(conn net.Conn, opts Options) *Session {
	return &Session{
		ID:           utils.GenerateID(),
		conn:         conn,
		dec:          protocol.NewDecoder(conn),
		enc:          protocol.NewEncoder(conn),
		remote:       conn.RemoteAddr().String(),
		writeTimeout: opts.WriteTimeout,
		outbox:       make(chan protocol.Envelope, opts.OutboxSize),
		done:         make(chan struct{}),
	}
}

// Bidder returns the identity bound to the session, empty until the first join or bid
func (s *Session) Bidder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bidder
}

// Done is closed once the connection has been flushed and closed
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// bind ties the session to bidder on first use and rejects a different name afterwards
func (s *Session) bind(bidder string) error {
	if bidder == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bidder == "" {
		s.bidder = bidder
		return nil
	}
	if s.bidder != bidder {
		return fmt.Errorf("session %s: %w - bound to %q, got %q", s.ID, biddingerrors.ErrBidderMismatch, s.bidder, bidder)
	}
	return nil
}

// enqueue hands env to the writer without blocking. A full outbox terminates the session.
func (s *Session) enqueue(env protocol.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return fmt.Errorf("session %s: %w", s.ID, biddingerrors.ErrSessionClosed)
	}

	select {
	case s.outbox <- env:
		return nil
	default:
		s.terminateLocked()
		return fmt.Errorf("session %s: %w", s.ID, biddingerrors.ErrSessionBackpressure)
	}
}

// Terminate unblocks the reader so the session winds down. Safe to call repeatedly.
func (s *Session) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terminateLocked()
}

func (s *Session) terminateLocked() {
	if s.terminated {
		return
	}
	s.terminated = true
	_ = s.conn.SetReadDeadline(time.Unix(1, 0))
}

func (s *Session) isTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

// finish closes the outbox; the writer flushes what is queued and closes the connection
func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return
	}
	s.finished = true
	close(s.outbox)
}

func (s *Session) writeLoop() {
	defer close(s.done)
	defer s.conn.Close()

	failed := false
	for env := range s.outbox {
		if failed {
			continue
		}

		if s.writeTimeout > 0 {
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		}
		if err := s.enc.Encode(env); err != nil {
			failed = true
			utils.Warn("session: send failed", map[string]any{
				"session_id": s.ID,
				"remote":     s.remote,
				"kind":       string(env.Kind),
				"error":      err.Error(),
			})
			s.Terminate()
		}
	}
}
