package session

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/models"
	"live-auction/internal/protocol"
	"live-auction/internal/repository"
	"live-auction/utils"

	"code.cloudfoundry.org/clock"
)

const (
	DefaultOutboxSize   = 64
	DefaultWriteTimeout = 5 * time.Second
)

// Options tunes per-session resources
type Options struct {
	OutboxSize   int
	WriteTimeout time.Duration
}

// Manager owns the set of live bidder sessions. It routes inbound bids to the auction
// state and fans notifications out to sessions.
//
// Lock order: bidMu, then the state's lock (released before returning), then mu.
type Manager struct {
	state repository.AuctionStore
	clock clock.Clock
	opts  Options

	// bidMu orders accept-and-notify so every session sees high bids in acceptance order
	bidMu sync.Mutex

	mu           sync.RWMutex
	sessions     map[string]*Session
	closed       bool
	announcement protocol.Envelope
}

// NewManager creates a session manager bound to state
func NewManager(state repository.AuctionStore, clock clock.Clock, opts Options) *Manager {
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = DefaultOutboxSize
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	return &Manager{
		state:    state,
		clock:    clock,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Serve runs a session on conn until the peer exits, disconnects, breaks protocol, or
// the auction closes. It returns once the connection is flushed and closed.
func (m *Manager) Serve(conn net.Conn) {
	s := newSession(conn, m.opts)
	go s.writeLoop()
	defer func() {
		m.RemoveSession(s)
		s.finish()
		<-s.Done()
	}()

	if !m.register(s) {
		utils.Info("session refused: auction closed", map[string]any{
			"session_id": s.ID,
			"remote":     s.remote,
		})
		return
	}

	utils.Info("session connected", map[string]any{
		"session_id": s.ID,
		"remote":     s.remote,
	})

	m.readLoop(s)
}

// register adds s to the broadcast set and queues its greeting under the same lock
// broadcasts use, so the greeting always comes first. It returns false once closed.
func (m *Manager) register(s *Session) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		_ = s.enqueue(m.announcement)
		return false
	}

	var high *models.Bid
	if bid, err := m.state.CurrentHighBid(); err == nil {
		high = &bid
	}
	_ = s.enqueue(protocol.NewAuctionOpened(m.state.Lot(), m.state.Deadline(), high))

	m.sessions[s.ID] = s
	return true
}

func (m *Manager) readLoop(s *Session) {
	for {
		env, err := s.dec.Decode()
		if err != nil {
			m.logReadError(s, err)
			return
		}

		switch env.Kind {
		case protocol.KindJoin:
			err = s.bind(env.Join.Bidder)
			if err == nil {
				utils.Info("bidder joined", map[string]any{
					"session_id": s.ID,
					"bidder":     env.Join.Bidder,
				})
			}
		case protocol.KindSubmitBid:
			err = m.SubmitBid(s, *env.SubmitBid)
		case protocol.KindExit:
			utils.Info("session exit requested", map[string]any{
				"session_id": s.ID,
				"bidder":     s.Bidder(),
			})
			return
		default:
			err = fmt.Errorf("session %s: %w - %s", s.ID, biddingerrors.ErrUnexpectedMessage, env.Kind)
		}

		if err != nil {
			utils.Warn("session protocol error", map[string]any{
				"session_id": s.ID,
				"bidder":     s.Bidder(),
				"error":      err.Error(),
			})
			return
		}
	}
}

func (m *Manager) logReadError(s *Session, err error) {
	fields := map[string]any{
		"session_id": s.ID,
		"remote":     s.remote,
		"bidder":     s.Bidder(),
	}

	switch {
	case s.isTerminated():
		utils.Debug("session terminated", fields)
	case errors.Is(err, io.EOF):
		utils.Info("session disconnected", fields)
	case errors.Is(err, biddingerrors.ErrMalformedMessage):
		fields["error"] = err.Error()
		utils.Warn("session protocol error", fields)
	default:
		fields["error"] = err.Error()
		utils.Warn("session transport failure", fields)
	}
}

// SubmitBid stamps and submits a bid on behalf of s, answers s with the outcome and,
// on acceptance, tells every other session about the new high bid. Rejections are not
// errors; the returned error is a protocol violation that should end the session.
func (m *Manager) SubmitBid(s *Session, msg protocol.SubmitBid) error {
	if err := s.bind(msg.Bidder); err != nil {
		return err
	}

	m.bidMu.Lock()
	defer m.bidMu.Unlock()

	bid := models.Bid{
		BidID:    utils.GenerateID(),
		Bidder:   msg.Bidder,
		Amount:   msg.Amount,
		PlacedAt: m.clock.Now(),
	}

	if err := m.state.TryAccept(bid); err != nil {
		var current int64
		if high, highErr := m.state.CurrentHighBid(); highErr == nil {
			current = high.Amount
		}
		m.send(s, protocol.NewBidRejected(biddingerrors.Reason(err), msg.Amount, current))
		utils.Info("bid rejected", map[string]any{
			"session_id": s.ID,
			"bidder":     msg.Bidder,
			"amount":     msg.Amount,
			"reason":     biddingerrors.Reason(err),
		})
		return nil
	}

	utils.Info("bid accepted", map[string]any{
		"session_id": s.ID,
		"bid_id":     bid.BidID,
		"bidder":     bid.Bidder,
		"amount":     bid.Amount,
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	m.send(s, protocol.NewBidAccepted(bid.Amount))
	highBid := protocol.NewHighBid(bid)
	for id, other := range m.sessions {
		if id == s.ID {
			continue
		}
		m.send(other, highBid)
	}
	return nil
}

// Broadcast delivers env to every live session, best effort
func (m *Manager) Broadcast(env protocol.Envelope) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sessions {
		m.send(s, env)
	}
}

// AnnounceRemaining tells every session how long is left
func (m *Manager) AnnounceRemaining(remaining time.Duration) {
	m.Broadcast(protocol.NewTimeRemaining(remaining))
}

// BroadcastClose announces outcome to every session and ends them. Only the first call
// has any effect; later sessions receive the same announcement on connect.
func (m *Manager) BroadcastClose(outcome models.Outcome) {
	m.bidMu.Lock()
	defer m.bidMu.Unlock()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.announcement = protocol.NewAuctionClosed(outcome)

	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		m.send(s, m.announcement)
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Terminate()
	}

	fields := map[string]any{"sessions": len(sessions)}
	if outcome.HasWinner() {
		fields["winner"] = outcome.Winner.Bidder
		fields["amount"] = outcome.Winner.Amount
		utils.Info("auction closed with winner", fields)
		return
	}
	utils.Info("auction closed without bids", fields)
}

// RemoveSession drops s from the broadcast set and ends it. Safe to call repeatedly and
// concurrently with broadcasts.
func (m *Manager) RemoveSession(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	s.Terminate()

	if ok {
		utils.Info("session removed", map[string]any{
			"session_id": s.ID,
			"bidder":     s.Bidder(),
		})
	}
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll ends every live session without announcing anything
func (m *Manager) CloseAll() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Terminate()
	}
}

func (m *Manager) send(s *Session, env protocol.Envelope) {
	if err := s.enqueue(env); err != nil {
		utils.Warn("session notification dropped", map[string]any{
			"session_id": s.ID,
			"kind":       string(env.Kind),
			"error":      err.Error(),
		})
	}
}
