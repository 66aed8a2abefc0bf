package repository

import (
	"fmt"
	"sync"
	"time"

	"live-auction/internal/biddingerrors"
	model "live-auction/internal/models"
	"live-auction/internal/validator"
)

// AuctionStore defines the auction state interface shared by sessions, the timer and readers
type AuctionStore interface {
	Lot() model.Lot
	Deadline() time.Time
	Phase() model.Phase
	CurrentHighBid() (model.Bid, error)
	TryAccept(bid model.Bid) error
	Close() model.Outcome
	Snapshot() []model.Bid
	Status(now time.Time) model.AuctionStatus
}

// AuctionState is the single source of truth for one auction run.
// Writers (TryAccept, Close) hold the exclusive lock for read-compare-append;
// readers take the shared lock only long enough to copy.
type AuctionState struct {
	mu       sync.RWMutex
	lot      model.Lot
	deadline time.Time
	policy   validator.Policy
	bids     []model.Bid // ascending by (amount, placed_at), append-only
	phase    model.Phase
	outcome  model.Outcome
}

// NewAuctionState creates an open auction for lot that is due to close at startedAt+duration
func NewAuctionState(lot model.Lot, startedAt time.Time, duration time.Duration, policy validator.Policy) *AuctionState {
	return &AuctionState{
		lot:      lot,
		deadline: startedAt.Add(duration),
		policy:   policy,
		bids:     make([]model.Bid, 0, 16),
		phase:    model.PhaseOpen,
	}
}

// Lot returns the lot under auction
func (s *AuctionState) Lot() model.Lot {
	return s.lot
}

// Deadline returns the instant the auction is due to close
func (s *AuctionState) Deadline() time.Time {
	return s.deadline
}

// Phase returns the current lifecycle phase
func (s *AuctionState) Phase() model.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// CurrentHighBid returns the leading accepted bid
func (s *AuctionState) CurrentHighBid() (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bids) == 0 {
		return model.Bid{}, fmt.Errorf("current high bid for %s: %w", s.lot.Name, biddingerrors.ErrNoBids)
	}
	return s.bids[len(s.bids)-1], nil
}

// TryAccept validates bid against the current high bid and appends it on success.
// A closed auction rejects every bid with ErrAuctionClosed.
func (s *AuctionState) TryAccept(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == model.PhaseClosed {
		return fmt.Errorf("try accept bid from %s: %w", bid.Bidder, biddingerrors.ErrAuctionClosed)
	}

	var high *model.Bid
	if n := len(s.bids); n > 0 {
		high = &s.bids[n-1]
	}
	if err := s.policy.Validate(s.lot, high, bid); err != nil {
		return fmt.Errorf("try accept bid from %s: %w", bid.Bidder, err)
	}

	s.bids = append(s.bids, bid)
	return nil
}

// Close moves the auction to the closed phase and returns the winner.
// Further calls return the same outcome without side effects.
func (s *AuctionState) Close() model.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == model.PhaseClosed {
		return s.outcome
	}

	s.phase = model.PhaseClosed
	if n := len(s.bids); n > 0 {
		winner := s.bids[n-1]
		s.outcome = model.Outcome{Winner: &winner}
	}
	return s.outcome
}

// Snapshot returns a point-in-time copy of the accepted bid history
func (s *AuctionState) Snapshot() []model.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Bid(nil), s.bids...)
}

// Status returns a read model of the auction relative to now
func (s *AuctionState) Status(now time.Time) model.AuctionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	remaining := s.deadline.Sub(now)
	if remaining < 0 || s.phase == model.PhaseClosed {
		remaining = 0
	}

	status := model.AuctionStatus{
		Lot:              s.lot,
		Phase:            s.phase.String(),
		Deadline:         s.deadline,
		Remaining:        remaining,
		RemainingSeconds: int64(remaining / time.Second),
		BidCount:         len(s.bids),
	}
	if n := len(s.bids); n > 0 {
		high := s.bids[n-1]
		status.HighBid = &high
	}
	return status
}
