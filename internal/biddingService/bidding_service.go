package bidding

import (
	"encoding/json"
	"errors"
	"fmt"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/models"
	"live-auction/internal/repository"

	"code.cloudfoundry.org/clock"
)

// SnapshotService answers read-only questions about the auction. It never mutates state
// and never holds the state lock longer than a copy.
type SnapshotService struct {
	repo  repository.AuctionStore
	clock clock.Clock
}

// NewSnapshotService creates a new SnapshotService instance
func NewSnapshotService(repo repository.AuctionStore, clock clock.Clock) *SnapshotService {
	return &SnapshotService{
		repo:  repo,
		clock: clock,
	}
}

// Document is the rendering served on the connectionless snapshot channel
type Document struct {
	Lot       models.Lot   `json:"lot"`
	Phase     string       `json:"phase"`
	Remaining int64        `json:"remaining_seconds"`
	Bids      []models.Bid `json:"bids"`
}

// GetBids returns a consistent point-in-time copy of the accepted bids
func (s *SnapshotService) GetBids() []models.Bid {
	bids := s.repo.Snapshot()
	if bids == nil {
		bids = []models.Bid{}
	}
	return bids
}

// GetWinningBid returns the current high bid
func (s *SnapshotService) GetWinningBid() (models.Bid, error) {
	bid, err := s.repo.CurrentHighBid()
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid: %w", err)
	}
	return bid, nil
}

// GetStatus returns the lot, phase, deadline and high bid
func (s *SnapshotService) GetStatus() models.AuctionStatus {
	return s.repo.Status(s.clock.Now())
}

// Render encodes the current snapshot for the connectionless channel
func (s *SnapshotService) Render() ([]byte, error) {
	status := s.GetStatus()
	doc := Document{
		Lot:       status.Lot,
		Phase:     status.Phase,
		Remaining: status.RemainingSeconds,
		Bids:      s.GetBids(),
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("service: failed to render snapshot: %w", err)
	}
	return out, nil
}

// HasBids reports whether any bid has been accepted
func (s *SnapshotService) HasBids() bool {
	_, err := s.repo.CurrentHighBid()
	return !errors.Is(err, biddingerrors.ErrNoBids)
}
