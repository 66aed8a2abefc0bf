package validator

import (
	"fmt"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/models"
)

// Policy holds the acceptance rules for bids on a lot
type Policy struct {
	// MinIncrement is the smallest step a new bid must add over the high bid.
	// Values below 1 behave as 1.
	MinIncrement int64
}

// DefaultPolicy accepts any bid strictly above the current high bid
var DefaultPolicy = Policy{MinIncrement: 1}

// Validate decides whether candidate can be accepted given the lot and the current
// high bid (nil when nothing has been accepted yet). It holds no state.
func (p Policy) Validate(lot models.Lot, high *models.Bid, candidate models.Bid) error {
	if candidate.Bidder == "" {
		return fmt.Errorf("validator: %w - missing bidder", biddingerrors.ErrInvalidBid)
	}
	if candidate.Amount < 0 {
		return fmt.Errorf("validator: %w - negative amount %d", biddingerrors.ErrInvalidBid, candidate.Amount)
	}

	if high == nil {
		if candidate.Amount < lot.StartingPrice {
			return fmt.Errorf("validator: %w - starting price is %d", biddingerrors.ErrBelowStartingPrice, lot.StartingPrice)
		}
		return nil
	}

	if candidate.Amount <= high.Amount {
		return fmt.Errorf("validator: %w - current highest bid is %d", biddingerrors.ErrNotHigherThanCurrentBid, high.Amount)
	}

	increment := p.MinIncrement
	if increment < 1 {
		increment = 1
	}
	if candidate.Amount-high.Amount < increment {
		return fmt.Errorf("validator: %w - next acceptable bid is %d", biddingerrors.ErrBelowMinimumIncrement, high.Amount+increment)
	}

	return nil
}

// Validate applies DefaultPolicy
func Validate(lot models.Lot, high *models.Bid, candidate models.Bid) error {
	return DefaultPolicy.Validate(lot, high, candidate)
}
