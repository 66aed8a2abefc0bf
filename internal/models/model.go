package models

import "time"

// Lot represents the single item under auction
type Lot struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartingPrice int64  `json:"starting_price"`
}

// Bid represents a bidder's offer on the lot
type Bid struct {
	BidID    string    `json:"bid_id"`
	Bidder   string    `json:"bidder"`
	Amount   int64     `json:"amount"`
	PlacedAt time.Time `json:"placed_at"`
}

// Less orders bids by amount, then by the instant they were placed.
func (b Bid) Less(other Bid) bool {
	if b.Amount != other.Amount {
		return b.Amount < other.Amount
	}
	return b.PlacedAt.Before(other.PlacedAt)
}

// Phase is the lifecycle phase of the auction
type Phase int

const (
	PhaseOpen Phase = iota
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Outcome is the result of closing the auction. Winner is nil when no bid was accepted.
type Outcome struct {
	Winner *Bid `json:"winner,omitempty"`
}

// HasWinner reports whether at least one bid was accepted before close
func (o Outcome) HasWinner() bool {
	return o.Winner != nil
}

// AuctionStatus is a read-only view of the auction at a point in time
type AuctionStatus struct {
	Lot              Lot           `json:"lot"`
	Phase            string        `json:"phase"`
	Deadline         time.Time     `json:"deadline"`
	Remaining        time.Duration `json:"-"`
	RemainingSeconds int64         `json:"remaining_seconds"`
	BidCount         int           `json:"bid_count"`
	HighBid          *Bid          `json:"high_bid,omitempty"`
}
