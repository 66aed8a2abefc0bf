package protocol

import (
	"time"

	"live-auction/internal/models"
)

// Kind identifies the message carried in an Envelope
type Kind string

// inbound, bidder to server
const (
	KindJoin      Kind = "join"
	KindSubmitBid Kind = "submit_bid"
	KindExit      Kind = "exit"
)

// outbound, server to bidder
const (
	KindAuctionOpened Kind = "auction_opened"
	KindBidAccepted   Kind = "bid_accepted"
	KindBidRejected   Kind = "bid_rejected"
	KindHighBid       Kind = "high_bid"
	KindTimeRemaining Kind = "time_remaining"
	KindAuctionClosed Kind = "auction_closed"
)

// Envelope is the unit framed on the bid channel. Exactly one payload field is set,
// matching Kind.
type Envelope struct {
	Kind          Kind           `cbor:"kind"`
	Join          *Join          `cbor:"join,omitempty"`
	SubmitBid     *SubmitBid     `cbor:"submit_bid,omitempty"`
	Exit          *Exit          `cbor:"exit,omitempty"`
	AuctionOpened *AuctionOpened `cbor:"auction_opened,omitempty"`
	BidAccepted   *BidAccepted   `cbor:"bid_accepted,omitempty"`
	BidRejected   *BidRejected   `cbor:"bid_rejected,omitempty"`
	HighBid       *HighBid       `cbor:"high_bid,omitempty"`
	TimeRemaining *TimeRemaining `cbor:"time_remaining,omitempty"`
	AuctionClosed *AuctionClosed `cbor:"auction_closed,omitempty"`
}

type Join struct {
	Bidder string `cbor:"bidder"`
}

type SubmitBid struct {
	Bidder string `cbor:"bidder"`
	Amount int64  `cbor:"amount"`
}

type Exit struct{}

type AuctionOpened struct {
	Lot      models.Lot `cbor:"lot"`
	Deadline time.Time  `cbor:"deadline"`
	HighBid  *HighBid   `cbor:"high_bid,omitempty"`
}

type BidAccepted struct {
	Amount int64 `cbor:"amount"`
}

type BidRejected struct {
	Reason      string `cbor:"reason"`
	Amount      int64  `cbor:"amount"`
	CurrentHigh int64  `cbor:"current_high,omitempty"`
}

type HighBid struct {
	Bidder string `cbor:"bidder"`
	Amount int64  `cbor:"amount"`
}

type TimeRemaining struct {
	Seconds int64 `cbor:"seconds"`
}

// AuctionClosed announces the end of the auction. NoWinner is set when nothing was accepted.
type AuctionClosed struct {
	WinnerBidder string `cbor:"winner_bidder,omitempty"`
	WinnerAmount int64  `cbor:"winner_amount,omitempty"`
	NoWinner     bool   `cbor:"no_winner,omitempty"`
}

func NewJoin(bidder string) Envelope {
	return Envelope{Kind: KindJoin, Join: &Join{Bidder: bidder}}
}

func NewSubmitBid(bidder string, amount int64) Envelope {
	return Envelope{Kind: KindSubmitBid, SubmitBid: &SubmitBid{Bidder: bidder, Amount: amount}}
}

func NewExit() Envelope {
	return Envelope{Kind: KindExit, Exit: &Exit{}}
}

func NewAuctionOpened(lot models.Lot, deadline time.Time, high *models.Bid) Envelope {
	opened := &AuctionOpened{Lot: lot, Deadline: deadline}
	if high != nil {
		opened.HighBid = &HighBid{Bidder: high.Bidder, Amount: high.Amount}
	}
	return Envelope{Kind: KindAuctionOpened, AuctionOpened: opened}
}

func NewBidAccepted(amount int64) Envelope {
	return Envelope{Kind: KindBidAccepted, BidAccepted: &BidAccepted{Amount: amount}}
}

func NewBidRejected(reason string, amount, currentHigh int64) Envelope {
	return Envelope{Kind: KindBidRejected, BidRejected: &BidRejected{Reason: reason, Amount: amount, CurrentHigh: currentHigh}}
}

func NewHighBid(bid models.Bid) Envelope {
	return Envelope{Kind: KindHighBid, HighBid: &HighBid{Bidder: bid.Bidder, Amount: bid.Amount}}
}

func NewTimeRemaining(remaining time.Duration) Envelope {
	return Envelope{Kind: KindTimeRemaining, TimeRemaining: &TimeRemaining{Seconds: int64(remaining / time.Second)}}
}

func NewAuctionClosed(outcome models.Outcome) Envelope {
	closed := &AuctionClosed{NoWinner: true}
	if outcome.HasWinner() {
		closed = &AuctionClosed{WinnerBidder: outcome.Winner.Bidder, WinnerAmount: outcome.Winner.Amount}
	}
	return Envelope{Kind: KindAuctionClosed, AuctionClosed: closed}
}
