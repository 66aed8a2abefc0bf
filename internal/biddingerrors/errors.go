package biddingerrors

import "errors"

// State-level errors
var (
	ErrNoBids = errors.New("no bids accepted yet")
)

// bid rejection reasons
var (
	ErrInvalidBid              = errors.New("invalid bid")
	ErrBelowStartingPrice      = errors.New("bid below starting price")
	ErrNotHigherThanCurrentBid = errors.New("bid not higher than current bid")
	ErrBelowMinimumIncrement   = errors.New("bid below minimum increment")
	ErrAuctionClosed           = errors.New("auction closed")
)

// protocol errors
var (
	ErrMalformedMessage  = errors.New("malformed message")
	ErrUnexpectedMessage = errors.New("unexpected message")
	ErrBidderMismatch    = errors.New("bidder does not match session identity")
)

// session errors
var (
	ErrSessionClosed       = errors.New("session closed")
	ErrSessionBackpressure = errors.New("session outbox full")
	ErrTooManySessions     = errors.New("too many sessions")
)

// Reason codes sent to bidders on rejection
const (
	ReasonInvalidBid              = "invalid_bid"
	ReasonBelowStartingPrice      = "below_starting_price"
	ReasonNotHigherThanCurrentBid = "not_higher_than_current_bid"
	ReasonBelowMinimumIncrement   = "below_minimum_increment"
	ReasonAuctionClosed           = "auction_closed"
	ReasonUnknown                 = "unknown"
)

// Reason maps a rejection error to its wire reason code
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrAuctionClosed):
		return ReasonAuctionClosed
	case errors.Is(err, ErrBelowStartingPrice):
		return ReasonBelowStartingPrice
	case errors.Is(err, ErrNotHigherThanCurrentBid):
		return ReasonNotHigherThanCurrentBid
	case errors.Is(err, ErrBelowMinimumIncrement):
		return ReasonBelowMinimumIncrement
	case errors.Is(err, ErrInvalidBid):
		return ReasonInvalidBid
	default:
		return ReasonUnknown
	}
}

// IsRejection reports whether err is a validation outcome rather than a failure
func IsRejection(err error) bool {
	return Reason(err) != ReasonUnknown
}
