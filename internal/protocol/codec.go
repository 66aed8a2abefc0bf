package protocol

import (
	"errors"
	"fmt"
	"io"

	"live-auction/internal/biddingerrors"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1024,
		MaxMapPairs:      1024,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encoder writes envelopes as a stream of CBOR data items
type Encoder struct {
	enc *cbor.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: encMode.NewEncoder(w)}
}

// Encode writes one envelope
func (e *Encoder) Encode(env Envelope) error {
	if err := e.enc.Encode(env); err != nil {
		return fmt.Errorf("protocol: encode %s: %w", env.Kind, err)
	}
	return nil
}

// Decoder reads envelopes from a stream of CBOR data items
type Decoder struct {
	dec *cbor.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: decMode.NewDecoder(r)}
}

// Decode reads the next envelope. io.EOF is returned unchanged when the peer closed
// the stream between messages; anything undecodable wraps ErrMalformedMessage.
func (d *Decoder) Decode() (Envelope, error) {
	var env Envelope
	if err := d.dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return Envelope{}, io.EOF
		}
		// transport failures pass through so callers can tell them from bad input
		var transportErr interface{ Timeout() bool }
		if errors.As(err, &transportErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Envelope{}, err
		}
		return Envelope{}, fmt.Errorf("protocol: %w: %v", biddingerrors.ErrMalformedMessage, err)
	}
	if err := env.validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// validate checks that the payload matching Kind is present
func (env Envelope) validate() error {
	var ok bool
	switch env.Kind {
	case KindJoin:
		ok = env.Join != nil
	case KindSubmitBid:
		ok = env.SubmitBid != nil
	case KindExit:
		ok = true
	case KindAuctionOpened:
		ok = env.AuctionOpened != nil
	case KindBidAccepted:
		ok = env.BidAccepted != nil
	case KindBidRejected:
		ok = env.BidRejected != nil
	case KindHighBid:
		ok = env.HighBid != nil
	case KindTimeRemaining:
		ok = env.TimeRemaining != nil
	case KindAuctionClosed:
		ok = env.AuctionClosed != nil
	default:
		return fmt.Errorf("protocol: %w: unknown kind %q", biddingerrors.ErrMalformedMessage, env.Kind)
	}
	if !ok {
		return fmt.Errorf("protocol: %w: missing %s payload", biddingerrors.ErrMalformedMessage, env.Kind)
	}
	return nil
}
