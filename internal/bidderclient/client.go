package bidderclient

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	bidding "live-auction/internal/biddingService"
	"live-auction/internal/protocol"
)

const snapshotBufferSize = 65535

// Client is a bidder's connection to the auction server
type Client struct {
	conn net.Conn
	dec  *protocol.Decoder

	mu     sync.Mutex // guards enc and bidder
	enc    *protocol.Encoder
	bidder string
}

// Dial connects to the bidder channel at address
func Dial(address string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("bidderclient: dial %s: %w", address, err)
	}
	return &Client{
		conn: conn,
		dec:  protocol.NewDecoder(conn),
		enc:  protocol.NewEncoder(conn),
	}, nil
}

// Join announces the bidder's name; later bids are sent under it
func (c *Client) Join(bidder string) error {
	c.mu.Lock()
	c.bidder = bidder
	c.mu.Unlock()
	return c.send(protocol.NewJoin(bidder))
}

// Bid submits amount under the joined name
func (c *Client) Bid(amount int64) error {
	c.mu.Lock()
	bidder := c.bidder
	c.mu.Unlock()
	return c.BidAs(bidder, amount)
}

// BidAs submits amount under bidder
func (c *Client) BidAs(bidder string, amount int64) error {
	return c.send(protocol.NewSubmitBid(bidder, amount))
}

// Exit asks the server to end the session
func (c *Client) Exit() error {
	return c.send(protocol.NewExit())
}

// Receive waits up to timeout for the next server message; zero waits forever
func (c *Client) Receive(timeout time.Duration) (protocol.Envelope, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return protocol.Envelope{}, fmt.Errorf("bidderclient: %w", err)
	}
	env, err := c.dec.Decode()
	if err != nil {
		return protocol.Envelope{}, fmt.Errorf("bidderclient: receive: %w", err)
	}
	return env, nil
}

// ReceiveKind skips messages until one of kind arrives
func (c *Client) ReceiveKind(kind protocol.Kind, timeout time.Duration) (protocol.Envelope, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return protocol.Envelope{}, fmt.Errorf("bidderclient: no %s within %s", kind, timeout)
		}
		env, err := c.Receive(remaining)
		if err != nil {
			return protocol.Envelope{}, err
		}
		if env.Kind == kind {
			return env, nil
		}
	}
}

// Close drops the connection without saying goodbye
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(env protocol.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(env); err != nil {
		return fmt.Errorf("bidderclient: send %s: %w", env.Kind, err)
	}
	return nil
}

// FetchSnapshot asks the snapshot channel at address for the current bid list
func FetchSnapshot(address string, timeout time.Duration) (bidding.Document, error) {
	conn, err := net.Dial("udp", address)
	if err != nil {
		return bidding.Document{}, fmt.Errorf("bidderclient: dial snapshot %s: %w", address, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return bidding.Document{}, fmt.Errorf("bidderclient: %w", err)
	}
	if _, err := conn.Write([]byte("snapshot")); err != nil {
		return bidding.Document{}, fmt.Errorf("bidderclient: request snapshot: %w", err)
	}

	buf := make([]byte, snapshotBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return bidding.Document{}, fmt.Errorf("bidderclient: read snapshot: %w", err)
	}

	var doc bidding.Document
	if err := json.Unmarshal(buf[:n], &doc); err != nil {
		return bidding.Document{}, fmt.Errorf("bidderclient: decode snapshot: %w", err)
	}
	return doc, nil
}
