package listener

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"live-auction/internal/biddingerrors"
	"live-auction/utils"
)

// Server runs one bidder session per accepted connection
type Server interface {
	Serve(conn net.Conn)
	CloseAll()
}

// BidListener accepts bidder connections and hands each to the session server.
// MaxSessions caps concurrent sessions; zero means unlimited.
type BidListener struct {
	address     string
	server      Server
	maxSessions int

	mu   sync.Mutex
	addr net.Addr
}

// NewBidListener creates an ifrit runner listening for bidders on address
func NewBidListener(address string, server Server, maxSessions int) *BidListener {
	return &BidListener{
		address:     address,
		server:      server,
		maxSessions: maxSessions,
	}
}

// Addr returns the bound address once the runner is ready, nil before
func (l *BidListener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addr
}

func (l *BidListener) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	ln, err := net.Listen("tcp", l.address)
	if err != nil {
		return fmt.Errorf("listener: bind bidder channel %s: %w", l.address, err)
	}

	l.mu.Lock()
	l.addr = ln.Addr()
	l.mu.Unlock()

	utils.Info("bidder channel listening", map[string]any{
		"address":      ln.Addr().String(),
		"max_sessions": l.maxSessions,
	})

	var wg sync.WaitGroup
	acceptDone := make(chan error, 1)
	go func() {
		acceptDone <- l.acceptLoop(ln, &wg)
	}()

	close(ready)

	select {
	case sig := <-signals:
		utils.Info("bidder channel shutting down", map[string]any{"signal": sig.String()})
		_ = ln.Close()
		<-acceptDone
		l.server.CloseAll()
		wg.Wait()
		return nil
	case err := <-acceptDone:
		l.server.CloseAll()
		wg.Wait()
		return err
	}
}

func (l *BidListener) acceptLoop(ln net.Listener, wg *sync.WaitGroup) error {
	var slots chan struct{}
	if l.maxSessions > 0 {
		slots = make(chan struct{}, l.maxSessions)
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				utils.Warn("bidder accept failed", map[string]any{"error": err.Error()})
				continue
			}
			return fmt.Errorf("listener: accept bidder: %w", err)
		}

		if slots != nil {
			select {
			case slots <- struct{}{}:
			default:
				utils.Warn("bidder connection refused", map[string]any{
					"remote": conn.RemoteAddr().String(),
					"error":  biddingerrors.ErrTooManySessions.Error(),
				})
				_ = conn.Close()
				continue
			}
		}

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			if slots != nil {
				defer func() { <-slots }()
			}
			l.server.Serve(c)
		}(conn)
	}
}
