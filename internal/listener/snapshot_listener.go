package listener

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"live-auction/utils"

	"code.cloudfoundry.org/workpool"
	"golang.org/x/time/rate"
)

const (
	maxDatagramSize = 65535
	maxReplySize    = 65507 // largest IPv4 UDP payload
)

// Renderer produces the reply body for a snapshot request
type Renderer interface {
	Render() ([]byte, error)
}

// NewSnapshotLimiter builds the request limiter; a non-positive perSecond disables limiting
func NewSnapshotLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// SnapshotListener answers every datagram with the current bid snapshot. Requests
// carry no meaning; replies are rendered on a bounded worker pool.
type SnapshotListener struct {
	address  string
	renderer Renderer
	workers  int
	limiter  *rate.Limiter

	mu   sync.Mutex
	addr net.Addr
}

// NewSnapshotListener creates an ifrit runner for the snapshot channel. A nil limiter
// admits every request.
func NewSnapshotListener(address string, renderer Renderer, workers int, limiter *rate.Limiter) *SnapshotListener {
	if workers <= 0 {
		workers = 1
	}
	if limiter == nil {
		limiter = NewSnapshotLimiter(0, 0)
	}
	return &SnapshotListener{
		address:  address,
		renderer: renderer,
		workers:  workers,
		limiter:  limiter,
	}
}

// Addr returns the bound address once the runner is ready, nil before
func (l *SnapshotListener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addr
}

func (l *SnapshotListener) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	pool, err := workpool.NewWorkPool(l.workers)
	if err != nil {
		return fmt.Errorf("listener: snapshot pool: %w", err)
	}
	defer pool.Stop()

	pc, err := net.ListenPacket("udp", l.address)
	if err != nil {
		return fmt.Errorf("listener: bind snapshot channel %s: %w", l.address, err)
	}

	l.mu.Lock()
	l.addr = pc.LocalAddr()
	l.mu.Unlock()

	utils.Info("snapshot channel listening", map[string]any{
		"address": pc.LocalAddr().String(),
		"workers": l.workers,
	})

	readDone := make(chan error, 1)
	go func() {
		readDone <- l.readLoop(pc, pool)
	}()

	close(ready)

	select {
	case sig := <-signals:
		utils.Info("snapshot channel shutting down", map[string]any{"signal": sig.String()})
		_ = pc.Close()
		return <-readDone
	case err := <-readDone:
		_ = pc.Close()
		return err
	}
}

func (l *SnapshotListener) readLoop(pc net.PacketConn, pool *workpool.WorkPool) error {
	buf := make([]byte, maxDatagramSize)
	for {
		_, from, err := pc.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("listener: read snapshot request: %w", err)
		}

		if !l.limiter.Allow() {
			utils.Debug("snapshot request shed", map[string]any{"remote": from.String()})
			continue
		}

		pool.Submit(func() {
			l.reply(pc, from)
		})
	}
}

func (l *SnapshotListener) reply(pc net.PacketConn, to net.Addr) {
	body, err := l.renderer.Render()
	if err != nil {
		utils.Error("snapshot render failed", map[string]any{
			"remote": to.String(),
			"error":  err.Error(),
		})
		return
	}
	if len(body) > maxReplySize {
		utils.Warn("snapshot too large for one datagram", map[string]any{
			"remote": to.String(),
			"bytes":  len(body),
		})
		return
	}
	if _, err := pc.WriteTo(body, to); err != nil {
		utils.Debug("snapshot reply failed", map[string]any{
			"remote": to.String(),
			"error":  err.Error(),
		})
	}
}
