package auctiontimer

import (
	"errors"
	"os"
	"sync/atomic"
	"time"

	"live-auction/internal/models"
	"live-auction/utils"

	"code.cloudfoundry.org/clock"
)

const (
	DefaultWarnWindow   = 10 * time.Second
	DefaultTickInterval = time.Second
)

var ErrAlreadyStarted = errors.New("auction timer already started")

// State is the timer lifecycle: Scheduled -> Running -> Expired
type State int32

const (
	StateScheduled State = iota
	StateRunning
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Auction is the part of the auction state the timer drives
type Auction interface {
	Deadline() time.Time
	Close() models.Outcome
}

// Announcer relays countdown and close notifications to bidders
type Announcer interface {
	AnnounceRemaining(remaining time.Duration)
	BroadcastClose(outcome models.Outcome)
}

// Options controls the closing countdown. Inside WarnWindow the remaining time is
// announced every TickInterval.
type Options struct {
	WarnWindow   time.Duration
	TickInterval time.Duration
}

// Timer closes the auction exactly once when its deadline passes. It is an ifrit.Runner;
// after expiry it keeps running until signaled so the rest of the process group stays up.
type Timer struct {
	auction   Auction
	announcer Announcer
	clock     clock.Clock
	opts      Options

	state   atomic.Int32
	expired chan struct{}
	outcome models.Outcome // set before expired is closed
}

// New creates a timer for auction
func New(auction Auction, announcer Announcer, clk clock.Clock, opts Options) *Timer {
	if opts.WarnWindow < 0 {
		opts.WarnWindow = 0
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	return &Timer{
		auction:   auction,
		announcer: announcer,
		clock:     clk,
		opts:      opts,
		expired:   make(chan struct{}),
	}
}

// State reports where the timer is in its lifecycle
func (t *Timer) State() State {
	return State(t.state.Load())
}

// Expired is closed once the auction has been closed and the outcome broadcast
func (t *Timer) Expired() <-chan struct{} {
	return t.expired
}

// Outcome returns the closing outcome; only meaningful after Expired is closed
func (t *Timer) Outcome() models.Outcome {
	<-t.expired
	return t.outcome
}

func (t *Timer) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	if !t.state.CompareAndSwap(int32(StateScheduled), int32(StateRunning)) {
		return ErrAlreadyStarted
	}

	deadline := t.auction.Deadline()
	utils.Info("auction timer started", map[string]any{
		"deadline":    deadline,
		"warn_window": t.opts.WarnWindow.String(),
	})
	close(ready)

	remaining := deadline.Sub(t.clock.Now())
	if remaining <= 0 {
		t.expire()
		return t.idle(signals)
	}

	timer := t.clock.NewTimer(t.nextWait(remaining))
	defer timer.Stop()

	for {
		select {
		case sig := <-signals:
			utils.Info("auction timer stopped before deadline", map[string]any{
				"signal":    sig.String(),
				"remaining": deadline.Sub(t.clock.Now()).String(),
			})
			return nil
		case <-timer.C():
			remaining = deadline.Sub(t.clock.Now())
			if remaining <= 0 {
				t.expire()
				return t.idle(signals)
			}
			if remaining <= t.opts.WarnWindow {
				utils.Debug("auction time remaining", map[string]any{
					"remaining": remaining.String(),
				})
				t.announcer.AnnounceRemaining(remaining)
			}
			timer.Reset(t.nextWait(remaining))
		}
	}
}

// nextWait sleeps straight to the warn window, then ticks until the deadline
func (t *Timer) nextWait(remaining time.Duration) time.Duration {
	if remaining > t.opts.WarnWindow {
		return remaining - t.opts.WarnWindow
	}
	if remaining < t.opts.TickInterval {
		return remaining
	}
	return t.opts.TickInterval
}

func (t *Timer) expire() {
	t.outcome = t.auction.Close()
	t.announcer.BroadcastClose(t.outcome)
	t.state.Store(int32(StateExpired))
	close(t.expired)

	fields := map[string]any{}
	if t.outcome.HasWinner() {
		fields["winner"] = t.outcome.Winner.Bidder
		fields["amount"] = t.outcome.Winner.Amount
	}
	utils.Info("auction timer expired", fields)
}

func (t *Timer) idle(signals <-chan os.Signal) error {
	sig := <-signals
	utils.Debug("auction timer exiting", map[string]any{"signal": sig.String()})
	return nil
}
