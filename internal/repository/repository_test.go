package repository

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"live-auction/internal/biddingerrors"
	model "live-auction/internal/models"
	"live-auction/internal/validator"

	"github.com/stretchr/testify/require"
)

// Helper to create a new Lot
func newLot(startingPrice int64) model.Lot {
	return model.Lot{
		Name:          "lamp",
		Description:   "brass desk lamp",
		StartingPrice: startingPrice,
	}
}

// Helper to create a new Bid
func newBid(bidder string, amount int64, placedAt time.Time) model.Bid {
	return model.Bid{
		BidID:    fmt.Sprintf("%s-%d", bidder, amount),
		Bidder:   bidder,
		Amount:   amount,
		PlacedAt: placedAt,
	}
}

func newState(startingPrice int64) *AuctionState {
	return NewAuctionState(newLot(startingPrice), time.Now(), time.Minute, validator.DefaultPolicy)
}

// Test TryAccept against the bidding scenario from the lot's opening to close
func TestAuctionState_Scenario(t *testing.T) {
	t.Parallel()

	state := newState(100)
	now := time.Now()

	steps := []struct {
		name          string
		bid           model.Bid
		expectedError error
	}{
		{name: "alice_below_starting_price", bid: newBid("alice", 90, now), expectedError: biddingerrors.ErrBelowStartingPrice},
		{name: "alice_at_starting_price", bid: newBid("alice", 100, now.Add(time.Second))},
		{name: "bob_ties_high_bid", bid: newBid("bob", 100, now.Add(2*time.Second)), expectedError: biddingerrors.ErrNotHigherThanCurrentBid},
		{name: "bob_outbids", bid: newBid("bob", 150, now.Add(3*time.Second))},
	}

	// steps run in order; they share the state
	for _, step := range steps {
		err := state.TryAccept(step.bid)
		if step.expectedError == nil {
			require.NoError(t, err, step.name)
			continue
		}
		require.True(t, errors.Is(err, step.expectedError), "%s: expected %v, got %v", step.name, step.expectedError, err)
	}

	outcome := state.Close()
	require.True(t, outcome.HasWinner())
	require.Equal(t, "bob", outcome.Winner.Bidder)
	require.Equal(t, int64(150), outcome.Winner.Amount)
	require.Equal(t, model.PhaseClosed, state.Phase())
}

// Test Close on an auction without bids
func TestAuctionState_CloseWithoutBids(t *testing.T) {
	t.Parallel()

	state := newState(100)
	outcome := state.Close()
	require.False(t, outcome.HasWinner())
	require.Nil(t, outcome.Winner)

	_, err := state.CurrentHighBid()
	require.True(t, errors.Is(err, biddingerrors.ErrNoBids))
}

// Test that Close is idempotent
func TestAuctionState_CloseIdempotent(t *testing.T) {
	t.Parallel()

	state := newState(10)
	require.NoError(t, state.TryAccept(newBid("alice", 10, time.Now())))

	first := state.Close()
	second := state.Close()

	require.Equal(t, first, second)
	require.Equal(t, *first.Winner, *second.Winner)
	require.Len(t, state.Snapshot(), 1)
}

// Test that a closed auction rejects every bid and keeps its history
func TestAuctionState_ClosedImmutability(t *testing.T) {
	t.Parallel()

	state := newState(100)
	require.NoError(t, state.TryAccept(newBid("alice", 120, time.Now())))
	state.Close()
	before := state.Snapshot()

	amounts := []int64{0, 50, 120, 121, 1_000_000}
	for _, amount := range amounts {
		err := state.TryAccept(newBid("bob", amount, time.Now()))
		require.True(t, errors.Is(err, biddingerrors.ErrAuctionClosed), "amount %d: got %v", amount, err)
	}

	require.Equal(t, before, state.Snapshot())
}

// Test CurrentHighBid
func TestAuctionState_CurrentHighBid(t *testing.T) {
	t.Parallel()

	state := newState(0)
	now := time.Now()
	require.NoError(t, state.TryAccept(newBid("alice", 5, now)))
	require.NoError(t, state.TryAccept(newBid("bob", 7, now.Add(time.Millisecond))))

	high, err := state.CurrentHighBid()
	require.NoError(t, err)
	require.Equal(t, "bob", high.Bidder)
	require.Equal(t, int64(7), high.Amount)
}

// Test that Snapshot returns a copy the caller cannot use to mutate state
func TestAuctionState_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	state := newState(0)
	require.NoError(t, state.TryAccept(newBid("alice", 1, time.Now())))

	snap := state.Snapshot()
	snap[0].Amount = 999
	snap = append(snap, newBid("mallory", 1000, time.Now()))

	fresh := state.Snapshot()
	require.Len(t, fresh, 1)
	require.Equal(t, int64(1), fresh[0].Amount)
}

// Test Status
func TestAuctionState_Status(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	state := NewAuctionState(newLot(100), start, time.Minute, validator.DefaultPolicy)

	status := state.Status(start.Add(20 * time.Second))
	require.Equal(t, "open", status.Phase)
	require.Equal(t, int64(40), status.RemainingSeconds)
	require.Equal(t, start.Add(time.Minute), status.Deadline)
	require.Nil(t, status.HighBid)

	require.NoError(t, state.TryAccept(newBid("alice", 100, start.Add(21*time.Second))))
	state.Close()

	status = state.Status(start.Add(30 * time.Second))
	require.Equal(t, "closed", status.Phase)
	require.Equal(t, int64(0), status.RemainingSeconds)
	require.Equal(t, 1, status.BidCount)
	require.NotNil(t, status.HighBid)
	require.Equal(t, "alice", status.HighBid.Bidder)
}

// Test that concurrently accepted bids are strictly increasing
func TestAuctionState_ConcurrentMonotonicity(t *testing.T) {
	t.Parallel()

	state := newState(100)

	var wg sync.WaitGroup
	bidders := 20
	bidsPerBidder := 50

	for i := 0; i < bidders; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			for j := 0; j < bidsPerBidder; j++ {
				amount := int64(100 + j*bidders + i)
				err := state.TryAccept(newBid(fmt.Sprintf("bidder-%d", i), amount, time.Now()))
				if err != nil {
					require.True(t, biddingerrors.IsRejection(err), "unexpected error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	bids := state.Snapshot()
	require.NotEmpty(t, bids)
	for i := 1; i < len(bids); i++ {
		require.Greater(t, bids[i].Amount, bids[i-1].Amount)
	}
	require.True(t, sort.SliceIsSorted(bids, func(i, j int) bool { return bids[i].Less(bids[j]) }))
}

// Test that snapshots taken during writes never observe a torn entry
func TestAuctionState_SnapshotConsistency(t *testing.T) {
	t.Parallel()

	state := newState(0)
	const total = 500

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			bidder := fmt.Sprintf("bidder-%d", i)
			require.NoError(t, state.TryAccept(model.Bid{
				BidID:    bidder,
				Bidder:   bidder,
				Amount:   int64(i),
				PlacedAt: time.Now(),
			}))
		}
	}()

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				for i, bid := range state.Snapshot() {
					require.Equal(t, int64(i), bid.Amount)
					require.Equal(t, fmt.Sprintf("bidder-%d", i), bid.Bidder)
					require.Equal(t, bid.Bidder, bid.BidID)
				}
			}
		}()
	}

	<-done
	wg.Wait()
	require.Len(t, state.Snapshot(), total)
}
