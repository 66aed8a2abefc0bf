package validator

import (
	"errors"
	"math"
	"testing"
	"time"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPolicy_Validate(t *testing.T) {
	t.Parallel()

	lot := models.Lot{Name: "lamp", Description: "brass desk lamp", StartingPrice: 100}
	now := time.Now()
	high := &models.Bid{Bidder: "alice", Amount: 100, PlacedAt: now}

	tests := []struct {
		name          string
		policy        Policy
		high          *models.Bid
		candidate     models.Bid
		expectedError error
	}{
		{
			name:          "first_bid_below_starting_price",
			policy:        DefaultPolicy,
			candidate:     models.Bid{Bidder: "alice", Amount: 90},
			expectedError: biddingerrors.ErrBelowStartingPrice,
		},
		{
			name:      "first_bid_equal_to_starting_price",
			policy:    DefaultPolicy,
			candidate: models.Bid{Bidder: "alice", Amount: 100},
		},
		{
			name:      "first_bid_above_starting_price",
			policy:    DefaultPolicy,
			candidate: models.Bid{Bidder: "alice", Amount: 250},
		},
		{
			name:          "equal_to_high_bid",
			policy:        DefaultPolicy,
			high:          high,
			candidate:     models.Bid{Bidder: "bob", Amount: 100},
			expectedError: biddingerrors.ErrNotHigherThanCurrentBid,
		},
		{
			name:          "lower_than_high_bid",
			policy:        DefaultPolicy,
			high:          high,
			candidate:     models.Bid{Bidder: "bob", Amount: 99},
			expectedError: biddingerrors.ErrNotHigherThanCurrentBid,
		},
		{
			name:      "one_above_high_bid",
			policy:    DefaultPolicy,
			high:      high,
			candidate: models.Bid{Bidder: "bob", Amount: 101},
		},
		{
			name:          "below_minimum_increment",
			policy:        Policy{MinIncrement: 10},
			high:          high,
			candidate:     models.Bid{Bidder: "bob", Amount: 105},
			expectedError: biddingerrors.ErrBelowMinimumIncrement,
		},
		{
			name:      "meets_minimum_increment",
			policy:    Policy{MinIncrement: 10},
			high:      high,
			candidate: models.Bid{Bidder: "bob", Amount: 110},
		},
		{
			name:          "increment_ignored_when_not_higher",
			policy:        Policy{MinIncrement: 10},
			high:          high,
			candidate:     models.Bid{Bidder: "bob", Amount: 100},
			expectedError: biddingerrors.ErrNotHigherThanCurrentBid,
		},
		{
			name:      "zero_increment_behaves_as_one",
			policy:    Policy{},
			high:      high,
			candidate: models.Bid{Bidder: "bob", Amount: 101},
		},
		{
			name:          "missing_bidder",
			policy:        DefaultPolicy,
			candidate:     models.Bid{Amount: 150},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:          "negative_amount",
			policy:        DefaultPolicy,
			candidate:     models.Bid{Bidder: "alice", Amount: -1},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:      "max_amount",
			policy:    DefaultPolicy,
			high:      high,
			candidate: models.Bid{Bidder: "bob", Amount: math.MaxInt64},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.policy.Validate(lot, tc.high, tc.candidate)
			if tc.expectedError == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
		})
	}
}

func TestValidate_ZeroStartingPrice(t *testing.T) {
	lot := models.Lot{Name: "free", StartingPrice: 0}
	require.NoError(t, Validate(lot, nil, models.Bid{Bidder: "alice", Amount: 0}))
}
