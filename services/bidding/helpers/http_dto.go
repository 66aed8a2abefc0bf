package helpers

import (
	"time"

	"live-auction/internal/models"
)

// Request/Response DTOs
type BidsQuery struct {
	Bidder string `form:"bidder"`
	Limit  *int   `form:"limit" binding:"omitempty,gte=1"`
}

type BidResponse struct {
	BidID    string `json:"bid_id"`
	Bidder   string `json:"bidder"`
	Amount   int64  `json:"amount"`
	PlacedAt string `json:"placed_at"`
}

type LotResponse struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	StartingPrice int64  `json:"starting_price"`
}

type AuctionResponse struct {
	Lot              LotResponse  `json:"lot"`
	Phase            string       `json:"phase"`
	Deadline         string       `json:"deadline"`
	RemainingSeconds int64        `json:"remaining_seconds"`
	BidCount         int          `json:"bid_count"`
	HighBid          *BidResponse `json:"high_bid,omitempty"`
}

// ToBidResponse converts a bid to its wire form
func ToBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:    bid.BidID,
		Bidder:   bid.Bidder,
		Amount:   bid.Amount,
		PlacedAt: bid.PlacedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ToAuctionResponse converts a status view to its wire form
func ToAuctionResponse(status models.AuctionStatus) AuctionResponse {
	resp := AuctionResponse{
		Lot: LotResponse{
			Name:          status.Lot.Name,
			Description:   status.Lot.Description,
			StartingPrice: status.Lot.StartingPrice,
		},
		Phase:            status.Phase,
		Deadline:         status.Deadline.UTC().Format(time.RFC3339),
		RemainingSeconds: status.RemainingSeconds,
		BidCount:         status.BidCount,
	}
	if status.HighBid != nil {
		high := ToBidResponse(*status.HighBid)
		resp.HighBid = &high
	}
	return resp
}
