package handler

import (
	"errors"
	"fmt"
	"net/http"

	"live-auction/internal/biddingerrors"
	"live-auction/internal/models"
	"live-auction/services/bidding/helpers"
	"live-auction/utils"

	"github.com/gin-gonic/gin"
)

type AuctionReaderInterface interface {
	GetStatus() models.AuctionStatus
	GetBids() []models.Bid
	GetWinningBid() (models.Bid, error)
}

type AuctionHandler struct {
	reader AuctionReaderInterface
}

func NewAuctionHandler(reader AuctionReaderInterface) *AuctionHandler {
	return &AuctionHandler{reader: reader}
}

// GetAuctionHandler handles GET /auction
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	status := h.reader.GetStatus()

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(status), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"phase":     status.Phase,
		"bid_count": status.BidCount,
	})
}

// GetBidsHandler handles GET /auction/bids?bidder=&limit=
func (h *AuctionHandler) GetBidsHandler(c *gin.Context) {
	var query helpers.BidsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		helpers.HandleBindError(c, "GetBidsHandler", err)
		return
	}

	bids := h.reader.GetBids()

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		if query.Bidder != "" && bid.Bidder != query.Bidder {
			continue
		}
		resp = append(resp, helpers.ToBidResponse(bid))
	}
	// limit keeps the most recent, i.e. highest, bids
	if query.Limit != nil && len(resp) > *query.Limit {
		resp = resp[len(resp)-*query.Limit:]
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"bidder": query.Bidder,
		"count":  len(resp),
	})
}

// GetWinningBidHandler handles GET /auction/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	bid, err := h.reader.GetWinningBid()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, status, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", nil)
			return
		}
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id": bid.BidID,
		"bidder": bid.Bidder,
		"amount": bid.Amount,
	})
}
