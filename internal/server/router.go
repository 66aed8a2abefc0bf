package server

import (
	handler "live-auction/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the read-only status API
func SetupRouter(reader handler.AuctionReaderInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(reader)

	auction := router.Group("/auction")
	{
		auction.GET("", auctionHandler.GetAuctionHandler)
		auction.GET("/bids", auctionHandler.GetBidsHandler)
		auction.GET("/winning", auctionHandler.GetWinningBidHandler)
	}

	return router
}
