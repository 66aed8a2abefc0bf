package app

import (
	"net"
	"os"

	"live-auction/internal/auctiontimer"
	bidding "live-auction/internal/biddingService"
	"live-auction/internal/config"
	"live-auction/internal/listener"
	"live-auction/internal/repository"
	"live-auction/internal/server"
	"live-auction/internal/session"
	"live-auction/internal/validator"

	"code.cloudfoundry.org/clock"
	"github.com/gin-gonic/gin"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"github.com/tedsuo/ifrit/http_server"
)

// App is one auction with every channel that serves it
type App struct {
	State    *repository.AuctionState
	Sessions *session.Manager
	Timer    *auctiontimer.Timer
	Snapshot *bidding.SnapshotService
	Router   *gin.Engine

	bids      *listener.BidListener
	snapshots *listener.SnapshotListener
	httpAddr  string
}

// New builds the auction described by cfg. The clock of the auction starts now.
func New(cfg config.Config, clk clock.Clock) *App {
	state := repository.NewAuctionState(cfg.Lot, clk.Now(), cfg.Duration, validator.Policy{
		MinIncrement: cfg.MinIncrement,
	})

	sessions := session.NewManager(state, clk, session.Options{
		OutboxSize:   cfg.OutboxSize,
		WriteTimeout: cfg.WriteTimeout,
	})

	timer := auctiontimer.New(state, sessions, clk, auctiontimer.Options{
		WarnWindow:   cfg.WarnWindow,
		TickInterval: cfg.TickInterval,
	})

	snapshot := bidding.NewSnapshotService(state, clk)

	return &App{
		State:    state,
		Sessions: sessions,
		Timer:    timer,
		Snapshot: snapshot,
		Router:   server.SetupRouter(snapshot),

		bids: listener.NewBidListener(cfg.TCPAddr, sessions, cfg.MaxSessions),
		snapshots: listener.NewSnapshotListener(cfg.UDPAddr, snapshot, cfg.SnapshotWorkers,
			listener.NewSnapshotLimiter(cfg.SnapshotRate, cfg.SnapshotBurst)),
		httpAddr: cfg.HTTPAddr,
	}
}

// Runner starts the channels in order and the timer last, so no bidder can miss the
// opening window. Shutdown runs in reverse.
func (a *App) Runner() ifrit.Runner {
	members := grouper.Members{
		{Name: "bidder-channel", Runner: a.bids},
		{Name: "snapshot-channel", Runner: a.snapshots},
	}
	if a.httpAddr != "" {
		members = append(members, grouper.Member{Name: "status-api", Runner: http_server.New(a.httpAddr, a.Router)})
	}
	members = append(members, grouper.Member{Name: "auction-timer", Runner: a.Timer})

	return grouper.NewOrdered(os.Interrupt, members)
}

// BidAddr is the bound bidder channel address, nil until it is ready
func (a *App) BidAddr() net.Addr {
	return a.bids.Addr()
}

// SnapshotAddr is the bound snapshot channel address, nil until it is ready
func (a *App) SnapshotAddr() net.Addr {
	return a.snapshots.Addr()
}
