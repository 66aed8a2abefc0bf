package main

import (
	"os"

	"live-auction/internal/app"
	"live-auction/internal/config"
	"live-auction/utils"

	"code.cloudfoundry.org/clock"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/sigmon"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Fatal("failed to set log level", map[string]any{"error": err.Error()})
	}

	auction := app.New(cfg, clock.NewClock())

	utils.Info("starting auction server", map[string]any{
		"lot":            cfg.Lot.Name,
		"starting_price": cfg.Lot.StartingPrice,
		"duration":       cfg.Duration.String(),
		"deadline":       auction.State.Deadline(),
		"tcp_addr":       cfg.TCPAddr,
		"udp_addr":       cfg.UDPAddr,
		"http_addr":      cfg.HTTPAddr,
	})

	process := ifrit.Invoke(sigmon.New(auction.Runner()))
	if err := <-process.Wait(); err != nil {
		utils.Fatal("auction server exited", map[string]any{"error": err.Error()})
	}
	utils.Info("auction server stopped", nil)
}
