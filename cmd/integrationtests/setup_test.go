package integrationtests

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"live-auction/internal/app"
	"live-auction/internal/bidderclient"
	"live-auction/internal/config"
	"live-auction/internal/models"
	"live-auction/internal/protocol"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tedsuo/ifrit"
)

const ioTimeout = 3 * time.Second

// testConfig runs on ephemeral loopback ports with no HTTP listener; the status API is
// exercised through httptest against the same router.
func testConfig() config.Config {
	return config.Config{
		Lot:             models.Lot{Name: "lamp", Description: "brass desk lamp", StartingPrice: 100},
		TCPAddr:         "127.0.0.1:0",
		UDPAddr:         "127.0.0.1:0",
		Duration:        time.Minute,
		TickInterval:    time.Second,
		MinIncrement:    1,
		WriteTimeout:    2 * time.Second,
		OutboxSize:      64,
		SnapshotWorkers: 4,
		SnapshotBurst:   32,
	}
}

// StartAuction runs a full server on a fake clock until the test ends
func StartAuction(t *testing.T, cfg config.Config) (*app.App, *fakeclock.FakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := fakeclock.NewFakeClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	auction := app.New(cfg, clk)

	process := ifrit.Invoke(auction.Runner())
	t.Cleanup(func() {
		process.Signal(os.Interrupt)
		select {
		case err := <-process.Wait():
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("auction server did not shut down")
		}
	})

	select {
	case <-process.Ready():
	case err := <-process.Wait():
		t.Fatalf("auction server failed to start: %v", err)
	}
	return auction, clk
}

// ConnectBidder dials the bidder channel and consumes the greeting
func ConnectBidder(t *testing.T, auction *app.App, name string) (*bidderclient.Client, protocol.Envelope) {
	t.Helper()

	client, err := bidderclient.Dial(auction.BidAddr().String(), ioTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	greeting, err := client.Receive(ioTimeout)
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, client.Join(name))
	}
	return client, greeting
}

// Expect receives the next message and checks its kind
func Expect(t *testing.T, client *bidderclient.Client, kind protocol.Kind) protocol.Envelope {
	t.Helper()
	env, err := client.Receive(ioTimeout)
	require.NoError(t, err)
	require.Equal(t, kind, env.Kind)
	return env
}

// ExpectDisconnect drains until the server closes the connection
func ExpectDisconnect(t *testing.T, client *bidderclient.Client) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if _, err := client.Receive(ioTimeout); err != nil {
			return
		}
	}
	t.Fatal("connection was not closed")
}

// ExecuteRequestAndParse runs a GET against the status API and parses the envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, url string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", url, nil)
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
