package bidderclient

import (
	"net"
	"testing"
	"time"

	"live-auction/internal/protocol"

	"github.com/stretchr/testify/require"
)

func TestClient_SendsUnderJoinedName(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan protocol.Envelope, 3)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = protocol.NewEncoder(conn).Encode(protocol.NewBidAccepted(42))
		dec := protocol.NewDecoder(conn)
		for i := 0; i < 3; i++ {
			env, err := dec.Decode()
			if err != nil {
				return
			}
			received <- env
		}
	}()

	client, err := Dial(ln.Addr().String(), time.Second)
	require.NoError(t, err)
	defer client.Close()

	env, err := client.Receive(time.Second)
	require.NoError(t, err)
	require.Equal(t, protocol.KindBidAccepted, env.Kind)

	require.NoError(t, client.Join("alice"))
	require.NoError(t, client.Bid(120))
	require.NoError(t, client.Exit())

	for _, want := range []protocol.Kind{protocol.KindJoin, protocol.KindSubmitBid, protocol.KindExit} {
		select {
		case got := <-received:
			require.Equal(t, want, got.Kind)
			if got.Kind == protocol.KindSubmitBid {
				require.Equal(t, "alice", got.SubmitBid.Bidder)
				require.Equal(t, int64(120), got.SubmitBid.Amount)
			}
		case <-time.After(time.Second):
			t.Fatalf("server never received %s", want)
		}
	}
}

func TestClient_ReceiveTimesOut(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			time.Sleep(time.Second)
		}
	}()

	client, err := Dial(ln.Addr().String(), time.Second)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.ReceiveKind(protocol.KindHighBid, 50*time.Millisecond)
	require.Error(t, err)
}

func TestFetchSnapshot(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	go func() {
		buf := make([]byte, 64)
		_, from, err := pc.ReadFrom(buf)
		if err != nil {
			return
		}
		_, _ = pc.WriteTo([]byte(`{"lot":{"name":"lamp"},"phase":"open","remaining_seconds":12,"bids":[{"bidder":"bob","amount":150}]}`), from)
	}()

	doc, err := FetchSnapshot(pc.LocalAddr().String(), time.Second)
	require.NoError(t, err)
	require.Equal(t, "lamp", doc.Lot.Name)
	require.Equal(t, "open", doc.Phase)
	require.Equal(t, int64(12), doc.Remaining)
	require.Len(t, doc.Bids, 1)
	require.Equal(t, int64(150), doc.Bids[0].Amount)
}

func TestFetchSnapshot_NoReply(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	_, err = FetchSnapshot(pc.LocalAddr().String(), 100*time.Millisecond)
	require.Error(t, err)
}
