package net

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/townsfolk/internal/command"
	"github.com/l1jgo/townsfolk/internal/world"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	hub := NewHub(16, time.Second, zap.NewNop())
	srv, err := NewServer("127.0.0.1:0", SessionOptions{InQueueSize: 8, OutQueueSize: 8}, hub, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.listener.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func nextSession(t *testing.T, srv *Server) *Session {
	t.Helper()
	select {
	case s := <-srv.NewSessions():
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no session arrived")
		return nil
	}
}

func TestPlaySessionRoundTrip(t *testing.T) {
	srv, ts := testServer(t)
	conn := dial(t, ts, "/play")
	sess := nextSession(t, srv)
	assert.Equal(t, command.StateNaming, sess.State())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Aldric\n\n  look  ")))
	for _, want := range []string{"Aldric", "look"} {
		select {
		case got := <-sess.InQueue:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("line %q never queued", want)
		}
	}

	sess.Send("Welcome, Aldric.")
	sess.Send("")
	sess.FlushOutput()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.Equal(t, "Welcome, Aldric.", string(msg))
}

func TestSessionCloseFlushesQueuedOutput(t *testing.T) {
	srv, ts := testServer(t)
	conn := dial(t, ts, "/play")
	sess := nextSession(t, srv)

	sess.Send("Goodbye.")
	sess.FlushOutput()
	sess.Close()
	assert.True(t, sess.IsClosed())
	assert.Equal(t, command.StateDisconnecting, sess.State())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "Goodbye.", string(msg))

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))

	// sends after close are ignored
	sess.Send("too late")
	sess.FlushOutput()
}

func TestSpectatorRegionFilter(t *testing.T) {
	srv, ts := testServer(t)
	conn := dial(t, ts, "/watch?region=1")

	require.Eventually(t, func() bool { return srv.hub.Watchers() == 1 }, 2*time.Second, 10*time.Millisecond)

	srv.hub.Narrate(world.Coordinates{Region: 0, Subregion: 0, Room: 0}, "Elsewhere.")
	srv.hub.Narrate(world.Coordinates{Region: 1, Subregion: 2, Room: 3}, "A goblin has arrived.")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3] A goblin has arrived.", string(msg))
}

func TestSpectatorBadRegionRejected(t *testing.T) {
	_, ts := testServer(t)
	conn := dial(t, ts, "/watch?region=north")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseUnsupportedData))
}

func TestHubDropsForSlowWatchers(t *testing.T) {
	hub := NewHub(1, time.Second, zap.NewNop())
	w := hub.add(allRegions)
	defer hub.remove(w)

	at := world.Coordinates{}
	hub.Narrate(at, "one")
	hub.Narrate(at, "two")
	assert.Equal(t, uint64(1), hub.Dropped())
	assert.Equal(t, "[0, 0, 0] one", <-w.out)
}
