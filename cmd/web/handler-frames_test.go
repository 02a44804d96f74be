package main

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/myrjola/spermcourt/internal/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_frames(t *testing.T) {
	server := startTestServer(t, map[string]string{"COURT_SWARM_SIZE": "7"})
	client := server.Client()
	ctx := context.Background()

	// The first page load opens the room the stream belongs to.
	_, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	dialer := websocket.Dialer{
		HandshakeTimeout: time.Second,
		Jar:              client.HTTPClient().Jar,
	}
	wsURL := "ws" + strings.TrimPrefix(server.URL(), "http") + "/ws/frames"
	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	defer func() {
		assert.NoError(t, conn.Close())
	}()

	var first, second motion.Frame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	require.Len(t, first.Swimmers, 7)
	require.Len(t, first.TipBends, 7)
	require.Greater(t, second.Elapsed, first.Elapsed)
	require.NotEqual(t, first.Swimmers[0].Position, second.Swimmers[0].Position)
}

func Test_application_framesRequireRoom(t *testing.T) {
	server := startTestServer(t, nil)

	wsURL := "ws" + strings.TrimPrefix(server.URL(), "http") + "/ws/frames"
	_, resp, err := websocket.DefaultDialer.DialContext(context.Background(), wsURL, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
