package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/myrjola/spermcourt/internal/contexthelpers"
	"github.com/myrjola/spermcourt/internal/errors"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = 25 * time.Second
	wsMaxMessageSize = 1 << 10
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: time.Second,
	ReadBufferSize:   1 << 10,
	WriteBufferSize:  1 << 14,
}

// frames streams the poses of the swarm and the judge as JSON text messages at the configured frame rate.
//
// The client only sends control frames. Any data message it sends is discarded.
func (app *application) frames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	room := contexthelpers.Room(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already responded to the client.
		app.logger.LogAttrs(ctx, slog.LevelDebug, "websocket upgrade failed", errors.SlogError(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Reading is required for control frames to be processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, readErr := conn.NextReader(); readErr != nil {
				return
			}
		}
	}()

	frameTicker := time.NewTicker(app.frameInterval)
	defer frameTicker.Stop()
	pingTicker := time.NewTicker(wsPingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-app.shutdown:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(wsWriteWait))
			return
		case <-frameTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err = conn.WriteJSON(room.Frame()); err != nil {
				app.logger.LogAttrs(ctx, slog.LevelDebug, "websocket write failed", errors.SlogError(err))
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
