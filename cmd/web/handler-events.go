package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/myrjola/spermcourt/internal/contexthelpers"
	"github.com/myrjola/spermcourt/internal/errors"
)

// trialEvents streams the rendered trial state as Server Sent Events named "state" until the client disconnects.
func (app *application) trialEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	room := contexthelpers.Room(ctx)

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "disable write deadline"))
		return
	}
	if err := rc.SetReadDeadline(time.Time{}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "disable read deadline"))
		return
	}

	snapshots, unsubscribe := app.rooms.Subscribe(room)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-app.shutdown:
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			buf, err := app.pages.execute(r, "trial", "trial-state", true, newCourtTemplateData(r, snap))
			if err != nil {
				app.logger.LogAttrs(ctx, slog.LevelError, "failed to render trial state", errors.SlogError(err))
				return
			}
			if err = writeEvent(w, "state", buf.String()); err != nil {
				return
			}
			if err = rc.Flush(); err != nil {
				return
			}
		}
	}
}

// writeEvent writes one event in the text/event-stream format. Every line of data gets its own data field.
func writeEvent(w io.Writer, event string, data string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", event)
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		fmt.Fprintf(&b, "data: %s\n", strings.TrimSuffix(line, "\r"))
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write event", slog.String("event", event))
	}
	return nil
}
