package contexthelpers

import (
	"context"

	"github.com/myrjola/spermcourt/internal/courtroom"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	nonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return nonce
}

// Room returns the room of the player making the request. It is set by the room middleware.
func Room(ctx context.Context) *courtroom.Room {
	room, ok := ctx.Value(roomContextKey).(*courtroom.Room)
	if !ok {
		return nil
	}

	return room
}
