package contexthelpers

import (
	"context"
	"net/http"

	"github.com/myrjola/spermcourt/internal/courtroom"
)

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := context.WithValue(r.Context(), currentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	ctx := context.WithValue(r.Context(), cspNonceContextKey, nonce)
	return r.WithContext(ctx)
}

func SetRoom(r *http.Request, room *courtroom.Room) *http.Request {
	ctx := context.WithValue(r.Context(), roomContextKey, room)
	return r.WithContext(ctx)
}
