package main

import (
	"io/fs"
	"net/http"

	htmxmiddleware "github.com/donseba/go-htmx/middleware"
	"github.com/justinas/alice"
	"github.com/myrjola/spermcourt/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.StripPrefix("/static", http.FileServerFS(static))
	mux.Handle("GET /static/", cacheForeverHeaders(fileServer))
	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext, htmxmiddleware.MiddleWare)
	page := alice.New(func(next http.Handler) http.Handler {
		return timeoutHandler(next, defaultTimeout)
	}).Extend(session).Append(app.room)

	mux.Handle("GET /{$}", page.ThenFunc(app.home))
	mux.Handle("POST /start", page.ThenFunc(app.start))
	mux.Handle("POST /trial/objection", page.ThenFunc(app.objection))
	mux.Handle("POST /trial/judge", page.ThenFunc(app.judge))
	mux.Handle("POST /reset", page.ThenFunc(app.reset))
	mux.Handle("GET /records", page.ThenFunc(app.courtRecords))
	mux.Handle("GET /api/session", page.ThenFunc(app.sessionJSON))
	mux.Handle("GET /api/scene", page.ThenFunc(app.sceneJSON))

	// Streams outlive the timeout handler and must not rewrite the session cookie after the response has started.
	stream := alice.New(app.serverSentEventMiddleware, noSurf, commonContext, app.existingRoom)
	mux.Handle("GET /trial/events", stream.ThenFunc(app.trialEvents))
	mux.Handle("GET /ws/frames", stream.ThenFunc(app.frames))

	return alice.New(app.recoverPanic, app.logRequest, app.secureHeaders).Then(mux)
}
