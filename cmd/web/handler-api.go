package main

import (
	"net/http"

	"github.com/myrjola/spermcourt/internal/contexthelpers"
)

// sessionJSON responds with the player's trial state.
func (app *application) sessionJSON(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, contexthelpers.Room(r.Context()).Snapshot())
}

// sceneJSON responds with the scene description the renderer builds its meshes from.
func (app *application) sceneJSON(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, app.rooms.Stage().Scene())
}
