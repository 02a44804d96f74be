package main

import "net/http"

type healthStatus struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// healthy responds with a JSON object indicating that the server is healthy and how many trials are live.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, healthStatus{Status: "ok", Rooms: app.rooms.Len()})
}
