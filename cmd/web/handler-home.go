package main

import (
	"net/http"
	"strconv"

	"github.com/myrjola/spermcourt/internal/contexthelpers"
	"github.com/myrjola/spermcourt/internal/court"
)

type courtTemplateData struct {
	CurrentPath string
	court.Snapshot
}

func newCourtTemplateData(r *http.Request, snap court.Snapshot) courtTemplateData {
	return courtTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
		Snapshot:    snap,
	}
}

// home renders the page of the screen the player is on.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	snap := contexthelpers.Room(r.Context()).Snapshot()
	app.render(w, r, http.StatusOK, snap.Screen.String(), newCourtTemplateData(r, snap))
}

func (app *application) start(w http.ResponseWriter, r *http.Request) {
	snap := contexthelpers.Room(r.Context()).Start(r.Context())
	app.respondWithPage(w, r, snap)
}

func (app *application) objection(w http.ResponseWriter, r *http.Request) {
	snap := contexthelpers.Room(r.Context()).Objection(r.Context())
	app.respondWithTrialState(w, r, snap)
}

func (app *application) judge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	caseIndex, err := strconv.Atoi(r.PostForm.Get("case"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	verdict, ok := court.ParseVerdict(r.PostForm.Get("verdict"))
	if !ok {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	snap := contexthelpers.Room(r.Context()).Judge(r.Context(), caseIndex, verdict)
	app.respondWithTrialState(w, r, snap)
}

func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	room := contexthelpers.Room(r.Context())
	var snap court.Snapshot
	switch r.PostForm.Get("to") {
	case "", "trial":
		snap = room.Reset(r.Context())
	case "intro":
		snap = room.ResetToIntro(r.Context())
	default:
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	app.respondWithPage(w, r, snap)
}

// respondWithPage answers htmx with the main element of the current screen. Plain form posts are redirected home.
func (app *application) respondWithPage(w http.ResponseWriter, r *http.Request, snap court.Snapshot) {
	if !app.htmx.NewHandler(w, r).Request().HxRequest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.renderFragment(w, r, http.StatusOK, snap.Screen.String(), "page", newCourtTemplateData(r, snap))
}

// respondWithTrialState answers htmx with the trial state fragment. When the trial has ended, the fragment loads the
// verdict page. Plain form posts are redirected home.
func (app *application) respondWithTrialState(w http.ResponseWriter, r *http.Request, snap court.Snapshot) {
	if !app.htmx.NewHandler(w, r).Request().HxRequest {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.renderFragment(w, r, http.StatusOK, "trial", "trial-state", newCourtTemplateData(r, snap))
}
