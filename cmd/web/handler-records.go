package main

import (
	"net/http"

	"github.com/myrjola/spermcourt/internal/contexthelpers"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/models"
)

const recordsShown = 20

type recordsTemplateData struct {
	CurrentPath string
	Records     []models.CourtRecord
	Count       int
}

// courtRecords lists the best archived trials.
func (app *application) courtRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := app.records.Top(ctx, recordsShown)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "top court records"))
		return
	}
	count, err := app.records.Count(ctx)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "count court records"))
		return
	}
	app.render(w, r, http.StatusOK, "records", recordsTemplateData{
		CurrentPath: contexthelpers.CurrentPath(ctx),
		Records:     records,
		Count:       count,
	})
}
