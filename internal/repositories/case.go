package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/sqlite"
)

type CaseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewCaseRepository(db *sqlite.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		db:     db,
		logger: logger.With(slog.String("source", "CaseRepository")),
	}
}

// Docket loads the cases in trial order.
func (r *CaseRepository) Docket(ctx context.Context) (court.Docket, error) {
	var cases []court.Case
	stmt := `SELECT id, charge, alibi, judge_reaction, velocity, health_note, motility, morphology
FROM cases
ORDER BY id`
	if err := r.db.ReadOnly.SelectContext(ctx, &cases, stmt); err != nil {
		return court.Docket{}, errors.Wrap(err, "select cases")
	}
	docket, err := court.NewDocket(cases)
	if err != nil {
		return court.Docket{}, errors.Wrap(err, "build docket", slog.Int("cases", len(cases)))
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "loaded docket", slog.Int("cases", docket.Len()))
	return docket, nil
}
