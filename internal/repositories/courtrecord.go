package repositories

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/models"
	"github.com/myrjola/spermcourt/internal/sqlite"
)

type CourtRecordRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewCourtRecordRepository(db *sqlite.Database, logger *slog.Logger) *CourtRecordRepository {
	return &CourtRecordRepository{
		db:     db,
		logger: logger.With(slog.String("source", "CourtRecordRepository")),
	}
}

// Insert archives a finished trial.
func (r *CourtRecordRepository) Insert(ctx context.Context, record models.CourtRecord) error {
	stmt := `INSERT INTO court_records
    (id, room_id, score, objections, guilty, record, achievements, grade, remarks, created_at)
VALUES (:id, :room_id, :score, :objections, :guilty, :record, :achievements, :grade, :remarks, :created_at)`
	if _, err := r.db.ReadWrite.NamedExecContext(ctx, stmt, record); err != nil {
		return errors.Wrap(err, "insert court record", slog.String("id", record.ID.String()))
	}
	return nil
}

// Get returns the record with id.
func (r *CourtRecordRepository) Get(ctx context.Context, id uuid.UUID) (models.CourtRecord, error) {
	var record models.CourtRecord
	stmt := `SELECT id, room_id, score, objections, guilty, record, achievements, grade, remarks, created_at
FROM court_records
WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &record, stmt, id); err != nil {
		return models.CourtRecord{}, errors.Wrap(err, "get court record", slog.String("id", id.String()))
	}
	return record, nil
}

// Top returns up to limit records, best score first and earlier trials first on ties.
func (r *CourtRecordRepository) Top(ctx context.Context, limit int) ([]models.CourtRecord, error) {
	var records []models.CourtRecord
	stmt := `SELECT id, room_id, score, objections, guilty, record, achievements, grade, remarks, created_at
FROM court_records
ORDER BY score DESC, created_at
LIMIT ?`
	if err := r.db.ReadOnly.SelectContext(ctx, &records, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select top court records", slog.Int("limit", limit))
	}
	return records, nil
}

// Count returns the number of archived trials.
func (r *CourtRecordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.ReadOnly.GetContext(ctx, &n, `SELECT COUNT(*) FROM court_records`); err != nil {
		return 0, errors.Wrap(err, "count court records")
	}
	return n, nil
}
