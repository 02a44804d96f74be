package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/spermcourt/internal/errors"
)

// schemaVersion is stored in PRAGMA user_version. Bump it when schema.sql changes.
const schemaVersion = 1

var ErrNewerSchema = errors.NewSentinel("database schema is newer than this build")

// migrate applies schemaDefinition in a single transaction and records schemaVersion.
//
// The schema only uses IF NOT EXISTS statements so that applying it to an up-to-date database is a no-op. A database
// written by a newer build is refused instead of being downgraded.
func (db *Database) migrate(ctx context.Context, schemaDefinition string) error {
	var (
		err     error
		current int
	)
	if err = db.ReadWrite.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return errors.Wrap(err, "read schema version")
	}
	if current > schemaVersion {
		return errors.Wrap(ErrNewerSchema, "check schema version",
			slog.Int("current", current), slog.Int("supported", schemaVersion))
	}

	tx, err := db.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		// Rollback after commit is a no-op returning sql.ErrTxDone.
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, schemaDefinition); err != nil {
		return errors.Wrap(err, "apply schema")
	}
	// PRAGMA does not accept bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return errors.Wrap(err, "set schema version")
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	if current != schemaVersion {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated schema",
			slog.Int("from", current), slog.Int("to", schemaVersion))
	}
	return nil
}
