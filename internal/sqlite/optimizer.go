package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/spermcourt/internal/errors"
)

// Optimize runs PRAGMA optimize once per interval until ctx is done. See https://www.sqlite.org/pragma.html#pragma_optimize.
//
// Expired scs sessions are cleaned up by the session store itself, so this is the only housekeeping needed.
func (db *Database) Optimize(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			if ctx.Err() != nil {
				return
			}
			err = errors.Wrap(err, "optimize database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", errors.SlogError(err))
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database", slog.Duration("duration", time.Since(start)))
	}
}
