// Command migratetest migrates a copy of a production database and checks that the docket and the court records
// survive.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/repositories"
	"github.com/myrjola/spermcourt/internal/sqlite"
	"github.com/myrjola/spermcourt/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("COURT_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "COURT_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	var docket court.Docket
	if docket, err = repositories.NewCaseRepository(db, logger).Docket(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error loading docket", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "docket loaded", slog.Int("cases", docket.Len()))

	var count int
	if count, err = repositories.NewCourtRecordRepository(db, logger).Count(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting court records", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "court record count", slog.Int("count", count))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
