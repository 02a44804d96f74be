// Package courtcmd inspects the docket and the archived trials in the database.
package courtcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/logging"
	"github.com/myrjola/spermcourt/internal/models"
	"github.com/myrjola/spermcourt/internal/repositories"
	"github.com/myrjola/spermcourt/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "court",
	Title: "Court records",
}

func init() {
	Records.Flags().Int("limit", 10, "number of records to list") //nolint:mnd // a screenful
}

var Docket = &cobra.Command{
	Use:     "docket",
	GroupID: "court",
	Short:   "List the cases on trial",
	Long:    "Lists the cases in trial order together with the verdict their health data supports.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(ctx context.Context, db *sqlite.Database, logger *slog.Logger) error {
			docket, err := repositories.NewCaseRepository(db, logger).Docket(ctx)
			if err != nil {
				return errors.Wrap(err, "load docket")
			}
			return writeDocket(cmd.OutOrStdout(), docket)
		})
	},
}

var Records = &cobra.Command{
	Use:     "records",
	GroupID: "court",
	Short:   "List the best archived trials",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return errors.Wrap(err, "limit flag")
		}
		return withDatabase(cmd, func(ctx context.Context, db *sqlite.Database, logger *slog.Logger) error {
			records, recordsErr := repositories.NewCourtRecordRepository(db, logger).Top(ctx, limit)
			if recordsErr != nil {
				return errors.Wrap(recordsErr, "top court records")
			}
			return writeRecords(cmd.OutOrStdout(), records)
		})
	},
}

func withDatabase(
	cmd *cobra.Command,
	f func(ctx context.Context, db *sqlite.Database, logger *slog.Logger) error,
) error {
	ctx := cmd.Context()
	sqliteURL, err := cmd.Flags().GetString("sqlite-url")
	if err != nil {
		return errors.Wrap(err, "sqlite-url flag")
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelWarn,
		ReplaceAttr: nil,
	})))
	db, err := sqlite.NewDatabase(ctx, sqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", sqliteURL))
	}
	defer func() {
		_ = db.Close()
	}()
	return f(ctx, db, logger)
}

func writeDocket(w io.Writer, docket court.Docket) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(tw, "#\tCHARGE\tMOTILITY\tMORPHOLOGY\tSUPPORTED VERDICT")
	for _, c := range docket.Cases() {
		verdict := court.Innocent
		if c.ShouldBeGuilty() {
			verdict = court.Guilty
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d%%\t%s\t%s\n", c.ID, c.Charge, c.Motility, c.Morphology, verdict)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flush docket")
	}
	return nil
}

func writeRecords(w io.Writer, records []models.CourtRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(tw, "SCORE\tRECORD\tGRADE\tOBJECTIONS\tDATE")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", r.Score, r.Record, r.Grade, r.Objections,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "flush records")
	}
	return nil
}
