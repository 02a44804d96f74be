// Command smoketest plays a perfect trial against a deployed server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/e2etest"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/logging"
)

// reactionWait is a little longer than the judge's default reaction.
const reactionWait = 3 * time.Second

func PlayTrial(ctx context.Context, client *e2etest.Client, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	doc, err := client.SubmitForm(ctx, "/", "/start", nil)
	if err != nil {
		return errors.Wrap(err, "start trial")
	}
	if doc.Find("main#court.trial").Length() != 1 {
		return errors.New("trial page not shown after start")
	}
	if _, err = client.SubmitForm(ctx, "/", "/trial/objection", nil); err != nil {
		return errors.Wrap(err, "raise objection")
	}

	var snap court.Snapshot
	for snap.Screen != court.ScreenVerdict {
		snap = court.Snapshot{}
		if err = client.GetJSON(ctx, "/api/session", &snap); err != nil {
			return errors.Wrap(err, "get session")
		}
		if snap.Reacting || snap.Case == nil {
			time.Sleep(reactionWait)
			continue
		}
		verdict := court.Innocent
		if snap.Case.ShouldBeGuilty() {
			verdict = court.Guilty
		}
		if _, err = client.SubmitForm(ctx, "/", "/trial/judge", url.Values{"verdict": {string(verdict)}}); err != nil {
			return errors.Wrap(err, "judge case", slog.Int("case_id", snap.Case.ID))
		}
		logger.LogAttrs(ctx, slog.LevelDebug, "case judged",
			slog.Int("case_id", snap.Case.ID), slog.String("verdict", string(verdict)))
	}

	doc, err = client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get verdict page")
	}
	if grade := strings.TrimSpace(doc.Find("[data-testid=grade]").Text()); grade == "" {
		return errors.New("verdict page has no grade")
	}
	if !snap.Achievements[0].Unlocked {
		return errors.New("first objection not unlocked")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", baseURL))

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = PlayTrial(ctx, client, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error playing trial", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
