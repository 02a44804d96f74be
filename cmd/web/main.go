package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/myrjola/spermcourt/internal/ai"
	"github.com/myrjola/spermcourt/internal/broker"
	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/courtroom"
	"github.com/myrjola/spermcourt/internal/envstruct"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/logging"
	"github.com/myrjola/spermcourt/internal/models"
	"github.com/myrjola/spermcourt/internal/motion"
	"github.com/myrjola/spermcourt/internal/pprofserver"
	"github.com/myrjola/spermcourt/internal/random"
	"github.com/myrjola/spermcourt/internal/repositories"
	"github.com/myrjola/spermcourt/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	pages          *pageTemplates
	rooms          *courtroom.Registry
	records        *repositories.CourtRecordRepository
	frameInterval  time.Duration
	// shutdown is closed when the server starts shutting down so that streaming handlers return.
	shutdown chan struct{}
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"COURT_ADDR" envDefault:"localhost:4000"`
	// PprofAddr is the address to listen on for pprof. Empty disables pprof.
	PprofAddr string `env:"COURT_PPROF_ADDR" envDefault:""`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"COURT_SQLITE_URL" envDefault:"./spermcourt.sqlite3"`
	// SwarmSize is the number of background swimmers.
	SwarmSize int `env:"COURT_SWARM_SIZE" envDefault:"25"`
	// SwarmSeed seeds the swarm layout. Zero picks a random layout on every start.
	SwarmSeed int `env:"COURT_SWARM_SEED" envDefault:"0"`
	// FrameRate is how many frames per second the WebSocket stream sends.
	FrameRate int `env:"COURT_FRAME_RATE" envDefault:"30"`

	ShakeDuration    time.Duration `env:"COURT_SHAKE_DURATION" envDefault:"500ms"`
	BannerDuration   time.Duration `env:"COURT_BANNER_DURATION" envDefault:"1500ms"`
	ReactionDuration time.Duration `env:"COURT_REACTION_DURATION" envDefault:"2500ms"`
	ToastDuration    time.Duration `env:"COURT_TOAST_DURATION" envDefault:"3s"`

	// RoomIdleTTL is how long an abandoned trial is kept in memory.
	RoomIdleTTL     time.Duration `env:"COURT_ROOM_IDLE_TTL" envDefault:"30m"`
	SessionLifetime time.Duration `env:"COURT_SESSION_LIFETIME" envDefault:"12h"`
	// OpenAIAPIKey enables generated closing remarks. Empty falls back to scripted remarks.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
}

func (c config) timings() court.Timings {
	return court.Timings{
		Shake:    c.ShakeDuration,
		Banner:   c.BannerDuration,
		Reaction: c.ReactionDuration,
		Toast:    c.ToastDuration,
	}
}

func (c config) swarm() (motion.Swarm, error) {
	seed := uint64(c.SwarmSeed) //nolint:gosec // seeds are cosmetic
	if seed == 0 {
		var err error
		if seed, err = random.Seed(); err != nil {
			return nil, errors.Wrap(err, "seed swarm")
		}
	}
	return motion.NewSeededSwarm(seed, c.SwarmSize), nil
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if cfg.FrameRate <= 0 || cfg.SwarmSize < 0 {
		return errors.New("invalid motion config",
			slog.Int("frame_rate", cfg.FrameRate), slog.Int("swarm_size", cfg.SwarmSize))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.PprofAddr != "" {
		pprofserver.Launch(ctx, cfg.PprofAddr, logger)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()
	go db.Optimize(ctx, time.Hour)

	var docket court.Docket
	if docket, err = repositories.NewCaseRepository(db, logger).Docket(ctx); err != nil {
		return errors.Wrap(err, "load docket")
	}

	var swarm motion.Swarm
	if swarm, err = cfg.swarm(); err != nil {
		return err
	}

	snapshots := broker.New[uuid.UUID, court.Snapshot]()
	go snapshots.Start()
	defer snapshots.Stop()

	records := repositories.NewCourtRecordRepository(db, logger)
	commentator := ai.NewCommentator(cfg.OpenAIAPIKey, logger)
	archiver := courtroom.ArchiverFunc(func(ctx context.Context, trial courtroom.Trial) error {
		remarks := commentator.ClosingRemarks(ctx, trial.Summary)
		record := models.NewCourtRecord(trial.RoomID, trial.Summary, trial.Achievements, remarks, trial.ClosedAt)
		if insertErr := records.Insert(ctx, record); insertErr != nil {
			return errors.Wrap(insertErr, "insert court record")
		}
		return nil
	})

	rooms := courtroom.NewRegistry(logger, courtroom.Config{
		Docket:  docket,
		Timings: cfg.timings(),
		Swarm:   swarm,
		IdleTTL: cfg.RoomIdleTTL,
		Now:     nil,
	}, snapshots, archiver)
	go rooms.Run(ctx)
	defer rooms.Wait()

	sessionManager := scs.New()
	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour) //nolint:mnd // daily
	defer store.StopCleanup()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	var pages *pageTemplates
	if pages, err = parsePageTemplates(); err != nil {
		return errors.Wrap(err, "parse templates")
	}

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		pages:          pages,
		rooms:          rooms,
		records:        records,
		frameInterval:  time.Second / time.Duration(cfg.FrameRate),
		shutdown:       make(chan struct{}),
	}

	err = app.configureAndStartServer(ctx, cfg.Addr)
	cancel()
	if err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
