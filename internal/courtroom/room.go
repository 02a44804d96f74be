package courtroom

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/logging"
	"github.com/myrjola/spermcourt/internal/motion"
)

const archiveTimeout = 30 * time.Second

// Room holds the live trial of one browser session.
//
// Transitions are applied with the registry's clock. After each one the room re-arms its timer for the session's next
// deadline and publishes a fresh [court.Snapshot] to its subscribers.
type Room struct {
	id       uuid.UUID
	registry *Registry
	opened   time.Time

	mu       sync.Mutex
	session  *court.Session
	timer    *time.Timer
	lastSeen time.Time
	archived bool
	closed   bool
}

// ID identifies the room. It is stored in the player's session cookie data.
func (r *Room) ID() uuid.UUID {
	return r.id
}

// Snapshot returns the current state of the trial with every due timed effect applied.
func (r *Room) Snapshot() court.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.registry.now()
	r.lastSeen = now
	if !r.closed && r.session.Tick(now) {
		ctx := logging.WithAttrs(context.Background(), slog.String("room_id", r.id.String()))
		return r.settle(ctx, now)
	}
	return r.session.Snapshot()
}

// Start leaves the intro.
func (r *Room) Start(ctx context.Context) court.Snapshot {
	return r.apply(ctx, "start", r.session.Start)
}

// Objection raises an objection.
func (r *Room) Objection(ctx context.Context) court.Snapshot {
	return r.apply(ctx, "objection", r.session.Objection)
}

// Judge renders verdict on the case at caseIndex.
func (r *Room) Judge(ctx context.Context, caseIndex int, verdict court.Verdict) court.Snapshot {
	return r.apply(ctx, "judge", func(now time.Time) {
		r.session.Judge(now, caseIndex, verdict)
	}, slog.Int("case", caseIndex), slog.String("verdict", string(verdict)))
}

// Reset starts the trial over from the first case.
func (r *Room) Reset(ctx context.Context) court.Snapshot {
	return r.apply(ctx, "reset", r.session.Reset)
}

// ResetToIntro starts over from the intro screen.
func (r *Room) ResetToIntro(ctx context.Context) court.Snapshot {
	return r.apply(ctx, "reset to intro", r.session.ResetToIntro)
}

// Frame poses the room's swarm and judge for the time elapsed since the room opened.
func (r *Room) Frame() motion.Frame {
	r.mu.Lock()
	shaking := r.session.Shaking()
	r.mu.Unlock()
	elapsed := r.registry.now().Sub(r.opened).Seconds()
	return r.registry.stage.Frame(elapsed, shaking)
}

func (r *Room) apply(ctx context.Context, name string, transition func(now time.Time), attrs ...slog.Attr) court.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.registry.now()
	r.lastSeen = now
	if r.closed {
		return r.session.Snapshot()
	}
	// Effects that are due but whose timer has not fired yet apply before the transition.
	r.session.Tick(now)
	transition(now)
	ctx = logging.WithAttrs(ctx, slog.String("room_id", r.id.String()))
	r.registry.logger.LogAttrs(ctx, slog.LevelDebug, name, attrs...)
	return r.settle(ctx, now)
}

// fire is called by the room's timer when the next deadline passes.
func (r *Room) fire() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	now := r.registry.now()
	r.session.Tick(now)
	ctx := logging.WithAttrs(context.Background(), slog.String("room_id", r.id.String()))
	r.settle(ctx, now)
}

// settle arms the timer, publishes the new state and archives a finished trial. The caller must hold r.mu.
func (r *Room) settle(ctx context.Context, now time.Time) court.Snapshot {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if deadline, ok := r.session.NextDeadline(); ok {
		r.timer = time.AfterFunc(max(deadline.Sub(now), 0), r.fire)
	}

	snap := r.session.Snapshot()
	r.registry.broker.Publish(r.id, snap)

	if snap.Screen != court.ScreenVerdict {
		r.archived = false
		return snap
	}
	if !r.archived && snap.Summary != nil {
		r.archived = true
		r.registry.archive(ctx, Trial{
			RoomID:       r.id,
			Summary:      *snap.Summary,
			Achievements: unlockedIDs(snap),
			ClosedAt:     now,
		})
	}
	return snap
}

// republish publishes the current state again, for subscribers that joined before the first transition.
func (r *Room) republish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeen = r.registry.now()
	r.registry.broker.Publish(r.id, r.session.Snapshot())
}

func (r *Room) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Room) idleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSeen
}

func unlockedIDs(snap court.Snapshot) []court.AchievementID {
	var ids []court.AchievementID
	for _, a := range snap.Achievements {
		if a.Unlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Trial is a finished trial handed to the [Archiver].
type Trial struct {
	RoomID       uuid.UUID
	Summary      court.Summary
	Achievements []court.AchievementID
	ClosedAt     time.Time
}

// Archiver stores finished trials. It is called once per trial that reaches the verdict screen.
type Archiver interface {
	Archive(ctx context.Context, trial Trial) error
}

// ArchiverFunc adapts a function to [Archiver].
type ArchiverFunc func(ctx context.Context, trial Trial) error

func (f ArchiverFunc) Archive(ctx context.Context, trial Trial) error {
	return f(ctx, trial)
}

func (g *Registry) archive(ctx context.Context, trial Trial) {
	if g.archiver == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	g.archives.Add(1)
	go func() {
		defer g.archives.Done()
		ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
		defer cancel()
		if err := g.archiver.Archive(ctx, trial); err != nil {
			err = errors.Wrap(err, "archive trial", slog.String("room_id", trial.RoomID.String()))
			g.logger.LogAttrs(ctx, slog.LevelError, "failed to archive trial", errors.SlogError(err))
			return
		}
		g.logger.LogAttrs(ctx, slog.LevelInfo, "trial archived",
			slog.Int("score", trial.Summary.Score), slog.String("record", trial.Summary.Record))
	}()
}
