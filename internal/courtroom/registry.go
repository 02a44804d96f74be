// Package courtroom runs live trials for browser sessions.
package courtroom

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/spermcourt/internal/broker"
	"github.com/myrjola/spermcourt/internal/court"
	"github.com/myrjola/spermcourt/internal/errors"
	"github.com/myrjola/spermcourt/internal/motion"
)

var ErrRoomNotFound = errors.NewSentinel("room not found")

// Config configures the rooms of a [Registry].
type Config struct {
	Docket  court.Docket
	Timings court.Timings
	Swarm   motion.Swarm
	// IdleTTL is how long a room survives without requests before the janitor evicts it.
	IdleTTL time.Duration
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Registry owns the live rooms.
type Registry struct {
	logger   *slog.Logger
	docket   court.Docket
	timings  court.Timings
	stage    *motion.Stage
	idleTTL  time.Duration
	now      func() time.Time
	broker   *broker.Broker[uuid.UUID, court.Snapshot]
	archiver Archiver
	archives sync.WaitGroup

	mu    sync.Mutex
	rooms map[uuid.UUID]*Room
}

// NewRegistry creates a registry publishing snapshots through b. archiver may be nil.
func NewRegistry(
	logger *slog.Logger,
	cfg Config,
	b *broker.Broker[uuid.UUID, court.Snapshot],
	archiver Archiver,
) *Registry {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		logger:   logger,
		docket:   cfg.Docket,
		timings:  cfg.Timings,
		stage:    motion.NewStage(cfg.Swarm),
		idleTTL:  cfg.IdleTTL,
		now:      now,
		broker:   b,
		archiver: archiver,
		rooms:    map[uuid.UUID]*Room{},
	}
}

// Open creates a room on the intro screen.
func (g *Registry) Open(ctx context.Context) *Room {
	now := g.now()
	room := &Room{
		id:       uuid.New(),
		registry: g,
		opened:   now,
		session:  court.NewSession(g.docket, g.timings),
		lastSeen: now,
	}
	g.mu.Lock()
	g.rooms[room.id] = room
	g.mu.Unlock()
	g.logger.LogAttrs(ctx, slog.LevelDebug, "room opened", slog.String("room_id", room.id.String()))
	return room
}

// Get returns the room with the given ID. A malformed or unknown ID returns [ErrRoomNotFound].
func (g *Registry) Get(id string) (*Room, error) {
	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrap(ErrRoomNotFound, "parse room ID", slog.String("room_id", id))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[roomID]
	if !ok {
		return nil, errors.Wrap(ErrRoomNotFound, "lookup room", slog.String("room_id", id))
	}
	return room, nil
}

// Subscribe to the snapshots of room. The current snapshot is delivered first.
func (g *Registry) Subscribe(room *Room) (<-chan court.Snapshot, func()) {
	c, unsubscribe := g.broker.Subscribe(room.id)
	room.republish()
	return c, unsubscribe
}

// Stage returns the motion stage shared by every room.
func (g *Registry) Stage() *motion.Stage {
	return g.stage
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

// Evict closes the rooms that have been idle since before now minus the idle TTL and returns how many were evicted.
func (g *Registry) Evict(now time.Time) int {
	cutoff := now.Add(-g.idleTTL)
	var evicted []*Room
	g.mu.Lock()
	for id, room := range g.rooms {
		if room.idleSince().Before(cutoff) {
			delete(g.rooms, id)
			evicted = append(evicted, room)
		}
	}
	g.mu.Unlock()
	for _, room := range evicted {
		room.close()
		g.broker.Unpublish(room.id)
	}
	return len(evicted)
}

// Run evicts idle rooms periodically until ctx is cancelled.
func (g *Registry) Run(ctx context.Context) {
	interval := max(g.idleTTL/2, time.Millisecond) //nolint:mnd // check twice per TTL
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := g.Evict(g.now()); n > 0 {
				g.logger.LogAttrs(ctx, slog.LevelDebug, "evicted idle rooms", slog.Int("count", n))
			}
		}
	}
}

// Wait blocks until every started archive has completed.
func (g *Registry) Wait() {
	g.archives.Wait()
}
