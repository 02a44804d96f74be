package court

import (
	"time"
)

// Timings configures how long the self-clearing visual states last.
type Timings struct {
	// Shake is how long the judge shakes after an objection.
	Shake time.Duration
	// Banner is how long the objection banner stays up.
	Banner time.Duration
	// Reaction is how long the judge's reaction is shown before the trial moves on.
	Reaction time.Duration
	// Toast is how long an achievement notification stays visible.
	Toast time.Duration
}

// DefaultTimings returns the standard durations.
func DefaultTimings() Timings {
	return Timings{
		Shake:    500 * time.Millisecond,  //nolint:mnd // half a second
		Banner:   1500 * time.Millisecond, //nolint:mnd // one and a half seconds
		Reaction: 2500 * time.Millisecond, //nolint:mnd // two and a half seconds
		Toast:    3 * time.Second,         //nolint:mnd // three seconds
	}
}

type effectKind int

const (
	clearShake effectKind = iota
	clearBanner
	endReaction
	clearToast
	effectKinds
)

// timedEffect is a deferred write scheduled by a transition. It only applies while its generation is still the
// current generation of its kind, so an earlier timer can never undo the visual state of a later action.
type timedEffect struct {
	kind       effectKind
	due        time.Time
	generation uint64
}

func (s *Session) schedule(kind effectKind, due time.Time) {
	s.generations[kind]++
	s.pending = append(s.pending, timedEffect{kind: kind, due: due, generation: s.generations[kind]})
}

// NextDeadline returns when the earliest pending effect is due.
func (s *Session) NextDeadline() (time.Time, bool) {
	i := s.earliest()
	if i < 0 {
		return time.Time{}, false
	}
	return s.pending[i].due, true
}

// Tick applies every effect due at or before now, in due order, and reports whether anything fired. Effects
// scheduled by fired effects are applied in the same call when they are due as well.
func (s *Session) Tick(now time.Time) bool {
	fired := false
	for {
		i := s.earliest()
		if i < 0 || s.pending[i].due.After(now) {
			return fired
		}
		e := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		if e.generation != s.generations[e.kind] {
			continue
		}
		s.apply(e)
		fired = true
	}
}

// earliest returns the index of the pending effect that is due first, preferring the earlier scheduled on ties.
func (s *Session) earliest() int {
	idx := -1
	for i, e := range s.pending {
		if idx < 0 || e.due.Before(s.pending[idx].due) {
			idx = i
		}
	}
	return idx
}

func (s *Session) apply(e timedEffect) {
	switch e.kind {
	case clearShake:
		s.shake = false
	case clearBanner:
		s.banner = false
	case clearToast:
		s.toast = ""
	case endReaction:
		s.concludeCase(e.due)
	}
}
