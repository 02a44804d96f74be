package court

import (
	"log/slog"
	"time"

	"github.com/myrjola/spermcourt/internal/errors"
)

var ErrUnknownScreen = errors.NewSentinel("unknown screen")

// Screen is the page the session is on.
type Screen int

const (
	ScreenIntro Screen = iota
	ScreenTrial
	ScreenVerdict
)

func (s Screen) String() string {
	switch s {
	case ScreenIntro:
		return "intro"
	case ScreenTrial:
		return "trial"
	case ScreenVerdict:
		return "verdict"
	default:
		return "unknown"
	}
}

// MarshalText encodes the screen by name.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a screen name written by [Screen.MarshalText].
func (s *Screen) UnmarshalText(text []byte) error {
	for _, candidate := range []Screen{ScreenIntro, ScreenTrial, ScreenVerdict} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return errors.Wrap(ErrUnknownScreen, "unmarshal screen", slog.String("screen", string(text)))
}

// Score awarded per action.
const (
	ObjectionPoints      = 10
	CorrectVerdictPoints = 50
	AchievementPoints    = 100
)

// Session is the state of one player's trial.
//
// A Session is not safe for concurrent use. Every transition takes the current time, which is used to schedule the
// session's timed effects; see [Session.Tick].
type Session struct {
	docket  Docket
	timings Timings

	screen     Screen
	caseIndex  int
	score      int
	objections int
	guilty     int
	verdicts   []Verdict
	unlocked   AchievementSet

	shake    bool
	banner   bool
	reacting bool
	toast    AchievementID

	generations [effectKinds]uint64
	pending     []timedEffect
}

// NewSession creates a session on the intro screen.
func NewSession(docket Docket, timings Timings) *Session {
	return &Session{
		docket:   docket,
		timings:  timings,
		screen:   ScreenIntro,
		unlocked: AchievementSet{},
	}
}

// Start leaves the intro and opens the first case.
func (s *Session) Start(_ time.Time) {
	if s.screen != ScreenIntro {
		return
	}
	s.screen = ScreenTrial
	s.caseIndex = 0
}

// Objection raises an objection. It is only accepted in an open trial, not while the judge reacts to a verdict.
func (s *Session) Objection(now time.Time) {
	if !s.inOpenTrial() {
		return
	}
	s.objections++
	s.score += ObjectionPoints

	s.shake = true
	s.schedule(clearShake, now.Add(s.timings.Shake))
	s.banner = true
	s.schedule(clearBanner, now.Add(s.timings.Banner))

	if s.objections == 1 {
		s.unlock(FirstObjection, now)
	}
	if s.objections >= ObjectionMasterThreshold {
		s.unlock(ObjectionMaster, now)
	}
}

// Judge records verdict for the case at caseIndex, which must be the open case.
//
// The judge then reacts for [Timings.Reaction] before the next case opens or, after the last case, the verdict screen
// is shown.
func (s *Session) Judge(now time.Time, caseIndex int, verdict Verdict) {
	if !s.inOpenTrial() || caseIndex != s.caseIndex {
		return
	}
	if _, ok := ParseVerdict(string(verdict)); !ok {
		return
	}
	c := s.docket.Case(caseIndex)
	if verdict.Matches(c) {
		s.score += CorrectVerdictPoints
	}
	if verdict == Guilty {
		s.guilty++
	}
	s.verdicts = append(s.verdicts, verdict)

	s.reacting = true
	s.schedule(endReaction, now.Add(s.timings.Reaction))
}

// Reset starts over on the first case with everything zeroed and locked.
func (s *Session) Reset(now time.Time) {
	s.ResetToIntro(now)
	s.screen = ScreenTrial
}

// ResetToIntro starts over on the intro screen with everything zeroed and locked.
func (s *Session) ResetToIntro(_ time.Time) {
	generations := s.generations
	*s = *NewSession(s.docket, s.timings)
	// Keep counting so that a generation is never reused within a session's lifetime.
	s.generations = generations
}

func (s *Session) inOpenTrial() bool {
	return s.screen == ScreenTrial && !s.reacting
}

// concludeCase ends the judge's reaction and moves the trial on.
func (s *Session) concludeCase(at time.Time) {
	s.reacting = false
	if s.caseIndex+1 < s.docket.Len() {
		s.caseIndex++
		return
	}

	if s.guilty == 0 {
		s.unlock(MercifulJudge, at)
	}
	if s.guilty == s.docket.Len() {
		s.unlock(HarshJudge, at)
	}
	if s.isPerfect() {
		s.unlock(PerfectJudge, at)
	}
	s.screen = ScreenVerdict
}

func (s *Session) isPerfect() bool {
	if len(s.verdicts) != s.docket.Len() {
		return false
	}
	for i, v := range s.verdicts {
		if !v.Matches(s.docket.Case(i)) {
			return false
		}
	}
	return true
}

// unlock unlocks id once. Unlocking scores and shows a notification; repeated unlocks change nothing.
func (s *Session) unlock(id AchievementID, at time.Time) {
	if s.unlocked.Has(id) {
		return
	}
	s.unlocked[id] = true
	s.score += AchievementPoints
	s.toast = id
	s.schedule(clearToast, at.Add(s.timings.Toast))
}

func (s *Session) Screen() Screen {
	return s.screen
}

func (s *Session) CaseIndex() int {
	return s.caseIndex
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Objections() int {
	return s.objections
}

func (s *Session) GuiltyCount() int {
	return s.guilty
}

func (s *Session) Shaking() bool {
	return s.shake
}

func (s *Session) Docket() Docket {
	return s.docket
}

func (s *Session) Unlocked(id AchievementID) bool {
	return s.unlocked.Has(id)
}

// Verdicts returns the verdicts recorded so far, in case order.
func (s *Session) Verdicts() []Verdict {
	return append([]Verdict(nil), s.verdicts...)
}
