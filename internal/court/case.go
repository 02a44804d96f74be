// Package court implements the scripted trial: the docket of cases, the session state machine, scoring and
// achievements.
//
// Transitions never fail. Calling one in a state where it does not apply is a no-op, so the presentation layer can
// forward user input without validating it first.
package court

import (
	"log/slog"

	"github.com/myrjola/spermcourt/internal/errors"
)

// NormalMorphology is the reference morphology classification. Anything else counts as abnormal.
const NormalMorphology = "Normal"

// MotilityThreshold is the progressive motility percentage below which a defendant should be found guilty.
const MotilityThreshold = 40

var (
	ErrEmptyDocket     = errors.NewSentinel("docket has no cases")
	ErrInvalidMotility = errors.NewSentinel("motility must be within 0-100")
)

// Case is one defendant on trial.
type Case struct {
	ID            int    `json:"id" db:"id"`
	Charge        string `json:"charge" db:"charge"`
	Alibi         string `json:"alibi" db:"alibi"`
	JudgeReaction string `json:"judgeReaction" db:"judge_reaction"`
	Velocity      string `json:"velocity" db:"velocity"`
	HealthNote    string `json:"healthNote" db:"health_note"`
	Motility      int    `json:"motility" db:"motility"`
	Morphology    string `json:"morphology" db:"morphology"`
}

// ShouldBeGuilty reports the verdict the health data supports.
func (c Case) ShouldBeGuilty() bool {
	return c.Motility < MotilityThreshold || c.Morphology != NormalMorphology
}

// whoLowerReference is the lower reference limit for progressive motility. Values between it and MotilityThreshold
// are borderline.
const whoLowerReference = 32

// MotilityStatus labels the case's motility against the reference ranges.
func (c Case) MotilityStatus() string {
	switch {
	case c.Motility < whoLowerReference:
		return "⚠️ Below WHO Standard (40%)"
	case c.Motility < MotilityThreshold:
		return "⚠️ Borderline"
	default:
		return "✅ Healthy Range"
	}
}

// Verdict is the judgment applied to a case.
type Verdict string

const (
	Guilty   Verdict = "guilty"
	Innocent Verdict = "innocent"
)

// ParseVerdict parses a form value into a Verdict.
func ParseVerdict(s string) (Verdict, bool) {
	switch v := Verdict(s); v {
	case Guilty, Innocent:
		return v, true
	default:
		return "", false
	}
}

// Matches reports whether the verdict agrees with the case's health data. Scoring and the perfect judge achievement
// both rely on it so that they can never disagree.
func (v Verdict) Matches(c Case) bool {
	return (v == Guilty) == c.ShouldBeGuilty()
}

// Docket is the fixed, ordered list of cases of a trial.
type Docket struct {
	cases []Case
}

// NewDocket validates cases and freezes them into a docket.
func NewDocket(cases []Case) (Docket, error) {
	if len(cases) == 0 {
		return Docket{}, ErrEmptyDocket
	}
	for _, c := range cases {
		if c.Motility < 0 || c.Motility > 100 {
			return Docket{}, errors.Wrap(ErrInvalidMotility, "validate case",
				slog.Int("case_id", c.ID), slog.Int("motility", c.Motility))
		}
	}
	return Docket{cases: append([]Case(nil), cases...)}, nil
}

// Len returns the number of cases.
func (d Docket) Len() int {
	return len(d.cases)
}

// Case returns the case at index i. It panics when i is out of range.
func (d Docket) Case(i int) Case {
	return d.cases[i]
}

// Cases returns a copy of all cases in trial order.
func (d Docket) Cases() []Case {
	return append([]Case(nil), d.cases...)
}
