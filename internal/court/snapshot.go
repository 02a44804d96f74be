package court

// AchievementState is an achievement together with whether the session has unlocked it.
type AchievementState struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// Snapshot is a read-only copy of a session for rendering and serialization.
type Snapshot struct {
	Screen      Screen    `json:"screen"`
	CaseIndex   int       `json:"caseIndex"`
	CaseCount   int       `json:"caseCount"`
	Case        *Case     `json:"case,omitempty"`
	Score       int       `json:"score"`
	Objections  int       `json:"objections"`
	GuiltyCount int       `json:"guiltyCount"`
	Verdicts    []Verdict `json:"verdicts"`

	Achievements []AchievementState `json:"achievements"`

	Shake           bool         `json:"shake"`
	ObjectionBanner bool         `json:"objectionBanner"`
	Reacting        bool         `json:"reacting"`
	Reaction        string       `json:"reaction,omitempty"`
	Toast           *Achievement `json:"toast,omitempty"`

	Summary *Summary `json:"summary,omitempty"`
}

// Snapshot copies the session's observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Screen:          s.screen,
		CaseIndex:       s.caseIndex,
		CaseCount:       s.docket.Len(),
		Score:           s.score,
		Objections:      s.objections,
		GuiltyCount:     s.guilty,
		Verdicts:        s.Verdicts(),
		Shake:           s.shake,
		ObjectionBanner: s.banner,
		Reacting:        s.reacting,
	}
	for _, a := range catalogue {
		snap.Achievements = append(snap.Achievements, AchievementState{Achievement: a, Unlocked: s.unlocked.Has(a.ID)})
	}
	if s.screen == ScreenTrial {
		c := s.docket.Case(s.caseIndex)
		snap.Case = &c
		if s.reacting {
			snap.Reaction = c.JudgeReaction
		}
	}
	if s.toast != "" {
		if a, ok := LookupAchievement(s.toast); ok {
			snap.Toast = &a
		}
	}
	if s.screen == ScreenVerdict {
		summary := Summarize(s)
		snap.Summary = &summary
	}
	return snap
}

// UnlockedCount returns the number of unlocked achievements in the snapshot.
func (s Snapshot) UnlockedCount() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// CaseNumber is the one-based number of the open case.
func (s Snapshot) CaseNumber() int {
	return s.CaseIndex + 1
}
