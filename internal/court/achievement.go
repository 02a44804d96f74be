package court

// AchievementID identifies an achievement.
type AchievementID string

const (
	FirstObjection  AchievementID = "first_objection"
	PerfectJudge    AchievementID = "perfect_judge"
	HarshJudge      AchievementID = "harsh_judge"
	MercifulJudge   AchievementID = "merciful_judge"
	ObjectionMaster AchievementID = "objection_master"
)

// ObjectionMasterThreshold is the number of objections that unlocks ObjectionMaster.
const ObjectionMasterThreshold = 10

// Achievement is the static definition of an achievement.
type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
}

var catalogue = []Achievement{
	{ID: FirstObjection, Name: "First Objection!", Description: "Used the objection button", Icon: "⚡"},
	{ID: PerfectJudge, Name: "Perfect Judge", Description: "All verdicts match health data", Icon: "⚖️"},
	{ID: HarshJudge, Name: "Harsh Judge", Description: "Found all defendants guilty", Icon: "🔨"},
	{ID: MercifulJudge, Name: "Merciful Judge", Description: "Found all defendants innocent", Icon: "💚"},
	{ID: ObjectionMaster, Name: "Objection Master", Description: "Used objection 10+ times", Icon: "🎯"},
}

// Achievements returns every achievement in display order.
func Achievements() []Achievement {
	return append([]Achievement(nil), catalogue...)
}

// LookupAchievement returns the definition of id.
func LookupAchievement(id AchievementID) (Achievement, bool) {
	for _, a := range catalogue {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// AchievementSet holds the unlocked achievements of a session.
type AchievementSet map[AchievementID]bool

// Has reports whether id is unlocked.
func (s AchievementSet) Has(id AchievementID) bool {
	return s[id]
}

// Count returns the number of unlocked achievements.
func (s AchievementSet) Count() int {
	return len(s)
}

// IDs returns the unlocked achievement IDs in display order.
func (s AchievementSet) IDs() []AchievementID {
	var ids []AchievementID
	for _, a := range catalogue {
		if s[a.ID] {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
