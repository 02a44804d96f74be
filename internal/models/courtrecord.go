package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/spermcourt/internal/court"
)

// CourtRecord is the archived summary of a finished trial.
type CourtRecord struct {
	ID         uuid.UUID `db:"id"`
	RoomID     uuid.UUID `db:"room_id"`
	Score      int       `db:"score"`
	Objections int       `db:"objections"`
	Guilty     int       `db:"guilty"`
	// Record has one letter per case, G for guilty and I for innocent.
	Record string `db:"record"`
	// Achievements is the comma-separated list of unlocked achievement IDs.
	Achievements string    `db:"achievements"`
	Grade        string    `db:"grade"`
	Remarks      string    `db:"remarks"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewCourtRecord creates a record for a finished trial with a fresh ID.
func NewCourtRecord(
	roomID uuid.UUID,
	summary court.Summary,
	unlocked []court.AchievementID,
	remarks string,
	createdAt time.Time,
) CourtRecord {
	ids := make([]string, len(unlocked))
	for i, id := range unlocked {
		ids[i] = string(id)
	}
	return CourtRecord{
		ID:           uuid.New(),
		RoomID:       roomID,
		Score:        summary.Score,
		Objections:   summary.Objections,
		Guilty:       summary.Guilty,
		Record:       summary.Record,
		Achievements: strings.Join(ids, ","),
		Grade:        summary.Grade.Name,
		Remarks:      remarks,
		CreatedAt:    createdAt.UTC(),
	}
}

// UnlockedAchievements resolves the stored achievement IDs, skipping any that no longer exist.
func (r CourtRecord) UnlockedAchievements() []court.Achievement {
	var achievements []court.Achievement
	for _, id := range strings.Split(r.Achievements, ",") {
		if a, ok := court.LookupAchievement(court.AchievementID(id)); ok {
			achievements = append(achievements, a)
		}
	}
	return achievements
}

// Innocent returns the number of innocent verdicts.
func (r CourtRecord) Innocent() int {
	return len(r.Record) - r.Guilty
}
