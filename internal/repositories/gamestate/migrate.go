package gamestate

import (
	"encoding/json"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
)

// legacyUser is the pre-warrior schema kept by early builds. Only the fields
// that existed back then are mapped; everything else falls back to defaults.
type legacyUser struct {
	Level           int    `json:"level"`
	XP              int    `json:"xp"`
	XPToNext        int    `json:"xpToNext"`
	Energy          int    `json:"energy"`
	Streak          int    `json:"streak"`
	CompletedQuests int    `json:"completedQuests"`
	TotalStudyTime  int    `json:"totalStudyTime"`
	Name            string `json:"name"`
}

type legacySnapshot struct {
	User *legacyUser `json:"user"`
}

// decodeSnapshot parses a persisted document, applying the one-time legacy
// mapping when the document predates the warrior schema. The bool result is
// true when a migration happened.
func (r *redisRepository) decodeSnapshot(data []byte) (*entities.Snapshot, bool, error) {
	var snapshot entities.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	if snapshot.Warrior != nil {
		if snapshot.Enemies == nil {
			snapshot.Enemies = []*entities.Enemy{}
		}
		if snapshot.Achievements == nil {
			snapshot.Achievements = []string{}
		}
		return &snapshot, false, nil
	}

	var legacy legacySnapshot
	if err := json.Unmarshal(data, &legacy); err != nil || legacy.User == nil {
		return nil, false, errors.Internal("persisted snapshot has no recognizable schema")
	}

	return r.migrateLegacy(legacy.User), true, nil
}

// migrateLegacy maps a legacy user record onto a fresh default snapshot.
// Zero-valued legacy fields keep the defaults.
func (r *redisRepository) migrateLegacy(user *legacyUser) *entities.Snapshot {
	snapshot := entities.NewSnapshot(r.clock.Now())
	w := snapshot.Warrior

	if user.Name != "" {
		w.Name = user.Name
	}
	if user.Level > 0 {
		w.Level = user.Level
	}
	if user.XP > 0 {
		w.CurrentXP = user.XP
	}
	if user.XPToNext > 0 {
		w.XPToNextLevel = user.XPToNext
	}
	if user.Energy > 0 {
		w.Energy = user.Energy
	}
	if user.Streak > 0 {
		w.StreakDays = user.Streak
	}
	if user.CompletedQuests > 0 {
		w.Stats.QuestionsResolved = user.CompletedQuests
	}
	if user.TotalStudyTime > 0 {
		w.Stats.TotalStudyMinutes = user.TotalStudyTime
	}

	return snapshot
}
