// Package achievements holds the fixed achievement rule table and the pure
// evaluator over a game snapshot. Orchestrators run Apply after every
// persistent-state mutation; unlocking is monotonic and idempotent, an
// already-unlocked id is never granted twice.
package achievements

import (
	"github.com/spartan-system/spartan-api/internal/entities"
)

// Achievement is one entry in the fixed rule table.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	XPReward    int
	Predicate   func(*entities.Snapshot) bool
}

// Table is the fixed achievement rule table. Order matters only for
// NextPending, which returns the first locked entry.
var Table = []Achievement{
	{
		ID:          "first_battle",
		Name:        "First Battle",
		Description: "Resolve your first question",
		Icon:        "⚔️",
		XPReward:    25,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.Stats.QuestionsResolved >= 1
		},
	},
	{
		ID:          "persistent",
		Name:        "Persistent",
		Description: "Study for 7 consecutive days",
		Icon:        "🛡️",
		XPReward:    100,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.StreakDays >= 7
		},
	},
	{
		ID:          "elite_marksman",
		Name:        "Elite Marksman",
		Description: "Keep above 90% accuracy over at least 10 questions",
		Icon:        "🎯",
		XPReward:    150,
		Predicate: func(s *entities.Snapshot) bool {
			return s.OverallAccuracy() > 90 && s.Warrior.Stats.QuestionsResolved >= 10
		},
	},
	{
		ID:          "strategist",
		Name:        "Strategist",
		Description: "Hold 5 enemies in the green room",
		Icon:        "🧠",
		XPReward:    200,
		Predicate: func(s *entities.Snapshot) bool {
			green := 0
			for _, e := range s.Enemies {
				if e.Room == entities.RoomGreen {
					green++
				}
			}
			return green >= 5
		},
	},
	{
		ID:          "veteran",
		Name:        "Veteran",
		Description: "Resolve 100 questions",
		Icon:        "👑",
		XPReward:    300,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.Stats.QuestionsResolved >= 100
		},
	},
	{
		ID:          "forger",
		Name:        "Enemy Forger",
		Description: "Forge 10 different enemies",
		Icon:        "🏗️",
		XPReward:    75,
		Predicate: func(s *entities.Snapshot) bool {
			return len(s.Enemies) >= 10
		},
	},
	{
		ID:          "scholar",
		Name:        "Scholar",
		Description: "Accumulate 1000 minutes of study",
		Icon:        "📚",
		XPReward:    250,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.Stats.TotalStudyMinutes >= 1000
		},
	},
	{
		ID:          "gladiator",
		Name:        "Gladiator",
		Description: "Complete 5 mock exams",
		Icon:        "🏛️",
		XPReward:    400,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.Stats.ExamsCompleted >= 5
		},
	},
	{
		ID:          "spartan_legend",
		Name:        "Spartan Legend",
		Description: "Reach level 10",
		Icon:        "⭐",
		XPReward:    500,
		Predicate: func(s *entities.Snapshot) bool {
			return s.Warrior.Level >= 10
		},
	},
	{
		ID:          "perfectionist",
		Name:        "Perfectionist",
		Description: "Hold 95% accuracy over 50 questions",
		Icon:        "💎",
		XPReward:    350,
		Predicate: func(s *entities.Snapshot) bool {
			return s.OverallAccuracy() >= 95 && s.Warrior.Stats.QuestionsResolved >= 50
		},
	},
}

// Lookup returns the table entry with the given id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Table {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Evaluate returns the rules that are satisfied by the snapshot but not yet
// unlocked. It does not mutate the snapshot.
func Evaluate(s *entities.Snapshot) []Achievement {
	var newly []Achievement
	for _, a := range Table {
		if s.HasUnlocked(a.ID) {
			continue
		}
		if a.Predicate(s) {
			newly = append(newly, a)
		}
	}
	return newly
}

// Apply unlocks every newly satisfied rule on the snapshot and grants its XP
// reward to the warrior. XP granted here can itself satisfy further rules
// (e.g. a level threshold), so evaluation loops until a pass unlocks nothing.
func Apply(s *entities.Snapshot) []Achievement {
	var unlocked []Achievement
	for {
		newly := Evaluate(s)
		if len(newly) == 0 {
			return unlocked
		}
		for _, a := range newly {
			s.Achievements = append(s.Achievements, a.ID)
			s.Warrior.GainXP(a.XPReward)
			unlocked = append(unlocked, a)
		}
	}
}

// UnlockedList returns the table entries already unlocked on the snapshot.
func UnlockedList(s *entities.Snapshot) []Achievement {
	var out []Achievement
	for _, a := range Table {
		if s.HasUnlocked(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// NextPending returns the first locked table entry, or false when everything
// is unlocked.
func NextPending(s *entities.Snapshot) (Achievement, bool) {
	for _, a := range Table {
		if !s.HasUnlocked(a.ID) {
			return a, true
		}
	}
	return Achievement{}, false
}

// ProgressOf reports coarse progress toward an achievement: 100 when
// unlocked or currently satisfied, 0 otherwise.
func ProgressOf(s *entities.Snapshot, id string) float64 {
	a, ok := Lookup(id)
	if !ok {
		return 0
	}
	if s.HasUnlocked(id) || a.Predicate(s) {
		return 100
	}
	return 0
}
