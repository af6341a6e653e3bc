package entities

import "time"

// Snapshot is the full persisted game state: the single warrior profile, the
// enemy collection and the unlocked achievement ids. Every mutation is a full
// read-modify-write of this document.
type Snapshot struct {
	Warrior      *Warrior `json:"warrior"`
	Enemies      []*Enemy `json:"enemies"`
	Achievements []string `json:"achievements"`
	LastLoginAt  int64    `json:"last_login_at"`
	ExamDate     string   `json:"exam_date,omitempty"`
}

// NewSnapshot returns the default first-run dataset: a fresh warrior and
// three seed enemies, one per room.
func NewSnapshot(now time.Time) *Snapshot {
	created := now.Unix()
	return &Snapshot{
		Warrior: NewWarrior(),
		Enemies: []*Enemy{
			{
				ID:        "constitutional_law_fundamental_rights",
				Subject:   "Constitutional Law",
				Topic:     "Fundamental Rights",
				Type:      QuestionObjective,
				Room:      RoomRed,
				Questions: []Question{},
				CreatedAt: created,
			},
			{
				ID:        "portuguese_reading_comprehension",
				Subject:   "Portuguese",
				Topic:     "Reading Comprehension",
				Type:      QuestionObjective,
				Room:      RoomYellow,
				Questions: []Question{},
				CreatedAt: created,
			},
			{
				ID:        "mathematics_logical_reasoning",
				Subject:   "Mathematics",
				Topic:     "Logical Reasoning",
				Type:      QuestionObjective,
				Room:      RoomGreen,
				Questions: []Question{},
				CreatedAt: created,
			},
		},
		Achievements: []string{},
		LastLoginAt:  now.Unix(),
	}
}

// FindEnemy returns the enemy with the given id, or false when absent.
func (s *Snapshot) FindEnemy(id string) (*Enemy, bool) {
	for _, e := range s.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// RemoveEnemy deletes the enemy with the given id and reports whether
// anything was removed.
func (s *Snapshot) RemoveEnemy(id string) bool {
	for i, e := range s.Enemies {
		if e.ID == id {
			s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
			return true
		}
	}
	return false
}

// OverallAccuracy is the read-time aggregate accuracy across all enemies:
// sum(correct)/sum(attempts)*100, or 0 when nothing was attempted. The
// warrior's persisted stat is refreshed from this on every commit so the two
// can never drift.
func (s *Snapshot) OverallAccuracy() float64 {
	var attempts, correct int
	for _, e := range s.Enemies {
		attempts += e.Stats.Attempts
		correct += e.Stats.Correct
	}
	if attempts == 0 {
		return 0
	}
	return float64(correct) / float64(attempts) * 100
}

// HasUnlocked reports whether the achievement id is already unlocked.
func (s *Snapshot) HasUnlocked(achievementID string) bool {
	for _, id := range s.Achievements {
		if id == achievementID {
			return true
		}
	}
	return false
}
