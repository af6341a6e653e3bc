// Package entities implements the study-companion entities.
// NOTE: These are data-only structs plus the pure progression math over them.
// Persistence and session sequencing live in the repositories and
// orchestrators; nothing here touches storage.
package entities

const (
	// DefaultWarriorName is the placeholder identity until the player renames it.
	DefaultWarriorName = "Warrior"

	// BaseXPToNextLevel is the threshold for the first level-up.
	BaseXPToNextLevel = 1000

	// MaxEnergy and MinEnergy bound the energy economy.
	MaxEnergy = 100
	MinEnergy = 0
)

// WarriorStats aggregates lifetime study counters.
type WarriorStats struct {
	QuestionsResolved int     `json:"questions_resolved"`
	OverallAccuracy   float64 `json:"overall_accuracy"`
	TotalStudyMinutes int     `json:"total_study_minutes"`
	ExamsCompleted    int     `json:"exams_completed"`
}

// Warrior is the player profile and progression record. There is exactly one
// per snapshot.
type Warrior struct {
	Name          string       `json:"name"`
	Level         int          `json:"level"`
	CurrentXP     int          `json:"current_xp"`
	XPToNextLevel int          `json:"xp_to_next_level"`
	Energy        int          `json:"energy"`
	StreakDays    int          `json:"streak_days"`
	Stats         WarriorStats `json:"stats"`
}

// NewWarrior returns a fresh level-1 profile with full energy.
func NewWarrior() *Warrior {
	return &Warrior{
		Name:          DefaultWarriorName,
		Level:         1,
		CurrentXP:     0,
		XPToNextLevel: BaseXPToNextLevel,
		Energy:        MaxEnergy,
		StreakDays:    1,
	}
}

// GainXP adds experience and applies the level-up cascade: the loop handles
// multi-level jumps within a single call. Negative amounts are treated as 0.
func (w *Warrior) GainXP(amount int) {
	if amount < 0 {
		amount = 0
	}

	w.CurrentXP += amount
	for w.CurrentXP >= w.XPToNextLevel {
		w.Level++
		w.XPToNextLevel = w.Level * BaseXPToNextLevel
	}
}

// SpendEnergy lowers energy, clamping at 0. Over-spend never fails.
func (w *Warrior) SpendEnergy(amount int) {
	if amount < 0 {
		amount = 0
	}
	w.Energy -= amount
	if w.Energy < MinEnergy {
		w.Energy = MinEnergy
	}
}

// RestoreEnergy raises energy, clamping at 100.
func (w *Warrior) RestoreEnergy(amount int) {
	if amount < 0 {
		amount = 0
	}
	w.Energy += amount
	if w.Energy > MaxEnergy {
		w.Energy = MaxEnergy
	}
}

// RecordStudyTime adds minutes to the lifetime study counter. Negative
// amounts are treated as 0.
func (w *Warrior) RecordStudyTime(minutes int) {
	if minutes < 0 {
		minutes = 0
	}
	w.Stats.TotalStudyMinutes += minutes
}

// RecordQuestionResolved increments the lifetime solved-question counter.
func (w *Warrior) RecordQuestionResolved() {
	w.Stats.QuestionsResolved++
}

// RecordExamCompleted increments the completed-exam counter.
func (w *Warrior) RecordExamCompleted() {
	w.Stats.ExamsCompleted++
}
