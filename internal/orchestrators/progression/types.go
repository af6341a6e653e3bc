package progression

import (
	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/entities"
)

// GainXPInput defines the request for granting experience
type GainXPInput struct {
	Amount int
}

// GainXPOutput defines the response for granting experience
type GainXPOutput struct {
	Warrior *entities.Warrior
	// Unlocked lists achievements newly earned by this commit
	Unlocked []achievements.Achievement
}

// SpendEnergyInput defines the request for spending energy
type SpendEnergyInput struct {
	Amount int
}

// SpendEnergyOutput defines the response for spending energy
type SpendEnergyOutput struct {
	Warrior *entities.Warrior
}

// RestoreEnergyInput defines the request for restoring energy
type RestoreEnergyInput struct {
	Amount int
}

// RestoreEnergyOutput defines the response for restoring energy
type RestoreEnergyOutput struct {
	Warrior *entities.Warrior
}

// RecordStudyTimeInput defines the request for recording study minutes
type RecordStudyTimeInput struct {
	Minutes int
}

// RecordStudyTimeOutput defines the response for recording study minutes
type RecordStudyTimeOutput struct {
	Warrior  *entities.Warrior
	Unlocked []achievements.Achievement
}

// RecordQuestionResolvedInput defines the request for counting a solved question
type RecordQuestionResolvedInput struct {
	// Empty for now, can be extended later
}

// RecordQuestionResolvedOutput defines the response for counting a solved question
type RecordQuestionResolvedOutput struct {
	Warrior  *entities.Warrior
	Unlocked []achievements.Achievement
}

// RecordExamCompletedInput defines the request for counting a completed exam
type RecordExamCompletedInput struct {
	// Empty for now, can be extended later
}

// RecordExamCompletedOutput defines the response for counting a completed exam
type RecordExamCompletedOutput struct {
	Warrior  *entities.Warrior
	Unlocked []achievements.Achievement
}

// RenameWarriorInput defines the request for renaming the warrior
type RenameWarriorInput struct {
	Name string
}

// RenameWarriorOutput defines the response for renaming the warrior
type RenameWarriorOutput struct {
	Warrior *entities.Warrior
}

// RecordLoginInput defines the request for stamping a login
type RecordLoginInput struct {
	// Empty for now, can be extended later
}

// RecordLoginOutput defines the response for stamping a login
type RecordLoginOutput struct {
	Warrior *entities.Warrior
	// StreakExtended is true when this login grew the streak
	StreakExtended bool
	Unlocked       []achievements.Achievement
}

// SetExamDateInput defines the request for setting the target exam date
type SetExamDateInput struct {
	// Date in YYYY-MM-DD form
	Date string
}

// SetExamDateOutput defines the response for setting the target exam date
type SetExamDateOutput struct {
	// Empty for now, can be extended later
}

// GetWarriorInput defines the request for reading the warrior profile
type GetWarriorInput struct {
	// Empty for now, can be extended later
}

// GetWarriorOutput defines the response for reading the warrior profile
type GetWarriorOutput struct {
	Warrior *entities.Warrior
	// OverallAccuracy is the read-time aggregate across all enemies
	OverallAccuracy float64
}
