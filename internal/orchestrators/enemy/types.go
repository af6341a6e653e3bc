package enemy

import (
	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/entities"
)

// ForgeXPReward is the experience granted for creating an enemy.
const ForgeXPReward = 15

// CreateInput defines the request for forging an enemy
type CreateInput struct {
	Subject   string
	Topic     string
	Subtopic  string
	Type      entities.QuestionType
	Room      entities.Room
	Questions []entities.Question
}

// CreateOutput defines the response for forging an enemy
type CreateOutput struct {
	Enemy   *entities.Enemy
	Warrior *entities.Warrior
	// Unlocked lists achievements newly earned by this commit
	Unlocked []achievements.Achievement
}

// UpdateInput defines the request for editing an enemy. Nil fields are left
// untouched.
type UpdateInput struct {
	ID        string
	Subject   *string
	Topic     *string
	Subtopic  *string
	Type      *entities.QuestionType
	Room      *entities.Room
	Questions *[]entities.Question
}

// UpdateOutput defines the response for editing an enemy
type UpdateOutput struct {
	Enemy *entities.Enemy
}

// DeleteInput defines the request for deleting an enemy
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the response for deleting an enemy
type DeleteOutput struct {
	// Deleted is false when the id matched nothing
	Deleted bool
}

// AddQuestionInput defines the request for appending an authored question
type AddQuestionInput struct {
	EnemyID  string
	Question entities.Question
}

// AddQuestionOutput defines the response for appending an authored question
type AddQuestionOutput struct {
	Enemy *entities.Enemy
}

// RecordOutcomeInput defines the request for registering a battle outcome
type RecordOutcomeInput struct {
	ID         string
	WasCorrect bool
}

// RecordOutcomeOutput defines the response for registering a battle outcome
type RecordOutcomeOutput struct {
	Enemy    *entities.Enemy
	Unlocked []achievements.Achievement
}

// GetInput defines the request for reading one enemy
type GetInput struct {
	ID string
}

// GetOutput defines the response for reading one enemy
type GetOutput struct {
	Enemy *entities.Enemy
}

// ListInput defines the request for listing enemies. All filters are
// optional and combine with AND semantics.
type ListInput struct {
	Room    *entities.Room
	Subject *string
	// Query matches subject, topic or subtopic, case-insensitively
	Query string
}

// ListOutput defines the response for listing enemies
type ListOutput struct {
	Enemies []*entities.Enemy
}

// AggregateAccuracyInput defines the request for aggregate accuracy over a
// filtered subset
type AggregateAccuracyInput struct {
	Room    *entities.Room
	Subject *string
	Query   string
}

// AggregateAccuracyOutput defines the response for aggregate accuracy
type AggregateAccuracyOutput struct {
	Attempts int
	Correct  int
	// Accuracy is sum(correct)/sum(attempts)*100, 0 with no attempts
	Accuracy float64
}
