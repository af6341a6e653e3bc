package testutils

import (
	"fmt"
	"time"

	"github.com/spartan-system/spartan-api/internal/entities"
)

// TestEnemySubject is the default subject for test fixtures
const TestEnemySubject = "Constitutional Law"

// CreateTestEnemy creates a test enemy with sensible defaults
func CreateTestEnemy(id string) *entities.Enemy {
	return &entities.Enemy{
		ID:        id,
		Subject:   TestEnemySubject,
		Topic:     "Fundamental Rights",
		Type:      entities.QuestionObjective,
		Room:      entities.RoomRed,
		Questions: []entities.Question{},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}
}

// CreateTestEnemyInRoom creates a test enemy placed in the given room
func CreateTestEnemyInRoom(id string, room entities.Room) *entities.Enemy {
	enemy := CreateTestEnemy(id)
	enemy.Room = room
	return enemy
}

// CreateTestEnemyWithStats creates a test enemy with battle history
func CreateTestEnemyWithStats(id string, attempts, correct int) *entities.Enemy {
	enemy := CreateTestEnemy(id)
	enemy.Stats.Attempts = attempts
	enemy.Stats.Correct = correct
	if attempts > 0 {
		enemy.Stats.Accuracy = float64(correct) / float64(attempts) * 100
	}
	return enemy
}

// CreateTestObjectiveQuestion creates an authored multiple-choice question
func CreateTestObjectiveQuestion(id string, correctIndex int) entities.Question {
	return entities.Question{
		ID:     id,
		Type:   entities.QuestionObjective,
		Prompt: fmt.Sprintf("Test question %s?", id),
		Alternatives: []string{
			"Alternative A",
			"Alternative B",
			"Alternative C",
			"Alternative D",
		},
		CorrectIndex: correctIndex,
	}
}

// CreateTestSubjectiveQuestion creates an authored flashcard question
func CreateTestSubjectiveQuestion(id string) entities.Question {
	return entities.Question{
		ID:    id,
		Type:  entities.QuestionSubjective,
		Front: fmt.Sprintf("Explain concept %s", id),
		Back:  fmt.Sprintf("Concept %s explained", id),
	}
}

// CreateTestSnapshot creates a snapshot with the given enemies and a fresh warrior
func CreateTestSnapshot(enemies ...*entities.Enemy) *entities.Snapshot {
	snapshot := entities.NewSnapshot(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	snapshot.Enemies = enemies
	return snapshot
}
