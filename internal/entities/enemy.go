package entities

import "time"

// Room is the manually-assigned difficulty/mastery tier of an enemy. The
// engine never promotes or demotes a room on its own; rooms only change
// through an explicit edit.
type Room string

// Room tiers, weakest mastery first.
const (
	RoomRed    Room = "red"
	RoomYellow Room = "yellow"
	RoomGreen  Room = "green"
)

// Rooms lists the valid tiers in display order.
func Rooms() []string {
	return []string{string(RoomRed), string(RoomYellow), string(RoomGreen)}
}

// QuestionType distinguishes multiple-choice questions from flashcards.
type QuestionType string

// Question types.
const (
	QuestionObjective  QuestionType = "objective"
	QuestionSubjective QuestionType = "subjective"
)

// QuestionTypes lists the valid question types.
func QuestionTypes() []string {
	return []string{string(QuestionObjective), string(QuestionSubjective)}
}

// Question is an authored question record. Objective questions carry
// alternatives and an answer key; subjective ones carry flashcard front/back.
type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	Prompt       string       `json:"prompt,omitempty"`
	Alternatives []string     `json:"alternatives,omitempty"`
	CorrectIndex int          `json:"correct_index,omitempty"`
	Front        string       `json:"front,omitempty"`
	Back         string       `json:"back,omitempty"`
}

// EnemyStats tracks battle outcomes for one enemy. Accuracy is derived and
// recomputed on every outcome, never independently settable.
type EnemyStats struct {
	Attempts     int     `json:"attempts"`
	Correct      int     `json:"correct"`
	Accuracy     float64 `json:"accuracy"`
	LastBattleAt int64   `json:"last_battle_at,omitempty"`
}

// Enemy is a study topic/deck: author-supplied classification, authored
// questions and battle statistics.
type Enemy struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Topic     string       `json:"topic"`
	Subtopic  string       `json:"subtopic,omitempty"`
	Type      QuestionType `json:"type"`
	Room      Room         `json:"room"`
	Questions []Question   `json:"questions"`
	Stats     EnemyStats   `json:"stats"`
	CreatedAt int64        `json:"created_at"`
}

// RecordOutcome registers one battle attempt against this enemy and
// recomputes the derived accuracy. Correct never exceeds Attempts.
func (e *Enemy) RecordOutcome(wasCorrect bool, at time.Time) {
	e.Stats.Attempts++
	if wasCorrect {
		e.Stats.Correct++
	}
	e.Stats.Accuracy = float64(e.Stats.Correct) / float64(e.Stats.Attempts) * 100
	e.Stats.LastBattleAt = at.Unix()
}

// QuestionsOfType returns the authored questions matching the given type.
func (e *Enemy) QuestionsOfType(qt QuestionType) []Question {
	var out []Question
	for _, q := range e.Questions {
		if q.Type == qt {
			out = append(out, q)
		}
	}
	return out
}
