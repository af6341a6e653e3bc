package battle

import (
	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/questiongen"
)

// Confidence is the learner's stated certainty on an objective answer.
type Confidence string

// Confidence levels and their XP bonuses (highest first).
const (
	ConfidenceCertain Confidence = "certain"
	ConfidenceDoubt   Confidence = "doubt"
	ConfidenceGuess   Confidence = "guess"
)

// Confidences lists the valid confidence levels.
func Confidences() []string {
	return []string{string(ConfidenceCertain), string(ConfidenceDoubt), string(ConfidenceGuess)}
}

// SelfAssessment is the learner's grading of their own subjective answer.
type SelfAssessment string

// Self-assessment grades. A grade maps to an internal score; 60 or above
// counts as correct.
const (
	SelfAssessmentEasy  SelfAssessment = "easy"
	SelfAssessmentHard  SelfAssessment = "hard"
	SelfAssessmentError SelfAssessment = "error"
)

// SelfAssessments lists the valid self-assessment grades.
func SelfAssessments() []string {
	return []string{string(SelfAssessmentEasy), string(SelfAssessmentHard), string(SelfAssessmentError)}
}

// ErrorReason categorizes why an answer went wrong, captured for review.
type ErrorReason string

// Error reasons.
const (
	ErrorReasonContent     ErrorReason = "content"
	ErrorReasonDistraction ErrorReason = "distraction"
	ErrorReasonMisreading  ErrorReason = "misreading"
	ErrorReasonUndefined   ErrorReason = "undefined"
)

// ErrorReasons lists the valid error reasons.
func ErrorReasons() []string {
	return []string{
		string(ErrorReasonContent),
		string(ErrorReasonDistraction),
		string(ErrorReasonMisreading),
		string(ErrorReasonUndefined),
	}
}

// Answer is one submitted battle answer. Exactly one of the objective pair
// (UserAnswer, Confidence) or the subjective field (SelfAssessment) is
// populated, matching the question's type.
type Answer struct {
	QuestionID     string
	EnemyID        string
	UserAnswer     *int
	Confidence     Confidence
	SelfAssessment SelfAssessment
	ErrorReason    ErrorReason
	IsCorrect      bool
	XPGained       int
}

// State is a point-in-time copy of the battle session. A zero State with
// IsActive false is the idle state.
type State struct {
	SelectedEnemies []*entities.Enemy
	Questions       []questiongen.SessionQuestion
	CurrentIndex    int
	Answers         []Answer
	IsActive        bool
	IsComplete      bool
	ShowResult      bool
	ShowReport      bool
}

// CurrentQuestion returns the question under the cursor, or false when the
// cursor is out of range.
func (s *State) CurrentQuestion() (questiongen.SessionQuestion, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return questiongen.SessionQuestion{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Results aggregates a battle session.
type Results struct {
	TotalQuestions int
	CorrectAnswers int
	// Accuracy is correct/total*100, 0 with no answers
	Accuracy float64
	TotalXP  int
}

// StartInput defines the request for starting a battle session
type StartInput struct {
	EnemyIDs []string
}

// StartOutput defines the response for starting a battle session
type StartOutput struct {
	State *State
}

// SubmitAnswerInput defines the request for answering the current question.
// Objective questions take UserAnswer plus Confidence; subjective ones take
// SelfAssessment. ErrorReason is optional on either.
type SubmitAnswerInput struct {
	UserAnswer     *int
	Confidence     Confidence
	SelfAssessment SelfAssessment
	ErrorReason    ErrorReason
}

// SubmitAnswerOutput defines the response for answering the current question
type SubmitAnswerOutput struct {
	Answer Answer
	State  *State
}

// NextQuestionInput defines the request for advancing the cursor
type NextQuestionInput struct {
	// Empty for now, can be extended later
}

// NextQuestionOutput defines the response for advancing the cursor
type NextQuestionOutput struct {
	State *State
}

// CalculateResultsInput defines the request for aggregating the session
type CalculateResultsInput struct {
	// Empty for now, can be extended later
}

// CalculateResultsOutput defines the response for aggregating the session
type CalculateResultsOutput struct {
	Results Results
}

// ResetInput defines the request for discarding the session
type ResetInput struct {
	// Empty for now, can be extended later
}

// ResetOutput defines the response for discarding the session
type ResetOutput struct {
	// Empty for now, can be extended later
}

// GetStateInput defines the request for reading the session state
type GetStateInput struct {
	// Empty for now, can be extended later
}

// GetStateOutput defines the response for reading the session state
type GetStateOutput struct {
	State *State
}
