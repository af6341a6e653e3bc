package exam

import (
	"github.com/spartan-system/spartan-api/internal/questiongen"
)

// Mode selects the exam flavor, which drives question count, XP payout and
// (for rescue operations) the candidate pool.
type Mode string

// Exam modes.
const (
	ModeSkirmish        Mode = "skirmish"
	ModeFullExam        Mode = "full_exam"
	ModeRescueOperation Mode = "rescue_operation"
)

// Modes lists the valid exam modes.
func Modes() []string {
	return []string{string(ModeSkirmish), string(ModeFullExam), string(ModeRescueOperation)}
}

// SessionConfig parameterizes an exam session. QuestionCount 0 means the
// mode default; Subjects empty means no subject filter.
type SessionConfig struct {
	Mode             Mode
	Subjects         []string
	QuestionCount    int
	TimeLimitMinutes int
}

// Question is a session question plus per-question exam bookkeeping.
type Question struct {
	questiongen.SessionQuestion

	MarkedForReview     bool
	Answered            bool
	ResponseTimeSeconds int
}

// Answer is one exam answer. Answers are keyed by question id and
// replaceable: re-answering a question overwrites the prior record.
type Answer struct {
	QuestionID          string
	EnemyID             string
	Subject             string
	UserAnswer          *int
	IsCorrect           bool
	ResponseTimeSeconds int
	MarkedForReview     bool
}

// SubjectPerformance is the per-subject slice of the final report.
type SubjectPerformance struct {
	Correct int
	Total   int
	// Rate is correct/total*100
	Rate float64
}

// Results is the final report, populated only at finish.
type Results struct {
	Mode           Mode
	TotalQuestions int
	CorrectCount   int
	Accuracy       float64
	ElapsedSeconds int
	// PredictedSeconds is the configured time limit, 0 when none was set
	PredictedSeconds  int
	XPGained          int
	PerSubject        map[string]SubjectPerformance
	MarkedQuestionIDs []string
	CompletedAt       int64
}

// State is a point-in-time copy of the exam session. A zero State with
// IsActive false is the idle state.
type State struct {
	Config         *SessionConfig
	Questions      []Question
	CurrentIndex   int
	Answers        []Answer
	IsActive       bool
	IsComplete     bool
	ShowReport     bool
	StartedAt      int64
	ElapsedSeconds int
	Results        *Results
}

// Progress summarizes how far the session has advanced.
type Progress struct {
	Answered  int
	Total     int
	Marked    int
	Remaining int
}

// StartInput defines the request for starting an exam session
type StartInput struct {
	Config SessionConfig
}

// StartOutput defines the response for starting an exam session
type StartOutput struct {
	State *State
}

// NavigateToInput defines the request for moving the cursor
type NavigateToInput struct {
	Index int
}

// NavigateToOutput defines the response for moving the cursor
type NavigateToOutput struct {
	State *State
}

// ToggleReviewMarkInput defines the request for flipping a review mark
type ToggleReviewMarkInput struct {
	QuestionID string
}

// ToggleReviewMarkOutput defines the response for flipping a review mark
type ToggleReviewMarkOutput struct {
	// Marked is the state of the flag after the toggle
	Marked bool
	State  *State
}

// SubmitAnswerInput defines the request for answering a question. UserAnswer
// applies to objective questions only.
type SubmitAnswerInput struct {
	QuestionID string
	UserAnswer *int
}

// SubmitAnswerOutput defines the response for answering a question
type SubmitAnswerOutput struct {
	Answer Answer
	State  *State
}

// FinishInput defines the request for closing the session and building the report
type FinishInput struct {
	// Empty for now, can be extended later
}

// FinishOutput defines the response for closing the session
type FinishOutput struct {
	Results *Results
	State   *State
}

// ResetInput defines the request for discarding the session
type ResetInput struct {
	// Empty for now, can be extended later
}

// ResetOutput defines the response for discarding the session
type ResetOutput struct {
	// Empty for now, can be extended later
}

// GetProgressInput defines the request for reading session progress
type GetProgressInput struct {
	// Empty for now, can be extended later
}

// GetProgressOutput defines the response for reading session progress
type GetProgressOutput struct {
	Progress Progress
}

// GetStateInput defines the request for reading the session state
type GetStateInput struct {
	// Empty for now, can be extended later
}

// GetStateOutput defines the response for reading the session state
type GetStateOutput struct {
	State *State
}
