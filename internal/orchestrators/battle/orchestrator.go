// Package battle implements the battle session engine: a short, strictly
// sequential quiz against a chosen set of enemies. The session is ephemeral
// and never persisted; committing XP and per-enemy outcomes is the caller's
// job, which keeps the state machine testable in isolation.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/spartan-system/spartan-api/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/questiongen"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

// XP formula pieces.
const (
	baseXP    = 10
	correctXP = 25
)

// correctnessThreshold is the self-assessment score at or above which a
// subjective answer counts as correct.
const correctnessThreshold = 60

var confidenceXP = map[Confidence]int{
	ConfidenceCertain: 15,
	ConfidenceDoubt:   5,
	ConfidenceGuess:   0,
}

var selfAssessmentXP = map[SelfAssessment]int{
	SelfAssessmentEasy:  15,
	SelfAssessmentHard:  5,
	SelfAssessmentError: 0,
}

var selfAssessmentScore = map[SelfAssessment]int{
	SelfAssessmentEasy:  85,
	SelfAssessmentHard:  60,
	SelfAssessmentError: 20,
}

// Service defines the interface for battle session operations
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)
	NextQuestion(ctx context.Context, input *NextQuestionInput) (*NextQuestionOutput, error)
	CalculateResults(ctx context.Context, input *CalculateResultsInput) (*CalculateResultsOutput, error)
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	GameStateRepo gamestate.Repository
	// Rand drives question selection and shuffling
	Rand *rand.Rand
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameStateRepo == nil {
		vb.RequiredField("GameStateRepo")
	}
	if c.Rand == nil {
		vb.RequiredField("Rand")
	}

	return vb.Build()
}

type orchestrator struct {
	repo gamestate.Repository
	rand *rand.Rand

	mu      sync.Mutex
	session *State
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo: cfg.GameStateRepo,
		rand: cfg.Rand,
	}, nil
}

// Start generates two questions per selected enemy, shuffles them and
// activates a fresh session. Any previous session is discarded.
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.EnemyIDs) == 0 {
		return nil, errors.FailedPrecondition("battle requires at least one enemy")
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	selected := make([]*entities.Enemy, 0, len(input.EnemyIDs))
	for _, id := range input.EnemyIDs {
		target, ok := loadOut.Snapshot.FindEnemy(id)
		if !ok {
			return nil, errors.NotFoundf("enemy with ID %s not found", id)
		}
		selected = append(selected, target)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.session = &State{
		SelectedEnemies: selected,
		Questions:       questiongen.ForEnemies(selected, o.rand),
		IsActive:        true,
	}

	slog.Info("battle started",
		"enemies", len(selected),
		"questions", len(o.session.Questions),
	)

	return &StartOutput{State: o.snapshotState()}, nil
}

// SubmitAnswer grades the current question and appends the answer record.
// The call is terminal for the question: the session shows the result until
// NextQuestion advances.
func (o *orchestrator) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active battle session")
	}
	if o.session.ShowResult {
		return nil, errors.FailedPrecondition("current question already answered")
	}

	question, ok := o.session.CurrentQuestion()
	if !ok {
		return nil, errors.Internal("battle cursor out of range")
	}

	answer, err := gradeAnswer(question, input)
	if err != nil {
		return nil, err
	}

	o.session.Answers = append(o.session.Answers, answer)
	o.session.ShowResult = true

	return &SubmitAnswerOutput{Answer: answer, State: o.snapshotState()}, nil
}

// NextQuestion advances the cursor. Moving past the last question completes
// the session and raises the report flag.
func (o *orchestrator) NextQuestion(ctx context.Context, _ *NextQuestionInput) (*NextQuestionOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active battle session")
	}

	o.session.CurrentIndex++
	o.session.ShowResult = false
	if o.session.CurrentIndex >= len(o.session.Questions) {
		o.session.IsComplete = true
		o.session.IsActive = false
		o.session.ShowReport = true
	}

	return &NextQuestionOutput{State: o.snapshotState()}, nil
}

// CalculateResults aggregates the answers submitted so far. It is a pure
// read and works mid-session as well as after completion.
func (o *orchestrator) CalculateResults(ctx context.Context, _ *CalculateResultsInput) (*CalculateResultsOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	results := Results{}
	if o.session != nil {
		for _, a := range o.session.Answers {
			results.TotalQuestions++
			if a.IsCorrect {
				results.CorrectAnswers++
			}
			results.TotalXP += a.XPGained
		}
	}
	if results.TotalQuestions > 0 {
		results.Accuracy = float64(results.CorrectAnswers) / float64(results.TotalQuestions) * 100
	}

	return &CalculateResultsOutput{Results: results}, nil
}

// Reset discards the session unconditionally, returning to idle.
func (o *orchestrator) Reset(ctx context.Context, _ *ResetInput) (*ResetOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.session = nil

	return &ResetOutput{}, nil
}

func (o *orchestrator) GetState(ctx context.Context, _ *GetStateInput) (*GetStateOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &GetStateOutput{State: o.snapshotState()}, nil
}

// snapshotState copies the session so callers cannot mutate engine state
// through the returned pointer. Caller must hold o.mu.
func (o *orchestrator) snapshotState() *State {
	if o.session == nil {
		return &State{}
	}

	copied := *o.session
	copied.SelectedEnemies = append([]*entities.Enemy(nil), o.session.SelectedEnemies...)
	copied.Questions = append([]questiongen.SessionQuestion(nil), o.session.Questions...)
	copied.Answers = append([]Answer(nil), o.session.Answers...)
	return &copied
}

// gradeAnswer validates the submission shape against the question type,
// decides correctness and applies the XP formula.
func gradeAnswer(question questiongen.SessionQuestion, input *SubmitAnswerInput) (Answer, error) {
	answer := Answer{
		QuestionID:  question.ID,
		EnemyID:     question.EnemyID,
		ErrorReason: input.ErrorReason,
	}

	if input.ErrorReason != "" {
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("ErrorReason", string(input.ErrorReason), ErrorReasons(), vb)
		if err := vb.Build(); err != nil {
			return Answer{}, err
		}
	}

	switch question.Type {
	case entities.QuestionObjective:
		if input.UserAnswer == nil {
			return Answer{}, errors.InvalidArgument("objective question requires a user answer")
		}
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("Confidence", string(input.Confidence), Confidences(), vb)
		if err := vb.Build(); err != nil {
			return Answer{}, err
		}
		if input.SelfAssessment != "" {
			return Answer{}, errors.InvalidArgument("self-assessment does not apply to objective questions")
		}

		answer.UserAnswer = input.UserAnswer
		answer.Confidence = input.Confidence
		answer.IsCorrect = *input.UserAnswer == question.CorrectIndex
		answer.XPGained = xpFor(answer.IsCorrect, confidenceXP[input.Confidence])

	case entities.QuestionSubjective:
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("SelfAssessment", string(input.SelfAssessment), SelfAssessments(), vb)
		if err := vb.Build(); err != nil {
			return Answer{}, err
		}
		if input.UserAnswer != nil || input.Confidence != "" {
			return Answer{}, errors.InvalidArgument("objective fields do not apply to subjective questions")
		}

		answer.SelfAssessment = input.SelfAssessment
		answer.IsCorrect = selfAssessmentScore[input.SelfAssessment] >= correctnessThreshold
		answer.XPGained = xpFor(answer.IsCorrect, selfAssessmentXP[input.SelfAssessment])

	default:
		return Answer{}, errors.Internalf("question %s has unknown type %q", question.ID, question.Type)
	}

	return answer, nil
}

func xpFor(isCorrect bool, bonus int) int {
	xp := baseXP + bonus
	if isCorrect {
		xp += correctXP
	}
	return xp
}
