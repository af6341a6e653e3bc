// Package exam implements the simulado session engine: a freely navigable,
// timed mock exam over a filtered enemy pool. Answers are keyed by question
// id and replaceable. The session is ephemeral; the caller commits XP (and,
// for rescue operations only, per-enemy outcomes) after Finish.
package exam

//go:generate mockgen -destination=mock/mock_service.go -package=exammock github.com/spartan-system/spartan-api/internal/orchestrators/exam Service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/pkg/clock"
	"github.com/spartan-system/spartan-api/internal/pkg/ticker"
	"github.com/spartan-system/spartan-api/internal/questiongen"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

// XP payout constants per mode. Skirmish and full exam pay a base plus an
// accuracy-scaled bonus; rescue operations pay per rescued question.
const (
	skirmishBaseXP      = 100
	fullExamBaseXP      = 200
	rescuePerCorrectXP  = 50
	elapsedTickInterval = time.Second
)

// Service defines the interface for exam session operations
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)
	NavigateTo(ctx context.Context, input *NavigateToInput) (*NavigateToOutput, error)
	ToggleReviewMark(ctx context.Context, input *ToggleReviewMarkInput) (*ToggleReviewMarkOutput, error)
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)
	Finish(ctx context.Context, input *FinishInput) (*FinishOutput, error)
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)
	GetProgress(ctx context.Context, input *GetProgressInput) (*GetProgressOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
}

// Config holds the dependencies for the exam orchestrator
type Config struct {
	GameStateRepo gamestate.Repository
	Clock         clock.Clock
	// Rand drives question selection and shuffling
	Rand *rand.Rand
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameStateRepo == nil {
		vb.RequiredField("GameStateRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Rand == nil {
		vb.RequiredField("Rand")
	}

	return vb.Build()
}

type orchestrator struct {
	repo  gamestate.Repository
	clock clock.Clock
	rand  *rand.Rand

	mu           sync.Mutex
	session      *State
	startedAt    time.Time
	lastSubmitAt time.Time
	elapsed      *ticker.Ticker
}

// NewOrchestrator creates a new exam orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:  cfg.GameStateRepo,
		clock: cfg.Clock,
		rand:  cfg.Rand,
	}, nil
}

// Start filters the enemy pool by mode and subjects, generates and truncates
// the question list and begins elapsed-time ticking. Any previous session is
// discarded, its ticker included.
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Config.Mode", string(input.Config.Mode), Modes(), vb)
	if input.Config.QuestionCount < 0 {
		vb.Field("Config.QuestionCount", "cannot be negative")
	}
	if input.Config.TimeLimitMinutes < 0 {
		vb.Field("Config.TimeLimitMinutes", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	pool := filterPool(loadOut.Snapshot.Enemies, input.Config)
	generated := questiongen.ForEnemies(pool, o.rand)
	if len(generated) == 0 {
		return nil, errors.FailedPreconditionf("no eligible enemies for %s", input.Config.Mode)
	}

	count, err := o.questionCount(input.Config, len(generated))
	if err != nil {
		return nil, err
	}
	generated = generated[:count]

	questions := make([]Question, len(generated))
	for i, q := range generated {
		questions[i] = Question{SessionQuestion: q}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopTickerLocked()

	now := o.clock.Now()
	cfg := input.Config
	o.session = &State{
		Config:    &cfg,
		Questions: questions,
		IsActive:  true,
		StartedAt: now.Unix(),
	}
	o.startedAt = now
	o.lastSubmitAt = now

	o.elapsed = ticker.New(elapsedTickInterval, o.tick)
	o.elapsed.Start()

	slog.Info("exam started",
		"mode", cfg.Mode,
		"questions", len(questions),
		"time_limit_minutes", cfg.TimeLimitMinutes,
	)

	return &StartOutput{State: o.snapshotState()}, nil
}

// NavigateTo clamps the requested index into range. Navigation is always
// permitted while the session is active, answered or not.
func (o *orchestrator) NavigateTo(ctx context.Context, input *NavigateToInput) (*NavigateToOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active exam session")
	}

	index := input.Index
	if index < 0 {
		index = 0
	}
	if max := len(o.session.Questions) - 1; index > max {
		index = max
	}
	o.session.CurrentIndex = index

	return &NavigateToOutput{State: o.snapshotState()}, nil
}

// ToggleReviewMark flips the review flag for a question and mirrors it onto
// the question record and any existing answer.
func (o *orchestrator) ToggleReviewMark(ctx context.Context, input *ToggleReviewMarkInput) (*ToggleReviewMarkOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active exam session")
	}

	question := o.findQuestionLocked(input.QuestionID)
	if question == nil {
		return nil, errors.NotFoundf("question with ID %s not in this exam", input.QuestionID)
	}

	question.MarkedForReview = !question.MarkedForReview
	for i := range o.session.Answers {
		if o.session.Answers[i].QuestionID == input.QuestionID {
			o.session.Answers[i].MarkedForReview = question.MarkedForReview
		}
	}

	return &ToggleReviewMarkOutput{Marked: question.MarkedForReview, State: o.snapshotState()}, nil
}

// SubmitAnswer grades a question and stores the answer, replacing any prior
// answer for the same question id. Subjective submissions count as correct
// in this flow; there is no self-assessment step in exams.
func (o *orchestrator) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active exam session")
	}

	question := o.findQuestionLocked(input.QuestionID)
	if question == nil {
		return nil, errors.NotFoundf("question with ID %s not in this exam", input.QuestionID)
	}

	isCorrect := true
	if question.Type == entities.QuestionObjective {
		if input.UserAnswer == nil {
			return nil, errors.InvalidArgument("objective question requires a user answer")
		}
		isCorrect = *input.UserAnswer == question.CorrectIndex
	}

	now := o.clock.Now()
	responseTime := int(now.Sub(o.lastSubmitAt).Seconds())
	if responseTime < 0 {
		responseTime = 0
	}
	o.lastSubmitAt = now

	answer := Answer{
		QuestionID:          question.ID,
		EnemyID:             question.EnemyID,
		Subject:             question.Subject,
		UserAnswer:          input.UserAnswer,
		IsCorrect:           isCorrect,
		ResponseTimeSeconds: responseTime,
		MarkedForReview:     question.MarkedForReview,
	}

	replaced := false
	for i := range o.session.Answers {
		if o.session.Answers[i].QuestionID == answer.QuestionID {
			o.session.Answers[i] = answer
			replaced = true
			break
		}
	}
	if !replaced {
		o.session.Answers = append(o.session.Answers, answer)
	}

	question.Answered = true
	question.ResponseTimeSeconds = responseTime

	return &SubmitAnswerOutput{Answer: answer, State: o.snapshotState()}, nil
}

// Finish freezes the timer, builds the report and closes the session.
func (o *orchestrator) Finish(ctx context.Context, _ *FinishInput) (*FinishOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return nil, errors.FailedPrecondition("no active exam session")
	}

	o.stopTickerLocked()

	now := o.clock.Now()
	o.session.ElapsedSeconds = int(now.Sub(o.startedAt).Seconds())

	results := o.buildResultsLocked(now)
	o.session.Results = results
	o.session.IsActive = false
	o.session.IsComplete = true
	o.session.ShowReport = true

	slog.Info("exam finished",
		"mode", results.Mode,
		"accuracy", results.Accuracy,
		"xp_gained", results.XPGained,
	)

	return &FinishOutput{Results: results, State: o.snapshotState()}, nil
}

// Reset discards the session unconditionally, stopping the ticker.
func (o *orchestrator) Reset(ctx context.Context, _ *ResetInput) (*ResetOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopTickerLocked()
	o.session = nil

	return &ResetOutput{}, nil
}

func (o *orchestrator) GetProgress(ctx context.Context, _ *GetProgressInput) (*GetProgressOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	progress := Progress{}
	if o.session != nil {
		progress.Total = len(o.session.Questions)
		progress.Answered = len(o.session.Answers)
		for _, q := range o.session.Questions {
			if q.MarkedForReview {
				progress.Marked++
			}
		}
		progress.Remaining = progress.Total - progress.Answered
	}

	return &GetProgressOutput{Progress: progress}, nil
}

func (o *orchestrator) GetState(ctx context.Context, _ *GetStateInput) (*GetStateOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &GetStateOutput{State: o.snapshotState()}, nil
}

// tick refreshes the elapsed counter while the session is active.
func (o *orchestrator) tick() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil || !o.session.IsActive {
		return
	}
	o.session.ElapsedSeconds = int(o.clock.Now().Sub(o.startedAt).Seconds())
}

// stopTickerLocked tears down the elapsed ticker. Caller must hold o.mu.
func (o *orchestrator) stopTickerLocked() {
	if o.elapsed != nil {
		o.elapsed.Stop()
		o.elapsed = nil
	}
}

func (o *orchestrator) findQuestionLocked(id string) *Question {
	for i := range o.session.Questions {
		if o.session.Questions[i].ID == id {
			return &o.session.Questions[i]
		}
	}
	return nil
}

// questionCount resolves the final question count for a mode: an explicit
// configured count wins, otherwise skirmish rolls 10..20 and full exam rolls
// 50..100, while rescue operations take the whole pool. The result never
// exceeds what the pool generated.
func (o *orchestrator) questionCount(cfg SessionConfig, available int) (int, error) {
	count := cfg.QuestionCount
	if count == 0 {
		switch cfg.Mode {
		case ModeSkirmish:
			roll, err := dice.NewRoll(1, 11)
			if err != nil {
				return 0, errors.Wrap(err, "failed to roll question count")
			}
			count = roll.GetValue() + 9
		case ModeFullExam:
			roll, err := dice.NewRoll(1, 51)
			if err != nil {
				return 0, errors.Wrap(err, "failed to roll question count")
			}
			count = roll.GetValue() + 49
		case ModeRescueOperation:
			count = available
		}
	}

	if count > available {
		count = available
	}
	return count, nil
}

// buildResultsLocked aggregates answers into the final report. The
// per-subject breakdown counts every generated question against its subject;
// unanswered questions count as incorrect. Caller must hold o.mu.
func (o *orchestrator) buildResultsLocked(now time.Time) *Results {
	correct := 0
	answered := make(map[string]Answer, len(o.session.Answers))
	for _, a := range o.session.Answers {
		answered[a.QuestionID] = a
		if a.IsCorrect {
			correct++
		}
	}

	total := len(o.session.Questions)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	cfg := o.session.Config
	xp := 0
	switch cfg.Mode {
	case ModeSkirmish:
		xp = skirmishBaseXP + int(accuracy*0.5)
	case ModeFullExam:
		xp = fullExamBaseXP + int(accuracy)
	case ModeRescueOperation:
		xp = correct * rescuePerCorrectXP
	}

	perSubject := make(map[string]SubjectPerformance)
	var markedIDs []string
	for _, q := range o.session.Questions {
		if q.MarkedForReview {
			markedIDs = append(markedIDs, q.ID)
		}

		perf := perSubject[q.Subject]
		perf.Total++
		if a, ok := answered[q.ID]; ok && a.IsCorrect {
			perf.Correct++
		}
		perf.Rate = float64(perf.Correct) / float64(perf.Total) * 100
		perSubject[q.Subject] = perf
	}

	return &Results{
		Mode:              cfg.Mode,
		TotalQuestions:    total,
		CorrectCount:      correct,
		Accuracy:          accuracy,
		ElapsedSeconds:    o.session.ElapsedSeconds,
		PredictedSeconds:  cfg.TimeLimitMinutes * 60,
		XPGained:          xp,
		PerSubject:        perSubject,
		MarkedQuestionIDs: markedIDs,
		CompletedAt:       now.Unix(),
	}
}

// snapshotState copies the session so callers cannot mutate engine state
// through the returned pointer. Caller must hold o.mu.
func (o *orchestrator) snapshotState() *State {
	if o.session == nil {
		return &State{}
	}

	copied := *o.session
	copied.Questions = append([]Question(nil), o.session.Questions...)
	copied.Answers = append([]Answer(nil), o.session.Answers...)
	if o.session.Config != nil {
		cfg := *o.session.Config
		copied.Config = &cfg
	}
	if o.session.Results != nil {
		res := *o.session.Results
		copied.Results = &res
	}
	return &copied
}

// filterPool applies the mode and subject filters to the enemy collection.
func filterPool(enemies []*entities.Enemy, cfg SessionConfig) []*entities.Enemy {
	subjects := make(map[string]bool, len(cfg.Subjects))
	for _, s := range cfg.Subjects {
		subjects[s] = true
	}

	out := make([]*entities.Enemy, 0, len(enemies))
	for _, e := range enemies {
		if cfg.Mode == ModeRescueOperation && e.Room != entities.RoomRed {
			continue
		}
		if len(subjects) > 0 && !subjects[e.Subject] {
			continue
		}
		out = append(out, e)
	}
	return out
}
