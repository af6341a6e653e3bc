// Package enemy implements the enemy orchestrator: CRUD over the enemy
// collection nested in the game snapshot, battle-outcome bookkeeping and the
// read-only query helpers. Forging an enemy grants XP; rooms never change
// except through an explicit edit.
package enemy

//go:generate mockgen -destination=mock/mock_service.go -package=enemymock github.com/spartan-system/spartan-api/internal/orchestrators/enemy Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/pkg/clock"
	"github.com/spartan-system/spartan-api/internal/pkg/idgen"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

// Service defines the interface for enemy operations
type Service interface {
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
	AddQuestion(ctx context.Context, input *AddQuestionInput) (*AddQuestionOutput, error)
	RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	AggregateAccuracy(ctx context.Context, input *AggregateAccuracyInput) (*AggregateAccuracyOutput, error)
}

// Config holds the dependencies for the enemy orchestrator
type Config struct {
	GameStateRepo gamestate.Repository
	Clock         clock.Clock
	// QuestionIDGen assigns ids to authored questions that arrive without one
	QuestionIDGen idgen.Generator
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
	if c.QuestionIDGen == nil {
		vb.RequiredField("QuestionIDGen")
	}

	return vb.Build()
}

type orchestrator struct {
	repo          gamestate.Repository
	clock         clock.Clock
	questionIDGen idgen.Generator
}

// NewOrchestrator creates a new enemy orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:          cfg.GameStateRepo,
		clock:         cfg.Clock,
		questionIDGen: cfg.QuestionIDGen,
	}, nil
}

// commit mirrors the progression orchestrator's flow: load, mutate, refresh
// derived stats, evaluate achievements, save. The mutation may fail, in
// which case nothing is persisted.
func (o *orchestrator) commit(ctx context.Context, mutate func(*entities.Snapshot) error) (*entities.Snapshot, []achievements.Achievement, error) {
	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, nil, err
	}
	snapshot := loadOut.Snapshot

	if err := mutate(snapshot); err != nil {
		return nil, nil, err
	}
	snapshot.Warrior.Stats.OverallAccuracy = snapshot.OverallAccuracy()
	unlocked := achievements.Apply(snapshot)

	if _, err := o.repo.Save(ctx, gamestate.SaveInput{Snapshot: snapshot}); err != nil {
		return nil, nil, err
	}

	return snapshot, unlocked, nil
}

func (o *orchestrator) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Subject", input.Subject, vb)
	errors.ValidateRequired("Topic", input.Topic, vb)
	errors.ValidateEnum("Type", string(input.Type), entities.QuestionTypes(), vb)
	errors.ValidateEnum("Room", string(input.Room), entities.Rooms(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	created := &entities.Enemy{
		ID:        idgen.EnemyID(input.Subject, input.Topic, now),
		Subject:   input.Subject,
		Topic:     input.Topic,
		Subtopic:  input.Subtopic,
		Type:      input.Type,
		Room:      input.Room,
		Questions: o.withQuestionIDs(input.Questions),
		CreatedAt: now.Unix(),
	}

	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) error {
		s.Enemies = append(s.Enemies, created)
		s.Warrior.GainXP(ForgeXPReward)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("enemy forged",
		"enemy_id", created.ID,
		"subject", created.Subject,
		"room", created.Room,
	)

	return &CreateOutput{Enemy: created, Warrior: snapshot.Warrior, Unlocked: unlocked}, nil
}

func (o *orchestrator) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("enemy id cannot be empty")
	}

	var updated *entities.Enemy
	_, _, err := o.commit(ctx, func(s *entities.Snapshot) error {
		target, ok := s.FindEnemy(input.ID)
		if !ok {
			return errors.NotFoundf("enemy with ID %s not found", input.ID)
		}

		if input.Subject != nil {
			if strings.TrimSpace(*input.Subject) == "" {
				return errors.InvalidArgument("subject cannot be blank")
			}
			target.Subject = *input.Subject
		}
		if input.Topic != nil {
			if strings.TrimSpace(*input.Topic) == "" {
				return errors.InvalidArgument("topic cannot be blank")
			}
			target.Topic = *input.Topic
		}
		if input.Subtopic != nil {
			target.Subtopic = *input.Subtopic
		}
		if input.Type != nil {
			target.Type = *input.Type
		}
		if input.Room != nil {
			target.Room = *input.Room
		}
		if input.Questions != nil {
			target.Questions = o.withQuestionIDs(*input.Questions)
		}

		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateOutput{Enemy: updated}, nil
}

func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("enemy id cannot be empty")
	}

	deleted := false
	_, _, err := o.commit(ctx, func(s *entities.Snapshot) error {
		deleted = s.RemoveEnemy(input.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !deleted {
		// Deleting an absent enemy is a silent no-op by contract.
		slog.Debug("delete matched no enemy", "enemy_id", input.ID)
	}

	return &DeleteOutput{Deleted: deleted}, nil
}

func (o *orchestrator) AddQuestion(ctx context.Context, input *AddQuestionInput) (*AddQuestionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EnemyID == "" {
		return nil, errors.InvalidArgument("enemy id cannot be empty")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Question.Type", string(input.Question.Type), entities.QuestionTypes(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var updated *entities.Enemy
	_, _, err := o.commit(ctx, func(s *entities.Snapshot) error {
		target, ok := s.FindEnemy(input.EnemyID)
		if !ok {
			return errors.NotFoundf("enemy with ID %s not found", input.EnemyID)
		}

		question := input.Question
		if question.ID == "" {
			question.ID = o.questionIDGen.Generate()
		}
		target.Questions = append(target.Questions, question)
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddQuestionOutput{Enemy: updated}, nil
}

func (o *orchestrator) RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("enemy id cannot be empty")
	}

	var updated *entities.Enemy
	_, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) error {
		target, ok := s.FindEnemy(input.ID)
		if !ok {
			return errors.NotFoundf("enemy with ID %s not found", input.ID)
		}
		target.RecordOutcome(input.WasCorrect, o.clock.Now())
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RecordOutcomeOutput{Enemy: updated, Unlocked: unlocked}, nil
}

func (o *orchestrator) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("enemy id cannot be empty")
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	target, ok := loadOut.Snapshot.FindEnemy(input.ID)
	if !ok {
		return nil, errors.NotFoundf("enemy with ID %s not found", input.ID)
	}

	return &GetOutput{Enemy: target}, nil
}

func (o *orchestrator) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	return &ListOutput{Enemies: filterEnemies(loadOut.Snapshot.Enemies, input.Room, input.Subject, input.Query)}, nil
}

func (o *orchestrator) AggregateAccuracy(ctx context.Context, input *AggregateAccuracyInput) (*AggregateAccuracyOutput, error) {
	if input == nil {
		input = &AggregateAccuracyInput{}
	}

	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	out := &AggregateAccuracyOutput{}
	for _, e := range filterEnemies(loadOut.Snapshot.Enemies, input.Room, input.Subject, input.Query) {
		out.Attempts += e.Stats.Attempts
		out.Correct += e.Stats.Correct
	}
	if out.Attempts > 0 {
		out.Accuracy = float64(out.Correct) / float64(out.Attempts) * 100
	}

	return out, nil
}

func (o *orchestrator) withQuestionIDs(questions []entities.Question) []entities.Question {
	out := make([]entities.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = o.questionIDGen.Generate()
		}
		out[i] = q
	}
	return out
}

func filterEnemies(enemies []*entities.Enemy, room *entities.Room, subject *string, query string) []*entities.Enemy {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]*entities.Enemy, 0, len(enemies))
	for _, e := range enemies {
		if room != nil && e.Room != *room {
			continue
		}
		if subject != nil && !strings.EqualFold(e.Subject, *subject) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e *entities.Enemy, query string) bool {
	return strings.Contains(strings.ToLower(e.Subject), query) ||
		strings.Contains(strings.ToLower(e.Topic), query) ||
		strings.Contains(strings.ToLower(e.Subtopic), query)
}
