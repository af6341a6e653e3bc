// Package progression implements the progression orchestrator: experience
// with its level-up cascade, the clamped energy economy, study counters and
// the login streak. Out-of-range numeric inputs clamp instead of failing, so
// the single-player loop stays playable.
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/spartan-system/spartan-api/internal/orchestrators/progression Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/pkg/clock"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
)

// Service defines the interface for progression operations
type Service interface {
	GainXP(ctx context.Context, input *GainXPInput) (*GainXPOutput, error)
	SpendEnergy(ctx context.Context, input *SpendEnergyInput) (*SpendEnergyOutput, error)
	RestoreEnergy(ctx context.Context, input *RestoreEnergyInput) (*RestoreEnergyOutput, error)
	RecordStudyTime(ctx context.Context, input *RecordStudyTimeInput) (*RecordStudyTimeOutput, error)
	RecordQuestionResolved(ctx context.Context, input *RecordQuestionResolvedInput) (*RecordQuestionResolvedOutput, error)
	RecordExamCompleted(ctx context.Context, input *RecordExamCompletedInput) (*RecordExamCompletedOutput, error)
	RenameWarrior(ctx context.Context, input *RenameWarriorInput) (*RenameWarriorOutput, error)
	RecordLogin(ctx context.Context, input *RecordLoginInput) (*RecordLoginOutput, error)
	SetExamDate(ctx context.Context, input *SetExamDateInput) (*SetExamDateOutput, error)
	GetWarrior(ctx context.Context, input *GetWarriorInput) (*GetWarriorOutput, error)
}

// Config holds the dependencies for the progression orchestrator
type Config struct {
	GameStateRepo gamestate.Repository
	Clock         clock.Clock
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

	return vb.Build()
}

type orchestrator struct {
	repo  gamestate.Repository
	clock clock.Clock
}

// NewOrchestrator creates a new progression orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:  cfg.GameStateRepo,
		clock: cfg.Clock,
	}, nil
}

// commit runs a mutation over the loaded snapshot, refreshes the derived
// overall accuracy, evaluates achievements and saves the result. Every
// mutating operation funnels through here so the evaluator observes each
// persistent-state change.
func (o *orchestrator) commit(ctx context.Context, mutate func(*entities.Snapshot)) (*entities.Snapshot, []achievements.Achievement, error) {
	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, nil, err
	}
	snapshot := loadOut.Snapshot

	mutate(snapshot)
	snapshot.Warrior.Stats.OverallAccuracy = snapshot.OverallAccuracy()
	unlocked := achievements.Apply(snapshot)

	if _, err := o.repo.Save(ctx, gamestate.SaveInput{Snapshot: snapshot}); err != nil {
		return nil, nil, err
	}

	for _, a := range unlocked {
		slog.Info("achievement unlocked",
			"achievement_id", a.ID,
			"xp_reward", a.XPReward,
		)
	}

	return snapshot, unlocked, nil
}

func (o *orchestrator) GainXP(ctx context.Context, input *GainXPInput) (*GainXPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.GainXP(input.Amount)
	})
	if err != nil {
		return nil, err
	}

	return &GainXPOutput{Warrior: snapshot.Warrior, Unlocked: unlocked}, nil
}

func (o *orchestrator) SpendEnergy(ctx context.Context, input *SpendEnergyInput) (*SpendEnergyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, _, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.SpendEnergy(input.Amount)
	})
	if err != nil {
		return nil, err
	}

	return &SpendEnergyOutput{Warrior: snapshot.Warrior}, nil
}

func (o *orchestrator) RestoreEnergy(ctx context.Context, input *RestoreEnergyInput) (*RestoreEnergyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, _, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.RestoreEnergy(input.Amount)
	})
	if err != nil {
		return nil, err
	}

	return &RestoreEnergyOutput{Warrior: snapshot.Warrior}, nil
}

func (o *orchestrator) RecordStudyTime(ctx context.Context, input *RecordStudyTimeInput) (*RecordStudyTimeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.RecordStudyTime(input.Minutes)
	})
	if err != nil {
		return nil, err
	}

	return &RecordStudyTimeOutput{Warrior: snapshot.Warrior, Unlocked: unlocked}, nil
}

func (o *orchestrator) RecordQuestionResolved(ctx context.Context, _ *RecordQuestionResolvedInput) (*RecordQuestionResolvedOutput, error) {
	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.RecordQuestionResolved()
	})
	if err != nil {
		return nil, err
	}

	return &RecordQuestionResolvedOutput{Warrior: snapshot.Warrior, Unlocked: unlocked}, nil
}

func (o *orchestrator) RecordExamCompleted(ctx context.Context, _ *RecordExamCompletedInput) (*RecordExamCompletedOutput, error) {
	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.RecordExamCompleted()
	})
	if err != nil {
		return nil, err
	}

	return &RecordExamCompletedOutput{Warrior: snapshot.Warrior, Unlocked: unlocked}, nil
}

func (o *orchestrator) RenameWarrior(ctx context.Context, input *RenameWarriorInput) (*RenameWarriorOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	snapshot, _, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.Warrior.Name = input.Name
	})
	if err != nil {
		return nil, err
	}

	return &RenameWarriorOutput{Warrior: snapshot.Warrior}, nil
}

func (o *orchestrator) RecordLogin(ctx context.Context, _ *RecordLoginInput) (*RecordLoginOutput, error) {
	now := o.clock.Now()
	extended := false

	snapshot, unlocked, err := o.commit(ctx, func(s *entities.Snapshot) {
		last := time.Unix(s.LastLoginAt, 0)
		switch daysBetween(last, now) {
		case 0:
			// Same calendar day, streak unchanged.
		case 1:
			s.Warrior.StreakDays++
			extended = true
		default:
			s.Warrior.StreakDays = 1
		}
		s.LastLoginAt = now.Unix()
	})
	if err != nil {
		return nil, err
	}

	return &RecordLoginOutput{
		Warrior:        snapshot.Warrior,
		StreakExtended: extended,
		Unlocked:       unlocked,
	}, nil
}

func (o *orchestrator) SetExamDate(ctx context.Context, input *SetExamDateInput) (*SetExamDateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, errors.InvalidArgumentf("exam date must be YYYY-MM-DD, got %q", input.Date)
	}

	_, _, err := o.commit(ctx, func(s *entities.Snapshot) {
		s.ExamDate = input.Date
	})
	if err != nil {
		return nil, err
	}

	return &SetExamDateOutput{}, nil
}

func (o *orchestrator) GetWarrior(ctx context.Context, _ *GetWarriorInput) (*GetWarriorOutput, error) {
	loadOut, err := o.repo.Load(ctx, gamestate.LoadInput{})
	if err != nil {
		return nil, err
	}

	return &GetWarriorOutput{
		Warrior:         loadOut.Snapshot.Warrior,
		OverallAccuracy: loadOut.Snapshot.OverallAccuracy(),
	}, nil
}

// daysBetween counts whole calendar days from a to b in UTC.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
