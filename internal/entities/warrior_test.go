package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spartan-system/spartan-api/internal/entities"
)

func TestNewWarrior(t *testing.T) {
	w := entities.NewWarrior()

	assert.Equal(t, entities.DefaultWarriorName, w.Name)
	assert.Equal(t, 1, w.Level)
	assert.Equal(t, 0, w.CurrentXP)
	assert.Equal(t, entities.BaseXPToNextLevel, w.XPToNextLevel)
	assert.Equal(t, entities.MaxEnergy, w.Energy)
	assert.Equal(t, 1, w.StreakDays)
}

func TestWarriorGainXP(t *testing.T) {
	tests := []struct {
		name          string
		amount        int
		wantLevel     int
		wantXP        int
		wantXPToNext  int
	}{
		{name: "no level up", amount: 500, wantLevel: 1, wantXP: 500, wantXPToNext: 1000},
		{name: "exact threshold levels up", amount: 1000, wantLevel: 2, wantXP: 1000, wantXPToNext: 2000},
		{name: "multi-level jump in one call", amount: 2500, wantLevel: 3, wantXP: 2500, wantXPToNext: 3000},
		{name: "cascade through several levels", amount: 3500, wantLevel: 4, wantXP: 3500, wantXPToNext: 4000},
		{name: "negative treated as zero", amount: -50, wantLevel: 1, wantXP: 0, wantXPToNext: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := entities.NewWarrior()
			w.GainXP(tt.amount)

			assert.Equal(t, tt.wantLevel, w.Level)
			assert.Equal(t, tt.wantXP, w.CurrentXP)
			assert.Equal(t, tt.wantXPToNext, w.XPToNextLevel)
		})
	}
}

func TestWarriorGainXPAccumulates(t *testing.T) {
	w := entities.NewWarrior()

	w.GainXP(800)
	assert.Equal(t, 1, w.Level)

	// Crossing 1000 and then 2000 in the same call
	w.GainXP(1700)
	assert.Equal(t, 3, w.Level)
	assert.Equal(t, 2500, w.CurrentXP)
	assert.Equal(t, 3000, w.XPToNextLevel)
}

func TestWarriorEnergy(t *testing.T) {
	w := entities.NewWarrior()

	w.SpendEnergy(30)
	assert.Equal(t, 70, w.Energy)

	w.SpendEnergy(500)
	assert.Equal(t, entities.MinEnergy, w.Energy, "over-spend clamps at zero")

	w.RestoreEnergy(40)
	assert.Equal(t, 40, w.Energy)

	w.RestoreEnergy(1000)
	assert.Equal(t, entities.MaxEnergy, w.Energy, "over-restore clamps at max")

	w.SpendEnergy(-10)
	assert.Equal(t, entities.MaxEnergy, w.Energy, "negative spend is a no-op")

	w.RestoreEnergy(-10)
	assert.Equal(t, entities.MaxEnergy, w.Energy, "negative restore is a no-op")
}

func TestWarriorCounters(t *testing.T) {
	w := entities.NewWarrior()

	w.RecordStudyTime(45)
	w.RecordStudyTime(-5)
	assert.Equal(t, 45, w.Stats.TotalStudyMinutes)

	w.RecordQuestionResolved()
	w.RecordQuestionResolved()
	assert.Equal(t, 2, w.Stats.QuestionsResolved)

	w.RecordExamCompleted()
	assert.Equal(t, 1, w.Stats.ExamsCompleted)
}
