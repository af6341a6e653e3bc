package achievements_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan-system/spartan-api/internal/achievements"
	"github.com/spartan-system/spartan-api/internal/entities"
)

func newSnapshot() *entities.Snapshot {
	return entities.NewSnapshot(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestEvaluateDoesNotMutate(t *testing.T) {
	s := newSnapshot()
	s.Warrior.Stats.QuestionsResolved = 1

	newly := achievements.Evaluate(s)
	require.Len(t, newly, 1)
	assert.Equal(t, "first_battle", newly[0].ID)

	assert.Empty(t, s.Achievements, "Evaluate must not unlock")
	assert.Equal(t, 0, s.Warrior.CurrentXP)
}

func TestApplyUnlocksAndRewards(t *testing.T) {
	s := newSnapshot()
	s.Warrior.Stats.QuestionsResolved = 1

	unlocked := achievements.Apply(s)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "first_battle", unlocked[0].ID)
	assert.Equal(t, 25, s.Warrior.CurrentXP)
	assert.True(t, s.HasUnlocked("first_battle"))

	// Idempotent: a second pass unlocks nothing and grants nothing
	again := achievements.Apply(s)
	assert.Empty(t, again)
	assert.Equal(t, 25, s.Warrior.CurrentXP)
}

func TestApplyCascadesRewardXP(t *testing.T) {
	s := newSnapshot()
	// Level 9 and just under the level-10 threshold, plus a pending veteran
	// unlock whose 300 XP reward pushes the warrior to level 10, which in
	// turn satisfies spartan_legend in the same Apply call.
	s.Warrior.Level = 9
	s.Warrior.CurrentXP = 8900
	s.Warrior.XPToNextLevel = 9000
	s.Warrior.Stats.QuestionsResolved = 100

	unlocked := achievements.Apply(s)

	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "veteran")
	assert.Contains(t, ids, "spartan_legend")
	assert.GreaterOrEqual(t, s.Warrior.Level, 10)
}

func TestStrategistCountsGreenRoom(t *testing.T) {
	s := newSnapshot()
	for i := 0; i < 5; i++ {
		s.Enemies = append(s.Enemies, &entities.Enemy{
			ID:   string(rune('a' + i)),
			Room: entities.RoomGreen,
		})
	}

	unlocked := achievements.Apply(s)

	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "strategist")
}

func TestNextPendingAndProgress(t *testing.T) {
	s := newSnapshot()

	next, ok := achievements.NextPending(s)
	require.True(t, ok)
	assert.Equal(t, "first_battle", next.ID)

	assert.Zero(t, achievements.ProgressOf(s, "first_battle"))

	s.Warrior.Stats.QuestionsResolved = 1
	assert.Equal(t, 100.0, achievements.ProgressOf(s, "first_battle"), "satisfied counts as full progress")

	achievements.Apply(s)
	assert.Equal(t, 100.0, achievements.ProgressOf(s, "first_battle"))

	next, ok = achievements.NextPending(s)
	require.True(t, ok)
	assert.Equal(t, "persistent", next.ID)

	assert.Zero(t, achievements.ProgressOf(s, "unknown_id"))
}

func TestUnlockedList(t *testing.T) {
	s := newSnapshot()
	assert.Empty(t, achievements.UnlockedList(s))

	s.Warrior.StreakDays = 7
	achievements.Apply(s)

	unlocked := achievements.UnlockedList(s)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "persistent", unlocked[0].ID)
}
