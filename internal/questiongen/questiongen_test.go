package questiongen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/questiongen"
	"github.com/spartan-system/spartan-api/internal/testutils"
)

func TestForEnemiesGeneratesTwoPerEnemy(t *testing.T) {
	enemies := []*entities.Enemy{
		testutils.CreateTestEnemy("e1"),
		testutils.CreateTestEnemy("e2"),
	}

	questions := questiongen.ForEnemies(enemies, rand.New(rand.NewSource(1)))
	require.Len(t, questions, 4)

	perEnemy := map[string]map[entities.QuestionType]int{}
	for _, q := range questions {
		if perEnemy[q.EnemyID] == nil {
			perEnemy[q.EnemyID] = map[entities.QuestionType]int{}
		}
		perEnemy[q.EnemyID][q.Type]++
	}

	for _, id := range []string{"e1", "e2"} {
		assert.Equal(t, 1, perEnemy[id][entities.QuestionObjective], "enemy %s objective count", id)
		assert.Equal(t, 1, perEnemy[id][entities.QuestionSubjective], "enemy %s subjective count", id)
	}
}

func TestForEnemiesPrefersAuthoredQuestions(t *testing.T) {
	enemy := testutils.CreateTestEnemy("e1")
	enemy.Questions = []entities.Question{
		testutils.CreateTestObjectiveQuestion("authored_obj", 2),
		testutils.CreateTestSubjectiveQuestion("authored_subj"),
	}

	questions := questiongen.ForEnemies([]*entities.Enemy{enemy}, rand.New(rand.NewSource(1)))
	require.Len(t, questions, 2)

	ids := map[string]bool{}
	for _, q := range questions {
		ids[q.ID] = true
		assert.Equal(t, "e1", q.EnemyID)
		assert.Equal(t, enemy.Subject, q.Subject)
	}
	assert.True(t, ids["authored_obj"])
	assert.True(t, ids["authored_subj"])
}

func TestForEnemiesPlaceholderFallback(t *testing.T) {
	// Authored objective only: the subjective slot falls back to a placeholder.
	enemy := testutils.CreateTestEnemy("e1")
	enemy.Questions = []entities.Question{
		testutils.CreateTestObjectiveQuestion("authored_obj", 0),
	}

	questions := questiongen.ForEnemies([]*entities.Enemy{enemy}, rand.New(rand.NewSource(1)))
	require.Len(t, questions, 2)

	for _, q := range questions {
		switch q.Type {
		case entities.QuestionObjective:
			assert.Equal(t, "authored_obj", q.ID)
		case entities.QuestionSubjective:
			assert.Equal(t, "e1_subj_1", q.ID)
			assert.NotEmpty(t, q.Front)
			assert.NotEmpty(t, q.Back)
		}
	}
}

func TestForEnemiesPlaceholderShape(t *testing.T) {
	enemy := testutils.CreateTestEnemy("e1")

	questions := questiongen.ForEnemies([]*entities.Enemy{enemy}, rand.New(rand.NewSource(1)))

	for _, q := range questions {
		if q.Type != entities.QuestionObjective {
			continue
		}
		assert.Len(t, q.Alternatives, 5)
		assert.Equal(t, 0, q.CorrectIndex)
		assert.Contains(t, q.Prompt, enemy.Subject)
		assert.Contains(t, q.Prompt, enemy.Topic)
	}
}

func TestForEnemiesEmptyPool(t *testing.T) {
	questions := questiongen.ForEnemies(nil, rand.New(rand.NewSource(1)))
	assert.Empty(t, questions)
}
