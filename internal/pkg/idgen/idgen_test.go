package idgen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spartan-system/spartan-api/internal/pkg/idgen"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Constitutional Law", "constitutional_law"},
		{"Direito Constitucional", "direito_constitucional"},
		{"  spaced  out  ", "spaced_out"},
		{"Already_good", "already_good"},
		{"Mixed: punctuation!", "mixed_punctuation"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, idgen.Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestEnemyID(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	id := idgen.EnemyID("Constitutional Law", "Fundamental Rights", at)
	assert.Equal(t, "constitutional_law_fundamental_rights_1710498600000", id)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("q")

	assert.Equal(t, "q_1", gen.Generate())
	assert.Equal(t, "q_2", gen.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("question")

	first := gen.Generate()
	second := gen.Generate()
	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "question_")
}
