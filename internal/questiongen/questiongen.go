// Package questiongen builds the transient question lists consumed by the
// battle and exam session engines. Each selected enemy contributes exactly
// two questions, one objective and one subjective. Authored questions are
// preferred; placeholders cover enemies with no authored content of the
// needed type.
package questiongen

import (
	"fmt"
	"math/rand"

	"github.com/spartan-system/spartan-api/internal/entities"
)

// SessionQuestion is a question plus a reference back to the enemy it was
// generated from, so session results can be committed per enemy.
type SessionQuestion struct {
	entities.Question

	EnemyID string
	Subject string
}

// ForEnemies generates two questions per enemy and shuffles the combined
// list with the provided source.
func ForEnemies(enemies []*entities.Enemy, r *rand.Rand) []SessionQuestion {
	questions := make([]SessionQuestion, 0, len(enemies)*2)
	for _, e := range enemies {
		questions = append(questions,
			pick(e, entities.QuestionObjective, r),
			pick(e, entities.QuestionSubjective, r),
		)
	}

	r.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions
}

// pick draws a random authored question of the wanted type, falling back to
// a placeholder when the enemy has none.
func pick(e *entities.Enemy, qt entities.QuestionType, r *rand.Rand) SessionQuestion {
	authored := e.QuestionsOfType(qt)
	if len(authored) > 0 {
		return SessionQuestion{
			Question: authored[r.Intn(len(authored))],
			EnemyID:  e.ID,
			Subject:  e.Subject,
		}
	}

	if qt == entities.QuestionObjective {
		return SessionQuestion{
			Question: entities.Question{
				ID:     fmt.Sprintf("%s_obj_1", e.ID),
				Type:   entities.QuestionObjective,
				Prompt: fmt.Sprintf("Questão objetiva de %s: %s. Qual das alternativas está correta?", e.Subject, e.Topic),
				Alternatives: []string{
					"Primeira alternativa correta",
					"Segunda alternativa incorreta",
					"Terceira alternativa incorreta",
					"Quarta alternativa incorreta",
					"Quinta alternativa incorreta",
				},
				CorrectIndex: 0,
			},
			EnemyID: e.ID,
			Subject: e.Subject,
		}
	}

	return SessionQuestion{
		Question: entities.Question{
			ID:    fmt.Sprintf("%s_subj_1", e.ID),
			Type:  entities.QuestionSubjective,
			Front: fmt.Sprintf("Explique o conceito principal de %s em %s", e.Topic, e.Subject),
			Back: fmt.Sprintf(
				"%s é um conceito fundamental em %s que se caracteriza por suas aplicações práticas e teóricas, sendo essencial para o entendimento completo da matéria.",
				e.Topic, e.Subject,
			),
		},
		EnemyID: e.ID,
		Subject: e.Subject,
	}
}
