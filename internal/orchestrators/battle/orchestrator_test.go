package battle_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/spartan-system/spartan-api/internal/entities"
	"github.com/spartan-system/spartan-api/internal/errors"
	"github.com/spartan-system/spartan-api/internal/orchestrators/battle"
	mockclock "github.com/spartan-system/spartan-api/internal/pkg/clock/mock"
	"github.com/spartan-system/spartan-api/internal/repositories/gamestate"
	"github.com/spartan-system/spartan-api/internal/testutils"
)

type BattleOrchestratorTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	cleanup func()
	service battle.Service
	ctx     context.Context
}

func (s *BattleOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	mockClock := mockclock.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().Return(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)).AnyTimes()

	repo, err := gamestate.NewRedis(&gamestate.RedisConfig{
		Client: client,
		Clock:  mockClock,
	})
	s.Require().NoError(err)

	service, err := battle.NewOrchestrator(&battle.Config{
		GameStateRepo: repo,
		Rand:          rand.New(rand.NewSource(42)),
	})
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func (s *BattleOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

// answerCurrent submits a stereotyped answer for the question under the
// cursor: correct with full confidence for objective questions, easy
// self-assessment for subjective ones.
func (s *BattleOrchestratorTestSuite) answerCurrent(state *battle.State) battle.Answer {
	question, ok := state.CurrentQuestion()
	s.Require().True(ok)

	input := &battle.SubmitAnswerInput{}
	if question.Type == entities.QuestionObjective {
		answer := question.CorrectIndex
		input.UserAnswer = &answer
		input.Confidence = battle.ConfidenceCertain
	} else {
		input.SelfAssessment = battle.SelfAssessmentEasy
	}

	out, err := s.service.SubmitAnswer(s.ctx, input)
	s.Require().NoError(err)
	return out.Answer
}

func (s *BattleOrchestratorTestSuite) TestStartGeneratesTwoQuestionsPerEnemy() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights", "portuguese_reading_comprehension"},
	})
	s.Require().NoError(err)

	s.True(out.State.IsActive)
	s.False(out.State.IsComplete)
	s.Len(out.State.Questions, 4)
	s.Len(out.State.SelectedEnemies, 2)
	s.Zero(out.State.CurrentIndex)
}

func (s *BattleOrchestratorTestSuite) TestStartGuards() {
	_, err := s.service.Start(s.ctx, &battle.StartInput{})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err), "empty selection blocks start")

	_, err = s.service.Start(s.ctx, &battle.StartInput{EnemyIDs: []string{"missing"}})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *BattleOrchestratorTestSuite) TestObjectiveXPFormula() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	state := out.State
	for i := 0; i < len(state.Questions); i++ {
		question, ok := state.CurrentQuestion()
		s.Require().True(ok)

		if question.Type == entities.QuestionObjective {
			s.Run("correct and certain pays 50", func() {
				answer := question.CorrectIndex
				submitOut, err := s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
					UserAnswer: &answer,
					Confidence: battle.ConfidenceCertain,
				})
				s.Require().NoError(err)
				s.True(submitOut.Answer.IsCorrect)
				s.Equal(50, submitOut.Answer.XPGained, "10 base + 25 correct + 15 certain")
				s.True(submitOut.State.ShowResult)
			})
		} else {
			s.answerCurrent(state)
		}

		next, err := s.service.NextQuestion(s.ctx, &battle.NextQuestionInput{})
		s.Require().NoError(err)
		state = next.State
	}
}

func (s *BattleOrchestratorTestSuite) TestIncorrectGuessPaysBaseOnly() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	state := out.State
	for i := 0; i < len(state.Questions); i++ {
		question, ok := state.CurrentQuestion()
		s.Require().True(ok)

		if question.Type == entities.QuestionObjective {
			wrong := question.CorrectIndex + 1
			submitOut, err := s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
				UserAnswer:  &wrong,
				Confidence:  battle.ConfidenceGuess,
				ErrorReason: battle.ErrorReasonContent,
			})
			s.Require().NoError(err)
			s.False(submitOut.Answer.IsCorrect)
			s.Equal(10, submitOut.Answer.XPGained, "base only")
		} else {
			submitOut, err := s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
				SelfAssessment: battle.SelfAssessmentError,
			})
			s.Require().NoError(err)
			s.False(submitOut.Answer.IsCorrect, "error grade scores below the threshold")
			s.Equal(10, submitOut.Answer.XPGained)
		}

		next, err := s.service.NextQuestion(s.ctx, &battle.NextQuestionInput{})
		s.Require().NoError(err)
		state = next.State
	}
}

func (s *BattleOrchestratorTestSuite) TestSubjectiveHardGrade() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	state := out.State
	for i := 0; i < len(state.Questions); i++ {
		question, ok := state.CurrentQuestion()
		s.Require().True(ok)

		if question.Type == entities.QuestionSubjective {
			submitOut, err := s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
				SelfAssessment: battle.SelfAssessmentHard,
			})
			s.Require().NoError(err)
			s.True(submitOut.Answer.IsCorrect, "hard sits exactly on the threshold")
			s.Equal(40, submitOut.Answer.XPGained, "10 base + 25 correct + 5 hard")
		} else {
			s.answerCurrent(state)
		}

		next, err := s.service.NextQuestion(s.ctx, &battle.NextQuestionInput{})
		s.Require().NoError(err)
		state = next.State
	}
}

func (s *BattleOrchestratorTestSuite) TestFullSessionCompletes() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights", "portuguese_reading_comprehension"},
	})
	s.Require().NoError(err)

	state := out.State
	s.Require().Len(state.Questions, 4)

	for i := 0; i < 4; i++ {
		s.answerCurrent(state)

		next, err := s.service.NextQuestion(s.ctx, &battle.NextQuestionInput{})
		s.Require().NoError(err)
		state = next.State
	}

	s.True(state.IsComplete)
	s.False(state.IsActive)
	s.True(state.ShowReport)

	results, err := s.service.CalculateResults(s.ctx, &battle.CalculateResultsInput{})
	s.Require().NoError(err)
	s.Equal(4, results.Results.TotalQuestions)
	s.Equal(4, results.Results.CorrectAnswers)
	s.InDelta(100.0, results.Results.Accuracy, 0.001)
	s.Equal(200, results.Results.TotalXP, "four fully confident correct answers at 50 each")
}

func (s *BattleOrchestratorTestSuite) TestSubmitGuards() {
	_, err := s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err), "no active session")

	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	s.answerCurrent(out.State)

	// A second submit for the same question is rejected until NextQuestion
	_, err = s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
		SelfAssessment: battle.SelfAssessmentEasy,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *BattleOrchestratorTestSuite) TestSubmitValidatesShape() {
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	question, ok := out.State.CurrentQuestion()
	s.Require().True(ok)

	if question.Type == entities.QuestionObjective {
		// Missing answer index
		_, err = s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
			Confidence: battle.ConfidenceCertain,
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))

		// Self-assessment on an objective question
		answer := 0
		_, err = s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
			UserAnswer:     &answer,
			Confidence:     battle.ConfidenceCertain,
			SelfAssessment: battle.SelfAssessmentEasy,
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	} else {
		// Objective fields on a subjective question
		answer := 0
		_, err = s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
			UserAnswer:     &answer,
			SelfAssessment: battle.SelfAssessmentEasy,
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))

		// Invalid self-assessment value
		_, err = s.service.SubmitAnswer(s.ctx, &battle.SubmitAnswerInput{
			SelfAssessment: "impossible",
		})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	}
}

func (s *BattleOrchestratorTestSuite) TestResetReturnsToIdle() {
	_, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)

	_, err = s.service.Reset(s.ctx, &battle.ResetInput{})
	s.Require().NoError(err)

	state, err := s.service.GetState(s.ctx, &battle.GetStateInput{})
	s.Require().NoError(err)
	s.False(state.State.IsActive)
	s.Empty(state.State.Questions)

	// Starting again after reset works and discards nothing persistent
	out, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)
	s.Len(out.State.Questions, 2)
}

func (s *BattleOrchestratorTestSuite) TestStartDiscardsPreviousSession() {
	first, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"constitutional_law_fundamental_rights"},
	})
	s.Require().NoError(err)
	s.answerCurrent(first.State)

	second, err := s.service.Start(s.ctx, &battle.StartInput{
		EnemyIDs: []string{"portuguese_reading_comprehension"},
	})
	s.Require().NoError(err)
	s.Empty(second.State.Answers, "new session starts clean")
	s.Len(second.State.Questions, 2)
}

func TestBattleOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(BattleOrchestratorTestSuite))
}
