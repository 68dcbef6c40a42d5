package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/packdex/internal/errors"
	"github.com/vytor/packdex/internal/services"
)

const testQuestions = `[
	{"question": "Capital of France?", "answer": "Paris", "points": 2},
	{"question": "Powerhouse of the cell?", "answer": ["mitochondria"], "points": 1}
]`

const testChoiceQuestions = `[
	{"question": "Pick the noble gas", "options": ["Helium", "Oxygen"], "answer": "helium", "points": 1}
]`

func newQuizService(e *env, lockout time.Duration) services.QuizService {
	return services.NewQuizService(e.profiles, e.inventory, e.catalog, e.publisher, 5, lockout, testRng())
}

func TestQuizStartServesQuestion(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", testQuestions)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 0)

	q, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	assert.Equal(t, "biology", q.Category)
	assert.NotEmpty(t, q.Prompt)
	assert.Zero(t, q.SessionScore)
}

func TestQuizStartUnknownCategory(t *testing.T) {
	e := newEnv(t, nil)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 0)

	_, err := svc.Start(context.Background(), profile.ID, "astrology")
	require.Error(t, err)
	e.source.AssertNotCalled(t, "Fetch")
}

func TestQuizCorrectAnswerAwardsCoins(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", `[{"question": "Capital of France?", "answer": "Paris", "points": 2}]`)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 100)

	_, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	result, err := svc.Answer(context.Background(), profile.ID, "paris")
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, 2, result.Points)
	assert.Equal(t, int64(10), result.CoinsAwarded)
	assert.Equal(t, 2, result.SessionScore)
	assert.Equal(t, int64(110), result.Coins)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), got.Coins)
	assert.Equal(t, 2, got.QuizScore)
}

func TestQuizLenientFreeTextMatch(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", `[{"question": "Powerhouse?", "answer": "mitochondria"}]`)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 0)

	_, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	result, err := svc.Answer(context.Background(), profile.ID, "the mitochondria")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestQuizWrongAnswerLocksOut(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", `[{"question": "Capital of France?", "answer": "Paris"}]`)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 100)

	_, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	result, err := svc.Answer(context.Background(), profile.ID, "london")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, []string{"paris"}, result.Answers, "wrong answers reveal the accepted ones")
	assert.False(t, result.LockedUntil.IsZero())

	// Answers are rejected while the lockout holds.
	_, err = svc.Answer(context.Background(), profile.ID, "paris")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)

	got, err := e.profiles.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Coins, "wrong answers cost nothing but time")
}

func TestQuizLockoutExpires(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", `[{"question": "Capital of France?", "answer": "Paris"}]`)
	svc := newQuizService(e, 10*time.Millisecond)
	profile := e.newProfile(t, 0)

	_, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), profile.ID, "london")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	result, err := svc.Answer(context.Background(), profile.ID, "paris")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestQuizMultipleChoiceIsStrict(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("chemistry", testChoiceQuestions)
	svc := newQuizService(e, 10*time.Millisecond)
	profile := e.newProfile(t, 0)

	q, err := svc.Start(context.Background(), profile.ID, "chemistry")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Helium", "Oxygen"}, q.Options)

	// Substring leniency does not apply to multiple choice.
	result, err := svc.Answer(context.Background(), profile.ID, "heli")
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestQuizStop(t *testing.T) {
	e := newEnv(t, nil)
	e.stubQuestions("biology", testQuestions)
	svc := newQuizService(e, lockoutDuration())
	profile := e.newProfile(t, 0)

	_, err := svc.Start(context.Background(), profile.ID, "biology")
	require.NoError(t, err)

	require.NoError(t, svc.Stop(context.Background(), profile.ID))

	_, err = svc.Question(context.Background(), profile.ID)
	require.Error(t, err)
	assert.Error(t, svc.Stop(context.Background(), profile.ID))
}
