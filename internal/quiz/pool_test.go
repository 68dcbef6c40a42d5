package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/packdex/internal/models"
)

func questionSet(prompts ...string) []models.Question {
	qs := make([]models.Question, len(prompts))
	for i, p := range prompts {
		qs[i] = models.Question{Prompt: p, Points: 1}
	}
	return qs
}

func TestPoolServesEveryQuestionOncePerCycle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pool := NewPool(questionSet("a", "b", "c", "d"), rng)

	require.Equal(t, 4, pool.Len())

	seen := map[string]int{}
	for i := 0; i < 4; i++ {
		q, ok := pool.Next()
		require.True(t, ok)
		seen[q.Prompt]++
	}
	for _, prompt := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, 1, seen[prompt])
	}
}

func TestPoolRefills(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pool := NewPool(questionSet("a", "b"), rng)

	for i := 0; i < 10; i++ {
		_, ok := pool.Next()
		require.True(t, ok, "pool ran dry on draw %d", i)
	}
}

func TestPoolEmpty(t *testing.T) {
	pool := NewPool(nil, rand.New(rand.NewSource(1)))

	assert.Zero(t, pool.Len())
	_, ok := pool.Next()
	assert.False(t, ok)
}

func TestShuffleOptionsPreservesSet(t *testing.T) {
	q := models.Question{Options: []string{"w", "x", "y", "z"}}
	rng := rand.New(rand.NewSource(9))

	opts := ShuffleOptions(q, rng)

	assert.ElementsMatch(t, q.Options, opts)
	assert.Equal(t, []string{"w", "x", "y", "z"}, q.Options)
}
