package quiz

import (
	"math/rand"

	"github.com/vytor/packdex/internal/models"
)

// Pool serves questions from a shuffled draw pool that refills itself:
// questions are popped from the end, and when the pool runs dry a freshly
// shuffled copy of the full set takes its place. A category never runs out.
type Pool struct {
	full []models.Question
	pool []models.Question
	rng  *rand.Rand
}

// NewPool builds a refillable question pool over the given questions.
func NewPool(questions []models.Question, rng *rand.Rand) *Pool {
	p := &Pool{
		full: append([]models.Question(nil), questions...),
		rng:  rng,
	}
	p.refill()
	return p
}

// Len returns the number of distinct questions in the category.
func (p *Pool) Len() int {
	return len(p.full)
}

// Next pops the next question, refilling the pool when exhausted.
// Returns false only for an empty category.
func (p *Pool) Next() (models.Question, bool) {
	if len(p.full) == 0 {
		return models.Question{}, false
	}
	if len(p.pool) == 0 {
		p.refill()
	}
	q := p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]
	return q, true
}

func (p *Pool) refill() {
	p.pool = append([]models.Question(nil), p.full...)
	p.rng.Shuffle(len(p.pool), func(i, j int) {
		p.pool[i], p.pool[j] = p.pool[j], p.pool[i]
	})
}

// ShuffleOptions returns a shuffled copy of a question's options.
func ShuffleOptions(q models.Question, rng *rand.Rand) []string {
	opts := append([]string(nil), q.Options...)
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
