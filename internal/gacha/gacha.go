// Package gacha implements weighted random card draws: inverse-CDF sampling
// over a discrete distribution given by per-card drop rates.
package gacha

import (
	"errors"
	"math/rand"

	"github.com/vytor/packdex/internal/models"
)

// ErrEmptyPool is returned when no card in the input carries a positive
// drop rate, so there is nothing to draw from.
var ErrEmptyPool = errors.New("card pool has no positive drop rates")

// Pool is a draw-ready card pool: only cards with positive weight, plus the
// precomputed weight total.
type Pool struct {
	Cards []models.Card
	Total float64
}

// BuildPool filters cards to those with a positive drop rate and sums the
// weights. An empty result is an error: the caller must not charge for a
// pack it cannot draw.
func BuildPool(cards []models.Card) (*Pool, error) {
	pool := make([]models.Card, 0, len(cards))
	var total float64
	for _, c := range cards {
		if c.DropRate > 0 {
			pool = append(pool, c)
			total += c.DropRate
		}
	}
	if len(pool) == 0 || total <= 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{Cards: pool, Total: total}, nil
}

// Draw samples one card: r is drawn uniformly from [0, Total) and walked
// down the pool subtracting weights until it crosses zero. Floating-point
// drift can leave a sliver of r after the last card; the last entry absorbs
// it.
func (p *Pool) Draw(rng *rand.Rand) models.Card {
	r := rng.Float64() * p.Total
	for _, c := range p.Cards {
		r -= c.DropRate
		if r <= 0 {
			return c
		}
	}
	return p.Cards[len(p.Cards)-1]
}

// DrawMany samples n cards independently, with replacement: every draw sees
// the same distribution.
func (p *Pool) DrawMany(rng *rand.Rand, n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = p.Draw(rng)
	}
	return cards
}
