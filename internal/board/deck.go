package board

import (
	"errors"
	"math/rand"
	"sync"
)

const (
	MinDrawCount = 1
	MaxDrawCount = 3
)

var ErrInvalidDrawCount = errors.New("draw count must be between 1 and 3")

// Deck draws distinct houses at random for the reflection mechanic. Draws
// are independent of board positions.
type Deck struct {
	houseCount int
	mu         sync.Mutex
	rng        *rand.Rand
}

func NewDeck(houseCount int) *Deck {
	return NewDeckWithRand(houseCount, rand.New(rand.NewSource(cryptoSeed())))
}

func NewDeckWithRand(houseCount int, rng *rand.Rand) *Deck {
	return &Deck{houseCount: houseCount, rng: rng}
}

// Draw returns count distinct house numbers in [1, houseCount].
func (d *Deck) Draw(count int) ([]int, error) {
	if count < MinDrawCount || count > MaxDrawCount {
		return nil, ErrInvalidDrawCount
	}

	d.mu.Lock()
	perm := d.rng.Perm(d.houseCount)
	d.mu.Unlock()

	houses := make([]int, count)
	for i := 0; i < count; i++ {
		houses[i] = perm[i] + 1
	}
	return houses, nil
}
