package board

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDrawDistinct(t *testing.T) {
	d := NewDeckWithRand(72, rand.New(rand.NewSource(7)))

	for i := 0; i < 100; i++ {
		houses, err := d.Draw(3)
		require.NoError(t, err)
		require.Len(t, houses, 3)

		seen := make(map[int]bool)
		for _, h := range houses {
			assert.GreaterOrEqual(t, h, 1)
			assert.LessOrEqual(t, h, 72)
			assert.False(t, seen[h], "duplicate house %d in draw", h)
			seen[h] = true
		}
	}
}

func TestDeckDrawCountBounds(t *testing.T) {
	d := NewDeckWithRand(72, rand.New(rand.NewSource(7)))

	for _, count := range []int{0, -1, 4, 100} {
		_, err := d.Draw(count)
		assert.ErrorIs(t, err, ErrInvalidDrawCount, "count %d", count)
	}
	for count := MinDrawCount; count <= MaxDrawCount; count++ {
		houses, err := d.Draw(count)
		require.NoError(t, err)
		assert.Len(t, houses, count)
	}
}
