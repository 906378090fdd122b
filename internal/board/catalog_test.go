package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogComplete(t *testing.T) {
	houses := Houses()
	require.Len(t, houses, 72)

	for i, h := range houses {
		assert.Equal(t, i+1, h.Number)
		assert.NotEmpty(t, h.Title, "house %d title", h.Number)
		assert.NotEmpty(t, h.Reflection, "house %d reflection", h.Number)
	}
}

func TestHouseByNumber(t *testing.T) {
	h, ok := HouseByNumber(1)
	require.True(t, ok)
	assert.Equal(t, 1, h.Number)

	h, ok = HouseByNumber(72)
	require.True(t, ok)
	assert.Equal(t, 72, h.Number)

	_, ok = HouseByNumber(0)
	assert.False(t, ok)
	_, ok = HouseByNumber(73)
	assert.False(t, ok)
}

func TestDefaultJumpTable(t *testing.T) {
	cfg := DefaultConfig()

	for from, to := range cfg.Jumps {
		assert.GreaterOrEqual(t, from, 1)
		assert.LessOrEqual(t, from, cfg.FinalHouse)
		assert.GreaterOrEqual(t, to, 1)
		assert.LessOrEqual(t, to, cfg.FinalHouse)
		assert.NotEqual(t, from, to)
	}

	_, hasFinalJump := cfg.Jumps[cfg.FinalHouse]
	assert.False(t, hasFinalJump, "final house must not be a jump origin")

	// A jump target that is itself a jump origin would chain; the table
	// applies once, so targets must be plain houses.
	for from, to := range cfg.Jumps {
		_, chains := cfg.Jumps[to]
		assert.False(t, chains, "jump %d -> %d lands on another jump origin", from, to)
	}
}
