package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/spancards/internal/seed"
)

func TestDefaultState_ReferentialIntegrity(t *testing.T) {
	state := seed.DefaultState()

	require.NotEmpty(t, state.Decks)
	for _, deck := range state.Decks {
		require.NotEmpty(t, deck.CardIDs)
		for _, id := range deck.CardIDs {
			card, ok := state.Cards[id]
			require.True(t, ok, "deck %s references missing card %s", deck.ID, id)
			assert.Equal(t, id, card.ID)
			assert.NotEmpty(t, card.FrontText)
			assert.NotEmpty(t, card.BackText)
		}
	}
}

func TestDefaultState_StartsUnstudied(t *testing.T) {
	state := seed.DefaultState()

	assert.Empty(t, state.Sessions)
	for _, c := range state.Cards {
		assert.Zero(t, c.Stats.Attempts())
		assert.Nil(t, c.Stats.LastStudiedAt)
	}
}

func TestDefaultState_StableIDs(t *testing.T) {
	first := seed.DefaultState()
	second := seed.DefaultState()

	require.Len(t, second.Cards, len(first.Cards))
	for id := range first.Cards {
		_, ok := second.Cards[id]
		assert.True(t, ok, "reseeding must produce the same card ids")
	}
}
