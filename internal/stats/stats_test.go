package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/stats"
)

func card(correct, incorrect int) models.Card {
	return models.Card{
		ID: "c",
		Stats: models.CardStats{
			CorrectCount:   correct,
			IncorrectCount: incorrect,
		},
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		incorrect int
		want      int
	}{
		{name: "no attempts", correct: 0, incorrect: 0, want: 0},
		{name: "all correct", correct: 5, incorrect: 0, want: 100},
		{name: "all incorrect", correct: 0, incorrect: 5, want: 0},
		{name: "three of four", correct: 3, incorrect: 1, want: 75},
		{name: "rounds up", correct: 2, incorrect: 1, want: 67},
		{name: "rounds half up", correct: 1, incorrect: 7, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.Accuracy(tt.correct, tt.incorrect)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestAggregate(t *testing.T) {
	cards := []models.Card{card(3, 1), card(0, 0), card(2, 2)}

	got := stats.Aggregate(cards)

	assert.Equal(t, 5, got.Correct)
	assert.Equal(t, 3, got.Incorrect)
	assert.Equal(t, 8, got.Attempts)
	assert.Equal(t, 63, got.Accuracy)
}

func TestAggregate_Empty(t *testing.T) {
	got := stats.Aggregate(nil)

	assert.Zero(t, got.Attempts)
	assert.Zero(t, got.Accuracy)
}

func TestStudiedCards(t *testing.T) {
	cards := []models.Card{card(1, 0), card(0, 0), card(0, 2)}

	got := stats.StudiedCards(cards)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Stats.CorrectCount)
	assert.Equal(t, 2, got[1].Stats.IncorrectCount)
}

func TestIsDifficult(t *testing.T) {
	tests := []struct {
		name string
		card models.Card
		want bool
	}{
		{name: "never attempted", card: card(0, 0), want: false},
		{name: "never missed despite many attempts", card: card(50, 0), want: false},
		{name: "single miss only attempt", card: card(0, 1), want: true},
		{name: "below threshold", card: card(1, 1), want: true},
		{name: "at threshold", card: card(3, 2), want: false},
		{name: "well above threshold", card: card(9, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.IsDifficult(tt.card))
		})
	}
}

func TestCardTier(t *testing.T) {
	tests := []struct {
		name string
		card models.Card
		want stats.Tier
	}{
		{name: "unstudied", card: card(0, 0), want: stats.TierUnstudied},
		{name: "easy at 80", card: card(4, 1), want: stats.TierEasy},
		{name: "perfect record", card: card(10, 0), want: stats.TierEasy},
		{name: "medium at 60", card: card(3, 2), want: stats.TierMedium},
		{name: "medium below 80", card: card(7, 3), want: stats.TierMedium},
		{name: "hard", card: card(1, 2), want: stats.TierHard},
		{name: "all wrong", card: card(0, 4), want: stats.TierHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.CardTier(tt.card))
		})
	}
}

// A heavily attempted, never-missed card stays easy and is never flagged
// difficult. The two classifiers deliberately disagree on eligibility.
func TestClassifierAsymmetry(t *testing.T) {
	c := card(100, 0)

	assert.Equal(t, stats.TierEasy, stats.CardTier(c))
	assert.False(t, stats.IsDifficult(c))
}

func TestDifficultCards_SortedWorstFirst(t *testing.T) {
	a := card(1, 1) // 50%
	a.ID = "a"
	b := card(0, 3) // 0%
	b.ID = "b"
	c := card(1, 2) // 33%
	c.ID = "c"
	clean := card(6, 0)
	clean.ID = "clean"

	got := stats.DifficultCards([]models.Card{a, b, c, clean})

	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}
