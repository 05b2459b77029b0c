package quiz_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/quiz"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func pool(pairs ...[2]string) []models.Card {
	out := make([]models.Card, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.Card{ID: p[0], FrontText: p[0], BackText: p[1]})
	}
	return out
}

func TestCheckTextAnswer(t *testing.T) {
	tests := []struct {
		name          string
		user          string
		correct       string
		caseSensitive bool
		want          bool
	}{
		{name: "exact match", user: "hola", correct: "hola", want: true},
		{name: "trims and folds case", user: "  Hola  ", correct: "hola", want: true},
		{name: "case sensitive rejects fold", user: "Hola", correct: "hola", caseSensitive: true, want: false},
		{name: "case sensitive still trims", user: " hola ", correct: "hola", caseSensitive: true, want: true},
		{name: "no partial matching", user: "hol", correct: "hola", want: false},
		{name: "empty input", user: "", correct: "hola", want: false},
		{name: "interior whitespace counts", user: "buenos  dias", correct: "buenos dias", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quiz.CheckTextAnswer(tt.user, tt.correct, tt.caseSensitive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	cards := pool([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"}, [2]string{"e", "5"})

	got := quiz.Shuffle(newRand(), cards)

	require.Len(t, got, len(cards))
	seen := map[string]int{}
	for _, c := range got {
		seen[c.ID]++
	}
	for _, c := range cards {
		assert.Equal(t, 1, seen[c.ID], "card %s should appear exactly once", c.ID)
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	cards := pool([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"})
	before := append([]models.Card(nil), cards...)

	quiz.Shuffle(newRand(), cards)

	assert.Equal(t, before, cards)
}

func TestShuffle_Deterministic(t *testing.T) {
	cards := pool([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"})

	first := quiz.Shuffle(rand.New(rand.NewSource(7)), cards)
	second := quiz.Shuffle(rand.New(rand.NewSource(7)), cards)

	assert.Equal(t, first, second)
}

func TestDistractors_ExcludesTargetAndDuplicateText(t *testing.T) {
	target := models.Card{ID: "t", FrontText: "hola", BackText: "hello"}
	candidates := []models.Card{
		target,
		{ID: "dup", FrontText: "buenas", BackText: "hello"}, // same back-text as target
		{ID: "a", BackText: "goodbye"},
		{ID: "b", BackText: "please"},
		{ID: "c", BackText: "thanks"},
	}

	got := quiz.Distractors(newRand(), target, candidates, 10)

	require.Len(t, got, 3, "only the three distinct-text candidates are eligible")
	assert.NotContains(t, got, "hello")
}

func TestDistractors_RespectsCount(t *testing.T) {
	target := models.Card{ID: "t", BackText: "hello"}
	candidates := pool([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"})

	got := quiz.Distractors(newRand(), target, candidates, 2)

	assert.Len(t, got, 2)
}

func TestDistractors_EmptyPool(t *testing.T) {
	target := models.Card{ID: "t", BackText: "hello"}

	got := quiz.Distractors(newRand(), target, nil, 3)

	assert.Empty(t, got)
}

func TestChoiceSet_ContainsCorrectAnswer(t *testing.T) {
	target := models.Card{ID: "t", BackText: "hello"}
	candidates := pool([2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"}, [2]string{"d", "4"})

	got := quiz.ChoiceSet(newRand(), target, candidates, 4)

	require.Len(t, got, 4)
	assert.Contains(t, got, "hello")
}

func TestChoiceSet_SmallPoolShortensSet(t *testing.T) {
	target := models.Card{ID: "t", BackText: "hello"}
	candidates := pool([2]string{"a", "goodbye"}, [2]string{"b", "please"})

	got := quiz.ChoiceSet(newRand(), target, candidates, 4)

	// 1 correct + 2 eligible distractors: 3 options, not an error.
	require.Len(t, got, 3)
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "goodbye")
	assert.Contains(t, got, "please")
}

func TestChoiceSet_NoDistractorsAvailable(t *testing.T) {
	target := models.Card{ID: "t", BackText: "hello"}

	got := quiz.ChoiceSet(newRand(), target, []models.Card{target}, 4)

	assert.Equal(t, []string{"hello"}, got)
}
