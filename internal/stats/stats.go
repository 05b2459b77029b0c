package stats

import (
	"math"
	"sort"

	"github.com/lmoreno/spancards/internal/models"
)

// Tier is the coarse difficulty classification of a card.
type Tier string

const (
	TierUnstudied Tier = "unstudied"
	TierEasy      Tier = "easy"
	TierMedium    Tier = "medium"
	TierHard      Tier = "hard"
)

// Summary aggregates answer counts across a card collection.
type Summary struct {
	Correct   int
	Incorrect int
	Attempts  int
	Accuracy  int
}

// Accuracy returns the rounded percentage of correct answers, 0..100.
// Zero attempts yield 0 rather than a division by zero.
func Accuracy(correct, incorrect int) int {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Aggregate sums the per-card counters across cards.
func Aggregate(cards []models.Card) Summary {
	var s Summary
	for _, c := range cards {
		s.Correct += c.Stats.CorrectCount
		s.Incorrect += c.Stats.IncorrectCount
	}
	s.Attempts = s.Correct + s.Incorrect
	s.Accuracy = Accuracy(s.Correct, s.Incorrect)
	return s
}

// StudiedCards returns the cards that have been attempted at least once.
func StudiedCards(cards []models.Card) []models.Card {
	var out []models.Card
	for _, c := range cards {
		if c.Stats.Attempts() > 0 {
			out = append(out, c)
		}
	}
	return out
}

// IsDifficult reports whether a card needs another pass: attempted at least
// once, missed at least once, and below 60% accuracy. A never-missed card is
// never difficult, no matter how often it was attempted.
func IsDifficult(card models.Card) bool {
	if card.Stats.Attempts() == 0 {
		return false
	}
	if card.Stats.IncorrectCount == 0 {
		return false
	}
	return Accuracy(card.Stats.CorrectCount, card.Stats.IncorrectCount) < 60
}

// CardTier classifies a card by its historical accuracy. Unlike IsDifficult
// it has no missed-at-least-once requirement, so an attempted card with a
// perfect record is always TierEasy.
func CardTier(card models.Card) Tier {
	if card.Stats.Attempts() == 0 {
		return TierUnstudied
	}
	acc := Accuracy(card.Stats.CorrectCount, card.Stats.IncorrectCount)
	switch {
	case acc >= 80:
		return TierEasy
	case acc >= 60:
		return TierMedium
	default:
		return TierHard
	}
}

// DifficultCards filters cards by IsDifficult, worst accuracy first.
func DifficultCards(cards []models.Card) []models.Card {
	var out []models.Card
	for _, c := range cards {
		if IsDifficult(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Accuracy(out[i].Stats.CorrectCount, out[i].Stats.IncorrectCount) <
			Accuracy(out[j].Stats.CorrectCount, out[j].Stats.IncorrectCount)
	})
	return out
}
