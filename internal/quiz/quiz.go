// Package quiz holds the pure answer-evaluation helpers: input
// normalization, distractor selection, and choice-set generation.
// All randomness comes from a caller-supplied source so tests can
// pin exact outcomes.
package quiz

import (
	"math/rand"
	"strings"

	"github.com/lmoreno/spancards/internal/models"
)

// Shuffle returns a uniformly random permutation of cards. The input
// slice is left untouched.
func Shuffle(rng *rand.Rand, cards []models.Card) []models.Card {
	out := append([]models.Card(nil), cards...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Normalize prepares user input for case-insensitive comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckTextAnswer reports whether user matches correct. Both sides are
// trimmed; unless caseSensitive is set they are also folded to lower case.
// Equality only, no fuzzy matching.
func CheckTextAnswer(user, correct string, caseSensitive bool) bool {
	if caseSensitive {
		return strings.TrimSpace(user) == strings.TrimSpace(correct)
	}
	return Normalize(user) == Normalize(correct)
}

// Distractors picks up to count back-texts from pool to stand next to
// target's correct answer. The target itself and any card whose back-text
// reads identically are excluded, so no option can ever grade ambiguously.
// Fewer than count eligible candidates yield a shorter result, not an error.
func Distractors(rng *rand.Rand, target models.Card, pool []models.Card, count int) []string {
	var eligible []models.Card
	for _, c := range pool {
		if c.ID == target.ID || c.BackText == target.BackText {
			continue
		}
		eligible = append(eligible, c)
	}

	shuffled := Shuffle(rng, eligible)
	if count > len(shuffled) {
		count = len(shuffled)
	}
	if count < 0 {
		count = 0
	}

	out := make([]string, 0, count)
	for _, c := range shuffled[:count] {
		out = append(out, c.BackText)
	}
	return out
}

// ChoiceSet builds the shuffled option list for a multiple-choice question:
// the target's back-text plus up to optionCount-1 distractors, in random
// order so the correct answer's position is not predictable.
func ChoiceSet(rng *rand.Rand, target models.Card, pool []models.Card, optionCount int) []string {
	options := append([]string{target.BackText}, Distractors(rng, target, pool, optionCount-1)...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
