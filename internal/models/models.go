package models

import "time"

// Sentinel deck ids accepted wherever a deck selection is expected.
const (
	DeckAll       = "all"
	DeckDifficult = "difficult"
)

// CardStats holds the cumulative answer history for a single card.
// Counts only ever grow; a full-state reset is the only way back to zero.
type CardStats struct {
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
	LastStudiedAt  *time.Time `json:"lastStudiedAt"`
}

// Attempts returns the total number of recorded answers.
func (s CardStats) Attempts() int {
	return s.CorrectCount + s.IncorrectCount
}

// Card is a front/back vocabulary pair. Identity fields are immutable;
// Stats is updated only through the store.
type Card struct {
	ID           string    `json:"id"`
	FrontText    string    `json:"frontText"`
	BackText     string    `json:"backText"`
	ExampleFront string    `json:"exampleFront,omitempty"`
	ExampleBack  string    `json:"exampleBack,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Stats        CardStats `json:"stats"`
}

// Deck is a named, ordered collection of card references. CardIDs may
// reference cards that no longer exist; readers filter those out.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardIDs     []string  `json:"cardIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StudySessionRecord summarizes one completed pass through a card set.
// Records are append-only and never mutated after creation.
type StudySessionRecord struct {
	ID         string    `json:"id"`
	DeckID     string    `json:"deckId"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	TotalCards int       `json:"totalCards"`
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
}

// AppState is the aggregate the store owns and the gateway persists.
type AppState struct {
	Cards    map[string]Card      `json:"cards" validate:"required"`
	Decks    map[string]Deck      `json:"decks" validate:"required"`
	Sessions []StudySessionRecord `json:"sessions"`
}

// Clone returns a deep copy of the state. Maps and slices are reallocated
// so the copy shares no mutable structure with the receiver.
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Cards:    make(map[string]Card, len(s.Cards)),
		Decks:    make(map[string]Deck, len(s.Decks)),
		Sessions: make([]StudySessionRecord, len(s.Sessions)),
	}
	for id, c := range s.Cards {
		if c.Tags != nil {
			c.Tags = append([]string(nil), c.Tags...)
		}
		if c.Stats.LastStudiedAt != nil {
			t := *c.Stats.LastStudiedAt
			c.Stats.LastStudiedAt = &t
		}
		out.Cards[id] = c
	}
	for id, d := range s.Decks {
		d.CardIDs = append([]string(nil), d.CardIDs...)
		out.Decks[id] = d
	}
	copy(out.Sessions, s.Sessions)
	return out
}
