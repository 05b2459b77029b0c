// Package store owns the application state: cards, decks, and session
// history. Every mutation builds a fresh snapshot and writes it through
// to the persistence gateway, so readers always observe a consistent
// value and the durable copy is never more than one mutation stale.
package store

import (
	"sync"
	"time"

	"github.com/lmoreno/spancards/internal/logger"
	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/seed"
	"github.com/lmoreno/spancards/internal/stats"
	"github.com/lmoreno/spancards/internal/storage"
)

type Store struct {
	mu      sync.RWMutex
	state   *models.AppState
	gateway storage.Gateway
	log     *logger.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a store from the gateway's persisted state, falling back to
// the seed decks when nothing usable is stored.
func New(gw storage.Gateway, opts ...Option) *Store {
	s := &Store{
		gateway: gw,
		log:     logger.Default().WithPrefix("store"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if state, ok := gw.Load(); ok {
		s.log.Info("restored state: cards=%d, decks=%d, sessions=%d",
			len(state.Cards), len(state.Decks), len(state.Sessions))
		s.state = state
	} else {
		s.log.Info("no usable stored state, seeding defaults")
		s.state = seed.DefaultState()
		s.persist(s.state)
	}
	return s
}

// Card looks up a card by id.
func (s *Store) Card(id string) (models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.Cards[id]
	return c, ok
}

// Deck looks up a deck by id.
func (s *Store) Deck(id string) (models.Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.Decks[id]
	return d, ok
}

// CardsByDeck maps a deck's card ids through the card collection, in deck
// order. Ids with no matching card are dropped silently; an unknown deck
// id yields an empty slice.
func (s *Store) CardsByDeck(id string) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deck, ok := s.state.Decks[id]
	if !ok {
		return nil
	}
	cards := make([]models.Card, 0, len(deck.CardIDs))
	for _, cardID := range deck.CardIDs {
		if c, ok := s.state.Cards[cardID]; ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// AllDecks returns every deck. Order is not significant.
func (s *Store) AllDecks() []models.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decks := make([]models.Deck, 0, len(s.state.Decks))
	for _, d := range s.state.Decks {
		decks = append(decks, d)
	}
	return decks
}

// AllCards returns every card. Order is not significant.
func (s *Store) AllCards() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]models.Card, 0, len(s.state.Cards))
	for _, c := range s.state.Cards {
		cards = append(cards, c)
	}
	return cards
}

// Sessions returns the recorded session history, oldest first.
func (s *Store) Sessions() []models.StudySessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StudySessionRecord(nil), s.state.Sessions...)
}

// StudySet resolves a deck selection to the cards a session runs over.
// Besides concrete deck ids it accepts the sentinels models.DeckAll
// (every card) and models.DeckDifficult (cards flagged difficult,
// worst first).
func (s *Store) StudySet(selection string) []models.Card {
	switch selection {
	case models.DeckAll:
		return s.AllCards()
	case models.DeckDifficult:
		return stats.DifficultCards(s.AllCards())
	default:
		return s.CardsByDeck(selection)
	}
}

// LastSavedAt reports when the durable snapshot was last written.
func (s *Store) LastSavedAt() (time.Time, bool) {
	return s.gateway.LastSavedAt()
}

// UpdateCardStats records one answer outcome for a card: the matching
// counter is incremented and lastStudiedAt set to now. Unknown ids are a
// no-op. The update lands in a fresh snapshot; prior snapshots are
// never touched.
func (s *Store) UpdateCardStats(cardID string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.state.Cards[cardID]
	if !ok {
		s.log.Debug("stat update for unknown card ignored: id=%s", cardID)
		return
	}

	studiedAt := s.now()
	if correct {
		card.Stats.CorrectCount++
	} else {
		card.Stats.IncorrectCount++
	}
	card.Stats.LastStudiedAt = &studiedAt

	next := s.state.Clone()
	next.Cards[cardID] = card
	s.state = next

	s.log.Debug("card stats updated: id=%s, correct=%t, attempts=%d",
		cardID, correct, card.Stats.Attempts())
	s.persist(next)
}

// AddSession appends a completed session record to the history.
func (s *Store) AddSession(rec models.StudySessionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.Sessions = append(next.Sessions, rec)
	s.state = next

	s.log.Info("session recorded: deck=%s, cards=%d, correct=%d, incorrect=%d",
		rec.DeckID, rec.TotalCards, rec.Correct, rec.Incorrect)
	s.persist(next)
}

// ResetAll discards the stored slot and replaces the state with the seed
// defaults.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gateway.Clear()
	s.state = seed.DefaultState()
	s.log.Info("state reset to seed defaults")
	s.persist(s.state)
}

// persist write-through; a failed save is logged and the in-memory state
// stands. Callers must hold the write lock or be the constructor.
func (s *Store) persist(state *models.AppState) {
	if !s.gateway.Save(state) {
		s.log.Warn("state not persisted, continuing in memory")
	}
}
