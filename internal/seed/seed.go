// Package seed provides the built-in starter decks the app falls back to
// when no persisted state exists. Ids are stable slugs so reseeding after
// a reset always produces the same state.
package seed

import (
	"time"

	"github.com/lmoreno/spancards/internal/models"
)

type seedCard struct {
	id      string
	front   string
	back    string
	exFront string
	exBack  string
	tags    []string
}

var basicsCards = []seedCard{
	{id: "card-hola", front: "hola", back: "hello", exFront: "¡Hola! ¿Cómo estás?", exBack: "Hello! How are you?", tags: []string{"greetings"}},
	{id: "card-adios", front: "adiós", back: "goodbye", exFront: "Adiós, hasta mañana.", exBack: "Goodbye, see you tomorrow.", tags: []string{"greetings"}},
	{id: "card-gracias", front: "gracias", back: "thank you", exFront: "Muchas gracias por tu ayuda.", exBack: "Thank you very much for your help.", tags: []string{"politeness"}},
	{id: "card-por-favor", front: "por favor", back: "please", exFront: "Un café, por favor.", exBack: "A coffee, please.", tags: []string{"politeness"}},
	{id: "card-si", front: "sí", back: "yes"},
	{id: "card-no", front: "no", back: "no"},
	{id: "card-agua", front: "agua", back: "water", exFront: "Quiero un vaso de agua.", exBack: "I want a glass of water.", tags: []string{"food"}},
	{id: "card-pan", front: "pan", back: "bread", tags: []string{"food"}},
	{id: "card-casa", front: "casa", back: "house", exFront: "Mi casa es pequeña.", exBack: "My house is small."},
	{id: "card-libro", front: "libro", back: "book", exFront: "Estoy leyendo un libro.", exBack: "I am reading a book."},
}

var travelCards = []seedCard{
	{id: "card-donde", front: "¿dónde está...?", back: "where is...?", exFront: "¿Dónde está la estación?", exBack: "Where is the station?", tags: []string{"questions"}},
	{id: "card-cuanto", front: "¿cuánto cuesta?", back: "how much does it cost?", tags: []string{"questions", "shopping"}},
	{id: "card-tren", front: "tren", back: "train", exFront: "El tren sale a las ocho.", exBack: "The train leaves at eight.", tags: []string{"transport"}},
	{id: "card-aeropuerto", front: "aeropuerto", back: "airport", tags: []string{"transport"}},
	{id: "card-playa", front: "playa", back: "beach", exFront: "Vamos a la playa.", exBack: "Let's go to the beach."},
	{id: "card-ayuda", front: "ayuda", back: "help", exFront: "¡Necesito ayuda!", exBack: "I need help!"},
}

// DefaultState builds the seed aggregate with zeroed stats.
func DefaultState() *models.AppState {
	now := time.Now().UTC()

	state := &models.AppState{
		Cards:    make(map[string]models.Card, len(basicsCards)+len(travelCards)),
		Decks:    make(map[string]models.Deck, 2),
		Sessions: []models.StudySessionRecord{},
	}

	addDeck := func(id, name, description string, cards []seedCard) {
		ids := make([]string, 0, len(cards))
		for _, sc := range cards {
			state.Cards[sc.id] = models.Card{
				ID:           sc.id,
				FrontText:    sc.front,
				BackText:     sc.back,
				ExampleFront: sc.exFront,
				ExampleBack:  sc.exBack,
				Tags:         sc.tags,
				CreatedAt:    now,
			}
			ids = append(ids, sc.id)
		}
		state.Decks[id] = models.Deck{
			ID:          id,
			Name:        name,
			Description: description,
			CardIDs:     ids,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	addDeck("deck-basics", "Basics", "Everyday words and phrases to start with", basicsCards)
	addDeck("deck-travel", "Travel", "Getting around and asking for things", travelCards)

	return state
}
