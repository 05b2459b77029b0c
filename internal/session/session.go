// Package session implements the review session engine: one pass through
// a shuffled card set in one of three interaction modes, tracking tallies
// and the cards answered wrong so a follow-up pass can target just those.
package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lmoreno/spancards/internal/logger"
	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/quiz"
)

// Mode selects the per-card interaction style.
type Mode int

const (
	// ModeFlip shows the front, reveals the back on demand, and the
	// learner grades themselves.
	ModeFlip Mode = iota
	// ModeMultipleChoice offers the correct back-text among distractors.
	ModeMultipleChoice
	// ModeFill takes a typed answer checked against the back-text.
	ModeFill
)

func (m Mode) String() string {
	switch m {
	case ModeFlip:
		return "flip"
	case ModeMultipleChoice:
		return "multiple-choice"
	case ModeFill:
		return "fill-in"
	default:
		return "unknown"
	}
}

// State is the engine's coarse position in its lifecycle.
type State int

const (
	// StatePresenting means a card is in front of the learner.
	StatePresenting State = iota
	// StateCompleted means the pass is over; only restarts leave it.
	StateCompleted
)

// Recorder receives each answer outcome as it is committed. The entity
// store satisfies this.
type Recorder interface {
	UpdateCardStats(cardID string, correct bool)
}

// Engine drives one session. Operations run to completion synchronously;
// nothing here blocks or suspends.
type Engine struct {
	selection string
	mode      Mode

	source  []models.Card // full set the session was started with
	working []models.Card // current shuffled pass

	pos        int
	state      State
	revealed   bool
	feedback   bool
	lastAnswer bool

	correct   int
	incorrect int
	wrongIDs  []string

	choices []string

	startedAt time.Time

	recorder    Recorder
	onComplete  func(models.StudySessionRecord)
	rng         *rand.Rand
	now         func() time.Time
	optionCount int
	caseStrict  bool
	log         *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for shuffling and distractors.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRecorder sets the sink for per-answer stat updates.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithOnComplete sets the callback that receives the finished session
// record. It fires once per pass, when the final answer is recorded.
func WithOnComplete(fn func(models.StudySessionRecord)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// WithOptionCount sets the multiple-choice option count.
func WithOptionCount(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.optionCount = n
		}
	}
}

// WithCaseSensitive makes fill-in answers case-sensitive.
func WithCaseSensitive(strict bool) Option {
	return func(e *Engine) { e.caseStrict = strict }
}

// New starts a session over cards in the given mode. selection is the
// deck id (or sentinel) recorded on the completion record. An empty card
// set yields an engine already in StateCompleted; no record is emitted
// for it.
func New(selection string, cards []models.Card, mode Mode, opts ...Option) *Engine {
	e := &Engine{
		selection:   selection,
		mode:        mode,
		source:      append([]models.Card(nil), cards...),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		optionCount: 4,
		log:         logger.Default().WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.begin(e.source)
	return e
}

// begin starts a fresh pass over the given set.
func (e *Engine) begin(set []models.Card) {
	e.working = quiz.Shuffle(e.rng, set)
	e.pos = 0
	e.revealed = false
	e.feedback = false
	e.lastAnswer = false
	e.correct = 0
	e.incorrect = 0
	e.wrongIDs = nil
	e.choices = nil
	e.startedAt = e.now()

	if len(e.working) == 0 {
		e.log.Debug("empty card set, session completes immediately")
		e.state = StateCompleted
		return
	}
	e.state = StatePresenting
	e.log.Debug("session started: selection=%s, mode=%s, cards=%d",
		e.selection, e.mode, len(e.working))
	e.prepareCard()
}

// prepareCard computes per-card derived state for the current position.
func (e *Engine) prepareCard() {
	e.revealed = false
	e.feedback = false
	if e.mode == ModeMultipleChoice {
		e.choices = quiz.ChoiceSet(e.rng, e.working[e.pos], e.source, e.optionCount)
	}
}

// Reveal toggles the current card between front and back. Flip mode only;
// it has no effect on the tallies.
func (e *Engine) Reveal() {
	if e.state != StatePresenting || e.mode != ModeFlip {
		return
	}
	e.revealed = !e.revealed
}

// Grade records a self-assessed outcome for the current card and advances.
// This is the only way forward in flip mode.
func (e *Engine) Grade(correct bool) {
	if e.state != StatePresenting || e.mode != ModeFlip {
		return
	}
	e.record(correct)
	e.next()
}

// SelectOption records a multiple-choice answer and shows feedback.
// Answers are single-shot: further selections before Advance are ignored.
func (e *Engine) SelectOption(optionText string) {
	if e.state != StatePresenting || e.mode != ModeMultipleChoice || e.feedback {
		return
	}
	correct := optionText == e.working[e.pos].BackText
	e.record(correct)
	e.lastAnswer = correct
	e.feedback = true
}

// Submit records a typed answer and shows feedback. Blank input and
// repeat submissions while feedback is showing are ignored.
func (e *Engine) Submit(userText string) {
	if e.state != StatePresenting || e.mode != ModeFill || e.feedback {
		return
	}
	if quiz.Normalize(userText) == "" {
		return
	}
	correct := quiz.CheckTextAnswer(userText, e.working[e.pos].BackText, e.caseStrict)
	e.record(correct)
	e.lastAnswer = correct
	e.feedback = true
}

// Advance moves past the current card's feedback to the next card, or
// completes the session. Quiz modes only; flip mode advances via Grade.
func (e *Engine) Advance() {
	if e.state != StatePresenting || e.mode == ModeFlip || !e.feedback {
		return
	}
	e.next()
}

// record commits one answer outcome: running tally, wrong-list, and the
// recorder's per-card stats. Once committed it cannot be rolled back.
func (e *Engine) record(correct bool) {
	card := e.working[e.pos]
	if correct {
		e.correct++
	} else {
		e.incorrect++
		e.wrongIDs = append(e.wrongIDs, card.ID)
	}
	if e.recorder != nil {
		e.recorder.UpdateCardStats(card.ID, correct)
	}
	if e.pos == len(e.working)-1 {
		e.complete()
	}
}

// next moves to the following card, or enters StateCompleted after the
// last one.
func (e *Engine) next() {
	if e.pos == len(e.working)-1 {
		e.state = StateCompleted
		return
	}
	e.pos++
	e.prepareCard()
}

// complete builds the session record at the moment the final answer is
// recorded and hands it to the completion callback.
func (e *Engine) complete() {
	rec := models.StudySessionRecord{
		ID:         "session-" + uuid.NewString(),
		DeckID:     e.selection,
		StartedAt:  e.startedAt,
		EndedAt:    e.now(),
		TotalCards: len(e.working),
		Correct:    e.correct,
		Incorrect:  e.incorrect,
	}
	e.log.Info("session complete: selection=%s, mode=%s, correct=%d, incorrect=%d",
		e.selection, e.mode, rec.Correct, rec.Incorrect)
	if e.onComplete != nil {
		e.onComplete(rec)
	}
}

// Restart begins a new pass over the full original set, reshuffled, with
// tallies reset.
func (e *Engine) Restart() {
	e.begin(e.source)
}

// RedoWrong begins a new pass over just the cards answered wrong in the
// pass that just ended. The wrong-list is cleared for the new pass.
func (e *Engine) RedoWrong() {
	e.RestartSubset(e.wrongIDs)
}

// RestartSubset begins a new pass scoped to ids, filtering the current
// working set down to them. Card values carry over, so stats already
// accumulated stay visible.
func (e *Engine) RestartSubset(ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var subset []models.Card
	for _, c := range e.working {
		if keep[c.ID] {
			subset = append(subset, c)
		}
	}
	e.begin(subset)
}

// Current returns the card being presented. The second return is false
// once the session has completed.
func (e *Engine) Current() (models.Card, bool) {
	if e.state != StatePresenting {
		return models.Card{}, false
	}
	return e.working[e.pos], true
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State { return e.state }

// Mode returns the interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// Revealed reports whether the current card shows its back.
func (e *Engine) Revealed() bool { return e.revealed }

// Feedback reports whether feedback is showing for the current card and
// whether the last recorded answer was correct.
func (e *Engine) Feedback() (showing, lastCorrect bool) {
	return e.feedback, e.lastAnswer
}

// Choices returns the current multiple-choice option set.
func (e *Engine) Choices() []string {
	return append([]string(nil), e.choices...)
}

// Correct returns the running correct tally.
func (e *Engine) Correct() int { return e.correct }

// Incorrect returns the running incorrect tally.
func (e *Engine) Incorrect() int { return e.incorrect }

// WrongCardIDs returns the ids answered wrong this pass, in order.
func (e *Engine) WrongCardIDs() []string {
	return append([]string(nil), e.wrongIDs...)
}

// Position returns the 1-based card number and the working set size.
func (e *Engine) Position() (number, total int) {
	return e.pos + 1, len(e.working)
}

// IsLastCard reports whether the current card is the final one.
func (e *Engine) IsLastCard() bool {
	return len(e.working) > 0 && e.pos == len(e.working)-1
}
