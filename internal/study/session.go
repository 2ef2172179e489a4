// Package study turns a snapshot of the card collection into a
// randomized, progress-tracked quiz run.
//
// A session's deck is a frozen copy of the cards available when the
// session started: collection edits made mid-session never alter the
// deck or the position. Pass/fail outcomes are relayed to the engine as
// counter increments; the controller itself performs no I/O and cannot
// fail.
package study

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/engine"
)

// Phase is the session state machine position.
type Phase string

// Session phases.
const (
	// PhaseEmpty means no cards are available to study.
	PhaseEmpty Phase = "empty"

	// PhaseActive means a session is running: a current card is
	// showing and the deck has not been exhausted.
	PhaseActive Phase = "active"

	// PhaseFinished means the last card has been answered; terminal
	// until Restart.
	PhaseFinished Phase = "finished"
)

// Controller errors.
var (
	// ErrNoActiveSession is returned when Reveal or Advance is called
	// without an active session.
	ErrNoActiveSession = errors.New("no active study session")

	// ErrAnswerHidden is returned when Advance is called before the
	// answer has been revealed.
	ErrAnswerHidden = errors.New("answer has not been revealed")
)

// Controller owns one study session at a time over the engine's card
// collection. It subscribes to engine changes so an empty session picks
// up cards the moment the collection becomes non-empty; an active
// session's deck stays frozen.
type Controller struct {
	engine *engine.Engine

	mu       sync.Mutex
	rng      *rand.Rand
	deck     []domain.Card
	position int
	revealed bool
	finished bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used for shuffling. Used by tests for
// deterministic permutations.
func WithRand(src rand.Source) Option {
	return func(c *Controller) {
		c.rng = rand.New(src)
	}
}

// NewController creates a Controller, deals the initial deck from the
// engine's current cards, and subscribes to collection changes.
func NewController(e *engine.Engine, opts ...Option) *Controller {
	c := &Controller{
		engine: e,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Restart()
	e.Subscribe(c.onCollectionChanged)

	return c
}

// Restart abandons any current session and draws a fresh shuffle of the
// live collection, returning to position 0 (or the empty phase if the
// collection has no cards). Used for both the initial start and an
// explicit restart after finishing.
func (c *Controller) Restart() {
	state := c.engine.State()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.deal(state.Cards)
}

// Phase returns the current session phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseLocked()
}

// Current returns the card being studied. The second return is false
// unless the session is active.
func (c *Controller) Current() (domain.Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phaseLocked() != PhaseActive {
		return domain.Card{}, false
	}
	return c.deck[c.position].Clone(), true
}

// Reveal flips the current card to show its answer. Idempotent; the
// position never changes. Returns ErrNoActiveSession outside an active
// session.
func (c *Controller) Reveal() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phaseLocked() != PhaseActive {
		return ErrNoActiveSession
	}
	c.revealed = true
	return nil
}

// Advance records the outcome for the current card and moves to the
// next one, finishing the session after the last card. Only valid once
// the answer is revealed. The counter increment is relayed to the
// engine; everything else stays inside the frozen session.
func (c *Controller) Advance(knewIt bool) error {
	c.mu.Lock()

	if c.phaseLocked() != PhaseActive {
		c.mu.Unlock()
		return ErrNoActiveSession
	}
	if !c.revealed {
		c.mu.Unlock()
		return ErrAnswerHidden
	}

	cardID := c.deck[c.position].ID
	if c.position < len(c.deck)-1 {
		c.position++
	} else {
		c.finished = true
	}
	c.revealed = false
	c.mu.Unlock()

	// Dispatch outside the lock: the engine notifies listeners
	// (including this controller) synchronously.
	if knewIt {
		c.engine.Dispatch(engine.IncrementCorrect{ID: cardID})
	} else {
		c.engine.Dispatch(engine.IncrementWrong{ID: cardID})
	}

	return nil
}

// Progress reports the completed fraction of the deck:
// (position + 1 if finished) / len(deck). Zero for an empty session.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.deck) == 0 {
		return 0
	}

	done := c.position
	if c.finished {
		done++
	}
	return float64(done) / float64(len(c.deck))
}

// View is a read-only snapshot of the session for display.
type View struct {
	Phase    Phase
	Card     *domain.Card // nil unless active
	Revealed bool
	Position int
	DeckSize int
	Progress float64
}

// View returns a consistent snapshot of the whole session.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:    c.phaseLocked(),
		Revealed: c.revealed,
		Position: c.position,
		DeckSize: len(c.deck),
	}

	if v.Phase == PhaseActive {
		card := c.deck[c.position].Clone()
		v.Card = &card
	}

	if len(c.deck) > 0 {
		done := c.position
		if c.finished {
			done++
		}
		v.Progress = float64(done) / float64(len(c.deck))
	}

	return v
}

// onCollectionChanged handles engine notifications. The only transition
// taken here is Empty→Active: a session with no deck deals itself one
// as soon as cards exist. Active decks are frozen and a finished
// session stays finished until an explicit restart.
func (c *Controller) onCollectionChanged(state engine.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.deck) == 0 && len(state.Cards) > 0 {
		c.deal(state.Cards)
	}
}

// deal resets the session over a fresh shuffle of the given cards.
// Caller holds c.mu.
func (c *Controller) deal(cards []domain.Card) {
	c.deck = c.shuffle(cards)
	c.position = 0
	c.revealed = false
	c.finished = false
}

// shuffle returns a Fisher-Yates permutation of the cards, uniform over
// all orderings. The input is copied, never reordered in place.
// Caller holds c.mu.
func (c *Controller) shuffle(cards []domain.Card) []domain.Card {
	deck := make([]domain.Card, len(cards))
	for i, card := range cards {
		deck[i] = card.Clone()
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := c.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	return deck
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case len(c.deck) == 0:
		return PhaseEmpty
	case c.finished:
		return PhaseFinished
	default:
		return PhaseActive
	}
}
