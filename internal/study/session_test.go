package study

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCard(t *testing.T, front string) domain.Card {
	t.Helper()
	card, err := domain.NewCard(front, front+" back")
	require.NoError(t, err)
	return *card
}

func newLoadedEngine(t *testing.T, cards ...domain.Card) *engine.Engine {
	t.Helper()
	e := engine.New(nil, nil)
	e.Dispatch(engine.SetCards{Cards: cards})
	return e
}

func sortedIDs(cards []domain.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID.String()
	}
	sort.Strings(ids)
	return ids
}

// The shuffle is a bijection: the deck holds exactly the source cards,
// for any input size including 0 and 1.
func TestShuffleIsBijection(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 2, 7, 50} {
		cards := make([]domain.Card, size)
		for i := range cards {
			cards[i] = newTestCard(t, uuid.NewString())
		}

		e := newLoadedEngine(t, cards...)
		c := NewController(e, WithRand(rand.NewSource(42)))

		assert.Equal(t, sortedIDs(cards), sortedIDs(c.deck), "size %d", size)
	}
}

func TestEmptyCollectionYieldsNoSession(t *testing.T) {
	t.Parallel()

	e := newLoadedEngine(t)
	c := NewController(e)

	assert.Equal(t, PhaseEmpty, c.Phase())
	assert.Zero(t, c.Progress())

	_, ok := c.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Reveal(), ErrNoActiveSession)
	assert.ErrorIs(t, c.Advance(true), ErrNoActiveSession)
}

// An empty session transitions to active the moment the collection
// becomes non-empty.
func TestEmptyToActiveOnFirstCard(t *testing.T) {
	t.Parallel()

	e := newLoadedEngine(t)
	c := NewController(e)
	require.Equal(t, PhaseEmpty, c.Phase())

	card := newTestCard(t, "first")
	e.Dispatch(engine.AddCard{Card: card})

	require.Equal(t, PhaseActive, c.Phase())
	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, card.ID, current.ID)
}

// Answering "knew it" through a three-card deck walks position 0→1→2
// and finishes, with each card's correct counter at 1.
func TestFullRunThroughDeck(t *testing.T) {
	t.Parallel()

	a := newTestCard(t, "a")
	b := newTestCard(t, "b")
	cc := newTestCard(t, "c")
	e := newLoadedEngine(t, a, b, cc)
	c := NewController(e, WithRand(rand.NewSource(7)))

	require.Equal(t, PhaseActive, c.Phase())

	for i := 0; i < 3; i++ {
		v := c.View()
		assert.Equal(t, i, v.Position)
		assert.False(t, v.Revealed)

		// Advance is invalid until the answer is revealed.
		assert.ErrorIs(t, c.Advance(true), ErrAnswerHidden)

		require.NoError(t, c.Reveal())
		// Reveal is idempotent and never moves the position.
		require.NoError(t, c.Reveal())
		assert.Equal(t, i, c.View().Position)

		require.NoError(t, c.Advance(true))
	}

	assert.Equal(t, PhaseFinished, c.Phase())
	assert.Equal(t, 1.0, c.Progress())

	for _, card := range e.State().Cards {
		assert.Equal(t, 1, card.Correct, "card %s", card.Front)
		assert.Equal(t, 0, card.Wrong, "card %s", card.Front)
	}
}

func TestAdvanceRelaysWrongOutcome(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, "only")
	e := newLoadedEngine(t, card)
	c := NewController(e)

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(false))

	state := e.State()
	assert.Equal(t, 0, state.Cards[0].Correct)
	assert.Equal(t, 1, state.Cards[0].Wrong)
	assert.Equal(t, PhaseFinished, c.Phase())
}

// Editing or adding cards during an active session must not alter the
// frozen deck or the position.
func TestActiveDeckIsFrozenAgainstCollectionEdits(t *testing.T) {
	t.Parallel()

	a := newTestCard(t, "a")
	b := newTestCard(t, "b")
	e := newLoadedEngine(t, a, b)
	c := NewController(e, WithRand(rand.NewSource(3)))

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(true))

	before := c.View()
	deckBefore := sortedIDs(c.deck)

	e.Dispatch(engine.AddCard{Card: newTestCard(t, "intruder")})
	updated := a.Clone()
	updated.Front = "edited"
	e.Dispatch(engine.UpdateCard{Card: updated})

	after := c.View()
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.DeckSize, after.DeckSize)
	assert.Equal(t, deckBefore, sortedIDs(c.deck))
}

// Finished is terminal until an explicit restart, which deals from the
// live collection.
func TestRestartDealsFromLiveCollection(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, "only")
	e := newLoadedEngine(t, card)
	c := NewController(e)

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(true))
	require.Equal(t, PhaseFinished, c.Phase())

	// Collection changes do not resurrect a finished session.
	added := newTestCard(t, "added")
	e.Dispatch(engine.AddCard{Card: added})
	assert.Equal(t, PhaseFinished, c.Phase())

	c.Restart()
	require.Equal(t, PhaseActive, c.Phase())
	assert.Equal(t, sortedIDs(e.State().Cards), sortedIDs(c.deck))
	assert.Equal(t, 0, c.View().Position)
}

func TestRestartWithEmptiedCollectionGoesEmpty(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, "only")
	e := newLoadedEngine(t, card)
	c := NewController(e)
	require.Equal(t, PhaseActive, c.Phase())

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(true))

	e.Dispatch(engine.DeleteCard{ID: card.ID})
	c.Restart()

	assert.Equal(t, PhaseEmpty, c.Phase())
}

func TestProgressFraction(t *testing.T) {
	t.Parallel()

	a := newTestCard(t, "a")
	b := newTestCard(t, "b")
	e := newLoadedEngine(t, a, b)
	c := NewController(e)

	assert.InDelta(t, 0.0, c.Progress(), 1e-9)

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(true))
	assert.InDelta(t, 0.5, c.Progress(), 1e-9)

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(false))
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)
}

// A card deleted mid-session stays in the frozen deck; its outcome
// lands as a no-op on the collection.
func TestDeletedCardOutcomeIsAbsorbed(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, "doomed")
	e := newLoadedEngine(t, card)
	c := NewController(e)

	e.Dispatch(engine.DeleteCard{ID: card.ID})

	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, card.ID, current.ID)

	require.NoError(t, c.Reveal())
	require.NoError(t, c.Advance(true))

	assert.Empty(t, e.State().Cards)
	assert.Equal(t, PhaseFinished, c.Phase())
}
