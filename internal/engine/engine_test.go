package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCard(t *testing.T, front, back string) domain.Card {
	t.Helper()
	card, err := domain.NewCard(front, back)
	require.NoError(t, err)
	return *card
}

func newTestFolder(t *testing.T, name string) domain.Folder {
	t.Helper()
	folder, err := domain.NewFolder(name, "#4f46e5")
	require.NoError(t, err)
	return *folder
}

func TestEngineInitialState(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	state := e.State()

	assert.True(t, state.IsLoading)
	assert.Empty(t, state.Cards)
	assert.Empty(t, state.Folders)
	assert.Empty(t, state.Error)
}

func TestSetCardsClearsLoading(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")

	state := e.Dispatch(SetCards{Cards: []domain.Card{card}})

	assert.False(t, state.IsLoading)
	require.Len(t, state.Cards, 1)
	assert.Equal(t, card.ID, state.Cards[0].ID)
}

// Any sequence of add/update/delete intents must leave exactly the
// surviving ids with their latest field values: no duplicates, no
// ghosts.
func TestCardLifecycle(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	e.Dispatch(SetCards{})

	a := newTestCard(t, "a front", "a back")
	b := newTestCard(t, "b front", "b back")
	c := newTestCard(t, "c front", "c back")

	e.Dispatch(AddCard{Card: a})
	e.Dispatch(AddCard{Card: b})
	e.Dispatch(AddCard{Card: c})

	updated := b.Clone()
	updated.Front = "b front v2"
	e.Dispatch(UpdateCard{Card: updated})
	e.Dispatch(DeleteCard{ID: a.ID})

	state := e.State()
	require.Len(t, state.Cards, 2)
	assert.Equal(t, b.ID, state.Cards[0].ID)
	assert.Equal(t, "b front v2", state.Cards[0].Front)
	assert.Equal(t, c.ID, state.Cards[1].ID)

	seen := map[uuid.UUID]bool{}
	for _, card := range state.Cards {
		assert.False(t, seen[card.ID], "duplicate card id %s", card.ID)
		seen[card.ID] = true
	}
}

func TestUpdateCardMissingIDIsNoOp(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})

	ghost := newTestCard(t, "ghost", "ghost")
	state := e.Dispatch(UpdateCard{Card: ghost})

	require.Len(t, state.Cards, 1)
	assert.Equal(t, card.ID, state.Cards[0].ID)
	assert.Equal(t, "front", state.Cards[0].Front)
}

func TestDeleteCardMissingIDIsNoOp(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})

	state := e.Dispatch(DeleteCard{ID: uuid.New()})
	require.Len(t, state.Cards, 1)
}

// Counter increments are order-independent: n corrects and m wrongs on
// a fresh card yield correct=n, wrong=m.
func TestIncrementCounters(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})

	for i := 0; i < 3; i++ {
		e.Dispatch(IncrementCorrect{ID: card.ID})
	}
	e.Dispatch(IncrementWrong{ID: card.ID})
	e.Dispatch(IncrementCorrect{ID: card.ID})
	e.Dispatch(IncrementWrong{ID: card.ID})

	state := e.State()
	require.Len(t, state.Cards, 1)
	assert.Equal(t, 4, state.Cards[0].Correct)
	assert.Equal(t, 2, state.Cards[0].Wrong)

	// Unknown ids are absorbed as no-ops.
	state = e.Dispatch(IncrementCorrect{ID: uuid.New()})
	assert.Equal(t, 4, state.Cards[0].Correct)
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})

	state := e.Dispatch(ToggleFavorite{ID: card.ID})
	assert.True(t, state.Cards[0].IsFavorite)

	state = e.Dispatch(ToggleFavorite{ID: card.ID})
	assert.False(t, state.Cards[0].IsFavorite)
}

// DeleteFolder must clear folderId on every member card in the same
// step: no dangling folder reference is ever observable.
func TestDeleteFolderClearsReferences(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	folder := newTestFolder(t, "Biology")
	other := newTestFolder(t, "History")

	filed := newTestCard(t, "filed", "card")
	filed.FolderID = &folder.ID
	alsoFiled := newTestCard(t, "also filed", "card")
	alsoFiled.FolderID = &folder.ID
	elsewhere := newTestCard(t, "elsewhere", "card")
	elsewhere.FolderID = &other.ID

	e.Dispatch(SetCards{Cards: []domain.Card{filed, alsoFiled, elsewhere}})
	e.Dispatch(SetFolders{Folders: []domain.Folder{folder, other}})

	state := e.Dispatch(DeleteFolder{ID: folder.ID})

	require.Len(t, state.Folders, 1)
	assert.Equal(t, other.ID, state.Folders[0].ID)

	for _, card := range state.Cards {
		assert.False(t, card.InFolder(folder.ID), "card %s still references deleted folder", card.ID)
	}
	// Unrelated references survive.
	assert.True(t, state.Cards[2].InFolder(other.ID))
}

func TestMoveToFolder(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	folder := newTestFolder(t, "Biology")
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})
	e.Dispatch(SetFolders{Folders: []domain.Folder{folder}})

	state := e.Dispatch(MoveToFolder{CardID: card.ID, FolderID: &folder.ID})
	require.NotNil(t, state.Cards[0].FolderID)
	assert.Equal(t, folder.ID, *state.Cards[0].FolderID)

	state = e.Dispatch(MoveToFolder{CardID: card.ID})
	assert.Nil(t, state.Cards[0].FolderID)
}

func TestFolderLifecycle(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	folder := newTestFolder(t, "Biology")
	e.Dispatch(AddFolder{Folder: folder})

	renamed := folder
	renamed.Name = "Cell Biology"
	state := e.Dispatch(UpdateFolder{Folder: renamed})
	require.Len(t, state.Folders, 1)
	assert.Equal(t, "Cell Biology", state.Folders[0].Name)

	// Update of a missing folder is a no-op.
	ghost := newTestFolder(t, "Ghost")
	state = e.Dispatch(UpdateFolder{Folder: ghost})
	require.Len(t, state.Folders, 1)
}

// Snapshots are copies: mutating a returned state must not affect the
// engine.
func TestStateSnapshotsAreIsolated(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)
	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})

	snapshot := e.State()
	snapshot.Cards[0].Front = "mutated"
	folderID := uuid.New()
	snapshot.Cards[0].FolderID = &folderID

	state := e.State()
	assert.Equal(t, "front", state.Cards[0].Front)
	assert.Nil(t, state.Cards[0].FolderID)
}

func TestSubscribeNotifiesOnDispatch(t *testing.T) {
	t.Parallel()

	e := New(nil, nil)

	var got []State
	e.Subscribe(func(s State) {
		got = append(got, s)
	})

	card := newTestCard(t, "front", "back")
	e.Dispatch(SetCards{Cards: []domain.Card{card}})
	e.Dispatch(ToggleFavorite{ID: card.ID})

	require.Len(t, got, 2)
	assert.False(t, got[0].IsLoading)
	assert.True(t, got[1].Cards[0].IsFavorite)
}
