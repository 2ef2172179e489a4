package engine

import (
	"github.com/google/uuid"
	"github.com/photodeck/photodeck/internal/domain"
)

// State is the root aggregate owned by the engine: the ordered card and
// folder sequences plus the loading flag and the last non-fatal error.
//
// Sequence order is insertion order and doubles as the browsing order of
// the collection. States handed out by the engine are snapshots; callers
// may keep or mutate them freely without affecting the engine.
type State struct {
	Cards     []domain.Card   `json:"cards"`
	Folders   []domain.Folder `json:"folders"`
	IsLoading bool            `json:"isLoading"`
	Error     string          `json:"error,omitempty"`
}

// newInitialState returns the empty pre-load state.
func newInitialState() State {
	return State{
		Cards:     []domain.Card{},
		Folders:   []domain.Folder{},
		IsLoading: true,
	}
}

// clone returns a deep copy of the state. Card FolderID pointers are the
// only shared references and are re-pointed per card.
func (s State) clone() State {
	out := s
	out.Cards = cloneCards(s.Cards)
	out.Folders = make([]domain.Folder, len(s.Folders))
	copy(out.Folders, s.Folders)
	return out
}

// CardByID returns the card with the given id, if present.
func (s State) CardByID(id uuid.UUID) (domain.Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return domain.Card{}, false
}

// FolderByID returns the folder with the given id, if present.
func (s State) FolderByID(id uuid.UUID) (domain.Folder, bool) {
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Folder{}, false
}

func cloneCards(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
