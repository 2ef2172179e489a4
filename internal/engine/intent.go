package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/photodeck/photodeck/internal/domain"
)

// Intent is a named, payload-carrying request to mutate the collection.
//
// The interface is sealed: the unexported marker method means the full
// vocabulary lives in this file, and the reducer's type switch covers
// every member. Adding an intent without handling it in apply is caught
// the first time it is dispatched.
type Intent interface {
	isIntent()
}

// SetCards replaces the cards sequence wholesale and clears the loading
// flag. Used only for the initial load.
type SetCards struct {
	Cards []domain.Card
}

// SetFolders replaces the folders sequence wholesale. Used only for the
// initial load.
type SetFolders struct {
	Folders []domain.Folder
}

// AddCard appends a card to the collection.
//
// Precondition: the card's ID must be fresh. The engine does not check
// for duplicates; the caller mints a new UUID per card.
type AddCard struct {
	Card domain.Card
}

// UpdateCard replaces the card whose ID matches. No-op if absent.
type UpdateCard struct {
	Card domain.Card
}

// DeleteCard removes the card with the given ID. No-op if absent.
type DeleteCard struct {
	ID uuid.UUID
}

// IncrementCorrect adds 1 to the matching card's correct counter.
// No-op if absent.
type IncrementCorrect struct {
	ID uuid.UUID
}

// IncrementWrong adds 1 to the matching card's wrong counter.
// No-op if absent.
type IncrementWrong struct {
	ID uuid.UUID
}

// ToggleFavorite flips the matching card's favorite flag. No-op if
// absent.
type ToggleFavorite struct {
	ID uuid.UUID
}

// AddFolder appends a folder to the collection.
type AddFolder struct {
	Folder domain.Folder
}

// UpdateFolder replaces the folder whose ID matches. No-op if absent.
type UpdateFolder struct {
	Folder domain.Folder
}

// DeleteFolder removes the folder with the given ID and, in the same
// step, clears the folder reference on every member card so no dangling
// reference is ever observable.
type DeleteFolder struct {
	ID uuid.UUID
}

// MoveToFolder sets or clears a card's folder reference. A nil FolderID
// files the card as "unfiled". The target folder is not validated; the
// folder reference is a weak, lookup-only relation and integrity is
// enforced solely at DeleteFolder.
type MoveToFolder struct {
	CardID   uuid.UUID
	FolderID *uuid.UUID
}

func (SetCards) isIntent()         {}
func (SetFolders) isIntent()       {}
func (AddCard) isIntent()          {}
func (UpdateCard) isIntent()       {}
func (DeleteCard) isIntent()       {}
func (IncrementCorrect) isIntent() {}
func (IncrementWrong) isIntent()   {}
func (ToggleFavorite) isIntent()   {}
func (AddFolder) isIntent()        {}
func (UpdateFolder) isIntent()     {}
func (DeleteFolder) isIntent()     {}
func (MoveToFolder) isIntent()     {}

// apply is the single reducer for the whole intent vocabulary. It takes
// a state the caller owns (Dispatch passes a fresh clone) and returns
// the next state. Intents never fail: id-based lookups that find no
// match leave the state unchanged.
func apply(s State, intent Intent) State {
	switch in := intent.(type) {
	case SetCards:
		s.Cards = cloneCards(in.Cards)
		if s.Cards == nil {
			s.Cards = []domain.Card{}
		}
		s.IsLoading = false

	case SetFolders:
		s.Folders = make([]domain.Folder, len(in.Folders))
		copy(s.Folders, in.Folders)

	case AddCard:
		s.Cards = append(s.Cards, in.Card.Clone())

	case UpdateCard:
		for i := range s.Cards {
			if s.Cards[i].ID == in.Card.ID {
				s.Cards[i] = in.Card.Clone()
				break
			}
		}

	case DeleteCard:
		for i := range s.Cards {
			if s.Cards[i].ID == in.ID {
				s.Cards = append(s.Cards[:i], s.Cards[i+1:]...)
				break
			}
		}

	case IncrementCorrect:
		for i := range s.Cards {
			if s.Cards[i].ID == in.ID {
				s.Cards[i].Correct++
				break
			}
		}

	case IncrementWrong:
		for i := range s.Cards {
			if s.Cards[i].ID == in.ID {
				s.Cards[i].Wrong++
				break
			}
		}

	case ToggleFavorite:
		for i := range s.Cards {
			if s.Cards[i].ID == in.ID {
				s.Cards[i].IsFavorite = !s.Cards[i].IsFavorite
				break
			}
		}

	case AddFolder:
		s.Folders = append(s.Folders, in.Folder)

	case UpdateFolder:
		for i := range s.Folders {
			if s.Folders[i].ID == in.Folder.ID {
				s.Folders[i] = in.Folder
				break
			}
		}

	case DeleteFolder:
		for i := range s.Folders {
			if s.Folders[i].ID == in.ID {
				s.Folders = append(s.Folders[:i], s.Folders[i+1:]...)
				break
			}
		}
		for i := range s.Cards {
			if s.Cards[i].InFolder(in.ID) {
				s.Cards[i].FolderID = nil
			}
		}

	case MoveToFolder:
		for i := range s.Cards {
			if s.Cards[i].ID == in.CardID {
				if in.FolderID != nil {
					folderID := *in.FolderID
					s.Cards[i].FolderID = &folderID
				} else {
					s.Cards[i].FolderID = nil
				}
				break
			}
		}

	default:
		// ALLOW-PANIC: the Intent union is sealed; reaching this branch
		// means a new intent was added without a reducer case.
		panic(fmt.Sprintf("engine: unhandled intent type %T", intent))
	}

	return s
}
