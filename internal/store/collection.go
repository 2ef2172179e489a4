package store

import (
	"context"

	"github.com/photodeck/photodeck/internal/domain"
)

// CollectionStore defines the interface for durably persisting the card
// collection. Cards and folders are stored as two independent records;
// each save replaces the respective record wholesale.
//
// Saves are invoked fire-and-forget by the engine's autosave writer and
// must be safe to call from a single background goroutine. Loads happen
// once at startup.
type CollectionStore interface {
	// SaveCards replaces the stored cards record with the given
	// sequence. Returns ErrStorageUnavailable (possibly wrapped) if the
	// write cannot be completed.
	SaveCards(ctx context.Context, cards []domain.Card) error

	// LoadCards reads the stored cards record. A missing record (first
	// run) loads as an empty, non-nil sequence. Stored records are
	// migrated on load: cards persisted before the favorite/folder
	// fields existed come back with IsFavorite=false and no FolderID.
	// Returns ErrStorageCorrupt (possibly wrapped) if the record exists
	// but cannot be parsed.
	LoadCards(ctx context.Context) ([]domain.Card, error)

	// SaveFolders replaces the stored folders record with the given
	// sequence. Error contract matches SaveCards.
	SaveFolders(ctx context.Context, folders []domain.Folder) error

	// LoadFolders reads the stored folders record. Contract matches
	// LoadCards.
	LoadFolders(ctx context.Context) ([]domain.Folder, error)
}
