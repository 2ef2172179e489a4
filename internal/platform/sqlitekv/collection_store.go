package sqlitekv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/store"
)

// Storage keys for the two collection records.
const (
	cardsKey   = "cards"
	foldersKey = "folders"
)

// CollectionStore implements store.CollectionStore on top of the
// key-value DB. Cards and folders are stored as JSON arrays under two
// fixed keys; timestamps travel as ms-epoch numbers.
type CollectionStore struct {
	db     *DB
	logger *slog.Logger
}

// NewCollectionStore creates a CollectionStore over the given DB.
// If logger is nil, the default logger is used.
func NewCollectionStore(db *DB, logger *slog.Logger) *CollectionStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency.
		panic("db cannot be nil for CollectionStore")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

// Ensure CollectionStore implements store.CollectionStore.
var _ store.CollectionStore = (*CollectionStore)(nil)

// cardRecord is the stored shape of a card. IsFavorite is a pointer so
// records written before the field existed can be told apart from an
// explicit false and migrated on load.
type cardRecord struct {
	ID         string  `json:"id"`
	Front      string  `json:"front"`
	Back       string  `json:"back"`
	Correct    int     `json:"correct"`
	Wrong      int     `json:"wrong"`
	CreatedAt  int64   `json:"createdAt"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
	FolderID   *string `json:"folderId,omitempty"`
}

// folderRecord is the stored shape of a folder.
type folderRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}

// SaveCards implements store.CollectionStore.SaveCards.
func (s *CollectionStore) SaveCards(ctx context.Context, cards []domain.Card) error {
	records := make([]cardRecord, len(cards))
	for i, card := range cards {
		records[i] = toCardRecord(card)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encoding cards: %v", store.ErrStorageUnavailable, err)
	}

	if err := s.db.Set(ctx, cardsKey, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}

	s.logger.Debug("saved cards", slog.Int("count", len(cards)))
	return nil
}

// LoadCards implements store.CollectionStore.LoadCards. Records missing
// the favorite/folder fields are migrated to their defaults; the
// migration is idempotent and leaves records that already carry the
// fields untouched.
func (s *CollectionStore) LoadCards(ctx context.Context) ([]domain.Card, error) {
	payload, found, err := s.db.Get(ctx, cardsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}
	if !found {
		return []domain.Card{}, nil
	}

	var records []cardRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("%w: parsing cards record: %v", store.ErrStorageCorrupt, err)
	}

	cards := make([]domain.Card, len(records))
	for i, rec := range records {
		card, err := fromCardRecord(rec)
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}

	s.logger.Debug("loaded cards", slog.Int("count", len(cards)))
	return cards, nil
}

// SaveFolders implements store.CollectionStore.SaveFolders.
func (s *CollectionStore) SaveFolders(ctx context.Context, folders []domain.Folder) error {
	records := make([]folderRecord, len(folders))
	for i, folder := range folders {
		records[i] = folderRecord{
			ID:        folder.ID.String(),
			Name:      folder.Name,
			Color:     folder.Color,
			CreatedAt: folder.CreatedAt.UnixMilli(),
		}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encoding folders: %v", store.ErrStorageUnavailable, err)
	}

	if err := s.db.Set(ctx, foldersKey, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}

	s.logger.Debug("saved folders", slog.Int("count", len(folders)))
	return nil
}

// LoadFolders implements store.CollectionStore.LoadFolders.
func (s *CollectionStore) LoadFolders(ctx context.Context) ([]domain.Folder, error) {
	payload, found, err := s.db.Get(ctx, foldersKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}
	if !found {
		return []domain.Folder{}, nil
	}

	var records []folderRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("%w: parsing folders record: %v", store.ErrStorageCorrupt, err)
	}

	folders := make([]domain.Folder, len(records))
	for i, rec := range records {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: folder id %q: %v", store.ErrStorageCorrupt, rec.ID, err)
		}
		folders[i] = domain.Folder{
			ID:        id,
			Name:      rec.Name,
			Color:     rec.Color,
			CreatedAt: time.UnixMilli(rec.CreatedAt).UTC(),
		}
	}

	s.logger.Debug("loaded folders", slog.Int("count", len(folders)))
	return folders, nil
}

func toCardRecord(card domain.Card) cardRecord {
	isFavorite := card.IsFavorite
	rec := cardRecord{
		ID:         card.ID.String(),
		Front:      card.Front,
		Back:       card.Back,
		Correct:    card.Correct,
		Wrong:      card.Wrong,
		CreatedAt:  card.CreatedAt.UnixMilli(),
		IsFavorite: &isFavorite,
	}

	if card.FolderID != nil {
		folderID := card.FolderID.String()
		rec.FolderID = &folderID
	}

	return rec
}

func fromCardRecord(rec cardRecord) (domain.Card, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("%w: card id %q: %v", store.ErrStorageCorrupt, rec.ID, err)
	}

	card := domain.Card{
		ID:        id,
		Front:     rec.Front,
		Back:      rec.Back,
		Correct:   rec.Correct,
		Wrong:     rec.Wrong,
		CreatedAt: time.UnixMilli(rec.CreatedAt).UTC(),
	}

	// Field-default migration for records written before these fields
	// existed.
	if rec.IsFavorite != nil {
		card.IsFavorite = *rec.IsFavorite
	}

	if rec.FolderID != nil {
		folderID, err := uuid.Parse(*rec.FolderID)
		if err != nil {
			return domain.Card{}, fmt.Errorf("%w: card folder id %q: %v", store.ErrStorageCorrupt, *rec.FolderID, err)
		}
		card.FolderID = &folderID
	}

	return card, nil
}
