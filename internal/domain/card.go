package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back cannot be empty")

	// ErrCardNegativeCounter is returned when a card carries a negative
	// correct or wrong counter.
	ErrCardNegativeCounter = errors.New("card counters cannot be negative")
)

// Card represents a single front/back flashcard with its accuracy
// counters. FolderID is a weak reference: it may point at a Folder or be
// nil ("unfiled"), and the engine clears it when the folder is deleted.
type Card struct {
	ID         uuid.UUID  `json:"id"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Correct    int        `json:"correct"`
	Wrong      int        `json:"wrong"`
	CreatedAt  time.Time  `json:"createdAt"`
	IsFavorite bool       `json:"isFavorite"`
	FolderID   *uuid.UUID `json:"folderId,omitempty"`
}

// NewCard creates a new Card with the given front and back text.
// It generates a new UUID for the card ID, zeroes the counters, and sets
// the creation timestamp. Returns an error if validation fails.
func NewCard(front, back string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Back == "" {
		return ErrCardBackEmpty
	}

	if c.Correct < 0 || c.Wrong < 0 {
		return ErrCardNegativeCounter
	}

	return nil
}

// Clone returns a deep copy of the card. FolderID is the only pointer
// field, so the copy re-points it at a fresh value.
func (c Card) Clone() Card {
	clone := c
	if c.FolderID != nil {
		folderID := *c.FolderID
		clone.FolderID = &folderID
	}
	return clone
}

// InFolder reports whether the card references the given folder.
func (c *Card) InFolder(folderID uuid.UUID) bool {
	return c.FolderID != nil && *c.FolderID == folderID
}
