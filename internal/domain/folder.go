package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Folder-specific validation errors
var (
	// ErrFolderIDEmpty is returned when a folder ID is empty or nil.
	ErrFolderIDEmpty = errors.New("folder ID cannot be empty")

	// ErrFolderNameEmpty is returned when a folder's name is empty.
	ErrFolderNameEmpty = errors.New("folder name cannot be empty")

	// ErrFolderColorEmpty is returned when a folder's color is empty.
	ErrFolderColorEmpty = errors.New("folder color cannot be empty")
)

// Folder is a flat, named grouping of cards. Folders do not nest and do
// not own their members: cards point at folders, not the other way
// around.
type Folder struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFolder creates a new Folder with the given name and display color.
// It generates a new UUID for the folder ID and sets the creation
// timestamp. Returns an error if validation fails.
func NewFolder(name, color string) (*Folder, error) {
	folder := &Folder{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := folder.Validate(); err != nil {
		return nil, err
	}

	return folder, nil
}

// Validate checks if the Folder has valid data.
// Returns an error if any field fails validation.
func (f *Folder) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFolderIDEmpty
	}

	if f.Name == "" {
		return ErrFolderNameEmpty
	}

	// The color is a display accent; any non-empty value is accepted.
	if f.Color == "" {
		return ErrFolderColorEmpty
	}

	return nil
}
