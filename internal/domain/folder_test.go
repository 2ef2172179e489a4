package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewFolder(t *testing.T) {
	t.Parallel()

	folder, err := NewFolder("Biology", "#4f46e5")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if folder.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if folder.Name != "Biology" {
		t.Errorf("Expected name %q, got %q", "Biology", folder.Name)
	}

	if folder.Color != "#4f46e5" {
		t.Errorf("Expected color %q, got %q", "#4f46e5", folder.Color)
	}

	if folder.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Empty name
	_, err = NewFolder("", "#fff")
	if err != ErrFolderNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrFolderNameEmpty, err)
	}

	// Empty color
	_, err = NewFolder("Biology", "")
	if err != ErrFolderColorEmpty {
		t.Errorf("Expected error %v, got %v", ErrFolderColorEmpty, err)
	}
}
