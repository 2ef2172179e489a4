package generation

import "context"

// CardSeed is one front/back pair proposed by the generator. Seeds are
// raw material: the caller turns accepted seeds into domain cards with
// fresh ids.
type CardSeed struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Generator defines the interface for the two-step photo-to-flashcards
// pipeline: OCR on an uploaded image, then card extraction from text.
type Generator interface {
	// ExtractText performs OCR on the given image bytes, preserving
	// line breaks and language. mimeType describes the image encoding
	// (e.g. "image/jpeg").
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)

	// GenerateCards converts a block of raw text into front/back card
	// seeds. Blank input yields an empty seed list and no error.
	GenerateCards(ctx context.Context, text string) ([]CardSeed, error)
}
