// Package gemini implements the generation.Generator interface using
// Google's Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/photodeck/photodeck/internal/config"
	"github.com/photodeck/photodeck/internal/generation"
	"google.golang.org/genai"
)

// ocrPrompt asks the model for a faithful transcription; downstream
// card extraction depends on the line breaks surviving.
const ocrPrompt = "Extract all text from this image. Preserve the line breaks and language."

// cardsPromptFormat wraps the raw text with extraction instructions.
// The model must answer with a bare JSON array of {front, back} pairs.
const cardsPromptFormat = `Analyze the following text and convert it into flashcards. ` +
	`Each flashcard has a "front" (question or term) and a "back" (answer or definition). ` +
	`Identify pairs based on separators like ':', '-', or '?'; if no clear separator exists, ` +
	`use context to create meaningful pairs. Respond with only a JSON array of objects with ` +
	`"front" and "back" string fields and no other text.

---
%s
---`

// GeminiGenerator implements generation.Generator against the Gemini
// API.
type GeminiGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a GeminiGenerator from the LLM
// configuration. Returns generation.ErrInvalidConfig when the API key
// or model name is missing.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Ensure GeminiGenerator implements generation.Generator.
var _ generation.Generator = (*GeminiGenerator)(nil)

// ExtractText implements generation.Generator.ExtractText.
func (g *GeminiGenerator) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: image is empty", generation.ErrGenerationFailed)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	g.logger.DebugContext(ctx, "extracting text from image",
		slog.Int("image_bytes", len(image)),
		slog.String("mime_type", mimeType))

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(ocrPrompt),
		},
	}

	text, err := g.generate(ctx, content)
	if err != nil {
		return "", err
	}

	return text, nil
}

// GenerateCards implements generation.Generator.GenerateCards.
func (g *GeminiGenerator) GenerateCards(ctx context.Context, text string) ([]generation.CardSeed, error) {
	if strings.TrimSpace(text) == "" {
		return []generation.CardSeed{}, nil
	}

	g.logger.DebugContext(ctx, "generating cards from text", slog.Int("text_length", len(text)))

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(cardsPromptFormat, text)),
		},
	}

	raw, err := g.generate(ctx, content)
	if err != nil {
		return nil, err
	}

	seeds, err := parseCardSeeds(raw)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generated card seeds", slog.Int("count", len(seeds)))
	return seeds, nil
}

// generate performs one model call and returns the concatenated text of
// the first candidate.
func (g *GeminiGenerator) generate(ctx context.Context, content *genai.Content) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	return text, nil
}

// parseCardSeeds parses the model's JSON answer, tolerating a fenced
// code block around the array.
func parseCardSeeds(raw string) ([]generation.CardSeed, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var seeds []generation.CardSeed
	if err := json.Unmarshal([]byte(cleaned), &seeds); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	if seeds == nil {
		seeds = []generation.CardSeed{}
	}
	return seeds, nil
}
