package api

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/photodeck/photodeck/internal/api/shared"
	"github.com/photodeck/photodeck/internal/generation"
)

// GenerateHandler serves the photo-to-flashcards endpoints. The
// generator may be nil when no API key is configured; both endpoints
// then respond 503.
type GenerateHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler. A nil generator is
// allowed and disables the endpoints.
func NewGenerateHandler(generator generation.Generator, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: handler construction happens once at startup;
		// a nil logger is a wiring bug, not a runtime condition.
		panic("logger cannot be nil")
	}
	return &GenerateHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "generate_handler")),
	}
}

type extractTextRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mimeType"`
}

type extractTextResponse struct {
	Text string `json:"text"`
}

// ExtractText handles POST /api/generate/text: OCR on a base64-encoded
// image, responding with the recognized text.
func (h *GenerateHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "card generation is not configured")
		return
	}

	var req extractTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "image must be base64-encoded")
		return
	}

	text, err := h.generator.ExtractText(r.Context(), image, req.MimeType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("text extracted",
		slog.Int("image_bytes", len(image)),
		slog.Int("text_length", len(text)),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	shared.RespondWithJSON(w, r, http.StatusOK, extractTextResponse{Text: text})
}

type generateCardsRequest struct {
	Text string `json:"text" validate:"required"`
}

type generateCardsResponse struct {
	Cards []generation.CardSeed `json:"cards"`
}

// GenerateCards handles POST /api/generate/cards, turning a block of
// text into front/back card seeds. Seeds are proposals only; the client
// saves the ones it keeps through POST /api/cards.
func (h *GenerateHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "card generation is not configured")
		return
	}

	var req generateCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	seeds, err := h.generator.GenerateCards(r.Context(), req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.logger.Debug("cards generated",
		slog.Int("count", len(seeds)),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	shared.RespondWithJSON(w, r, http.StatusOK, generateCardsResponse{Cards: seeds})
}
