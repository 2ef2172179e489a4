package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/photodeck/photodeck/internal/api/shared"
	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/engine"
)

// CardHandler serves the card endpoints of the collection API.
type CardHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(e *engine.Engine, logger *slog.Logger) *CardHandler {
	if e == nil {
		// ALLOW-PANIC: handler construction happens once at startup;
		// a nil engine is a wiring bug, not a runtime condition.
		panic("engine cannot be nil")
	}
	if logger == nil {
		// ALLOW-PANIC: same wiring invariant as above.
		panic("logger cannot be nil")
	}
	return &CardHandler{
		engine: e,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// GetState handles GET /api/state, returning the full collection
// snapshot.
func (h *CardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.engine.State())
}

type cardSeedPayload struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// createCardsRequest accepts either a single front/back pair or a batch
// under "cards". Exactly one form must be used.
type createCardsRequest struct {
	Front string            `json:"front"`
	Back  string            `json:"back"`
	Cards []cardSeedPayload `json:"cards" validate:"omitempty,dive"`
}

// CreateCards handles POST /api/cards. A single-card request responds
// with the created card; a batch request responds with the created
// cards in request order. Batches are all-or-nothing: one invalid pair
// rejects the whole request before anything is added.
func (h *CardHandler) CreateCards(w http.ResponseWriter, r *http.Request) {
	var req createCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	batch := len(req.Cards) > 0
	seeds := req.Cards
	if !batch {
		seeds = []cardSeedPayload{{Front: req.Front, Back: req.Back}}
	}

	cards := make([]domain.Card, 0, len(seeds))
	for _, seed := range seeds {
		card, err := domain.NewCard(seed.Front, seed.Back)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		cards = append(cards, *card)
	}

	for _, card := range cards {
		h.engine.Dispatch(engine.AddCard{Card: card})
	}

	h.logger.Debug("cards created",
		slog.Int("count", len(cards)),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	if batch {
		shared.RespondWithJSON(w, r, http.StatusCreated, cards)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cards[0])
}

type updateCardRequest struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// UpdateCard handles PUT /api/cards/{id}, replacing the card's front
// and back text. Counters, favorite flag, and folder membership are
// preserved.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var req updateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	card, found := h.engine.State().CardByID(id)
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "card not found")
		return
	}

	card.Front = req.Front
	card.Back = req.Back

	state := h.engine.Dispatch(engine.UpdateCard{Card: card})
	updated, _ := state.CardByID(id)
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if _, found := h.engine.State().CardByID(id); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "card not found")
		return
	}

	h.engine.Dispatch(engine.DeleteCard{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/cards/{id}/favorite, flipping the
// card's favorite flag and returning the updated card.
func (h *CardHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	if _, found := h.engine.State().CardByID(id); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "card not found")
		return
	}

	state := h.engine.Dispatch(engine.ToggleFavorite{ID: id})
	card, _ := state.CardByID(id)
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

type moveCardRequest struct {
	FolderID *string `json:"folderId"`
}

// MoveCard handles POST /api/cards/{id}/move. A null or absent folderId
// files the card as unfiled.
func (h *CardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var req moveCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var folderID *uuid.UUID
	if req.FolderID != nil {
		parsed, err := uuid.Parse(*req.FolderID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "invalid folder ID format")
			return
		}
		folderID = &parsed
	}

	state := h.engine.State()
	if _, found := state.CardByID(id); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "card not found")
		return
	}
	if folderID != nil {
		if _, found := state.FolderByID(*folderID); !found {
			shared.RespondWithError(w, r, http.StatusNotFound, "folder not found")
			return
		}
	}

	next := h.engine.Dispatch(engine.MoveToFolder{CardID: id, FolderID: folderID})
	card, _ := next.CardByID(id)
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// cardID parses the {id} URL parameter, writing a 400 response on
// failure.
func (h *CardHandler) cardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid card ID format")
		return uuid.Nil, false
	}
	return id, true
}
