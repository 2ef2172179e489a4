package api

import (
	"log/slog"
	"net/http"

	"github.com/photodeck/photodeck/internal/api/shared"
	"github.com/photodeck/photodeck/internal/study"
)

// StudyHandler serves the study session endpoints. All endpoints
// respond with the session snapshot after the operation so clients
// never need a follow-up read.
type StudyHandler struct {
	sessions *study.Controller
	logger   *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(sessions *study.Controller, logger *slog.Logger) *StudyHandler {
	if sessions == nil {
		// ALLOW-PANIC: handler construction happens once at startup;
		// a nil controller is a wiring bug, not a runtime condition.
		panic("study controller cannot be nil")
	}
	if logger == nil {
		// ALLOW-PANIC: same wiring invariant as above.
		panic("logger cannot be nil")
	}
	return &StudyHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /api/study/session and POST
// /api/study/restart: any session in progress is abandoned and a fresh
// shuffle is drawn from the live collection.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Restart()

	view := h.sessions.View()
	h.logger.Debug("study session started",
		slog.String("phase", string(view.Phase)),
		slog.Int("deck_size", view.DeckSize),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	shared.RespondWithJSON(w, r, http.StatusOK, toStudySessionResponse(view))
}

// GetSession handles GET /api/study/session.
func (h *StudyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, toStudySessionResponse(h.sessions.View()))
}

// Reveal handles POST /api/study/reveal, flipping the current card to
// show its answer.
func (h *StudyHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Reveal(); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toStudySessionResponse(h.sessions.View()))
}

type advanceRequest struct {
	KnewIt bool `json:"knewIt"`
}

// Advance handles POST /api/study/advance, recording the outcome for
// the current card and moving to the next one.
func (h *StudyHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.Advance(req.KnewIt); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toStudySessionResponse(h.sessions.View()))
}
