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

// FolderHandler serves the folder endpoints of the collection API.
type FolderHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(e *engine.Engine, logger *slog.Logger) *FolderHandler {
	if e == nil {
		// ALLOW-PANIC: handler construction happens once at startup;
		// a nil engine is a wiring bug, not a runtime condition.
		panic("engine cannot be nil")
	}
	if logger == nil {
		// ALLOW-PANIC: same wiring invariant as above.
		panic("logger cannot be nil")
	}
	return &FolderHandler{
		engine: e,
		logger: logger.With(slog.String("component", "folder_handler")),
	}
}

type folderRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// CreateFolder handles POST /api/folders.
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, err := domain.NewFolder(req.Name, req.Color)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.engine.Dispatch(engine.AddFolder{Folder: *folder})

	h.logger.Debug("folder created",
		slog.String("folder_id", folder.ID.String()),
		slog.String("trace_id", shared.GetTraceID(r.Context())))

	shared.RespondWithJSON(w, r, http.StatusCreated, folder)
}

// UpdateFolder handles PUT /api/folders/{id}, replacing the folder's
// name and color.
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.folderID(w, r)
	if !ok {
		return
	}

	var req folderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, found := h.engine.State().FolderByID(id)
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "folder not found")
		return
	}

	folder.Name = req.Name
	folder.Color = req.Color

	state := h.engine.Dispatch(engine.UpdateFolder{Folder: folder})
	updated, _ := state.FolderByID(id)
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteFolder handles DELETE /api/folders/{id}. Member cards survive
// the folder and become unfiled.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.folderID(w, r)
	if !ok {
		return
	}

	if _, found := h.engine.State().FolderByID(id); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "folder not found")
		return
	}

	h.engine.Dispatch(engine.DeleteFolder{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *FolderHandler) folderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid folder ID format")
		return uuid.Nil, false
	}
	return id, true
}
