package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photodeck/photodeck/internal/domain"
	"github.com/photodeck/photodeck/internal/engine"
)

func newFolderTestServer(t *testing.T) (*engine.Engine, *chi.Mux) {
	t.Helper()

	e := engine.New(nil, testLogger())
	h := NewFolderHandler(e, testLogger())

	r := chi.NewRouter()
	r.Post("/api/folders", h.CreateFolder)
	r.Put("/api/folders/{id}", h.UpdateFolder)
	r.Delete("/api/folders/{id}", h.DeleteFolder)

	return e, r
}

func TestCreateFolder(t *testing.T) {
	t.Parallel()

	e, router := newFolderTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/folders", `{"name":"Spanish","color":"#3b82f6"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var folder domain.Folder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &folder))
	assert.NotEqual(t, uuid.Nil, folder.ID)
	assert.Equal(t, "Spanish", folder.Name)
	assert.Equal(t, "#3b82f6", folder.Color)

	assert.Len(t, e.State().Folders, 1)
}

func TestCreateFolderRejectsMissingFields(t *testing.T) {
	t.Parallel()

	e, router := newFolderTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/folders", `{"name":"Spanish"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.State().Folders)
}

func TestUpdateFolder(t *testing.T) {
	t.Parallel()

	e, router := newFolderTestServer(t)

	folder, err := domain.NewFolder("Spanish", "#ff0000")
	require.NoError(t, err)
	e.Dispatch(engine.AddFolder{Folder: *folder})

	target := fmt.Sprintf("/api/folders/%s", folder.ID)
	rec := doJSON(t, router, http.MethodPut, target, `{"name":"Espanol","color":"#00ff00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Folder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, folder.ID, updated.ID)
	assert.Equal(t, "Espanol", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)
}

func TestUpdateFolderNotFound(t *testing.T) {
	t.Parallel()

	_, router := newFolderTestServer(t)

	target := fmt.Sprintf("/api/folders/%s", uuid.New())
	rec := doJSON(t, router, http.MethodPut, target, `{"name":"a","color":"b"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFolderUnfilesMembers(t *testing.T) {
	t.Parallel()

	e, router := newFolderTestServer(t)

	folder, err := domain.NewFolder("Spanish", "#ff0000")
	require.NoError(t, err)
	e.Dispatch(engine.AddFolder{Folder: *folder})

	card, err := domain.NewCard("front", "back")
	require.NoError(t, err)
	e.Dispatch(engine.AddCard{Card: *card})
	e.Dispatch(engine.MoveToFolder{CardID: card.ID, FolderID: &folder.ID})

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/folders/%s", folder.ID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	state := e.State()
	assert.Empty(t, state.Folders)
	require.Len(t, state.Cards, 1)
	assert.Nil(t, state.Cards[0].FolderID)
}
