package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"finboard/internal/core"
)

type noteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Pinned   bool   `json:"pinned"`
	Archived bool   `json:"archived"`
}

func (req noteRequest) validate() error {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return core.BadRequestf("note needs a title or content")
	}
	return nil
}

func (a *API) handleListNotes(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	includeArchived := r.URL.Query().Get("includeArchived") == "true"
	notes, err := a.Store.ListNotes(r.Context(), uid, includeArchived)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if notes == nil {
		notes = []core.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (a *API) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		respondErr(w, r, err)
		return
	}

	now := time.Now()
	note := core.Note{
		ID:        uuid.NewString(),
		UserID:    uid,
		Title:     req.Title,
		Content:   req.Content,
		Pinned:    req.Pinned,
		Archived:  req.Archived,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Store.CreateNote(r.Context(), note); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (a *API) handleGetNote(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	note, err := a.Store.GetNote(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		respondErr(w, r, err)
		return
	}

	note, err := a.Store.GetNote(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	note.Title = req.Title
	note.Content = req.Content
	note.Pinned = req.Pinned
	note.Archived = req.Archived
	note.UpdatedAt = time.Now()

	if err := a.Store.UpdateNote(r.Context(), *note); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Store.DeleteNote(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
