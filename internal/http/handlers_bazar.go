package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"finboard/internal/core"
)

type bazarListRequest struct {
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

type bazarItemRequest struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Purchased bool    `json:"purchased"`
}

func (a *API) handleListBazarLists(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	lists, err := a.Store.ListBazarLists(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if lists == nil {
		lists = []core.BazarList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (a *API) handleCreateBazarList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req bazarListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondErr(w, r, core.BadRequestf("list title is required"))
		return
	}

	list := core.BazarList{
		ID:        uuid.NewString(),
		UserID:    uid,
		Title:     req.Title,
		Items:     []core.BazarItem{},
		CreatedAt: time.Now(),
	}
	if err := a.Store.CreateBazarList(r.Context(), list); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (a *API) handleGetBazarList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	list, err := a.Store.GetBazarList(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleUpdateBazarList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req bazarListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondErr(w, r, core.BadRequestf("list title is required"))
		return
	}

	list, err := a.Store.GetBazarList(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	list.Title = req.Title
	list.IsCompleted = req.IsCompleted

	if err := a.Store.UpdateBazarList(r.Context(), *list); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleDeleteBazarList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Store.DeleteBazarList(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddBazarItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req bazarItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondErr(w, r, core.BadRequestf("item name is required"))
		return
	}

	list, err := a.Store.GetBazarList(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	item := core.BazarItem{
		ID:        uuid.NewString(),
		ListID:    list.ID,
		Name:      req.Name,
		Quantity:  quantity,
		Purchased: req.Purchased,
	}
	if err := a.Store.AddBazarItem(r.Context(), item); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) handleUpdateBazarItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req bazarItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list, err := a.Store.GetBazarList(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	item := core.BazarItem{
		ID:        chi.URLParam(r, "itemId"),
		ListID:    list.ID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Purchased: req.Purchased,
	}
	if err := a.Store.UpdateBazarItem(r.Context(), item); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleDeleteBazarItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	list, err := a.Store.GetBazarList(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := a.Store.DeleteBazarItem(r.Context(), list.ID, chi.URLParam(r, "itemId")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
