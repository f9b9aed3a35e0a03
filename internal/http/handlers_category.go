package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
)

type categoryRequest struct {
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	MonthlyBudget *float64 `json:"monthlyBudget"`
	Order         int      `json:"order"`
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	categories, err := a.Categories.ListCategories(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := a.Categories.CreateCategory(r.Context(), core.Category{
		UserID:        uid,
		Name:          req.Name,
		Icon:          req.Icon,
		Color:         req.Color,
		MonthlyBudget: req.MonthlyBudget,
		Order:         req.Order,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (a *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	category, err := a.Categories.GetCategory(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := a.Categories.UpdateCategory(r.Context(), core.Category{
		ID:            chi.URLParam(r, "id"),
		UserID:        uid,
		Name:          req.Name,
		Icon:          req.Icon,
		Color:         req.Color,
		MonthlyBudget: req.MonthlyBudget,
		Order:         req.Order,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	confirm := r.URL.Query().Get("confirm") == "true"
	if err := a.Categories.DeleteCategory(r.Context(), uid, chi.URLParam(r, "id"), confirm); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
