package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type budgetRequest struct {
	MonthlyBudget *float64 `json:"monthlyBudget"`
}

func (a *API) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	summary, err := a.Budgets.BudgetSummary(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	alerts, err := a.Budgets.BudgetAlerts(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (a *API) handleCategoryBudgetStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	status, err := a.Budgets.CategoryBudgetStatus(r.Context(), uid, chi.URLParam(r, "categoryId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (a *API) handleSetCategoryBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	categoryID := chi.URLParam(r, "categoryId")
	if err := a.Budgets.UpdateCategoryBudget(r.Context(), uid, categoryID, req.MonthlyBudget); err != nil {
		respondErr(w, r, err)
		return
	}

	category, err := a.Categories.GetCategory(r.Context(), uid, categoryID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}
