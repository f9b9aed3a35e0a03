package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
	"finboard/internal/storage"
)

type expenseRequest struct {
	CategoryID    string        `json:"categoryId"`
	Amount        float64       `json:"amount"`
	Note          string        `json:"note"`
	Date          *FlexTime     `json:"date"`
	PaymentMethod string        `json:"paymentMethod"`
	Tags          []string      `json:"tags"`
	Recurring     bool          `json:"recurring"`
	Interval      core.Interval `json:"recurringInterval"`
}

func (req expenseRequest) toExpense(userID, id string) core.Expense {
	e := core.Expense{
		ID:            id,
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		Tags:          req.Tags,
		Recurring:     req.Recurring,
		Interval:      req.Interval,
	}
	if t := req.Date.ToTimePtr(); t != nil {
		e.Date = *t
	}
	return e
}

func expenseFilterFromQuery(r *http.Request) storage.ExpenseFilter {
	f := storage.ExpenseFilter{
		CategoryID:    r.URL.Query().Get("categoryId"),
		PaymentMethod: r.URL.Query().Get("paymentMethod"),
		StartDate:     queryTime(r, "startDate"),
		EndDate:       queryEndTime(r, "endDate"),
		MinAmount:     queryFloat(r, "minAmount"),
		MaxAmount:     queryFloat(r, "maxAmount"),
	}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f
}

func (a *API) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	page, err := a.Analytics.PaginatedExpenses(r.Context(), uid, expenseFilterFromQuery(r),
		queryInt(r, "page", 1), queryInt(r, "limit", 0))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := a.Expenses.CreateExpense(r.Context(), req.toExpense(uid, ""))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (a *API) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	expense, err := a.Expenses.GetExpense(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (a *API) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := a.Expenses.UpdateExpense(r.Context(), req.toExpense(uid, chi.URLParam(r, "id")))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

func (a *API) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Expenses.DeleteExpense(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleExpenseStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	stats, err := a.Analytics.ExpenseStats(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *API) handleDailyExpenses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	totals, err := a.Analytics.DailyExpenses(r.Context(), uid, queryInt(r, "days", 30))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
