package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
)

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	data, err := a.Dashboard.DashboardData(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (a *API) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	summary, err := a.Dashboard.FinancialSummary(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	notifications, err := a.Store.ListNotifications(r.Context(), uid, queryInt(r, "limit", 50))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if notifications == nil {
		notifications = []core.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (a *API) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Store.MarkNotificationRead(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
