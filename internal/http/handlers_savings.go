package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
)

type goalRequest struct {
	Title        string    `json:"title"`
	TargetAmount float64   `json:"targetAmount"`
	Deadline     *FlexTime `json:"deadline"`
}

type contributionRequest struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

func (a *API) handleListGoals(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	goals, err := a.Savings.ListGoals(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := a.Savings.CreateGoal(r.Context(), core.SavingsGoal{
		UserID:       uid,
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline.ToTimePtr(),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	goal, err := a.Savings.GetGoal(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := a.Savings.UpdateGoal(r.Context(), uid, chi.URLParam(r, "id"),
		req.Title, req.TargetAmount, req.Deadline.ToTimePtr())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Savings.DeleteGoal(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req contributionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := a.Savings.Contribute(r.Context(), uid, chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) handleRemoveContribution(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	goal, err := a.Savings.RemoveContribution(r.Context(), uid, chi.URLParam(r, "id"), chi.URLParam(r, "cid"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
