package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
	"finboard/internal/services"
)

type taskRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Priority        core.Priority   `json:"priority"`
	Status          core.TaskStatus `json:"status"`
	DueDate         *FlexTime       `json:"dueDate"`
	ReminderEnabled bool            `json:"reminderEnabled"`
	ReminderTime    *FlexTime       `json:"reminderTime"`
}

type taskStatusRequest struct {
	Status core.TaskStatus `json:"status"`
}

type subtaskRequest struct {
	Title string `json:"title"`
}

type subtaskToggleRequest struct {
	Completed bool `json:"completed"`
}

func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tasks, err := a.Tasks.ListTasks(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (a *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req taskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := a.Tasks.CreateTask(r.Context(), core.Task{
		UserID:          uid,
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		DueDate:         req.DueDate.ToTimePtr(),
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    req.ReminderTime.ToTimePtr(),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleGetTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	task, err := a.Tasks.GetTask(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req taskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := a.Tasks.UpdateTask(r.Context(), uid, chi.URLParam(r, "id"), services.TaskUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		DueDate:         req.DueDate.ToTimePtr(),
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    req.ReminderTime.ToTimePtr(),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req taskStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := a.Tasks.SetTaskStatus(r.Context(), uid, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := a.Tasks.DeleteTask(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddSubtask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req subtaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := a.Tasks.AddSubtask(r.Context(), uid, chi.URLParam(r, "id"), req.Title)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req subtaskToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := a.Tasks.ToggleSubtask(r.Context(), uid, chi.URLParam(r, "id"), chi.URLParam(r, "sid"), req.Completed)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
