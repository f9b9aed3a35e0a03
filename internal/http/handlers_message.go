package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type sendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

func (a *API) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := a.Messages.Send(r.Context(), uid, req.RecipientID, req.Body)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (a *API) handleConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	messages, err := a.Messages.Conversation(r.Context(), uid, chi.URLParam(r, "peerId"), queryInt(r, "limit", 50))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (a *API) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	count, err := a.Messages.UnreadCount(r.Context(), uid)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
