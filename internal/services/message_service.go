package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// Pusher delivers real-time frames to a user's open connections. Delivery is
// best effort; the message row is the source of truth.
type Pusher interface {
	Push(userID string, frameType string, payload any)
}

// MessageService stores chat messages and pushes them to the recipient's
// live connections.
type MessageService struct {
	store  *storage.Store
	pusher Pusher
	now    func() time.Time
}

func NewMessageService(store *storage.Store, pusher Pusher) *MessageService {
	return &MessageService{store: store, pusher: pusher, now: time.Now}
}

// Send persists the message under both participants so each side reads the
// conversation from their own rows, then pushes it to the recipient.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, body string) (*core.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, core.BadRequestf("message body is required")
	}
	if recipientID == "" || recipientID == senderID {
		return nil, core.BadRequestf("invalid recipient")
	}
	if _, err := s.store.GetUser(ctx, recipientID); err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}

	now := s.now()
	msg := core.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   now,
	}

	for _, owner := range []string{senderID, recipientID} {
		row := msg
		row.UserID = owner
		// The sender's own copy starts read.
		row.Read = owner == senderID
		if owner == recipientID {
			row.ID = uuid.NewString()
		}
		if err := s.store.CreateMessage(ctx, row); err != nil {
			return nil, fmt.Errorf("store message: %w", err)
		}
	}

	if s.pusher != nil {
		s.pusher.Push(recipientID, "message", msg)
	}
	return &msg, nil
}

// Conversation lists the newest messages between the user and a peer and
// marks the inbound side read.
func (s *MessageService) Conversation(ctx context.Context, userID, peerID string, limit int) ([]core.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	messages, err := s.store.ListConversation(ctx, userID, peerID, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []core.Message{}
	}
	if err := s.store.MarkConversationRead(ctx, userID, peerID); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadMessages(ctx, userID)
}
