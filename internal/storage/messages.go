package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

func (s *Store) CreateMessage(ctx context.Context, m core.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, user_id, sender_id, recipient_id, body, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.SenderID, m.RecipientID, m.Body, m.Read, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListConversation returns messages between the user and a peer, newest
// first.
func (s *Store) ListConversation(ctx context.Context, userID, peerID string, limit int) ([]core.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, sender_id, recipient_id, body, read, created_at FROM messages
		 WHERE user_id = ? AND (sender_id = ? OR recipient_id = ?)
		 ORDER BY created_at DESC LIMIT ?`, userID, peerID, peerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer rows.Close()

	var out []core.Message
	for rows.Next() {
		var m core.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.SenderID, &m.RecipientID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MarkConversationRead marks all messages from a peer as read.
func (s *Store) MarkConversationRead(ctx context.Context, userID, peerID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read = 1 WHERE user_id = ? AND sender_id = ? AND read = 0`,
		userID, peerID)
	if err != nil {
		return fmt.Errorf("mark conversation read: %w", err)
	}
	return nil
}

// CountUnreadMessages returns the user's unread inbound message count.
func (s *Store) CountUnreadMessages(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE user_id = ? AND read = 0 AND sender_id != ?`,
		userID, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}
