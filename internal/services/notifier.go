package services

import (
	"context"
	"log/slog"
	"time"
)

// Notifier is the outbound notification dispatch boundary. Implementations
// must be safe for concurrent use; delivery is best effort.
type Notifier interface {
	SendBudgetAlert(ctx context.Context, userID, categoryName string, percentage float64) error
	SendSavingsMilestone(ctx context.Context, userID, goalTitle string, milestone int) error
}

// dispatch runs send on its own goroutine with a detached timeout context.
// Failures are logged and never reach the request that triggered them.
func dispatch(what string, send func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := send(ctx); err != nil {
			slog.ErrorContext(ctx, "Notification dispatch failed", "notification", what, "error", err)
		}
	}()
}
