package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// testNow is the fixed clock used across service tests.
var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store *storage.Store) string {
	t.Helper()
	id := uuid.NewString()
	err := store.CreateUser(context.Background(), core.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "Test User",
		PasswordHash: "x",
		CreatedAt:    testNow,
	})
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, store *storage.Store, userID, name string, budget *float64) string {
	t.Helper()
	id := uuid.NewString()
	err := store.CreateCategory(context.Background(), core.Category{
		ID:            id,
		UserID:        userID,
		Name:          name,
		Icon:          "tag",
		Color:         "#3498DB",
		MonthlyBudget: budget,
		CreatedAt:     testNow,
	})
	require.NoError(t, err)
	return id
}

func seedExpense(t *testing.T, store *storage.Store, userID, categoryID string, amount float64, date time.Time) string {
	t.Helper()
	id := uuid.NewString()
	err := store.CreateExpense(context.Background(), core.Expense{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Date:       date,
		Tags:       []string{},
		CreatedAt:  date,
	})
	require.NoError(t, err)
	return id
}

func floatPtr(v float64) *float64 { return &v }

// recordingNotifier captures dispatched notifications on buffered channels
// so tests can wait for the detached goroutines.
type recordingNotifier struct {
	budgetAlerts chan string
	milestones   chan int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		budgetAlerts: make(chan string, 8),
		milestones:   make(chan int, 8),
	}
}

func (n *recordingNotifier) SendBudgetAlert(_ context.Context, _, categoryName string, _ float64) error {
	n.budgetAlerts <- categoryName
	return nil
}

func (n *recordingNotifier) SendSavingsMilestone(_ context.Context, _, _ string, milestone int) error {
	n.milestones <- milestone
	return nil
}

func (n *recordingNotifier) waitBudgetAlert(t *testing.T) string {
	t.Helper()
	select {
	case name := <-n.budgetAlerts:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for budget alert")
		return ""
	}
}

func (n *recordingNotifier) waitMilestone(t *testing.T) int {
	t.Helper()
	select {
	case m := <-n.milestones:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for savings milestone")
		return 0
	}
}

func (n *recordingNotifier) assertNoMilestone(t *testing.T) {
	t.Helper()
	select {
	case m := <-n.milestones:
		t.Fatalf("unexpected milestone notification: %d", m)
	case <-time.After(100 * time.Millisecond):
	}
}
