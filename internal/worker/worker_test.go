package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/notify"
	"finboard/internal/storage"
)

var workerNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

// fakeExporter records appended batches and can be told to fail.
type fakeExporter struct {
	batches [][]core.Expense
	err     error
}

func (f *fakeExporter) Append(_ context.Context, expenses []core.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, expenses)
	return nil
}

func newTestWorker(t *testing.T, exporter ExpenseExporter, batchSize int) (*Worker, *storage.Store, string) {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	w := New(store, exporter, nil, batchSize)
	w.now = func() time.Time { return workerNow }

	userID := uuid.NewString()
	require.NoError(t, store.CreateUser(context.Background(), core.User{
		ID:           userID,
		Email:        userID + "@example.com",
		PasswordHash: "x",
		CreatedAt:    workerNow,
	}))
	return w, store, userID
}

func seedUnexported(t *testing.T, store *storage.Store, userID string, n int) {
	t.Helper()
	ctx := context.Background()
	catID := uuid.NewString()
	require.NoError(t, store.CreateCategory(ctx, core.Category{
		ID: catID, UserID: userID, Name: "Food", CreatedAt: workerNow,
	}))
	for i := 0; i < n; i++ {
		require.NoError(t, store.CreateExpense(ctx, core.Expense{
			ID:         uuid.NewString(),
			UserID:     userID,
			CategoryID: catID,
			Amount:     float64(i + 1),
			Date:       workerNow,
			Tags:       []string{},
			CreatedAt:  workerNow.Add(time.Duration(i) * time.Second),
		}))
	}
}

func TestHandleEventBudgetAlert(t *testing.T) {
	w, store, userID := newTestWorker(t, nil, 10)
	ctx := context.Background()

	err := w.HandleEvent(ctx, &notify.Event{
		Kind:         notify.KindBudgetAlert,
		UserID:       userID,
		CategoryName: "Food",
		Percentage:   85,
		Timestamp:    workerNow,
	})
	require.NoError(t, err)

	notifications, err := store.ListNotifications(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "Budget alert", notifications[0].Title)
	require.Equal(t, "You have used 85% of your Food budget this month", notifications[0].Body)
	require.False(t, notifications[0].Read)
}

func TestHandleEventSavingsMilestone(t *testing.T) {
	w, store, userID := newTestWorker(t, nil, 10)
	ctx := context.Background()

	err := w.HandleEvent(ctx, &notify.Event{
		Kind:      notify.KindSavingsMilestone,
		UserID:    userID,
		GoalTitle: "Trip",
		Milestone: 50,
		Timestamp: workerNow,
	})
	require.NoError(t, err)

	notifications, err := store.ListNotifications(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "Savings milestone", notifications[0].Title)
	require.Equal(t, `Your goal "Trip" reached 50% of its target`, notifications[0].Body)
}

// Unknown kinds are acknowledged without a notification row, so a bad
// producer cannot wedge the queue.
func TestHandleEventUnknownKind(t *testing.T) {
	w, store, userID := newTestWorker(t, nil, 10)
	ctx := context.Background()

	err := w.HandleEvent(ctx, &notify.Event{Kind: "task_reminder", UserID: userID})
	require.NoError(t, err)

	notifications, err := store.ListNotifications(ctx, userID, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestExportBatch(t *testing.T) {
	exporter := &fakeExporter{}
	w, store, userID := newTestWorker(t, exporter, 2)
	ctx := context.Background()
	seedUnexported(t, store, userID, 3)

	// First tick exports one full batch.
	require.NoError(t, w.ExportBatch(ctx))
	require.Len(t, exporter.batches, 1)
	require.Len(t, exporter.batches[0], 2)

	// Second tick drains the rest.
	require.NoError(t, w.ExportBatch(ctx))
	require.Len(t, exporter.batches, 2)
	require.Len(t, exporter.batches[1], 1)

	remaining, err := store.ListUnexportedExpenses(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, remaining)

	// Nothing to do is not an error and does not call the exporter.
	require.NoError(t, w.ExportBatch(ctx))
	require.Len(t, exporter.batches, 2)
}

func TestExportBatchFailureKeepsBatch(t *testing.T) {
	exporter := &fakeExporter{err: errors.New("sheet unavailable")}
	w, store, userID := newTestWorker(t, exporter, 10)
	ctx := context.Background()
	seedUnexported(t, store, userID, 2)

	require.Error(t, w.ExportBatch(ctx))

	// The batch stays queued for the next tick.
	remaining, err := store.ListUnexportedExpenses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	exporter.err = nil
	require.NoError(t, w.ExportBatch(ctx))
	remaining, err = store.ListUnexportedExpenses(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, remaining)
}
