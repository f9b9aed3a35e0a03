package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/notify"
	"finboard/internal/storage"
)

// Worker runs the background loops: consuming queued notification events,
// exporting expenses to the configured sheet and materializing recurring
// expenses.
type Worker struct {
	store     *storage.Store
	exporter  ExpenseExporter
	recurring RecurringProcessor
	batchSize int
	now       func() time.Time
}

// ExpenseExporter appends expense rows to an external sink.
type ExpenseExporter interface {
	Append(ctx context.Context, expenses []core.Expense) error
}

// RecurringProcessor materializes due recurring expenses.
type RecurringProcessor interface {
	ProcessRecurring(ctx context.Context) (int, error)
}

func New(store *storage.Store, exporter ExpenseExporter, recurring RecurringProcessor, batchSize int) *Worker {
	return &Worker{
		store:     store,
		exporter:  exporter,
		recurring: recurring,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// HandleEvent persists one queued notification event as a notification row
// for its user. Returning an error requeues the event.
func (w *Worker) HandleEvent(ctx context.Context, event *notify.Event) error {
	n := core.Notification{
		ID:        uuid.NewString(),
		UserID:    event.UserID,
		Kind:      event.Kind,
		CreatedAt: w.now(),
	}

	switch event.Kind {
	case notify.KindBudgetAlert:
		n.Title = "Budget alert"
		n.Body = fmt.Sprintf("You have used %.0f%% of your %s budget this month", event.Percentage, event.CategoryName)
	case notify.KindSavingsMilestone:
		n.Title = "Savings milestone"
		n.Body = fmt.Sprintf("Your goal %q reached %d%% of its target", event.GoalTitle, event.Milestone)
	default:
		// Unknown kinds are dropped, not requeued forever.
		slog.WarnContext(ctx, "Dropping notification event of unknown kind", "kind", event.Kind)
		return nil
	}

	if err := w.store.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	slog.InfoContext(ctx, "Persisted notification",
		"kind", n.Kind,
		"user_id", n.UserID)
	return nil
}

// ExportBatch pushes one batch of unexported expenses to the sheet and marks
// them exported. A failed append leaves the whole batch for the next tick.
func (w *Worker) ExportBatch(ctx context.Context) error {
	expenses, err := w.store.ListUnexportedExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unexported expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil
	}

	if err := w.exporter.Append(ctx, expenses); err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}

	now := w.now()
	for _, e := range expenses {
		if err := w.store.MarkExported(ctx, e.ID, now); err != nil {
			return fmt.Errorf("mark expense exported: %w", err)
		}
	}

	slog.InfoContext(ctx, "Exported expenses", "count", len(expenses))
	return nil
}

// RunExportLoop exports on every tick until ctx is cancelled. Export errors
// are logged; the next tick retries.
func (w *Worker) RunExportLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "Expense export failed", "error", err)
			}
		}
	}
}

// RunRecurringLoop materializes due recurring expenses on every tick.
func (w *Worker) RunRecurringLoop(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			created, err := w.recurring.ProcessRecurring(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "Recurring expense sweep failed", "error", err)
				continue
			}
			if created > 0 {
				slog.InfoContext(ctx, "Materialized recurring expenses", "count", created)
			}
		}
	}
}
