package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// ExpenseService handles expense writes. Category references are resolved
// against the owner's categories, so one user cannot file expenses under
// another user's category.
type ExpenseService struct {
	store *storage.Store
	now   func() time.Time
}

func NewExpenseService(store *storage.Store) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (*core.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, e.UserID, e.CategoryID); err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	if e.Date.IsZero() {
		e.Date = e.CreatedAt
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &e, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, userID, id string) (*core.Expense, error) {
	return s.store.GetExpense(ctx, userID, id)
}

// UpdateExpense replaces the mutable fields. The row's export marker is
// cleared by the store so the change reaches the next sheet export.
func (s *ExpenseService) UpdateExpense(ctx context.Context, e core.Expense) (*core.Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, e.UserID, e.CategoryID); err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Date.IsZero() {
		current, err := s.store.GetExpense(ctx, e.UserID, e.ID)
		if err != nil {
			return nil, err
		}
		e.Date = current.Date
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}
	return s.store.GetExpense(ctx, e.UserID, e.ID)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, id string) error {
	return s.store.DeleteExpense(ctx, userID, id)
}

// ProcessRecurring materializes due occurrences of recurring expenses. Each
// due template gets one new expense dated now and has its last-recurred
// marker advanced; failures on one template do not stop the sweep.
func (s *ExpenseService) ProcessRecurring(ctx context.Context) (int, error) {
	templates, err := s.store.ListRecurringExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("list recurring expenses: %w", err)
	}

	now := s.now()
	created := 0
	for _, tpl := range templates {
		checker, err := core.CheckerFor(tpl.Interval)
		if err != nil {
			slog.ErrorContext(ctx, "Skipping recurring expense", "expense_id", tpl.ID, "error", err)
			continue
		}
		var lastRun time.Time
		if tpl.LastRecurred != nil {
			lastRun = *tpl.LastRecurred
		}
		if !checker.IsDue(lastRun, now, tpl.Date) {
			continue
		}

		occurrence := tpl
		occurrence.ID = uuid.NewString()
		occurrence.Date = now
		occurrence.CreatedAt = now
		occurrence.Recurring = false
		occurrence.Interval = ""
		occurrence.LastRecurred = nil
		occurrence.ExportedAt = nil

		if err := s.store.CreateExpense(ctx, occurrence); err != nil {
			slog.ErrorContext(ctx, "Failed to materialize recurring expense", "expense_id", tpl.ID, "error", err)
			continue
		}
		if err := s.store.MarkRecurred(ctx, tpl.ID, now); err != nil {
			slog.ErrorContext(ctx, "Failed to advance recurring expense", "expense_id", tpl.ID, "error", err)
			continue
		}
		created++
	}
	return created, nil
}
