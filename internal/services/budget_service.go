package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// BudgetService derives spend-vs-budget state from categories and expenses.
// All reads are scoped to the current calendar month.
type BudgetService struct {
	store    *storage.Store
	notifier Notifier
	now      func() time.Time
}

func NewBudgetService(store *storage.Store, notifier Notifier) *BudgetService {
	return &BudgetService{store: store, notifier: notifier, now: time.Now}
}

// CategoryBudgetStatus computes one category's budget status for the current
// month. A category without a budget set is NotFound, not a zero status.
//
// Reads at or above the warning threshold re-send the budget alert every
// time: the alert is level-triggered, unlike the edge-triggered savings
// milestones.
func (s *BudgetService) CategoryBudgetStatus(ctx context.Context, userID, categoryID string) (*core.BudgetStatus, error) {
	cat, err := s.store.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if cat.MonthlyBudget == nil {
		return nil, core.NotFoundf("no budget set for category %q", cat.Name)
	}

	spent, err := s.store.SumCategory(ctx, userID, categoryID, core.MonthWindow(s.now()))
	if err != nil {
		return nil, fmt.Errorf("sum category spend: %w", err)
	}

	status := core.NewBudgetStatus(*cat, spent)
	s.maybeAlert(userID, status)
	return &status, nil
}

// BudgetSummary computes the status of every budgeted category in one
// grouped query, sorted most-at-risk first. A user with no budgeted
// categories gets an empty but valid summary.
func (s *BudgetService) BudgetSummary(ctx context.Context, userID string) (*core.BudgetSummary, error) {
	categories, err := s.store.ListBudgetedCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgeted categories: %w", err)
	}

	summary := &core.BudgetSummary{Categories: []core.BudgetStatus{}}
	if len(categories) == 0 {
		return summary, nil
	}

	sums, err := s.store.SumByCategory(ctx, userID, core.MonthWindow(s.now()))
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	spentByCategory := make(map[string]float64, len(sums))
	for _, cs := range sums {
		spentByCategory[cs.CategoryID] = cs.Total
	}

	for _, cat := range categories {
		status := core.NewBudgetStatus(cat, spentByCategory[cat.ID])
		summary.Categories = append(summary.Categories, status)
		summary.TotalBudget += status.Budget
		summary.TotalSpent += status.Spent
		if status.Status == core.BudgetExceeded {
			summary.CategoriesOverLimit++
		}
	}

	sort.SliceStable(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Percentage > summary.Categories[j].Percentage
	})

	summary.TotalBudget = core.Round2(summary.TotalBudget)
	summary.TotalSpent = core.Round2(summary.TotalSpent)
	summary.TotalRemaining = core.Round2(summary.TotalBudget - summary.TotalSpent)
	summary.OverallPercentage = core.BudgetPercentage(summary.TotalSpent, summary.TotalBudget)
	return summary, nil
}

// BudgetAlerts returns only the categories currently in warning or exceeded
// state.
func (s *BudgetService) BudgetAlerts(ctx context.Context, userID string) ([]core.BudgetStatus, error) {
	summary, err := s.BudgetSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts := []core.BudgetStatus{}
	for _, status := range summary.Categories {
		if status.Status != core.BudgetSafe {
			alerts = append(alerts, status)
		}
	}
	return alerts, nil
}

// UpdateCategoryBudget sets or clears (nil) a category's monthly budget.
func (s *BudgetService) UpdateCategoryBudget(ctx context.Context, userID, categoryID string, budget *float64) error {
	if budget != nil && *budget < 0 {
		return core.BadRequestf("budget must not be negative")
	}
	if err := s.store.SetCategoryBudget(ctx, userID, categoryID, budget); err != nil {
		return fmt.Errorf("set category budget: %w", err)
	}
	return nil
}

func (s *BudgetService) maybeAlert(userID string, status core.BudgetStatus) {
	if s.notifier == nil || status.Percentage < core.BudgetWarningThreshold {
		return
	}
	dispatch("budget alert", func(ctx context.Context) error {
		return s.notifier.SendBudgetAlert(ctx, userID, status.CategoryName, status.Percentage)
	})
}
