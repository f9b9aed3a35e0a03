package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"finboard/internal/core"
	"finboard/internal/storage"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AnalyticsService computes grouped statistics over a user's expense set.
// Empty result sets are valid, never errors.
type AnalyticsService struct {
	store *storage.Store
	now   func() time.Time
}

func NewAnalyticsService(store *storage.Store) *AnalyticsService {
	return &AnalyticsService{store: store, now: time.Now}
}

// ExpenseStats assembles the monthly/all-time totals, category breakdown,
// daily average and projection in one pass.
func (s *AnalyticsService) ExpenseStats(ctx context.Context, userID string) (*core.ExpenseStats, error) {
	now := s.now()
	thisMonth := core.MonthWindow(now)

	stats := &core.ExpenseStats{CategoryBreakdown: []core.CategoryBreakdownEntry{}}

	var err error
	if stats.ThisMonth, err = s.store.PeriodTotals(ctx, userID, thisMonth); err != nil {
		return nil, fmt.Errorf("this month totals: %w", err)
	}
	if stats.LastMonth, err = s.store.PeriodTotals(ctx, userID, core.PreviousMonthWindow(now)); err != nil {
		return nil, fmt.Errorf("last month totals: %w", err)
	}
	if stats.AllTime, err = s.store.AllTimeTotals(ctx, userID); err != nil {
		return nil, fmt.Errorf("all-time totals: %w", err)
	}

	sums, err := s.store.SumByCategory(ctx, userID, thisMonth)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	catByID := make(map[string]core.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.ID] = cat
	}

	for _, cs := range sums {
		cat := catByID[cs.CategoryID]
		entry := core.CategoryBreakdownEntry{
			CategoryID:   cs.CategoryID,
			CategoryName: cat.Name,
			Icon:         cat.Icon,
			Color:        cat.Color,
			Total:        core.Round2(cs.Total),
			Count:        cs.Count,
		}
		if stats.ThisMonth.Total > 0 {
			entry.Percentage = core.Round2(cs.Total / stats.ThisMonth.Total * 100)
		}
		if cat.MonthlyBudget != nil {
			status := core.NewBudgetStatus(cat, cs.Total)
			entry.BudgetStatus = &status
		}
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, entry)
	}
	sort.SliceStable(stats.CategoryBreakdown, func(i, j int) bool {
		return stats.CategoryBreakdown[i].Total > stats.CategoryBreakdown[j].Total
	})

	// Day 1 of the month divides by 1, never zero.
	dailyAverage := stats.ThisMonth.Total / float64(now.Day())
	stats.DailyAverage = core.Round2(dailyAverage)
	stats.ProjectedMonthlyTotal = core.Round2(dailyAverage * float64(core.DaysInMonth(now)))
	stats.Comparison.PercentageChange = core.PercentageChange(stats.ThisMonth.Total, stats.LastMonth.Total)

	return stats, nil
}

// DailyExpenses groups spend by calendar day over the trailing window. Days
// without expenses are omitted; the dashboard trend series is the zero-filled
// counterpart.
func (s *AnalyticsService) DailyExpenses(ctx context.Context, userID string, days int) ([]core.DailyTotal, error) {
	if days <= 0 {
		days = 30
	}
	totals, err := s.store.DailyTotals(ctx, userID, core.TrailingDaysWindow(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("group daily expenses: %w", err)
	}
	if totals == nil {
		totals = []core.DailyTotal{}
	}
	return totals, nil
}

// ExpensePage is one page of filtered expenses with its envelope.
type ExpensePage struct {
	Expenses   []core.Expense  `json:"expenses"`
	Pagination core.Pagination `json:"pagination"`
}

// PaginatedExpenses lists expenses matching the filter, newest first.
func (s *AnalyticsService) PaginatedExpenses(ctx context.Context, userID string, filter storage.ExpenseFilter, page, limit int) (*ExpensePage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total, err := s.store.CountExpenses(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, userID, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	return &ExpensePage{
		Expenses:   expenses,
		Pagination: core.NewPagination(page, limit, total),
	}, nil
}
