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

func newAnalyticsService(t *testing.T) (*AnalyticsService, *storage.Store, string) {
	t.Helper()
	store := newTestStore(t)
	svc := NewAnalyticsService(store)
	svc.now = func() time.Time { return testNow }
	return svc, store, seedUser(t, store)
}

func TestExpenseStats(t *testing.T) {
	svc, store, userID := newAnalyticsService(t)
	ctx := context.Background()

	food := seedCategory(t, store, userID, "Food", floatPtr(1000))
	transport := seedCategory(t, store, userID, "Transport", nil)

	seedExpense(t, store, userID, food, 100, testNow.AddDate(0, 0, -2))
	seedExpense(t, store, userID, food, 50, testNow.AddDate(0, 0, -1))
	seedExpense(t, store, userID, transport, 300, testNow)
	// Last month only.
	seedExpense(t, store, userID, food, 150, testNow.AddDate(0, -1, 0))

	stats, err := svc.ExpenseStats(ctx, userID)
	require.NoError(t, err)

	require.Equal(t, 450.0, stats.ThisMonth.Total)
	require.Equal(t, 3, stats.ThisMonth.Count)
	require.Equal(t, 150.0, stats.LastMonth.Total)
	require.Equal(t, 600.0, stats.AllTime.Total)
	require.Equal(t, 4, stats.AllTime.Count)

	// Sorted by total, largest first.
	require.Len(t, stats.CategoryBreakdown, 2)
	require.Equal(t, "Transport", stats.CategoryBreakdown[0].CategoryName)
	require.Equal(t, 300.0, stats.CategoryBreakdown[0].Total)
	require.Equal(t, 66.67, stats.CategoryBreakdown[0].Percentage)
	require.Nil(t, stats.CategoryBreakdown[0].BudgetStatus)

	require.Equal(t, "Food", stats.CategoryBreakdown[1].CategoryName)
	require.Equal(t, 150.0, stats.CategoryBreakdown[1].Total)
	require.Equal(t, 33.33, stats.CategoryBreakdown[1].Percentage)
	require.NotNil(t, stats.CategoryBreakdown[1].BudgetStatus)
	require.Equal(t, 15.0, stats.CategoryBreakdown[1].BudgetStatus.Percentage)

	// testNow is Aug 15; August has 31 days.
	require.Equal(t, 30.0, stats.DailyAverage)
	require.Equal(t, 930.0, stats.ProjectedMonthlyTotal)
	require.Equal(t, 200.0, stats.Comparison.PercentageChange)
}

func TestExpenseStatsEmpty(t *testing.T) {
	svc, _, userID := newAnalyticsService(t)

	stats, err := svc.ExpenseStats(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 0.0, stats.ThisMonth.Total)
	require.NotNil(t, stats.CategoryBreakdown)
	require.Empty(t, stats.CategoryBreakdown)
	require.Equal(t, 0.0, stats.DailyAverage)
	require.Equal(t, 0.0, stats.Comparison.PercentageChange)
}

// Days without spend are omitted; only the dashboard series zero-fills.
func TestDailyExpensesSparse(t *testing.T) {
	svc, store, userID := newAnalyticsService(t)
	cat := seedCategory(t, store, userID, "Food", nil)

	seedExpense(t, store, userID, cat, 10, testNow.AddDate(0, 0, -3))
	seedExpense(t, store, userID, cat, 5, testNow.AddDate(0, 0, -3))
	seedExpense(t, store, userID, cat, 20, testNow)
	// Outside the 7-day window.
	seedExpense(t, store, userID, cat, 99, testNow.AddDate(0, 0, -10))

	totals, err := svc.DailyExpenses(context.Background(), userID, 7)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, "2026-08-12", totals[0].Date)
	require.Equal(t, 15.0, totals[0].Total)
	require.Equal(t, 2, totals[0].Count)
	require.Equal(t, "2026-08-15", totals[1].Date)
	require.Equal(t, 20.0, totals[1].Total)
}

func TestDailyExpensesEmpty(t *testing.T) {
	svc, _, userID := newAnalyticsService(t)

	totals, err := svc.DailyExpenses(context.Background(), userID, 0)
	require.NoError(t, err)
	require.NotNil(t, totals)
	require.Empty(t, totals)
}

func TestPaginatedExpenses(t *testing.T) {
	svc, store, userID := newAnalyticsService(t)
	cat := seedCategory(t, store, userID, "Food", nil)

	for i := 0; i < 5; i++ {
		seedExpense(t, store, userID, cat, float64(10+i), testNow.AddDate(0, 0, -i))
	}

	page, err := svc.PaginatedExpenses(context.Background(), userID, storage.ExpenseFilter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Expenses, 2)
	require.Equal(t, core.Pagination{
		Page: 1, Limit: 2, Total: 5, TotalPages: 3, HasNext: true, HasPrev: false,
	}, page.Pagination)
	// Newest first.
	require.Equal(t, 10.0, page.Expenses[0].Amount)

	last, err := svc.PaginatedExpenses(context.Background(), userID, storage.ExpenseFilter{}, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Expenses, 1)
	require.False(t, last.Pagination.HasNext)
	require.True(t, last.Pagination.HasPrev)

	// Out-of-range page is an empty, valid page.
	empty, err := svc.PaginatedExpenses(context.Background(), userID, storage.ExpenseFilter{}, 9, 2)
	require.NoError(t, err)
	require.NotNil(t, empty.Expenses)
	require.Empty(t, empty.Expenses)
}

func TestPaginatedExpensesFilters(t *testing.T) {
	svc, store, userID := newAnalyticsService(t)
	ctx := context.Background()
	food := seedCategory(t, store, userID, "Food", nil)
	transport := seedCategory(t, store, userID, "Transport", nil)

	seedExpense(t, store, userID, food, 12, testNow.AddDate(0, 0, -1))
	seedExpense(t, store, userID, transport, 80, testNow)
	require.NoError(t, store.CreateExpense(ctx, core.Expense{
		ID:         uuid.NewString(),
		UserID:     userID,
		CategoryID: food,
		Amount:     40,
		Date:       testNow,
		Tags:       []string{"groceries", "weekly"},
		CreatedAt:  testNow,
	}))

	byCategory, err := svc.PaginatedExpenses(ctx, userID, storage.ExpenseFilter{CategoryID: food}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byCategory.Expenses, 2)

	byAmount, err := svc.PaginatedExpenses(ctx, userID, storage.ExpenseFilter{MinAmount: floatPtr(30)}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byAmount.Expenses, 2)

	start := testNow.Add(-time.Hour)
	byDate, err := svc.PaginatedExpenses(ctx, userID, storage.ExpenseFilter{StartDate: &start}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byDate.Expenses, 2)

	byTag, err := svc.PaginatedExpenses(ctx, userID, storage.ExpenseFilter{Tags: []string{"groceries"}}, 1, 20)
	require.NoError(t, err)
	require.Len(t, byTag.Expenses, 1)
	require.Equal(t, 40.0, byTag.Expenses[0].Amount)
	require.Equal(t, 1, byTag.Pagination.Total)
}
