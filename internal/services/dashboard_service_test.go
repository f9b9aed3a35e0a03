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

func newDashboardService(t *testing.T) (*DashboardService, *storage.Store, string) {
	t.Helper()
	store := newTestStore(t)
	svc := NewDashboardService(store)
	svc.now = func() time.Time { return testNow }
	return svc, store, seedUser(t, store)
}

func seedTask(t *testing.T, store *storage.Store, userID string, status core.TaskStatus, due *time.Time) string {
	t.Helper()
	id := uuid.NewString()
	task := core.Task{
		ID:        id,
		UserID:    userID,
		Title:     "task " + id[:8],
		Priority:  core.PriorityMedium,
		Status:    status,
		DueDate:   due,
		CreatedAt: testNow,
	}
	task.ApplyStatus(status, testNow)
	require.NoError(t, store.CreateTask(context.Background(), task))
	return id
}

func TestDashboardData(t *testing.T) {
	svc, store, userID := newDashboardService(t)
	ctx := context.Background()

	food := seedCategory(t, store, userID, "Food", floatPtr(1000))
	transport := seedCategory(t, store, userID, "Transport", nil)
	seedExpense(t, store, userID, food, 400, testNow.AddDate(0, 0, -2))
	seedExpense(t, store, userID, transport, 100, testNow)

	require.NoError(t, store.CreateGoal(ctx, core.SavingsGoal{
		ID: uuid.NewString(), UserID: userID, Title: "Trip",
		TargetAmount: 2000, CurrentAmount: 500, CreatedAt: testNow,
	}))

	dueToday := testNow.Add(2 * time.Hour)
	overdue := testNow.AddDate(0, 0, -3)
	seedTask(t, store, userID, core.StatusTodo, &dueToday)
	seedTask(t, store, userID, core.StatusInProgress, &overdue)
	seedTask(t, store, userID, core.StatusCompleted, nil)

	require.NoError(t, store.CreateNote(ctx, core.Note{
		ID: uuid.NewString(), UserID: userID, Title: "Note",
		CreatedAt: testNow, UpdatedAt: testNow,
	}))
	require.NoError(t, store.CreateBazarList(ctx, core.BazarList{
		ID: uuid.NewString(), UserID: userID, Title: "Weekend", CreatedAt: testNow,
	}))

	data, err := svc.DashboardData(ctx, userID)
	require.NoError(t, err)

	require.Equal(t, 500.0, data.Financial.MonthExpenses.Total)
	require.Equal(t, 1000.0, data.Financial.TotalBudget)
	require.Equal(t, 400.0, data.Financial.TotalSpent)
	require.Equal(t, core.BudgetSafe, data.Financial.BudgetStatus)
	require.Equal(t, 2000.0, data.Financial.Savings.TotalTarget)
	require.Equal(t, 500.0, data.Financial.Savings.TotalCurrent)
	require.Equal(t, 1, data.Financial.Savings.ActiveGoals)
	require.Len(t, data.Financial.TopCategories, 2)
	require.Equal(t, "Food", data.Financial.TopCategories[0].CategoryName)

	require.Equal(t, 1, data.Tasks.DueToday)
	require.Equal(t, 1, data.Tasks.Overdue)
	require.Equal(t, 1, data.Tasks.CompletedWeek)
	require.Equal(t, 2, data.Tasks.Active)

	require.Len(t, data.RecentActivity.Expenses, 2)
	require.NotNil(t, data.RecentActivity.Contributions)
	require.NotNil(t, data.RecentActivity.Tasks)

	require.Equal(t, 1, data.QuickStats.ActiveBazar)
	require.Equal(t, 1, data.QuickStats.Notes)
	require.Equal(t, 0, data.QuickStats.UnreadMessages)
}

// The trend series always has exactly one entry per trailing day, ascending,
// with zero-value buckets for days without spend.
func TestDashboardExpenseTrendsZeroFilled(t *testing.T) {
	svc, store, userID := newDashboardService(t)
	cat := seedCategory(t, store, userID, "Food", nil)

	seedExpense(t, store, userID, cat, 30, testNow.AddDate(0, 0, -6))
	seedExpense(t, store, userID, cat, 20, testNow)

	data, err := svc.DashboardData(context.Background(), userID)
	require.NoError(t, err)

	trends := data.Charts.ExpenseTrends
	require.Len(t, trends, 7)
	require.Equal(t, "2026-08-09", trends[0].Date)
	require.Equal(t, 30.0, trends[0].Total)
	for i := 1; i < 6; i++ {
		require.Equal(t, 0.0, trends[i].Total, "day %s", trends[i].Date)
		require.Equal(t, 0, trends[i].Count)
	}
	require.Equal(t, "2026-08-15", trends[6].Date)
	require.Equal(t, 20.0, trends[6].Total)
}

func TestDashboardDataEmpty(t *testing.T) {
	svc, _, userID := newDashboardService(t)

	data, err := svc.DashboardData(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, core.BudgetSafe, data.Financial.BudgetStatus)
	require.NotNil(t, data.Financial.TopCategories)
	require.Empty(t, data.Financial.TopCategories)
	require.Len(t, data.Charts.ExpenseTrends, 7)
	require.NotNil(t, data.Charts.CategorySpending)
}

func TestFinancialSummary(t *testing.T) {
	svc, store, userID := newDashboardService(t)
	cat := seedCategory(t, store, userID, "Food", nil)

	seedExpense(t, store, userID, cat, 300, testNow)
	seedExpense(t, store, userID, cat, 200, testNow.AddDate(0, -1, 0))

	summary, err := svc.FinancialSummary(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 300.0, summary.ThisMonth)
	require.Equal(t, 200.0, summary.LastMonth)
	require.Equal(t, 50.0, summary.PercentageChange)
	require.Equal(t, "increase", summary.ChangeType)
}
