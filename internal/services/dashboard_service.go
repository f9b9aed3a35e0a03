package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/core"
	"finboard/internal/storage"
)

const (
	recentActivityLimit = 5
	topCategoriesLimit  = 5
	trendDays           = 7
)

// DashboardService composes the landing-page aggregate from independent
// sub-queries. Every block is derived on demand; nothing is cached.
type DashboardService struct {
	store *storage.Store
	now   func() time.Time
}

func NewDashboardService(store *storage.Store) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// DashboardData fans the independent blocks out across goroutines and fails
// the whole request when any block fails.
func (s *DashboardService) DashboardData(ctx context.Context, userID string) (*core.DashboardData, error) {
	now := s.now()
	data := &core.DashboardData{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		financial, err := s.financialBlock(ctx, userID, now)
		if err != nil {
			return err
		}
		data.Financial = *financial
		return nil
	})
	g.Go(func() error {
		tasks, err := s.tasksBlock(ctx, userID, now)
		if err != nil {
			return err
		}
		data.Tasks = *tasks
		return nil
	})
	g.Go(func() error {
		activity, err := s.recentActivity(ctx, userID)
		if err != nil {
			return err
		}
		data.RecentActivity = *activity
		return nil
	})
	g.Go(func() error {
		stats, err := s.quickStats(ctx, userID)
		if err != nil {
			return err
		}
		data.QuickStats = *stats
		return nil
	})
	g.Go(func() error {
		charts, err := s.charts(ctx, userID, now)
		if err != nil {
			return err
		}
		data.Charts = *charts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// FinancialSummary is the lightweight month-over-month comparison.
func (s *DashboardService) FinancialSummary(ctx context.Context, userID string) (*core.FinancialSummary, error) {
	now := s.now()

	thisMonth, err := s.store.PeriodTotals(ctx, userID, core.MonthWindow(now))
	if err != nil {
		return nil, fmt.Errorf("this month totals: %w", err)
	}
	lastMonth, err := s.store.PeriodTotals(ctx, userID, core.PreviousMonthWindow(now))
	if err != nil {
		return nil, fmt.Errorf("last month totals: %w", err)
	}

	change := core.PercentageChange(thisMonth.Total, lastMonth.Total)
	return &core.FinancialSummary{
		ThisMonth:        core.Round2(thisMonth.Total),
		LastMonth:        core.Round2(lastMonth.Total),
		PercentageChange: change,
		ChangeType:       core.ChangeType(change),
	}, nil
}

func (s *DashboardService) financialBlock(ctx context.Context, userID string, now time.Time) (*core.DashboardFinancial, error) {
	month := core.MonthWindow(now)

	totals, err := s.store.PeriodTotals(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("month totals: %w", err)
	}

	budgeted, err := s.store.ListBudgetedCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgeted categories: %w", err)
	}
	var totalBudget, totalSpent float64
	for _, cat := range budgeted {
		spent, err := s.store.SumCategory(ctx, userID, cat.ID, month)
		if err != nil {
			return nil, fmt.Errorf("sum category spend: %w", err)
		}
		totalBudget += *cat.MonthlyBudget
		totalSpent += spent
	}

	savings, err := s.store.SavingsAggregate(ctx, userID)
	if err != nil {
		return nil, err
	}

	top, err := s.topCategories(ctx, userID, month, totals.Total)
	if err != nil {
		return nil, err
	}

	return &core.DashboardFinancial{
		MonthExpenses: totals,
		TotalBudget:   core.Round2(totalBudget),
		TotalSpent:    core.Round2(totalSpent),
		BudgetStatus:  core.ClassifyBudget(core.BudgetPercentage(totalSpent, totalBudget)),
		Savings:       savings,
		TopCategories: top,
	}, nil
}

func (s *DashboardService) topCategories(ctx context.Context, userID string, w core.Window, monthTotal float64) ([]core.CategorySpending, error) {
	spending, err := s.categorySpending(ctx, userID, w, monthTotal)
	if err != nil {
		return nil, err
	}
	if len(spending) > topCategoriesLimit {
		spending = spending[:topCategoriesLimit]
	}
	return spending, nil
}

func (s *DashboardService) tasksBlock(ctx context.Context, userID string, now time.Time) (*core.DashboardTasks, error) {
	block := &core.DashboardTasks{}

	var err error
	if block.DueToday, err = s.store.CountTasksDue(ctx, userID, core.DayWindow(now)); err != nil {
		return nil, fmt.Errorf("count tasks due today: %w", err)
	}
	if block.Overdue, err = s.store.CountTasksOverdue(ctx, userID, core.DayWindow(now).Start); err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}
	if block.CompletedWeek, err = s.store.CountTasksCompletedSince(ctx, userID, now.AddDate(0, 0, -7)); err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	if block.Active, err = s.store.CountActiveTasks(ctx, userID); err != nil {
		return nil, fmt.Errorf("count active tasks: %w", err)
	}
	return block, nil
}

func (s *DashboardService) recentActivity(ctx context.Context, userID string) (*core.RecentActivity, error) {
	activity := &core.RecentActivity{
		Expenses:      []core.RecentExpense{},
		Contributions: []core.RecentContribution{},
		Tasks:         []core.Task{},
	}

	expenses, err := s.store.RecentExpenses(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	activity.Expenses = append(activity.Expenses, expenses...)

	contributions, err := s.store.RecentContributions(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	activity.Contributions = append(activity.Contributions, contributions...)

	tasks, err := s.store.UpcomingTasks(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	activity.Tasks = append(activity.Tasks, tasks...)

	return activity, nil
}

func (s *DashboardService) quickStats(ctx context.Context, userID string) (*core.QuickStats, error) {
	stats := &core.QuickStats{}

	var err error
	if stats.UnreadMessages, err = s.store.CountUnreadMessages(ctx, userID); err != nil {
		return nil, err
	}
	if stats.ActiveBazar, err = s.store.CountActiveBazarLists(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Notes, err = s.store.CountNotes(ctx, userID); err != nil {
		return nil, err
	}
	return stats, nil
}

// charts builds the trailing-7-day trend, one entry per day oldest first,
// zero-filled for days without expenses, plus the full category split.
func (s *DashboardService) charts(ctx context.Context, userID string, now time.Time) (*core.DashboardCharts, error) {
	window := core.TrailingDaysWindow(now, trendDays)
	totals, err := s.store.DailyTotals(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("group daily expenses: %w", err)
	}
	byDay := make(map[string]core.DailyTotal, len(totals))
	for _, dt := range totals {
		byDay[dt.Date] = dt
	}

	trends := make([]core.DailyTotal, 0, trendDays)
	for day := window.Start; !day.After(window.End); day = day.AddDate(0, 0, 1) {
		key := core.DayKey(day)
		if dt, ok := byDay[key]; ok {
			trends = append(trends, dt)
			continue
		}
		trends = append(trends, core.DailyTotal{Date: key})
	}

	month := core.MonthWindow(now)
	monthTotals, err := s.store.PeriodTotals(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("month totals: %w", err)
	}
	spending, err := s.categorySpending(ctx, userID, month, monthTotals.Total)
	if err != nil {
		return nil, err
	}

	return &core.DashboardCharts{ExpenseTrends: trends, CategorySpending: spending}, nil
}

func (s *DashboardService) categorySpending(ctx context.Context, userID string, w core.Window, monthTotal float64) ([]core.CategorySpending, error) {
	sums, err := s.store.SumByCategory(ctx, userID, w)
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

	out := []core.CategorySpending{}
	for _, cs := range sums {
		cat := catByID[cs.CategoryID]
		entry := core.CategorySpending{
			CategoryID:   cs.CategoryID,
			CategoryName: cat.Name,
			Icon:         cat.Icon,
			Color:        cat.Color,
			Total:        core.Round2(cs.Total),
		}
		if monthTotal > 0 {
			entry.Percentage = core.Round2(cs.Total / monthTotal * 100)
		}
		out = append(out, entry)
	}
	return out, nil
}
