package core

import "time"

// Dashboard read models. Assembled on demand from the entity stores; nothing
// here is ever persisted.

type DashboardFinancial struct {
	MonthExpenses PeriodTotals       `json:"monthExpenses"`
	TotalBudget   float64            `json:"totalBudget"`
	TotalSpent    float64            `json:"totalSpent"`
	BudgetStatus  BudgetState        `json:"budgetStatus"`
	Savings       DashboardSavings   `json:"savings"`
	TopCategories []CategorySpending `json:"topCategories"`
}

type DashboardSavings struct {
	TotalTarget  float64 `json:"totalTarget"`
	TotalCurrent float64 `json:"totalCurrent"`
	ActiveGoals  int     `json:"activeGoals"`
}

type CategorySpending struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Icon         string  `json:"icon"`
	Color        string  `json:"color"`
	Total        float64 `json:"total"`
	Percentage   float64 `json:"percentage"`
}

type DashboardTasks struct {
	DueToday      int `json:"dueToday"`
	Overdue       int `json:"overdue"`
	CompletedWeek int `json:"completedThisWeek"`
	Active        int `json:"active"`
}

type RecentExpense struct {
	Expense
	CategoryName string `json:"categoryName"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
}

type RecentContribution struct {
	GoalID    string    `json:"goalId"`
	GoalTitle string    `json:"goalTitle"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

type RecentActivity struct {
	Expenses      []RecentExpense      `json:"expenses"`
	Contributions []RecentContribution `json:"contributions"`
	Tasks         []Task               `json:"tasks"`
}

type QuickStats struct {
	UnreadMessages int `json:"unreadMessages"`
	ActiveBazar    int `json:"activeBazarLists"`
	Notes          int `json:"notes"`
}

type DashboardCharts struct {
	ExpenseTrends    []DailyTotal       `json:"expenseTrends"`
	CategorySpending []CategorySpending `json:"categorySpending"`
}

type DashboardData struct {
	Financial      DashboardFinancial `json:"financial"`
	Tasks          DashboardTasks     `json:"tasks"`
	RecentActivity RecentActivity     `json:"recentActivity"`
	QuickStats     QuickStats         `json:"quickStats"`
	Charts         DashboardCharts    `json:"charts"`
}

// FinancialSummary is the lightweight month-over-month variant.
type FinancialSummary struct {
	ThisMonth        float64 `json:"thisMonth"`
	LastMonth        float64 `json:"lastMonth"`
	PercentageChange float64 `json:"percentageChange"`
	ChangeType       string  `json:"changeType"`
}
