package core

import "math"

// Budget status classification thresholds, in percent of monthly budget.
const (
	BudgetWarningThreshold  = 80
	BudgetExceededThreshold = 100
)

type BudgetState string

const (
	BudgetSafe     BudgetState = "safe"
	BudgetWarning  BudgetState = "warning"
	BudgetExceeded BudgetState = "exceeded"
)

// Fixed status palette, mirrored by every client.
var budgetColors = map[BudgetState]string{
	BudgetSafe:     "#27AE60",
	BudgetWarning:  "#F39C12",
	BudgetExceeded: "#E74C3C",
}

// BudgetStatus is the per-category derived budget read model.
type BudgetStatus struct {
	CategoryID   string      `json:"categoryId"`
	CategoryName string      `json:"categoryName"`
	Icon         string      `json:"icon"`
	Color        string      `json:"color"`
	Budget       float64     `json:"budget"`
	Spent        float64     `json:"spent"`
	Remaining    float64     `json:"remaining"`
	Percentage   float64     `json:"percentage"`
	Status       BudgetState `json:"status"`
	StatusColor  string      `json:"statusColor"`
}

// BudgetSummary aggregates every budgeted category for one user.
type BudgetSummary struct {
	TotalBudget         float64        `json:"totalBudget"`
	TotalSpent          float64        `json:"totalSpent"`
	TotalRemaining      float64        `json:"totalRemaining"`
	OverallPercentage   float64        `json:"overallPercentage"`
	CategoriesOverLimit int            `json:"categoriesOverBudget"`
	Categories          []BudgetStatus `json:"categories"`
}

// Round2 rounds half-up at the second decimal place.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BudgetPercentage computes spend as a percent of budget, rounded to two
// decimals. A zero budget yields 0 rather than a division error.
func BudgetPercentage(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return Round2(spent / budget * 100)
}

// ClassifyBudget maps a percentage onto the safe/warning/exceeded scale.
func ClassifyBudget(percentage float64) BudgetState {
	switch {
	case percentage >= BudgetExceededThreshold:
		return BudgetExceeded
	case percentage >= BudgetWarningThreshold:
		return BudgetWarning
	default:
		return BudgetSafe
	}
}

// StatusColor returns the fixed palette color for a state.
func StatusColor(s BudgetState) string {
	return budgetColors[s]
}

// NewBudgetStatus derives the full per-category status from a category and
// its month-to-date spend.
func NewBudgetStatus(c Category, spent float64) BudgetStatus {
	budget := 0.0
	if c.MonthlyBudget != nil {
		budget = *c.MonthlyBudget
	}
	pct := BudgetPercentage(spent, budget)
	state := ClassifyBudget(pct)
	return BudgetStatus{
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Icon:         c.Icon,
		Color:        c.Color,
		Budget:       budget,
		Spent:        Round2(spent),
		Remaining:    Round2(budget - spent),
		Percentage:   pct,
		Status:       state,
		StatusColor:  StatusColor(state),
	}
}
