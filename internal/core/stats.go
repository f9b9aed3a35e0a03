package core

// PeriodTotals is a sum/count pair over one window.
type PeriodTotals struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CategoryBreakdownEntry is one category's share of the current month.
type CategoryBreakdownEntry struct {
	CategoryID   string        `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	Icon         string        `json:"icon"`
	Color        string        `json:"color"`
	Total        float64       `json:"total"`
	Count        int           `json:"count"`
	Percentage   float64       `json:"percentage"`
	BudgetStatus *BudgetStatus `json:"budgetStatus"`
}

// Comparison is the month-over-month delta block.
type Comparison struct {
	PercentageChange float64 `json:"percentageChange"`
}

// ExpenseStats is the multi-facet analytics read model.
type ExpenseStats struct {
	ThisMonth             PeriodTotals             `json:"thisMonth"`
	LastMonth             PeriodTotals             `json:"lastMonth"`
	AllTime               PeriodTotals             `json:"allTime"`
	CategoryBreakdown     []CategoryBreakdownEntry `json:"categoryBreakdown"`
	DailyAverage          float64                  `json:"dailyAverage"`
	ProjectedMonthlyTotal float64                  `json:"projectedMonthlyTotal"`
	Comparison            Comparison               `json:"comparison"`
}

// DailyTotal is one day's spend bucket, keyed YYYY-MM-DD.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// PercentageChange computes the month-over-month delta in percent, defined
// as 0 when the previous total is 0.
func PercentageChange(thisMonth, lastMonth float64) float64 {
	if lastMonth == 0 {
		return 0
	}
	return Round2((thisMonth - lastMonth) / lastMonth * 100)
}

// ChangeType labels the sign of a month-over-month delta.
func ChangeType(change float64) string {
	switch {
	case change > 0:
		return "increase"
	case change < 0:
		return "decrease"
	default:
		return "same"
	}
}

// Pagination is the standard list envelope.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives the envelope from a page request and total row count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
