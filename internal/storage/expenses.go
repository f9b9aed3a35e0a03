package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"finboard/internal/core"
)

const expenseColumns = `id, user_id, category_id, amount, note, date, payment_method, tags,
	recurring, recurring_interval, last_recurred, exported_at, created_at`

func scanExpense(scanner interface{ Scan(...any) error }) (core.Expense, error) {
	var (
		e            core.Expense
		tags         string
		interval     sql.NullString
		lastRecurred sql.NullTime
		exportedAt   sql.NullTime
	)
	err := scanner.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Note, &e.Date,
		&e.PaymentMethod, &tags, &e.Recurring, &interval, &lastRecurred, &exportedAt, &e.CreatedAt)
	if err != nil {
		return e, err
	}
	e.Tags = decodeTags(tags)
	e.Interval = core.Interval(interval.String)
	e.LastRecurred = timePtr(lastRecurred)
	e.ExportedAt = timePtr(exportedAt)
	return e, nil
}

func (s *Store) CreateExpense(ctx context.Context, e core.Expense) error {
	var interval *string
	if e.Recurring {
		v := string(e.Interval)
		interval = &v
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, category_id, amount, note, date, payment_method, tags,
		 recurring, recurring_interval, last_recurred, exported_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.CategoryID, e.Amount, e.Note, e.Date, e.PaymentMethod, encodeTags(e.Tags),
		e.Recurring, interval, nullTime(e.LastRecurred), nullTime(e.ExportedAt), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id string) (*core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	e, err := scanExpense(row)
	if err != nil {
		return nil, notFound("expense", err)
	}
	return &e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e core.Expense) error {
	var interval *string
	if e.Recurring {
		v := string(e.Interval)
		interval = &v
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category_id = ?, amount = ?, note = ?, date = ?, payment_method = ?,
		 tags = ?, recurring = ?, recurring_interval = ?, exported_at = NULL
		 WHERE user_id = ? AND id = ?`,
		e.CategoryID, e.Amount, e.Note, e.Date, e.PaymentMethod, encodeTags(e.Tags),
		e.Recurring, interval, e.UserID, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("expense not found")
	}
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("expense not found")
	}
	return nil
}

// SumCategory returns the expense total for one category within a window,
// inclusive of both boundary instants.
func (s *Store) SumCategory(ctx context.Context, userID, categoryID string, w core.Window) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE user_id = ? AND category_id = ? AND date >= ? AND date <= ?`,
		userID, categoryID, w.Start, w.End).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum category expenses: %w", err)
	}
	return total, nil
}

// CategorySum is one row of a grouped category aggregation.
type CategorySum struct {
	CategoryID string
	Total      float64
	Count      int
}

// SumByCategory groups expense totals by category over a window in a single
// query, so summary reads stay one round trip regardless of category count.
func (s *Store) SumByCategory(ctx context.Context, userID string, w core.Window) ([]CategorySum, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id, SUM(amount), COUNT(*) FROM expenses
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 GROUP BY category_id ORDER BY SUM(amount) DESC`,
		userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	var out []CategorySum
	for rows.Next() {
		var cs CategorySum
		if err := rows.Scan(&cs.CategoryID, &cs.Total, &cs.Count); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// PeriodTotals returns the sum and count of expenses within a window.
func (s *Store) PeriodTotals(ctx context.Context, userID string, w core.Window) (core.PeriodTotals, error) {
	var pt core.PeriodTotals
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM expenses
		 WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, w.Start, w.End).Scan(&pt.Total, &pt.Count)
	if err != nil {
		return pt, fmt.Errorf("sum period expenses: %w", err)
	}
	return pt, nil
}

// AllTimeTotals returns the sum and count over the user's full expense set.
func (s *Store) AllTimeTotals(ctx context.Context, userID string) (core.PeriodTotals, error) {
	var pt core.PeriodTotals
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM expenses WHERE user_id = ?`,
		userID).Scan(&pt.Total, &pt.Count)
	if err != nil {
		return pt, fmt.Errorf("sum all-time expenses: %w", err)
	}
	return pt, nil
}

// DailyTotals groups expense amounts by calendar day within a window. Days
// with no expenses produce no row; zero-filling is the caller's concern.
// Dates are stored as UTC text with a YYYY-MM-DD prefix, so the day bucket is
// a plain prefix slice rather than strftime, which cannot parse the driver's
// time format.
func (s *Store) DailyTotals(ctx context.Context, userID string, w core.Window) ([]core.DailyTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT substr(date, 1, 10), SUM(amount), COUNT(*) FROM expenses
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 GROUP BY substr(date, 1, 10) ORDER BY substr(date, 1, 10)`,
		userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("group daily expenses: %w", err)
	}
	defer rows.Close()

	var out []core.DailyTotal
	for rows.Next() {
		var dt core.DailyTotal
		if err := rows.Scan(&dt.Date, &dt.Total, &dt.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, dt)
	}
	return out, rows.Err()
}

// ExpenseFilter composes optional filter dimensions with AND semantics. Tag
// membership matches ANY of the provided tags.
type ExpenseFilter struct {
	CategoryID    string
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *float64
	MaxAmount     *float64
	PaymentMethod string
	Tags          []string
}

func (f ExpenseFilter) where(userID string) (string, []any) {
	clauses := []string{"user_id = ?"}
	args := []any{userID}

	if f.CategoryID != "" {
		clauses = append(clauses, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.StartDate != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, *f.EndDate)
	}
	if f.MinAmount != nil {
		clauses = append(clauses, "amount >= ?")
		args = append(args, *f.MinAmount)
	}
	if f.MaxAmount != nil {
		clauses = append(clauses, "amount <= ?")
		args = append(args, *f.MaxAmount)
	}
	if f.PaymentMethod != "" {
		clauses = append(clauses, "payment_method = ?")
		args = append(args, f.PaymentMethod)
	}
	if len(f.Tags) > 0 {
		placeholders := strings.Repeat("?,", len(f.Tags))
		clauses = append(clauses,
			"EXISTS (SELECT 1 FROM json_each(expenses.tags) WHERE json_each.value IN ("+placeholders[:len(placeholders)-1]+"))")
		for _, tag := range f.Tags {
			args = append(args, tag)
		}
	}
	return strings.Join(clauses, " AND "), args
}

// CountExpenses returns the number of expenses matching a filter.
func (s *Store) CountExpenses(ctx context.Context, userID string, f ExpenseFilter) (int, error) {
	where, args := f.where(userID)
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// ListExpenses returns one page of filtered expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context, userID string, f ExpenseFilter, limit, offset int) ([]core.Expense, error) {
	where, args := f.where(userID)
	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE `+where+` ORDER BY date DESC LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentExpenses returns the newest n expenses joined with their category
// metadata.
func (s *Store) RecentExpenses(ctx context.Context, userID string, n int) ([]core.RecentExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.user_id, e.category_id, e.amount, e.note, e.date, e.payment_method, e.tags,
		        e.recurring, e.recurring_interval, e.last_recurred, e.exported_at, e.created_at,
		        c.name, c.icon, c.color
		 FROM expenses e JOIN categories c ON c.id = e.category_id
		 WHERE e.user_id = ? ORDER BY e.date DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("list recent expenses: %w", err)
	}
	defer rows.Close()

	var out []core.RecentExpense
	for rows.Next() {
		var (
			re           core.RecentExpense
			tags         string
			interval     sql.NullString
			lastRecurred sql.NullTime
			exportedAt   sql.NullTime
		)
		err := rows.Scan(&re.ID, &re.UserID, &re.CategoryID, &re.Amount, &re.Note, &re.Date,
			&re.PaymentMethod, &tags, &re.Recurring, &interval, &lastRecurred, &exportedAt,
			&re.CreatedAt, &re.CategoryName, &re.Icon, &re.Color)
		if err != nil {
			return nil, fmt.Errorf("scan recent expense: %w", err)
		}
		re.Tags = decodeTags(tags)
		re.Interval = core.Interval(interval.String)
		re.LastRecurred = timePtr(lastRecurred)
		re.ExportedAt = timePtr(exportedAt)
		out = append(out, re)
	}
	return out, rows.Err()
}

// ListUnexportedExpenses returns expenses not yet pushed to the export sheet.
func (s *Store) ListUnexportedExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE exported_at IS NULL ORDER BY created_at LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list unexported expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkExported records a successful export for an expense.
func (s *Store) MarkExported(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET exported_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("mark expense exported: %w", err)
	}
	return nil
}

// ListRecurringExpenses returns all recurring expense templates across users.
func (s *Store) ListRecurringExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE recurring = 1 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list recurring expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkRecurred records when a recurring template last materialized.
func (s *Store) MarkRecurred(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET last_recurred = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("mark expense recurred: %w", err)
	}
	return nil
}
