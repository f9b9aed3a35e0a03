package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

const categoryColumns = `id, user_id, name, icon, color, monthly_budget, sort_order, is_default, created_at`

func (s *Store) scanCategory(scanner interface{ Scan(...any) error }) (core.Category, error) {
	var c core.Category
	err := scanner.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color,
		&c.MonthlyBudget, &c.Order, &c.IsDefault, &c.CreatedAt)
	return c, err
}

func (s *Store) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Icon, c.Color, c.MonthlyBudget, c.Order, c.IsDefault, c.CreatedAt)
	if isUniqueViolation(err) {
		return core.Conflictf("category %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, userID, id string) (*core.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	c, err := s.scanCategory(row)
	if err != nil {
		return nil, notFound("category", err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY sort_order, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := s.scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListBudgetedCategories returns the user's categories with a budget > 0,
// the candidate set for the budget summary.
func (s *Store) ListBudgetedCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories
		 WHERE user_id = ? AND monthly_budget IS NOT NULL AND monthly_budget > 0
		 ORDER BY sort_order, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgeted categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := s.scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, icon = ?, color = ?, monthly_budget = ?, sort_order = ?
		 WHERE user_id = ? AND id = ?`,
		c.Name, c.Icon, c.Color, c.MonthlyBudget, c.Order, c.UserID, c.ID)
	if isUniqueViolation(err) {
		return core.Conflictf("category %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("category not found")
	}
	return nil
}

// SetCategoryBudget sets or clears (nil) a category's monthly budget.
func (s *Store) SetCategoryBudget(ctx context.Context, userID, id string, budget *float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET monthly_budget = ? WHERE user_id = ? AND id = ?`, budget, userID, id)
	if err != nil {
		return fmt.Errorf("set category budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("category not found")
	}
	return nil
}

// CountCategoryExpenses reports how many expenses reference the category,
// used to gate destructive deletes.
func (s *Store) CountCategoryExpenses(ctx context.Context, userID, categoryID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expenses WHERE user_id = ? AND category_id = ?`, userID, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count category expenses: %w", err)
	}
	return n, nil
}

// DeleteCategory removes a category and all expenses referencing it.
func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE user_id = ? AND category_id = ?`, userID, id); err != nil {
		return fmt.Errorf("delete category expenses: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("category not found")
	}
	return tx.Commit()
}
