package storage

import (
	"context"
	"fmt"

	"finboard/internal/core"
)

const goalColumns = `id, user_id, title, target_amount, current_amount, is_completed, completed_at, deadline, created_at`

func scanGoal(scanner interface{ Scan(...any) error }) (core.SavingsGoal, error) {
	var (
		g           core.SavingsGoal
		completedAt = nullTime(nil)
		deadline    = nullTime(nil)
	)
	err := scanner.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&g.IsCompleted, &completedAt, &deadline, &g.CreatedAt)
	if err != nil {
		return g, err
	}
	g.CompletedAt = timePtr(completedAt)
	g.Deadline = timePtr(deadline)
	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g core.SavingsGoal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, g.TargetAmount, g.CurrentAmount, g.IsCompleted,
		nullTime(g.CompletedAt), nullTime(g.Deadline), g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = ? AND id = ?`, userID, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound("savings goal", err)
	}

	contributions, err := s.listContributions(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Contributions = contributions
	return &g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateGoal persists the goal's amounts and completion state in one write.
func (s *Store) UpdateGoal(ctx context.Context, g core.SavingsGoal) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE savings_goals SET title = ?, target_amount = ?, current_amount = ?,
		 is_completed = ?, completed_at = ?, deadline = ?
		 WHERE user_id = ? AND id = ?`,
		g.Title, g.TargetAmount, g.CurrentAmount, g.IsCompleted,
		nullTime(g.CompletedAt), nullTime(g.Deadline), g.UserID, g.ID)
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("savings goal not found")
	}
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM savings_goals WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("savings goal not found")
	}
	return nil
}

func (s *Store) AddContribution(ctx context.Context, c core.Contribution) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_contributions (id, goal_id, amount, note, date) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.GoalID, c.Amount, c.Note, c.Date)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}
	return nil
}

func (s *Store) DeleteContribution(ctx context.Context, goalID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM savings_contributions WHERE goal_id = ? AND id = ?`, goalID, id)
	if err != nil {
		return fmt.Errorf("delete contribution: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("contribution not found")
	}
	return nil
}

func (s *Store) listContributions(ctx context.Context, goalID string) ([]core.Contribution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, goal_id, amount, note, date FROM savings_contributions
		 WHERE goal_id = ? ORDER BY date DESC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		var c core.Contribution
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &c.Note, &c.Date); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RecentContributions flattens contributions across all of the user's goals,
// newest first.
func (s *Store) RecentContributions(ctx context.Context, userID string, n int) ([]core.RecentContribution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.title, c.amount, c.date
		 FROM savings_contributions c JOIN savings_goals g ON g.id = c.goal_id
		 WHERE g.user_id = ? ORDER BY c.date DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("list recent contributions: %w", err)
	}
	defer rows.Close()

	var out []core.RecentContribution
	for rows.Next() {
		var rc core.RecentContribution
		if err := rows.Scan(&rc.GoalID, &rc.GoalTitle, &rc.Amount, &rc.Date); err != nil {
			return nil, fmt.Errorf("scan recent contribution: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// SavingsAggregate sums target and current amounts across the user's
// non-completed goals.
func (s *Store) SavingsAggregate(ctx context.Context, userID string) (core.DashboardSavings, error) {
	var agg core.DashboardSavings
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(target_amount), 0), COALESCE(SUM(current_amount), 0), COUNT(*)
		 FROM savings_goals WHERE user_id = ? AND is_completed = 0`,
		userID).Scan(&agg.TotalTarget, &agg.TotalCurrent, &agg.ActiveGoals)
	if err != nil {
		return agg, fmt.Errorf("aggregate savings: %w", err)
	}
	return agg, nil
}
