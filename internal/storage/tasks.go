package storage

import (
	"context"
	"fmt"
	"time"

	"finboard/internal/core"
)

const taskColumns = `id, user_id, title, description, priority, status, due_date, completed_at,
	reminder_enabled, reminder_time, reminder_sent, created_at`

func scanTask(scanner interface{ Scan(...any) error }) (core.Task, error) {
	var (
		t            core.Task
		dueDate      = nullTime(nil)
		completedAt  = nullTime(nil)
		reminderTime = nullTime(nil)
	)
	err := scanner.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&dueDate, &completedAt, &t.ReminderEnabled, &reminderTime, &t.ReminderSent, &t.CreatedAt)
	if err != nil {
		return t, err
	}
	t.DueDate = timePtr(dueDate)
	t.CompletedAt = timePtr(completedAt)
	t.ReminderTime = timePtr(reminderTime)
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, t core.Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Priority, t.Status,
		nullTime(t.DueDate), nullTime(t.CompletedAt),
		t.ReminderEnabled, nullTime(t.ReminderTime), t.ReminderSent, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(ctx context.Context, userID, id string) (*core.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound("task", err)
	}

	subtasks, err := s.listSubtasks(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Subtasks = subtasks
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]core.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ?
		 ORDER BY CASE priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END,
		          due_date IS NULL, due_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []core.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTask(ctx context.Context, t core.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, due_date = ?,
		 completed_at = ?, reminder_enabled = ?, reminder_time = ?, reminder_sent = ?
		 WHERE user_id = ? AND id = ?`,
		t.Title, t.Description, t.Priority, t.Status, nullTime(t.DueDate),
		nullTime(t.CompletedAt), t.ReminderEnabled, nullTime(t.ReminderTime), t.ReminderSent,
		t.UserID, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("task not found")
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("task not found")
	}
	return nil
}

func (s *Store) AddSubtask(ctx context.Context, st core.Subtask) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subtasks (id, task_id, title, completed, completed_at) VALUES (?, ?, ?, ?, ?)`,
		st.ID, st.TaskID, st.Title, st.Completed, nullTime(st.CompletedAt))
	if err != nil {
		return fmt.Errorf("insert subtask: %w", err)
	}
	return nil
}

func (s *Store) UpdateSubtask(ctx context.Context, st core.Subtask) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE subtasks SET title = ?, completed = ?, completed_at = ? WHERE task_id = ? AND id = ?`,
		st.Title, st.Completed, nullTime(st.CompletedAt), st.TaskID, st.ID)
	if err != nil {
		return fmt.Errorf("update subtask: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.NotFoundf("subtask not found")
	}
	return nil
}

func (s *Store) listSubtasks(ctx context.Context, taskID string) ([]core.Subtask, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, title, completed, completed_at FROM subtasks WHERE task_id = ?`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()

	var out []core.Subtask
	for rows.Next() {
		var (
			st          core.Subtask
			completedAt = nullTime(nil)
		)
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &st.Completed, &completedAt); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		st.CompletedAt = timePtr(completedAt)
		out = append(out, st)
	}
	return out, rows.Err()
}

// CountTasksDue returns the number of active tasks due within a window.
func (s *Store) CountTasksDue(ctx context.Context, userID string, w core.Window) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE user_id = ? AND status IN ('todo', 'in_progress') AND due_date >= ? AND due_date <= ?`,
		userID, w.Start, w.End).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due tasks: %w", err)
	}
	return n, nil
}

// CountTasksOverdue returns active tasks whose due date is before the given
// instant.
func (s *Store) CountTasksOverdue(ctx context.Context, userID string, before time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE user_id = ? AND status IN ('todo', 'in_progress') AND due_date < ?`,
		userID, before).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return n, nil
}

// CountTasksCompletedSince counts completions at or after the given instant.
func (s *Store) CountTasksCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE user_id = ? AND status = 'completed' AND completed_at >= ?`,
		userID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return n, nil
}

// CountActiveTasks counts tasks in todo or in_progress.
func (s *Store) CountActiveTasks(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status IN ('todo', 'in_progress')`,
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active tasks: %w", err)
	}
	return n, nil
}

// UpcomingTasks returns the n active tasks with the nearest due dates.
func (s *Store) UpcomingTasks(ctx context.Context, userID string, n int) ([]core.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = ? AND status IN ('todo', 'in_progress') AND due_date IS NOT NULL
		 ORDER BY due_date LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("list upcoming tasks: %w", err)
	}
	defer rows.Close()

	var out []core.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
