package core

import "time"

// ApplyStatus sets a task's status while maintaining the completedAt
// invariant: set iff status is completed.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if status == StatusCompleted {
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
		return
	}
	t.CompletedAt = nil
}

// ApplyCompletion sets a subtask's completion while maintaining its
// completedAt invariant.
func (s *Subtask) ApplyCompletion(completed bool, now time.Time) {
	s.Completed = completed
	if completed {
		if s.CompletedAt == nil {
			ts := now
			s.CompletedAt = &ts
		}
		return
	}
	s.CompletedAt = nil
}

// Overdue reports whether the task is past due and still active. Derived at
// read time, never stored.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || !t.Status.Active() {
		return false
	}
	return t.DueDate.Before(DayWindow(now).Start)
}

// DueToday reports whether the task's due date falls within today's window.
func (t Task) DueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	day := DayWindow(now)
	return !t.DueDate.Before(day.Start) && !t.DueDate.After(day.End)
}
