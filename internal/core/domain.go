package core

import (
	"strings"
	"time"
)

type (
	Priority   string
	TaskStatus string
	Interval   string
)

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"

	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"

	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	MonthlyBudget *float64  `json:"monthlyBudget,omitempty"`
	Order         int       `json:"order"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Expense struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	CategoryID    string     `json:"categoryId"`
	Amount        float64    `json:"amount"`
	Note          string     `json:"note"`
	Date          time.Time  `json:"date"`
	PaymentMethod string     `json:"paymentMethod"`
	Tags          []string   `json:"tags"`
	Recurring     bool       `json:"recurring"`
	Interval      Interval   `json:"recurringInterval,omitempty"`
	LastRecurred  *time.Time `json:"-"`
	ExportedAt    *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type SavingsGoal struct {
	ID            string         `json:"id"`
	UserID        string         `json:"-"`
	Title         string         `json:"title"`
	TargetAmount  float64        `json:"targetAmount"`
	CurrentAmount float64        `json:"currentAmount"`
	IsCompleted   bool           `json:"isCompleted"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	Contributions []Contribution `json:"contributions"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type Contribution struct {
	ID     string    `json:"id"`
	GoalID string    `json:"-"`
	Amount float64   `json:"amount"`
	Note   string    `json:"note"`
	Date   time.Time `json:"date"`
}

type Task struct {
	ID              string     `json:"id"`
	UserID          string     `json:"-"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        Priority   `json:"priority"`
	Status          TaskStatus `json:"status"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	ReminderEnabled bool       `json:"reminderEnabled"`
	ReminderTime    *time.Time `json:"reminderTime,omitempty"`
	ReminderSent    bool       `json:"reminderSent"`
	Subtasks        []Subtask  `json:"subtasks"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type Subtask struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"-"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BazarList is a shopping list with embedded items.
type BazarList struct {
	ID          string      `json:"id"`
	UserID      string      `json:"-"`
	Title       string      `json:"title"`
	IsCompleted bool        `json:"isCompleted"`
	Items       []BazarItem `json:"items"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type BazarItem struct {
	ID        string  `json:"id"`
	ListID    string  `json:"-"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Purchased bool    `json:"purchased"`
}

type Message struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities for sorting, urgent first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the task still demands attention.
func (s TaskStatus) Active() bool {
	return s == StatusTodo || s == StatusInProgress
}

func (i Interval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly:
		return true
	}
	return false
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return BadRequestf("category name is required")
	}
	if len(c.Name) > 100 {
		return BadRequestf("category name too long (max 100 characters)")
	}
	if c.MonthlyBudget != nil && *c.MonthlyBudget < 0 {
		return BadRequestf("monthly budget must not be negative")
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return BadRequestf("amount must be greater than zero")
	}
	if strings.TrimSpace(e.CategoryID) == "" {
		return BadRequestf("category is required")
	}
	if len(e.Note) > 500 {
		return BadRequestf("note too long (max 500 characters)")
	}
	if e.Recurring && !e.Interval.Valid() {
		return BadRequestf("invalid recurring interval %q", e.Interval)
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return BadRequestf("goal title is required")
	}
	if g.TargetAmount <= 0 {
		return BadRequestf("target amount must be greater than zero")
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return BadRequestf("task title is required")
	}
	if !t.Priority.Valid() {
		return BadRequestf("invalid priority %q", t.Priority)
	}
	if !t.Status.Valid() {
		return BadRequestf("invalid status %q", t.Status)
	}
	return nil
}
