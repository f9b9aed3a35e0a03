package notify

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the notification queue.
const (
	KindBudgetAlert      = "budget_alert"
	KindSavingsMilestone = "savings_milestone"
)

// Event is one queued notification. The worker consumes events and persists
// a notification for the target user; delivery is at-least-once and the
// producing request never waits on it.
type Event struct {
	Kind         string    `json:"kind"`
	UserID       string    `json:"userId"`
	CategoryName string    `json:"categoryName,omitempty"`
	GoalTitle    string    `json:"goalTitle,omitempty"`
	Percentage   float64   `json:"percentage,omitempty"`
	Milestone    int       `json:"milestone,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
