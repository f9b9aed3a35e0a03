package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/storage"
)

// SavingsService manages savings goals and their contributions. Completion
// state is re-derived on every mutation, never trusted from the client.
type SavingsService struct {
	store    *storage.Store
	notifier Notifier
	now      func() time.Time
}

func NewSavingsService(store *storage.Store, notifier Notifier) *SavingsService {
	return &SavingsService{store: store, notifier: notifier, now: time.Now}
}

func (s *SavingsService) CreateGoal(ctx context.Context, g core.SavingsGoal) (*core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.ID = uuid.NewString()
	g.CreatedAt = s.now()
	g.RecomputeCompletion(g.CreatedAt)

	if err := s.store.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("create savings goal: %w", err)
	}
	g.Contributions = []core.Contribution{}
	return &g, nil
}

func (s *SavingsService) GetGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error) {
	return s.store.GetGoal(ctx, userID, id)
}

func (s *SavingsService) ListGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []core.SavingsGoal{}
	}
	return goals, nil
}

// UpdateGoal changes the goal's title, target amount or deadline. Lowering
// the target below the saved amount completes the goal; raising it above
// un-completes it.
func (s *SavingsService) UpdateGoal(ctx context.Context, userID, id string, title string, targetAmount float64, deadline *time.Time) (*core.SavingsGoal, error) {
	goal, err := s.store.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	goal.Title = title
	goal.TargetAmount = targetAmount
	goal.Deadline = deadline
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	goal.RecomputeCompletion(s.now())

	if err := s.store.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("update savings goal: %w", err)
	}
	return goal, nil
}

func (s *SavingsService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.store.DeleteGoal(ctx, userID, id)
}

// Contribute adds a contribution to the goal, advances its saved amount and
// fires at most one milestone notification for the lowest threshold newly
// crossed. The crossing is measured against the progress before this
// contribution, so a milestone fires exactly once per goal.
func (s *SavingsService) Contribute(ctx context.Context, userID, goalID string, amount float64, note string) (*core.SavingsGoal, error) {
	if amount <= 0 {
		return nil, core.BadRequestf("contribution amount must be greater than zero")
	}

	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	oldProgress := goal.Progress()
	now := s.now()
	contribution := core.Contribution{
		ID:     uuid.NewString(),
		GoalID: goal.ID,
		Amount: amount,
		Note:   note,
		Date:   now,
	}
	if err := s.store.AddContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("add contribution: %w", err)
	}

	goal.CurrentAmount += amount
	goal.RecomputeCompletion(now)
	if err := s.store.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("update savings goal: %w", err)
	}
	goal.Contributions = append([]core.Contribution{contribution}, goal.Contributions...)

	if milestone := core.CrossedMilestone(oldProgress, goal.Progress()); milestone > 0 {
		s.announceMilestone(userID, goal.Title, milestone)
	}
	return goal, nil
}

// RemoveContribution deletes a contribution and rolls its amount back out of
// the goal. Dropping below target un-completes the goal; no milestone fires
// on the way down.
func (s *SavingsService) RemoveContribution(ctx context.Context, userID, goalID, contributionID string) (*core.SavingsGoal, error) {
	goal, err := s.store.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	var removed *core.Contribution
	for i := range goal.Contributions {
		if goal.Contributions[i].ID == contributionID {
			removed = &goal.Contributions[i]
			break
		}
	}
	if removed == nil {
		return nil, core.NotFoundf("contribution not found")
	}

	if err := s.store.DeleteContribution(ctx, goalID, contributionID); err != nil {
		return nil, err
	}

	goal.CurrentAmount -= removed.Amount
	if goal.CurrentAmount < 0 {
		goal.CurrentAmount = 0
	}
	goal.RecomputeCompletion(s.now())
	if err := s.store.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("update savings goal: %w", err)
	}

	kept := goal.Contributions[:0]
	for _, c := range goal.Contributions {
		if c.ID != contributionID {
			kept = append(kept, c)
		}
	}
	goal.Contributions = kept
	return goal, nil
}

func (s *SavingsService) announceMilestone(userID, goalTitle string, milestone int) {
	if s.notifier == nil {
		return
	}
	dispatch("savings milestone", func(ctx context.Context) error {
		return s.notifier.SendSavingsMilestone(ctx, userID, goalTitle, milestone)
	})
}
