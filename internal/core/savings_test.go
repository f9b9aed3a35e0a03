package core

import (
	"testing"
	"time"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		goal SavingsGoal
		want float64
	}{
		{"partial", SavingsGoal{TargetAmount: 1000, CurrentAmount: 400}, 40},
		{"complete", SavingsGoal{TargetAmount: 500, CurrentAmount: 500}, 100},
		{"over target", SavingsGoal{TargetAmount: 100, CurrentAmount: 150}, 150},
		{"zero target", SavingsGoal{TargetAmount: 0, CurrentAmount: 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrossedMilestone(t *testing.T) {
	tests := []struct {
		name string
		old  float64
		new  float64
		want int
	}{
		{"no crossing", 10, 20, 0},
		{"crosses 25", 20, 30, 25},
		{"crosses 50", 40, 60, 50},
		{"jumps two milestones fires lowest", 40, 80, 50},
		{"jumps all milestones fires lowest", 0, 100, 25},
		{"exactly at milestone", 40, 50, 50},
		{"starting at milestone does not refire", 50, 60, 0},
		{"crosses 100", 90, 110, 100},
		{"downward never fires", 60, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrossedMilestone(tt.old, tt.new); got != tt.want {
				t.Errorf("CrossedMilestone(%v, %v) = %d, want %d", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestRecomputeCompletion(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("reaching target completes", func(t *testing.T) {
		g := SavingsGoal{TargetAmount: 100, CurrentAmount: 100}
		g.RecomputeCompletion(now)

		if !g.IsCompleted {
			t.Fatal("expected goal to be completed")
		}
		if g.CompletedAt == nil || !g.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", g.CompletedAt, now)
		}
	})

	t.Run("already completed keeps original timestamp", func(t *testing.T) {
		earlier := now.Add(-24 * time.Hour)
		g := SavingsGoal{TargetAmount: 100, CurrentAmount: 150, IsCompleted: true, CompletedAt: &earlier}
		g.RecomputeCompletion(now)

		if g.CompletedAt == nil || !g.CompletedAt.Equal(earlier) {
			t.Errorf("CompletedAt = %v, want original %v", g.CompletedAt, earlier)
		}
	})

	t.Run("dropping below target un-completes", func(t *testing.T) {
		earlier := now.Add(-24 * time.Hour)
		g := SavingsGoal{TargetAmount: 100, CurrentAmount: 80, IsCompleted: true, CompletedAt: &earlier}
		g.RecomputeCompletion(now)

		if g.IsCompleted {
			t.Fatal("expected goal to be un-completed")
		}
		if g.CompletedAt != nil {
			t.Errorf("CompletedAt = %v, want nil", g.CompletedAt)
		}
	})
}
