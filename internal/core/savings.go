package core

import "time"

// Milestones are the fixed progress percentages at which a savings
// notification fires, evaluated in ascending order.
var Milestones = [4]int{25, 50, 75, 100}

// Progress returns current savings progress as a percent of target,
// unrounded. A non-positive target yields 0.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return g.CurrentAmount / g.TargetAmount * 100
}

// CrossedMilestone returns the lowest milestone m with old < m <= new, or 0
// when no milestone was crossed upward. Exactly one notification fires per
// contribution even when several thresholds are crossed at once.
func CrossedMilestone(oldProgress, newProgress float64) int {
	for _, m := range Milestones {
		if oldProgress < float64(m) && float64(m) <= newProgress {
			return m
		}
	}
	return 0
}

// RecomputeCompletion re-derives the completion flag from the amount/target
// comparison. Called at every mutation entry point; a reduction below target
// un-completes a previously completed goal.
func (g *SavingsGoal) RecomputeCompletion(now time.Time) {
	completed := g.CurrentAmount >= g.TargetAmount
	if completed && !g.IsCompleted {
		t := now
		g.CompletedAt = &t
	}
	if !completed {
		g.CompletedAt = nil
	}
	g.IsCompleted = completed
}
