package planner

import (
	"time"

	"github.com/kairosplan/kairos/internal/domain"
	"github.com/kairosplan/kairos/internal/ranking"
)

// BuildPlan fills a working-minutes budget from the ranked task list in
// a single forward pass: each candidate is included if it fits the
// remaining budget and skipped otherwise. This is first-fit-by-score —
// it favors high-value tasks over perfect bin utilization and never
// backtracks, so a small remainder can stay unfilled. A non-empty focus
// restricts the plan to that domain.
func BuildPlan(tasks []domain.Task, reg *ranking.Registry, now time.Time, workingMinutes int, focus domain.Domain) (*domain.DailyPlan, error) {
	if workingMinutes <= 0 {
		return nil, domain.ErrInvalidBudget
	}

	ranked, err := ranking.Rank(tasks, reg, now, focus)
	if err != nil {
		return nil, err
	}

	plan := &domain.DailyPlan{
		RemainingMinutes: workingMinutes,
		Tasks:            []domain.Task{},
	}
	for _, rt := range ranked {
		if rt.Task.EstimatedMinutes > plan.RemainingMinutes {
			continue
		}
		plan.Tasks = append(plan.Tasks, rt.Task)
		plan.ScheduledMinutes += rt.Task.EstimatedMinutes
		plan.RemainingMinutes -= rt.Task.EstimatedMinutes
	}

	return plan, nil
}
