// Package planner selects the next task and builds time-boxed daily plans
// on top of the ranking engine.
package planner

import (
	"math"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
	"github.com/kairosplan/kairos/internal/ranking"
)

// NoLimit means the caller has no time constraint. A literal zero is a
// caller bug, not a "no time" signal, and is rejected.
const NoLimit = math.MaxInt

// NextTask returns the highest-ranked pending task whose estimate fits
// within availableMinutes, or nil when nothing fits. A nil result is a
// normal outcome, not an error.
func NextTask(tasks []domain.Task, reg *ranking.Registry, now time.Time, availableMinutes int, filter domain.Domain) (*domain.Task, error) {
	if availableMinutes != NoLimit && availableMinutes <= 0 {
		return nil, domain.ErrInvalidBudget
	}

	ranked, err := ranking.Rank(tasks, reg, now, filter)
	if err != nil {
		return nil, err
	}

	for _, rt := range ranked {
		if rt.Task.EstimatedMinutes <= availableMinutes {
			task := rt.Task
			return &task, nil
		}
	}
	return nil, nil
}
