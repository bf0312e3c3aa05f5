package ranking

import (
	"math"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
)

const (
	// baselineUrgency is the urgency of a task with no deadline.
	baselineUrgency = 0.5
	// maxUrgency is assigned to overdue and due-today tasks. It sits
	// strictly above anything 1/(days+1) or the baseline can produce,
	// so an overdue task always outranks a non-overdue one of equal
	// domain weight.
	maxUrgency = 10.0
)

// Score computes the priority score for a pending task at the given
// reference time: domain weight times deadline urgency. It is pure and
// deterministic; identical inputs always produce the identical score.
func Score(task domain.Task, reg *Registry, now time.Time) (float64, error) {
	if task.Status != domain.StatusPending {
		return 0, domain.ErrTaskNotPending
	}
	if task.EstimatedMinutes <= 0 {
		return 0, domain.ErrInvalidDuration
	}

	weight, err := reg.WeightOf(task.Domain)
	if err != nil {
		return 0, err
	}

	return weight * urgency(task.Deadline, now), nil
}

// urgency maps a deadline to a multiplier. No deadline means "some day"
// at the baseline; otherwise the whole-day distance decides: zero or
// negative days left (due today or overdue) pins the maximum, and each
// further day out decays as 1/(days+1).
func urgency(deadline *time.Time, now time.Time) float64 {
	if deadline == nil {
		return baselineUrgency
	}
	daysLeft := math.Floor(deadline.Sub(now).Hours() / 24)
	if daysLeft <= 0 {
		return maxUrgency
	}
	return 1 / (daysLeft + 1)
}
