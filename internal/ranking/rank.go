package ranking

import (
	"sort"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
)

// Rank orders a task snapshot by score, highest first. Non-pending tasks
// are dropped silently; a non-empty filter keeps only that domain. After
// sorting, each domain is capped at the registry's MaxDomainTasks,
// keeping its highest-scored tasks. The returned ranks are 1-based and
// total: ties break on earlier deadline (absent sorts last), then
// shorter duration, then lower ID.
func Rank(tasks []domain.Task, reg *Registry, now time.Time, filter domain.Domain) ([]domain.RankedTask, error) {
	if filter != "" && !filter.Known() {
		return nil, &domain.EngineError{
			Code:    domain.ErrUnknownDomain.Code,
			Message: domain.ErrUnknownDomain.Message + ": " + string(filter),
		}
	}

	scored := make([]domain.RankedTask, 0, len(tasks))
	for _, t := range tasks {
		if !t.Pending() {
			continue
		}
		if filter != "" && t.Domain != filter {
			continue
		}
		score, err := Score(t, reg, now)
		if err != nil {
			return nil, err
		}
		scored = append(scored, domain.RankedTask{Task: t, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return less(scored[i], scored[j])
	})

	limit := reg.MaxDomainTasks()
	perDomain := make(map[domain.Domain]int)
	ranked := make([]domain.RankedTask, 0, len(scored))
	for _, rt := range scored {
		if perDomain[rt.Task.Domain] >= limit {
			continue
		}
		perDomain[rt.Task.Domain]++
		rt.Rank = len(ranked) + 1
		ranked = append(ranked, rt)
	}

	return ranked, nil
}

// less is the deterministic sort key: score descending, then earlier
// deadline, then shorter estimate, then lower ID.
func less(a, b domain.RankedTask) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if c := compareDeadlines(a.Task.Deadline, b.Task.Deadline); c != 0 {
		return c < 0
	}
	if a.Task.EstimatedMinutes != b.Task.EstimatedMinutes {
		return a.Task.EstimatedMinutes < b.Task.EstimatedMinutes
	}
	return a.Task.ID < b.Task.ID
}

// compareDeadlines orders present deadlines before absent ones, and
// earlier before later.
func compareDeadlines(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	}
	return 0
}
