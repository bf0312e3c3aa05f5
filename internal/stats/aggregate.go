// Package stats aggregates task snapshots by domain.
package stats

import (
	"github.com/kairosplan/kairos/internal/domain"
)

// Aggregate groups a task snapshot by domain, returning counts and total
// minutes. Every known domain gets an entry even when the input is empty,
// so display code never special-cases "no data". Completed tasks report
// their actual minutes (falling back to the estimate when none was
// recorded); pending tasks report their estimate. A task with a domain
// outside the closed set is an error, never coerced.
func Aggregate(tasks []domain.Task) (map[domain.Domain]domain.DomainStats, error) {
	out := make(map[domain.Domain]domain.DomainStats, len(domain.Domains()))
	for _, d := range domain.Domains() {
		out[d] = domain.DomainStats{}
	}

	for _, t := range tasks {
		if !t.Domain.Known() {
			return nil, &domain.EngineError{
				Code:    domain.ErrUnknownDomain.Code,
				Message: domain.ErrUnknownDomain.Message + ": " + string(t.Domain),
			}
		}
		s := out[t.Domain]
		s.Count++
		s.TotalMinutes += taskMinutes(t)
		out[t.Domain] = s
	}

	return out, nil
}

func taskMinutes(t domain.Task) int {
	if t.Status == domain.StatusCompleted && t.ActualMinutes > 0 {
		return t.ActualMinutes
	}
	return t.EstimatedMinutes
}
