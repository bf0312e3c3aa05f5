package stats

import (
	"sort"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
)

// upcomingLimit caps how many near-deadline tasks a report carries.
const upcomingLimit = 5

// BuildCompletionReport summarizes completed tasks for a reporting date
// alongside the nearest upcoming deadlines. The caller supplies both
// slices from the store; the function itself is pure. Completed tasks
// with an unknown domain are an error.
func BuildCompletionReport(completed, upcoming []domain.Task, date time.Time) (*domain.CompletionReport, error) {
	report := &domain.CompletionReport{
		Date:    date.Format("2006-01-02"),
		Domains: make(map[domain.Domain]domain.DomainReport, len(domain.Domains())),
	}
	for _, d := range domain.Domains() {
		report.Domains[d] = domain.DomainReport{}
	}

	for _, t := range completed {
		if !t.Domain.Known() {
			return nil, &domain.EngineError{
				Code:    domain.ErrUnknownDomain.Code,
				Message: domain.ErrUnknownDomain.Message + ": " + string(t.Domain),
			}
		}
		r := report.Domains[t.Domain]
		r.Count++
		r.EstimatedMinutes += t.EstimatedMinutes
		r.ActualMinutes += t.ActualMinutes
		report.Domains[t.Domain] = r

		report.TotalCompleted++
		report.TotalEstimatedMinutes += t.EstimatedMinutes
		report.TotalActualMinutes += t.ActualMinutes
	}

	for d, r := range report.Domains {
		r.Efficiency = efficiency(r.ActualMinutes, r.EstimatedMinutes)
		report.Domains[d] = r
	}
	report.Efficiency = efficiency(report.TotalActualMinutes, report.TotalEstimatedMinutes)

	report.Upcoming = nearestDeadlines(upcoming)
	return report, nil
}

func efficiency(actual, estimated int) float64 {
	if estimated == 0 {
		return 0
	}
	return float64(actual) / float64(estimated)
}

// nearestDeadlines keeps the soonest-due pending tasks, at most
// upcomingLimit of them. Tasks without a deadline are excluded.
func nearestDeadlines(tasks []domain.Task) []domain.Task {
	kept := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Pending() && t.Deadline != nil {
			kept = append(kept, t)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Deadline.Equal(*kept[j].Deadline) {
			return kept[i].ID < kept[j].ID
		}
		return kept[i].Deadline.Before(*kept[j].Deadline)
	})
	if len(kept) > upcomingLimit {
		kept = kept[:upcomingLimit]
	}
	return kept
}
