// Package domain defines the core types for the kairos planning engine.
package domain

import "time"

// Domain is a life category a task belongs to. The set is closed:
// values outside it are rejected at parse time, never defaulted.
type Domain string

const (
	DomainWork        Domain = "work"
	DomainLifeAdmin   Domain = "life_admin"
	DomainGeneralLife Domain = "general_life"
)

// Domains returns the closed domain set in canonical order.
func Domains() []Domain {
	return []Domain{DomainWork, DomainLifeAdmin, DomainGeneralLife}
}

// ParseDomain validates a raw domain string against the closed set.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainWork, DomainLifeAdmin, DomainGeneralLife:
		return Domain(s), nil
	}
	return "", &EngineError{
		Code:    ErrUnknownDomain.Code,
		Message: ErrUnknownDomain.Message + ": " + s,
	}
}

// Known reports whether d is a member of the closed domain set.
func (d Domain) Known() bool {
	switch d {
	case DomainWork, DomainLifeAdmin, DomainGeneralLife:
		return true
	}
	return false
}

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// Task is an immutable snapshot of a task record. The engine only ever
// reads these; mutation happens in the store.
type Task struct {
	ID               string
	Description      string
	Domain           Domain
	EstimatedMinutes int
	Deadline         *time.Time // nil means no deadline
	Status           TaskStatus
	ActualMinutes    int // meaningful only when Status is completed
	ProjectID        string
	CreatedAtUnix    int64
}

// Pending reports whether the task is actionable.
func (t Task) Pending() bool {
	return t.Status == StatusPending
}

// RankedTask pairs a task with its computed score and 1-based rank.
// Ties are broken deterministically, so rank is a total order.
type RankedTask struct {
	Task  Task
	Score float64
	Rank  int
}

// DailyPlan is a time-boxed selection of tasks. ScheduledMinutes always
// equals the sum of the included tasks' estimates, and
// ScheduledMinutes + RemainingMinutes equals the requested budget.
type DailyPlan struct {
	ScheduledMinutes int
	RemainingMinutes int
	Tasks            []Task
}

// DomainStats holds per-domain aggregate counts.
type DomainStats struct {
	Count        int
	TotalMinutes int
}

// DomainReport holds per-domain completion figures for a reporting window.
type DomainReport struct {
	Count            int
	EstimatedMinutes int
	ActualMinutes    int
	// Efficiency is actual over estimated; 0 when nothing was estimated.
	Efficiency float64
}

// CompletionReport summarizes completed work for a date window plus the
// nearest upcoming deadlines.
type CompletionReport struct {
	Date                  string
	TotalCompleted        int
	TotalEstimatedMinutes int
	TotalActualMinutes    int
	Efficiency            float64
	Domains               map[Domain]DomainReport
	Upcoming              []Task
}
