package ranking

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kairosplan/kairos/internal/domain"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func deadlineIn(d time.Duration) *time.Time {
	at := testNow.Add(d)
	return &at
}

func makeTask(id string, d domain.Domain, minutes int, deadline *time.Time) domain.Task {
	return domain.Task{
		ID:               id,
		Description:      "task " + id,
		Domain:           d,
		EstimatedMinutes: minutes,
		Deadline:         deadline,
		Status:           domain.StatusPending,
	}
}

func TestScore_NoDeadline_Baseline(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.DomainWork, 30, nil)

	score, err := Score(task, reg, testNow)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// weight 1.0 * baseline 0.5
	if !almostEqual(score, 0.5, 1e-9) {
		t.Errorf("score = %g, want 0.5", score)
	}
}

func TestScore_Overdue_MaxUrgency(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	overdue := makeTask("t1", domain.DomainWork, 30, deadlineIn(-24*time.Hour))
	farOut := makeTask("t2", domain.DomainWork, 30, deadlineIn(30*24*time.Hour))

	overdueScore, err := Score(overdue, reg, testNow)
	if err != nil {
		t.Fatalf("Score overdue: %v", err)
	}
	farScore, err := Score(farOut, reg, testNow)
	if err != nil {
		t.Fatalf("Score far out: %v", err)
	}

	if !almostEqual(overdueScore, 10.0, 1e-9) {
		t.Errorf("overdue score = %g, want 10.0", overdueScore)
	}
	if overdueScore <= farScore {
		t.Errorf("overdue score %g not above 30-day score %g", overdueScore, farScore)
	}
}

func TestScore_DueLaterToday_MaxUrgency(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.DomainWork, 30, deadlineIn(5*time.Hour))

	score, err := Score(task, reg, testNow)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(score, 10.0, 1e-9) {
		t.Errorf("due-today score = %g, want 10.0", score)
	}
}

func TestScore_DecreasesWithDistance(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)

	var prev float64 = math.Inf(1)
	for _, days := range []int{1, 2, 5, 14, 60} {
		task := makeTask("t", domain.DomainWork, 30, deadlineIn(time.Duration(days)*24*time.Hour))
		score, err := Score(task, reg, testNow)
		if err != nil {
			t.Fatalf("Score at %d days: %v", days, err)
		}
		if score >= prev {
			t.Errorf("score at %d days = %g, not below %g", days, score, prev)
		}
		if score <= 0 || score >= 1 {
			t.Errorf("score at %d days = %g, want within (0, 1)", days, score)
		}
		prev = score
	}
}

func TestScore_OneDayOut(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.DomainWork, 30, deadlineIn(24*time.Hour))

	score, err := Score(task, reg, testNow)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// one whole day left: urgency 1/(1+1)
	if !almostEqual(score, 0.5, 1e-9) {
		t.Errorf("score = %g, want 0.5", score)
	}
}

func TestScore_DomainWeightScales(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	work := makeTask("t1", domain.DomainWork, 30, nil)
	life := makeTask("t2", domain.DomainGeneralLife, 30, nil)

	workScore, _ := Score(work, reg, testNow)
	lifeScore, err := Score(life, reg, testNow)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !almostEqual(lifeScore, 0.3, 1e-9) {
		t.Errorf("general_life score = %g, want 0.3", lifeScore)
	}
	if lifeScore >= workScore {
		t.Errorf("general_life score %g not below work score %g", lifeScore, workScore)
	}
}

func TestScore_CompletedTask_Rejected(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.DomainWork, 30, nil)
	task.Status = domain.StatusCompleted

	_, err := Score(task, reg, testNow)
	if !errors.Is(err, domain.ErrTaskNotPending) {
		t.Fatalf("expected ErrTaskNotPending, got %v", err)
	}
}

func TestScore_NonPositiveDuration_Rejected(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)

	for _, minutes := range []int{0, -15} {
		task := makeTask("t1", domain.DomainWork, minutes, nil)
		_, err := Score(task, reg, testNow)
		if !errors.Is(err, domain.ErrInvalidDuration) {
			t.Fatalf("minutes=%d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
}

func TestScore_UnknownDomain_Rejected(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.Domain("errands"), 30, nil)

	_, err := Score(task, reg, testNow)
	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestScore_Deterministic(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)
	task := makeTask("t1", domain.DomainLifeAdmin, 45, deadlineIn(3*24*time.Hour))

	first, err := Score(task, reg, testNow)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Score(task, reg, testNow)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if again != first {
			t.Fatalf("score changed across calls: %g then %g", first, again)
		}
	}
}
