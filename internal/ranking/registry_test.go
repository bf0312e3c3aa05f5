package ranking

import (
	"errors"
	"testing"

	"github.com/kairosplan/kairos/internal/domain"
)

func defaultWeights() map[domain.Domain]float64 {
	return map[domain.Domain]float64{
		domain.DomainWork:        1.0,
		domain.DomainLifeAdmin:   0.8,
		domain.DomainGeneralLife: 0.6,
	}
}

func mustRegistry(t *testing.T, weights map[domain.Domain]float64, maxTasks int) *Registry {
	t.Helper()
	reg, err := NewRegistry(weights, maxTasks)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestNewRegistry_Valid(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)

	w, err := reg.WeightOf(domain.DomainLifeAdmin)
	if err != nil {
		t.Fatalf("WeightOf: %v", err)
	}
	if w != 0.8 {
		t.Errorf("WeightOf(life_admin) = %g, want 0.8", w)
	}
	if reg.MaxDomainTasks() != 100 {
		t.Errorf("MaxDomainTasks = %d, want 100", reg.MaxDomainTasks())
	}
}

func TestNewRegistry_MissingDomain(t *testing.T) {
	weights := defaultWeights()
	delete(weights, domain.DomainGeneralLife)

	_, err := NewRegistry(weights, 100)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestNewRegistry_NonPositiveWeight(t *testing.T) {
	weights := defaultWeights()
	weights[domain.DomainWork] = 0

	_, err := NewRegistry(weights, 100)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestNewRegistry_UnknownDomainKey(t *testing.T) {
	weights := defaultWeights()
	weights[domain.Domain("chores")] = 0.5

	_, err := NewRegistry(weights, 100)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestNewRegistry_BadCap(t *testing.T) {
	_, err := NewRegistry(defaultWeights(), 0)
	if !errors.Is(err, domain.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestWeightOf_UnknownDomain(t *testing.T) {
	reg := mustRegistry(t, defaultWeights(), 100)

	_, err := reg.WeightOf(domain.Domain("hobby"))
	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestRegistry_CopiesWeights(t *testing.T) {
	weights := defaultWeights()
	reg := mustRegistry(t, weights, 100)

	weights[domain.DomainWork] = 99.0

	w, err := reg.WeightOf(domain.DomainWork)
	if err != nil {
		t.Fatalf("WeightOf: %v", err)
	}
	if w != 1.0 {
		t.Errorf("registry observed caller mutation: weight = %g, want 1.0", w)
	}
}

func TestHolder_SwapPublishesReplacement(t *testing.T) {
	first := mustRegistry(t, defaultWeights(), 100)
	holder := NewHolder(first)

	if holder.Load() != first {
		t.Fatal("Load did not return initial registry")
	}

	weights := defaultWeights()
	weights[domain.DomainWork] = 2.0
	second := mustRegistry(t, weights, 50)

	holder.Swap(second)

	got := holder.Load()
	if got != second {
		t.Fatal("Load did not return swapped registry")
	}
	if got.MaxDomainTasks() != 50 {
		t.Errorf("MaxDomainTasks = %d, want 50", got.MaxDomainTasks())
	}
	// The first registry is untouched by the swap.
	if w, _ := first.WeightOf(domain.DomainWork); w != 1.0 {
		t.Errorf("original registry mutated: weight = %g, want 1.0", w)
	}
}
