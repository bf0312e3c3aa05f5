// Package ranking implements domain-weighted task scoring and ordering.
package ranking

import (
	"fmt"
	"sync/atomic"

	"github.com/kairosplan/kairos/internal/domain"
)

// Registry is an immutable mapping from domain to scoring weight, plus
// the per-domain cap on how many tasks the ranker will consider. A
// reconfiguration builds a new Registry and swaps it through a Holder;
// nothing mutates a Registry after construction.
type Registry struct {
	weights        map[domain.Domain]float64
	maxDomainTasks int
}

// NewRegistry validates the weight map and cap and builds a Registry.
// Every known domain needs a strictly positive weight and the cap must
// be at least 1; anything else is a fatal configuration error.
func NewRegistry(weights map[domain.Domain]float64, maxDomainTasks int) (*Registry, error) {
	var problems []string

	for d := range weights {
		if !d.Known() {
			problems = append(problems, fmt.Sprintf("unknown domain %q", d))
		}
	}
	for _, d := range domain.Domains() {
		w, ok := weights[d]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing weight for %s", d))
		} else if w <= 0 {
			problems = append(problems, fmt.Sprintf("weight for %s must be positive, got %g", d, w))
		}
	}
	if maxDomainTasks < 1 {
		problems = append(problems, fmt.Sprintf("max domain tasks must be at least 1, got %d", maxDomainTasks))
	}

	if len(problems) > 0 {
		return nil, &domain.EngineError{
			Code:    domain.ErrConfigInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrConfigInvalid.Message, problems),
		}
	}

	copied := make(map[domain.Domain]float64, len(weights))
	for d, w := range weights {
		copied[d] = w
	}
	return &Registry{weights: copied, maxDomainTasks: maxDomainTasks}, nil
}

// WeightOf returns the configured weight for a domain.
func (r *Registry) WeightOf(d domain.Domain) (float64, error) {
	w, ok := r.weights[d]
	if !ok {
		return 0, &domain.EngineError{
			Code:    domain.ErrUnknownDomain.Code,
			Message: fmt.Sprintf("%s: %s", domain.ErrUnknownDomain.Message, d),
		}
	}
	return w, nil
}

// MaxDomainTasks returns the per-domain cap on ranked tasks.
func (r *Registry) MaxDomainTasks() int {
	return r.maxDomainTasks
}

// Holder publishes the current Registry to concurrent readers. A reload
// stores a complete replacement, so an in-flight computation keeps the
// registry it loaded and never observes a partial update.
type Holder struct {
	current atomic.Pointer[Registry]
}

// NewHolder creates a Holder with an initial registry.
func NewHolder(r *Registry) *Holder {
	h := &Holder{}
	h.current.Store(r)
	return h
}

// Load returns the currently published registry.
func (h *Holder) Load() *Registry {
	return h.current.Load()
}

// Swap atomically publishes a replacement registry.
func (h *Holder) Swap(r *Registry) {
	h.current.Store(r)
}
