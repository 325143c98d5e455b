package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/armtorque/internal/config"
)

// Scenario evaluates one computation for cfg and records it on the report.
type Scenario func(ctx context.Context, cfg *config.Config, r *Report) error

type Registry struct {
	scenarios map[string]Scenario
	order     []string
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]Scenario)}
	r.Register("reference", runReference)
	r.Register("reach", runReach)
	return r
}

// Register adds or replaces a scenario. New names run after existing ones.
func (r *Registry) Register(name string, s Scenario) {
	if _, ok := r.scenarios[name]; !ok {
		r.order = append(r.order, name)
	}
	r.scenarios[name] = s
}

// List returns scenario names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Run validates cfg and evaluates a single scenario.
func (r *Registry) Run(ctx context.Context, name string, cfg *config.Config) (*Report, error) {
	s, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	report := newReport(cfg)
	if err := s(ctx, cfg, report); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return report, nil
}

// RunAll validates cfg once and evaluates every scenario in order.
func (r *Registry) RunAll(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	report := newReport(cfg)
	for _, name := range r.order {
		if err := r.scenarios[name](ctx, cfg, report); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return report, nil
}
