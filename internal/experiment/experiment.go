package experiment

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/armtorque/internal/config"
	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
)

var ErrUnknownScenario = errors.New("experiment: unknown scenario")

// Reference is the outcome of the fixed-pose torque report.
type Reference struct {
	Points   physics.ReferencePoints
	Shoulder float64
	Elbow    float64
}

// Report collects the scenarios evaluated for one input set. Scenarios that
// were not run are nil.
type Report struct {
	Timestamp time.Time
	Masses    physics.Masses
	Limits    statics.Limits
	Gravity   float64
	Lengths   physics.Lengths

	Reference *Reference
	Reach     *optim.ReachResult
}

func newReport(cfg *config.Config) *Report {
	return &Report{
		Timestamp: time.Now(),
		Masses:    cfg.Masses,
		Limits:    cfg.Limits,
		Gravity:   cfg.Gravity,
		Lengths:   cfg.Links,
	}
}

// Run evaluates every registered scenario for cfg.
func Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	return NewRegistry().RunAll(ctx, cfg)
}

func runReference(ctx context.Context, cfg *config.Config, r *Report) error {
	shoulder, elbow := physics.ReferenceTorques(cfg.Masses, cfg.Gravity)
	r.Reference = &Reference{
		Points:   physics.ReferenceGeometry(),
		Shoulder: shoulder,
		Elbow:    elbow,
	}
	log.FromContext(ctx).Debug("reference torques", "shoulder", shoulder, "elbow", elbow)
	return nil
}

func runReach(ctx context.Context, cfg *config.Config, r *Report) error {
	res, err := cfg.ReachSearch().Search(ctx, cfg.Arm(), cfg.Limits)
	if err != nil {
		return err
	}
	r.Reach = res
	return nil
}
