package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/armtorque/internal/config"
	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/statics"
)

func TestRunDefault(t *testing.T) {
	report, err := Run(context.Background(), config.DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Reference == nil || report.Reach == nil {
		t.Fatal("expected both scenarios in the report")
	}
	if math.Abs(report.Reference.Shoulder-(-24.276506235819546)) > 1e-9 {
		t.Errorf("unexpected shoulder torque %v", report.Reference.Shoulder)
	}
	if math.Abs(report.Reference.Elbow-(-7.332205996716805)) > 1e-9 {
		t.Errorf("unexpected elbow torque %v", report.Reference.Elbow)
	}
	if !report.Reach.Found {
		t.Fatal("expected a feasible pose")
	}
	if math.Abs(report.Reach.MaxX-0.5515053430043535) > 1e-12 {
		t.Errorf("unexpected max reach %v", report.Reach.MaxX)
	}
	if report.Reach.Theta1Deg != -40 || report.Reach.Theta2Deg != 97 {
		t.Errorf("unexpected angles (%v, %v)", report.Reach.Theta1Deg, report.Reach.Theta2Deg)
	}
	if report.Limits.Shoulder != 33 || report.Masses.Payload != 4 {
		t.Errorf("report should echo inputs, got %+v %+v", report.Limits, report.Masses)
	}
}

func TestRegistryRunSingle(t *testing.T) {
	r := NewRegistry()

	report, err := r.Run(context.Background(), "reference", config.DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.Reference == nil {
		t.Error("expected reference result")
	}
	if report.Reach != nil {
		t.Error("reach should not run")
	}
}

func TestRegistryUnknownScenario(t *testing.T) {
	_, err := NewRegistry().Run(context.Background(), "dynamics", config.DefaultConfig())
	if !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("noop", func(context.Context, *config.Config, *Report) error { return nil })
	r.Register("reach", runReach)

	names := r.List()
	want := []string{"reference", "reach", "noop"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits.Elbow = -1
	if _, err := Run(context.Background(), cfg); !errors.Is(err, statics.ErrNegativeLimit) {
		t.Errorf("expected ErrNegativeLimit, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRegistry().Run(ctx, "reach", config.DefaultConfig())
	if !errors.Is(err, optim.ErrInterrupted) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected interrupted search, got %v", err)
	}
}

func TestRunNoFeasiblePose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Limits = statics.Limits{}

	report, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.Reach.Found || report.Reach.MaxX != 0 {
		t.Errorf("expected sentinel result, got %+v", report.Reach)
	}
	if report.Reach.PositionFeasible != 74 {
		t.Errorf("expected 74 positional hits, got %d", report.Reach.PositionFeasible)
	}
}
