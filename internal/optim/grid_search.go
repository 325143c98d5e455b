package optim

import (
	"fmt"
	"math"

	"github.com/san-kum/armtorque/internal/statics"
)

// MaxAngles caps the number of grid points along one joint axis.
const MaxAngles = 1_000_000

// AngleRange is a half-open range of joint angles in degrees:
// Start, Start+Step, ... while the value stays below Stop.
type AngleRange struct {
	Start float64 `yaml:"start" toml:"start" json:"start"`
	Stop  float64 `yaml:"stop" toml:"stop" json:"stop"`
	Step  float64 `yaml:"step" toml:"step" json:"step"`
}

func (r AngleRange) Validate(name string) error {
	for _, v := range []float64{r.Start, r.Stop, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidGrid, name)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: %s step %g must be positive", ErrInvalidGrid, name, r.Step)
	}
	if r.Stop <= r.Start {
		return fmt.Errorf("%w: %s is empty [%g, %g)", ErrInvalidGrid, name, r.Start, r.Stop)
	}
	if r.Start+r.Step == r.Start {
		return fmt.Errorf("%w: %s step %g vanishes at %g", ErrInvalidGrid, name, r.Step, r.Start)
	}
	if span := (r.Stop - r.Start) / r.Step; math.IsInf(span, 0) || span > MaxAngles {
		return fmt.Errorf("%w: %s has more than %d angles", ErrInvalidGrid, name, MaxAngles)
	}
	return nil
}

// At returns the i-th angle in degrees.
func (r AngleRange) At(i int) float64 {
	return r.Start + float64(i)*r.Step
}

// Len returns the number of angles in the range, or 0 for a range that
// fails Validate.
func (r AngleRange) Len() int {
	if r.Validate("") != nil {
		return 0
	}
	n := int(math.Ceil((r.Stop - r.Start) / r.Step))
	// Ceil can be off by one when Start+n*Step rounds across Stop.
	if n > 0 && r.At(n-1) >= r.Stop {
		n--
	}
	if r.At(n) < r.Stop {
		n++
	}
	return n
}

func (r AngleRange) Values() []float64 {
	n := r.Len()
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = r.At(i)
	}
	return vals
}

// Radians returns the i-th angle in radians.
func (r AngleRange) Radians(i int) float64 {
	return statics.Radians(r.At(i))
}
