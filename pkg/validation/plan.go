package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/mathutil"
	"github.com/iwvelando/stepup-sip/pkg/sip"
	"go.uber.org/multierr"
)

// ErrInvalidInput is wrapped by every rejection from ValidateInputs.
var ErrInvalidInput = errors.New("invalid input")

// ErrNonFiniteResult is returned by ValidateResult when the accumulation
// overflowed.
var ErrNonFiniteResult = errors.New("result is not a finite number")

// Inputs are the raw values collected from a form, query string or config
// file. Years is a float so that fractional horizons can be rejected rather
// than silently truncated.
type Inputs struct {
	MonthlyInvestment float64
	StepUpPercentage  float64
	ExpectedReturn    float64
	Years             float64
}

// InputsFromPlan lifts an already typed plan back into raw inputs.
func InputsFromPlan(plan sip.Plan) Inputs {
	return Inputs{
		MonthlyInvestment: plan.MonthlyInvestment,
		StepUpPercentage:  plan.StepUpPercentage,
		ExpectedReturn:    plan.ExpectedReturn,
		Years:             float64(plan.Years),
	}
}

// ValidateInputs rejects values the engine is not defined for. All problems
// are reported together.
func ValidateInputs(in Inputs) error {
	var err error

	checkFinite := func(name string, value float64) bool {
		if !mathutil.IsFinite(value) {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidInput, name, value))
			return false
		}
		return true
	}

	if checkFinite("monthly investment", in.MonthlyInvestment) && in.MonthlyInvestment < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: monthly investment must not be negative, got %v", ErrInvalidInput, in.MonthlyInvestment))
	}
	checkFinite("step-up percentage", in.StepUpPercentage)
	checkFinite("expected return", in.ExpectedReturn)

	if checkFinite("years", in.Years) {
		switch {
		case in.Years < constants.MinYears:
			err = multierr.Append(err, fmt.Errorf("%w: years must be at least %d, got %v", ErrInvalidInput, constants.MinYears, in.Years))
		case in.Years != math.Trunc(in.Years):
			err = multierr.Append(err, fmt.Errorf("%w: years must be a whole number, got %v", ErrInvalidInput, in.Years))
		}
	}

	return err
}

// ClampInputs limits the percentages and the horizon to the supported band
// and returns a warning for every adjusted value. Inputs must already have
// passed ValidateInputs.
func ClampInputs(in Inputs) (Inputs, []string) {
	var warnings []string

	clamp := func(name string, value, lo, hi float64) float64 {
		clamped := mathutil.Clamp(value, lo, hi)
		if clamped != value {
			warnings = append(warnings, fmt.Sprintf("%s %v is outside [%v, %v], using %v", name, value, lo, hi, clamped))
		}
		return clamped
	}

	in.MonthlyInvestment = clamp("monthly investment", in.MonthlyInvestment,
		constants.MinMonthlyInvestment, constants.MaxMonthlyInvestment)
	in.StepUpPercentage = clamp("step-up percentage", in.StepUpPercentage,
		constants.MinStepUpPercentage, constants.MaxStepUpPercentage)
	in.ExpectedReturn = clamp("expected return", in.ExpectedReturn,
		constants.MinExpectedReturn, constants.MaxExpectedReturn)
	in.Years = clamp("years", in.Years, constants.MinYears, constants.MaxYears)

	return in, warnings
}

// PreparePlan validates and clamps raw inputs and converts them into a plan
// the engine can run.
func PreparePlan(in Inputs) (sip.Plan, []string, error) {
	if err := ValidateInputs(in); err != nil {
		return sip.Plan{}, nil, err
	}

	clamped, warnings := ClampInputs(in)
	return sip.Plan{
		MonthlyInvestment: clamped.MonthlyInvestment,
		StepUpPercentage:  clamped.StepUpPercentage,
		ExpectedReturn:    clamped.ExpectedReturn,
		Years:             int(clamped.Years),
	}, warnings, nil
}

// ValidateResult rejects a result whose totals or breakdown are not finite.
func ValidateResult(result sip.Result) error {
	totals := []struct {
		name  string
		value float64
	}{
		{"future value", result.FutureValue},
		{"total investment", result.TotalInvestment},
		{"estimated returns", result.EstimatedReturns},
	}
	for _, total := range totals {
		if !mathutil.IsFinite(total.value) {
			return fmt.Errorf("%w: %s is %v", ErrNonFiniteResult, total.name, total.value)
		}
	}

	for _, row := range result.YearlyBreakdown {
		if !mathutil.IsFinite(row.MonthlyInvestment) || !mathutil.IsFinite(row.YearlyInvestment) ||
			!mathutil.IsFinite(row.CumulativeFutureValue) {
			return fmt.Errorf("%w: year %d", ErrNonFiniteResult, row.Year)
		}
	}
	return nil
}
