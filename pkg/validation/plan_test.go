package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/sip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func validInputs() Inputs {
	return Inputs{MonthlyInvestment: 5000, StepUpPercentage: 10, ExpectedReturn: 12, Years: 10}
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Inputs)
		errCount int
	}{
		{"Valid inputs", func(*Inputs) {}, 0},
		{"Zero monthly investment", func(in *Inputs) { in.MonthlyInvestment = 0 }, 0},
		{"Negative monthly investment", func(in *Inputs) { in.MonthlyInvestment = -1 }, 1},
		{"NaN monthly investment", func(in *Inputs) { in.MonthlyInvestment = math.NaN() }, 1},
		{"Infinite step-up", func(in *Inputs) { in.StepUpPercentage = math.Inf(1) }, 1},
		{"NaN expected return", func(in *Inputs) { in.ExpectedReturn = math.NaN() }, 1},
		{"Zero years", func(in *Inputs) { in.Years = 0 }, 1},
		{"Negative years", func(in *Inputs) { in.Years = -3 }, 1},
		{"Fractional years", func(in *Inputs) { in.Years = 2.5 }, 1},
		{"Infinite years", func(in *Inputs) { in.Years = math.Inf(1) }, 1},
		{"Negative percentages are clamped, not rejected", func(in *Inputs) {
			in.StepUpPercentage = -5
			in.ExpectedReturn = -1
		}, 0},
		{"Every problem reported", func(in *Inputs) {
			in.MonthlyInvestment = -100
			in.ExpectedReturn = math.NaN()
			in.Years = 0
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInputs()
			tt.mutate(&in)

			err := ValidateInputs(in)
			if tt.errCount == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Len(t, multierr.Errors(err), tt.errCount)
		})
	}
}

func TestClampInputs(t *testing.T) {
	in, warnings := ClampInputs(validInputs())
	assert.Equal(t, validInputs(), in)
	assert.Empty(t, warnings)

	in, warnings = ClampInputs(Inputs{MonthlyInvestment: 5000, StepUpPercentage: 150, ExpectedReturn: -2, Years: 250})
	assert.Equal(t, 100.0, in.StepUpPercentage)
	assert.Equal(t, 0.0, in.ExpectedReturn)
	assert.Equal(t, 100.0, in.Years)
	assert.Equal(t, 5000.0, in.MonthlyInvestment)
	assert.Len(t, warnings, 3)
}

func TestPreparePlan(t *testing.T) {
	plan, warnings, err := PreparePlan(validInputs())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, sip.Plan{MonthlyInvestment: 5000, StepUpPercentage: 10, ExpectedReturn: 12, Years: 10}, plan)

	plan, warnings, err = PreparePlan(Inputs{MonthlyInvestment: 1000, StepUpPercentage: 120, ExpectedReturn: 8, Years: 5})
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, 100.0, plan.StepUpPercentage)
	assert.Equal(t, 5, plan.Years)

	_, _, err = PreparePlan(Inputs{MonthlyInvestment: 1000, Years: 0.5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInputsFromPlan(t *testing.T) {
	plan := sip.Plan{MonthlyInvestment: 2500, StepUpPercentage: 5, ExpectedReturn: 9, Years: 7}
	assert.Equal(t, Inputs{MonthlyInvestment: 2500, StepUpPercentage: 5, ExpectedReturn: 9, Years: 7}, InputsFromPlan(plan))
}

func TestClampInputsExtremeMonthlyInvestment(t *testing.T) {
	in, warnings := ClampInputs(Inputs{MonthlyInvestment: 1e306, StepUpPercentage: 100, ExpectedReturn: 100, Years: 100})
	assert.Equal(t, constants.MaxMonthlyInvestment, in.MonthlyInvestment)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "monthly investment")

	// The widest plan the bands allow must still produce finite figures.
	plan, _, err := PreparePlan(Inputs{MonthlyInvestment: 1e306, StepUpPercentage: 100, ExpectedReturn: 100, Years: 100})
	require.NoError(t, err)
	assert.NoError(t, ValidateResult(plan.Compute()))
}

func TestValidateResult(t *testing.T) {
	assert.NoError(t, ValidateResult(sip.Compute(5000, 10, 12, 10)))
	assert.NoError(t, ValidateResult(sip.Result{}))

	// Unclamped, the engine overflows.
	err := ValidateResult(sip.Compute(1e306, 100, 100, 100))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonFiniteResult)

	err = ValidateResult(sip.Result{
		FutureValue:     100,
		TotalInvestment: 100,
		YearlyBreakdown: []sip.YearRecord{{Year: 3, CumulativeFutureValue: math.NaN()}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonFiniteResult)
	assert.Contains(t, err.Error(), "year 3")
}
