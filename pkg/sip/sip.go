// Package sip implements the step-up systematic investment plan engine.
//
// A step-up SIP invests a fixed amount every month and raises that amount by
// a percentage at each yearly anniversary. Compute turns the four plan inputs
// into aggregate totals and a per-year breakdown. The engine holds no state,
// performs no I/O and trusts its caller for input validity; see the
// validation package for the checks a caller is expected to run first.
package sip

import (
	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/mathutil"
)

// Plan holds the inputs of a step-up SIP.
type Plan struct {
	// MonthlyInvestment is the contribution made in month 1.
	MonthlyInvestment float64 `json:"monthlyInvestment" yaml:"monthlyInvestment"`
	// StepUpPercentage raises the contribution at every yearly anniversary.
	StepUpPercentage float64 `json:"stepUpPercentage" yaml:"stepUpPercentage"`
	// ExpectedReturn is the nominal annual rate in percent, compounded monthly.
	ExpectedReturn float64 `json:"expectedReturn" yaml:"expectedReturn"`
	// Years is the number of yearly periods to simulate.
	Years int `json:"years" yaml:"years"`
}

// YearRecord is one row of the yearly breakdown. Money fields are rounded to
// whole currency units.
type YearRecord struct {
	Year                  int     `json:"year"`
	MonthlyInvestment     float64 `json:"monthlyInvestment"`
	YearlyInvestment      float64 `json:"yearlyInvestment"`
	CumulativeFutureValue float64 `json:"cumulativeFutureValue"`
}

// Result is the reported outcome of a plan. FutureValue, TotalInvestment and
// EstimatedReturns are whole currency units, each rounded from the unrounded
// accumulation. EstimatedReturns can therefore differ by one unit from the
// difference of the two rounded totals.
type Result struct {
	FutureValue      float64      `json:"futureValue"`
	TotalInvestment  float64      `json:"totalInvestment"`
	EstimatedReturns float64      `json:"estimatedReturns"`
	YearlyBreakdown  []YearRecord `json:"yearlyBreakdown"`
}

// YearTotals is an unrounded breakdown row.
type YearTotals struct {
	Year              int
	MonthlyInvestment float64
	YearlyInvestment  float64
	FutureValue       float64
}

// Accumulation carries the unrounded state at the end of the horizon.
type Accumulation struct {
	FutureValue     float64
	TotalInvestment float64
	Years           []YearTotals
}

// MonthlyRate converts a nominal annual percentage into the per-month rate
// used for compounding. The annual rate is divided into twelve equal parts,
// not converted to a geometric monthly equivalent.
func MonthlyRate(expectedReturn float64) float64 {
	return expectedReturn / (constants.MonthsPerYear * constants.PercentageMultiplier)
}

// Compute runs a step-up SIP for the given inputs.
func Compute(monthlyInvestment, stepUpPercentage, expectedReturn float64, years int) Result {
	return Plan{
		MonthlyInvestment: monthlyInvestment,
		StepUpPercentage:  stepUpPercentage,
		ExpectedReturn:    expectedReturn,
		Years:             years,
	}.Compute()
}

// Compute runs the plan and rounds its outputs for reporting.
func (p Plan) Compute() Result {
	acc := Accumulate(p)

	result := Result{
		FutureValue:      mathutil.RoundUnit(acc.FutureValue),
		TotalInvestment:  mathutil.RoundUnit(acc.TotalInvestment),
		EstimatedReturns: mathutil.RoundUnit(acc.EstimatedReturns()),
		YearlyBreakdown:  make([]YearRecord, 0, len(acc.Years)),
	}

	for _, y := range acc.Years {
		result.YearlyBreakdown = append(result.YearlyBreakdown, YearRecord{
			Year:                  y.Year,
			MonthlyInvestment:     mathutil.RoundUnit(y.MonthlyInvestment),
			YearlyInvestment:      mathutil.RoundUnit(y.YearlyInvestment),
			CumulativeFutureValue: mathutil.RoundUnit(y.FutureValue),
		})
	}

	return result
}

// Accumulate performs the month-by-month compounding without any rounding.
// Each month the contribution is added before that month's growth is applied.
// The step-up takes effect only after all twelve contributions of a year.
func Accumulate(p Plan) Accumulation {
	monthlyRate := MonthlyRate(p.ExpectedReturn)

	var acc Accumulation
	if p.Years > 0 {
		acc.Years = make([]YearTotals, 0, p.Years)
	}

	current := p.MonthlyInvestment
	for year := 1; year <= p.Years; year++ {
		yearInvestment := 0.0
		for month := 0; month < constants.MonthsPerYear; month++ {
			acc.FutureValue = (acc.FutureValue + current) * (1 + monthlyRate)
			acc.TotalInvestment += current
			yearInvestment += current
		}

		acc.Years = append(acc.Years, YearTotals{
			Year:              year,
			MonthlyInvestment: current,
			YearlyInvestment:  yearInvestment,
			FutureValue:       acc.FutureValue,
		})

		current += mathutil.ApplyPercentage(current, p.StepUpPercentage)
	}

	return acc
}

// EstimatedReturns returns the unrounded growth over the contributions.
func (a Accumulation) EstimatedReturns() float64 {
	return a.FutureValue - a.TotalInvestment
}

// Allocation splits the future value into the share that was invested and
// the share that came from returns, both in percent.
func (r Result) Allocation() (invested, returns float64) {
	if r.FutureValue <= 0 {
		return 0, 0
	}
	invested = mathutil.CalculatePercentage(r.TotalInvestment, r.FutureValue)
	returns = mathutil.CalculatePercentage(r.EstimatedReturns, r.FutureValue)
	return invested, returns
}
