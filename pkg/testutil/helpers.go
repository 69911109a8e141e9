// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/pkg/sip"
)

// FindProjection finds a projection by plan name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindProjection(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindYear returns the breakdown row for the given 1-based year, or nil.
func FindYear(breakdown []sip.YearRecord, year int) *sip.YearRecord {
	for i := range breakdown {
		if breakdown[i].Year == year {
			return &breakdown[i]
		}
	}
	return nil
}

// SumYearlyInvestment adds up the rounded yearly investments of a breakdown.
func SumYearlyInvestment(breakdown []sip.YearRecord) float64 {
	total := 0.0
	for _, row := range breakdown {
		total += row.YearlyInvestment
	}
	return total
}
