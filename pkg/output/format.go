// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/format"
	"github.com/iwvelando/stepup-sip/pkg/sip"
	"golang.org/x/text/language"
)

// Document is the machine-readable view of a projection shared by the JSON
// output and the HTTP API.
type Document struct {
	Name             string           `json:"name,omitempty"`
	Plan             sip.Plan         `json:"plan"`
	FutureValue      float64          `json:"futureValue"`
	TotalInvestment  float64          `json:"totalInvestment"`
	EstimatedReturns float64          `json:"estimatedReturns"`
	Allocation       Allocation       `json:"allocation"`
	Display          Display          `json:"display"`
	YearlyBreakdown  []sip.YearRecord `json:"yearlyBreakdown"`
	Warnings         []string         `json:"warnings,omitempty"`
}

// Allocation is the invested vs returns split of the future value, in percent.
type Allocation struct {
	InvestedPercent float64 `json:"investedPercent"`
	ReturnsPercent  float64 `json:"returnsPercent"`
}

// Display carries abbreviated strings for the headline figures.
type Display struct {
	FutureValue      string `json:"futureValue"`
	TotalInvestment  string `json:"totalInvestment"`
	EstimatedReturns string `json:"estimatedReturns"`
}

// NewDocument builds the document for a projection.
func NewDocument(p projection.Projection) Document {
	invested, returns := p.Result.Allocation()
	breakdown := p.Result.YearlyBreakdown
	if breakdown == nil {
		breakdown = []sip.YearRecord{}
	}
	return Document{
		Name:             p.Name,
		Plan:             p.Plan,
		FutureValue:      p.Result.FutureValue,
		TotalInvestment:  p.Result.TotalInvestment,
		EstimatedReturns: p.Result.EstimatedReturns,
		Allocation: Allocation{
			InvestedPercent: invested,
			ReturnsPercent:  returns,
		},
		Display: Display{
			FutureValue:      constants.CurrencySymbol + format.Abbreviate(p.Result.FutureValue),
			TotalInvestment:  constants.CurrencySymbol + format.Abbreviate(p.Result.TotalInvestment),
			EstimatedReturns: constants.CurrencySymbol + format.Abbreviate(p.Result.EstimatedReturns),
		},
		YearlyBreakdown: breakdown,
		Warnings:        p.Warnings,
	}
}

// PrettyFormat writes a human-readable table per projection, grouping digits
// for the given locale.
func PrettyFormat(w io.Writer, results []projection.Projection, locale language.Tag) {
	money := func(amount float64) string {
		if amount < 0 {
			return "-" + constants.CurrencySymbol + format.Grouped(-amount, locale)
		}
		return constants.CurrencySymbol + format.Grouped(amount, locale)
	}

	for i, result := range results {
		plan := result.Plan
		_, _ = fmt.Fprintf(w, "--- Results for plan %s ---\n", result.Name)
		_, _ = fmt.Fprintf(w, "Monthly investment %s, step-up %s, expected return %s, %d years\n",
			money(plan.MonthlyInvestment), format.Percent(plan.StepUpPercentage, 1),
			format.Percent(plan.ExpectedReturn, 1), plan.Years)
		for _, warning := range result.Warnings {
			_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
		}

		_, _ = fmt.Fprintf(w, "Year | Monthly Investment | Yearly Investment | Future Value\n")
		_, _ = fmt.Fprintf(w, "____ | __________________ | _________________ | ____________\n")
		for _, row := range result.Result.YearlyBreakdown {
			_, _ = fmt.Fprintf(w, "%4d | %s | %s | %s\n", row.Year,
				money(row.MonthlyInvestment), money(row.YearlyInvestment), money(row.CumulativeFutureValue))
		}

		invested, returns := result.Result.Allocation()
		_, _ = fmt.Fprintf(w, "Total investment:  %s (%s)\n", money(result.Result.TotalInvestment), format.Abbreviate(result.Result.TotalInvestment))
		_, _ = fmt.Fprintf(w, "Estimated returns: %s (%s)\n", money(result.Result.EstimatedReturns), format.Abbreviate(result.Result.EstimatedReturns))
		_, _ = fmt.Fprintf(w, "Future value:      %s (%s)\n", money(result.Result.FutureValue), format.Abbreviate(result.Result.FutureValue))
		_, _ = fmt.Fprintf(w, "Allocation:        %s invested, %s returns\n", format.Percent(invested, 1), format.Percent(returns, 1))

		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes every breakdown row of every projection in comma-separated value format.
func CsvFormat(w io.Writer, results []projection.Projection) {
	_, _ = io.WriteString(w, CsvString(results))
}

// CsvString renders the projections as CSV.
func CsvString(results []projection.Projection) string {
	var b strings.Builder
	b.WriteString(`"plan","year","monthlyInvestment","yearlyInvestment","cumulativeFutureValue"`)
	b.WriteString("\n")
	for _, result := range results {
		name := strings.ReplaceAll(result.Name, `"`, `""`)
		for _, row := range result.Result.YearlyBreakdown {
			fmt.Fprintf(&b, `"%s","%d","%.0f","%.0f","%.0f"`, name, row.Year,
				row.MonthlyInvestment, row.YearlyInvestment, row.CumulativeFutureValue)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// JSONFormat writes the projections as an indented JSON array.
func JSONFormat(w io.Writer, results []projection.Projection) error {
	docs := make([]Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, NewDocument(result))
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode projections: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
