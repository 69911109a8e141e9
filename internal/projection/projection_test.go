package projection

import (
	"errors"
	"testing"

	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetProjections(t *testing.T) {
	conf := config.Configuration{
		Plans: []config.Plan{
			config.DefaultPlan(),
			{Name: "inactive", Active: false, MonthlyInvestment: 1000, Years: 1},
			{Name: "flat", Active: true, MonthlyInvestment: 1000, Years: 1},
		},
	}

	results, err := GetProjections(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 projections, got %d", len(results))
	}

	if results[0].Name != "default" {
		t.Errorf("Expected first projection default, got %s", results[0].Name)
	}
	if results[0].Result.FutureValue != 1687163 {
		t.Errorf("Expected future value 1687163, got %.0f", results[0].Result.FutureValue)
	}
	if results[1].Name != "flat" {
		t.Errorf("Expected second projection flat, got %s", results[1].Name)
	}
	if results[1].Result.FutureValue != 12000 || results[1].Result.EstimatedReturns != 0 {
		t.Errorf("Unexpected flat result: %+v", results[1].Result)
	}
}

func TestGetProjectionsNilLogger(t *testing.T) {
	conf := config.Configuration{Plans: []config.Plan{config.DefaultPlan()}}
	if _, err := GetProjections(nil, conf); err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
}

func TestGetProjectionsInvalidPlan(t *testing.T) {
	conf := config.Configuration{
		Plans: []config.Plan{
			config.DefaultPlan(),
			{Name: "broken", Active: true, MonthlyInvestment: -10, Years: 10},
		},
	}

	results, err := GetProjections(zap.NewNop(), conf)
	if err == nil {
		t.Fatal("Expected error for negative monthly investment")
	}
	if !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected the valid plan to be returned alongside the error, got %d", len(results))
	}
}

func TestProjectPlanClampsAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	plan := config.Plan{Name: "wild", Active: true, MonthlyInvestment: 1000, StepUpPercentage: 500, ExpectedReturn: 12, Years: 2}
	result, err := ProjectPlan(logger, plan)
	if err != nil {
		t.Fatalf("ProjectPlan() error = %v", err)
	}

	if result.Plan.StepUpPercentage != 100 {
		t.Errorf("Expected step-up clamped to 100, got %v", result.Plan.StepUpPercentage)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", result.Warnings)
	}
	if logs.Len() != 1 {
		t.Errorf("Expected 1 warning log entry, got %d", logs.Len())
	}
	if got := result.Result.YearlyBreakdown[1].MonthlyInvestment; got != 2000 {
		t.Errorf("Expected second-year contribution 2000, got %v", got)
	}
}
