// Package projection runs the configured plans through the step-up SIP
// engine.
package projection

import (
	"fmt"
	"time"

	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/pkg/sip"
	"github.com/iwvelando/stepup-sip/pkg/validation"
	"go.uber.org/zap"
)

// Projection holds the computed outcome of one plan.
type Projection struct {
	Name     string
	Plan     sip.Plan
	Result   sip.Result
	Warnings []string
}

// GetProjections validates and computes every active plan in the configuration.
func GetProjections(logger *zap.Logger, conf config.Configuration) ([]Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Projection
	for _, plan := range conf.Plans {
		if !plan.Active {
			logger.Debug(fmt.Sprintf("skipping plan %s because it is inactive", plan.Name),
				zap.String("op", "projection.GetProjections"),
			)
			continue
		}

		result, err := ProjectPlan(logger, plan)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// ProjectPlan validates, clamps and computes a single plan.
func ProjectPlan(logger *zap.Logger, plan config.Plan) (Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sipPlan, warnings, err := validation.PreparePlan(plan.Inputs())
	if err != nil {
		return Projection{}, fmt.Errorf("plan %s: %w", plan.Name, err)
	}
	for _, warning := range warnings {
		logger.Warn("input adjusted: "+warning,
			zap.String("op", "projection.ProjectPlan"),
			zap.String("plan", plan.Name),
		)
	}

	start := time.Now()
	result := sipPlan.Compute()
	if err := validation.ValidateResult(result); err != nil {
		return Projection{}, fmt.Errorf("plan %s: %w", plan.Name, err)
	}

	logger.Debug("plan computed",
		zap.String("op", "projection.ProjectPlan"),
		zap.String("plan", plan.Name),
		zap.Int("years", sipPlan.Years),
		zap.Float64("futureValue", result.FutureValue),
		zap.Float64("totalInvestment", result.TotalInvestment),
		zap.Duration("duration", time.Since(start)),
	)

	return Projection{
		Name:     plan.Name,
		Plan:     sipPlan,
		Result:   result,
		Warnings: warnings,
	}, nil
}
