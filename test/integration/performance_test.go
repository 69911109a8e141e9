package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/pkg/sip"
	"go.uber.org/zap"
)

// TestPerformance checks that the longest supported horizon stays well within
// interactive latency.
func TestPerformance(t *testing.T) {
	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	for i := 0; i < 1000; i++ {
		if _, err := projection.GetProjections(zap.NewNop(), *conf); err != nil {
			t.Fatalf("GetProjections failed: %v", err)
		}
	}
	projectTime := time.Since(start)

	t.Logf("Performance: load=%v, 1000 projection runs=%v", loadTime, projectTime)

	if projectTime > 5*time.Second {
		t.Errorf("Projection runs took too long: %v", projectTime)
	}
}

func BenchmarkComputeLongHorizon(b *testing.B) {
	plan := sip.Plan{MonthlyInvestment: 5000, StepUpPercentage: 10, ExpectedReturn: 12, Years: 100}
	for i := 0; i < b.N; i++ {
		_ = plan.Compute()
	}
}

func BenchmarkComputeReference(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = sip.Compute(5000, 10, 12, 10)
	}
}
