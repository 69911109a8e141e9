package integration

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/pkg/format"
	"github.com/iwvelando/stepup-sip/pkg/output"
	"github.com/iwvelando/stepup-sip/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loadProjections runs the test configuration exactly as the compute command does.
func loadProjections(t *testing.T) (*config.Configuration, []projection.Projection) {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	require.NoError(t, err)
	require.Empty(t, conf.ValidateConfiguration())

	results, err := projection.GetProjections(zap.NewNop(), *conf)
	require.NoError(t, err)
	return conf, results
}

// TestMainIntegrationBaseline pins the figures produced for the test configuration.
func TestMainIntegrationBaseline(t *testing.T) {
	_, results := loadProjections(t)
	require.Len(t, results, 3)

	baseline := map[string]struct {
		futureValue     float64
		totalInvestment float64
		returns         float64
	}{
		"reference":          {1687163, 956245, 730918},
		"level sip":          {1161695, 600000, 561695},
		"aggressive step-up": {427691, 378300, 49391},
	}

	for name, expected := range baseline {
		result := testutil.FindProjection(results, name)
		require.NotNil(t, result, "missing plan %s", name)

		assert.Equal(t, expected.futureValue, result.Result.FutureValue, name)
		assert.Equal(t, expected.totalInvestment, result.Result.TotalInvestment, name)
		assert.Equal(t, expected.returns, result.Result.EstimatedReturns, name)
	}

	assert.Nil(t, testutil.FindProjection(results, "parked"), "inactive plan should be skipped")
}

func TestBreakdownMatchesTotals(t *testing.T) {
	_, results := loadProjections(t)

	for _, result := range results {
		breakdown := result.Result.YearlyBreakdown
		require.Len(t, breakdown, result.Plan.Years, result.Name)

		last := testutil.FindYear(breakdown, result.Plan.Years)
		require.NotNil(t, last)
		assert.Equal(t, result.Result.FutureValue, last.CumulativeFutureValue, result.Name)

		drift := testutil.SumYearlyInvestment(breakdown) - result.Result.TotalInvestment
		assert.LessOrEqual(t, drift, float64(result.Plan.Years)/2, result.Name)
		assert.GreaterOrEqual(t, drift, -float64(result.Plan.Years)/2, result.Name)
	}
}

func TestOutputFormatsAgree(t *testing.T) {
	conf, results := loadProjections(t)

	locale, err := format.ParseLocale(conf.Output.Locale)
	require.NoError(t, err)

	var pretty bytes.Buffer
	output.PrettyFormat(&pretty, results, locale)
	csv := output.CsvString(results)

	var jsonOut bytes.Buffer
	require.NoError(t, output.JSONFormat(&jsonOut, results))

	for _, result := range results {
		assert.Contains(t, pretty.String(), "--- Results for plan "+result.Name+" ---")
		assert.Contains(t, csv, `"`+result.Name+`","1",`)
		assert.Contains(t, jsonOut.String(), `"name": "`+result.Name+`"`)
	}

	// 3 plans: 10 + 10 + 3 rows plus the header.
	assert.Len(t, strings.Split(strings.TrimSpace(csv), "\n"), 24)
}
