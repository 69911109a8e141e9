// Package config defines the data structures related to configuration and
// includes functions for loading and checking it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/format"
	"github.com/iwvelando/stepup-sip/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for stepup-sip.
type Configuration struct {
	Plans   []Plan        `yaml:"plans"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
	Locale string `yaml:"locale,omitempty"` // digit grouping for pretty output, e.g. en-IN
}

// Plan is one named step-up SIP to project. Years is kept as a float so a
// fractional horizon in the file is reported instead of truncated.
type Plan struct {
	Name              string  `yaml:"name"`
	Active            bool    `yaml:"active"`
	MonthlyInvestment float64 `yaml:"monthlyInvestment"`
	StepUpPercentage  float64 `yaml:"stepUpPercentage"`
	ExpectedReturn    float64 `yaml:"expectedReturn"`
	Years             float64 `yaml:"years"`
}

// Inputs returns the plan's values in the form expected by the validation layer.
func (p Plan) Inputs() validation.Inputs {
	return validation.Inputs{
		MonthlyInvestment: p.MonthlyInvestment,
		StepUpPercentage:  p.StepUpPercentage,
		ExpectedReturn:    p.ExpectedReturn,
		Years:             p.Years,
	}
}

// DefaultPlan returns the plan the calculator starts with.
func DefaultPlan() Plan {
	return Plan{
		Name:              constants.DefaultPlanName,
		Active:            true,
		MonthlyInvestment: constants.DefaultMonthlyInvestment,
		StepUpPercentage:  constants.DefaultStepUpPercentage,
		ExpectedReturn:    constants.DefaultExpectedReturn,
		Years:             constants.DefaultYears,
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. SIP_ environment variables override keys of the file.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// The process environment is not consulted; the document is taken as is.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActivePlans returns the plans marked active, in file order.
func (c *Configuration) ActivePlans() []Plan {
	var active []Plan
	for _, plan := range c.Plans {
		if plan.Active {
			active = append(active, plan)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActivePlans()) == 0 {
		warnings = append(warnings, "no active plans configured")
	}

	seen := make(map[string]int)
	for i, plan := range c.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			warnings = append(warnings, fmt.Sprintf("plan %d has no name", i))
			continue
		}
		if first, ok := seen[name]; ok {
			warnings = append(warnings, fmt.Sprintf("plan '%s' at position %d duplicates position %d", name, i, first))
			continue
		}
		seen[name] = i
	}

	if c.Output.Locale != "" {
		if _, err := format.ParseLocale(c.Output.Locale); err != nil {
			warnings = append(warnings, fmt.Sprintf("%v, falling back to %s", err, constants.DefaultLocale))
		}
	}

	return warnings
}
