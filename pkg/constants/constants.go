// Package constants provides shared constants for the stepup-sip application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Indian numbering units used for abbreviated display.
const (
	// Lakh is one hundred thousand currency units
	Lakh = 100_000.0

	// Crore is ten million currency units
	Crore = 10_000_000.0

	// CurrencySymbol is prefixed to formatted amounts
	CurrencySymbol = "₹"

	// DefaultLocale is the locale used for digit grouping in human-readable output
	DefaultLocale = "en-IN"
)

// Default plan, matching the calculator's initial state.
const (
	DefaultMonthlyInvestment = 5000.0
	DefaultStepUpPercentage  = 10.0
	DefaultExpectedReturn    = 12.0
	DefaultYears             = 10
	DefaultPlanName          = "default"
)

// Input bands enforced by the validation layer. Values outside a band are
// clamped with a warning. MaxMonthlyInvestment keeps the accumulation finite
// at the widest step-up, return and horizon the other bands allow.
const (
	MinMonthlyInvestment = 0.0
	MaxMonthlyInvestment = 1_000_000_000.0
	MinStepUpPercentage  = 0.0
	MaxStepUpPercentage  = 100.0
	MinExpectedReturn    = 0.0
	MaxExpectedReturn    = 100.0
	MinYears             = 1
	MaxYears             = 100
)

// Slider ranges of the calculator UI. These are hints for front ends, not
// validation limits.
const (
	SliderMaxMonthlyInvestment  = 100_000.0
	SliderStepMonthlyInvestment = 500.0
	SliderMaxStepUpPercentage   = 50.0
	SliderStepStepUpPercentage  = 1.0
	SliderMaxExpectedReturn     = 30.0
	SliderStepExpectedReturn    = 0.5
	SliderMaxYears              = 30
	SliderStepYears             = 1
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix is the prefix of environment variables overriding configuration keys
	EnvPrefix = "SIP"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)
