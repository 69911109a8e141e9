package validation

import "github.com/iwvelando/stepup-sip/pkg/constants"

// FieldLimit describes the accepted band of one input together with the
// slider range a calculator front end offers for it.
type FieldLimit struct {
	Field      string  `json:"field"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Default    float64 `json:"default"`
	SliderMax  float64 `json:"sliderMax"`
	SliderStep float64 `json:"sliderStep"`
}

// Limits returns the band of every plan input in form order. Min and Max are
// the values ClampInputs enforces.
func Limits() []FieldLimit {
	return []FieldLimit{
		{
			Field:      "monthlyInvestment",
			Min:        constants.MinMonthlyInvestment,
			Max:        constants.MaxMonthlyInvestment,
			Default:    constants.DefaultMonthlyInvestment,
			SliderMax:  constants.SliderMaxMonthlyInvestment,
			SliderStep: constants.SliderStepMonthlyInvestment,
		},
		{
			Field:      "stepUpPercentage",
			Min:        constants.MinStepUpPercentage,
			Max:        constants.MaxStepUpPercentage,
			Default:    constants.DefaultStepUpPercentage,
			SliderMax:  constants.SliderMaxStepUpPercentage,
			SliderStep: constants.SliderStepStepUpPercentage,
		},
		{
			Field:      "expectedReturn",
			Min:        constants.MinExpectedReturn,
			Max:        constants.MaxExpectedReturn,
			Default:    constants.DefaultExpectedReturn,
			SliderMax:  constants.SliderMaxExpectedReturn,
			SliderStep: constants.SliderStepExpectedReturn,
		},
		{
			Field:      "years",
			Min:        constants.MinYears,
			Max:        constants.MaxYears,
			Default:    constants.DefaultYears,
			SliderMax:  constants.SliderMaxYears,
			SliderStep: constants.SliderStepYears,
		},
	}
}
