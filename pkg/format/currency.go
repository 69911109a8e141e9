// Package format renders monetary values for display. Nothing here feeds
// back into computed results.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	lakhDivisor  = decimal.NewFromFloat(constants.Lakh)
	croreDivisor = decimal.NewFromFloat(constants.Crore)
)

// Rupee returns a whole-unit rupee string with Indian digit grouping (e.g., "₹16,87,163").
func Rupee(amount float64) string {
	grouped := IndianNumber(amount)
	if strings.HasPrefix(grouped, "-") {
		return "-" + constants.CurrencySymbol + grouped[1:]
	}
	return constants.CurrencySymbol + grouped
}

// IndianNumber rounds to whole units and groups digits the Indian way: the
// last three digits, then pairs (e.g., "1,23,45,678").
func IndianNumber(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	rounded := math.Round(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	digits := fmt.Sprintf("%.0f", math.Abs(rounded))
	if len(digits) <= 3 {
		return sign + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}

	return sign + builder.String() + "," + tail
}

// Abbreviate shortens large amounts to lakhs ("16.87 L") or crores
// ("1.25 Cr"). Smaller amounts are returned with Indian grouping.
func Abbreviate(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	value := decimal.NewFromFloat(amount)
	switch {
	case amount >= constants.Crore:
		return value.Div(croreDivisor).StringFixed(2) + " Cr"
	case amount >= constants.Lakh:
		return value.Div(lakhDivisor).StringFixed(2) + " L"
	}
	return IndianNumber(amount)
}

// Grouped rounds to whole units and groups digits for the given locale.
// Locales in India use lakh/crore grouping; everything else is delegated to
// the x/text message printer.
func Grouped(amount float64, tag language.Tag) string {
	if region, _ := tag.Region(); region.String() == "IN" {
		return IndianNumber(amount)
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%.0f", math.Round(amount))
}

// ParseLocale parses a BCP 47 locale, falling back to the default locale
// when value is empty.
func ParseLocale(value string) (language.Tag, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = constants.DefaultLocale
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", value, err)
	}
	return tag, nil
}

// Percent formats a percentage with the given number of decimal places (e.g., "56.7%").
func Percent(value float64, places int32) string {
	if !mathutil.IsFinite(value) {
		return nonFinite(value) + "%"
	}
	return decimal.NewFromFloat(value).StringFixed(places) + "%"
}

// nonFinite renders NaN and the infinities the way strconv does.
func nonFinite(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
