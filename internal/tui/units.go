package tui

import (
	"fmt"
	"math"
	"strconv"

	"healthscore/internal/config"
)

const (
	poundsPerKg = 2.20462
	cmPerInch   = 2.54
)

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// IsPounds reports whether weights are shown in pounds
func (u Units) IsPounds() bool {
	return u.cfg.WeightUnit == "lb"
}

// WeightLabel returns the short unit label ("kg" or "lb")
func (u Units) WeightLabel() string {
	if u.IsPounds() {
		return "lb"
	}
	return "kg"
}

// FormatWeight formats a weight in kilograms in the preferred unit
func (u Units) FormatWeight(kg float64) string {
	if u.IsPounds() {
		return fmt.Sprintf("%.1f lb", kg*poundsPerKg)
	}
	return fmt.Sprintf("%.1f kg", kg)
}

// FormatWeightPtr formats an optional weight, "-" when missing
func (u Units) FormatWeightPtr(kg *float64) string {
	if kg == nil {
		return "-"
	}
	return u.FormatWeight(*kg)
}

// FormatWeightRange formats an ideal weight range
func (u Units) FormatWeightRange(low, high *float64) string {
	if low == nil || high == nil {
		return "-"
	}
	lo, hi := *low, *high
	if u.IsPounds() {
		lo, hi = lo*poundsPerKg, hi*poundsPerKg
	}
	return fmt.Sprintf("%.0f-%.0f %s", lo, hi, u.WeightLabel())
}

// FormatHeight formats a height in centimetres. Pound users get feet and inches.
func (u Units) FormatHeight(cm float64) string {
	if !u.IsPounds() {
		return fmt.Sprintf("%.0f cm", cm)
	}
	inches := int(math.Round(cm / cmPerInch))
	return fmt.Sprintf("%d'%d\"", inches/12, inches%12)
}

func formatFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
