package wallart

import (
	"math"
	"strconv"
)

type UnitSystem string

const (
	Imperial UnitSystem = "imperial"
	Metric   UnitSystem = "metric"
)

const cmPerInch = 2.54

// ParseUnitSystem accepts the query-string spellings used by the site.
func ParseUnitSystem(s string) (UnitSystem, bool) {
	switch s {
	case "imperial", "in", "inches":
		return Imperial, true
	case "metric", "cm":
		return Metric, true
	}
	return "", false
}

// Dimensions are the human readable sides of a print in one unit system.
type Dimensions struct {
	Width  string     `json:"width"`
	Height string     `json:"height"`
	Label  string     `json:"label"`
	Units  UnitSystem `json:"units"`
}

// ComputeDisplay formats the option's size. Imperial keeps the literal inch
// value with a double-quote suffix; metric rounds inches*2.54 to whole cm.
func ComputeDisplay(opt PrintOption, units UnitSystem) Dimensions {
	w := FormatLength(opt.WidthIn, units)
	h := FormatLength(opt.HeightIn, units)
	if units != Metric {
		units = Imperial
	}
	return Dimensions{
		Width:  w,
		Height: h,
		Label:  w + " x " + h,
		Units:  units,
	}
}

func FormatLength(inches float64, units UnitSystem) string {
	if units == Metric {
		return strconv.Itoa(InchesToCentimeters(inches)) + "cm"
	}
	return strconv.FormatFloat(inches, 'f', -1, 64) + `"`
}

func InchesToCentimeters(inches float64) int {
	return int(math.Round(inches * cmPerInch))
}
