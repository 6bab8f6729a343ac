// Package parser reads the parts of a .vsdx package: stylesheets, colors,
// masters and pages.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/units"
)

// InchesToPixels converts a drawing length to whole device pixels.
// Visio stores every length in inches; 1 inch = units.ConversionFactor px.
func InchesToPixels(inches float64) int {
	return int(math.Round(units.ToPixels(inches)))
}

// parseFloat parses a cell value, reporting false for empty or
// non-numeric values such as "Themed".
func parseFloat(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
