package style

import (
	"strconv"
	"strings"
)

// Palette maps a color index, as stored in a color cell, to a hex color.
type Palette interface {
	Color(index string) (string, bool)
}

// ColorTable is a Palette indexed by small integers.
type ColorTable map[int]string

// DefaultPalette holds the 24 standard document colors.
var DefaultPalette = ColorTable{
	0:  "#000000",
	1:  "#FFFFFF",
	2:  "#FF0000",
	3:  "#00FF00",
	4:  "#0000FF",
	5:  "#FFFF00",
	6:  "#FF00FF",
	7:  "#00FFFF",
	8:  "#800000",
	9:  "#008000",
	10: "#000080",
	11: "#808000",
	12: "#800080",
	13: "#008080",
	14: "#C0C0C0",
	15: "#E6E6E6",
	16: "#CDCDCD",
	17: "#B3B3B3",
	18: "#9A9A9A",
	19: "#808080",
	20: "#666666",
	21: "#4D4D4D",
	22: "#333333",
	23: "#1A1A1A",
}

// Color implements Palette.
func (t ColorTable) Color(index string) (string, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return "", false
	}
	c, ok := t[i]
	return c, ok
}

// With returns a copy of t where entries of overrides replace or extend it.
// Documents carry their own color table that takes precedence over the
// defaults.
func (t ColorTable) With(overrides map[int]string) ColorTable {
	out := make(ColorTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = strings.ToUpper(v)
	}
	return out
}
