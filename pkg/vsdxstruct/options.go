// Package vsdxstruct provides structured extraction of Visio diagrams.
package vsdxstruct

import (
	"fmt"

	"go.uber.org/zap"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts shapes with text only, without paths or styles.
	ModeLight Mode = "light"
	// ModeStandard extracts shapes with geometry, text or connectors, with paths and styles.
	ModeStandard Mode = "standard"
	// ModeVerbose extracts all shapes including dimensions, shape data, and image bytes.
	ModeVerbose Mode = "verbose"
)

// DefaultWorkers is the default number of shapes compiled concurrently.
const DefaultWorkers = 4

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", s)
	}
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// Workers bounds the number of shapes compiled concurrently.
	// Values below 1 use DefaultWorkers.
	Workers int
	// IncludeMarkup specifies whether to render styled text markup.
	// If nil, defaults to false for light mode, true otherwise.
	IncludeMarkup *bool
	// IncludeData specifies whether to include shape data rows.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeData *bool
	// Logger receives diagnostics. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:    ModeStandard,
		Workers: DefaultWorkers,
	}
}

// ShouldIncludeMarkup returns whether to render text markup.
func (o Options) ShouldIncludeMarkup() bool {
	if o.IncludeMarkup != nil {
		return *o.IncludeMarkup
	}
	return o.Mode != ModeLight
}

// ShouldIncludeData returns whether to include shape data rows.
func (o Options) ShouldIncludeData() bool {
	if o.IncludeData != nil {
		return *o.IncludeData
	}
	return o.Mode == ModeVerbose
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return DefaultWorkers
	}
	return o.Workers
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
