package model

import (
	"errors"
	"fmt"
)

// ErrInvalidKnife is returned for knife settings that cannot produce a toolpath.
var ErrInvalidKnife = errors.New("invalid knife settings")

// KnifeSettings configures the toolpath emitted for a cut sequence.
// Coordinates are produced in mm by scaling grid cells by CellSize.
type KnifeSettings struct {
	CellSize   float64 `json:"cell_size" toml:"cell_size"`     // mm per grid cell
	FeedRate   float64 `json:"feed_rate" toml:"feed_rate"`     // Cutting feed rate mm/min
	PlungeRate float64 `json:"plunge_rate" toml:"plunge_rate"` // Plunge feed rate mm/min
	SafeZ      float64 `json:"safe_z" toml:"safe_z"`           // Retract height mm
	CutDepth   float64 `json:"cut_depth" toml:"cut_depth"`     // Depth below the surface mm
	Profile    string  `json:"profile" toml:"profile"`         // Post-processor profile name
}

func DefaultKnifeSettings() KnifeSettings {
	return KnifeSettings{
		CellSize:   10.0,
		FeedRate:   1200.0,
		PlungeRate: 400.0,
		SafeZ:      5.0,
		CutDepth:   3.0,
		Profile:    "Generic",
	}
}

// Validate rejects settings whose toolpath would not cut: the cell scale,
// both feed rates and the cut depth must be positive and the retract height
// must not be below the surface.
func (k KnifeSettings) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"cell_size", k.CellSize},
		{"feed_rate", k.FeedRate},
		{"plunge_rate", k.PlungeRate},
		{"cut_depth", k.CutDepth},
	}
	for _, f := range positive {
		if !(f.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidKnife, f.name, f.value)
		}
	}
	if !(k.SafeZ >= 0) {
		return fmt.Errorf("%w: safe_z must not be negative, got %g", ErrInvalidKnife, k.SafeZ)
	}
	return nil
}

// GCodeProfile defines a post-processor configuration for different controllers.
type GCodeProfile struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	StartCode     []string `json:"start_code"`
	RapidMove     string   `json:"rapid_move"`
	FeedMove      string   `json:"feed_move"`
	EndCode       []string `json:"end_code"`
	CommentPrefix string   `json:"comment_prefix"`
	CommentSuffix string   `json:"comment_suffix"`
	DecimalPlaces int      `json:"decimal_places"`
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration",
		StartCode:     []string{"G90", "G21", "G17"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Fanuc",
		Description:   "Fanuc-style controllers with parenthesised comments",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		RapidMove:     "G00",
		FeedMove:      "G01",
		EndCode:       []string{"G00 Z[SafeZ]", "G28 X0 Y0", "M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range GCodeProfiles {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1]
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range GCodeProfiles {
		names = append(names, p.Name)
	}
	return names
}
