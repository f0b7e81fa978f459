package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to every solve
	DefaultMethod      Method `toml:"default_method"`
	DefaultMaxSteps    int    `toml:"default_max_steps"`
	DefaultDropInvalid bool   `toml:"default_drop_invalid"`

	Knife KnifeSettings `toml:"knife"`

	// Application preferences
	CacheDir     string   `toml:"cache_dir"` // empty = ~/.slicecut/cache
	CacheEnabled bool     `toml:"cache_enabled"`
	RecentInputs []string `toml:"recent_inputs"`
}

// MaxRecentInputs bounds the RecentInputs list.
const MaxRecentInputs = 10

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMethod:      defaults.Method,
		DefaultMaxSteps:    defaults.MaxSteps,
		DefaultDropInvalid: defaults.DropInvalid,
		Knife:              DefaultKnifeSettings(),
		CacheEnabled:       true,
		RecentInputs:       []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a SolveSettings struct.
func (c AppConfig) ApplyToSettings(s *SolveSettings) {
	if c.DefaultMethod != "" {
		s.Method = c.DefaultMethod
	}
	s.MaxSteps = c.DefaultMaxSteps
	s.DropInvalid = c.DefaultDropInvalid
}

// AddRecentInput moves path to the front of the recent list, trimming it to MaxRecentInputs.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentInputs {
		recent = recent[:MaxRecentInputs]
	}
	c.RecentInputs = recent
}
