package model

// Config holds the merge pipeline settings.
type Config struct {
	RawDir    string `yaml:"raw_dir" mapstructure:"raw_dir"`       // directory holding <prefix>_<year>.csv files
	OutDir    string `yaml:"out_dir" mapstructure:"out_dir"`       // directory the corrected files are written to
	FixesFile string `yaml:"fixes_file" mapstructure:"fixes_file"` // supplementary fixes CSV; missing file means pass-through
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`         // yearly file name prefix
	Jobs      int    `yaml:"jobs" mapstructure:"jobs"`             // years processed concurrently
}

// DefaultConfig returns the built-in defaults, matching the layout the
// scraper produces.
func DefaultConfig() *Config {
	return &Config{
		RawDir:    "data/raw",
		OutDir:    "data/processed",
		FixesFile: "data/raw/metacritic_missing_fixed_reviews.csv",
		Prefix:    "metacritic_movies",
		Jobs:      1,
	}
}
