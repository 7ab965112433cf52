package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/phoscity/svg2cetz/pkg/convert"
	"github.com/phoscity/svg2cetz/pkg/pipeline"
)

// Config holds defaults loaded from the user's config file. Every field is
// optional; flags given on the command line take precedence.
//
// Example ~/.config/svg2cetz/config.toml:
//
//	precision = 3
//	wrap = "figure"
//	ignore-font = true
//	default-font = "Libertinus Serif"
//	marker = "no_unknown_marker"
type Config struct {
	Precision   *int   `toml:"precision"`
	Wrap        string `toml:"wrap"`
	IgnoreFont  bool   `toml:"ignore-font"`
	DefaultFont string `toml:"default-font"`
	Marker      string `toml:"marker"`
}

// loadConfig reads the config file if present. A missing file is not an
// error; a malformed one is.
func loadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// apply copies the configured values into opts. Options already set (by a
// flag the user passed) are left alone; set reports which flags changed.
func (c *Config) apply(opts *pipeline.Options, set func(name string) bool) {
	if c.Precision != nil && !set("precision") {
		opts.Precision = c.Precision
	}
	if c.Wrap != "" && !set("wrap") {
		opts.Wrap = c.Wrap
	}
	if c.IgnoreFont && !set("ignore-font") {
		opts.IgnoreFont = true
	}
	if c.DefaultFont != "" && !set("default-font") {
		opts.DefaultFont = c.DefaultFont
	}
	if c.Marker != "" && !set("marker") {
		opts.Marker = convert.MarkerPolicy(c.Marker)
	}
}
