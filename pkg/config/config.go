// Package config loads hclayout settings from TOML files.
//
// A config file mirrors the CLI flags:
//
//	[layout]
//	node_radius = 5.0
//	isolates = "grid"
//	iterations = "adaptive"
//	max_levels = 64
//
//	[community]
//	detector = "louvain"
//	resolution = 1.0
//
//	[output]
//	dir = "out"
//	group_level = 0
//
// Unset keys keep their defaults. Unknown keys are rejected so that typos do
// not go unnoticed.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hclayout/pkg/community"
	"github.com/matzehuels/hclayout/pkg/errors"
	"github.com/matzehuels/hclayout/pkg/layout"
)

// Config is the content of a config file.
type Config struct {
	Layout    layout.Options `toml:"layout"`
	Community Community      `toml:"community"`
	Output    Output         `toml:"output"`
}

// Community selects the community detector.
type Community struct {
	Detector   string  `toml:"detector"`
	Resolution float64 `toml:"resolution"`
	Seed       uint64  `toml:"seed"`
}

// Output controls where results go.
type Output struct {
	// Dir receives output files. Empty means next to the input.
	Dir string `toml:"dir"`
	// GroupLevel adds cluster indices at this tree depth to the positions
	// file. Nil leaves them out.
	GroupLevel *int `toml:"group_level"`
}

// Load reads the config file at path. An empty path returns the zero
// config, which selects all defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config without modifying it.
func (c *Config) Validate() error {
	if c.Community.Resolution < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "resolution must not be negative, got %v", c.Community.Resolution)
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	if c.Output.GroupLevel != nil {
		return errors.ValidateMinInt("group level", *c.Output.GroupLevel, 0)
	}
	return nil
}

// Options returns the layout options described by the config with the
// detector resolved. Unset fields stay zero so that callers can override
// them before [layout.New] applies defaults.
func (c *Config) Options() (layout.Options, error) {
	d, err := community.New(c.Community.Detector, c.Community.Resolution, c.Community.Seed)
	if err != nil {
		return layout.Options{}, err
	}
	opts := c.Layout
	opts.Detector = d
	return opts, nil
}
