package app

import (
	"strings"

	"github.com/spf13/pflag"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scene      string
	Width      int
	Height     int
	TPS        int
	Seed       int64
	Fullscreen bool
	Set        []string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scene: "citygrow", Width: 1920, Height: 1080, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided flag set.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to run")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene reset")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "run borderless fullscreen")
	fs.StringArrayVar(&c.Set, "set", nil, "scene tunable as key=value (repeatable)")
}

// Options parses the repeated --set pairs into the flat key/value map
// scene factories consume. Malformed pairs are ignored.
func (c *Config) Options() map[string]string {
	if len(c.Set) == 0 {
		return nil
	}
	opts := make(map[string]string, len(c.Set))
	for _, kv := range c.Set {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		opts[k] = v
	}
	return opts
}
