package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"

	"github.com/they4kman/rgep/evolve"
)

//go:embed schema.cue
var schema string

type Config struct {
	// Seed for the run's random source. Zero picks one from the clock.
	Seed int64 `json:"seed" toml:"seed"`

	GEP evolve.Params   `json:"gep" toml:"gep"`
	GA  evolve.GAParams `json:"ga" toml:"ga"`
	Log LogConfig       `json:"log" toml:"log"`
}

type LogConfig struct {
	// One of debug, info, warn, error
	Level string `json:"level" toml:"level"`

	// When set, records are also written to this file as JSON lines
	File string `json:"file" toml:"file"`
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}

func Default() *Config {
	return &Config{
		GEP: *evolve.DefaultParams(),
		GA:  *evolve.DefaultGAParams(),
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
// Keys that do not name a setting are an error.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded schema, then checks each parameter set
func (c *Config) Validate() error {
	ctx := cuecontext.New()
	s := ctx.CompileString("close({"+schema+"})", cue.Filename("schema.cue"))
	if err := s.Err(); err != nil {
		return err
	}

	value := ctx.Encode(c)
	if err := value.Err(); err != nil {
		return err
	}
	if err := s.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.GEP.Validate(); err != nil {
		return fmt.Errorf("gep: %w", err)
	}
	if err := c.GA.Validate(); err != nil {
		return fmt.Errorf("ga: %w", err)
	}
	return nil
}
