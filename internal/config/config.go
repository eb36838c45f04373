// Package config loads the tool configuration: which compilers to run,
// where their executables live and how failures of each are treated.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

type Config struct {
	Baseline string   `yaml:"baseline"`
	Parallel int      `yaml:"parallel"`
	Timeout  Duration `yaml:"timeout"`
	Docker   Docker   `yaml:"docker"`
	Tools    []Tool   `yaml:"tools"`
}

type Tool struct {
	Name        string   `yaml:"name"`
	Family      string   `yaml:"family"`
	Path        string   `yaml:"path"`
	Criticality string   `yaml:"criticality"`
	Timeout     Duration `yaml:"timeout"`
	// Image runs the tool in a container instead of on the host.
	Image string `yaml:"image"`
	// Strategies overrides the family's strategy tokens. A null value
	// marks the strategy unsupported.
	Strategies map[string]*string `yaml:"strategies"`
}

// Docker holds resource limits for containerized tools.
type Docker struct {
	CPULimit    float64 `yaml:"cpu_limit"`
	MemoryLimit int64   `yaml:"memory_limit"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default is the configuration used without a config file: rsdd as the
// mandatory baseline, sdd and cnf2obdd as optional comparisons, each
// expected next to the working directory.
func Default() *Config {
	cfg := &Config{
		Baseline: "rsdd",
		Tools: []Tool{
			{Name: "rsdd", Family: "rsdd", Path: "./rsdd", Criticality: "mandatory"},
			{Name: "sdd", Family: "sdd", Path: "./sdd", Criticality: "optional"},
			{Name: "cnf2obdd", Family: "cnf2obdd", Path: "./cnf2obdd", Criticality: "optional"},
		},
	}
	if err := validate(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads path, or returns Default when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Tools) == 0 {
		return fmt.Errorf("no tools defined")
	}
	if cfg.Baseline == "" {
		cfg.Baseline = cfg.Tools[0].Name
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	seen := map[string]bool{}
	for i := range cfg.Tools {
		t := &cfg.Tools[i]
		if t.Name == "" {
			return fmt.Errorf("tool %d: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("tool %q defined twice", t.Name)
		}
		seen[t.Name] = true

		if t.Family == "" {
			t.Family = t.Name
		}
		if _, ok := adapter.LookupFamily(t.Family); !ok {
			return fmt.Errorf("tool %q: unknown family %q (known: %v)", t.Name, t.Family, adapter.FamilyNames())
		}
		if t.Path == "" {
			t.Path = "./" + t.Name
		}
		expanded, err := homedir.Expand(t.Path)
		if err != nil {
			return fmt.Errorf("tool %q: %w", t.Name, err)
		}
		t.Path = expanded

		if t.Criticality == "" {
			t.Criticality = "optional"
			if t.Name == cfg.Baseline {
				t.Criticality = "mandatory"
			}
		}
		if _, err := adapter.ParseCriticality(t.Criticality); err != nil {
			return fmt.Errorf("tool %q: %w", t.Name, err)
		}
		for id := range t.Strategies {
			if _, ok := strategy.Lookup(id); !ok {
				return fmt.Errorf("tool %q: unknown strategy %q", t.Name, id)
			}
		}
	}

	base := cfg.Tool(cfg.Baseline)
	if base == nil {
		return fmt.Errorf("baseline %q is not a configured tool", cfg.Baseline)
	}
	if base.Criticality != "mandatory" {
		return fmt.Errorf("baseline %q must be mandatory", cfg.Baseline)
	}
	return nil
}

// Tool returns the tool named name, or nil.
func (c *Config) Tool(name string) *Tool {
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i]
		}
	}
	return nil
}

// SetPath points every tool of family at path. It reports whether any tool
// belongs to the family.
func (c *Config) SetPath(family, path string) (bool, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return false, err
	}
	found := false
	for i := range c.Tools {
		if c.Tools[i].Family == family {
			c.Tools[i].Path = expanded
			found = true
		}
	}
	return found, nil
}
