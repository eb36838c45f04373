package config

import (
	"log/slog"
	"time"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/executor"
	"github.com/neuppl/are-we-sdd-yet/internal/logging"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

// Adapter builds the adapter for t. Config must have been validated.
func (c *Config) Adapter(t *Tool, logger *slog.Logger) *adapter.Adapter {
	if logger == nil {
		logger = logging.Discard()
	}
	fam, _ := adapter.LookupFamily(t.Family)
	crit, _ := adapter.ParseCriticality(t.Criticality)

	timeout := time.Duration(c.Timeout)
	if t.Timeout > 0 {
		timeout = time.Duration(t.Timeout)
	}

	var exec executor.Executor = executor.Local{}
	if t.Image != "" {
		exec = &executor.Docker{
			Image:       t.Image,
			CPULimit:    c.Docker.CPULimit,
			MemoryLimit: c.Docker.MemoryLimit,
		}
	}

	a := &adapter.Adapter{
		Name:        t.Name,
		Family:      fam,
		Path:        t.Path,
		Criticality: crit,
		Timeout:     timeout,
		Exec:        exec,
		Logger:      logger.With("tool", t.Name),
	}
	if len(t.Strategies) > 0 {
		overrides := make(map[strategy.Strategy]*string, len(t.Strategies))
		for id, token := range t.Strategies {
			s, _ := strategy.Lookup(id)
			overrides[s] = token
		}
		a.Strategies = fam.Strategies.With(overrides)
	}
	return a
}

// Adapters returns the baseline adapter and the comparison adapters in
// configuration order.
func (c *Config) Adapters(logger *slog.Logger) (*adapter.Adapter, []*adapter.Adapter) {
	var (
		baseline    *adapter.Adapter
		comparisons []*adapter.Adapter
	)
	for i := range c.Tools {
		a := c.Adapter(&c.Tools[i], logger)
		if c.Tools[i].Name == c.Baseline {
			baseline = a
			continue
		}
		comparisons = append(comparisons, a)
	}
	return baseline, comparisons
}
