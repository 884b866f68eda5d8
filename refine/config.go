package refine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/konchunas/rellic/internal/pipeline"
	"github.com/konchunas/rellic/internal/solver"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = ".rellic.yaml"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the layout of the configuration file.
type Config struct {
	Name     string                `yaml:"name"`
	Solver   solver.Config         `yaml:"solver"`
	Pipeline PipelineConfig        `yaml:"pipeline"`
	Passes   map[string]PassConfig `yaml:"passes"`
}

type PipelineConfig struct {
	MaxIterations int `yaml:"max-iterations"`
}

type PassConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig enables every pass.
func DefaultConfig() Config {
	passes := make(map[string]PassConfig)
	for _, name := range pipeline.Passes() {
		passes[name] = PassConfig{Enabled: true}
	}
	return Config{
		Name:     "rellic",
		Solver:   solver.DefaultConfig(),
		Pipeline: PipelineConfig{MaxIterations: pipeline.DefaultMaxIterations},
		Passes:   passes,
	}
}

// Validate rejects unknown passes and backends and non-positive limits.
func (c Config) Validate() error {
	known := make(map[string]bool)
	for _, name := range pipeline.Passes() {
		known[name] = true
	}
	for name := range c.Passes {
		if !known[name] {
			return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, pipeline.ErrUnknownPass, name)
		}
	}
	if c.Pipeline.MaxIterations <= 0 {
		return fmt.Errorf("%w: max-iterations must be positive", ErrInvalidConfig)
	}
	if c.Solver.MaxAssignments < 0 {
		return fmt.Errorf("%w: max-assignments must not be negative", ErrInvalidConfig)
	}
	b, err := solver.NewBackend(c.Solver)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return b.Close()
}

// EnabledPasses returns the enabled passes in pipeline order. Passes
// missing from the file stay enabled.
func (c Config) EnabledPasses() []string {
	var names []string
	for _, name := range pipeline.Passes() {
		if pc, ok := c.Passes[name]; ok && !pc.Enabled {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ParseConfig decodes a configuration on top of DefaultConfig.
func ParseConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	return config, config.Validate()
}

// LoadConfig reads the configuration file at path. An empty path yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	config, err := ParseConfig(f)
	if err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// WriteConfig stores config at path in the file layout.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
