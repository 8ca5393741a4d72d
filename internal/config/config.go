// Package config loads training runs described in YAML.
//
// Example file:
//
//	layers: "2 3 1"
//	learning_rate: 0.5
//	iterations: 2000
//	strategy: backprop
//	init:
//	  kind: uniform
//	  min: -1
//	  max: 1
//	dataset:
//	  - {input: [0, 0], expected: [0]}
//	  - {input: [0, 1], expected: [1]}
//	  - {input: [1, 0], expected: [1]}
//	  - {input: [1, 1], expected: [0]}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Init kinds.
const (
	InitRandom   = "random"   // U[0, 1)
	InitUniform  = "uniform"  // U[min, max)
	InitConstant = "constant" // value
	InitSequence = "sequence" // value + step, value + 2*step, ...
)

// Config describes one training run.
type Config struct {
	Layers       string    `yaml:"layers"`        // Space separated sizes, e.g. "2 3 1"
	LearningRate float64   `yaml:"learning_rate"` // default: 0.01
	Iterations   int       `yaml:"iterations"`    // default: 1
	Strategy     string    `yaml:"strategy"`      // default: backprop
	Epsilon      float64   `yaml:"epsilon"`       // finite-difference only
	Workers      int       `yaml:"workers"`       // parallel-backprop only, 0 = one per CPU
	Init         Init      `yaml:"init"`
	Examples     []Example `yaml:"dataset"`
}

// Init selects the weight generator.
type Init struct {
	Kind  string  `yaml:"kind"` // default: random
	Value float64 `yaml:"value"`
	Step  float64 `yaml:"step"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Example is one dataset row.
type Example struct {
	Input    []float64 `yaml:"input"`
	Expected []float64 `yaml:"expected"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for config loading
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLayerSizes parses a whitespace separated list of layer sizes.
func ParseLayerSizes(s string) ([]int, error) {
	fields := strings.Fields(s)
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: layer size %q: %w", ErrInvalidConfig, f, err)
		}
		sizes[i] = n
	}
	return sizes, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	sizes, err := c.LayerSizes()
	if err != nil {
		return err
	}
	if len(sizes) < 2 {
		return fmt.Errorf("%w: layers must have at least 2 sizes (input and output), got %q", ErrInvalidConfig, c.Layers)
	}
	for _, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("%w: layer sizes must be positive, got %q", ErrInvalidConfig, c.Layers)
		}
	}

	if c.LearningRate < 0 {
		return fmt.Errorf("%w: learning_rate must not be negative", ErrInvalidConfig)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must not be negative", ErrInvalidConfig)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must not be negative", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if _, err := c.NewStrategy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Init.Kind {
	case "", InitRandom, InitConstant, InitSequence:
	case InitUniform:
		if c.Init.Max <= c.Init.Min {
			return fmt.Errorf("%w: uniform init needs min < max", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown init kind %q", ErrInvalidConfig, c.Init.Kind)
	}

	if len(c.Examples) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, nn.ErrEmptyDataset)
	}
	if err := c.Dataset().Validate(sizes[0], sizes[len(sizes)-1]); err != nil {
		return fmt.Errorf("%w: dataset: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LayerSizes returns the parsed layer sizes.
func (c *Config) LayerSizes() ([]int, error) {
	return ParseLayerSizes(c.Layers)
}

// Generator returns the weight generator selected by Init.
func (c *Config) Generator() nn.Generator {
	switch c.Init.Kind {
	case InitConstant:
		return nn.Constant(c.Init.Value)
	case InitUniform:
		return nn.Uniform(c.Init.Min, c.Init.Max)
	case InitSequence:
		return nn.Sequence(c.Init.Value, c.Init.Step)
	default:
		return nn.Random()
	}
}

// Dataset converts the configured examples.
func (c *Config) Dataset() nn.Dataset {
	data := make(nn.Dataset, len(c.Examples))
	for i, ex := range c.Examples {
		data[i] = nn.Example{Input: ex.Input, Expected: ex.Expected}
	}
	return data
}

// NewStrategy builds the configured gradient strategy.
func (c *Config) NewStrategy() (optim.Strategy, error) {
	return optim.NewStrategy(optim.StrategyConfig{
		Name:    c.Strategy,
		Epsilon: c.Epsilon,
		Workers: c.Workers,
	})
}

// TrainerConfig returns the optimizer configuration for this run.
func (c *Config) TrainerConfig() (optim.Config, error) {
	strategy, err := c.NewStrategy()
	if err != nil {
		return optim.Config{}, err
	}
	return optim.Config{
		LearningRate: c.LearningRate,
		Iterations:   c.Iterations,
		Strategy:     strategy,
	}, nil
}
