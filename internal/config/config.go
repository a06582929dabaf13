// Package config holds the knobs of a training run: YAML file first, then
// command-line overrides, then validation.
package config

import (
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/nero/internal/nn"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset    string `yaml:"dataset"`
	Bits       int    `yaml:"bits"`
	Layout     []int  `yaml:"layout"`
	Activation string `yaml:"activation"`

	Epochs          int     `yaml:"epochs"`
	LearnPerTick    int     `yaml:"learn_per_tick"`
	BatchCount      int     `yaml:"batch_count"`
	LearningRate    float32 `yaml:"learning_rate"`
	MinLearningRate float32 `yaml:"min_learning_rate"`
	LearningRateMul float32 `yaml:"learning_rate_mul"`

	Seed     int64 `yaml:"seed"`
	History  int   `yaml:"history"`
	LogEvery int   `yaml:"log_every"`
}

// Overrides captures CLI supplied values. Zero fields leave the config
// untouched. A nil LogEvery leaves it untouched; a zero turns logging off.
type Overrides struct {
	Dataset         string
	Bits            int
	Layout          []int
	Activation      string
	Epochs          int
	LearnPerTick    int
	BatchCount      int
	LearningRate    float32
	MinLearningRate float32
	LearningRateMul float32
	Seed            int64
	LogEvery        *int
}

// Default returns the configuration used when no file is given. An empty
// Layout means the dataset's own layout; a zero Seed is resolved from the
// clock by the caller.
func Default() *Config {
	return &Config{
		Dataset:         "xor",
		Bits:            4,
		Activation:      "sigmoid",
		Epochs:          10000,
		LearnPerTick:    20,
		BatchCount:      1,
		LearningRate:    0.1,
		MinLearningRate: 0.01,
		LearningRateMul: 2,
		History:         400,
		LogEvery:        1000,
	}
}

// Load reads a YAML file over Default and validates the result. Unknown
// keys are an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML from r over Default without validating it.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.Bits > 0 {
		c.Bits = o.Bits
	}
	if len(o.Layout) > 0 {
		c.Layout = append([]int(nil), o.Layout...)
	}
	if o.Activation != "" {
		c.Activation = o.Activation
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearnPerTick > 0 {
		c.LearnPerTick = o.LearnPerTick
	}
	if o.BatchCount > 0 {
		c.BatchCount = o.BatchCount
	}
	if o.LearningRate != 0 {
		c.LearningRate = o.LearningRate
	}
	if o.MinLearningRate != 0 {
		c.MinLearningRate = o.MinLearningRate
	}
	if o.LearningRateMul != 0 {
		c.LearningRateMul = o.LearningRateMul
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery != nil {
		c.LogEvery = *o.LogEvery
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Dataset == "" {
		return errors.New("dataset must be set")
	}
	if c.Layout != nil {
		if len(c.Layout) < 2 {
			return errors.Errorf("layout needs at least an input and an output width (got %v)", c.Layout)
		}
		for i, w := range c.Layout {
			if w <= 0 {
				return errors.Errorf("layout width %d must be > 0 (got %d)", i, w)
			}
		}
	}
	if _, ok := nn.ActivationByName(c.Activation); !ok {
		return errors.Errorf("unknown activation %q", c.Activation)
	}
	if c.Epochs <= 1 {
		return errors.Errorf("epochs must be > 1 (got %d)", c.Epochs)
	}
	if c.LearnPerTick <= 1 || c.LearnPerTick >= 1000 {
		return errors.Errorf("learn_per_tick must be in (1, 1000) (got %d)", c.LearnPerTick)
	}
	if c.BatchCount < 1 {
		return errors.Errorf("batch_count must be >= 1 (got %d)", c.BatchCount)
	}
	for _, r := range []struct {
		name string
		v    float32
	}{
		{"learning_rate", c.LearningRate},
		{"min_learning_rate", c.MinLearningRate},
		{"learning_rate_mul", c.LearningRateMul},
	} {
		if r.v == 0 || math32.IsNaN(r.v) || math32.IsInf(r.v, 0) {
			return errors.Errorf("%s must be finite and non-zero (got %v)", r.name, r.v)
		}
	}
	if c.History <= 0 {
		return errors.Errorf("history must be > 0 (got %d)", c.History)
	}
	if c.LogEvery < 0 {
		return errors.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	return nil
}
