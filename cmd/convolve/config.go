// Copyright 2025 go-stencil Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/ajroetker/go-stencil/conv/kernel"
)

// Config mirrors the TOML configuration file. Zero values mean "not set".
type Config struct {
	Workers   int                     `toml:"workers"`
	Saturate  bool                    `toml:"saturate"`
	Filters   []string                `toml:"filters"`
	LogLevel  string                  `toml:"log_level"`
	LogFormat string                  `toml:"log_format"`
	Kernels   map[string]KernelConfig `toml:"kernels"`
}

// KernelConfig declares a custom 3x3 filter.
type KernelConfig struct {
	Weights [][]float64 `toml:"weights"`
}

var errConfig = errors.New("invalid config")

// LoadConfig reads the TOML file at path. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("%s: %w: workers must not be negative", path, errConfig)
	}
	return cfg, nil
}

// Table returns the default filters plus the configured custom kernels.
func (c Config) Table() (*kernel.Table, error) {
	table := kernel.NewTable()
	names := make([]string, 0, len(c.Kernels))
	for name := range c.Kernels {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		w, err := toWeights(c.Kernels[name].Weights)
		if err != nil {
			return nil, fmt.Errorf("kernel %q: %w", name, err)
		}
		if err := table.Register(kernel.Filter{Name: name, Weights: w}); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func toWeights(rows [][]float64) (kernel.Weights, error) {
	var w kernel.Weights
	if len(rows) != 3 {
		return w, fmt.Errorf("%w: want 3 rows of weights, got %d", errConfig, len(rows))
	}
	for r, row := range rows {
		if len(row) != 3 {
			return w, fmt.Errorf("%w: row %d: want 3 weights, got %d", errConfig, r, len(row))
		}
		copy(w[r][:], row)
	}
	return w, nil
}
