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
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-stencil/conv/pipeline"
	"github.com/ajroetker/go-stencil/conv/stencil"
)

// options holds the resolved settings of one invocation.
type options struct {
	configPath string
	workers    int
	saturate   bool
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "convolve [flags] <input> <output> [filter ...]",
		Short: "Apply a chain of 3x3 convolution filters using a group of workers",
		Long: `convolve reads an image, applies the named 3x3 filters in order and writes
the result. The pixel work of every filter is split across a fixed group of
workers that exchange results through a gather/broadcast protocol.

Built-in filters: smooth, blur, sharpen, mean, emboss. Unknown names are
skipped with a warning.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], args[1], args[2:])
		},
	}

	addFlags(cmd.PersistentFlags(), opts)
	cmd.AddCommand(newFiltersCmd(opts))
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	fs.IntVarP(&opts.workers, "workers", "w", runtime.GOMAXPROCS(0), "number of workers in the group")
	fs.BoolVar(&opts.saturate, "saturate", false, "clamp filtered samples to [0, maxval] instead of wrapping")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "auto", "log format: auto, text or json")
}

// resolve merges the config file into opts for every flag left unset and
// returns the config.
func resolve(cmd *cobra.Command, opts *options) (Config, error) {
	var cfg Config
	if opts.configPath != "" {
		var err error
		if cfg, err = LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if !flags.Changed("workers") && cfg.Workers > 0 {
		opts.workers = cfg.Workers
	}
	if !flags.Changed("saturate") && cfg.Saturate {
		opts.saturate = true
	}
	if !flags.Changed("log-level") && cfg.LogLevel != "" {
		opts.logLevel = cfg.LogLevel
	}
	if !flags.Changed("log-format") && cfg.LogFormat != "" {
		opts.logFormat = cfg.LogFormat
	}
	if opts.workers < 1 {
		return cfg, fmt.Errorf("workers must be at least 1, got %d", opts.workers)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, input, output string, names []string) error {
	cfg, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = cfg.Filters
	}

	// Fail on an unknown output format before doing any work.
	enc, err := encoderFor(output)
	if err != nil {
		return err
	}

	img, err := readImage(input)
	if err != nil {
		return err
	}
	logger.Info("read image", "path", input, "image", img.String())

	mode := stencil.Truncate
	if opts.saturate {
		mode = stencil.Saturate
	}

	start := time.Now()
	err = pipeline.ApplyLocal(cmd.Context(), img, opts.workers, names,
		pipeline.WithTable(table),
		pipeline.WithMode(mode),
		pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("filters done", "filters", len(names), "workers", opts.workers, "elapsed", time.Since(start))

	if err := writeImage(output, img, enc); err != nil {
		return err
	}
	logger.Info("wrote image", "path", output)
	return nil
}

func newFiltersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the known filter names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}
			for _, name := range table.Names() {
				f, _ := table.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %v\n", name, f.Weights)
			}
			return nil
		},
	}
}
