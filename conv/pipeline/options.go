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

package pipeline

import (
	"log/slog"

	"github.com/ajroetker/go-stencil/conv/kernel"
	"github.com/ajroetker/go-stencil/conv/stencil"
)

// Option configures Apply, ApplyFilter and ApplyLocal.
type Option func(*options)

type options struct {
	table  *kernel.Table
	mode   stencil.Mode
	logger *slog.Logger

	// gatherOrder returns the order in which the leader receives senders.
	// Nil means ascending rank order.
	gatherOrder func(size int) []int

	// trace, when set, is called on every phase transition.
	trace func(rank int, filter string, channel int, phase Phase)
}

func newOptions(opts []Option) *options {
	o := &options{
		table:  kernel.Default(),
		mode:   stencil.Truncate,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTable resolves filter names in t instead of the default table.
func WithTable(t *kernel.Table) Option {
	return func(o *options) {
		if t != nil {
			o.table = t
		}
	}
}

// WithMode selects how accumulated values are converted to samples.
// The default is stencil.Truncate.
func WithMode(m stencil.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithLogger sets the logger. Phase transitions are logged at debug level
// by every worker; progress and skipped filters are logged by the leader.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
