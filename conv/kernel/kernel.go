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

// Package kernel holds the registry of named 3x3 convolution filters.
//
// The default table contains five built-in filters, resolved by name:
//
//	smooth  - uniform 3x3 averaging
//	blur    - 3x3 Gaussian blur
//	sharpen - 3x3 sharpen
//	mean    - mean removal
//	emboss  - 3x3 emboss
//
// Additional filters can be registered on a Table, typically from the
// command line tool's configuration file. Built-ins cannot be replaced.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/samber/lo"
)

var (
	// ErrUnknownFilter reports a filter name missing from the table.
	ErrUnknownFilter = errors.New("kernel: unknown filter")

	// ErrInvalidFilter reports a filter that cannot be registered.
	ErrInvalidFilter = errors.New("kernel: invalid filter")
)

// Weights is a row-major 3x3 coefficient matrix. Weights[1][1] is aligned
// with the target pixel.
type Weights [3][3]float64

// Filter is a named 3x3 kernel. Filters are plain values and never mutated
// after creation.
type Filter struct {
	Name    string
	Weights Weights
}

// Sum returns the sum of all weights.
func (f Filter) Sum() float64 {
	var s float64
	for _, row := range f.Weights {
		for _, w := range row {
			s += w
		}
	}
	return s
}

// Built-in filters.
var (
	Smooth = Filter{"smooth", Weights{
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
	}}

	Blur = Filter{"blur", Weights{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	}}

	Sharpen = Filter{"sharpen", Weights{
		{0, -2.0 / 3, 0},
		{-2.0 / 3, 11.0 / 3, -2.0 / 3},
		{0, -2.0 / 3, 0},
	}}

	Mean = Filter{"mean", Weights{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}}

	Emboss = Filter{"emboss", Weights{
		{0, 1, 0},
		{0, 0, 0},
		{0, -1, 0},
	}}
)

// Builtins returns the built-in filters in their canonical order.
func Builtins() []Filter {
	return []Filter{Smooth, Blur, Sharpen, Mean, Emboss}
}

// Table resolves filter names. It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewTable returns a table holding only the built-in filters.
func NewTable() *Table {
	return &Table{
		filters: lo.SliceToMap(Builtins(), func(f Filter) (string, Filter) {
			return f.Name, f
		}),
	}
}

var defaultTable = NewTable()

// Default returns the shared table of built-in filters.
func Default() *Table {
	return defaultTable
}

// Lookup returns the filter registered under name.
func (t *Table) Lookup(name string) (Filter, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.filters[name]
	return f, ok
}

// Names returns the registered filter names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := lo.Keys(t.filters)
	t.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Register adds a custom filter. Names must be non-empty and not shadow a
// built-in; weights must be finite. Re-registering a custom name replaces it.
func (t *Table) Register(f Filter) error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFilter)
	}
	if lo.ContainsBy(Builtins(), func(b Filter) bool { return b.Name == f.Name }) {
		return fmt.Errorf("%w: %q is a built-in filter", ErrInvalidFilter, f.Name)
	}
	for _, row := range f.Weights {
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("%w: %q has a non-finite weight", ErrInvalidFilter, f.Name)
			}
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.filters[f.Name] = f
	return nil
}

// Resolve maps names to filters, preserving order and repetitions. Names
// missing from the table are returned in unknown, deduplicated, in order of
// first appearance.
func (t *Table) Resolve(names []string) (filters []Filter, unknown []string) {
	for _, name := range names {
		if f, ok := t.Lookup(name); ok {
			filters = append(filters, f)
			continue
		}
		unknown = append(unknown, name)
	}
	return filters, lo.Uniq(unknown)
}

// Lookup resolves name in the default table.
func Lookup(name string) (Filter, bool) {
	return defaultTable.Lookup(name)
}
