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

package group

import (
	"context"
	"sync"

	"golang.org/x/sys/cpu"
)

// barrier is a reusable rendezvous for a fixed number of parties. Each
// generation gets a fresh release channel that is closed by the last
// arrival.
type barrier struct {
	_ cpu.CacheLinePad

	mu      sync.Mutex
	parties int
	waiting int
	release chan struct{}

	_ cpu.CacheLinePad
}

func newBarrier(parties int) *barrier {
	return &barrier{
		parties: parties,
		release: make(chan struct{}),
	}
}

func (b *barrier) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	release := b.release
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.release = make(chan struct{})
		b.mu.Unlock()
		close(release)
		return nil
	}
	b.mu.Unlock()

	select {
	case <-release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
