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

// Package pipeline runs chains of 3x3 filters over an image whose pixel work
// is split across a group of workers.
//
// Every worker holds a full replica of the image; only the computation is
// partitioned. For each filter and each channel plane, the workers run one
// round of the synchronization protocol:
//
//	Snapshot -> BarrierA -> LocalCompute -> BarrierB
//	         -> Gather -> Merge -> Broadcast -> BarrierC -> Done
//
// Non-leader workers send their whole plane to the leader (group.Root), which
// keeps from each sender only the indices that sender owns and then
// broadcasts the merged plane back, so every worker starts the next round
// with identical state.
//
// Typical use inside a group:
//
//	err := group.Run(ctx, workers, func(ctx context.Context, comm group.Comm) error {
//	    return pipeline.Apply(ctx, replicaFor(comm.Rank()), comm, []string{"blur", "sharpen"})
//	})
//
// ApplyLocal wraps exactly that for in-process workers.
package pipeline
