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

//go:generate go tool stringer -type=Phase -trimprefix=Phase

// Phase is a step of one synchronization round.
type Phase int

const (
	PhaseSnapshot Phase = iota
	PhaseBarrierA
	PhaseLocalCompute
	PhaseBarrierB
	PhaseGather
	PhaseMerge
	PhaseBroadcast
	PhaseBarrierC
	PhaseDone
)
