/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cluster implements the integer-indexed cluster model:
// dense containers of nodes and instances, and the mutators that
// preserve their invariants.
package cluster

// Element is the capability shared by Node and Instance: a stable
// integer index and a human name. Container is generic over it so the
// same lookup/enumeration code serves both entity kinds.
type Element interface {
	IdxOf() int
	NameOf() string
}
