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

package cluster

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// NotFoundError is returned by Container.Find when no entity is
// indexed under the requested key.
type NotFoundError struct {
	Idx int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cluster: no element at index %d", e.Idx)
}

// Container is a dense, integer-indexed collection of entities of a
// single Element kind. Values are immutable by convention: every
// mutator returns a new Container and leaves the receiver untouched.
type Container[T Element] struct {
	byIdx map[int]T
}

// NewContainer builds an empty container.
func NewContainer[T Element]() Container[T] {
	return Container[T]{byIdx: map[int]T{}}
}

// Find returns the entity at idx, or a *NotFoundError.
func (c Container[T]) Find(idx int) (T, error) {
	v, ok := c.byIdx[idx]
	if !ok {
		var zero T
		return zero, &NotFoundError{Idx: idx}
	}
	return v, nil
}

// FindByName performs a linear scan for the entity with the given
// name. Containers are small (cluster-sized), so no secondary index
// is maintained.
func (c Container[T]) FindByName(name string) (T, error) {
	for _, v := range c.byIdx {
		if v.NameOf() == name {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("cluster: no element named %q", name)
}

// Add returns a new Container with elem stored at idx, overwriting
// any existing entry at that index.
func (c Container[T]) Add(idx int, elem T) Container[T] {
	next := make(map[int]T, len(c.byIdx)+1)
	for k, v := range c.byIdx {
		next[k] = v
	}
	next[idx] = elem
	return Container[T]{byIdx: next}
}

// AddTwo returns a new Container with both entities stored; a
// convenience for the common case of updating a pair of related
// entities (e.g. the two nodes in a relocation) in one step.
func (c Container[T]) AddTwo(idxA int, a T, idxB int, b T) Container[T] {
	return c.Add(idxA, a).Add(idxB, b)
}

// Keys returns all indices in ascending order.
func (c Container[T]) Keys() []int {
	keys := maps.Keys(c.byIdx)
	sort.Ints(keys)
	return keys
}

// Elems returns all entities ordered by ascending index.
func (c Container[T]) Elems() []T {
	keys := c.Keys()
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.byIdx[k])
	}
	return out
}

// Len reports the number of entities in the container.
func (c Container[T]) Len() int {
	return len(c.byIdx)
}
