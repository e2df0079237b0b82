// Copyright 2025 The Crema Authors
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

package route

import (
	"maps"
	"slices"
)

// Entry is the flattened form of a Node stored in a Map. It satisfies
// Pather, so a looked-up entry can be passed straight to Resolve.
type Entry struct {
	name       string
	path       string
	visibility Visibility
}

// NewEntry returns an entry for the node called name at path.
func NewEntry(name, path string, visibility Visibility) Entry {
	return Entry{name: name, path: path, visibility: visibility}
}

// Name returns the dotted name of the node that owns the path.
func (e Entry) Name() string {
	return e.name
}

// Path returns the node's fully-qualified path, which is also the map key.
func (e Entry) Path() string {
	return e.path
}

// Visibility returns the node's own marker. Unset is not the same as Private.
func (e Entry) Visibility() Visibility {
	return e.visibility
}

// IsPublic reports whether the entry was explicitly declared public.
func (e Entry) IsPublic() bool {
	return e.visibility.IsPublic()
}

// Declared reports whether the entry carries any visibility marker.
func (e Entry) Declared() bool {
	return e.visibility.Declared()
}

// Map is a flat, read-only index from path to Entry covering every node
// of one or more route trees. It is safe for concurrent use.
type Map struct {
	entries   map[string]Entry
	unmatched UnmatchedPolicy
}

// NewMap flattens routes into a Map.
//
// Every node at every depth contributes one entry keyed by its own path.
// Nodes are visited depth-first in sorted name order. When two nodes share
// a path, the later one wins and a DiagPathCollision diagnostic is
// emitted, unless the map is built with WithStrictPaths, in which case a
// *CollisionError is returned.
func NewMap(routes Routes, opts ...Option) (*Map, error) {
	var roots []*Node
	for _, name := range routes.Names() {
		roots = append(roots, routes[name])
	}
	return newMap(roots, newConfig(opts))
}

// MustNewMap is NewMap that panics on error.
func MustNewMap(routes Routes, opts ...Option) *Map {
	m, err := NewMap(routes, opts...)
	if err != nil {
		panic("route: map construction failed: " + err.Error())
	}
	return m
}

// NewMapFromNodes indexes the given subtrees with the default options.
// Nodes are visited in argument order, so later arguments win collisions.
func NewMapFromNodes(nodes ...*Node) *Map {
	m, _ := newMap(nodes, newConfig(nil))
	return m
}

func newMap(roots []*Node, cfg *config) (*Map, error) {
	m := &Map{
		entries:   make(map[string]Entry),
		unmatched: cfg.unmatched,
	}

	var err error
	for _, root := range roots {
		root.Walk(func(n *Node) {
			if err != nil {
				return
			}
			if prev, exists := m.entries[n.path]; exists {
				if cfg.collisions == CollisionReject {
					err = &CollisionError{Path: n.path, First: prev.name, Second: n.name}
					return
				}
				cfg.emit(DiagPathCollision, "route path declared twice, keeping last", map[string]any{
					"path":     n.path,
					"replaced": prev.name,
					"route":    n.name,
				})
			}
			m.entries[n.path] = NewEntry(n.name, n.path, n.visibility)
		})
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Get returns the entry registered for exactly path.
func (m *Map) Get(path string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	e, ok := m.entries[path]
	return e, ok
}

// Has reports whether path is registered verbatim.
func (m *Map) Has(path string) bool {
	_, ok := m.Get(path)
	return ok
}

// Len returns the number of distinct paths.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Paths returns every registered path in sorted order.
func (m *Map) Paths() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.entries))
}

// Entries returns every entry sorted by path.
func (m *Map) Entries() []Entry {
	paths := m.Paths()
	out := make([]Entry, 0, len(paths))
	for _, p := range paths {
		out = append(out, m.entries[p])
	}
	return out
}
