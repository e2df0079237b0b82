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

// Build turns specs into a tree of Nodes, one per top-level name.
//
// Each top-level spec starts from an empty parent path; every child path
// is its parent's full path followed by its own fragment. Build never
// fails: a spec that refers back to one of its ancestors is replaced by a
// sentinel node (see CircularReference) and nil specs are skipped, both
// reported through WithDiagnostics. Duplicate resulting paths are not
// detected here; see NewMap.
//
// Given the same specs, Build always produces the same tree.
func Build(specs Specs, opts ...Option) Routes {
	b := &builder{
		cfg:      newConfig(opts),
		visiting: make(map[*Spec]struct{}),
	}

	routes := make(Routes, len(specs))
	for _, name := range slices.Sorted(maps.Keys(specs)) {
		spec := specs[name]
		if spec == nil {
			b.nilSpec(name)
			continue
		}
		routes[name] = b.build(name, spec, "")
	}

	return routes
}

// builder carries the per-build state of the recursive descent.
type builder struct {
	cfg *config

	// visiting holds the specs on the current root-to-leaf path.
	// Entries are removed when their branch returns, so specs shared by
	// siblings are built once per occurrence.
	visiting map[*Spec]struct{}
}

func (b *builder) build(name string, spec *Spec, parentPath string) *Node {
	if _, ok := b.visiting[spec]; ok {
		b.cfg.emit(DiagCircularReference, "circular route spec reference", map[string]any{
			"route":  name,
			"parent": parentPath,
		})
		return &Node{name: name, path: CircularReference, circular: true}
	}

	fullPath := parentPath + spec.Path
	n := &Node{
		name:       name,
		path:       fullPath,
		visibility: spec.Visibility,
		pattern:    ParsePattern(fullPath),
	}
	if len(spec.Routes) == 0 {
		return n
	}

	b.visiting[spec] = struct{}{}
	defer delete(b.visiting, spec)

	n.children = make(map[string]*Node, len(spec.Routes))
	for _, key := range slices.Sorted(maps.Keys(spec.Routes)) {
		child := spec.Routes[key]
		childName := name + "." + key
		if child == nil {
			b.nilSpec(childName)
			continue
		}
		n.children[key] = b.build(childName, child, fullPath)
		n.order = append(n.order, key)
	}

	return n
}

func (b *builder) nilSpec(name string) {
	b.cfg.emit(DiagNilSpec, "nil route spec skipped", map[string]any{"route": name})
}
