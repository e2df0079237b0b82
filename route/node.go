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
	"strings"
)

// CircularReference is the path of the sentinel node that replaces a
// branch whose spec refers back to one of its own ancestors.
const CircularReference = "[Circular Reference]"

// Node is one built route: its fully-qualified path, its own visibility
// marker and its named children. Nodes are immutable.
type Node struct {
	name       string
	path       string
	visibility Visibility
	pattern    *Pattern
	children   map[string]*Node
	order      []string
	circular   bool
}

// Name returns the dotted route name (e.g., "api.stats.byBean").
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Path returns the fully-qualified path. A nil node has an empty path.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	return n.path
}

// Visibility returns the marker declared on this node's own spec.
func (n *Node) Visibility() Visibility {
	if n == nil {
		return Unset
	}
	return n.visibility
}

// IsPublic reports whether this node was explicitly declared public.
func (n *Node) IsPublic() bool {
	return n.Visibility().IsPublic()
}

// Params returns the placeholder names of the node's path.
func (n *Node) Params() []string {
	if n == nil || n.pattern == nil {
		return nil
	}
	return n.pattern.Params()
}

// Circular reports whether n is the sentinel for a circular spec reference.
func (n *Node) Circular() bool {
	return n != nil && n.circular
}

// Child returns the named child, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	return n.children[name]
}

// Get follows names down the tree and returns the node reached, or nil.
func (n *Node) Get(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Children returns the child names in sorted order.
func (n *Node) Children() []string {
	if n == nil || len(n.order) == 0 {
		return nil
	}
	out := make([]string, len(n.order))
	copy(out, n.order)

	return out
}

// Walk calls fn for n and every descendant, depth-first in sorted name
// order. Sentinel nodes are skipped.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil || n.circular {
		return
	}
	fn(n)
	for _, name := range n.order {
		n.children[name].Walk(fn)
	}
}

// Routes holds the built top-level nodes by name.
type Routes map[string]*Node

// Get follows names from the top level down and returns the node reached,
// or nil.
func (r Routes) Get(names ...string) *Node {
	if len(names) == 0 {
		return nil
	}
	return r[names[0]].Get(names[1:]...)
}

// ByName resolves a dotted route name such as "settings.integrations".
func (r Routes) ByName(dotted string) *Node {
	if dotted == "" {
		return nil
	}
	return r.Get(strings.Split(dotted, ".")...)
}

// Names returns the top-level names in sorted order.
func (r Routes) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Walk visits every node of every top-level tree in sorted name order.
func (r Routes) Walk(fn func(*Node)) {
	for _, name := range r.Names() {
		r[name].Walk(fn)
	}
}
