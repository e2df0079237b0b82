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

// Visibility records whether a route declared itself public.
// The zero value means the route made no declaration.
type Visibility uint8

const (
	// Unset means the spec carried no public marker.
	Unset Visibility = iota
	// Public routes do not require authentication.
	Public
	// Private routes explicitly require authentication.
	Private
)

// IsPublic reports whether v is Public.
func (v Visibility) IsPublic() bool {
	return v == Public
}

// Declared reports whether a marker was set, public or not.
func (v Visibility) Declared() bool {
	return v != Unset
}

// String returns "public", "private" or "unset".
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "unset"
	}
}

// VisibilityOf converts an optional boolean marker into a Visibility.
// A nil marker yields Unset.
func VisibilityOf(marker *bool) Visibility {
	switch {
	case marker == nil:
		return Unset
	case *marker:
		return Public
	default:
		return Private
	}
}

// Spec declares one route.
//
// Path is appended to the parent's fully-qualified path. Routes holds the
// named children, each built with this spec's full path as their prefix.
// Specs are authored once and must not be mutated after Build.
type Spec struct {
	// Path is the fragment appended to the parent's path (e.g., "/settings").
	Path string

	// Visibility is copied onto the built node only. Children never inherit it.
	Visibility Visibility

	// Routes are the named child specs.
	Routes Specs
}

// Specs maps route names to their specs.
type Specs map[string]*Spec

// Fragment declares a leaf route that is nothing but a path suffix.
func Fragment(path string) *Spec {
	return &Spec{Path: path}
}
