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

// Package route builds a typed route table from nested route declarations
// and answers the two questions the rest of the application asks of it:
// "what URL does this route have?" and "which registered route does this
// request path belong to?".
//
// The package contains:
//   - Spec: the author-facing declaration (path fragment, public marker, children)
//   - Build: turns Specs into a tree of Nodes with fully-qualified paths
//   - Resolve: substitutes :name placeholders and appends a query string
//   - Map: flat path index with longest-prefix classification
//
// All values produced here are immutable after construction and safe for
// concurrent reads without locking.
//
// # Declaring Routes
//
// Child paths are concatenated onto their parent's full path:
//
//	routes := route.Build(route.Specs{
//	    "home": {Path: "/", Visibility: route.Public},
//	    "settings": {
//	        Path: "/settings",
//	        Routes: route.Specs{
//	            "integrations": route.Fragment("/integrations"),
//	        },
//	    },
//	})
//
//	routes.Get("settings", "integrations").Path() // "/settings/integrations"
//
// # Resolving URLs
//
// Placeholders are replaced with percent-encoded values:
//
//	route.Resolve(route.Literal("/api/shots/:id"), route.Params{"id": 42})
//	// "/api/shots/42"
//
//	route.Resolve(node, route.Params{"beanId": "abc"}, route.Values{"page": 2})
//	// "/api/stats/by-bean/abc?page=2"
//
// A missing parameter leaves its placeholder in the output. Use
// ResolveStrict or CheckParams when that must be an error.
//
// # Classifying Request Paths
//
// A Map answers which registered route a runtime path falls under, even
// when the path itself was never registered:
//
//	m := route.MustNewMap(routes)
//	entry, ok := m.Lookup("/settings/unknown") // entry.Path() == "/settings"
//	m.IsPublic("/settings/unknown")            // false
//
// Unmatched paths fall back to the root entry when "/" is registered.
// With no entry at all, IsPublic is permissive unless the map was built
// with WithUnmatchedPolicy(UnmatchedDeny).
//
// # Diagnostics
//
// Authoring mistakes never fail a build. Circular spec references become a
// sentinel node and duplicate paths overwrite earlier entries; both are
// reported through an optional DiagnosticHandler:
//
//	routes := route.Build(specs, route.WithDiagnostics(route.SlogDiagnostics(logger)))
package route
