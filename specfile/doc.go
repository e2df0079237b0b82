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

// Package specfile loads route specs from YAML, TOML, JSON or MessagePack
// documents read from files or a Consul KV key, and exports built route
// maps in the same formats.
//
// A spec file holds a single "routes" table. Each entry is either a path
// fragment or a table with an optional "path", an optional "isPublic"
// marker and any number of named child routes:
//
//	routes:
//	  home:
//	    path: /
//	    isPublic: true
//	  log: /log
//	  settings:
//	    path: /settings
//	    integrations: /integrations
//
// The keys "path" and "isPublic" are reserved and cannot name a child.
//
// # Loading
//
// Load reads one or more files. Each document is validated against an
// embedded JSON Schema, then documents are merged in order with later
// files overriding earlier ones. A single document may leave out the path
// of a route another document declares, but in the merged result every
// table route must have one:
//
//	specs, err := specfile.Load(ctx, "routes.yaml", "routes.local.yaml")
//	if err != nil {
//	    return err
//	}
//	routes := route.Build(specs)
//
// Overlays only replace values with non-zero ones: a later file can mark
// a route public, or move it, but "isPublic: false" does not clear an
// earlier "true".
//
// LoadSources layers other sources, such as a Consul key, over files:
//
//	remote, err := specfile.Consul("crema/routes", specfile.TypeYAML, nil)
//	if err != nil {
//	    return err
//	}
//	specs, err := specfile.LoadSources(ctx, specfile.File("routes.yaml"), remote)
//
// # Exporting
//
// Export writes the flat index of a route.Map:
//
//	data, err := specfile.Export(m, specfile.TypeJSON)
package specfile
