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

package specfile

import "crema.dev/routing/route"

// Document is the exported form of a route map.
type Document struct {
	Routes []Record `json:"routes" yaml:"routes" toml:"routes" msgpack:"routes"`
}

// Record is one exported map entry.
type Record struct {
	Name       string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Path       string `json:"path" yaml:"path" toml:"path" msgpack:"path"`
	Visibility string `json:"visibility" yaml:"visibility" toml:"visibility" msgpack:"visibility"`
}

// NewDocument flattens m into records sorted by path.
func NewDocument(m *route.Map) Document {
	entries := m.Entries()
	doc := Document{Routes: make([]Record, 0, len(entries))}
	for _, e := range entries {
		doc.Routes = append(doc.Routes, Record{
			Name:       e.Name(),
			Path:       e.Path(),
			Visibility: e.Visibility().String(),
		})
	}
	return doc
}

// Export encodes the entries of m in the given format.
func Export(m *route.Map, typ Type) ([]byte, error) {
	codec, err := Lookup(typ)
	if err != nil {
		return nil, newError(string(typ), "encode", err)
	}

	data, err := codec.Encode(NewDocument(m))
	if err != nil {
		return nil, newError(string(typ), "encode", err)
	}
	return data, nil
}
