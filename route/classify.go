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

import "strings"

// rootPath is the final fallback of Lookup.
const rootPath = "/"

// Lookup returns the most specific registered entry for path.
//
// An exact match wins. Otherwise trailing segments are removed one at a
// time ("/a/b/c" -> "/a/b" -> "/a") until a registered path is found, and
// finally the root "/" is tried. The second result is false only when
// nothing, not even the root, is registered for path.
func (m *Map) Lookup(path string) (Entry, bool) {
	if m.Len() == 0 {
		return Entry{}, false
	}
	if e, ok := m.entries[path]; ok {
		return e, true
	}

	end := len(path)
	for {
		end = strings.LastIndexByte(path[:end], '/')
		if end <= 0 {
			break
		}
		if e, ok := m.entries[path[:end]]; ok {
			return e, true
		}
	}

	e, ok := m.entries[rootPath]
	return e, ok
}

// IsPublic reports whether path may be served without authentication.
//
// The path is classified with Lookup. A resolved entry decides by its own
// marker; child paths follow their nearest registered ancestor, never an
// inherited flag. When nothing resolves, the result depends on the
// UnmatchedPolicy: permissive by default, protected under UnmatchedDeny
// unless the map is empty.
func (m *Map) IsPublic(path string) bool {
	_, _, public := m.Classify(path)
	return public
}

// Classify combines Lookup and IsPublic in a single walk of the prefix
// chain. matched and e are the Lookup result; public is what IsPublic
// would report for path.
func (m *Map) Classify(path string) (e Entry, matched, public bool) {
	e, matched = m.Lookup(path)
	if matched {
		return e, true, e.IsPublic()
	}
	return e, false, m.Len() == 0 || m.unmatched != UnmatchedDeny
}
