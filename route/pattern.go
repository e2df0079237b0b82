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
	"slices"
	"strings"
)

// Pattern is a path compiled into literal text and :name placeholders.
// Placeholder names are the longest run of ASCII letters, digits and
// underscores following a colon; a colon followed by anything else is
// literal text.
type Pattern struct {
	raw    string
	parts  []part
	params []string
}

type part struct {
	param bool
	value string // literal text or placeholder name
}

// ParsePattern compiles path for placeholder substitution.
//
// Example: "/api/shots/:id/reference" -> [lit:"/api/shots/"] [param:"id"] [lit:"/reference"]
func ParsePattern(path string) *Pattern {
	p := &Pattern{raw: path}
	seen := make(map[string]struct{})

	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] != ':' {
			continue
		}
		end := i + 1
		for end < len(path) && isNameByte(path[end]) {
			end++
		}
		if end == i+1 {
			continue
		}
		if start < i {
			p.parts = append(p.parts, part{value: path[start:i]})
		}
		name := path[i+1 : end]
		p.parts = append(p.parts, part{param: true, value: name})
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			p.params = append(p.params, name)
		}
		start = end
		i = end - 1
	}
	if start < len(path) {
		p.parts = append(p.parts, part{value: path[start:]})
	}

	return p
}

// String returns the source path.
func (p *Pattern) String() string {
	return p.raw
}

// Params returns the distinct placeholder names in order of first use.
func (p *Pattern) Params() []string {
	if len(p.params) == 0 {
		return nil
	}
	out := make([]string, len(p.params))
	copy(out, p.params)

	return out
}

// expand substitutes encoded values. Placeholders without a value are
// written back verbatim and reported in missing.
func (p *Pattern) expand(values map[string]string) (string, []string) {
	if len(p.params) == 0 {
		return p.raw, nil
	}

	var (
		buf     strings.Builder
		missing []string
	)
	buf.Grow(len(p.raw))

	for _, pt := range p.parts {
		if !pt.param {
			buf.WriteString(pt.value)
			continue
		}
		if v, ok := values[pt.value]; ok {
			buf.WriteString(v)
			continue
		}
		buf.WriteByte(':')
		buf.WriteString(pt.value)
		if !slices.Contains(missing, pt.value) {
			missing = append(missing, pt.value)
		}
	}

	return buf.String(), missing
}

// ParamNames returns the distinct placeholder names declared by path.
func ParamNames(path string) []string {
	return ParsePattern(path).Params()
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
