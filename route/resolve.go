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
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// Pather is anything that carries a route path: *Node, Entry or Literal.
type Pather interface {
	Path() string
}

var (
	_ Pather = (*Node)(nil)
	_ Pather = Entry{}
	_ Pather = Literal("")
)

// Literal adapts a raw path string to Pather.
type Literal string

// Path returns the literal itself.
func (l Literal) Path() string {
	return string(l)
}

// Params maps placeholder names to values. Values are converted to
// strings (numbers, booleans, fmt.Stringer, ...) before encoding.
type Params map[string]any

// Query is a pre-built query string container such as url.Values.
type Query interface {
	Encode() string
}

// Values is a plain query mapping. Nil values are dropped, []string
// values become repeated keys and everything else is converted to a string.
type Values map[string]any

// Encode serializes v in "key=value&..." form sorted by key.
func (v Values) Encode() string {
	if len(v) == 0 {
		return ""
	}

	q := make(url.Values, len(v))
	for key, value := range v {
		switch val := value.(type) {
		case nil:
			continue
		case []string:
			for _, s := range val {
				q.Add(key, s)
			}
		default:
			q.Set(key, stringify(val))
		}
	}

	return q.Encode()
}

// Resolve builds the final path for p.
//
// Every :name placeholder with a value in params is replaced by the
// value encoded as a single URI component: everything except letters,
// digits and -_.!~*'() is percent-encoded, including "/", ":", "&", "="
// and "+". Placeholders without a value stay in the output
// verbatim. A leading "/" is added when missing. Non-empty queries are
// appended after "?", joined by "&" when more than one is given.
//
//	Resolve(Literal("/api/beans/:id"), Params{"id": "hello world"})
//	// "/api/beans/hello%20world"
func Resolve(p Pather, params Params, query ...Query) string {
	path, _ := resolve(p, params, query)
	return path
}

// ResolveStrict is Resolve with the parameter check of CheckParams.
// It returns a *MissingParamsError when a placeholder has no value.
func ResolveStrict(p Pather, params Params, query ...Query) (string, error) {
	path, missing := resolve(p, params, query)
	if len(missing) > 0 {
		return "", &MissingParamsError{Path: pathOf(p), Missing: missing}
	}
	return path, nil
}

// CheckParams verifies that params supplies every placeholder of p.
func CheckParams(p Pather, params Params) error {
	var missing []string
	for _, name := range patternOf(p).Params() {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingParamsError{Path: pathOf(p), Missing: missing}
	}
	return nil
}

func resolve(p Pather, params Params, query []Query) (string, []string) {
	encoded := make(map[string]string, len(params))
	for key, value := range params {
		encoded[key] = EscapeComponent(stringify(value))
	}

	path, missing := patternOf(p).expand(encoded)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if qs := encodeQueries(query); qs != "" {
		path += "?" + qs
	}

	return path, missing
}

// patternOf reuses the pattern compiled by Build when p is a *Node.
func patternOf(p Pather) *Pattern {
	if n, ok := p.(*Node); ok && n != nil && n.pattern != nil {
		return n.pattern
	}
	return ParsePattern(pathOf(p))
}

func pathOf(p Pather) string {
	if p == nil {
		return ""
	}
	return p.Path()
}

func encodeQueries(query []Query) string {
	var parts []string
	for _, q := range query {
		if q == nil {
			continue
		}
		if s := q.Encode(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "&")
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s as one URI component, byte by byte
// over its UTF-8 form. Only ASCII letters, digits and -_.!~*'() are left
// as is, so the result never contains a placeholder or a path separator.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isComponentByte(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func stringify(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
