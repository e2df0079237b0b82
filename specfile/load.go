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

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"

	"crema.dev/routing/route"
)

// Load reads, validates and merges the spec files at paths, in order.
//
// The format of each file is inferred from its extension. Nested tables
// are merged key by key and later files override earlier ones, so an
// overlay can add a child or flip a single marker without repeating the
// path. Once merged, every table route must have a path:
//
//	# routes.local.yaml
//	routes:
//	  settings:
//	    isPublic: true
//
// Errors are *Error values naming the offending file and stage.
func Load(ctx context.Context, paths ...string) (route.Specs, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, File(p))
	}
	return LoadSources(ctx, sources...)
}

// LoadSources is Load over arbitrary sources, such as a Consul key
// layered on top of local files.
func LoadSources(ctx context.Context, sources ...Source) (route.Specs, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	merged := make(map[string]any)
	var loaded []string
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := src.Load(ctx)
		if err != nil {
			return nil, newError(src.String(), "read", err)
		}
		if len(doc) == 0 {
			continue
		}
		if err = validateOverlay(doc); err != nil {
			return nil, newError(src.String(), "validate", err)
		}
		if err = mergo.Map(&merged, doc, mergo.WithOverride); err != nil {
			return nil, newError(src.String(), "merge", err)
		}
		loaded = append(loaded, src.String())
	}

	if len(loaded) == 0 {
		return route.Specs{}, nil
	}
	if err := validate(merged); err != nil {
		return nil, newError(strings.Join(loaded, ", "), "validate", err)
	}
	return bind(merged)
}

// Parse decodes and validates a single in-memory document.
func Parse(data []byte, typ Type) (route.Specs, error) {
	doc, err := decode(data, typ)
	if err != nil {
		return nil, newError("content", "decode", err)
	}
	if err = validate(doc); err != nil {
		return nil, newError("content", "validate", err)
	}
	return bind(doc)
}

// specDocument is the table form of a single route.
// Keys other than path and isPublic are child routes.
type specDocument struct {
	Path     string         `mapstructure:"path"`
	IsPublic *bool          `mapstructure:"isPublic"`
	Routes   map[string]any `mapstructure:",remain"`
}

func bind(doc map[string]any) (route.Specs, error) {
	raw, _ := doc["routes"].(map[string]any)

	specs, err := toSpecs(raw, "")
	if err != nil {
		return nil, newError("routes", "bind", err)
	}
	if specs == nil {
		specs = route.Specs{}
	}
	return specs, nil
}

func toSpecs(raw map[string]any, parent string) (route.Specs, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	specs := make(route.Specs, len(raw))
	for key, value := range raw {
		name := key
		if parent != "" {
			name = parent + "." + key
		}

		spec, err := toSpec(name, value)
		if err != nil {
			return nil, err
		}
		specs[key] = spec
	}
	return specs, nil
}

func toSpec(name string, value any) (*route.Spec, error) {
	switch v := value.(type) {
	case string:
		return route.Fragment(v), nil

	case map[string]any:
		var doc specDocument
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  &doc,
			TagName: "mapstructure",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder: %w", err)
		}
		if err = decoder.Decode(v); err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}

		children, err := toSpecs(doc.Routes, name)
		if err != nil {
			return nil, err
		}
		return &route.Spec{
			Path:       doc.Path,
			Visibility: route.VisibilityOf(doc.IsPublic),
			Routes:     children,
		}, nil

	default:
		return nil, fmt.Errorf("route %q: unsupported value of type %T", name, value)
	}
}
