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
	"context"
	"log/slog"
)

// DiagnosticEvent describes a route table authoring anomaly.
//
// Diagnostics are informational. Build and NewMap behave identically
// whether or not they are collected.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagCircularReference is emitted when a spec is reached again along
	// the same root-to-leaf path. The branch is replaced by a sentinel node.
	DiagCircularReference DiagnosticKind = "route_circular_reference"

	// DiagNilSpec is emitted when a spec map holds a nil entry.
	DiagNilSpec DiagnosticKind = "route_nil_spec"

	// DiagPathCollision is emitted when two nodes share a path and the
	// later one overwrites the earlier map entry.
	DiagPathCollision DiagnosticKind = "route_path_collision"
)

// DiagnosticHandler receives diagnostic events from Build and NewMap.
//
// Example with metrics:
//
//	handler := route.DiagnosticHandlerFunc(func(e route.DiagnosticEvent) {
//	    collisions.WithLabelValues(string(e.Kind)).Inc()
//	})
//	routes := route.Build(specs, route.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// SlogDiagnostics returns a DiagnosticHandler that logs every event at
// warn level. A nil logger uses slog.Default().
func SlogDiagnostics(logger *slog.Logger) DiagnosticHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		attrs := make([]slog.Attr, 0, len(e.Fields)+1)
		attrs = append(attrs, slog.String("kind", string(e.Kind)))
		for k, v := range e.Fields {
			attrs = append(attrs, slog.Any(k, v))
		}
		logger.LogAttrs(context.Background(), slog.LevelWarn, e.Message, attrs...)
	})
}

// emit delivers an event when a handler is configured.
func (c *config) emit(kind DiagnosticKind, msg string, fields map[string]any) {
	if c.diagnostics == nil {
		return
	}
	c.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: msg, Fields: fields})
}
