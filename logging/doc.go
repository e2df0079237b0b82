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

// Package logging builds the [slog.Logger] used by the route tools.
//
// Three handler types are supported: JSON for log aggregation, text for
// key=value output and a colored console format for local use:
//
//	logger, err := logging.New(
//	    logging.WithHandlerType(logging.ConsoleHandler),
//	    logging.WithLevel(logging.LevelDebug),
//	    logging.WithServiceName("routectl"),
//	)
//
// Values of sensitive keys (password, token, secret, api_key,
// authorization, cookie) are always redacted.
//
// # Trace correlation
//
// WithTrace adds the trace_id and span_id of the active OpenTelemetry span
// to a logger, and FromContext returns the logger stored with NewContext:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("route classified", "path", p)
package logging
