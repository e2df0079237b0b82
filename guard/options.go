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

package guard

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
)

// Authenticator reports whether r carries a valid session.
type Authenticator func(r *http.Request) bool

// Option defines functional options for guard configuration.
type Option func(*config)

type config struct {
	authenticate   Authenticator
	loginPath      string
	apiPrefix      string
	skipPaths      map[string]bool
	staticPrefixes []string
	staticExts     map[string]bool
	logger         *slog.Logger
	registerer     prometheus.Registerer
	meterProvider  metric.MeterProvider
	problemBaseURL string
}

func defaultConfig() *config {
	return &config{
		authenticate:   func(*http.Request) bool { return false },
		loginPath:      "/login",
		apiPrefix:      "/api",
		skipPaths:      make(map[string]bool),
		staticPrefixes: []string{"/logos/", "/images/", "/icons/"},
		staticExts: map[string]bool{
			".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
			".svg": true, ".ico": true, ".webp": true,
		},
	}
}

// WithAuthenticator sets the session check run for protected paths.
func WithAuthenticator(fn Authenticator) Option {
	return func(c *config) {
		if fn != nil {
			c.authenticate = fn
		}
	}
}

// WithLoginPath sets the redirect target for refused page requests.
// The login path itself is never guarded. Default: "/login".
func WithLoginPath(path string) Option {
	return func(c *config) {
		c.loginPath = path
	}
}

// WithAPIPrefix sets the prefix under which refused requests get a 401
// problem document instead of a redirect. An empty prefix disables it.
// Default: "/api".
func WithAPIPrefix(prefix string) Option {
	return func(c *config) {
		c.apiPrefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithSkipPaths lists exact paths that bypass the guard.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		for _, p := range paths {
			c.skipPaths[p] = true
		}
	}
}

// WithStaticPrefixes replaces the static asset prefixes that bypass the
// guard. Default: "/logos/", "/images/", "/icons/".
func WithStaticPrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.staticPrefixes = prefixes
	}
}

// WithLogger sets the logger for guard decisions, logged at debug level.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics registers the crema_guard_decisions_total counter with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithMeterProvider records decisions on the OpenTelemetry counter
// crema.guard.decisions, with the outcome in the "decision" attribute.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithProblemBaseURL sets the URI prefix of problem types, e.g.
// "https://crema.dev/problems". Empty yields "about:blank".
func WithProblemBaseURL(base string) Option {
	return func(c *config) {
		c.problemBaseURL = strings.TrimSuffix(base, "/")
	}
}
