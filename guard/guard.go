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
	"net/url"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"crema.dev/routing/logging"
	"crema.dev/routing/route"
)

// New returns middleware that guards requests using the visibility
// recorded in m. A nil map classifies every path as public.
func New(m *route.Map, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.loginPath != "" {
		cfg.skipPaths[cfg.loginPath] = true
	}
	stats, err := newMetrics(cfg.registerer, cfg.meterProvider)
	if err != nil {
		cfg.logger.Error("route guard metrics disabled", "error", err)
		stats = &metrics{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path
			log := func(d Decision, attrs ...slog.Attr) {
				stats.record(r.Context(), d)
				logging.WithTrace(r.Context(), cfg.logger).LogAttrs(r.Context(), slog.LevelDebug, "route guard",
					append(attrs, slog.String("path", p), slog.String("decision", string(d)))...)
			}

			if cfg.skip(p) {
				log(DecisionSkipped)
				next.ServeHTTP(w, r)
				return
			}

			entry, matched, public := m.Classify(p)

			span := trace.SpanFromContext(r.Context())
			span.SetAttributes(attribute.Bool("route.public", public))
			if matched {
				span.SetAttributes(attribute.String("route.path", entry.Path()))
				r = r.WithContext(withEntry(r.Context(), entry))
			}

			switch {
			case public:
				log(DecisionPublic, slog.String("route", entry.Name()))
				next.ServeHTTP(w, r)
			case cfg.authenticate(r):
				log(DecisionAllowed, slog.String("route", entry.Name()))
				next.ServeHTTP(w, r)
			case cfg.isAPI(p) || cfg.loginPath == "":
				log(DecisionRejected, slog.String("route", entry.Name()))
				cfg.unauthorized(w, r, entry.Name())
			default:
				log(DecisionRedirected, slog.String("route", entry.Name()))
				http.Redirect(w, r, cfg.loginURL(p), http.StatusTemporaryRedirect)
			}
		})
	}
}

func (c *config) skip(p string) bool {
	if c.skipPaths[p] {
		return true
	}
	for _, prefix := range c.staticPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return c.staticExts[strings.ToLower(path.Ext(p))]
}

func (c *config) isAPI(p string) bool {
	if c.apiPrefix == "" {
		return false
	}
	return p == c.apiPrefix || strings.HasPrefix(p, c.apiPrefix+"/")
}

func (c *config) loginURL(callback string) string {
	return route.Resolve(route.Literal(c.loginPath), nil, url.Values{"callbackUrl": {callback}})
}
