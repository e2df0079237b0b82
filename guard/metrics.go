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
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Decision is the outcome of guarding one request.
type Decision string

const (
	// DecisionSkipped covers static assets, skip paths and the login page.
	DecisionSkipped Decision = "skipped"
	// DecisionPublic means the path classified as public.
	DecisionPublic Decision = "public"
	// DecisionAllowed means a protected path passed authentication.
	DecisionAllowed Decision = "allowed"
	// DecisionRedirected means a page request was sent to the login route.
	DecisionRedirected Decision = "redirected"
	// DecisionRejected means an API request was answered with 401.
	DecisionRejected Decision = "rejected"
)

const meterName = "crema.dev/routing/guard"

// metrics fans decisions out to Prometheus and OpenTelemetry. Either
// side may be absent.
type metrics struct {
	decisions *prometheus.CounterVec
	counter   metric.Int64Counter
}

func newMetrics(reg prometheus.Registerer, mp metric.MeterProvider) (*metrics, error) {
	m := &metrics{}

	if reg != nil {
		decisions, err := registerDecisions(reg)
		if err != nil {
			return nil, err
		}
		m.decisions = decisions
	}

	if mp != nil {
		counter, err := mp.Meter(meterName).Int64Counter(
			"crema.guard.decisions",
			metric.WithDescription("Route guard decisions by outcome."),
			metric.WithUnit("{decision}"),
		)
		if err != nil {
			return nil, err
		}
		m.counter = counter
	}

	return m, nil
}

// registerDecisions registers the decision counter with reg. Guards
// sharing a registry share the counter registered by the first of them.
func registerDecisions(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crema",
		Subsystem: "guard",
		Name:      "decisions_total",
		Help:      "Route guard decisions by outcome.",
	}, []string{"decision"})

	err := reg.Register(decisions)
	if err == nil {
		return decisions, nil
	}

	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return nil, fmt.Errorf("register decision counter: %w", err)
	}
	existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
	if !ok {
		return nil, fmt.Errorf("register decision counter: %s is taken by a %T", "crema_guard_decisions_total", are.ExistingCollector)
	}
	return existing, nil
}

func (m *metrics) record(ctx context.Context, d Decision) {
	if m.decisions != nil {
		m.decisions.WithLabelValues(string(d)).Inc()
	}
	if m.counter != nil {
		m.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", string(d))))
	}
}
