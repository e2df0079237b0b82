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

// Option configures Build and NewMap.
type Option func(*config)

// config holds the settings shared by Build and NewMap.
// Options that only concern the map are ignored by Build.
type config struct {
	diagnostics DiagnosticHandler
	collisions  CollisionPolicy
	unmatched   UnmatchedPolicy
}

func newConfig(opts []Option) *config {
	cfg := &config{
		collisions: CollisionLastWins,
		unmatched:  UnmatchedAllow,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.collisions = cfg.collisions.normalize()
	cfg.unmatched = cfg.unmatched.normalize()

	return cfg
}

// CollisionPolicy controls what NewMap does when two nodes share a path.
type CollisionPolicy string

const (
	// CollisionLastWins keeps the entry of the node visited last.
	// Nodes are visited depth-first in sorted name order.
	CollisionLastWins CollisionPolicy = "last_wins"
	// CollisionReject makes NewMap fail with ErrPathCollision.
	CollisionReject CollisionPolicy = "reject"
)

func (p CollisionPolicy) normalize() CollisionPolicy {
	if p == CollisionReject {
		return CollisionReject
	}
	return CollisionLastWins
}

func (p CollisionPolicy) String() string {
	return string(p.normalize())
}

// UnmatchedPolicy controls Map.IsPublic for paths with no registered
// ancestor and no root entry.
type UnmatchedPolicy string

const (
	// UnmatchedAllow treats unresolved paths as public.
	UnmatchedAllow UnmatchedPolicy = "allow"
	// UnmatchedDeny treats unresolved paths as protected as soon as the map
	// holds at least one entry. An empty map stays permissive.
	UnmatchedDeny UnmatchedPolicy = "deny"
)

func (p UnmatchedPolicy) normalize() UnmatchedPolicy {
	if p == UnmatchedDeny {
		return UnmatchedDeny
	}
	return UnmatchedAllow
}

func (p UnmatchedPolicy) String() string {
	return string(p.normalize())
}

// WithDiagnostics sets a handler for authoring diagnostics.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *config) {
		c.diagnostics = handler
	}
}

// WithCollisionPolicy sets how NewMap handles duplicate paths.
// Unknown values fall back to CollisionLastWins.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(c *config) {
		c.collisions = policy
	}
}

// WithStrictPaths is shorthand for WithCollisionPolicy(CollisionReject).
func WithStrictPaths() Option {
	return WithCollisionPolicy(CollisionReject)
}

// WithUnmatchedPolicy sets how Map.IsPublic treats unresolved paths.
// Unknown values fall back to UnmatchedAllow.
func WithUnmatchedPolicy(policy UnmatchedPolicy) Option {
	return func(c *config) {
		c.unmatched = policy
	}
}
