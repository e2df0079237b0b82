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

// Package shotlog declares the route table of the Crema shot log: the
// pages of the web app and the JSON API behind them.
//
// The table is built once, on first use, and shared by every caller:
//
//	shotlog.Routes().Get("settings", "integrations").Path() // "/settings/integrations"
//	route.Resolve(shotlog.Get("api", "shots", "detail"), route.Params{"id": 42})
//	shotlog.IsPublic("/share/abc123") // true
package shotlog

import (
	"sync"

	"crema.dev/routing/route"
)

// Specs returns a fresh copy of the route declarations.
func Specs() route.Specs {
	return route.Specs{
		"home": {Path: "/", Visibility: route.Public},
		"login": {Path: "/login", Visibility: route.Public},
		"share": {
			Path:       "/share",
			Visibility: route.Public,
			Routes: route.Specs{
				"shot": {Path: "/:uid", Visibility: route.Public},
			},
		},

		"log":       {Path: "/log", Visibility: route.Private},
		"history":   {Path: "/history", Visibility: route.Private},
		"dashboard": {Path: "/dashboard", Visibility: route.Private},
		"settings": {
			Path:       "/settings",
			Visibility: route.Private,
			Routes: route.Specs{
				"integrations": route.Fragment("/integrations"),
			},
		},

		"api": {
			Path:   "/api",
			Routes: apiSpecs(),
		},
	}
}

func apiSpecs() route.Specs {
	return route.Specs{
		"auth":   {Path: "/auth", Visibility: route.Public},
		"health": {Path: "/health", Visibility: route.Public},
		"users":  route.Fragment("/users"),
		"beans": {
			Path: "/beans",
			Routes: route.Specs{
				"detail": route.Fragment("/:id"),
			},
		},
		"equipment": {
			Path: "/equipment",
			Routes: route.Specs{
				"grinders": route.Fragment("/grinders"),
				"machines": route.Fragment("/machines"),
				"tools":    route.Fragment("/tools"),
			},
		},
		"shots": {
			Path: "/shots",
			Routes: route.Specs{
				"detail": {
					Path: "/:id",
					Routes: route.Specs{
						"reference": route.Fragment("/reference"),
						"hide":      route.Fragment("/hide"),
					},
				},
			},
		},
		"stats": {
			Path: "/stats",
			Routes: route.Specs{
				"overview": route.Fragment("/overview"),
				"byBean":   route.Fragment("/by-bean/:beanId"),
				"byUser":   route.Fragment("/by-user/:userId"),
			},
		},
		"integrations": {
			Path: "/integrations",
			Routes: route.Specs{
				"detail":   route.Fragment("/:id"),
				"validate": route.Fragment("/validate"),
			},
		},
	}
}

var (
	routes = sync.OnceValue(func() route.Routes {
		return route.Build(Specs())
	})

	routeMap = sync.OnceValue(func() *route.Map {
		return route.MustNewMap(Routes(), route.WithStrictPaths())
	})
)

// Routes returns the built route tree.
func Routes() route.Routes {
	return routes()
}

// Map returns the flat path index of Routes.
func Map() *route.Map {
	return routeMap()
}

// Get returns the node at the given name path, or nil.
func Get(names ...string) *route.Node {
	return Routes().Get(names...)
}

// IsPublic reports whether path may be served without a session.
func IsPublic(path string) bool {
	return Map().IsPublic(path)
}
