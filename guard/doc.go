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

// Package guard provides net/http middleware that gates requests by the
// visibility recorded in a route.Map.
//
// Each request path is classified with Map.IsPublic. Public paths pass
// through. Protected paths are handed to the configured Authenticator;
// when it refuses, page requests are redirected to the login route with
// the requested path in the callbackUrl query parameter, and API requests
// receive a 401 RFC 9457 problem document.
//
//	m := shotlog.Map()
//	mw := guard.New(m,
//	    guard.WithAuthenticator(sessions.Valid),
//	    guard.WithLoginPath("/login"),
//	    guard.WithMetrics(prometheus.DefaultRegisterer),
//	)
//
//	r := chi.NewRouter()
//	r.Use(mw)
//
// Authentication itself is left to the caller. Without WithAuthenticator
// every protected request is refused.
package guard
