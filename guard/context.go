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

	"crema.dev/routing/route"
)

type entryKey struct{}

// EntryFromContext returns the route entry the guard matched for the
// request, if any.
func EntryFromContext(ctx context.Context) (route.Entry, bool) {
	e, ok := ctx.Value(entryKey{}).(route.Entry)
	return e, ok
}

func withEntry(ctx context.Context, e route.Entry) context.Context {
	return context.WithValue(ctx, entryKey{}, e)
}
