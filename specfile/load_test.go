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

//go:build !integration

package specfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crema.dev/routing/route"
)

const appYAML = `
routes:
  home:
    path: /
    isPublic: true
  log: /log
  settings:
    path: /settings
    integrations: /integrations
  login:
    path: /login
    isPublic: true
  share:
    path: /share
    isPublic: true
    uid: /:uid
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	specs, err := Parse([]byte(appYAML), TypeYAML)
	require.NoError(t, err)

	assert.Equal(t, route.Fragment("/log"), specs["log"])
	assert.Equal(t, &route.Spec{Path: "/", Visibility: route.Public}, specs["home"])
	assert.Equal(t, &route.Spec{
		Path:   "/settings",
		Routes: route.Specs{"integrations": route.Fragment("/integrations")},
	}, specs["settings"])
	assert.Equal(t, &route.Spec{
		Path:       "/share",
		Visibility: route.Public,
		Routes:     route.Specs{"uid": route.Fragment("/:uid")},
	}, specs["share"])
}

func TestParse_BuildsExpectedMap(t *testing.T) {
	t.Parallel()

	specs, err := Parse([]byte(appYAML), TypeYAML)
	require.NoError(t, err)

	m := route.MustNewMap(route.Build(specs))
	assert.Equal(t, []string{
		"/", "/log", "/login", "/settings", "/settings/integrations", "/share", "/share/:uid",
	}, m.Paths())
	assert.True(t, m.IsPublic("/share/abc123"))
	assert.False(t, m.IsPublic("/settings/integrations"))
}

func TestParse_TOMLAndJSON(t *testing.T) {
	t.Parallel()

	want := route.Specs{
		"log": {Path: "/log", Visibility: route.Private},
		"api": {
			Path:   "/api",
			Routes: route.Specs{"beans": route.Fragment("/beans")},
		},
	}

	fromTOML, err := Parse([]byte(`
[routes]
log = { path = "/log", isPublic = false }

[routes.api]
path = "/api"
beans = "/beans"
`), TypeTOML)
	require.NoError(t, err)
	assert.Equal(t, want, fromTOML)

	fromJSON, err := Parse([]byte(`{
  "routes": {
    "log": {"path": "/log", "isPublic": false},
    "api": {"path": "/api", "beans": "/beans"}
  }
}`), TypeJSON)
	require.NoError(t, err)
	assert.Equal(t, want, fromJSON)
}

func TestParse_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "missing routes", content: "paths: {}"},
		{name: "numeric fragment", content: "routes:\n  log: 42\n"},
		{name: "string marker", content: "routes:\n  log:\n    path: /log\n    isPublic: \"yes\"\n"},
		{name: "list child", content: "routes:\n  log:\n    path: /log\n    items: [a, b]\n"},
		{name: "table without path", content: "routes:\n  log:\n    isPublic: true\n"},
		{name: "child table without path", content: "routes:\n  settings:\n    path: /settings\n    billing:\n      plans: /plans\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.content), TypeYAML)
			require.Error(t, err)

			var specErr *Error
			require.ErrorAs(t, err, &specErr)
			assert.Equal(t, "content", specErr.Source)
			assert.Equal(t, "validate", specErr.Operation)
		})
	}
}

func TestParse_DecodeError(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"routes":`), TypeJSON)

	var specErr *Error
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "decode", specErr.Operation)
}

func TestLoad_MergesOverlays(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "routes.yaml", appYAML)
	overlay := writeFile(t, "routes.local.toml", `
[routes.log]
path = "/log"
isPublic = true

[routes.settings]
billing = "/billing"
`)

	specs, err := Load(context.Background(), base, overlay)
	require.NoError(t, err)

	assert.Equal(t, route.Public, specs["log"].Visibility)
	assert.Equal(t, "/settings", specs["settings"].Path)
	assert.Equal(t, route.Fragment("/integrations"), specs["settings"].Routes["integrations"])
	assert.Equal(t, route.Fragment("/billing"), specs["settings"].Routes["billing"])
	assert.Equal(t, route.Public, specs["home"].Visibility)
}

func TestLoad_LaterFileWins(t *testing.T) {
	t.Parallel()

	first := writeFile(t, "a.json", `{"routes": {"home": {"path": "/index"}, "log": "/log"}}`)
	second := writeFile(t, "b.json", `{"routes": {"home": {"path": "/", "isPublic": true}}}`)

	specs, err := Load(context.Background(), first, second)
	require.NoError(t, err)
	assert.Equal(t, &route.Spec{Path: "/", Visibility: route.Public}, specs["home"])
	assert.Equal(t, route.Fragment("/log"), specs["log"])
}

func TestLoad_OverlayMayOmitPath(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "routes.yaml", appYAML)
	overlay := writeFile(t, "routes.local.yaml", "routes:\n  settings:\n    isPublic: true\n")

	specs, err := Load(context.Background(), base, overlay)
	require.NoError(t, err)
	assert.Equal(t, &route.Spec{
		Path:       "/settings",
		Visibility: route.Public,
		Routes:     route.Specs{"integrations": route.Fragment("/integrations")},
	}, specs["settings"])
}

func TestLoad_MergedRouteNeedsPath(t *testing.T) {
	t.Parallel()

	base := writeFile(t, "routes.yaml", appYAML)
	overlay := writeFile(t, "routes.local.yaml", "routes:\n  billing:\n    isPublic: true\n")

	_, err := Load(context.Background(), base, overlay)

	var specErr *Error
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, base+", "+overlay, specErr.Source)
	assert.Equal(t, "validate", specErr.Operation)
}

func TestLoad_NoFiles(t *testing.T) {
	t.Parallel()

	specs, err := Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "absent.yaml")
		_, err := Load(context.Background(), path)

		var specErr *Error
		require.ErrorAs(t, err, &specErr)
		assert.Equal(t, path, specErr.Source)
		assert.Equal(t, "read", specErr.Operation)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "routes.ini", "log=/log")
		_, err := Load(context.Background(), path)
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("invalid second file", func(t *testing.T) {
		t.Parallel()

		good := writeFile(t, "good.yaml", appYAML)
		bad := writeFile(t, "bad.yaml", "routes:\n  log: [1]\n")
		_, err := Load(context.Background(), good, bad)

		var specErr *Error
		require.ErrorAs(t, err, &specErr)
		assert.Equal(t, bad, specErr.Source)
		assert.Equal(t, "validate", specErr.Operation)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Load(ctx, writeFile(t, "routes.yaml", appYAML))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := newError("routes.yaml", "decode", inner)

	assert.Equal(t, "specfile error in routes.yaml during decode: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
