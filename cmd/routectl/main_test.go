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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestList_BuiltIn(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"PATH", "NAME", "VISIBILITY"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"/", "home", "public"}, strings.Fields(lines[1]))
	assert.Contains(t, out, "/settings/integrations")
	assert.Contains(t, out, "api.stats.byBean")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "parameter",
			args: []string{"resolve", "api.shots.detail.reference", "id=42"},
			want: "/api/shots/42/reference",
		},
		{
			name: "encoded parameter",
			args: []string{"resolve", "share.shot", "uid=a b"},
			want: "/share/a%20b",
		},
		{
			name: "query",
			args: []string{"resolve", "api.shots", "-q", "page=2", "-q", "limit=10"},
			want: "/api/shots?limit=10&page=2",
		},
		{
			name: "missing parameter stays literal",
			args: []string{"resolve", "api.beans.detail"},
			want: "/api/beans/:id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "resolve", "nope")
	require.ErrorContains(t, err, `unknown route "nope"`)

	_, _, err = run(t, "resolve", "api.beans.detail", "--require-params")
	require.ErrorContains(t, err, "missing route parameters")

	_, _, err = run(t, "resolve", "api.beans.detail", "id")
	require.ErrorContains(t, err, "expected key=value")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "classify", "/log/abc", "/share/xyz", "/elsewhere")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"/log/abc", "/log", "false"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"/share/xyz", "/share", "true"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"/elsewhere", "/", "true"}, strings.Fields(lines[3]))
}

func TestClassify_FromFileWithDeny(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
routes:
  login:
    path: /login
    isPublic: true
  log: /log
`), 0o600))

	out, _, err := run(t, "-f", path, "--deny-unmatched", "classify", "/login", "/elsewhere")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"/login", "/login", "true"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"/elsewhere", "-", "false"}, strings.Fields(lines[2]))
}

func TestExport_JSON(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "export", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Routes []struct {
			Name       string `json:"name"`
			Path       string `json:"path"`
			Visibility string `json:"visibility"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Routes)
	assert.Equal(t, "/", doc.Routes[0].Path)
	assert.Equal(t, "public", doc.Routes[0].Visibility)
}

func TestStrictCollisionAndDiagnostics(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "routes": {
    "a": "/same",
    "b": "/same"
  }
}`), 0o600))

	_, stderr, err := run(t, "-f", path, "--log-format", "json", "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"kind":"route_path_collision"`)

	_, _, err = run(t, "-f", path, "--strict", "list")
	require.ErrorContains(t, err, "duplicate route path")
}

func TestInvalidLogFlags(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--log-level", "loud", "list")
	require.Error(t, err)

	_, _, err = run(t, "--log-format", "xml", "list")
	require.Error(t, err)
}

func TestList_Styled(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "list", "--style")
	require.NoError(t, err)

	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "Visibility")
	assert.Contains(t, out, "/settings/integrations")
	assert.NotContains(t, out, "\x1b[", "non-terminal output carries no ANSI sequences")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "routectl dev")
	assert.NotContains(t, out, "\x1b[")
}

func TestTrace(t *testing.T) {
	t.Parallel()

	out, stderr, err := run(t, "--trace", "--log-level", "error", "classify", "/log/abc")
	require.NoError(t, err)
	assert.Contains(t, out, "/log/abc")

	assert.Contains(t, stderr, "routectl classify")
	assert.Contains(t, stderr, `"classified"`)
	assert.Contains(t, stderr, "route.public")
}

func TestTrace_Disabled(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "--log-level", "error", "classify", "/log/abc")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}
