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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppRoutes() Routes {
	return Build(Specs{
		"home": {Path: "/", Visibility: Public},
		"log":  Fragment("/log"),
		"settings": {
			Path:   "/settings",
			Routes: Specs{"integrations": Fragment("/integrations")},
		},
		"share": {
			Path:       "/share",
			Visibility: Public,
			Routes:     Specs{"uid": {Path: "/:uid"}},
		},
	})
}

func TestNewMap_ContainsEveryPath(t *testing.T) {
	t.Parallel()

	m := MustNewMap(testAppRoutes())

	for _, p := range []string{"/", "/log", "/settings", "/settings/integrations", "/share", "/share/:uid"} {
		assert.True(t, m.Has(p), "missing %s", p)
	}
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, []string{"/", "/log", "/settings", "/settings/integrations", "/share", "/share/:uid"}, m.Paths())
}

func TestNewMap_PreservesVisibility(t *testing.T) {
	t.Parallel()

	m := MustNewMap(testAppRoutes())

	home, ok := m.Get("/")
	require.True(t, ok)
	assert.True(t, home.IsPublic())
	assert.Equal(t, "home", home.Name())

	share, _ := m.Get("/share")
	assert.True(t, share.IsPublic())

	for _, p := range []string{"/log", "/settings", "/settings/integrations"} {
		e, ok := m.Get(p)
		require.True(t, ok)
		assert.False(t, e.Declared(), "%s should carry no marker", p)
	}

	uid, _ := m.Get("/share/:uid")
	assert.Equal(t, Unset, uid.Visibility(), "children never inherit the public marker")
}

func TestNewMap_UnsetDiffersFromPrivate(t *testing.T) {
	t.Parallel()

	m := MustNewMap(Build(Specs{
		"admin":  {Path: "/admin", Visibility: Private},
		"health": Fragment("/health"),
	}))

	admin, _ := m.Get("/admin")
	health, _ := m.Get("/health")

	assert.True(t, admin.Declared())
	assert.False(t, admin.IsPublic())
	assert.False(t, health.Declared())
	assert.False(t, health.IsPublic())
}

func TestNewMap_CollisionLastWins(t *testing.T) {
	t.Parallel()

	var events []DiagnosticEvent
	routes := Build(Specs{
		"a":     Fragment("/dup"),
		"b":     {Path: "/dup", Visibility: Public},
		"other": Fragment("/other"),
	})

	m, err := NewMap(routes, WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))
	require.NoError(t, err)

	e, ok := m.Get("/dup")
	require.True(t, ok)
	assert.Equal(t, "b", e.Name(), "nodes are visited in sorted order, so b overwrites a")
	assert.True(t, e.IsPublic())
	assert.Equal(t, 2, m.Len())

	require.Len(t, events, 1)
	assert.Equal(t, DiagPathCollision, events[0].Kind)
	assert.Equal(t, "a", events[0].Fields["replaced"])
	assert.Equal(t, "b", events[0].Fields["route"])
}

func TestNewMap_CollisionReject(t *testing.T) {
	t.Parallel()

	routes := Build(Specs{
		"settings": {
			Path:   "/settings",
			Routes: Specs{"integrations": Fragment("/integrations")},
		},
		"settingsIntegrations": Fragment("/settings/integrations"),
	})

	m, err := NewMap(routes, WithStrictPaths())
	require.Error(t, err)
	assert.Nil(t, m)
	require.ErrorIs(t, err, ErrPathCollision)

	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "/settings/integrations", collision.Path)
	assert.Equal(t, "settings.integrations", collision.First)
	assert.Equal(t, "settingsIntegrations", collision.Second)

	assert.Panics(t, func() { MustNewMap(routes, WithStrictPaths()) })
}

func TestNewMap_UnknownPolicyFallsBack(t *testing.T) {
	t.Parallel()

	routes := Build(Specs{"a": Fragment("/x"), "b": Fragment("/x")})

	_, err := NewMap(routes, WithCollisionPolicy("bogus"))
	require.NoError(t, err)
	assert.Equal(t, "last_wins", CollisionPolicy("bogus").String())
	assert.Equal(t, "reject", CollisionReject.String())
	assert.Equal(t, "allow", UnmatchedPolicy("").String())
	assert.Equal(t, "deny", UnmatchedDeny.String())
}

func TestNewMap_SkipsCircularSentinel(t *testing.T) {
	t.Parallel()

	loop := &Spec{Path: "/loop"}
	loop.Routes = Specs{"again": loop, "leaf": Fragment("/leaf")}

	m := MustNewMap(Build(Specs{"loop": loop}))

	assert.Equal(t, []string{"/loop", "/loop/leaf"}, m.Paths())
	assert.False(t, m.Has(CircularReference))
}

func TestNewMapFromNodes(t *testing.T) {
	t.Parallel()

	routes := testAppRoutes()
	m := NewMapFromNodes(routes["settings"], nil, routes["share"])

	assert.Equal(t, []string{"/settings", "/settings/integrations", "/share", "/share/:uid"}, m.Paths())
}

func TestMap_Entries(t *testing.T) {
	t.Parallel()

	m := MustNewMap(Build(Specs{
		"b": Fragment("/b"),
		"a": {Path: "/a", Visibility: Public},
	}))

	assert.Equal(t, []Entry{
		NewEntry("a", "/a", Public),
		NewEntry("b", "/b", Unset),
	}, m.Entries())
}

func TestMap_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilMap *Map
	assert.Zero(t, nilMap.Len())
	assert.Nil(t, nilMap.Paths())
	assert.Empty(t, nilMap.Entries())
	assert.False(t, nilMap.Has("/"))

	empty := MustNewMap(nil)
	assert.Zero(t, empty.Len())
}
