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

package specfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/consul/api"
)

// Source provides one raw spec document.
type Source interface {
	// Load returns the decoded document. A missing document may be
	// reported as an empty map.
	Load(ctx context.Context) (map[string]any, error)

	// String names the source in errors and logs.
	String() string
}

type fileSource struct {
	path string
}

// File returns a Source reading path. The format is inferred from the
// extension when the source is loaded.
func File(path string) Source {
	return &fileSource{path: path}
}

func (f *fileSource) Load(_ context.Context) (map[string]any, error) {
	typ, err := TypeFromPath(f.path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return decode(data, typ)
}

func (f *fileSource) String() string {
	return f.path
}

type contentSource struct {
	data []byte
	typ  Type
}

// Content returns a Source over an in-memory document.
func Content(data []byte, typ Type) Source {
	return &contentSource{data: data, typ: typ}
}

func (c *contentSource) Load(_ context.Context) (map[string]any, error) {
	return decode(c.data, c.typ)
}

func (c *contentSource) String() string {
	return "content"
}

// ConsulKV is the subset of the Consul KV API used by Consul sources.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

type consulSource struct {
	key string
	typ Type
	kv  ConsulKV
}

// Consul returns a Source reading key from the Consul KV store.
//
// When kv is nil a client is created from the environment
// (CONSUL_HTTP_ADDR, CONSUL_HTTP_TOKEN). A missing key loads as an empty
// document.
func Consul(key string, typ Type, kv ConsulKV) (Source, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	return &consulSource{key: key, typ: typ, kv: kv}, nil
}

func (c *consulSource) Load(ctx context.Context) (map[string]any, error) {
	pair, _, err := c.kv.Get(c.key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key: %w", err)
	}
	if pair == nil {
		return make(map[string]any), nil
	}
	return decode(pair.Value, c.typ)
}

func (c *consulSource) String() string {
	return "consul:" + c.key
}

func decode(data []byte, typ Type) (map[string]any, error) {
	codec, err := Lookup(typ)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err = codec.Decode(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}
