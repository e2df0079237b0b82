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
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Type identifies a spec file format.
type Type string

const (
	// TypeYAML is the "yaml" format.
	TypeYAML Type = "yaml"
	// TypeTOML is the "toml" format.
	TypeTOML Type = "toml"
	// TypeJSON is the "json" format.
	TypeJSON Type = "json"
	// TypeMsgPack is the binary "msgpack" format.
	TypeMsgPack Type = "msgpack"
)

// ErrUnsupportedType is returned for formats without a registered codec.
var ErrUnsupportedType = errors.New("unsupported spec file type")

// Encoder converts Go values into encoded bytes.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded bytes into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Codec both encodes and decodes one format.
type Codec interface {
	Encoder
	Decoder
}

var (
	registryMu sync.RWMutex
	registry   = map[Type]Codec{
		TypeYAML:    YAMLCodec{},
		TypeTOML:    TOMLCodec{},
		TypeJSON:    JSONCodec{},
		TypeMsgPack: MsgPackCodec{},
	}
)

// Register installs c for typ, replacing any codec already registered.
func Register(typ Type, c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typ] = c
}

// Lookup returns the codec registered for typ.
func Lookup(typ Type) (Codec, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
	return c, nil
}

// TypeFromPath infers the format from the file extension.
// ".yml" is accepted as YAML.
func TypeFromPath(path string) (Type, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "yml":
		return TypeYAML, nil
	case "":
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedType, path)
	}

	typ := Type(ext)
	if _, err := Lookup(typ); err != nil {
		return "", err
	}
	return typ, nil
}

// YAMLCodec reads and writes YAML.
type YAMLCodec struct{}

func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// TOMLCodec reads and writes TOML.
type TOMLCodec struct{}

func (TOMLCodec) Encode(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// JSONCodec reads and writes indented JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MsgPackCodec reads and writes MessagePack.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgPackCodec) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
