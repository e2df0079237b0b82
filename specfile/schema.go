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
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const (
	schemaURL  = "routes.schema.json"
	overlayURL = schemaURL + "#/$defs/overlay"
)

type schemas struct {
	document *jsonschema.Schema
	overlay  *jsonschema.Schema
}

var compiledSchemas = sync.OnceValues(func() (*schemas, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}

	s := &schemas{}
	if s.document, err = compiler.Compile(schemaURL); err != nil {
		return nil, err
	}
	if s.overlay, err = compiler.Compile(overlayURL); err != nil {
		return nil, err
	}
	return s, nil
})

// validate checks a complete document: every table route declares a path.
func validate(doc map[string]any) error {
	s, err := compiledSchemas()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return validateWith(s.document, doc)
}

// validateOverlay checks one layer of a merge. Table routes may omit the
// path, which an earlier layer is expected to provide.
func validateOverlay(doc map[string]any) error {
	s, err := compiledSchemas()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return validateWith(s.overlay, doc)
}

// validateWith re-reads doc through JSON so that YAML, TOML and
// MessagePack number and map types reach the validator in their JSON form.
func validateWith(schema *jsonschema.Schema, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	return schema.Validate(inst)
}
