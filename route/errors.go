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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPathCollision indicates two nodes produced the same path while
	// the map was built with CollisionReject.
	ErrPathCollision = errors.New("duplicate route path")

	// ErrMissingParams indicates a placeholder had no supplied value.
	ErrMissingParams = errors.New("missing route parameters")
)

// CollisionError reports the names of the two nodes that share Path.
type CollisionError struct {
	Path   string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%v: %q declared by %q and %q", ErrPathCollision, e.Path, e.First, e.Second)
}

// Unwrap returns ErrPathCollision.
func (e *CollisionError) Unwrap() error {
	return ErrPathCollision
}

// MissingParamsError lists the placeholders of Path left without a value.
type MissingParamsError struct {
	Path    string
	Missing []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("%v for %q: %s", ErrMissingParams, e.Path, strings.Join(e.Missing, ", "))
}

// Unwrap returns ErrMissingParams.
func (e *MissingParamsError) Unwrap() error {
	return ErrMissingParams
}
