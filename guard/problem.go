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
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

const problemContentType = "application/problem+json; charset=utf-8"

// ProblemDetail is an RFC 9457 problem document.
type ProblemDetail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// MarshalJSON writes the standard members followed by the extensions.
// Extensions cannot shadow a standard member.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		switch k {
		case "type", "title", "status", "detail", "instance":
		default:
			m[k] = v
		}
	}
	return json.Marshal(m)
}

func (c *config) unauthorized(w http.ResponseWriter, r *http.Request, routeName string) {
	p := ProblemDetail{
		Type:     "about:blank",
		Title:    http.StatusText(http.StatusUnauthorized),
		Status:   http.StatusUnauthorized,
		Detail:   "authentication required",
		Instance: r.URL.Path,
		Extensions: map[string]any{
			"error_id": generateErrorID(),
		},
	}
	if c.problemBaseURL != "" {
		p.Type = c.problemBaseURL + "/unauthenticated"
	}
	if routeName != "" {
		p.Extensions["route"] = routeName
	}

	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func generateErrorID() string {
	return "err-" + uuid.NewString()
}
