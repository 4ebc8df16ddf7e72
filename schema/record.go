// Copyright © 2023 Meroxa, Inc. & Yalantis
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

// Package schema holds definitions of models shared between different parts of the adapter.
package schema

// Record is a single node read back from a graph backend.
// A merge produces a new Record rather than modifying an existing one.
type Record struct {
	Fields map[string]any `json:"fields"`
	Labels []string       `json:"labels,omitempty"`
	// ElementID is the backend-native identity. It is not a business key.
	ElementID string `json:"-"`
}

// Get returns a field value.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.Fields[name]

	return v, ok
}
