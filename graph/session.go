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

//go:generate mockgen -package mock -destination mock/session.go . Session

// Package graph implements statement execution against Bolt-compatible graph backends.
package graph

import "context"

// Session executes parameterized statements against the active backend.
// Implementations own their connection pool and must be safe for concurrent use.
type Session interface {
	ExecuteRead(ctx context.Context, statement string, params map[string]any) ([]Row, error)
	ExecuteWrite(ctx context.Context, statement string, params map[string]any) ([]Row, error)
	Close(ctx context.Context) error
}

// Row is a single returned record: return aliases and their values in statement order.
type Row struct {
	Keys   []string
	Values []any
}

// NewRow creates a [Row] from alternating alias and value arguments.
func NewRow(pairs ...any) Row {
	row := Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		row.Keys = append(row.Keys, key)
		row.Values = append(row.Values, pairs[i+1])
	}

	return row
}

// Get returns the value returned under alias.
func (r Row) Get(alias string) (any, bool) {
	for i, key := range r.Keys {
		if key == alias && i < len(r.Values) {
			return r.Values[i], true
		}
	}

	return nil, false
}

// AsMap returns the row as an alias to value mapping.
func (r Row) AsMap() map[string]any {
	m := make(map[string]any, len(r.Keys))
	for i, key := range r.Keys {
		if i < len(r.Values) {
			m[key] = r.Values[i]
		}
	}

	return m
}
