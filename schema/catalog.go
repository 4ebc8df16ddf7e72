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

package schema

import "fmt"

// Catalog maps schema names to field allow-lists.
type Catalog interface {
	Lookup(name string) (Definition, error)
}

// Field is a single allowed field of a [Definition].
type Field struct {
	Name string
	// Properties restricts nested object values. Nil keeps nested values as they are.
	Properties *Definition
	// Items restricts object elements of array values. Nil keeps elements as they are.
	Items *Definition
}

// Definition is an ordered set of allowed field names for a named model.
type Definition struct {
	Name   string
	Fields []Field
}

// NewDefinition creates a flat [Definition] from field names.
func NewDefinition(name string, fields ...string) Definition {
	def := Definition{Name: name, Fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		def.Fields = append(def.Fields, Field{Name: f})
	}

	return def
}

// MapCatalog is an in-memory [Catalog].
type MapCatalog map[string]Definition

// NewCatalog creates a [MapCatalog] holding the given definitions.
func NewCatalog(defs ...Definition) MapCatalog {
	catalog := make(MapCatalog, len(defs))
	for _, def := range defs {
		catalog[def.Name] = def
	}

	return catalog
}

// Lookup returns the definition registered under name.
func (c MapCatalog) Lookup(name string) (Definition, error) {
	def, ok := c[name]
	if !ok {
		return Definition{}, fmt.Errorf("lookup %q: %w", name, ErrSchemaNotFound)
	}

	return def, nil
}
