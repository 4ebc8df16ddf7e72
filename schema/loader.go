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

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the part of an OpenAPI document the loader reads:
//
//	components:
//	  schemas:
//	    Customer:
//	      type: object
//	      properties:
//	        customer_id:
//	          type: string
type document struct {
	Components struct {
		Schemas map[string]objectSchema `yaml:"schemas"`
	} `yaml:"components"`
}

type objectSchema struct {
	Type       string        `yaml:"type"`
	Properties properties    `yaml:"properties"`
	Items      *objectSchema `yaml:"items"`
}

type property struct {
	name   string
	schema objectSchema
}

// properties keeps the declaration order of a YAML mapping.
type properties []property

// UnmarshalYAML implements [yaml.Unmarshaler].
func (p *properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		var s objectSchema
		if err := value.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("decode property %q: %w", value.Content[i].Value, err)
		}

		*p = append(*p, property{name: value.Content[i].Value, schema: s})
	}

	return nil
}

// LoadFile reads an OpenAPI (YAML or JSON) file and returns a catalog of its component schemas.
func LoadFile(path string) (MapCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return catalog, nil
}

// Parse decodes OpenAPI component schemas from raw YAML or JSON bytes.
func Parse(data []byte) (MapCatalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema document: %w", err)
	}

	if len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("no components.schemas: %w", ErrInvalidSchemaFile)
	}

	catalog := make(MapCatalog, len(doc.Components.Schemas))
	for name, s := range doc.Components.Schemas {
		catalog[name] = definitionOf(name, s)
	}

	return catalog, nil
}

func definitionOf(name string, s objectSchema) Definition {
	def := Definition{Name: name, Fields: make([]Field, 0, len(s.Properties))}
	for _, p := range s.Properties {
		field := Field{Name: p.name}

		if len(p.schema.Properties) > 0 {
			nested := definitionOf(p.name, p.schema)
			field.Properties = &nested
		}

		if p.schema.Items != nil && len(p.schema.Items.Properties) > 0 {
			items := definitionOf(p.name, *p.schema.Items)
			field.Items = &items
		}

		def.Fields = append(def.Fields, field)
	}

	return def
}
