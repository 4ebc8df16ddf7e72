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
	"maps"
)

// Project restricts payload to the fields allowed by the schema registered under name.
// Values keep their types; nested objects and arrays of objects are restricted too
// when the schema declares their properties.
//
// An empty name disables projection and returns a copy of payload.
func Project(catalog Catalog, payload map[string]any, name string) (map[string]any, error) {
	if name == "" {
		return maps.Clone(payload), nil
	}

	if catalog == nil {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrSchemaNotFound)
	}

	def, err := catalog.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("project payload: %w", err)
	}

	return project(def, payload), nil
}

func project(def Definition, payload map[string]any) map[string]any {
	projected := make(map[string]any, len(def.Fields))
	for _, field := range def.Fields {
		value, ok := payload[field.Name]
		if !ok {
			continue
		}

		projected[field.Name] = projectValue(field, value)
	}

	return projected
}

func projectValue(field Field, value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if field.Properties != nil {
			return project(*field.Properties, typed)
		}

	case []any:
		if field.Items != nil {
			elements := make([]any, len(typed))
			for i, element := range typed {
				if m, ok := element.(map[string]any); ok {
					elements[i] = project(*field.Items, m)

					continue
				}

				elements[i] = element
			}

			return elements
		}
	}

	return value
}
