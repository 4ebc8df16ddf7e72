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

package graph

import (
	"maps"

	"github.com/conduitio-labs/cypher-adapter/schema"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// RecordOf returns the first node of a row as a [schema.Record].
// A map value is accepted as well, e.g. for "RETURN n {.*}" projections,
// in which case the record has no element id.
func RecordOf(row Row) (schema.Record, bool) {
	for _, value := range row.Values {
		switch typed := value.(type) {
		case dbtype.Node:
			return recordFromNode(typed), true

		case *dbtype.Node:
			if typed != nil {
				return recordFromNode(*typed), true
			}

		case map[string]any:
			return schema.Record{Fields: maps.Clone(typed)}, true
		}
	}

	return schema.Record{}, false
}

// Serialize groups the nodes carrying label by that label.
// A relationship returned in the same row that starts at a node is nested
// into the node's fields under the relationship type, holding the end node's fields.
// An empty label groups every node under its first label.
func Serialize(rows []Row, label string) map[string][]map[string]any {
	serialized := make(map[string][]map[string]any)

	for _, row := range rows {
		nodes, relationships := flatten(row.Values)

		byID := make(map[string]dbtype.Node, len(nodes))
		for _, node := range nodes {
			byID[node.ElementId] = node
		}

		seen := make(map[string]struct{}, len(nodes))
		for _, node := range nodes {
			group, ok := groupOf(node, label)
			if !ok {
				continue
			}

			if _, dup := seen[node.ElementId]; dup {
				continue
			}

			seen[node.ElementId] = struct{}{}

			entry := maps.Clone(node.Props)
			if entry == nil {
				entry = make(map[string]any)
			}

			for _, rel := range relationships {
				if rel.StartElementId != node.ElementId {
					continue
				}

				if end, ok := byID[rel.EndElementId]; ok {
					entry[rel.Type] = maps.Clone(end.Props)
				}
			}

			serialized[group] = append(serialized[group], entry)
		}
	}

	return serialized
}

func recordFromNode(node dbtype.Node) schema.Record {
	fields := maps.Clone(node.Props)
	if fields == nil {
		fields = make(map[string]any)
	}

	return schema.Record{
		Fields:    fields,
		Labels:    append([]string(nil), node.Labels...),
		ElementID: node.ElementId,
	}
}

func groupOf(node dbtype.Node, label string) (string, bool) {
	if label == "" {
		if len(node.Labels) == 0 {
			return "", false
		}

		return node.Labels[0], true
	}

	for _, l := range node.Labels {
		if l == label {
			return label, true
		}
	}

	return "", false
}

func flatten(values []any) ([]dbtype.Node, []dbtype.Relationship) {
	var (
		nodes         []dbtype.Node
		relationships []dbtype.Relationship
	)

	for _, value := range values {
		switch typed := value.(type) {
		case dbtype.Node:
			nodes = append(nodes, typed)

		case dbtype.Relationship:
			relationships = append(relationships, typed)

		case dbtype.Path:
			nodes = append(nodes, typed.Nodes...)
			relationships = append(relationships, typed.Relationships...)

		case []any:
			n, r := flatten(typed)
			nodes = append(nodes, n...)
			relationships = append(relationships, r...)
		}
	}

	return nodes, relationships
}
