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

package adapter

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

var errUnknownStatement = errors.New("unknown statement")

// memorySession stores nodes of one label keyed by their identifier field and
// understands the statements the adapter generates for that label.
type memorySession struct {
	mu sync.Mutex

	label          string
	identifier     string
	idempotenceKey string

	nodes  map[any]dbtype.Node
	nextID int

	// beforeVersionedWrite runs right before a versioned update is applied.
	beforeVersionedWrite func(s *memorySession)
}

func newMemorySession(label, identifier, idempotenceKey string) *memorySession {
	return &memorySession{
		label:          label,
		identifier:     identifier,
		idempotenceKey: idempotenceKey,
		nodes:          make(map[any]dbtype.Node),
	}
}

func (s *memorySession) ExecuteRead(_ context.Context, statement string, params map[string]any) ([]graph.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if statement != graph.LookupNodeStatement(s.label, s.identifier) {
		return nil, fmt.Errorf("%w: %s", errUnknownStatement, statement)
	}

	node, ok := s.nodes[params[graph.ParamIdentifier]]
	if !ok {
		return nil, nil
	}

	return []graph.Row{graph.NewRow("n", node)}, nil
}

func (s *memorySession) ExecuteWrite(_ context.Context, statement string, params map[string]any) ([]graph.Row, error) {
	if statement == graph.VersionedUpdateStatement(s.label, s.identifier, s.idempotenceKey) && s.beforeVersionedWrite != nil {
		s.beforeVersionedWrite(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch statement {
	case graph.CreateNodeStatement(s.label):
		props, _ := params[graph.ParamPlaceholder].(map[string]any)

		s.nextID++
		node := dbtype.Node{
			ElementId: fmt.Sprintf("4:mem:%d", s.nextID),
			Labels:    []string{s.label},
			Props:     maps.Clone(props),
		}
		s.nodes[props[s.identifier]] = node

		return []graph.Row{graph.NewRow("n", node)}, nil

	case graph.VersionedUpdateStatement(s.label, s.identifier, s.idempotenceKey):
		id := params[graph.ParamIdentifier]

		node, ok := s.nodes[id]
		if !ok || !sameVersion(node.Props[s.idempotenceKey], params[graph.ParamOriginalIdempotenceValue]) {
			return nil, nil
		}

		props, _ := params[graph.ParamPlaceholder].(map[string]any)
		node.Props = maps.Clone(props)
		s.nodes[id] = node

		return []graph.Row{graph.NewRow("n", node)}, nil

	case graph.DetachDeleteStatement(s.label, s.identifier):
		delete(s.nodes, params[graph.ParamIdentifier])

		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownStatement, statement)
	}
}

func (s *memorySession) Close(context.Context) error {
	return nil
}

// set overwrites a stored field the way a concurrent writer would.
func (s *memorySession) set(id any, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.nodes[id]
	props := maps.Clone(node.Props)
	props[field] = value
	node.Props = props
	s.nodes[id] = node
}

func (s *memorySession) props(id any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.nodes[id].Props)
}
