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
	"sync"
	"testing"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/notify"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

const (
	// testURI is a connection URI pointed to a local Neo4j instance.
	testURI = "bolt://localhost:7687"
	// test credentials that are used in a Neo4j Docker container.
	testUsername = "neo4j"
	testPassword = "supersecret"
	// testLabel is a label that is used for integration tests.
	testLabel = "AdapterIntegration"
	testTopic = "arn:aws:sns:us-east-1:000000000000:adapter-integration"
)

// recordingPublisher keeps published messages in memory.
type recordingPublisher struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg notify.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, msg)

	return nil
}

func (p *recordingPublisher) operations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	operations := make([]string, 0, len(p.messages))
	for _, msg := range p.messages {
		attr, _ := msg.Attributes.Get(notify.OperationKey)
		operations = append(operations, attr.Value)
	}

	return operations
}

// openTestAdapter connects to the local instance or skips the test when it is unreachable.
func openTestAdapter(t *testing.T, publisher notify.Publisher) *Adapter {
	t.Helper()

	ctx := context.Background()

	a, err := Open(ctx, config.Config{
		Bolt: &config.Connection{
			URI:  testURI,
			Auth: config.AuthConfig{Username: testUsername, Password: testPassword},
		},
		Defaults: config.Defaults{
			Node:           testLabel,
			Identifier:     "test_id",
			IdempotenceKey: "version",
			SNSArn:         testTopic,
			SNSAttributes:  map[string]any{"service": "integration"},
		},
	}, WithPublisher(publisher))
	if errors.Is(err, ErrBackendFailure) {
		t.Skipf("neo4j is not reachable at %s: %v", testURI, err)
	}

	is.New(t).NoErr(err)

	t.Cleanup(func() {
		_, _ = a.Query(ctx, "MATCH (n:"+testLabel+") WHERE n.run = $run DETACH DELETE n", config.CallOptions{
			Placeholder: map[string]any{"run": t.Name()},
		})
		_ = a.Close(ctx)
	})

	return a
}

func TestAdapter_integration(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()
	publisher := &recordingPublisher{}
	a := openTestAdapter(t, publisher)

	id := uuid.NewString()
	payload := map[string]any{"test_id": id, "version": int64(1), "value": "alpha", "run": t.Name()}

	created, err := a.Create(ctx, payload, config.CallOptions{})
	is.NoErr(err)
	is.Equal(created.Record.Fields, payload)

	lookup := "MATCH (n:" + testLabel + ") WHERE n.test_id = $test_id RETURN n"
	byID := map[string]any{"test_id": id}

	read, err := a.Read(ctx, lookup, config.CallOptions{Placeholder: byID})
	is.NoErr(err)
	is.Equal(read.Nodes[testLabel], []map[string]any{payload})

	updated, err := a.Update(ctx, lookup, map[string]any{"version": int64(2), "value": "beta"}, config.CallOptions{
		Placeholder:              byID,
		OriginalIdempotenceValue: int64(1),
	})
	is.NoErr(err)
	is.Equal(updated.Record.Fields["value"], "beta")
	is.Equal(updated.Record.Fields["version"], int64(2))

	_, err = a.Update(ctx, lookup, map[string]any{"value": "gamma"}, config.CallOptions{
		Placeholder:              byID,
		OriginalIdempotenceValue: int64(1),
	})
	is.True(errors.Is(err, ErrVersionConflict))

	other := uuid.NewString()
	_, err = a.Create(ctx, map[string]any{"test_id": other, "version": int64(1), "run": t.Name()}, config.CallOptions{})
	is.NoErr(err)

	pair := map[string]any{"source": id, "target": other}

	_, err = a.CreateRelationship(ctx,
		"MATCH (a:"+testLabel+"), (b:"+testLabel+") WHERE a.test_id = $source AND b.test_id = $target "+
			"CREATE (a)-[:ASSOCIATED_WITH]->(b) RETURN a, b",
		config.CallOptions{Placeholder: pair},
	)
	is.NoErr(err)

	_, err = a.DeleteRelationship(ctx,
		"MATCH (a:"+testLabel+")-[r:ASSOCIATED_WITH]->(b:"+testLabel+") "+
			"WHERE a.test_id = $source AND b.test_id = $target DETACH DELETE r",
		config.CallOptions{Placeholder: pair},
	)
	is.NoErr(err)

	check, err := a.Query(ctx,
		"MATCH (a:"+testLabel+")-[r:ASSOCIATED_WITH]->(b:"+testLabel+") "+
			"WHERE a.test_id = $source AND b.test_id = $target RETURN r",
		config.CallOptions{Placeholder: pair},
	)
	is.NoErr(err)
	is.Equal(len(check.Rows), 0)

	deleted, err := a.Delete(ctx, id, config.CallOptions{})
	is.NoErr(err)
	is.Equal(deleted.Record.Fields["value"], "beta")

	_, err = a.Read(ctx, lookup, config.CallOptions{Placeholder: byID})
	is.True(errors.Is(err, ErrNodeNotFound))

	is.Equal(publisher.operations(), []string{OperationCreate, OperationUpdate, OperationCreate, OperationDelete})
}
