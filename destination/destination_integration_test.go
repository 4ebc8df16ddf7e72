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

package destination

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/conduitio-labs/cypher-adapter/adapter"
	"github.com/conduitio/conduit-commons/config"
	"github.com/conduitio/conduit-commons/opencdc"
	"github.com/matryer/is"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	// field names that are used within the integration tests.
	idFieldName      = "id"
	nameFieldName    = "name"
	versionFieldName = "version"
	// testURI is a connection URI pointed to a local Neo4j instance.
	testURI = "bolt://localhost:7687"
	// testLabel is a label that is used for integration tests.
	testLabel = "Person"
	// test credentials that are used in a Neo4j Docker container.
	testUsername = "neo4j"
	testPassword = "supersecret"
)

func TestDestination_Write(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	cfg := prepareConfig(t)

	// create a Destination,
	// configure it with the prepared config, and open it
	destination := New()
	is.NoErr(destination.Configure(ctx, cfg))

	err := destination.Open(ctx)
	if errors.Is(err, adapter.ErrBackendFailure) {
		t.Skipf("neo4j is not reachable at %s: %v", testURI, err)
	}

	is.NoErr(err)
	// teardown the destination
	t.Cleanup(func() {
		is.NoErr(destination.Teardown(ctx))
	})

	// prepare some test payload
	snapshotRecordPayload := map[string]any{idFieldName: "a", nameFieldName: "Bob", versionFieldName: int64(1)}
	createRecordPayload := map[string]any{idFieldName: "b", nameFieldName: "John", versionFieldName: int64(1)}

	// initialize a slice with test records
	// that contains snapshot and create operations
	records := []opencdc.Record{
		{Operation: opencdc.OperationSnapshot, Payload: opencdc.Change{After: opencdc.StructuredData(snapshotRecordPayload)}},
		{Operation: opencdc.OperationCreate, Payload: opencdc.Change{After: opencdc.StructuredData(createRecordPayload)}},
	}

	// write the test records, check if there's no error,
	// and the returned len is equal to the len of the records slice
	n, err := destination.Write(ctx, records)
	is.NoErr(err)
	is.Equal(n, len(records))

	driver, err := neo4j.NewDriverWithContext(testURI, neo4j.BasicAuth(testUsername, testPassword, ""))
	is.NoErr(err)
	t.Cleanup(func() {
		is.NoErr(driver.Close(ctx))
	})

	// compare the snapshot and create records payload with Neo4j records
	neo4jRecord, err := findRecord(ctx, driver, snapshotRecordPayload[idFieldName])
	is.NoErr(err)
	is.Equal(neo4jRecord, snapshotRecordPayload)

	neo4jRecord, err = findRecord(ctx, driver, createRecordPayload[idFieldName])
	is.NoErr(err)
	is.Equal(neo4jRecord, createRecordPayload)

	// create a record with the update operation that bumps the version
	updateRecordPayload := map[string]any{
		idFieldName:      snapshotRecordPayload[idFieldName],
		nameFieldName:    "NewBob",
		versionFieldName: int64(2),
	}

	updateRecord := opencdc.Record{
		Operation: opencdc.OperationUpdate,
		Key:       opencdc.StructuredData{idFieldName: updateRecordPayload[idFieldName]},
		Payload: opencdc.Change{
			Before: opencdc.StructuredData(snapshotRecordPayload),
			After:  opencdc.StructuredData(updateRecordPayload),
		},
	}

	// write the update record
	n, err = destination.Write(ctx, []opencdc.Record{updateRecord})
	is.NoErr(err)
	is.Equal(n, 1)

	// compare the update record with a Neo4j record
	neo4jRecord, err = findRecord(ctx, driver, updateRecordPayload[idFieldName])
	is.NoErr(err)
	is.Equal(neo4jRecord, updateRecordPayload)

	// replaying the same update is rejected, the version has moved on
	_, err = destination.Write(ctx, []opencdc.Record{updateRecord})
	is.True(errors.Is(err, adapter.ErrVersionConflict))

	// delete both records
	for _, id := range []any{snapshotRecordPayload[idFieldName], createRecordPayload[idFieldName]} {
		n, err = destination.Write(ctx, []opencdc.Record{{
			Operation: opencdc.OperationDelete,
			Key:       opencdc.StructuredData{idFieldName: id},
		}})
		is.NoErr(err)
		is.Equal(n, 1)
	}

	// check that the record has been deleted
	_, err = findRecord(ctx, driver, updateRecordPayload[idFieldName])
	var usageError *neo4j.UsageError
	is.True(errors.As(err, &usageError))
	// this message is from the neo4j driver
	is.Equal(usageError.Message, "Result contains no more records")
}

// prepareConfig creates a config with the test values.
func prepareConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		KeyURI:            testURI,
		KeyNode:           testLabel,
		KeyIdentifier:     idFieldName,
		KeyIdempotenceKey: versionFieldName,
		KeyAuthUsername:   testUsername,
		KeyAuthPassword:   testPassword,
	}
}

// findRecord finds a record in Neo4j database by the provided id.
func findRecord(ctx context.Context, driver neo4j.DriverWithContext, id any) (map[string]any, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	record, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (map[string]any, error) {
		query := fmt.Sprintf("MATCH (p:%s {%s: $%s}) RETURN p", testLabel, idFieldName, idFieldName)

		result, err := tx.Run(ctx, query, map[string]any{idFieldName: id})
		if err != nil {
			return nil, fmt.Errorf("run transaction: %w", err)
		}

		record, err := result.Single(ctx)
		if err != nil {
			return nil, fmt.Errorf("collect record: %w", err)
		}

		node, _, err := neo4j.GetRecordValue[neo4j.Node](record, "p")
		if err != nil {
			return nil, fmt.Errorf("get node: %w", err)
		}

		return node.Props, nil
	})
	if err != nil {
		return nil, fmt.Errorf("execute read: %w", err)
	}

	return record, nil
}
