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

package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/conduitio-labs/cypher-adapter/adapter"
	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/destination/writer/mock"
	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/conduitio/conduit-commons/opencdc"
	"github.com/matryer/is"
	"go.uber.org/mock/gomock"
)

func newNodeWriter(t *testing.T) (*Writer, *mock.MockAdapter) {
	t.Helper()

	a := mock.NewMockAdapter(gomock.NewController(t))

	return New(Params{
		Adapter:        a,
		EntityType:     EntityTypeNode,
		Label:          "Customer",
		Identifier:     "customer_id",
		IdempotenceKey: "version",
	}), a
}

func TestWriter_Write_create(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newNodeWriter(t)

	payload := map[string]any{"customer_id": "c1", "version": float64(1)}
	a.EXPECT().Create(ctx, payload, config.CallOptions{}).Return(adapter.Result{}, nil).Times(2)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationCreate,
		Payload:   opencdc.Change{After: opencdc.StructuredData(payload)},
	}))

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationSnapshot,
		Payload:   opencdc.Change{After: opencdc.RawData(`{"customer_id":"c1","version":1}`)},
	}))
}

func TestWriter_Write_update(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newNodeWriter(t)

	after := map[string]any{"customer_id": "c1", "version": float64(2), "status": "vip"}

	a.EXPECT().
		Update(ctx, graph.LookupNodeStatement("Customer", "customer_id"), after, config.CallOptions{
			Placeholder:              map[string]any{graph.ParamIdentifier: "c1"},
			OriginalIdempotenceValue: float64(1),
		}).
		Return(adapter.Result{Warning: adapter.ErrPublishFailure}, nil)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationUpdate,
		Key:       opencdc.StructuredData{"customer_id": "c1"},
		Payload: opencdc.Change{
			Before: opencdc.StructuredData{"customer_id": "c1", "version": float64(1)},
			After:  opencdc.StructuredData(after),
		},
	}))
}

func TestWriter_Write_updateFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record opencdc.Record
		want   error
	}{
		{
			name: "no key",
			record: opencdc.Record{
				Operation: opencdc.OperationUpdate,
				Payload:   opencdc.Change{After: opencdc.StructuredData{"status": "vip"}},
			},
			want: ErrEmptyRawData,
		},
		{
			name: "key without identifier",
			record: opencdc.Record{
				Operation: opencdc.OperationUpdate,
				Key:       opencdc.StructuredData{"id": "c1"},
				Payload:   opencdc.Change{After: opencdc.StructuredData{"status": "vip"}},
			},
			want: ErrMissingIdentifier,
		},
		{
			name: "before without version",
			record: opencdc.Record{
				Operation: opencdc.OperationUpdate,
				Key:       opencdc.StructuredData{"customer_id": "c1"},
				Payload: opencdc.Change{
					Before: opencdc.StructuredData{"customer_id": "c1"},
					After:  opencdc.StructuredData{"status": "vip"},
				},
			},
			want: ErrMissingIdempotenceValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			is := is.New(t)

			w, _ := newNodeWriter(t)

			err := w.Write(context.Background(), tt.record)
			is.True(errors.Is(err, tt.want))
		})
	}
}

func TestWriter_Write_updateConflict(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newNodeWriter(t)

	a.EXPECT().Update(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.Result{}, adapter.ErrVersionConflict)

	err := w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationUpdate,
		Key:       opencdc.StructuredData{"customer_id": "c1"},
		Payload: opencdc.Change{
			Before: opencdc.StructuredData{"version": float64(1)},
			After:  opencdc.StructuredData{"status": "vip"},
		},
	})
	is.True(errors.Is(err, adapter.ErrVersionConflict))
}

func TestWriter_Write_delete(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newNodeWriter(t)

	a.EXPECT().Delete(ctx, "c1", config.CallOptions{}).Return(adapter.Result{}, nil)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationDelete,
		Key:       opencdc.RawData(`{"customer_id":"c1"}`),
	}))
}

func newRelationshipWriter(t *testing.T) (*Writer, *mock.MockAdapter) {
	t.Helper()

	a := mock.NewMockAdapter(gomock.NewController(t))

	return New(Params{
		Adapter:    a,
		EntityType: EntityTypeRelationship,
		Label:      "KNOWS",
		Identifier: "id",
	}), a
}

func TestWriter_Write_createRelationship(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newRelationshipWriter(t)

	a.EXPECT().
		CreateRelationship(ctx,
			"MATCH (src:`Person` {`id`: $src_id}) MATCH (trgt:`Person` {`id`: $trgt_id}) "+
				"CREATE (src)-[obj:`KNOWS` {`id`: $id, `since`: $since}]->(trgt) RETURN obj",
			config.CallOptions{Placeholder: map[string]any{
				"id":      "r1",
				"since":   float64(2020),
				"src_id":  "p1",
				"trgt_id": "p2",
			}},
		).
		Return(adapter.Result{}, nil)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationCreate,
		Payload: opencdc.Change{After: opencdc.StructuredData{
			"id":         "r1",
			"since":      float64(2020),
			"sourceNode": map[string]any{"labels": []any{"Person"}, "key": map[string]any{"id": "p1"}},
			"targetNode": map[string]any{"labels": []any{"Person"}, "key": map[string]any{"id": "p2"}},
		}},
	}))
}

func TestWriter_Write_createRelationshipNoTarget(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	w, _ := newRelationshipWriter(t)

	err := w.Write(context.Background(), opencdc.Record{
		Operation: opencdc.OperationCreate,
		Payload: opencdc.Change{After: opencdc.StructuredData{
			"id":         "r1",
			"sourceNode": map[string]any{"labels": []any{"Person"}, "key": map[string]any{"id": "p1"}},
		}},
	})
	is.True(errors.Is(err, ErrEmptyTargetNode))
}

func TestWriter_Write_updateRelationship(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newRelationshipWriter(t)

	a.EXPECT().
		Query(ctx, "MATCH ()-[obj:`KNOWS` {`id`: $key_id}]->() SET obj.`since` = $since RETURN obj",
			config.CallOptions{Placeholder: map[string]any{"since": float64(2021), "key_id": "r1"}},
		).
		Return(adapter.Result{}, nil)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationUpdate,
		Key:       opencdc.StructuredData{"id": "r1"},
		Payload:   opencdc.Change{After: opencdc.StructuredData{"id": "r1", "since": float64(2021)}},
	}))
}

func TestWriter_Write_deleteRelationship(t *testing.T) {
	t.Parallel()

	is := is.New(t)

	ctx := context.Background()
	w, a := newRelationshipWriter(t)

	a.EXPECT().
		DeleteRelationship(ctx, "MATCH ()-[obj:`KNOWS` {`id`: $key_id}]->() DETACH DELETE obj",
			config.CallOptions{Placeholder: map[string]any{"key_id": "r1"}},
		).
		Return(adapter.Result{}, nil)

	is.NoErr(w.Write(ctx, opencdc.Record{
		Operation: opencdc.OperationDelete,
		Key:       opencdc.StructuredData{"id": "r1"},
	}))
}

func BenchmarkCypherMatchProperties(b *testing.B) {
	properties := map[string]any{"name": "Alex", "age": 23}

	for i := 0; i < b.N; i++ {
		_ = cypherMatchProperties(properties, "")
	}
}

func BenchmarkCypherSetProperties(b *testing.B) {
	properties := map[string]any{"name": "Alex", "age": 23}

	for i := 0; i < b.N; i++ {
		_ = cypherSetProperties(properties)
	}
}
