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

// Package adapter implements the operations applications use to work with nodes
// and relationships of a Bolt-compatible graph backend.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/conduitio-labs/cypher-adapter/notify"
	"github.com/conduitio-labs/cypher-adapter/schema"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Adapter runs create, read, update, delete, relationship and query operations.
// It holds no per-call state and is safe for concurrent use.
type Adapter struct {
	session   graph.Session
	catalog   schema.Catalog
	defaults  config.Defaults
	publisher notify.Publisher
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// Option configures an [Adapter].
type Option func(*Adapter)

// WithCatalog sets the schema catalog used for projection.
func WithCatalog(catalog schema.Catalog) Option {
	return func(a *Adapter) {
		a.catalog = catalog
	}
}

// WithPublisher sets the notification transport.
func WithPublisher(publisher notify.Publisher) Option {
	return func(a *Adapter) {
		a.publisher = publisher
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithTracer sets the tracer operations are traced with.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Adapter) {
		a.tracer = tracer
	}
}

// Result is the outcome of a successful operation.
type Result struct {
	// Record is the created, updated or deleted node.
	Record schema.Record
	// Records are the nodes returned by a read.
	Records []schema.Record
	// Nodes holds read results grouped by label, when serialization is on.
	Nodes map[string][]map[string]any
	// Rows are the raw rows of query and relationship operations.
	Rows []graph.Row
	// Warning is set when the mutation succeeded but its notification was not delivered.
	Warning error
}

// New creates a new instance of the [Adapter] over an open session.
func New(session graph.Session, defaults config.Defaults, opts ...Option) *Adapter {
	a := &Adapter{
		session:  session,
		defaults: defaults,
		logger:   defaultLogger(),
		tracer:   otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Open resolves the active backend, loads the schema file, connects
// and returns a ready [Adapter].
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Adapter, error) {
	backend, conn, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve backend: %w", err)
	}

	var base []Option

	if cfg.SchemaFile != "" {
		catalog, err := schema.LoadFile(cfg.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("load schema file: %w", err)
		}

		base = append(base, WithCatalog(catalog))
	}

	session, err := graph.Open(ctx, backend, conn)
	if err != nil {
		return nil, backendFailure(err)
	}

	a := New(session, cfg.Defaults, append(base, opts...)...)

	if a.publisher == nil {
		publisher, err := notify.NewDefaultSNSPublisher(ctx, cfg.SNSRegion, cfg.SNSEndpoint)
		if err != nil {
			_ = session.Close(ctx)

			return nil, fmt.Errorf("create publisher: %w", err)
		}

		a.publisher = publisher
	}

	a.log(ctx).Info().Str("backend", string(backend)).Msg("graph backend opened")

	return a, nil
}

// OpenMap decodes a loosely-typed option bag into a [config.Config] and opens an [Adapter].
func OpenMap(ctx context.Context, raw map[string]any, opts ...Option) (*Adapter, error) {
	cfg, err := config.Decode(raw)
	if err != nil {
		return nil, err //nolint:wrapcheck // already wrapped by config
	}

	return Open(ctx, cfg, opts...)
}

// Close releases the backend session.
func (a *Adapter) Close(ctx context.Context) error {
	if err := a.session.Close(ctx); err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	a.log(ctx).Info().Msg("graph backend closed")

	return nil
}

func (a *Adapter) executeRead(ctx context.Context, kind, statement string, params map[string]any) ([]graph.Row, error) {
	a.log(ctx).Debug().Str("kind", kind).Msg("execute read statement")

	rows, err := a.session.ExecuteRead(ctx, statement, params)
	if err != nil {
		return nil, backendFailure(err)
	}

	return rows, nil
}

func (a *Adapter) executeWrite(ctx context.Context, kind, statement string, params map[string]any) ([]graph.Row, error) {
	a.log(ctx).Debug().Str("kind", kind).Msg("execute write statement")

	rows, err := a.session.ExecuteWrite(ctx, statement, params)
	if err != nil {
		return nil, backendFailure(err)
	}

	return rows, nil
}

// readNode runs a single-node lookup and returns the only node it matched.
func (a *Adapter) readNode(ctx context.Context, statement string, params map[string]any) (schema.Record, error) {
	rows, err := a.executeRead(ctx, "lookup", statement, params)
	if err != nil {
		return schema.Record{}, err
	}

	return singleRecord(rows)
}

func singleRecord(rows []graph.Row) (schema.Record, error) {
	records := recordsOf(rows)

	switch len(records) {
	case 0:
		return schema.Record{}, ErrNodeNotFound
	case 1:
		return records[0], nil
	default:
		return schema.Record{}, fmt.Errorf("%w: %d nodes", ErrAmbiguousMatch, len(records))
	}
}

func recordsOf(rows []graph.Row) []schema.Record {
	records := make([]schema.Record, 0, len(rows))
	for _, row := range rows {
		if record, ok := graph.RecordOf(row); ok {
			records = append(records, record)
		}
	}

	return records
}

func requireStatement(statement string) error {
	if strings.TrimSpace(statement) == "" {
		return fmt.Errorf("%w: empty statement", ErrInvalidStatement)
	}

	return nil
}

func requireOption(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingOption, name)
	}

	return nil
}
