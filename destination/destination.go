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

//go:generate mockgen -package mock -destination mock/destination.go . Writer

// Package destination implements the destination logic of the Cypher connector.
package destination

import (
	"context"
	"fmt"

	"github.com/conduitio-labs/cypher-adapter/adapter"
	"github.com/conduitio-labs/cypher-adapter/destination/writer"
	"github.com/conduitio/conduit-commons/config"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
)

// Writer is a writer interface needed for the [Destination].
type Writer interface {
	Write(ctx context.Context, record opencdc.Record) error
}

// Destination Cypher Connector persists records to a Bolt-compatible graph through the adapter.
type Destination struct {
	sdk.UnimplementedDestination

	config  Config
	writer  Writer
	adapter *adapter.Adapter
}

// New creates a new instance of the [Destination].
func New() sdk.Destination {
	return sdk.DestinationWithMiddleware(&Destination{}, sdk.DefaultDestinationMiddleware()...)
}

// Parameters is a map of named [config.Parameter] that describe how to configure the [Destination].
func (d *Destination) Parameters() config.Parameters {
	return d.config.Parameters()
}

// Configure parses and initializes the [Destination] config.
func (d *Destination) Configure(ctx context.Context, raw config.Config) error {
	if err := sdk.Util.ParseConfig(ctx, raw, &d.config, New().Parameters()); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	return nil
}

// Open makes sure everything is prepared to receive records.
func (d *Destination) Open(ctx context.Context) error {
	a, err := adapter.Open(ctx, d.config.AdapterConfig(), adapter.WithLogger(*sdk.Logger(ctx)))
	if err != nil {
		return fmt.Errorf("open adapter: %w", err)
	}

	d.adapter = a
	d.writer = writer.New(writer.Params{
		Adapter:        a,
		EntityType:     writer.EntityType(d.config.EntityType),
		Label:          d.config.Node,
		Identifier:     d.config.Identifier,
		IdempotenceKey: d.config.IdempotenceKey,
	})

	return nil
}

// Write writes a record into a [Destination].
func (d *Destination) Write(ctx context.Context, records []opencdc.Record) (int, error) {
	for i, record := range records {
		if err := d.writer.Write(ctx, record); err != nil {
			return i, fmt.Errorf("write record: %w", err)
		}
	}

	return len(records), nil
}

// Teardown gracefully closes connections.
func (d *Destination) Teardown(ctx context.Context) error {
	if d.adapter != nil {
		if err := d.adapter.Close(ctx); err != nil {
			return fmt.Errorf("close adapter: %w", err)
		}
	}

	return nil
}
