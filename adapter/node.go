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
	"fmt"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/conduitio-labs/cypher-adapter/schema"
)

// Create projects payload through the call's schema and stores it as a new node
// labeled with the call's node label. The returned record holds the projected payload.
func (a *Adapter) Create(ctx context.Context, payload map[string]any, opts config.CallOptions) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, OperationCreate, eff.Node)
	defer func() { endSpan(span, err) }()

	if err := requireOption(config.KeyNode, eff.Node); err != nil {
		return Result{}, err
	}

	projected, err := schema.Project(a.catalog, payload, eff.Schema)
	if err != nil {
		return Result{}, fmt.Errorf("project payload: %w", err)
	}

	if len(projected) == 0 {
		return Result{}, ErrEmptyPayload
	}

	n, err := prepareNotification(eff, OperationCreate)
	if err != nil {
		return Result{}, err
	}

	rows, err := a.executeWrite(ctx, OperationCreate, graph.CreateNodeStatement(eff.Node), map[string]any{
		graph.ParamPlaceholder: projected,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create node: %w", err)
	}

	res.Record = schema.Record{Fields: projected, Labels: []string{eff.Node}}
	if created := recordsOf(rows); len(created) == 1 {
		res.Record.ElementID = created[0].ElementID
	}

	res.Warning = a.publish(ctx, n, projected)

	return res, nil
}

// Read runs a lookup statement with the call's placeholders. With serialization on,
// matched nodes are also returned grouped by label, the call's node label when set.
func (a *Adapter) Read(ctx context.Context, statement string, opts config.CallOptions) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, "read", eff.Node)
	defer func() { endSpan(span, err) }()

	if err := requireStatement(statement); err != nil {
		return Result{}, err
	}

	params := graph.ConvertPlaceholders(eff.Placeholder)
	if err := graph.CheckPlaceholders(statement, params); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
	}

	rows, err := a.executeRead(ctx, "read", statement, params)
	if err != nil {
		return Result{}, fmt.Errorf("read nodes: %w", err)
	}

	res.Records = recordsOf(rows)
	if len(res.Records) == 0 {
		return Result{}, ErrNodeNotFound
	}

	if eff.Serialize {
		res.Nodes = graph.Serialize(rows, eff.Node)
	} else {
		res.Rows = rows
	}

	return res, nil
}

// Query runs a free-form statement and returns its raw rows.
// The statement must reference at least one placeholder and all of them must be defined.
func (a *Adapter) Query(ctx context.Context, statement string, opts config.CallOptions) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, "query", eff.Node)
	defer func() { endSpan(span, err) }()

	if len(graph.Placeholders(statement)) == 0 {
		return Result{}, fmt.Errorf("%w: statement has no placeholders", ErrInvalidStatement)
	}

	params := graph.ConvertPlaceholders(eff.Placeholder)
	if err := graph.CheckPlaceholders(statement, params); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
	}

	rows, err := a.executeWrite(ctx, "query", statement, params)
	if err != nil {
		return Result{}, fmt.Errorf("run query: %w", err)
	}

	res.Rows = rows

	return res, nil
}
