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
)

// Delete removes the node whose identifier field equals identifier, together with
// all its relationships, and returns the node as it was right before deletion.
// No idempotence check is applied.
func (a *Adapter) Delete(ctx context.Context, identifier any, opts config.CallOptions) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, OperationDelete, eff.Node)
	defer func() { endSpan(span, err) }()

	if err := requireOption(config.KeyNode, eff.Node); err != nil {
		return Result{}, err
	}

	if err := requireOption(config.KeyIdentifier, eff.Identifier); err != nil {
		return Result{}, err
	}

	params := map[string]any{graph.ParamIdentifier: identifier}

	statement := graph.DetachDeleteStatement(eff.Node, eff.Identifier)
	if eff.DeleteQuery != "" {
		statement = eff.DeleteQuery

		if err := graph.CheckPlaceholders(statement, params); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
		}
	}

	n, err := prepareNotification(eff, OperationDelete)
	if err != nil {
		return Result{}, err
	}

	snapshot, err := a.readNode(ctx, graph.LookupNodeStatement(eff.Node, eff.Identifier), params)
	if err != nil {
		return Result{}, fmt.Errorf("read node: %w", err)
	}

	if _, err := a.executeWrite(ctx, OperationDelete, statement, params); err != nil {
		return Result{}, fmt.Errorf("delete node: %w", err)
	}

	res.Record = snapshot
	res.Warning = a.publish(ctx, n, snapshot.Fields)

	return res, nil
}
