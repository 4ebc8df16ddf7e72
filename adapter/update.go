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
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/conduitio-labs/cypher-adapter/merge"
	"github.com/conduitio-labs/cypher-adapter/schema"
)

// Update applies a partial payload to the single node matched by the lookup statement.
//
// The node is read first, the projected payload is merged over its fields and the result
// is written back only while the node's idempotence field still equals the value the caller
// observed. The caller bumps the idempotence field by including its new value in payload.
// A changed idempotence value fails with [ErrVersionConflict] and leaves the node untouched.
func (a *Adapter) Update(
	ctx context.Context, statement string, payload map[string]any, opts config.CallOptions,
) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, OperationUpdate, eff.Node)
	defer func() { endSpan(span, err) }()

	for _, option := range [][2]string{
		{config.KeyNode, eff.Node},
		{config.KeyIdentifier, eff.Identifier},
		{config.KeyIdempotenceKey, eff.IdempotenceKey},
	} {
		if err := requireOption(option[0], option[1]); err != nil {
			return Result{}, err
		}
	}

	if eff.OriginalIdempotenceValue == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingOption, config.KeyOriginalIdempotenceValue)
	}

	if err := requireStatement(statement); err != nil {
		return Result{}, err
	}

	mergeOpts, err := merge.ParseOptions(eff.ListOperation, eff.DictOperation)
	if err != nil {
		return Result{}, fmt.Errorf("parse merge options: %w", err)
	}

	params := graph.ConvertPlaceholders(eff.Placeholder)
	if err := graph.CheckPlaceholders(statement, params); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidStatement, err)
	}

	projected, err := schema.Project(a.catalog, payload, eff.Schema)
	if err != nil {
		return Result{}, fmt.Errorf("project payload: %w", err)
	}

	n, err := prepareNotification(eff, OperationUpdate)
	if err != nil {
		return Result{}, err
	}

	current, err := a.readNode(ctx, statement, params)
	if err != nil {
		return Result{}, fmt.Errorf("read node: %w", err)
	}

	identifier, ok := current.Get(eff.Identifier)
	if !ok || identifier == nil {
		return Result{}, fmt.Errorf("%w: node has no %q field", ErrNodeNotFound, eff.Identifier)
	}

	if stored, _ := current.Get(eff.IdempotenceKey); !sameVersion(stored, eff.OriginalIdempotenceValue) {
		return Result{}, fmt.Errorf("%w: stored %s is %v, observed %v",
			ErrVersionConflict, eff.IdempotenceKey, stored, eff.OriginalIdempotenceValue)
	}

	merged, err := merge.Merge(current.Fields, projected, mergeOpts)
	if err != nil {
		return Result{}, fmt.Errorf("merge payload: %w", err)
	}

	rows, err := a.executeWrite(ctx, OperationUpdate,
		graph.VersionedUpdateStatement(eff.Node, eff.Identifier, eff.IdempotenceKey),
		map[string]any{
			graph.ParamIdentifier:               identifier,
			graph.ParamOriginalIdempotenceValue: eff.OriginalIdempotenceValue,
			graph.ParamPlaceholder:              merged,
		},
	)
	if err != nil {
		return Result{}, fmt.Errorf("write node: %w", err)
	}

	written := recordsOf(rows)

	switch len(written) {
	case 0:
		return Result{}, fmt.Errorf("%w: %s changed since it was read", ErrVersionConflict, eff.IdempotenceKey)
	case 1:
		res.Record = written[0]
	default:
		return Result{}, fmt.Errorf("%w: %d nodes written", ErrAmbiguousMatch, len(written))
	}

	res.Warning = a.publish(ctx, n, merged)

	return res, nil
}

// sameVersion compares idempotence values the way the backend does:
// numbers by value regardless of their Go type, everything else exactly.
func sameVersion(stored, observed any) bool {
	storedNumber, storedIsNumber := number(stored)
	observedNumber, observedIsNumber := number(observed)

	if storedIsNumber || observedIsNumber {
		return storedIsNumber && observedIsNumber && storedNumber == observedNumber
	}

	return reflect.DeepEqual(stored, observed)
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()

		return f, err == nil
	default:
		return 0, false
	}
}
