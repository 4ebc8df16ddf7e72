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
	"regexp"
	"strings"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/graph"
)

var (
	// a CREATE or MERGE clause followed by a typed, directed relationship pattern
	createRelationshipPattern = regexp.MustCompile(
		`(?is)\b(?:CREATE|MERGE)\b[^;]*?` +
			`(?:-\s*\[\s*\w*\s*:\s*[\w` + "`" + `][^\]]*\]\s*->|<-\s*\[\s*\w*\s*:\s*[\w` + "`" + `][^\]]*\]\s*-)`,
	)
	deleteClausePattern = regexp.MustCompile(`(?i)(\bDETACH\s+)?\bDELETE\b`)
	// plain variable targets; the second group catches a target list that continues
	// with an expression, e.g. DELETE r, (n) or DELETE r.prop
	detachTargetPattern = regexp.MustCompile(`(?i)\bDETACH\s+DELETE\s+(\w+(?:\s*,\s*\w+)*)\s*([,.\[(:{]?)`)
	// variables bound inside relationship patterns only: -[r]-, -[r:TYPE]->, <-[r {k: v}]-
	relationshipVarPattern = regexp.MustCompile(`-\s*\[\s*(\w+)(?:\s*[:*{][^\]]*)?\s*\]\s*-`)
)

// CreateRelationship runs a statement that creates a directed relationship and returns its raw rows.
// A notification is published only when the call supplies a topic or attributes.
func (a *Adapter) CreateRelationship(ctx context.Context, statement string, opts config.CallOptions) (Result, error) {
	return a.mutateRelationship(ctx, OperationCreateRelationship, statement, opts, checkCreateRelationship)
}

// DeleteRelationship runs a statement that detach-deletes relationships only and returns its raw rows.
// A notification is published only when the call supplies a topic or attributes.
func (a *Adapter) DeleteRelationship(ctx context.Context, statement string, opts config.CallOptions) (Result, error) {
	return a.mutateRelationship(ctx, OperationDeleteRelationship, statement, opts, checkDeleteRelationship)
}

func (a *Adapter) mutateRelationship(
	ctx context.Context, operation, statement string, opts config.CallOptions, check func(string) error,
) (res Result, err error) {
	eff := config.Merge(a.defaults, opts)

	ctx, span := a.startSpan(ctx, operation, eff.Node)
	defer func() { endSpan(span, err) }()

	params := graph.ConvertPlaceholders(eff.Placeholder)

	if err := guardRelationship(statement, params, check); err != nil {
		return Result{}, err
	}

	var n *notification
	if eff.PublishRequested {
		if n, err = prepareNotification(eff, operation); err != nil {
			return Result{}, err
		}
	}

	rows, err := a.executeWrite(ctx, operation, statement, params)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", strings.ReplaceAll(operation, "_", " "), err)
	}

	res.Rows = rows

	if n != nil {
		body := make([]map[string]any, len(rows))
		for i, row := range rows {
			body[i] = row.AsMap()
		}

		res.Warning = a.publish(ctx, n, body)
	}

	return res, nil
}

func guardRelationship(statement string, params map[string]any, check func(string) error) error {
	if err := check(graph.StripStringsAndComments(statement)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelationshipStatement, err)
	}

	if err := graph.CheckPlaceholders(statement, params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelationshipStatement, err)
	}

	return nil
}

func checkCreateRelationship(statement string) error {
	if !createRelationshipPattern.MatchString(statement) {
		return errors.New("no directed relationship creation clause")
	}

	return nil
}

func checkDeleteRelationship(statement string) error {
	clauses := deleteClausePattern.FindAllStringSubmatch(statement, -1)
	if len(clauses) == 0 {
		return errors.New("no relationship deletion clause")
	}

	for _, clause := range clauses {
		if clause[1] == "" {
			return errors.New("DELETE without DETACH")
		}
	}

	relationships := make(map[string]struct{})
	for _, match := range relationshipVarPattern.FindAllStringSubmatch(statement, -1) {
		relationships[match[1]] = struct{}{}
	}

	targets := detachTargetPattern.FindAllStringSubmatch(statement, -1)
	if len(targets) != len(clauses) {
		return errors.New("DETACH DELETE of an expression")
	}

	for _, match := range targets {
		if match[2] != "" {
			return errors.New("DETACH DELETE of an expression")
		}

		for _, target := range strings.Split(match[1], ",") {
			target = strings.TrimSpace(target)
			if _, ok := relationships[target]; !ok {
				return fmt.Errorf("%q is not a relationship variable", target)
			}
		}
	}

	return nil
}
