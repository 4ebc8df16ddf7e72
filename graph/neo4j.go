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

package graph

import (
	"context"
	"fmt"

	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jSession is a [Session] backed by the official Neo4j driver.
// The managed backend speaks the same Bolt protocol, so one implementation serves both.
type Neo4jSession struct {
	driver   neo4j.DriverWithContext
	backend  config.Backend
	database string
}

// Open creates a driver for the connection and makes sure the instance is reachable.
func Open(ctx context.Context, backend config.Backend, conn config.Connection) (*Neo4jSession, error) {
	driver, err := neo4j.NewDriverWithContext(conn.URI, conn.Auth.AuthToken(), func(c *neo4j.Config) {
		if conn.MaxConnections > 0 {
			c.MaxConnectionPoolSize = conn.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create %s driver: %w", backend, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("ping %s instance: %w", backend, err)
	}

	return NewNeo4jSession(driver, backend, conn.Database), nil
}

// NewNeo4jSession wraps an existing driver.
func NewNeo4jSession(driver neo4j.DriverWithContext, backend config.Backend, database string) *Neo4jSession {
	// the managed backend has a single implicit database
	if backend == config.BackendNeptune {
		database = ""
	}

	return &Neo4jSession{
		driver:   driver,
		backend:  backend,
		database: database,
	}
}

// ExecuteRead runs the statement in a managed read transaction.
func (s *Neo4jSession) ExecuteRead(ctx context.Context, statement string, params map[string]any) ([]Row, error) {
	if s.driver == nil {
		return nil, ErrSessionClosed
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	rows, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]Row, error) {
		return run(ctx, tx, statement, params)
	})
	if err != nil {
		return nil, fmt.Errorf("execute read: %w", err)
	}

	return rows, nil
}

// ExecuteWrite runs the statement in a managed write transaction.
func (s *Neo4jSession) ExecuteWrite(ctx context.Context, statement string, params map[string]any) ([]Row, error) {
	if s.driver == nil {
		return nil, ErrSessionClosed
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	rows, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) ([]Row, error) {
		return run(ctx, tx, statement, params)
	})
	if err != nil {
		return nil, fmt.Errorf("execute write: %w", err)
	}

	return rows, nil
}

// Close closes the underlying driver and its connection pool.
func (s *Neo4jSession) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	if err := s.driver.Close(ctx); err != nil {
		return fmt.Errorf("close %s driver: %w", s.backend, err)
	}

	return nil
}

// run collects every record inside the transaction function,
// because once the function exits the result won't contain any records.
func run(ctx context.Context, tx neo4j.ManagedTransaction, statement string, params map[string]any) ([]Row, error) {
	result, err := tx.Run(ctx, statement, params)
	if err != nil {
		return nil, fmt.Errorf("run tx: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect result: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row{Keys: record.Keys, Values: record.Values})
	}

	return rows, nil
}
