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

// Package config implements configurations shared between different parts of the adapter.
package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	// KeyBolt is a config field name for the on-premises Bolt connection descriptor.
	KeyBolt = "bolt"
	// KeyNeptune is a config field name for the managed Bolt connection descriptor.
	KeyNeptune = "neptune"
	// KeySchemaFile is a config field name for a path to a schema file.
	KeySchemaFile = "schema_file"
	// KeySchema is a config field name for a default schema name.
	KeySchema = "schema"
	// KeySNSArn is a config field name for a default notification topic.
	KeySNSArn = "sns_arn"
	// KeySNSAttributes is a config field name for default notification attributes.
	KeySNSAttributes = "sns_attributes"
	// KeyNode is an option name for a node label.
	KeyNode = "node"
	// KeyIdentifier is an option name for the business identifier field.
	KeyIdentifier = "identifier"
	// KeyIdempotenceKey is an option name for the version field.
	KeyIdempotenceKey = "idempotence_key"
	// KeyOriginalIdempotenceValue is an option name for the version observed by the caller.
	KeyOriginalIdempotenceValue = "original_idempotence_value"
)

var (
	// ErrNoBackend occurs when neither a bolt nor a neptune connection is configured.
	ErrNoBackend = errors.New("no backend configured")
	// ErrMissingURI occurs when a connection descriptor has no URI.
	ErrMissingURI = errors.New("connection uri is required")
)

// Backend defines a graph backend kind.
type Backend string

// The available backends are listed below.
const (
	BackendBolt    Backend = "bolt"
	BackendNeptune Backend = "neptune"
)

// Config holds configurable values of an adapter instance.
// It is read-only once the adapter is constructed.
type Config struct {
	// Bolt describes an on-premises Bolt-compatible instance.
	Bolt *Connection `mapstructure:"bolt"`
	// Neptune describes a managed Bolt-compatible instance. It wins over Bolt when both are set.
	Neptune *Connection `mapstructure:"neptune"`
	// SchemaFile is a path to a schema file loaded once at construction.
	SchemaFile string `mapstructure:"schema_file"`
	// SNSRegion and SNSEndpoint configure the notification client.
	// Empty values fall back to the AWS default chain.
	SNSRegion   string `mapstructure:"sns_region"`
	SNSEndpoint string `mapstructure:"sns_endpoint"`
	// Defaults are the values every call starts from.
	Defaults Defaults `mapstructure:",squash"`
}

// Connection describes how to reach a graph backend.
type Connection struct {
	// The connection URI pointed to a Bolt-compatible instance.
	URI string `mapstructure:"url"`
	// The name of a database the adapter should work with.
	Database string `mapstructure:"database"`
	// Auth holds auth-specific configurable values.
	Auth AuthConfig `mapstructure:",squash"`
	// The maximum size of the driver's connection pool. Zero keeps the driver default.
	MaxConnections int `mapstructure:"max_connections"`
}

// AuthConfig holds auth-specific configurable values.
type AuthConfig struct {
	// The username to use when performing basic auth.
	Username string `mapstructure:"user"`
	// The password to use when performing basic auth.
	Password string `mapstructure:"password"`
	// The realm to use when performing basic auth.
	Realm string `mapstructure:"realm"`
}

// AuthToken returns [neo4j.AuthToken] based on the [AuthConfig] values.
func (c AuthConfig) AuthToken() neo4j.AuthToken {
	if c.Username != "" || c.Password != "" || c.Realm != "" {
		return neo4j.BasicAuth(c.Username, c.Password, c.Realm)
	}

	return neo4j.NoAuth()
}

// Resolve picks the active backend. Neptune is preferred over Bolt.
func (c Config) Resolve() (Backend, Connection, error) {
	preferences := []struct {
		backend    Backend
		connection *Connection
	}{
		{BackendNeptune, c.Neptune},
		{BackendBolt, c.Bolt},
	}

	for _, p := range preferences {
		if p.connection == nil {
			continue
		}

		if p.connection.URI == "" {
			return "", Connection{}, fmt.Errorf("%s: %w", p.backend, ErrMissingURI)
		}

		return p.backend, *p.connection, nil
	}

	return "", Connection{}, ErrNoBackend
}

// Decode builds a [Config] from a loosely-typed option bag, e.g.:
//
//	{"bolt": {"url": "bolt://localhost:7687", "user": "neo4j"}, "schema": "Customer"}
//
// Unknown keys are rejected.
func Decode(raw map[string]any) (Config, error) {
	var cfg Config
	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if _, _, err := cfg.Resolve(); err != nil {
		return Config{}, fmt.Errorf("resolve backend: %w", err)
	}

	return cfg, nil
}

func decode(raw map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: false,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}
