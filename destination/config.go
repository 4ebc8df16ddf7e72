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
	cypherconfig "github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio/conduit-commons/config"
)

const (
	// KeyURI is a config field name for a connection URI.
	KeyURI = "uri"
	// KeyNeptune is a config field name for the managed backend flag.
	KeyNeptune = "neptune"
	// KeyDatabase is a config field name for a database.
	KeyDatabase = "database"
	// KeyAuthUsername is a config field name for a basic auth username.
	KeyAuthUsername = "auth.username"
	// KeyAuthPassword is a config field name for a basic auth password.
	KeyAuthPassword = "auth.password"
	// KeyAuthRealm is a config field name for a basic auth realm.
	KeyAuthRealm = "auth.realm"
	// KeyEntityType is a config field name for an entity type.
	KeyEntityType = "entityType"
	// KeyNode is a config field name for a node label or a relationship type.
	KeyNode = "node"
	// KeyIdentifier is a config field name for the business identifier property.
	KeyIdentifier = "identifier"
	// KeyIdempotenceKey is a config field name for the version property.
	KeyIdempotenceKey = "idempotenceKey"
	// KeySchemaFile is a config field name for a schema file path.
	KeySchemaFile = "schemaFile"
	// KeySchema is a config field name for a schema name.
	KeySchema = "schema"
	// KeySNSTopicArn is a config field name for a notification topic.
	KeySNSTopicArn = "sns.topicArn"
	// KeySNSRegion is a config field name for a notification topic region.
	KeySNSRegion = "sns.region"
	// KeySNSEndpoint is a config field name for a custom SNS endpoint.
	KeySNSEndpoint = "sns.endpoint"
)

// EntityType defines a graph entity type records are written as.
type EntityType string

// The available entity types are listed below.
const (
	EntityTypeNode         EntityType = "node"
	EntityTypeRelationship EntityType = "relationship"
)

// Config holds configurable values specific to destination.
type Config struct {
	// The connection URI pointed to a Bolt-compatible instance.
	URI string `json:"uri" validate:"required"`
	// Treats the URI as a managed Neptune endpoint.
	Neptune bool `json:"neptune" default:"false"`
	// The name of a database the connector should work with.
	Database string `json:"database" default:"neo4j"`
	// Auth holds auth-specific configurable values.
	Auth AuthConfig `json:"auth"`
	// Defines an entity type the connector should work with.
	EntityType EntityType `json:"entityType" validate:"inclusion=node|relationship" default:"node"`
	// The node label, or the relationship type for relationships.
	Node string `json:"node" validate:"required"`
	// The property that identifies an entity, matched against the record key.
	Identifier string `json:"identifier" validate:"required"`
	// The version property updates are checked against.
	IdempotenceKey string `json:"idempotenceKey"`
	// A path to an OpenAPI document with payload schemas.
	SchemaFile string `json:"schemaFile"`
	// The name of the schema payloads are projected through.
	Schema string `json:"schema"`
	// SNS holds notification-specific configurable values.
	SNS SNSConfig `json:"sns"`
}

// AuthConfig holds auth-specific configurable values.
type AuthConfig struct {
	// The username to use when performing basic auth.
	Username string `json:"username"`
	// The password to use when performing basic auth.
	Password string `json:"password"`
	// The realm to use when performing basic auth.
	Realm string `json:"realm"`
}

// SNSConfig holds notification-specific configurable values.
type SNSConfig struct {
	// The topic mutations are published to. Publishing is off when empty.
	TopicArn string `json:"topicArn"`
	// The region of the topic.
	Region string `json:"region"`
	// A custom endpoint, e.g. a local emulator.
	Endpoint string `json:"endpoint"`
}

// AdapterConfig converts the destination config to the adapter's one.
func (c Config) AdapterConfig() cypherconfig.Config {
	conn := &cypherconfig.Connection{
		URI:      c.URI,
		Database: c.Database,
		Auth: cypherconfig.AuthConfig{
			Username: c.Auth.Username,
			Password: c.Auth.Password,
			Realm:    c.Auth.Realm,
		},
	}

	cfg := cypherconfig.Config{
		SchemaFile:  c.SchemaFile,
		SNSRegion:   c.SNS.Region,
		SNSEndpoint: c.SNS.Endpoint,
		Defaults: cypherconfig.Defaults{
			Schema:         c.Schema,
			Node:           c.Node,
			Identifier:     c.Identifier,
			IdempotenceKey: c.IdempotenceKey,
			SNSArn:         c.SNS.TopicArn,
		},
	}

	if c.Neptune {
		cfg.Neptune = conn
	} else {
		cfg.Bolt = conn
	}

	return cfg
}

// Parameters is a map of named [config.Parameter] that describe how to configure the [Destination].
func (Config) Parameters() map[string]config.Parameter {
	return map[string]config.Parameter{
		KeyURI: {
			Default:     "",
			Description: "The connection URI pointed to a Bolt-compatible instance.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationRequired{},
			},
		},
		KeyNeptune: {
			Default:     "false",
			Description: "Treats the URI as a managed Neptune endpoint.",
			Type:        config.ParameterTypeBool,
			Validations: []config.Validation{},
		},
		KeyDatabase: {
			Default:     "neo4j",
			Description: "The name of a database the connector should work with.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeyAuthUsername: {
			Default:     "",
			Description: "The username to use when performing basic auth.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeyAuthPassword: {
			Default:     "",
			Description: "The password to use when performing basic auth.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeyAuthRealm: {
			Default:     "",
			Description: "The realm to use when performing basic auth.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeyEntityType: {
			Default:     string(EntityTypeNode),
			Description: "Defines an entity type the connector should work with.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationInclusion{List: []string{string(EntityTypeNode), string(EntityTypeRelationship)}},
			},
		},
		KeyNode: {
			Default:     "",
			Description: "The node label, or the relationship type for relationships.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationRequired{},
			},
		},
		KeyIdentifier: {
			Default:     "",
			Description: "The property that identifies an entity, matched against the record key.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{
				config.ValidationRequired{},
			},
		},
		KeyIdempotenceKey: {
			Default:     "",
			Description: "The version property updates are checked against.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeySchemaFile: {
			Default:     "",
			Description: "A path to an OpenAPI document with payload schemas.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeySchema: {
			Default:     "",
			Description: "The name of the schema payloads are projected through.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeySNSTopicArn: {
			Default:     "",
			Description: "The topic mutations are published to. Publishing is off when empty.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeySNSRegion: {
			Default:     "",
			Description: "The region of the topic.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
		KeySNSEndpoint: {
			Default:     "",
			Description: "A custom endpoint, e.g. a local emulator.",
			Type:        config.ParameterTypeString,
			Validations: []config.Validation{},
		},
	}
}
