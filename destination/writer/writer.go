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

//go:generate mockgen -package mock -destination mock/adapter.go . Adapter

// Package writer implements a writer logic for the Cypher Destination.
package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/conduitio-labs/cypher-adapter/adapter"
	"github.com/conduitio-labs/cypher-adapter/config"
	"github.com/conduitio-labs/cypher-adapter/graph"
	"github.com/conduitio/conduit-commons/opencdc"
	sdk "github.com/conduitio/conduit-connector-sdk"
	"github.com/mitchellh/mapstructure"
)

const (
	// relationship statements built by the [Writer] are listed below in the format of Go fmt.
	createRelationshipQueryTemplate = "MATCH (src:%s {%s}) MATCH (trgt:%s {%s}) CREATE (src)-[obj:%s {%s}]->(trgt) RETURN obj"
	updateRelationshipQueryTemplate = "MATCH ()-[obj:%s {%s}]->() SET %s RETURN obj"
	deleteRelationshipQueryTemplate = "MATCH ()-[obj:%s {%s}]->() DETACH DELETE obj"

	// some helper symbols for Cypher queries.
	setKeyPrefix              = "obj."
	setAssignSign             = " = "
	matchAssignSign           = ": "
	interpolationSign         = "$"
	interpolationSourcePrefix = "src_"
	interpolationTargetPrefix = "trgt_"
	interpolationKeyPrefix    = "key_"

	// relationship payload-specific fields.
	sourceNodeField = "sourceNode"
	targetNodeField = "targetNode"
)

// EntityType defines a graph entity type records are written as.
type EntityType string

// The available entity types are listed below.
const (
	EntityTypeNode         EntityType = "node"
	EntityTypeRelationship EntityType = "relationship"
)

// Adapter is the part of the [adapter.Adapter] the [Writer] uses.
type Adapter interface {
	Create(ctx context.Context, payload map[string]any, opts config.CallOptions) (adapter.Result, error)
	Update(ctx context.Context, statement string, payload map[string]any, opts config.CallOptions) (adapter.Result, error)
	Delete(ctx context.Context, identifier any, opts config.CallOptions) (adapter.Result, error)
	CreateRelationship(ctx context.Context, statement string, opts config.CallOptions) (adapter.Result, error)
	DeleteRelationship(ctx context.Context, statement string, opts config.CallOptions) (adapter.Result, error)
	Query(ctx context.Context, statement string, opts config.CallOptions) (adapter.Result, error)
}

// endpoint is a node a relationship starts or ends at.
type endpoint struct {
	Labels []string       `mapstructure:"labels"`
	Key    map[string]any `mapstructure:"key"`
}

// Writer implements a writer logic for the Cypher Destination.
type Writer struct {
	adapter        Adapter
	entityType     EntityType
	label          string
	identifier     string
	idempotenceKey string
}

// Params holds incoming params for the [Writer].
type Params struct {
	Adapter        Adapter
	EntityType     EntityType
	Label          string
	Identifier     string
	IdempotenceKey string
}

// New creates a new instance of the [Writer].
func New(params Params) *Writer {
	return &Writer{
		adapter:        params.Adapter,
		entityType:     params.EntityType,
		label:          params.Label,
		identifier:     params.Identifier,
		idempotenceKey: params.IdempotenceKey,
	}
}

// Write writes a record to the destination.
func (w *Writer) Write(ctx context.Context, record opencdc.Record) error {
	err := sdk.Util.Destination.Route(ctx, record,
		w.handleCreate,
		w.handleUpdate,
		w.handleDelete,
		w.handleCreate,
	)
	if err != nil {
		return fmt.Errorf("route record: %w", err)
	}

	return nil
}

func (w *Writer) handleCreate(ctx context.Context, record opencdc.Record) error {
	switch w.entityType {
	case EntityTypeNode:
		properties, err := w.structurizeData(record.Payload.After)
		if err != nil {
			return fmt.Errorf("structurize record payload: %w", err)
		}

		res, err := w.adapter.Create(ctx, properties, config.CallOptions{})
		if err != nil {
			return fmt.Errorf("create node: %w", err)
		}

		w.warn(ctx, res)

		return nil

	case EntityTypeRelationship:
		return w.createRelationship(ctx, record)

	default:
		// this shouldn't happen as we validate the config this value comes from
		return ErrUnsupportedEntityType
	}
}

func (w *Writer) handleUpdate(ctx context.Context, record opencdc.Record) error {
	id, err := w.recordIdentifier(record)
	if err != nil {
		return err
	}

	properties, err := w.structurizeData(record.Payload.After)
	if err != nil {
		return fmt.Errorf("structurize record payload: %w", err)
	}

	if w.entityType == EntityTypeRelationship {
		return w.updateRelationship(ctx, id, properties)
	}

	original, err := w.originalIdempotenceValue(record)
	if err != nil {
		return err
	}

	res, err := w.adapter.Update(ctx, graph.LookupNodeStatement(w.label, w.identifier), properties, config.CallOptions{
		Placeholder:              map[string]any{graph.ParamIdentifier: id},
		OriginalIdempotenceValue: original,
	})
	if err != nil {
		return fmt.Errorf("update node: %w", err)
	}

	w.warn(ctx, res)

	return nil
}

func (w *Writer) handleDelete(ctx context.Context, record opencdc.Record) error {
	id, err := w.recordIdentifier(record)
	if err != nil {
		return err
	}

	if w.entityType == EntityTypeRelationship {
		query := fmt.Sprintf(deleteRelationshipQueryTemplate, graph.Quote(w.label), w.matchIdentifier())

		if _, err := w.adapter.DeleteRelationship(ctx, query, config.CallOptions{
			Placeholder: map[string]any{interpolationKeyPrefix + w.identifier: id},
		}); err != nil {
			return fmt.Errorf("delete relationship: %w", err)
		}

		return nil
	}

	res, err := w.adapter.Delete(ctx, id, config.CallOptions{})
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}

	w.warn(ctx, res)

	return nil
}

func (w *Writer) createRelationship(ctx context.Context, record opencdc.Record) error {
	properties, err := w.structurizeData(record.Payload.After)
	if err != nil {
		return fmt.Errorf("structurize record payload: %w", err)
	}

	// extract source and target nodes from the properties
	sourceNode, targetNode, err := w.sourceTargetNodesFromProperties(properties)
	if err != nil {
		return fmt.Errorf("extract source and target node from properties: %w", err)
	}

	placeholder := make(map[string]any, len(properties)+len(sourceNode.Key)+len(targetNode.Key))
	maps.Copy(placeholder, properties)

	for name, value := range sourceNode.Key {
		placeholder[interpolationSourcePrefix+name] = value
	}

	for name, value := range targetNode.Key {
		placeholder[interpolationTargetPrefix+name] = value
	}

	query := fmt.Sprintf(createRelationshipQueryTemplate,
		quoteLabels(sourceNode.Labels), cypherMatchProperties(sourceNode.Key, interpolationSourcePrefix),
		quoteLabels(targetNode.Labels), cypherMatchProperties(targetNode.Key, interpolationTargetPrefix),
		graph.Quote(w.label), cypherMatchProperties(properties, ""),
	)

	if _, err := w.adapter.CreateRelationship(ctx, query, config.CallOptions{Placeholder: placeholder}); err != nil {
		return fmt.Errorf("create relationship: %w", err)
	}

	return nil
}

func (w *Writer) updateRelationship(ctx context.Context, id any, properties map[string]any) error {
	// endpoints are fixed once a relationship exists
	delete(properties, sourceNodeField)
	delete(properties, targetNodeField)
	delete(properties, w.identifier)

	if len(properties) == 0 {
		return nil
	}

	query := fmt.Sprintf(updateRelationshipQueryTemplate,
		graph.Quote(w.label), w.matchIdentifier(), cypherSetProperties(properties),
	)

	placeholder := maps.Clone(properties)
	placeholder[interpolationKeyPrefix+w.identifier] = id

	if _, err := w.adapter.Query(ctx, query, config.CallOptions{Placeholder: placeholder}); err != nil {
		return fmt.Errorf("update relationship: %w", err)
	}

	return nil
}

// sourceTargetNodesFromProperties extracts source and target nodes from the properties map.
//
// The method also removes sourceNode and targetNode fields from the properties after extracting
// because we don't need them to be stored as relationship properties.
func (w *Writer) sourceTargetNodesFromProperties(properties map[string]any) (*endpoint, *endpoint, error) {
	sourceNodeRaw, ok := properties[sourceNodeField]
	if !ok {
		return nil, nil, ErrEmptySourceNode
	}

	sourceNode := new(endpoint)
	if err := mapstructure.Decode(sourceNodeRaw, sourceNode); err != nil {
		return nil, nil, fmt.Errorf("decode source node: %w", err)
	}

	delete(properties, sourceNodeField)

	targetNodeRaw, ok := properties[targetNodeField]
	if !ok {
		return nil, nil, ErrEmptyTargetNode
	}

	targetNode := new(endpoint)
	if err := mapstructure.Decode(targetNodeRaw, targetNode); err != nil {
		return nil, nil, fmt.Errorf("decode target node: %w", err)
	}

	delete(properties, targetNodeField)

	return sourceNode, targetNode, nil
}

// recordIdentifier returns the identifier property value carried by the record key.
func (w *Writer) recordIdentifier(record opencdc.Record) (any, error) {
	key, err := w.structurizeData(record.Key)
	if err != nil {
		return nil, fmt.Errorf("structurize record key: %w", err)
	}

	id, ok := key[w.identifier]
	if !ok || id == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingIdentifier, w.identifier)
	}

	return id, nil
}

// originalIdempotenceValue returns the version the record's before image was read at.
func (w *Writer) originalIdempotenceValue(record opencdc.Record) (any, error) {
	if w.idempotenceKey == "" {
		return nil, ErrNoIdempotenceKey
	}

	before, err := w.structurizeData(record.Payload.Before)
	if err != nil {
		return nil, fmt.Errorf("structurize record payload before: %w", err)
	}

	original, ok := before[w.idempotenceKey]
	if !ok || original == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingIdempotenceValue, w.idempotenceKey)
	}

	return original, nil
}

// structurizeData converts [opencdc.Data] to a map. Raw data is unmarshaled as JSON,
// and if the process fails or the data is empty the method returns an error.
func (w *Writer) structurizeData(data opencdc.Data) (map[string]any, error) {
	if data == nil || len(data.Bytes()) == 0 {
		return nil, ErrEmptyRawData
	}

	if structured, ok := data.(opencdc.StructuredData); ok {
		return maps.Clone(map[string]any(structured)), nil
	}

	var structurizedData map[string]any
	if err := json.Unmarshal(data.Bytes(), &structurizedData); err != nil {
		return nil, fmt.Errorf("unmarshal raw data: %w", err)
	}

	return structurizedData, nil
}

func (w *Writer) warn(ctx context.Context, res adapter.Result) {
	if res.Warning != nil {
		sdk.Logger(ctx).Warn().Err(res.Warning).Msg("record written without notification")
	}
}

func (w *Writer) matchIdentifier() string {
	return graph.Quote(w.identifier) + matchAssignSign + interpolationSign + interpolationKeyPrefix + w.identifier
}

// cypherMatchProperties constructs a set of properties
// according to the Cypher MATCH syntax, e.g.: "`prop`: $prop".
func cypherMatchProperties(properties map[string]any, interpolationPrefix string) string {
	parts := make([]string, 0, len(properties))
	for _, name := range slices.Sorted(maps.Keys(properties)) {
		parts = append(parts, graph.Quote(name)+matchAssignSign+interpolationSign+interpolationPrefix+name)
	}

	return strings.Join(parts, ", ")
}

// cypherSetProperties constructs a set of properties
// according to the Cypher SET syntax, e.g.: "obj.`prop` = $prop".
func cypherSetProperties(properties map[string]any) string {
	parts := make([]string, 0, len(properties))
	for _, name := range slices.Sorted(maps.Keys(properties)) {
		parts = append(parts, setKeyPrefix+graph.Quote(name)+setAssignSign+interpolationSign+name)
	}

	return strings.Join(parts, ", ")
}

func quoteLabels(labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = graph.Quote(label)
	}

	return strings.Join(quoted, ":")
}
