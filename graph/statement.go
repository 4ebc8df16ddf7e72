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
	"fmt"
	"strings"
)

const (
	// all statements generated by the adapter are listed below in the format of Go fmt.
	createNodeStatementTemplate      = "CREATE (n:%s) SET n = $placeholder RETURN n"
	lookupNodeStatementTemplate      = "MATCH (n:%s) WHERE n.%s = $identifier RETURN n"
	versionedUpdateStatementTemplate = "MATCH (n:%s) WHERE n.%s = $identifier AND n.%s = $original_idempotence_value " +
		"SET n = $placeholder RETURN n"
	detachDeleteStatementTemplate = "MATCH (n:%s) WHERE n.%s = $identifier DETACH DELETE n"

	quoteSign = "`"
)

// Parameter names used by generated statements.
const (
	ParamPlaceholder              = "placeholder"
	ParamIdentifier               = "identifier"
	ParamOriginalIdempotenceValue = "original_idempotence_value"
)

// Quote escapes a label or property name so it can be interpolated into statement text.
func Quote(name string) string {
	return quoteSign + strings.ReplaceAll(name, quoteSign, quoteSign+quoteSign) + quoteSign
}

// CreateNodeStatement creates one node with the properties in $placeholder.
func CreateNodeStatement(label string) string {
	return fmt.Sprintf(createNodeStatementTemplate, Quote(label))
}

// LookupNodeStatement matches nodes whose identifier property equals $identifier.
func LookupNodeStatement(label, identifier string) string {
	return fmt.Sprintf(lookupNodeStatementTemplate, Quote(label), Quote(identifier))
}

// VersionedUpdateStatement replaces the properties of the node matching $identifier
// only while its idempotence property still equals $original_idempotence_value.
func VersionedUpdateStatement(label, identifier, idempotenceKey string) string {
	return fmt.Sprintf(versionedUpdateStatementTemplate, Quote(label), Quote(identifier), Quote(idempotenceKey))
}

// DetachDeleteStatement removes the node matching $identifier with all its relationships.
func DetachDeleteStatement(label, identifier string) string {
	return fmt.Sprintf(detachDeleteStatementTemplate, Quote(label), Quote(identifier))
}
