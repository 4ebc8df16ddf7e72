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
	"errors"

	"github.com/conduitio-labs/cypher-adapter/notify"
	"github.com/conduitio-labs/cypher-adapter/schema"
)

var (
	// ErrSchemaNotFound occurs when a named schema is not in the catalog.
	ErrSchemaNotFound = schema.ErrSchemaNotFound
	// ErrNodeNotFound occurs when a lookup matches no node.
	ErrNodeNotFound = errors.New("node not found")
	// ErrAmbiguousMatch occurs when a single-node lookup or write matches several nodes.
	ErrAmbiguousMatch = errors.New("ambiguous match")
	// ErrVersionConflict occurs when the stored idempotence value differs from the observed one.
	ErrVersionConflict = errors.New("version conflict")
	// ErrInvalidRelationshipStatement occurs when a relationship statement is rejected by the guard.
	ErrInvalidRelationshipStatement = errors.New("invalid relationship statement")
	// ErrUnsupportedAttributeType occurs when a notification attribute cannot be typed.
	ErrUnsupportedAttributeType = notify.ErrUnsupportedAttributeType
	// ErrBackendFailure wraps any error returned by the graph backend.
	ErrBackendFailure = errors.New("backend failure")
	// ErrPublishFailure is attached as a warning when a notification cannot be delivered.
	ErrPublishFailure = notify.ErrPublishFailure

	// ErrMissingOption occurs when a required option is not supplied by the call or defaults.
	ErrMissingOption = errors.New("missing option")
	// ErrEmptyPayload occurs when a create has nothing to write.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrInvalidStatement occurs when a free-form statement is empty or has no or undefined placeholders.
	ErrInvalidStatement = errors.New("invalid statement")
)

// backendError matches both ErrBackendFailure and the driver error it carries.
type backendError struct {
	err error
}

func (e *backendError) Error() string {
	return ErrBackendFailure.Error() + ": " + e.err.Error()
}

func (e *backendError) Unwrap() []error {
	return []error{ErrBackendFailure, e.err}
}

func backendFailure(err error) error {
	return &backendError{err: err}
}
