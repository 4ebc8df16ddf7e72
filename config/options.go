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

package config

import "maps"

// Defaults holds adapter-level values each call starts from.
type Defaults struct {
	// Schema is the default schema name used to project payloads.
	Schema string `mapstructure:"schema"`
	// Node is the default node label.
	Node string `mapstructure:"node"`
	// Identifier is the default name of the business identifier field.
	Identifier string `mapstructure:"identifier"`
	// IdempotenceKey is the default name of the version field used by updates.
	IdempotenceKey string `mapstructure:"idempotence_key"`
	// SNSArn is the default notification topic. Publishing is off when empty.
	SNSArn string `mapstructure:"sns_arn"`
	// SNSAttributes are merged under per-call attributes.
	SNSAttributes map[string]any `mapstructure:"sns_attributes"`
	// FIFOGroupID is a message group id used for FIFO topics.
	FIFOGroupID string `mapstructure:"fifo_group_id"`
}

// CallOptions holds per-call overrides. Zero values mean "not supplied".
type CallOptions struct {
	Node                     string         `mapstructure:"node"`
	Schema                   string         `mapstructure:"schema"`
	Identifier               string         `mapstructure:"identifier"`
	IdempotenceKey           string         `mapstructure:"idempotence_key"`
	OriginalIdempotenceValue any            `mapstructure:"original_idempotence_value"`
	Placeholder              map[string]any `mapstructure:"placeholder"`
	SNSArn                   string         `mapstructure:"sns_arn"`
	SNSAttributes            map[string]any `mapstructure:"sns_attributes"`
	FIFOGroupID              string         `mapstructure:"fifo_group_id"`
	FIFODeduplicationID      string         `mapstructure:"fifo_duplication_id"`
	// DeleteQuery replaces the default detach-delete statement.
	DeleteQuery string `mapstructure:"delete_query"`
	// Serialize controls whether Read groups rows by label. Nil means true.
	Serialize *bool `mapstructure:"serialize"`
	// ListOperation and DictOperation select merge strategies for updates.
	ListOperation string `mapstructure:"update_list_operation"`
	DictOperation string `mapstructure:"update_dict_operation"`
}

// Effective is the configuration a single call runs with.
type Effective struct {
	Node                     string
	Schema                   string
	Identifier               string
	IdempotenceKey           string
	OriginalIdempotenceValue any
	Placeholder              map[string]any
	SNSArn                   string
	DefaultAttributes        map[string]any
	CallAttributes           map[string]any
	// PublishRequested is true when the call itself supplied a topic or attributes.
	PublishRequested    bool
	FIFOGroupID         string
	FIFODeduplicationID string
	DeleteQuery         string
	Serialize           bool
	ListOperation       string
	DictOperation       string
}

// Merge overlays call on top of defaults. Neither argument is modified
// and the returned maps are copies.
func Merge(defaults Defaults, call CallOptions) Effective {
	eff := Effective{
		Node:                     pick(call.Node, defaults.Node),
		Schema:                   pick(call.Schema, defaults.Schema),
		Identifier:               pick(call.Identifier, defaults.Identifier),
		IdempotenceKey:           pick(call.IdempotenceKey, defaults.IdempotenceKey),
		OriginalIdempotenceValue: call.OriginalIdempotenceValue,
		Placeholder:              maps.Clone(call.Placeholder),
		SNSArn:                   pick(call.SNSArn, defaults.SNSArn),
		DefaultAttributes:        maps.Clone(defaults.SNSAttributes),
		CallAttributes:           maps.Clone(call.SNSAttributes),
		PublishRequested:         call.SNSArn != "" || call.SNSAttributes != nil,
		FIFOGroupID:              pick(call.FIFOGroupID, defaults.FIFOGroupID),
		FIFODeduplicationID:      call.FIFODeduplicationID,
		DeleteQuery:              call.DeleteQuery,
		Serialize:                call.Serialize == nil || *call.Serialize,
		ListOperation:            call.ListOperation,
		DictOperation:            call.DictOperation,
	}

	if eff.Placeholder == nil {
		eff.Placeholder = make(map[string]any)
	}

	return eff
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}

	return fallback
}
