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

// Package merge implements the strategies used to merge a partial update into a stored payload.
package merge

import (
	"errors"
	"fmt"
	"maps"
	"reflect"

	"dario.cat/mergo"
)

// ErrUnknownOperation occurs when a merge operation name is not recognized.
var ErrUnknownOperation = errors.New("unknown merge operation")

// ListOperation defines how list values of an update are merged.
type ListOperation string

// The available list operations are listed below.
const (
	// ListReplace overwrites the stored list.
	ListReplace ListOperation = "replace"
	// ListAdd appends elements that are not already stored.
	ListAdd ListOperation = "add"
	// ListRemove drops stored elements equal to any supplied element.
	ListRemove ListOperation = "remove"
)

// DictOperation defines how map values and nil values of an update are merged.
type DictOperation string

// The available dict operations are listed below.
const (
	// DictReplace overwrites the stored map.
	DictReplace DictOperation = "replace"
	// DictUpsert merges nested maps recursively, update values win.
	DictUpsert DictOperation = "upsert"
	// DictRemove removes keys whose update value is nil.
	DictRemove DictOperation = "remove"
)

// Options selects merge strategies. The zero value is a shallow last-write-wins merge.
type Options struct {
	List ListOperation
	Dict DictOperation
}

// ParseOptions validates operation names. Empty names select the defaults.
func ParseOptions(list, dict string) (Options, error) {
	opts := Options{List: ListOperation(list), Dict: DictOperation(dict)}

	switch opts.List {
	case "", ListReplace, ListAdd, ListRemove:
	default:
		return Options{}, fmt.Errorf("list operation %q: %w", list, ErrUnknownOperation)
	}

	switch opts.Dict {
	case "", DictReplace, DictUpsert, DictRemove:
	default:
		return Options{}, fmt.Errorf("dict operation %q: %w", dict, ErrUnknownOperation)
	}

	return opts, nil
}

// Merge returns original overlaid with update. Neither argument is modified.
func Merge(original, update map[string]any, opts Options) (map[string]any, error) {
	merged := maps.Clone(original)
	if merged == nil {
		merged = make(map[string]any, len(update))
	}

	for key, value := range update {
		stored, exists := merged[key]

		switch typed := value.(type) {
		case nil:
			if opts.Dict == DictRemove {
				delete(merged, key)

				continue
			}

			merged[key] = nil

		case []any:
			storedList, isList := stored.([]any)
			if !exists || !isList {
				merged[key] = typed

				continue
			}

			merged[key] = mergeList(storedList, typed, opts.List)

		case map[string]any:
			storedMap, isMap := stored.(map[string]any)
			if opts.Dict != DictUpsert || !exists || !isMap {
				merged[key] = typed

				continue
			}

			dst := deepCopy(storedMap)
			if err := mergo.Merge(&dst, typed, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("merge %q: %w", key, err)
			}

			merged[key] = dst

		default:
			merged[key] = value
		}
	}

	return merged, nil
}

func mergeList(stored, update []any, op ListOperation) []any {
	switch op {
	case ListAdd:
		merged := append([]any(nil), stored...)
		for _, element := range update {
			if !contains(merged, element) {
				merged = append(merged, element)
			}
		}

		return merged

	case ListRemove:
		merged := make([]any, 0, len(stored))
		for _, element := range stored {
			if !contains(update, element) {
				merged = append(merged, element)
			}
		}

		return merged

	default:
		return update
	}
}

func contains(list []any, element any) bool {
	for _, e := range list {
		if reflect.DeepEqual(e, element) {
			return true
		}
	}

	return false
}

func deepCopy(m map[string]any) map[string]any {
	copied := make(map[string]any, len(m))
	for key, value := range m {
		if nested, ok := value.(map[string]any); ok {
			copied[key] = deepCopy(nested)

			continue
		}

		copied[key] = value
	}

	return copied
}
