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

// Package notify composes and publishes mutation notifications.
package notify

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// OperationKey is the reserved attribute carrying the operation name.
const OperationKey = "operation"

// DataType is the transport data type of an attribute.
type DataType string

// The supported data types are listed below.
const (
	Number DataType = "Number"
	String DataType = "String"
)

// Attribute is a single typed message attribute.
type Attribute struct {
	Name     string
	DataType DataType
	Value    string
}

// Attributes is a set of attributes ordered by name.
type Attributes []Attribute

// Get returns the attribute with the given name.
func (a Attributes) Get(name string) (Attribute, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr, true
		}
	}

	return Attribute{}, false
}

// Names returns attribute names in order.
func (a Attributes) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}

	return names
}

// Compose merges call attributes over defaults, sets the operation key,
// drops nil values and types what remains.
func Compose(defaults, call map[string]any, operation string) (Attributes, error) {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = make(map[string]any, len(call)+1)
	}

	maps.Copy(merged, call)
	merged[OperationKey] = operation

	attrs := make(Attributes, 0, len(merged))
	for _, name := range slices.Sorted(maps.Keys(merged)) {
		value := merged[name]
		if value == nil {
			continue
		}

		dataType, text, err := classify(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}

		attrs = append(attrs, Attribute{Name: name, DataType: dataType, Value: text})
	}

	return attrs, nil
}

func classify(value any) (DataType, string, error) {
	switch v := value.(type) {
	case string:
		return String, v, nil
	case bool:
		return String, strconv.FormatBool(v), nil
	case int:
		return Number, strconv.FormatInt(int64(v), 10), nil
	case int8:
		return Number, strconv.FormatInt(int64(v), 10), nil
	case int16:
		return Number, strconv.FormatInt(int64(v), 10), nil
	case int32:
		return Number, strconv.FormatInt(int64(v), 10), nil
	case int64:
		return Number, strconv.FormatInt(v, 10), nil
	case uint:
		return Number, strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return Number, strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return Number, strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return Number, strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return Number, strconv.FormatUint(v, 10), nil
	case float32:
		return classifyFloat(float64(v), 32)
	case float64:
		return classifyFloat(v, 64)
	case json.Number:
		return Number, v.String(), nil
	default:
		return "", "", fmt.Errorf("%w: %T", ErrUnsupportedAttributeType, value)
	}
}

func classifyFloat(v float64, bitSize int) (DataType, string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", "", fmt.Errorf("%w: %v", ErrUnsupportedAttributeType, v)
	}

	return Number, strconv.FormatFloat(v, 'f', -1, bitSize), nil
}
