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
	"regexp"
	"strconv"
	"strings"
)

var (
	placeholderPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	// string literals, quoted names and comments in a single pass,
	// so a comment marker inside quotes stays quoted and the reverse.
	// An unterminated block comment runs to the end of the statement.
	literalPattern = regexp.MustCompile(
		`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"|` + "`[^`]*`" + `|//[^\n]*|/\*(?s:.*?)(?:\*/|\z)`,
	)
	integerPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// Placeholders returns the distinct parameter names a statement references, in order of appearance.
func Placeholders(statement string) []string {
	// string literals, quoted names and comments never hold parameters
	stripped := literalPattern.ReplaceAllStringFunc(statement, func(match string) string {
		if isComment(match) {
			return " "
		}

		return "''"
	})

	var (
		names []string
		seen  = make(map[string]struct{})
	)

	for _, match := range placeholderPattern.FindAllStringSubmatch(stripped, -1) {
		if _, ok := seen[match[1]]; ok {
			continue
		}

		seen[match[1]] = struct{}{}
		names = append(names, match[1])
	}

	return names
}

// StripStringsAndComments replaces string literals of a statement with empty ones
// and comments with a space, so keywords inside them are not mistaken for clauses.
// Quoted names are kept.
func StripStringsAndComments(statement string) string {
	return literalPattern.ReplaceAllStringFunc(statement, func(match string) string {
		switch {
		case isComment(match):
			return " "
		case strings.HasPrefix(match, "`"):
			return match
		default:
			return "''"
		}
	})
}

func isComment(match string) bool {
	return strings.HasPrefix(match, "//") || strings.HasPrefix(match, "/*")
}

// CheckPlaceholders makes sure every placeholder of the statement has a parameter.
// Parameters the statement does not reference are tolerated.
func CheckPlaceholders(statement string, params map[string]any) error {
	var missing []string
	for _, name := range Placeholders(statement) {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: $%s", ErrUndefinedParameter, strings.Join(missing, ", $"))
	}

	return nil
}

// ConvertPlaceholders returns a copy of params where base-10 integer strings
// are converted to int64, descending into nested maps and slices.
func ConvertPlaceholders(params map[string]any) map[string]any {
	converted := make(map[string]any, len(params))
	for key, value := range params {
		converted[key] = convertValue(value)
	}

	return converted
}

func convertValue(value any) any {
	switch typed := value.(type) {
	case string:
		if !integerPattern.MatchString(typed) {
			return typed
		}

		n, err := strconv.ParseInt(typed, 10, 64)
		if err != nil {
			return typed
		}

		return n

	case map[string]any:
		return ConvertPlaceholders(typed)

	case []any:
		converted := make([]any, len(typed))
		for i, element := range typed {
			converted[i] = convertValue(element)
		}

		return converted

	default:
		return value
	}
}
