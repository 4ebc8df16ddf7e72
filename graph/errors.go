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

import "errors"

var (
	// ErrUndefinedParameter occurs when a statement references a placeholder
	// that has no entry in the parameter mapping.
	ErrUndefinedParameter = errors.New("undefined parameter")
	// ErrSessionClosed occurs when a statement is executed on a closed session.
	ErrSessionClosed = errors.New("session closed")
)
