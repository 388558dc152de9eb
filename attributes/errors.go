// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package attributes

import "fmt"

// TypeSyntaxError is returned for a malformed type hint.
type TypeSyntaxError struct {
	Hint string
	// Pos is the byte offset in Hint where the error was found or -1 if the
	// error does not point at a particular offset.
	Pos int
	Msg string
}

func (e *TypeSyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("type %q: %s", e.Hint, e.Msg)
	}
	return fmt.Sprintf("type %q: offset %d: %s", e.Hint, e.Pos, e.Msg)
}

// UnknownTypeError is returned when a type reference does not name a scalar or
// a registered model. It is only reported while building a schema, since
// models may be declared in any order.
type UnknownTypeError struct {
	Name string
	// Input is true if the reference was to an input type.
	Input bool
}

func (e *UnknownTypeError) Error() string {
	if e.Input {
		return fmt.Sprintf("undefined input type %s", e.Name)
	}
	return fmt.Sprintf("undefined type %s", e.Name)
}
