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

import (
	"strings"

	"zombiezen.com/go/graphql-rails/internal/gqlang"
)

// scalarAliases maps lowercased scalar spellings to canonical names.
var scalarAliases = map[string]string{
	"string":  StringType,
	"int":     IntType,
	"float":   FloatType,
	"boolean": BooleanType,
	"bool":    BooleanType,
	"id":      IDType,
}

// ParseType parses a type hint like "Int", "String!" or "[Int!]!".
// An empty (or all-space) hint returns the zero Type and no error, meaning
// that the caller should infer the type from the attribute name.
//
// Names that are not scalars are returned as Object references without
// checking that such a model exists.
func ParseType(hint string) (Type, error) {
	if strings.TrimSpace(hint) == "" {
		return Type{}, nil
	}
	ref, err := gqlang.ParseType(hint)
	if err != nil {
		pos, ok := gqlang.ErrorPos(err)
		if !ok {
			pos = -1
		}
		return Type{}, &TypeSyntaxError{Hint: hint, Pos: int(pos), Msg: err.Error()}
	}
	t := Type{InnerNullable: true, OuterNullable: true}
	if ref.NonNull != nil {
		t.OuterNullable = false
		ref = &gqlang.TypeRef{Named: ref.NonNull.Named, List: ref.NonNull.List}
	}
	if ref.List != nil {
		t.List = true
		ref = ref.List.Type
		if ref.NonNull != nil {
			t.InnerNullable = false
			ref = &gqlang.TypeRef{Named: ref.NonNull.Named, List: ref.NonNull.List}
		}
		if ref.List != nil {
			return Type{}, &TypeSyntaxError{
				Hint: hint,
				Pos:  int(ref.List.LBracket),
				Msg:  "nested lists are not supported",
			}
		}
	}
	if canon, ok := scalarAliases[strings.ToLower(ref.Named.Value)]; ok {
		t.Base, t.Kind = canon, Scalar
	} else {
		t.Base, t.Kind = ref.Named.Value, Object
	}
	return t, nil
}

// MustParseType is like ParseType but panics if the hint is malformed.
func MustParseType(hint string) Type {
	t, err := ParseType(hint)
	if err != nil {
		panic(err)
	}
	return t
}
