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

// Package gqlang provides a parser for GraphQL type references, the
// "[Name!]!" notation used in field and argument declarations.
// https://graphql.github.io/graphql-spec/June2018/#Type
package gqlang

// A Name is an identifier.
// https://graphql.github.io/graphql-spec/June2018/#sec-Names
type Name struct {
	Value string
	Start Pos
}

// End returns the position of the byte after the last character of the name.
func (n *Name) End() Pos {
	return n.Start + Pos(len(n.Value))
}

// String returns the name or the empty string if the name is nil.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return n.Value
}

// A TypeRef is a named type, a list type, or a non-null type.
// https://graphql.github.io/graphql-spec/June2018/#Type
type TypeRef struct {
	Named   *Name
	List    *ListType
	NonNull *NonNullType
}

// Start returns the position of the type reference's first token.
func (tr *TypeRef) Start() Pos {
	switch {
	case tr.Named != nil:
		return tr.Named.Start
	case tr.List != nil:
		return tr.List.LBracket
	case tr.NonNull != nil && tr.NonNull.Named != nil:
		return tr.NonNull.Named.Start
	case tr.NonNull != nil && tr.NonNull.List != nil:
		return tr.NonNull.List.LBracket
	default:
		return -1
	}
}

// String returns the type reference in GraphQL notation.
func (tr *TypeRef) String() string {
	switch {
	case tr == nil:
		return ""
	case tr.Named != nil:
		return tr.Named.Value
	case tr.List != nil:
		return tr.List.String()
	case tr.NonNull != nil && tr.NonNull.Named != nil:
		return tr.NonNull.Named.Value + "!"
	case tr.NonNull != nil && tr.NonNull.List != nil:
		return tr.NonNull.List.String() + "!"
	default:
		return ""
	}
}

// ListType declares a homogenous sequence of another type.
// https://graphql.github.io/graphql-spec/June2018/#ListType
type ListType struct {
	LBracket Pos
	Type     *TypeRef
	RBracket Pos
}

func (lt *ListType) String() string {
	return "[" + lt.Type.String() + "]"
}

// NonNullType declares a named or list type that cannot be null.
// https://graphql.github.io/graphql-spec/June2018/#Type
type NonNullType struct {
	Named *Name
	List  *ListType
	Pos   Pos
}
