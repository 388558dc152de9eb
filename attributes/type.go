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
	"fmt"

	"github.com/graphql-go/graphql"
	"golang.org/x/xerrors"
)

// Built-in scalar type names.
const (
	StringType  = "String"
	IntType     = "Int"
	FloatType   = "Float"
	BooleanType = "Boolean"
	IDType      = "ID"
)

var scalars = map[string]*graphql.Scalar{
	StringType:  graphql.String,
	IntType:     graphql.Int,
	FloatType:   graphql.Float,
	BooleanType: graphql.Boolean,
	IDType:      graphql.ID,
}

// Kind classifies the base of a Type.
type Kind int

// Kinds of base type.
const (
	// Scalar is one of the built-in scalar types.
	Scalar Kind = iota
	// Object is a reference to a model's output type.
	Object
	// InputObject is a reference to one of a model's input types.
	InputObject
)

// String returns the GraphQL introspection name of the kind.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "SCALAR"
	case Object:
		return "OBJECT"
	case InputObject:
		return "INPUT_OBJECT"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a resolved type reference. The zero value means that no explicit
// type was given.
//
// Types can be compared for equality using ==.
type Type struct {
	// Base is the canonical scalar name or the model name.
	Base string
	Kind Kind
	List bool
	// InnerNullable reports whether list elements may be null.
	// It is ignored if List is false.
	InnerNullable bool
	OuterNullable bool
	// Subtype selects which input variant of a model an InputObject refers to.
	Subtype string
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.Base == ""
}

// String returns the type reference string.
func (t Type) String() string {
	if t.IsZero() {
		return "<none>"
	}
	s := t.Base
	if t.List {
		if !t.InnerNullable {
			s += "!"
		}
		s = "[" + s + "]"
	}
	if !t.OuterNullable {
		s += "!"
	}
	return s
}

// ForInput returns the input equivalent of t. Scalars are unchanged; model
// references become references to the model's input type.
func (t Type) ForInput() Type {
	if t.Kind == Object {
		t.Kind = InputObject
	}
	return t
}

// A TypeResolver maps model references to the schema types built for them.
type TypeResolver interface {
	OutputType(name string) (graphql.Output, error)
	InputType(name, subtype string) (graphql.Input, error)
}

// A FailureReporter collects errors that occur while a lazily built type
// resolves its fields. TypeResolvers that do not implement FailureReporter
// cause such errors to panic.
type FailureReporter interface {
	ReportFailure(err error)
}

// Output converts t into a graphql-go output type.
func (t Type) Output(r TypeResolver) (graphql.Output, error) {
	var base graphql.Type
	switch t.Kind {
	case Scalar:
		s := scalars[t.Base]
		if s == nil {
			return nil, &UnknownTypeError{Name: t.Base}
		}
		base = s
	case Object:
		obj, err := r.OutputType(t.Base)
		if err != nil {
			return nil, err
		}
		base = obj
	default:
		return nil, xerrors.Errorf("%v is not an output type", t)
	}
	return t.wrap(base), nil
}

// Input converts t into a graphql-go input type.
func (t Type) Input(r TypeResolver) (graphql.Input, error) {
	var base graphql.Type
	switch t.Kind {
	case Scalar:
		s := scalars[t.Base]
		if s == nil {
			return nil, &UnknownTypeError{Name: t.Base}
		}
		base = s
	case InputObject:
		in, err := r.InputType(t.Base, t.Subtype)
		if err != nil {
			return nil, err
		}
		base = in
	default:
		return nil, xerrors.Errorf("%v is not an input type", t)
	}
	return t.wrap(base), nil
}

func (t Type) wrap(base graphql.Type) graphql.Type {
	typ := base
	if t.List {
		if !t.InnerNullable {
			typ = graphql.NewNonNull(typ)
		}
		typ = graphql.NewList(typ)
	}
	if !t.OuterNullable {
		typ = graphql.NewNonNull(typ)
	}
	return typ
}

func reportFailure(r TypeResolver, err error) {
	if fr, ok := r.(FailureReporter); ok {
		fr.ReportFailure(err)
		return
	}
	panic(err)
}
