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
	"github.com/go-openapi/inflect"
	"github.com/graphql-go/graphql"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/internal/gqlang"
)

// Requirement records an explicit Required or Optional call on an attribute.
type Requirement int

// Requirements.
const (
	// Inferred leaves nullability to the type hint or the name.
	Inferred Requirement = iota
	Required
	Optional
)

// An Attribute accumulates the declaration of a single field or input member.
// Its setters return the attribute so that calls can be chained. Build
// produces the read-only Descriptor.
type Attribute struct {
	name        string
	hint        string
	typ         Type
	description string
	property    string
	requirement Requirement
	camelize    bool
	subtype     string
}

// NewAttribute returns a new attribute with the given declared name. The
// field name is camelized unless Camelize(false) is called.
func NewAttribute(name string) *Attribute {
	return &Attribute{name: name, camelize: true}
}

// Name returns the name the attribute was declared with, including any
// "!" or "?" marker.
func (a *Attribute) Name() string {
	return a.name
}

// Key returns the name that identifies the attribute within a registry.
func (a *Attribute) Key() string {
	return InferName(a.name).Name
}

// Type sets the type hint. The hint is parsed by Build.
func (a *Attribute) Type(hint string) *Attribute {
	a.hint = hint
	a.typ = Type{}
	return a
}

// TypeOf sets an already resolved type, replacing any hint.
func (a *Attribute) TypeOf(t Type) *Attribute {
	a.typ = t
	a.hint = ""
	return a
}

// Description sets the field's description.
func (a *Attribute) Description(s string) *Attribute {
	a.description = s
	return a
}

// Property sets the name of the source property the field reads from.
// It defaults to the declared name without markers.
func (a *Attribute) Property(p string) *Attribute {
	a.property = p
	return a
}

// Required marks the field as non-null, regardless of its hint or name.
func (a *Attribute) Required() *Attribute {
	a.requirement = Required
	return a
}

// Optional marks the field as nullable, regardless of its hint or name.
func (a *Attribute) Optional() *Attribute {
	a.requirement = Optional
	return a
}

// Camelize sets whether the field name is converted to lower camel case.
func (a *Attribute) Camelize(b bool) *Attribute {
	a.camelize = b
	return a
}

// Subtype selects which input type of a referenced model is used when the
// attribute is an input argument.
func (a *Attribute) Subtype(s string) *Attribute {
	a.subtype = s
	return a
}

// Requirement returns the last Required or Optional call, if any.
func (a *Attribute) Requirement() Requirement {
	return a.requirement
}

// clone returns a copy of a that shares no state with it.
func (a *Attribute) clone() *Attribute {
	a2 := new(Attribute)
	*a2 = *a
	return a2
}

// Build merges the attribute's settings into a Descriptor. An explicit type
// wins over name inference; an explicit Required or Optional call wins over
// both.
func (a *Attribute) Build() (Descriptor, error) {
	inf := InferName(a.name)
	if !gqlang.IsName(inf.Name) {
		return Descriptor{}, xerrors.Errorf("attribute %q: invalid name", a.name)
	}
	typ := a.typ
	if typ.IsZero() {
		var err error
		typ, err = ParseType(a.hint)
		if err != nil {
			return Descriptor{}, xerrors.Errorf("attribute %s: %w", inf.Name, err)
		}
	}
	if typ.IsZero() {
		typ = inf.Type()
	}
	switch a.requirement {
	case Required:
		typ.OuterNullable = false
	case Optional:
		typ.OuterNullable = true
	}
	if a.subtype != "" {
		typ.Subtype = a.subtype
	}
	d := Descriptor{
		Name:        inf.Name,
		Property:    a.property,
		Description: a.description,
		Type:        typ,
		Camelize:    a.camelize,
	}
	if a.camelize {
		d.Name = inflect.CamelizeDownFirst(inf.Name)
	}
	if d.Property == "" {
		d.Property = inf.Name
	}
	return d, nil
}

// Descriptor is the final, read-only form of an attribute.
type Descriptor struct {
	// Name is the GraphQL field name.
	Name        string
	Property    string
	Description string
	Type        Type
	Camelize    bool
}

// Args is the information needed to define a field or an argument.
type Args struct {
	Name        string
	Type        Type
	Description string
	Property    string
	Camelize    bool
}

// FieldArgs returns the arguments for defining an output field.
func (d Descriptor) FieldArgs() Args {
	return Args{
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		Property:    d.Property,
		Camelize:    d.Camelize,
	}
}

// InputArgs returns the arguments for defining an input field or argument.
// Model references point at the model's input type rather than its output
// type.
func (d Descriptor) InputArgs() Args {
	args := d.FieldArgs()
	args.Type = args.Type.ForInput()
	return args
}

// Field converts output field arguments into a graphql-go field.
func (args Args) Field(r TypeResolver) (*graphql.Field, error) {
	typ, err := args.Type.Output(r)
	if err != nil {
		return nil, xerrors.Errorf("field %s: %w", args.Name, err)
	}
	f := &graphql.Field{
		Name:        args.Name,
		Type:        typ,
		Description: args.Description,
	}
	if args.Property != args.Name {
		f.Resolve = propertyResolver(args.Property)
	}
	return f, nil
}

// InputField converts input arguments into a graphql-go input object field.
func (args Args) InputField(r TypeResolver) (*graphql.InputObjectFieldConfig, error) {
	typ, err := args.Type.Input(r)
	if err != nil {
		return nil, xerrors.Errorf("input field %s: %w", args.Name, err)
	}
	return &graphql.InputObjectFieldConfig{
		Type:        typ,
		Description: args.Description,
	}, nil
}

// Argument converts input arguments into a graphql-go field argument.
func (args Args) Argument(r TypeResolver) (*graphql.ArgumentConfig, error) {
	typ, err := args.Type.Input(r)
	if err != nil {
		return nil, xerrors.Errorf("argument %s: %w", args.Name, err)
	}
	return &graphql.ArgumentConfig{
		Type:        typ,
		Description: args.Description,
	}, nil
}

// propertyResolver reads the field from a differently named property of the
// source value.
func propertyResolver(property string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		p.Info.FieldName = property
		return graphql.DefaultResolveFn(p)
	}
}
