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
	"github.com/graphql-go/graphql"
	"golang.org/x/xerrors"
)

// Registry is an ordered set of attributes keyed by name. The zero value is
// an empty registry.
type Registry struct {
	order []string
	attrs map[string]*Attribute
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return new(Registry)
}

// Declare adds a new attribute with the given name and returns it for
// further configuration. If an attribute with the same key was already
// declared, it is discarded and the new one takes its place in the order.
func (reg *Registry) Declare(name string) *Attribute {
	a := NewAttribute(name)
	reg.Add(a)
	return a
}

// Add inserts a into the registry with the same replacement rules as Declare.
func (reg *Registry) Add(a *Attribute) {
	key := a.Key()
	if reg.attrs == nil {
		reg.attrs = make(map[string]*Attribute)
	}
	if _, exists := reg.attrs[key]; !exists {
		reg.order = append(reg.order, key)
	}
	reg.attrs[key] = a
}

// Get returns the attribute with the given key or nil if none was declared.
func (reg *Registry) Get(key string) *Attribute {
	return reg.attrs[key]
}

// Len returns the number of attributes in the registry.
func (reg *Registry) Len() int {
	return len(reg.order)
}

// All returns the attributes in declaration order.
func (reg *Registry) All() []*Attribute {
	list := make([]*Attribute, 0, len(reg.order))
	for _, key := range reg.order {
		list = append(list, reg.attrs[key])
	}
	return list
}

// Copy returns a deep copy of the registry. Changes to the copy's attributes
// do not affect reg.
func (reg *Registry) Copy() *Registry {
	reg2 := &Registry{
		order: append([]string(nil), reg.order...),
		attrs: make(map[string]*Attribute, len(reg.attrs)),
	}
	for key, a := range reg.attrs {
		reg2.attrs[key] = a.clone()
	}
	return reg2
}

// Descriptors builds every attribute in declaration order.
func (reg *Registry) Descriptors() ([]Descriptor, error) {
	descs := make([]Descriptor, 0, len(reg.order))
	seen := make(map[string]string, len(reg.order))
	for _, key := range reg.order {
		d, err := reg.attrs[key].Build()
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[d.Name]; dup {
			return nil, xerrors.Errorf("attributes %s and %s both define field %s", prev, key, d.Name)
		}
		seen[d.Name] = key
		descs = append(descs, d)
	}
	return descs, nil
}

// Fields returns the attributes as graphql-go output fields.
func (reg *Registry) Fields(r TypeResolver) (graphql.Fields, error) {
	descs, err := reg.Descriptors()
	if err != nil {
		return nil, err
	}
	return outputFields(descs, r)
}

// InputFields returns the attributes as graphql-go input object fields.
func (reg *Registry) InputFields(r TypeResolver) (graphql.InputObjectConfigFieldMap, error) {
	descs, err := reg.Descriptors()
	if err != nil {
		return nil, err
	}
	return inputFields(descs, r)
}

// Arguments returns the attributes as graphql-go field arguments.
func (reg *Registry) Arguments(r TypeResolver) (graphql.FieldConfigArgument, error) {
	descs, err := reg.Descriptors()
	if err != nil {
		return nil, err
	}
	args := make(graphql.FieldConfigArgument, len(descs))
	for _, d := range descs {
		arg, err := d.InputArgs().Argument(r)
		if err != nil {
			return nil, err
		}
		args[d.Name] = arg
	}
	return args, nil
}

// BuildType creates an object type (kind Object) or an input object type
// (kind InputObject) from the registry. Attributes are built immediately, but
// model references are resolved through r only once the schema asks for the
// type's fields, which permits references to types that do not exist yet.
func (reg *Registry) BuildType(kind Kind, name, description string, r TypeResolver) (graphql.Type, error) {
	descs, err := reg.Descriptors()
	if err != nil {
		return nil, xerrors.Errorf("build %s: %w", name, err)
	}
	switch kind {
	case Object:
		return graphql.NewObject(graphql.ObjectConfig{
			Name:        name,
			Description: description,
			Fields: graphql.FieldsThunk(func() graphql.Fields {
				fields, err := outputFields(descs, r)
				if err != nil {
					reportFailure(r, xerrors.Errorf("build %s: %w", name, err))
				}
				return fields
			}),
		}), nil
	case InputObject:
		return graphql.NewInputObject(graphql.InputObjectConfig{
			Name:        name,
			Description: description,
			Fields: graphql.InputObjectConfigFieldMapThunk(func() graphql.InputObjectConfigFieldMap {
				fields, err := inputFields(descs, r)
				if err != nil {
					reportFailure(r, xerrors.Errorf("build %s: %w", name, err))
				}
				return fields
			}),
		}), nil
	default:
		return nil, xerrors.Errorf("build %s: cannot build %v type", name, kind)
	}
}

func outputFields(descs []Descriptor, r TypeResolver) (graphql.Fields, error) {
	fields := make(graphql.Fields, len(descs))
	for _, d := range descs {
		f, err := d.FieldArgs().Field(r)
		if err != nil {
			return nil, err
		}
		fields[d.Name] = f
	}
	return fields, nil
}

func inputFields(descs []Descriptor, r TypeResolver) (graphql.InputObjectConfigFieldMap, error) {
	fields := make(graphql.InputObjectConfigFieldMap, len(descs))
	for _, d := range descs {
		f, err := d.InputArgs().InputField(r)
		if err != nil {
			return nil, err
		}
		fields[d.Name] = f
	}
	return fields, nil
}
