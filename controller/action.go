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

// Package controller configures the GraphQL operations that controller
// actions expose: their arguments, their return types and pagination.
package controller

import (
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/attributes"
)

// InputFormat selects how argument names are presented in the schema.
type InputFormat int

// Input formats.
const (
	// Camelized converts argument names to lower camel case.
	Camelized InputFormat = iota
	// Original keeps argument names as declared.
	Original
)

// PaginationOptions configures a paginated action.
type PaginationOptions struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Action is the configuration of a single controller action. Its setters
// return the action so that calls can be chained. Errors from setters are
// reported by Build and ReturnType.
type Action struct {
	attrs       *attributes.Registry
	inputFormat InputFormat
	pagination  *PaginationOptions
	description string
	model       string
	returns     string
	err         error
}

// NewAction returns an action with no arguments and no return type.
func NewAction() *Action {
	return &Action{attrs: attributes.NewRegistry()}
}

// InputFormat sets how arguments declared after this call are named.
func (a *Action) InputFormat(f InputFormat) *Action {
	a.inputFormat = f
	return a
}

// Permit declares arguments whose types are inferred from their names.
func (a *Action) Permit(names ...string) *Action {
	for _, name := range names {
		a.Input(name)
	}
	return a
}

// PermitInput declares an argument with the given type hint.
func (a *Action) PermitInput(name, hint string) *Action {
	a.Input(name).Type(hint)
	return a
}

// Input declares an argument and returns it for further configuration.
// Redeclaring an argument replaces it.
func (a *Action) Input(name string) *attributes.Attribute {
	return a.attrs.Declare(name).Camelize(a.inputFormat != Original)
}

// Inputs returns the action's arguments.
func (a *Action) Inputs() *attributes.Registry {
	return a.attrs
}

// Paginated makes the action return a Relay connection of its model and
// permits the before, after, first and last arguments.
func (a *Action) Paginated(opts PaginationOptions) *Action {
	a.pagination = &opts
	return a.Permit("before", "after").
		PermitInput("first", "Int").
		PermitInput("last", "Int")
}

// IsPaginated reports whether Paginated was called.
func (a *Action) IsPaginated() bool {
	return a.pagination != nil
}

// Pagination returns the options passed to Paginated.
func (a *Action) Pagination() (_ PaginationOptions, ok bool) {
	if a.pagination == nil {
		return PaginationOptions{}, false
	}
	return *a.pagination, true
}

// Description sets the description of the operation.
func (a *Action) Description(s string) *Action {
	a.description = s
	return a
}

// Returns sets the return type hint, like "User!" or "[User!]!". It replaces
// any earlier return type setting, including a failed ReturnsSingle or
// ReturnsList.
func (a *Action) Returns(hint string) *Action {
	a.returns = hint
	a.err = nil
	return a
}

// Model binds the action to the named model.
func (a *Action) Model(name string) *Action {
	a.model = name
	return a
}

// ModelName returns the name given to Model.
func (a *Action) ModelName() (string, error) {
	if a.model == "" {
		return "", &MissingConfigurationError{}
	}
	return a.model, nil
}

// ReturnsSingle makes the action return one instance of its model.
func (a *Action) ReturnsSingle(required bool) *Action {
	name, err := a.ModelName()
	if err != nil {
		a.err = xerrors.Errorf("returns single: %w", err)
		return a
	}
	if required {
		name += "!"
	}
	return a.Returns(name)
}

// ReturnsList makes the action return a list of its model. The two flags
// control the nullability of the list elements and the list itself
// independently.
func (a *Action) ReturnsList(requiredInner, requiredList bool) *Action {
	name, err := a.ModelName()
	if err != nil {
		a.err = xerrors.Errorf("returns list: %w", err)
		return a
	}
	if requiredInner {
		name += "!"
	}
	hint := "[" + name + "]"
	if requiredList {
		hint += "!"
	}
	return a.Returns(hint)
}

// ReturnType parses the return type hint. For a paginated action, only the
// model named by the hint matters: the operation returns that model's
// connection type.
func (a *Action) ReturnType() (attributes.Type, error) {
	if a.err != nil {
		return attributes.Type{}, a.err
	}
	if a.returns == "" {
		return attributes.Type{}, &DeprecatedDefaultModelError{}
	}
	t, err := attributes.ParseType(a.returns)
	if err != nil {
		return attributes.Type{}, xerrors.Errorf("return type: %w", err)
	}
	if a.pagination != nil && t.Kind != attributes.Object {
		return attributes.Type{}, xerrors.Errorf("return type: paginated action must return a model, not %v", t)
	}
	return t, nil
}

// Copy returns a deep copy of the action.
func (a *Action) Copy() *Action {
	a2 := new(Action)
	*a2 = *a
	a2.attrs = a.attrs.Copy()
	if a.pagination != nil {
		opts := *a.pagination
		a2.pagination = &opts
	}
	return a2
}

// Definition is the read-only form of an Action.
type Definition struct {
	Description string
	Inputs      []attributes.Descriptor
	ReturnType  attributes.Type
	Paginated   bool
	Pagination  PaginationOptions
}

// Build validates the action's configuration.
func (a *Action) Build() (Definition, error) {
	rt, err := a.ReturnType()
	if err != nil {
		return Definition{}, err
	}
	inputs, err := a.attrs.Descriptors()
	if err != nil {
		return Definition{}, xerrors.Errorf("inputs: %w", err)
	}
	def := Definition{
		Description: a.description,
		Inputs:      inputs,
		ReturnType:  rt,
	}
	def.Pagination, def.Paginated = a.Pagination()
	return def, nil
}
