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

package model

import (
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/attributes"
)

const reservedPrefix = "__"

// Registry is the table of models known to a schema. It builds each model's
// GraphQL types the first time they are requested and returns the same type
// on every later request.
//
// A Registry is not safe for concurrent use. The types it returns are
// read-only once a schema has been built from them.
type Registry struct {
	log    logrus.FieldLogger
	models map[string]*Config
	order  []string

	outputs     map[string]*graphql.Object
	inputs      map[inputKey]*graphql.InputObject
	connections map[string]*graphql.Object
	failures    []error
}

type inputKey struct {
	model   string
	subtype string
}

// An Option customizes a Registry.
type Option func(*Registry)

// WithLogger sets the logger the registry reports type creation to.
// The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:         logrus.StandardLogger(),
		models:      make(map[string]*Config),
		outputs:     make(map[string]*graphql.Object),
		inputs:      make(map[inputKey]*graphql.InputObject),
		connections: make(map[string]*graphql.Object),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a model to the registry. It is an error to register two
// models with the same name.
func (r *Registry) Register(c *Config) error {
	switch {
	case c.Name == "":
		return xerrors.New("register model: empty name")
	case strings.HasPrefix(c.Name, reservedPrefix):
		return xerrors.Errorf("register model: use of reserved name %q", c.Name)
	case r.models[c.Name] != nil:
		return xerrors.Errorf("register model: multiple models with name %q", c.Name)
	}
	r.models[c.Name] = c
	r.order = append(r.order, c.Name)
	return nil
}

// Lookup returns the model with the given name or nil if none is registered.
func (r *Registry) Lookup(name string) *Config {
	return r.models[name]
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []*Config {
	list := make([]*Config, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.models[name])
	}
	return list
}

// Validate checks that every model reference in every registered model
// resolves. It returns an *attributes.UnknownTypeError (possibly wrapped) for
// the first reference that does not.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		c := r.models[name]
		descs, err := c.attrs.Descriptors()
		if err != nil {
			return xerrors.Errorf("model %s: %w", name, err)
		}
		for _, d := range descs {
			if err := r.CheckType(d.FieldArgs().Type); err != nil {
				return xerrors.Errorf("model %s: field %s: %w", name, d.Name, err)
			}
		}
		for _, in := range c.Inputs() {
			descs, err := in.attrs.Descriptors()
			if err != nil {
				return xerrors.Errorf("model %s: input %s: %w", name, c.InputTypeName(in.Subtype), err)
			}
			for _, d := range descs {
				if err := r.CheckType(d.InputArgs().Type); err != nil {
					return xerrors.Errorf("model %s: input %s: field %s: %w", name, c.InputTypeName(in.Subtype), d.Name, err)
				}
			}
		}
	}
	return nil
}

// CheckType reports whether t refers only to scalars and registered models.
func (r *Registry) CheckType(t attributes.Type) error {
	switch t.Kind {
	case attributes.Object:
		if r.models[t.Base] == nil {
			return &attributes.UnknownTypeError{Name: t.Base}
		}
	case attributes.InputObject:
		c := r.models[t.Base]
		if c == nil {
			return &attributes.UnknownTypeError{Name: t.Base, Input: true}
		}
		if !c.HasInput(t.Subtype) {
			return &attributes.UnknownTypeError{Name: c.InputTypeName(t.Subtype), Input: true}
		}
	}
	return nil
}

// TypeName returns the GraphQL name of the type t refers to, without any
// list or non-null wrapping.
func (r *Registry) TypeName(t attributes.Type) (string, error) {
	if err := r.CheckType(t); err != nil {
		return "", err
	}
	if t.Kind == attributes.InputObject {
		return r.models[t.Base].InputTypeName(t.Subtype), nil
	}
	return t.Base, nil
}

// OutputType returns the object type of the named model.
func (r *Registry) OutputType(name string) (graphql.Output, error) {
	return r.object(name)
}

func (r *Registry) object(name string) (*graphql.Object, error) {
	if obj := r.outputs[name]; obj != nil {
		return obj, nil
	}
	c := r.models[name]
	if c == nil {
		return nil, &attributes.UnknownTypeError{Name: name}
	}
	typ, err := c.attrs.BuildType(attributes.Object, c.Name, c.Description, r)
	if err != nil {
		return nil, xerrors.Errorf("model %s: %w", name, err)
	}
	obj := typ.(*graphql.Object)
	r.outputs[name] = obj
	r.log.WithField("type", c.Name).Debug("Built object type")
	return obj, nil
}

// InputType returns the input type of the named model with the given subtype.
func (r *Registry) InputType(name, subtype string) (graphql.Input, error) {
	key := inputKey{model: name, subtype: subtype}
	if in := r.inputs[key]; in != nil {
		return in, nil
	}
	c := r.models[name]
	if c == nil {
		return nil, &attributes.UnknownTypeError{Name: name, Input: true}
	}
	inConfig := c.inputs[subtype]
	if inConfig == nil {
		return nil, &attributes.UnknownTypeError{Name: c.InputTypeName(subtype), Input: true}
	}
	typeName := c.InputTypeName(subtype)
	typ, err := inConfig.attrs.BuildType(attributes.InputObject, typeName, inConfig.Description, r)
	if err != nil {
		return nil, xerrors.Errorf("model %s: %w", name, err)
	}
	in := typ.(*graphql.InputObject)
	r.inputs[key] = in
	r.log.WithField("type", typeName).Debug("Built input type")
	return in, nil
}

// ConnectionType returns the Relay connection type for the named model, as
// used by paginated actions.
func (r *Registry) ConnectionType(name string) (*graphql.Object, error) {
	if conn := r.connections[name]; conn != nil {
		return conn, nil
	}
	node, err := r.object(name)
	if err != nil {
		return nil, err
	}
	defs := relay.ConnectionDefinitions(relay.ConnectionConfig{
		Name:     name,
		NodeType: node,
	})
	r.connections[name] = defs.ConnectionType
	r.log.WithField("type", defs.ConnectionType.Name()).Debug("Built connection type")
	return defs.ConnectionType, nil
}

// ReportFailure records an error raised while a type resolved its fields.
func (r *Registry) ReportFailure(err error) {
	r.failures = append(r.failures, err)
}

// Err returns the first error recorded by ReportFailure, if any.
func (r *Registry) Err() error {
	if len(r.failures) == 0 {
		return nil
	}
	return r.failures[0]
}
