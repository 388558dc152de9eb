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

package router

import (
	"bytes"
	"context"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"go.opencensus.io/trace"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/controller"
)

// Schema is a built schema. The embedded graphql.Schema executes requests.
// graphql-go stores fields in maps, so its introspection lists fields sorted
// by name; Definition holds the same types with fields in the order they
// were declared.
type Schema struct {
	graphql.Schema
	Definition *ast.Schema
}

// FieldNames returns the names of a type's fields in declaration order or nil
// if the schema has no type with the given name. Introspection fields are
// omitted.
func (s *Schema) FieldNames(typeName string) []string {
	def := s.Definition.Types[typeName]
	if def == nil {
		return nil
	}
	var names []string
	for _, f := range def.Fields {
		if !strings.HasPrefix(f.Name, "__") {
			names = append(names, f.Name)
		}
	}
	return names
}

// Build assembles the routes and models into an executable schema. All
// models must be registered before Build is called; after it returns, the
// schema and the types it contains are safe to use from multiple goroutines.
func (rt *Router) Build(ctx context.Context) (*Schema, error) {
	_, span := trace.StartSpan(ctx, "graphql-rails/router.Build")
	defer span.End()
	span.AddAttributes(
		trace.Int64Attribute("graphql.queries", int64(len(rt.queries))),
		trace.Int64Attribute("graphql.mutations", int64(len(rt.mutations))),
	)
	schema, err := rt.build()
	if err != nil {
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		return nil, xerrors.Errorf("build schema: %w", err)
	}
	rt.log.WithFields(logrus.Fields{
		"models":    len(rt.models.Models()),
		"queries":   len(rt.queries),
		"mutations": len(rt.mutations),
	}).Info("Built GraphQL schema")
	return schema, nil
}

func (rt *Router) build() (*Schema, error) {
	if len(rt.queries) == 0 {
		return nil, xerrors.New("no query routes")
	}
	// First pass: every model reference must resolve before any type is
	// created, so that the error names the reference.
	if err := rt.models.Validate(); err != nil {
		return nil, err
	}
	// Second pass: create the types. Each type fills in its fields when the
	// schema walks it, so references may point in any direction.
	types, err := rt.modelTypes()
	if err != nil {
		return nil, err
	}
	query, err := rt.rootType("Query", rt.queries)
	if err != nil {
		return nil, err
	}
	var mutation *graphql.Object
	if len(rt.mutations) > 0 {
		mutation, err = rt.rootType("Mutation", rt.mutations)
		if err != nil {
			return nil, err
		}
	}
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types:    types,
	})
	if ferr := rt.models.Err(); ferr != nil {
		return nil, ferr
	}
	if err != nil {
		return nil, err
	}
	def, err := rt.orderedSchema()
	if err != nil {
		return nil, err
	}
	return &Schema{Schema: schema, Definition: def}, nil
}

// orderedSchema loads the schema's SDL rendition, which keeps declaration
// order.
func (rt *Router) orderedSchema() (*ast.Schema, error) {
	doc, err := rt.SchemaDocument()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	formatter.NewFormatter(buf).FormatSchemaDocument(doc)
	def, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: buf.String()})
	if err != nil {
		return nil, xerrors.Errorf("load schema definition: %w", err)
	}
	return def, nil
}

// modelTypes returns the types of every registered model, including models
// that no route refers to.
func (rt *Router) modelTypes() ([]graphql.Type, error) {
	var types []graphql.Type
	for _, c := range rt.models.Models() {
		obj, err := rt.models.OutputType(c.Name)
		if err != nil {
			return nil, err
		}
		types = append(types, obj)
		for _, in := range c.Inputs() {
			it, err := rt.models.InputType(c.Name, in.Subtype)
			if err != nil {
				return nil, err
			}
			types = append(types, it)
		}
	}
	return types, nil
}

func (rt *Router) rootType(name string, routes []*Route) (*graphql.Object, error) {
	fields := make(graphql.Fields, len(routes))
	for _, route := range routes {
		f, err := rt.field(route)
		if err != nil {
			return nil, xerrors.Errorf("%s.%s: %w", name, route.FieldName(), err)
		}
		if fields[f.Name] != nil {
			return nil, xerrors.Errorf("%s: multiple routes named %q", name, f.Name)
		}
		fields[f.Name] = f
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name:   name,
		Fields: fields,
	}), nil
}

func (rt *Router) field(route *Route) (*graphql.Field, error) {
	if route.Action == nil {
		return nil, xerrors.New("no action configured")
	}
	def, err := route.Action.Build()
	if err != nil {
		return nil, err
	}
	var typ graphql.Output
	if def.Paginated {
		typ, err = rt.models.ConnectionType(def.ReturnType.Base)
	} else {
		typ, err = def.ReturnType.Output(rt.models)
	}
	if err != nil {
		return nil, xerrors.Errorf("return type: %w", err)
	}
	args := make(graphql.FieldConfigArgument, len(def.Inputs))
	for _, d := range def.Inputs {
		arg, err := d.InputArgs().Argument(rt.models)
		if err != nil {
			return nil, err
		}
		args[d.Name] = arg
	}
	return &graphql.Field{
		Name:        route.FieldName(),
		Type:        typ,
		Args:        args,
		Description: def.Description,
		Resolve:     rt.resolver(route),
	}, nil
}

func (rt *Router) resolver(route *Route) graphql.FieldResolveFn {
	if rt.actionLog == nil {
		return route.Resolve
	}
	resolve := route.Resolve
	if resolve == nil {
		resolve = graphql.DefaultResolveFn
	}
	return func(p graphql.ResolveParams) (interface{}, error) {
		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}
		ev := controller.ActionEvent{
			Controller: route.Controller(),
			Action:     route.ActionName(),
			Params:     p.Args,
		}
		var result interface{}
		err := rt.actionLog.Run(ctx, ev, func(ctx context.Context) error {
			p.Context = ctx
			var err error
			result, err = resolve(p)
			return err
		})
		return result, err
	}
}
