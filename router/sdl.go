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
	"io"
	"sort"

	"github.com/graphql-go/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-rails/attributes"
	"zombiezen.com/go/graphql-rails/controller"
	"zombiezen.com/go/graphql-rails/model"
)

// WriteSDL writes the schema in GraphQL schema definition language. Models and
// routes appear in the order they were declared. The Relay connection types
// list their fields by name.
func (rt *Router) WriteSDL(w io.Writer) error {
	doc, err := rt.SchemaDocument()
	if err != nil {
		return xerrors.Errorf("write schema: %w", err)
	}
	formatter.NewFormatter(w).FormatSchemaDocument(doc)
	return nil
}

// SchemaDocument returns the schema as a GraphQL document. The types are the
// same ones Build produces.
func (rt *Router) SchemaDocument() (*ast.SchemaDocument, error) {
	if len(rt.queries) == 0 {
		return nil, xerrors.New("no query routes")
	}
	if err := rt.models.Validate(); err != nil {
		return nil, err
	}
	doc := new(ast.SchemaDocument)
	for _, c := range rt.models.Models() {
		defs, err := rt.modelDefinitions(c)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, defs...)
	}

	var connections []string
	seen := make(map[string]bool)
	roots := []struct {
		name   string
		routes []*Route
	}{
		{"Query", rt.queries},
		{"Mutation", rt.mutations},
	}
	var rootDefs ast.DefinitionList
	for _, root := range roots {
		if len(root.routes) == 0 {
			continue
		}
		def := &ast.Definition{Kind: ast.Object, Name: root.name}
		for _, route := range root.routes {
			f, conn, err := rt.fieldDefinition(route)
			if err != nil {
				return nil, xerrors.Errorf("%s.%s: %w", root.name, route.FieldName(), err)
			}
			if def.Fields.ForName(f.Name) != nil {
				return nil, xerrors.Errorf("%s: multiple routes named %q", root.name, f.Name)
			}
			def.Fields = append(def.Fields, f)
			if conn != "" && !seen[conn] {
				seen[conn] = true
				connections = append(connections, conn)
			}
		}
		rootDefs = append(rootDefs, def)
	}

	converted := make(map[string]bool)
	for _, name := range connections {
		defs, err := rt.connectionDefinitions(name, converted)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, defs...)
	}
	doc.Definitions = append(doc.Definitions, rootDefs...)
	return doc, nil
}

func (rt *Router) modelDefinitions(c *model.Config) (ast.DefinitionList, error) {
	descs, err := c.Attributes().Descriptors()
	if err != nil {
		return nil, xerrors.Errorf("model %s: %w", c.Name, err)
	}
	obj := &ast.Definition{
		Kind:        ast.Object,
		Name:        c.Name,
		Description: c.Description,
	}
	for _, d := range descs {
		args := d.FieldArgs()
		typ, err := rt.astType(args.Type)
		if err != nil {
			return nil, xerrors.Errorf("model %s: field %s: %w", c.Name, d.Name, err)
		}
		obj.Fields = append(obj.Fields, &ast.FieldDefinition{
			Name:        args.Name,
			Description: args.Description,
			Type:        typ,
		})
	}
	defs := ast.DefinitionList{obj}
	for _, in := range c.Inputs() {
		name := c.InputTypeName(in.Subtype)
		descs, err := in.Attributes().Descriptors()
		if err != nil {
			return nil, xerrors.Errorf("model %s: input %s: %w", c.Name, name, err)
		}
		def := &ast.Definition{
			Kind:        ast.InputObject,
			Name:        name,
			Description: in.Description,
		}
		for _, d := range descs {
			args := d.InputArgs()
			typ, err := rt.astType(args.Type)
			if err != nil {
				return nil, xerrors.Errorf("model %s: input %s: field %s: %w", c.Name, name, d.Name, err)
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        args.Name,
				Description: args.Description,
				Type:        typ,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// fieldDefinition returns the field for a route and, for paginated actions,
// the name of the model whose connection it returns.
func (rt *Router) fieldDefinition(route *Route) (_ *ast.FieldDefinition, conn string, _ error) {
	if route.Action == nil {
		return nil, "", xerrors.New("no action configured")
	}
	def, err := route.Action.Build()
	if err != nil {
		return nil, "", err
	}
	f := &ast.FieldDefinition{
		Name:        route.FieldName(),
		Description: def.Description,
	}
	if def.Paginated {
		if err := rt.models.CheckType(def.ReturnType); err != nil {
			return nil, "", xerrors.Errorf("return type: %w", err)
		}
		obj, err := rt.models.ConnectionType(def.ReturnType.Base)
		if err != nil {
			return nil, "", xerrors.Errorf("return type: %w", err)
		}
		conn = def.ReturnType.Base
		f.Type = ast.NamedType(obj.Name(), nil)
	} else {
		f.Type, err = rt.astType(def.ReturnType)
		if err != nil {
			return nil, "", xerrors.Errorf("return type: %w", err)
		}
	}
	f.Arguments, err = rt.argumentDefinitions(def)
	if err != nil {
		return nil, "", err
	}
	return f, conn, nil
}

func (rt *Router) argumentDefinitions(def controller.Definition) (ast.ArgumentDefinitionList, error) {
	var list ast.ArgumentDefinitionList
	for _, d := range def.Inputs {
		args := d.InputArgs()
		typ, err := rt.astType(args.Type)
		if err != nil {
			return nil, xerrors.Errorf("argument %s: %w", args.Name, err)
		}
		list = append(list, &ast.ArgumentDefinition{
			Name:        args.Name,
			Description: args.Description,
			Type:        typ,
		})
	}
	return list, nil
}

func (rt *Router) astType(t attributes.Type) (*ast.Type, error) {
	name, err := rt.models.TypeName(t)
	if err != nil {
		return nil, err
	}
	elem := &ast.Type{NamedType: name}
	if !t.List {
		elem.NonNull = !t.OuterNullable
		return elem, nil
	}
	elem.NonNull = !t.InnerNullable
	return &ast.Type{Elem: elem, NonNull: !t.OuterNullable}, nil
}

// connectionDefinitions converts a model's Relay connection type and the
// edge and page info types it refers to. Fields are sorted by name. Types
// already in converted are skipped.
func (rt *Router) connectionDefinitions(modelName string, converted map[string]bool) (ast.DefinitionList, error) {
	conn, err := rt.models.ConnectionType(modelName)
	if err != nil {
		return nil, xerrors.Errorf("connection for %s: %w", modelName, err)
	}
	var defs ast.DefinitionList
	queue := []*graphql.Object{conn}
	for len(queue) > 0 {
		obj := queue[0]
		queue = queue[1:]
		if converted[obj.Name()] {
			continue
		}
		converted[obj.Name()] = true
		fields := obj.Fields()
		if err := obj.Error(); err != nil {
			return nil, xerrors.Errorf("%s: %w", obj.Name(), err)
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		def := &ast.Definition{
			Kind:        ast.Object,
			Name:        obj.Name(),
			Description: obj.Description(),
		}
		for _, name := range names {
			f := fields[name]
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Type:        outputASTType(f.Type),
			})
			// Models are converted on their own.
			if ref, ok := graphql.GetNamed(f.Type).(*graphql.Object); ok && rt.models.Lookup(ref.Name()) == nil {
				queue = append(queue, ref)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func outputASTType(t graphql.Type) *ast.Type {
	switch t := t.(type) {
	case *graphql.NonNull:
		elem := *outputASTType(t.OfType)
		elem.NonNull = true
		return &elem
	case *graphql.List:
		return &ast.Type{Elem: outputASTType(t.OfType)}
	default:
		return &ast.Type{NamedType: t.Name()}
	}
}
