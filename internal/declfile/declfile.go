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

// Package declfile reads model and route declarations from YAML.
//
// A declaration file looks like:
//
//	models:
//	  - name: User
//	    attributes:
//	      - name: id!
//	      - name: full_name!
//	    inputs:
//	      - subtype: create
//	        attributes:
//	          - name: full_name!
//	queries:
//	  - name: users
//	    to: users#index
//	    model: User
//	    returns_list: {}
//	    permit: [query]
package declfile

import (
	"io"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/graphql-rails/attributes"
	"zombiezen.com/go/graphql-rails/controller"
	"zombiezen.com/go/graphql-rails/model"
	"zombiezen.com/go/graphql-rails/router"
)

// File is a parsed declaration file.
type File struct {
	Models    []Model `yaml:"models"`
	Queries   []Route `yaml:"queries"`
	Mutations []Route `yaml:"mutations"`
}

// Model declares a model.
type Model struct {
	Name string `yaml:"name"`
	// Extends names a model declared earlier in the file whose attributes and
	// inputs this model starts with.
	Extends     string      `yaml:"extends"`
	Description string      `yaml:"description"`
	Attributes  []Attribute `yaml:"attributes"`
	Inputs      []Input     `yaml:"inputs"`
}

// Input declares one of a model's input types.
type Input struct {
	Subtype     string      `yaml:"subtype"`
	Description string      `yaml:"description"`
	Attributes  []Attribute `yaml:"attributes"`
}

// Attribute declares a field, input field, or action argument.
type Attribute struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Property    string `yaml:"property"`
	Required    *bool  `yaml:"required"`
	Camelize    *bool  `yaml:"camelize"`
	Subtype     string `yaml:"subtype"`
}

// Route declares a query or mutation field and its action.
type Route struct {
	Name        string `yaml:"name"`
	To          string `yaml:"to"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`

	Returns       string         `yaml:"returns"`
	ReturnsSingle *ReturnsSingle `yaml:"returns_single"`
	ReturnsList   *ReturnsList   `yaml:"returns_list"`
	Paginated     *Pagination    `yaml:"paginated"`

	// InputFormat is "camelized" (the default) or "original".
	InputFormat string      `yaml:"input_format"`
	Permit      []string    `yaml:"permit"`
	Inputs      []Attribute `yaml:"inputs"`
}

// ReturnsSingle makes an action return one instance of its model.
// Required defaults to true.
type ReturnsSingle struct {
	Required *bool `yaml:"required"`
}

// ReturnsList makes an action return a list of its model.
// Both flags default to true.
type ReturnsList struct {
	RequiredInner *bool `yaml:"required_inner"`
	RequiredList  *bool `yaml:"required_list"`
}

// Pagination configures a paginated action.
type Pagination struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// Load reads the declaration file at path.
func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("load declarations: %w", err)
	}
	defer fd.Close()
	f, err := Parse(fd)
	if err != nil {
		return nil, xerrors.Errorf("load declarations: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a declaration file. Unknown keys are an error.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	f := new(File)
	if err := dec.Decode(f); err != nil {
		if xerrors.Is(err, io.EOF) {
			return nil, xerrors.New("parse declarations: empty document")
		}
		return nil, xerrors.Errorf("parse declarations: %w", err)
	}
	return f, nil
}

// Apply registers the file's models with rt's model registry and adds its
// routes to rt. Routes are added without resolvers.
func (f *File) Apply(rt *router.Router) error {
	declared := make(map[string]*model.Config, len(f.Models))
	for i, m := range f.Models {
		c, err := m.config(declared)
		if err != nil {
			return xerrors.Errorf("models[%d]: %w", i, err)
		}
		if err := rt.Models().Register(c); err != nil {
			return xerrors.Errorf("models[%d]: %w", i, err)
		}
		declared[c.Name] = c
	}
	for i, r := range f.Queries {
		a, err := r.action()
		if err != nil {
			return xerrors.Errorf("queries[%d]: %w", i, err)
		}
		rt.Query(r.Name, r.To, a, nil)
	}
	for i, r := range f.Mutations {
		a, err := r.action()
		if err != nil {
			return xerrors.Errorf("mutations[%d]: %w", i, err)
		}
		rt.Mutation(r.Name, r.To, a, nil)
	}
	return nil
}

func (m *Model) config(declared map[string]*model.Config) (*model.Config, error) {
	if m.Name == "" {
		return nil, xerrors.New("model has no name")
	}
	var c *model.Config
	if m.Extends != "" {
		parent := declared[m.Extends]
		if parent == nil {
			return nil, xerrors.Errorf("model %s extends %q, which is not declared before it", m.Name, m.Extends)
		}
		c = parent.Derive(m.Name)
	} else {
		c = model.New(m.Name)
	}
	if m.Description != "" {
		c.Description = m.Description
	}
	for i, a := range m.Attributes {
		if a.Name == "" {
			return nil, xerrors.Errorf("model %s: attributes[%d]: no name", m.Name, i)
		}
		a.apply(c.Attribute(a.Name))
	}
	for i, in := range m.Inputs {
		ic := c.Input(in.Subtype)
		if in.Description != "" {
			ic.Description = in.Description
		}
		for j, a := range in.Attributes {
			if a.Name == "" {
				return nil, xerrors.Errorf("model %s: inputs[%d].attributes[%d]: no name", m.Name, i, j)
			}
			a.apply(ic.Attribute(a.Name))
		}
	}
	return c, nil
}

func (a *Attribute) apply(attr *attributes.Attribute) {
	if a.Type != "" {
		attr.Type(a.Type)
	}
	if a.Description != "" {
		attr.Description(a.Description)
	}
	if a.Property != "" {
		attr.Property(a.Property)
	}
	if a.Required != nil {
		if *a.Required {
			attr.Required()
		} else {
			attr.Optional()
		}
	}
	if a.Camelize != nil {
		attr.Camelize(*a.Camelize)
	}
	if a.Subtype != "" {
		attr.Subtype(a.Subtype)
	}
}

func (r *Route) action() (*controller.Action, error) {
	if r.Name == "" {
		return nil, xerrors.New("route has no name")
	}
	a := controller.NewAction()
	switch r.InputFormat {
	case "", "camelized":
	case "original":
		a.InputFormat(controller.Original)
	default:
		return nil, xerrors.Errorf("route %s: unknown input_format %q", r.Name, r.InputFormat)
	}
	if r.Description != "" {
		a.Description(r.Description)
	}
	if r.Model != "" {
		a.Model(r.Model)
	}
	for i, in := range r.Inputs {
		if in.Name == "" {
			return nil, xerrors.Errorf("route %s: inputs[%d]: no name", r.Name, i)
		}
	}
	r.permit(a)
	if r.Paginated != nil {
		a.Paginated(controller.PaginationOptions{
			DefaultPageSize: r.Paginated.DefaultPageSize,
			MaxPageSize:     r.Paginated.MaxPageSize,
		})
		// Declared inputs override the pagination arguments of the same name
		// but keep their position.
		r.permit(a)
	}

	n := 0
	if r.Returns != "" {
		n++
		a.Returns(r.Returns)
	}
	if r.ReturnsSingle != nil {
		n++
		a.ReturnsSingle(boolOr(r.ReturnsSingle.Required, true))
	}
	if r.ReturnsList != nil {
		n++
		a.ReturnsList(
			boolOr(r.ReturnsList.RequiredInner, true),
			boolOr(r.ReturnsList.RequiredList, true),
		)
	}
	if n > 1 {
		return nil, xerrors.Errorf("route %s: only one of returns, returns_single, and returns_list may be set", r.Name)
	}
	return a, nil
}

func (r *Route) permit(a *controller.Action) {
	a.Permit(r.Permit...)
	for _, in := range r.Inputs {
		in.apply(a.Input(in.Name))
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
