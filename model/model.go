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

// Package model describes application models as GraphQL object and input
// types.
//
// Usage:
//
//	user := model.New("User")
//	user.Attribute("id")
//	user.Attribute("full_name!")
//	user.Input("create").Attribute("full_name!")
//
//	models := model.NewRegistry()
//	models.Register(user)
//
// The registry builds the "User" object type and the "UserCreateInput" input
// type on first use.
package model

import (
	"github.com/go-openapi/inflect"
	"zombiezen.com/go/graphql-rails/attributes"
)

// Config is the GraphQL configuration of a single model.
type Config struct {
	// Name is the GraphQL name of the model's output type.
	Name        string
	Description string

	attrs      *attributes.Registry
	inputs     map[string]*InputConfig
	inputOrder []string
}

// New returns an empty configuration for the model with the given name.
func New(name string) *Config {
	return &Config{
		Name:   name,
		attrs:  attributes.NewRegistry(),
		inputs: make(map[string]*InputConfig),
	}
}

// Attribute declares an output field on the model.
func (c *Config) Attribute(name string) *attributes.Attribute {
	return c.attrs.Declare(name)
}

// Attributes returns the model's output attributes.
func (c *Config) Attributes() *attributes.Registry {
	return c.attrs
}

// Input returns the input type configuration with the given subtype,
// creating it if necessary. The empty subtype is the model's default input.
func (c *Config) Input(subtype string) *InputConfig {
	if in := c.inputs[subtype]; in != nil {
		return in
	}
	in := &InputConfig{
		Subtype: subtype,
		attrs:   attributes.NewRegistry(),
	}
	c.inputs[subtype] = in
	c.inputOrder = append(c.inputOrder, subtype)
	return in
}

// HasInput reports whether an input with the given subtype was declared.
func (c *Config) HasInput(subtype string) bool {
	return c.inputs[subtype] != nil
}

// Inputs returns the model's input configurations in declaration order.
func (c *Config) Inputs() []*InputConfig {
	list := make([]*InputConfig, 0, len(c.inputOrder))
	for _, subtype := range c.inputOrder {
		list = append(list, c.inputs[subtype])
	}
	return list
}

// InputTypeName returns the GraphQL name of the input type with the given
// subtype, like "UserInput" or "UserCreateInput".
func (c *Config) InputTypeName(subtype string) string {
	return c.Name + inflect.Camelize(subtype) + "Input"
}

// Derive returns a deep copy of c with a new name. Changes to the derived
// configuration never affect c.
func (c *Config) Derive(name string) *Config {
	c2 := &Config{
		Name:        name,
		Description: c.Description,
		attrs:       c.attrs.Copy(),
		inputs:      make(map[string]*InputConfig, len(c.inputs)),
		inputOrder:  append([]string(nil), c.inputOrder...),
	}
	for subtype, in := range c.inputs {
		c2.inputs[subtype] = &InputConfig{
			Subtype:     in.Subtype,
			Description: in.Description,
			attrs:       in.attrs.Copy(),
		}
	}
	return c2
}

// InputConfig is the configuration of one of a model's input types.
type InputConfig struct {
	Subtype     string
	Description string

	attrs *attributes.Registry
}

// Attribute declares a field on the input type.
func (in *InputConfig) Attribute(name string) *attributes.Attribute {
	return in.attrs.Declare(name)
}

// Attributes returns the input type's attributes.
func (in *InputConfig) Attributes() *attributes.Registry {
	return in.attrs
}
