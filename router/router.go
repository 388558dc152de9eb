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

// Package router maps controller actions to GraphQL query and mutation
// fields and assembles them with the registered models into a schema.
package router

import (
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
	"zombiezen.com/go/graphql-rails/controller"
	"zombiezen.com/go/graphql-rails/model"
)

// Router collects the query and mutation routes of a schema.
type Router struct {
	models    *model.Registry
	log       logrus.FieldLogger
	actionLog *controller.ActionLogger
	queries   []*Route
	mutations []*Route
}

// Route binds an operation field to a controller action.
type Route struct {
	// Name is the field name as declared. The schema uses its lower camel
	// case form.
	Name string
	// To names the controller action in "controller#action" form.
	To      string
	Action  *controller.Action
	Resolve graphql.FieldResolveFn
}

// FieldName returns the name of the route's field in the schema.
func (route *Route) FieldName() string {
	return inflect.CamelizeDownFirst(route.Name)
}

// Controller returns the controller part of route.To.
func (route *Route) Controller() string {
	c, _ := splitTo(route.To)
	return c
}

// ActionName returns the action part of route.To, or the route name if To
// does not name one.
func (route *Route) ActionName() string {
	if _, a := splitTo(route.To); a != "" {
		return a
	}
	return route.Name
}

func splitTo(to string) (controller, action string) {
	i := strings.IndexByte(to, '#')
	if i == -1 {
		return to, ""
	}
	return to[:i], to[i+1:]
}

// An Option customizes a Router.
type Option func(*Router)

// WithLogger sets the logger used while building the schema.
// The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(rt *Router) {
		rt.log = log
	}
}

// WithActionLogger wraps every route's resolver so that each call is logged
// and traced by l.
func WithActionLogger(l *controller.ActionLogger) Option {
	return func(rt *Router) {
		rt.actionLog = l
	}
}

// New returns a router whose routes may refer to the models in models.
func New(models *model.Registry, opts ...Option) *Router {
	rt := &Router{
		models: models,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Models returns the model registry passed to New.
func (rt *Router) Models() *model.Registry {
	return rt.models
}

// Query adds a field to the Query type. resolve may be nil, in which case
// the field is resolved from the root value.
func (rt *Router) Query(name, to string, action *controller.Action, resolve graphql.FieldResolveFn) *Route {
	route := &Route{Name: name, To: to, Action: action, Resolve: resolve}
	rt.queries = append(rt.queries, route)
	return route
}

// Mutation adds a field to the Mutation type.
func (rt *Router) Mutation(name, to string, action *controller.Action, resolve graphql.FieldResolveFn) *Route {
	route := &Route{Name: name, To: to, Action: action, Resolve: resolve}
	rt.mutations = append(rt.mutations, route)
	return route
}

// Queries returns the query routes in declaration order.
func (rt *Router) Queries() []*Route {
	return rt.queries
}

// Mutations returns the mutation routes in declaration order.
func (rt *Router) Mutations() []*Route {
	return rt.mutations
}
