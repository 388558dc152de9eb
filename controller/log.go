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

package controller

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// Statuses reported for a processed action.
const (
	StatusOK    = 200
	StatusError = 500
)

const filteredValue = "[FILTERED]"

// ActionEvent identifies one invocation of a controller action.
type ActionEvent struct {
	Controller string
	Action     string
	Params     map[string]interface{}
}

// ActionLogger records the start and end of controller actions.
type ActionLogger struct {
	// Log receives the records. If nil, logrus.StandardLogger() is used.
	Log logrus.FieldLogger
	// FilterParameters lists substrings of parameter names whose values are
	// replaced before logging. Matching ignores case.
	FilterParameters []string
}

// Run calls fn inside a trace span, logging before and after the call.
// It returns fn's error unchanged.
func (l *ActionLogger) Run(ctx context.Context, ev ActionEvent, fn func(context.Context) error) error {
	ctx, span := trace.StartSpan(ctx, "graphql-rails/controller.Run")
	defer span.End()
	span.AddAttributes(
		trace.StringAttribute("graphql.controller", ev.Controller),
		trace.StringAttribute("graphql.action", ev.Action),
	)

	log := l.logger().WithFields(logrus.Fields{
		"controller": ev.Controller,
		"action":     ev.Action,
	})
	log.WithField("params", l.FilterParams(ev.Params)).Info("Started processing")
	start := time.Now()
	err := fn(ctx)
	status := StatusOK
	if err != nil {
		status = StatusError
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
	}
	span.AddAttributes(trace.Int64Attribute("graphql.status", int64(status)))
	log.WithFields(logrus.Fields{
		"status":   status,
		"duration": time.Since(start),
	}).Info("Processed action")
	return err
}

func (l *ActionLogger) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

// FilterParams returns a copy of params with the values of sensitive
// parameters replaced. Nested objects and lists are filtered too.
func (l *ActionLogger) FilterParams(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}
	filtered := make(map[string]interface{}, len(params))
	for k, v := range params {
		if l.isFiltered(k) {
			filtered[k] = filteredValue
			continue
		}
		filtered[k] = l.filterValue(v)
	}
	return filtered
}

func (l *ActionLogger) filterValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		return l.FilterParams(v)
	case []interface{}:
		list := make([]interface{}, len(v))
		for i := range v {
			list[i] = l.filterValue(v[i])
		}
		return list
	default:
		return v
	}
}

func (l *ActionLogger) isFiltered(key string) bool {
	key = strings.ToLower(key)
	for _, f := range l.FilterParameters {
		if f != "" && strings.Contains(key, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
