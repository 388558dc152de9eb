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

// MissingConfigurationError is returned when an action needs a model but
// none was bound with Model.
type MissingConfigurationError struct{}

func (e *MissingConfigurationError) Error() string {
	return `model for action is not defined; add Model("YourModel")`
}

// DeprecatedDefaultModelError is returned when an action has no return type.
// Actions no longer default to returning their model.
type DeprecatedDefaultModelError struct{}

func (e *DeprecatedDefaultModelError) Error() string {
	return `default return types are deprecated; set one with Returns("MyModel")`
}
