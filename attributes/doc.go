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

/*
Package attributes turns loosely-typed attribute declarations into GraphQL
field and argument definitions.

Declarations

An attribute is declared by name, optionally followed by a type hint:

	reg := attributes.NewRegistry()
	reg.Declare("id")
	reg.Declare("full_name!")
	reg.Declare("admin?")
	reg.Declare("scores").Type("[Int!]!")

When no hint is given, the type is inferred from the name:

	1) A trailing "!" is stripped and makes the field non-null.

	2) A trailing "?" is stripped and makes the field a Boolean.

	3) A name of "id" or ending in "_id" is an ID.

	4) Anything else is a String.

Type hints

Hints use GraphQL type reference syntax limited to one level of list nesting:
"Int", "String!", "[Int]", "[Int!]!". Scalar names are matched without regard
to case and "Bool" is accepted for Boolean. Any other name refers to a model
type that is resolved when the schema is built, so models may refer to each
other regardless of declaration order.

An explicit Required or Optional call always has the last word on whether the
field is nullable.
*/
package attributes
