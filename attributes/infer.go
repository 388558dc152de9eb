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

package attributes

import "strings"

// Inference is what an attribute name alone says about its type.
type Inference struct {
	// Name is the declared name with any "!" or "?" marker removed.
	Name          string
	Base          string
	OuterNullable bool
}

// InferName derives a default scalar type and nullability from an attribute
// name. The "!" marker is removed before any other rule is checked, so
// "is_admin?!" is a non-null Boolean.
func InferName(name string) Inference {
	inf := Inference{Name: name, OuterNullable: true}
	if strings.HasSuffix(inf.Name, "!") {
		inf.Name = strings.TrimSuffix(inf.Name, "!")
		inf.OuterNullable = false
	}
	switch {
	case strings.HasSuffix(inf.Name, "?"):
		inf.Name = strings.TrimSuffix(inf.Name, "?")
		inf.Base = BooleanType
	case inf.Name == "id" || strings.HasSuffix(inf.Name, "_id"):
		inf.Base = IDType
	default:
		inf.Base = StringType
	}
	return inf
}

// Type returns the inferred type as a scalar reference.
func (inf Inference) Type() Type {
	return Type{
		Base:          inf.Base,
		Kind:          Scalar,
		InnerNullable: true,
		OuterNullable: inf.OuterNullable,
	}
}
