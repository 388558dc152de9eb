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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/xerrors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		hint    string
		want    Type
		wantErr bool
	}{
		{hint: "", want: Type{}},
		{hint: "   ", want: Type{}},
		{
			hint: "String",
			want: Type{Base: StringType, Kind: Scalar, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: "string!",
			want: Type{Base: StringType, Kind: Scalar, InnerNullable: true, OuterNullable: false},
		},
		{
			hint: "INT",
			want: Type{Base: IntType, Kind: Scalar, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: "float!",
			want: Type{Base: FloatType, Kind: Scalar, InnerNullable: true, OuterNullable: false},
		},
		{
			hint: "Bool",
			want: Type{Base: BooleanType, Kind: Scalar, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: "boolean!",
			want: Type{Base: BooleanType, Kind: Scalar, InnerNullable: true, OuterNullable: false},
		},
		{
			hint: "id",
			want: Type{Base: IDType, Kind: Scalar, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: " ID! ",
			want: Type{Base: IDType, Kind: Scalar, InnerNullable: true, OuterNullable: false},
		},
		{
			hint: "[Int!]!",
			want: Type{Base: IntType, Kind: Scalar, List: true, InnerNullable: false, OuterNullable: false},
		},
		{
			hint: "[Int]!",
			want: Type{Base: IntType, Kind: Scalar, List: true, InnerNullable: true, OuterNullable: false},
		},
		{
			hint: "[Int!]",
			want: Type{Base: IntType, Kind: Scalar, List: true, InnerNullable: false, OuterNullable: true},
		},
		{
			hint: "[Int]",
			want: Type{Base: IntType, Kind: Scalar, List: true, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: "User",
			want: Type{Base: "User", Kind: Object, InnerNullable: true, OuterNullable: true},
		},
		{
			hint: "[User!]!",
			want: Type{Base: "User", Kind: Object, List: true, InnerNullable: false, OuterNullable: false},
		},
		{hint: "[Int!", wantErr: true},
		{hint: "[Int", wantErr: true},
		{hint: "Int]", wantErr: true},
		{hint: "Int!]", wantErr: true},
		{hint: "[[Int]]", wantErr: true},
		{hint: "[Int]]", wantErr: true},
		{hint: "[]", wantErr: true},
		{hint: "[!]!", wantErr: true},
		{hint: "!", wantErr: true},
		{hint: "Int!!", wantErr: true},
		{hint: "[Int!!]", wantErr: true},
		{hint: "Foo Bar", wantErr: true},
		{hint: "9Lives", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.hint, func(t *testing.T) {
			got, err := ParseType(test.hint)
			if err != nil {
				t.Logf("Error: %v", err)
				if !test.wantErr {
					t.Fail()
					return
				}
				var syntaxErr *TypeSyntaxError
				if !xerrors.As(err, &syntaxErr) {
					t.Errorf("error is %T; want *TypeSyntaxError", err)
				}
				return
			}
			if test.wantErr {
				t.Fatalf("ParseType(%q) = %v, <nil>; want error", test.hint, got)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseType(%q) (-want +got):\n%s", test.hint, diff)
			}
		})
	}
}

func TestParseTypeErrorPos(t *testing.T) {
	tests := []struct {
		hint string
		pos  int
	}{
		{hint: "[Int!", pos: 5},
		{hint: "Foo Bar", pos: 4},
		{hint: "[[Int]]", pos: 1},
		{hint: " [Int!!]", pos: 6},
		{hint: "9Lives", pos: 0},
	}
	for _, test := range tests {
		_, err := ParseType(test.hint)
		var syntaxErr *TypeSyntaxError
		if !xerrors.As(err, &syntaxErr) {
			t.Errorf("ParseType(%q) error = %v; want *TypeSyntaxError", test.hint, err)
			continue
		}
		t.Logf("Error: %v", err)
		if syntaxErr.Pos != test.pos {
			t.Errorf("ParseType(%q) error at offset %d; want %d", test.hint, syntaxErr.Pos, test.pos)
		}
	}
}

func TestTypeString(t *testing.T) {
	hints := []string{
		"String",
		"Int!",
		"[Int]",
		"[Int!]",
		"[Int]!",
		"[Int!]!",
		"[User!]",
	}
	for _, hint := range hints {
		typ, err := ParseType(hint)
		if err != nil {
			t.Errorf("ParseType(%q): %v", hint, err)
			continue
		}
		if got := typ.String(); got != hint {
			t.Errorf("ParseType(%q).String() = %q", hint, got)
		}
	}
	if got := (Type{}).String(); got != "<none>" {
		t.Errorf("Type{}.String() = %q; want \"<none>\"", got)
	}
}

func TestTypeForInput(t *testing.T) {
	tests := []struct {
		hint string
		want Kind
	}{
		{hint: "Int", want: Scalar},
		{hint: "User!", want: InputObject},
		{hint: "[User]", want: InputObject},
	}
	for _, test := range tests {
		got := MustParseType(test.hint).ForInput()
		if got.Kind != test.want {
			t.Errorf("ParseType(%q).ForInput().Kind = %v; want %v", test.hint, got.Kind, test.want)
		}
	}
}
