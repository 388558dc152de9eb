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
	"github.com/graphql-go/graphql"
	"golang.org/x/xerrors"
)

func TestAttributeBuild(t *testing.T) {
	tests := []struct {
		name    string
		attr    *Attribute
		want    Descriptor
		wantErr bool
	}{
		{
			name: "InferredOptional",
			attr: NewAttribute("full_name"),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String"),
				Camelize: true,
			},
		},
		{
			name: "InferredRequired",
			attr: NewAttribute("full_name!"),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String!"),
				Camelize: true,
			},
		},
		{
			name: "QuestionMarkIsBoolean",
			attr: NewAttribute("admin?"),
			want: Descriptor{
				Name:     "admin",
				Property: "admin",
				Type:     MustParseType("Boolean"),
				Camelize: true,
			},
		},
		{
			name: "ID",
			attr: NewAttribute("id"),
			want: Descriptor{
				Name:     "id",
				Property: "id",
				Type:     MustParseType("ID"),
				Camelize: true,
			},
		},
		{
			name: "ForeignKey",
			attr: NewAttribute("user_id"),
			want: Descriptor{
				Name:     "userId",
				Property: "user_id",
				Type:     MustParseType("ID"),
				Camelize: true,
			},
		},
		{
			name: "HintWinsOverName",
			attr: NewAttribute("admin?").Type("Int!"),
			want: Descriptor{
				Name:     "admin",
				Property: "admin",
				Type:     MustParseType("Int!"),
				Camelize: true,
			},
		},
		{
			name: "HintNullabilityWinsOverBang",
			attr: NewAttribute("score!").Type("Float"),
			want: Descriptor{
				Name:     "score",
				Property: "score",
				Type:     MustParseType("Float"),
				Camelize: true,
			},
		},
		{
			name: "RequiredOverridesHint",
			attr: NewAttribute("full_name").Type("String").Required(),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String!"),
				Camelize: true,
			},
		},
		{
			name: "OptionalOverridesHint",
			attr: NewAttribute("full_name").Type("String!").Optional(),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String"),
				Camelize: true,
			},
		},
		{
			name: "OptionalOverridesName",
			attr: NewAttribute("full_name!").Optional(),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String"),
				Camelize: true,
			},
		},
		{
			name: "LastRequirementWins",
			attr: NewAttribute("full_name").Optional().Required().Required(),
			want: Descriptor{
				Name:     "fullName",
				Property: "full_name",
				Type:     MustParseType("String!"),
				Camelize: true,
			},
		},
		{
			name: "RequiredListKeepsInner",
			attr: NewAttribute("scores").Type("[Int]").Required(),
			want: Descriptor{
				Name:     "scores",
				Property: "scores",
				Type:     MustParseType("[Int]!"),
				Camelize: true,
			},
		},
		{
			name: "NoCamelize",
			attr: NewAttribute("full_name").Camelize(false),
			want: Descriptor{
				Name:     "full_name",
				Property: "full_name",
				Type:     MustParseType("String"),
			},
		},
		{
			name: "PropertyAndDescription",
			attr: NewAttribute("name").Property("display_name").Description("Shown to users"),
			want: Descriptor{
				Name:        "name",
				Property:    "display_name",
				Description: "Shown to users",
				Type:        MustParseType("String"),
				Camelize:    true,
			},
		},
		{
			name: "TypeOf",
			attr: NewAttribute("author").Type("Int").TypeOf(MustParseType("User!")),
			want: Descriptor{
				Name:     "author",
				Property: "author",
				Type:     MustParseType("User!"),
				Camelize: true,
			},
		},
		{
			name: "TypeAfterTypeOf",
			attr: NewAttribute("author").TypeOf(MustParseType("User!")).Type("[Int]"),
			want: Descriptor{
				Name:     "author",
				Property: "author",
				Type:     MustParseType("[Int]"),
				Camelize: true,
			},
		},
		{
			name:    "BadHint",
			attr:    NewAttribute("scores").Type("[Int!"),
			wantErr: true,
		},
		{
			name:    "BadName",
			attr:    NewAttribute("full-name"),
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.attr.Build()
			if err != nil {
				t.Logf("Error: %v", err)
				if !test.wantErr {
					t.Fail()
				}
				return
			}
			if test.wantErr {
				t.Fatal("Build did not return error")
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Build() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttributeBuildSyntaxError(t *testing.T) {
	_, err := NewAttribute("scores").Type("[Int!").Build()
	var syntaxErr *TypeSyntaxError
	if !xerrors.As(err, &syntaxErr) {
		t.Fatalf("Build() error = %v; want *TypeSyntaxError", err)
	}
	if syntaxErr.Hint != "[Int!" {
		t.Errorf("syntaxErr.Hint = %q; want \"[Int!\"", syntaxErr.Hint)
	}
}

func TestDescriptorArgs(t *testing.T) {
	d, err := NewAttribute("author!").Type("User").Subtype("create").Description("Who wrote it").Build()
	if err != nil {
		t.Fatal(err)
	}
	fieldArgs := d.FieldArgs()
	wantField := Args{
		Name:        "author",
		Type:        Type{Base: "User", Kind: Object, InnerNullable: true, OuterNullable: true, Subtype: "create"},
		Description: "Who wrote it",
		Property:    "author",
		Camelize:    true,
	}
	if diff := cmp.Diff(wantField, fieldArgs); diff != "" {
		t.Errorf("FieldArgs() (-want +got):\n%s", diff)
	}
	inputArgs := d.InputArgs()
	wantInput := wantField
	wantInput.Type.Kind = InputObject
	if diff := cmp.Diff(wantInput, inputArgs); diff != "" {
		t.Errorf("InputArgs() (-want +got):\n%s", diff)
	}
}

func TestArgsConversion(t *testing.T) {
	r := newFakeResolver()
	tests := []struct {
		hint      string
		wantOut   string
		wantIn    string
		wantInErr bool
	}{
		{hint: "Int", wantOut: "Int", wantIn: "Int"},
		{hint: "String!", wantOut: "String!", wantIn: "String!"},
		{hint: "[Int!]!", wantOut: "[Int!]!", wantIn: "[Int!]!"},
		{hint: "[Int]!", wantOut: "[Int]!", wantIn: "[Int]!"},
		{hint: "[Int!]", wantOut: "[Int!]", wantIn: "[Int!]"},
		{hint: "User!", wantOut: "User!", wantIn: "UserInput!"},
		{hint: "[User]", wantOut: "[User]", wantIn: "[UserInput]"},
	}
	for _, test := range tests {
		t.Run(test.hint, func(t *testing.T) {
			d, err := NewAttribute("value").Type(test.hint).Build()
			if err != nil {
				t.Fatal(err)
			}
			f, err := d.FieldArgs().Field(r)
			if err != nil {
				t.Fatal("Field:", err)
			}
			if got := f.Type.String(); got != test.wantOut {
				t.Errorf("field type = %q; want %q", got, test.wantOut)
			}
			arg, err := d.InputArgs().Argument(r)
			if err != nil {
				t.Fatal("Argument:", err)
			}
			if got := arg.Type.String(); got != test.wantIn {
				t.Errorf("argument type = %q; want %q", got, test.wantIn)
			}
		})
	}
}

func TestArgsConversionErrors(t *testing.T) {
	r := newFakeResolver()
	d, err := NewAttribute("post").Type("Post").Build()
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.FieldArgs().Field(r)
	var unknown *UnknownTypeError
	if !xerrors.As(err, &unknown) {
		t.Fatalf("Field error = %v; want *UnknownTypeError", err)
	}
	if unknown.Name != "Post" || unknown.Input {
		t.Errorf("unknown = %+v; want {Name:Post Input:false}", unknown)
	}

	_, err = d.InputArgs().Field(r)
	if err == nil {
		t.Error("Field with input reference did not return error")
	}
}

func TestPropertyResolver(t *testing.T) {
	d, err := NewAttribute("full_name").Build()
	if err != nil {
		t.Fatal(err)
	}
	f, err := d.FieldArgs().Field(newFakeResolver())
	if err != nil {
		t.Fatal(err)
	}
	if f.Resolve == nil {
		t.Fatal("field has no resolver for differing property")
	}
	got, err := f.Resolve(graphql.ResolveParams{
		Source: map[string]interface{}{"full_name": "Ada Lovelace"},
		Info:   graphql.ResolveInfo{FieldName: "fullName"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Ada Lovelace" {
		t.Errorf("resolved %v; want \"Ada Lovelace\"", got)
	}

	same, err := NewAttribute("name").Build()
	if err != nil {
		t.Fatal(err)
	}
	f, err = same.FieldArgs().Field(newFakeResolver())
	if err != nil {
		t.Fatal(err)
	}
	if f.Resolve != nil {
		t.Error("field with matching property has a custom resolver")
	}
}

// fakeResolver knows a single model, User.
type fakeResolver struct {
	user      *graphql.Object
	userInput *graphql.InputObject
	failures  []error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		user: graphql.NewObject(graphql.ObjectConfig{
			Name:   "User",
			Fields: graphql.Fields{"id": &graphql.Field{Type: graphql.ID}},
		}),
		userInput: graphql.NewInputObject(graphql.InputObjectConfig{
			Name:   "UserInput",
			Fields: graphql.InputObjectConfigFieldMap{"id": &graphql.InputObjectFieldConfig{Type: graphql.ID}},
		}),
	}
}

func (r *fakeResolver) OutputType(name string) (graphql.Output, error) {
	if name != "User" {
		return nil, &UnknownTypeError{Name: name}
	}
	return r.user, nil
}

func (r *fakeResolver) InputType(name, subtype string) (graphql.Input, error) {
	if name != "User" {
		return nil, &UnknownTypeError{Name: name, Input: true}
	}
	return r.userInput, nil
}

func (r *fakeResolver) ReportFailure(err error) {
	r.failures = append(r.failures, err)
}
