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
)

func descriptorNames(t *testing.T, reg *Registry) []string {
	t.Helper()
	descs, err := reg.Descriptors()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, d := range descs {
		names = append(names, d.Name+": "+d.Type.String())
	}
	return names
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Declare("id")
	reg.Declare("full_name!")
	reg.Declare("admin?")
	want := []string{"id: ID", "fullName: String!", "admin: Boolean"}
	if diff := cmp.Diff(want, descriptorNames(t, reg)); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if got := reg.Len(); got != 3 {
		t.Errorf("reg.Len() = %d; want 3", got)
	}
}

func TestRegistryRedeclare(t *testing.T) {
	reg := NewRegistry()
	reg.Declare("id")
	reg.Declare("score").Type("Int!").Description("old")
	reg.Declare("name")

	// Redeclaring replaces the whole attribute but keeps its position.
	reg.Declare("score").Type("Float")

	want := []string{"id: ID", "score: Float", "name: String"}
	if diff := cmp.Diff(want, descriptorNames(t, reg)); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	d, err := reg.Get("score").Build()
	if err != nil {
		t.Fatal(err)
	}
	if d.Description != "" {
		t.Errorf("redeclared description = %q; want empty", d.Description)
	}
	if got := reg.Len(); got != 3 {
		t.Errorf("reg.Len() = %d; want 3", got)
	}
}

func TestRegistryRedeclareWithMarker(t *testing.T) {
	reg := NewRegistry()
	reg.Declare("name")
	reg.Declare("name!")
	want := []string{"name: String!"}
	if diff := cmp.Diff(want, descriptorNames(t, reg)); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if reg.Get("name") == nil {
		t.Error(`reg.Get("name") = nil`)
	}
}

func TestRegistryCopy(t *testing.T) {
	parent := NewRegistry()
	parent.Declare("id")
	parent.Declare("name").Type("String")

	child := parent.Copy()
	child.Get("name").Required().Description("child only")
	child.Declare("email")

	wantParent := []string{"id: ID", "name: String"}
	if diff := cmp.Diff(wantParent, descriptorNames(t, parent)); diff != "" {
		t.Errorf("parent fields (-want +got):\n%s", diff)
	}
	wantChild := []string{"id: ID", "name: String!", "email: String"}
	if diff := cmp.Diff(wantChild, descriptorNames(t, child)); diff != "" {
		t.Errorf("child fields (-want +got):\n%s", diff)
	}
	d, err := parent.Get("name").Build()
	if err != nil {
		t.Fatal(err)
	}
	if d.Description != "" {
		t.Errorf("parent description = %q; want empty", d.Description)
	}
}

func TestRegistryDuplicateFieldName(t *testing.T) {
	reg := NewRegistry()
	reg.Declare("full_name")
	reg.Declare("fullName")
	if _, err := reg.Descriptors(); err == nil {
		t.Error("Descriptors did not return error for colliding field names")
	}
}

func TestRegistryAll(t *testing.T) {
	reg := NewRegistry()
	a := reg.Declare("a")
	b := reg.Declare("b")
	got := reg.All()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("reg.All() = %v; want [a b]", got)
	}
	var zero Registry
	if n := len(zero.All()); n != 0 {
		t.Errorf("len(zero.All()) = %d; want 0", n)
	}
	zero.Declare("x")
	if zero.Len() != 1 {
		t.Errorf("zero.Len() after Declare = %d; want 1", zero.Len())
	}
}

func TestRegistryBuildType(t *testing.T) {
	r := newFakeResolver()
	post := NewRegistry()
	post.Declare("id!")
	post.Declare("title")
	post.Declare("author").Type("User!")

	typ, err := post.BuildType(Object, "Post", "A blog post", r)
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := typ.(*graphql.Object)
	if !ok {
		t.Fatalf("BuildType(Object) = %T; want *graphql.Object", typ)
	}
	fields := obj.Fields()
	got := make(map[string]string)
	for name, f := range fields {
		got[name] = f.Type.String()
	}
	want := map[string]string{
		"id":     "ID!",
		"title":  "String",
		"author": "User!",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if obj.Description() != "A blog post" {
		t.Errorf("description = %q", obj.Description())
	}

	input := NewRegistry()
	input.Declare("title!")
	input.Declare("author").Type("User")
	typ, err = input.BuildType(InputObject, "PostInput", "", r)
	if err != nil {
		t.Fatal(err)
	}
	in, ok := typ.(*graphql.InputObject)
	if !ok {
		t.Fatalf("BuildType(InputObject) = %T; want *graphql.InputObject", typ)
	}
	gotIn := make(map[string]string)
	for name, f := range in.Fields() {
		gotIn[name] = f.Type.String()
	}
	wantIn := map[string]string{
		"title":  "String!",
		"author": "UserInput",
	}
	if diff := cmp.Diff(wantIn, gotIn); diff != "" {
		t.Errorf("input fields (-want +got):\n%s", diff)
	}
	if len(r.failures) > 0 {
		t.Errorf("failures = %v", r.failures)
	}
}

func TestRegistryBuildTypeDeferredFailure(t *testing.T) {
	r := newFakeResolver()
	reg := NewRegistry()
	reg.Declare("post").Type("Post")
	typ, err := reg.BuildType(Object, "Comment", "", r)
	if err != nil {
		t.Fatalf("BuildType: %v", err)
	}
	// Resolution only happens when the fields are requested.
	if len(r.failures) != 0 {
		t.Fatalf("failures before resolution = %v", r.failures)
	}
	typ.(*graphql.Object).Fields()
	if len(r.failures) != 1 {
		t.Errorf("failures = %v; want 1 failure", r.failures)
	}
}

func TestRegistryBuildTypeSyntaxError(t *testing.T) {
	reg := NewRegistry()
	reg.Declare("scores").Type("[Int")
	if _, err := reg.BuildType(Object, "Stats", "", newFakeResolver()); err == nil {
		t.Error("BuildType did not return error")
	}
}
