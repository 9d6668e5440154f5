//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package javaspec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javacomposer/javacomposer/javacode"
)

func TestValidateDetectsDuplicateField(t *testing.T) {
	f1, err := NewField(javacode.NewPrimitive(javacode.Int), "x").Build()
	require.NoError(t, err)
	f2, err := NewField(javacode.NewPrimitive(javacode.Int), "x").Build()
	require.NoError(t, err)

	ts, err := NewClass("Widget").AddField(f1).AddField(f2).Build()
	require.NoError(t, err)
	require.Error(t, ts.Validate())
}

func TestValidateDetectsDuplicateMethodSameArity(t *testing.T) {
	m1, err := NewMethod("run").AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "a")).Build()
	require.NoError(t, err)
	m2, err := NewMethod("run").AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "b")).Build()
	require.NoError(t, err)

	ts, err := NewClass("Widget").AddMethod(m1).AddMethod(m2).Build()
	require.NoError(t, err)
	require.Error(t, ts.Validate())
}

func TestValidateAllowsOverloadsWithDifferentArity(t *testing.T) {
	m1, err := NewMethod("run").Build()
	require.NoError(t, err)
	m2, err := NewMethod("run").AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "a")).Build()
	require.NoError(t, err)

	ts, err := NewClass("Widget").AddMethod(m1).AddMethod(m2).Build()
	require.NoError(t, err)
	require.NoError(t, ts.Validate())
}

func TestValidateRecursesIntoNestedTypes(t *testing.T) {
	f1, err := NewField(javacode.NewPrimitive(javacode.Int), "x").Build()
	require.NoError(t, err)
	f2, err := NewField(javacode.NewPrimitive(javacode.Int), "x").Build()
	require.NoError(t, err)
	inner, err := NewClass("Inner").AddField(f1).AddField(f2).Build()
	require.NoError(t, err)

	outer, err := NewClass("Outer").AddNestedType(inner).Build()
	require.NoError(t, err)
	require.Error(t, outer.Validate())
}

func TestValidateDetectsDuplicateNestedType(t *testing.T) {
	inner1, err := NewClass("Inner").Build()
	require.NoError(t, err)
	inner2, err := NewClass("Inner").Build()
	require.NoError(t, err)

	outer, err := NewClass("Outer").AddNestedType(inner1).AddNestedType(inner2).Build()
	require.NoError(t, err)
	require.Error(t, outer.Validate())
}

func TestValidateDetectsEnumConstantsOnNonEnumBypassingBuilder(t *testing.T) {
	ts := &TypeSpec{Kind: ClassKind, Name: "Widget", EnumConstants: []EnumConstantSpec{{Name: "X"}}}
	require.Error(t, ts.Validate())
}

func TestValidateReturnsNilForCleanType(t *testing.T) {
	f, err := NewField(javacode.NewPrimitive(javacode.Int), "x").Build()
	require.NoError(t, err)
	ts, err := NewClass("Widget").AddField(f).Build()
	require.NoError(t, err)
	require.NoError(t, ts.Validate())
}
