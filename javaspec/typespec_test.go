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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javacomposer/javacomposer/codewriter"
	"github.com/javacomposer/javacomposer/javacode"
)

func emitType(t *testing.T, ts *TypeSpec, imports map[string]string) string {
	t.Helper()
	if imports == nil {
		imports = map[string]string{}
	}
	var buf bytes.Buffer
	w := codewriter.NewEmitter(&buf, "com.example", imports, nil, "  ", 100)
	require.NoError(t, ts.EmitTo(w))
	require.NoError(t, w.Flush())
	return buf.String()
}

func TestTypeSpecEmitsClassWithFieldsAndConstructor(t *testing.T) {
	fieldX, err := NewField(javacode.NewPrimitive(javacode.Int), "x").AddModifiers(PrivateMod, FinalMod).Build()
	require.NoError(t, err)
	fieldY, err := NewField(javacode.NewPrimitive(javacode.Int), "y").AddModifiers(PrivateMod, FinalMod).Build()
	require.NoError(t, err)
	ctor, err := NewConstructor().
		AddModifiers(PublicMod).
		AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "x")).
		AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "y")).
		AddStatement("this.x = x;").
		AddStatement("this.y = y;").
		Build()
	require.NoError(t, err)

	ts, err := NewClass("Point").
		AddModifiers(PublicMod, FinalMod).
		AddField(fieldX).
		AddField(fieldY).
		AddMethod(ctor).
		Build()
	require.NoError(t, err)

	want := "public final class Point {\n" +
		"  private final int x;\n" +
		"  private final int y;\n" +
		"\n" +
		"  public Point(int x, int y) {\n" +
		"    this.x = x;\n" +
		"    this.y = y;\n" +
		"  }\n" +
		"}\n"
	require.Equal(t, want, emitType(t, ts, nil))
}

func TestTypeSpecEmitsEnumWithPlainConstants(t *testing.T) {
	ts, err := NewEnum("Color").
		AddEnumConstant(EnumConstantSpec{Name: "RED"}).
		AddEnumConstant(EnumConstantSpec{Name: "GREEN"}).
		Build()
	require.NoError(t, err)

	want := "enum Color {\n" +
		"  RED,\n" +
		"  GREEN;\n" +
		"}\n"
	require.Equal(t, want, emitType(t, ts, nil))
}

func TestTypeSpecEmitsEnumConstantWithAnonymousBody(t *testing.T) {
	apply, err := NewMethod("apply").
		AddModifiers(PublicMod).
		Returns(javacode.NewPrimitive(javacode.Int)).
		AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "a")).
		AddParameter(NewParameter(javacode.NewPrimitive(javacode.Int), "b")).
		AddStatement("return a + b;").
		Build()
	require.NoError(t, err)

	ts, err := NewEnum("Op").
		AddEnumConstant(EnumConstantSpec{Name: "ADD", Body: []*MethodSpec{apply}}).
		Build()
	require.NoError(t, err)

	want := "enum Op {\n" +
		"  ADD {\n" +
		"    public int apply(int a, int b) {\n" +
		"      return a + b;\n" +
		"    }\n" +
		"  };\n" +
		"}\n"
	require.Equal(t, want, emitType(t, ts, nil))
}

func TestTypeSpecEmitsNestedType(t *testing.T) {
	inner, err := NewClass("Inner").AddModifiers(PrivateMod, StaticMod).Build()
	require.NoError(t, err)

	outer, err := NewClass("Outer").AddModifiers(PublicMod).AddNestedType(inner).Build()
	require.NoError(t, err)

	want := "public class Outer {\n" +
		"\n" +
		"  private static class Inner {\n" +
		"  }\n" +
		"}\n"
	require.Equal(t, want, emitType(t, outer, nil))
}

func TestTypeSpecEmitsRecordComponents(t *testing.T) {
	rec, err := NewRecord("Point").
		AddRecordComponent(NewParameter(javacode.NewPrimitive(javacode.Int), "x")).
		AddRecordComponent(NewParameter(javacode.NewPrimitive(javacode.Int), "y")).
		Build()
	require.NoError(t, err)

	want := "record Point(int x, int y) {\n}\n"
	require.Equal(t, want, emitType(t, rec, nil))
}

func TestTypeBuilderRejectsEnumConstantsOnNonEnum(t *testing.T) {
	_, err := NewClass("NotAnEnum").
		AddEnumConstant(EnumConstantSpec{Name: "X"}).
		Build()
	require.Error(t, err)
}

func TestTypeBuilderRejectsRecordComponentsOnNonRecord(t *testing.T) {
	_, err := NewClass("NotARecord").
		AddRecordComponent(NewParameter(javacode.NewPrimitive(javacode.Int), "x")).
		Build()
	require.Error(t, err)
}

func TestTypeBuilderRejectsSuperclassOnNonClass(t *testing.T) {
	_, err := NewInterface("NotAClass").
		Superclass(javacode.NewClassRef("java.lang", "Object")).
		Build()
	require.Error(t, err)
}
