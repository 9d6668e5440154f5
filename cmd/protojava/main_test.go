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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/stretchr/testify/require"

	"github.com/javacomposer/javacomposer/javacode"
)

func TestProtoTypeToJavaBoxesScalar(t *testing.T) {
	typ, err := protoTypeToJava(&parser.Field{Type: "int32", FieldName: "count"})
	require.NoError(t, err)
	require.Equal(t, "Integer", typ.(*javacode.ClassRef).SimpleName())
}

func TestProtoTypeToJavaWrapsRepeatedFieldInList(t *testing.T) {
	typ, err := protoTypeToJava(&parser.Field{Type: "string", FieldName: "tags", IsRepeated: true})
	require.NoError(t, err)
	pt, ok := typ.(*javacode.ParameterizedType)
	require.True(t, ok)
	require.Equal(t, "List", pt.Raw.SimpleName())
}

func TestProtoTypeToJavaMapsBytesToByteArray(t *testing.T) {
	typ, err := protoTypeToJava(&parser.Field{Type: "bytes", FieldName: "payload"})
	require.NoError(t, err)
	arr, ok := typ.(*javacode.ArrayType)
	require.True(t, ok)
	prim, isPrimitive := arr.Component.(*javacode.Primitive)
	require.True(t, isPrimitive)
	require.Equal(t, javacode.Byte, prim.Kind)
}

func TestProtoTypeToJavaTreatsUnknownTypeAsMessageReference(t *testing.T) {
	typ, err := protoTypeToJava(&parser.Field{Type: "Address", FieldName: "address"})
	require.NoError(t, err)
	require.Equal(t, "Address", typ.(*javacode.ClassRef).SimpleName())
}

func TestRunRendersOnePOJOPerMessage(t *testing.T) {
	schema := `syntax = "proto3";

message Widget {
  string name = 1;
  int32 count = 2;
  repeated string tags = 3;
}
`
	dir := t.TempDir()
	path := filepath.Join(dir, "widget.proto")
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o600))

	outPath := filepath.Join(dir, "out.java")
	outFile, err := os.Create(outPath)
	require.NoError(t, err)
	defer outFile.Close()

	require.NoError(t, run(path, "com.example", outFile))

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(out), "package com.example;")
	require.Contains(t, string(out), "public final class Widget {")
	require.Contains(t, string(out), "private final String name;")
	require.Contains(t, string(out), "private final Integer count;")
	require.Contains(t, string(out), "private final List<String> tags;")
}
