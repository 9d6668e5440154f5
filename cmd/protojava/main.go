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

// Command protojava reads a proto3 schema and renders one Java class per
// message: a private field per proto field, a getter per field, and a
// List<T> for every repeated field. It is the protobuf counterpart to
// cmd/thriftjava, driven by a different schema parser over the same core
// engine.
package main

import (
	"fmt"
	"os"

	"github.com/yoheimuta/go-protoparser/v4"
	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/javacomposer/javacomposer/javacode"
	"github.com/javacomposer/javacomposer/javaspec"
	"github.com/javacomposer/javacomposer/render"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: protojava <input.proto> <java-package>")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "protojava:", err)
		os.Exit(1)
	}
}

func run(inputPath, javaPackage string, out *os.File) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	proto, err := protoparser.Parse(in)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	for _, v := range proto.ProtoBody {
		msg, ok := v.(*parser.Message)
		if !ok {
			continue
		}
		spec, err := messageToJavaType(msg, javaPackage)
		if err != nil {
			return fmt.Errorf("message %s: %w", msg.MessageName, err)
		}
		file := javaspec.NewFile(javaPackage, spec)
		if err := render.RenderFile(out, file); err != nil {
			return fmt.Errorf("rendering %s: %w", msg.MessageName, err)
		}
	}
	return nil
}

// messageToJavaType builds an immutable Java POJO for a proto3 message,
// the same shape cmd/thriftjava builds for a Thrift struct.
func messageToJavaType(msg *parser.Message, javaPackage string) (*javaspec.TypeSpec, error) {
	b := javaspec.NewClass(msg.MessageName).AddModifiers(javaspec.PublicMod, javaspec.FinalMod)

	ctor := javaspec.NewConstructor().AddModifiers(javaspec.PublicMod)

	for _, v := range msg.MessageBody {
		f, ok := v.(*parser.Field)
		if !ok {
			continue
		}
		fieldType, err := protoTypeToJava(f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.FieldName, err)
		}
		fieldName := lowerCamel(f.FieldName)

		field, err := javaspec.NewField(fieldType, fieldName).AddModifiers(javaspec.PrivateMod, javaspec.FinalMod).Build()
		if err != nil {
			return nil, err
		}
		b.AddField(field)

		ctor.AddParameter(javaspec.NewParameter(fieldType, fieldName))
		ctor.AddStatement("this.$N = $N;", fieldName, fieldName)

		getter, err := javaspec.NewMethod("get"+upperCamel(f.FieldName)).
			AddModifiers(javaspec.PublicMod).
			Returns(fieldType).
			AddStatement("return this.$N;", fieldName).
			Build()
		if err != nil {
			return nil, err
		}
		b.AddMethod(getter)
	}

	ctorSpec, err := ctor.Build()
	if err != nil {
		return nil, err
	}
	b.AddMethod(ctorSpec)

	return b.Build()
}

// protoScalarTypes maps the proto3 scalar type keywords to their boxed Java
// equivalents (boxed because a generated field may be left at its Java
// default rather than always being explicitly set, same rationale as the
// Thrift generator).
var protoScalarTypes = map[string]func() javacode.TypeRef{
	"bool":     func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Boolean).Box() },
	"int32":    func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"sint32":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"uint32":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"fixed32":  func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"sfixed32": func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"int64":    func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"sint64":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"uint64":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"fixed64":  func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"sfixed64": func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"float":    func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Float).Box() },
	"double":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Double).Box() },
	"string":   func() javacode.TypeRef { return javacode.NewClassRef("java.lang", "String") },
	"bytes":    func() javacode.TypeRef { return javacode.NewArrayType(javacode.NewPrimitive(javacode.Byte)) },
}

func protoTypeToJava(f *parser.Field) (javacode.TypeRef, error) {
	var elem javacode.TypeRef
	if ctor, ok := protoScalarTypes[f.Type]; ok {
		elem = ctor()
	} else {
		// A message or enum type reference: use its bare name as a same-package
		// class reference, matching cmd/thriftjava's TypeReference handling.
		elem = javacode.NewClassRef("", f.Type)
	}

	if !f.IsRepeated {
		return elem, nil
	}
	list, err := javacode.ClassRefOf("java.util", "List")
	if err != nil {
		return nil, err
	}
	return javacode.NewParameterizedType(list, elem), nil
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toLower(r[0])
	return string(r)
}

func upperCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
