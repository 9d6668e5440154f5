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

// Command thriftjava reads a Thrift IDL file and renders one Java POJO per
// Thrift struct: private fields, an all-args constructor, getters, and
// equals/hashCode/toString built from CodeFragments. It demonstrates the
// core engine driven by a real schema parser, the way an annotation
// processor or build-time codegen tool would.
package main

import (
	"fmt"
	"os"

	"go.uber.org/thriftrw/ast"
	"go.uber.org/thriftrw/idl"

	"github.com/javacomposer/javacomposer/javacode"
	"github.com/javacomposer/javacomposer/javaspec"
	"github.com/javacomposer/javacomposer/render"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: thriftjava <input.thrift> <java-package>")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "thriftjava:", err)
		os.Exit(1)
	}
}

func run(inputPath, javaPackage string, out *os.File) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	program, err := idl.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	for _, def := range program.Definitions {
		st, ok := def.(*ast.Struct)
		if !ok {
			continue
		}
		spec, err := structToJavaType(st, javaPackage)
		if err != nil {
			return fmt.Errorf("struct %s: %w", st.Name, err)
		}
		file := javaspec.NewFile(javaPackage, spec)
		if err := render.RenderFile(out, file); err != nil {
			return fmt.Errorf("rendering %s: %w", st.Name, err)
		}
	}
	return nil
}

// structToJavaType builds an immutable Java POJO for a Thrift struct:
// one private final field per Thrift field, an all-args constructor,
// a getter per field, and equals/hashCode/toString.
func structToJavaType(st *ast.Struct, javaPackage string) (*javaspec.TypeSpec, error) {
	b := javaspec.NewClass(st.Name).AddModifiers(javaspec.PublicMod, javaspec.FinalMod)
	if st.Doc != "" {
		b.Javadoc("$L", st.Doc)
	}

	ctor := javaspec.NewConstructor().AddModifiers(javaspec.PublicMod)
	var fieldNames []string

	for _, f := range st.Fields {
		fieldType, err := thriftTypeToJava(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fieldName := lowerCamel(f.Name)
		fieldNames = append(fieldNames, fieldName)

		field, err := javaspec.NewField(fieldType, fieldName).AddModifiers(javaspec.PrivateMod, javaspec.FinalMod).Build()
		if err != nil {
			return nil, err
		}
		b.AddField(field)

		ctor.AddParameter(javaspec.NewParameter(fieldType, fieldName))
		ctor.AddStatement("this.$N = $N;", fieldName, fieldName)

		getter, err := javaspec.NewMethod("get"+upperCamel(f.Name)).
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

	equals, err := equalsMethod(st.Name, fieldNames)
	if err != nil {
		return nil, err
	}
	b.AddMethod(equals)

	hashCode, err := hashCodeMethod(fieldNames)
	if err != nil {
		return nil, err
	}
	b.AddMethod(hashCode)

	toString, err := toStringMethod(st.Name, fieldNames)
	if err != nil {
		return nil, err
	}
	b.AddMethod(toString)

	return b.Build()
}

// equalsMethod builds an Objects.equals-based equals(Object) override
// comparing every field, the conventional shape for an immutable POJO.
func equalsMethod(typeName string, fieldNames []string) (*javaspec.MethodSpec, error) {
	objects := javacode.NewClassRef("java.util", "Objects")
	m := javaspec.NewMethod("equals").
		AddModifiers(javaspec.PublicMod).
		AddAnnotation(mustAnnotation(javacode.NewClassRef("java.lang", "Override"))).
		Returns(javacode.NewPrimitive(javacode.Boolean)).
		AddParameter(javaspec.NewParameter(javacode.NewClassRef("java.lang", "Object"), "o")).
		AddStatement("if (this == o) return true;").
		AddStatement("if (!(o instanceof $N)) return false;", typeName).
		AddStatement("$N other = ($N) o;", typeName, typeName)

	if len(fieldNames) == 0 {
		m.AddStatement("return true;")
		return m.Build()
	}

	frag := javacode.NewBuilder()
	frag.Add("return ")
	for i, name := range fieldNames {
		if i > 0 {
			frag.Add(" && ")
		}
		frag.Add("$T.equals(this.$N, other.$N)", objects, name, name)
	}
	built, err := frag.Build()
	if err != nil {
		return nil, err
	}
	m.AddStatement("$L;", built)
	return m.Build()
}

// hashCodeMethod builds an Objects.hash-based hashCode override.
func hashCodeMethod(fieldNames []string) (*javaspec.MethodSpec, error) {
	objects := javacode.NewClassRef("java.util", "Objects")
	m := javaspec.NewMethod("hashCode").
		AddModifiers(javaspec.PublicMod).
		AddAnnotation(mustAnnotation(javacode.NewClassRef("java.lang", "Override"))).
		Returns(javacode.NewPrimitive(javacode.Int))

	frag := javacode.NewBuilder()
	frag.Add("$T.hash(", objects)
	for i, name := range fieldNames {
		if i > 0 {
			frag.Add(", ")
		}
		frag.Add("this.$N", name)
	}
	frag.Add(")")
	built, err := frag.Build()
	if err != nil {
		return nil, err
	}
	m.AddStatement("return $L;", built)
	return m.Build()
}

// toStringMethod builds a toString override listing every field as
// "TypeName{field=value, ...}".
func toStringMethod(typeName string, fieldNames []string) (*javaspec.MethodSpec, error) {
	m := javaspec.NewMethod("toString").
		AddModifiers(javaspec.PublicMod).
		AddAnnotation(mustAnnotation(javacode.NewClassRef("java.lang", "Override"))).
		Returns(javacode.NewClassRef("java.lang", "String"))

	frag := javacode.NewBuilder()
	frag.Add("$S", typeName+"{")
	for i, name := range fieldNames {
		sep := ", "
		if i == 0 {
			sep = ""
		}
		frag.Add(" + $S + this.$N", sep+name+"=", name)
	}
	frag.Add(" + $S", "}")
	built, err := frag.Build()
	if err != nil {
		return nil, err
	}
	m.AddStatement("return $L;", built)
	return m.Build()
}

// mustAnnotation builds a bare marker annotation (no members); used for
// @Override, which never fails to build.
func mustAnnotation(ref *javacode.ClassRef) javacode.AnnotationSpec {
	anno, err := javacode.NewAnnotation(ref).Build()
	if err != nil {
		panic(err)
	}
	return anno
}

// thriftTypeToJava maps a Thrift field type to a TypeRef, boxing
// primitives (a Thrift struct field is nullable, unlike a Java primitive).
func thriftTypeToJava(t ast.Type) (javacode.TypeRef, error) {
	switch v := t.(type) {
	case ast.BaseType:
		switch v.ID {
		case ast.BoolTypeID:
			return javacode.NewPrimitive(javacode.Boolean).Box(), nil
		case ast.I8TypeID, ast.I16TypeID, ast.I32TypeID:
			return javacode.NewPrimitive(javacode.Int).Box(), nil
		case ast.I64TypeID:
			return javacode.NewPrimitive(javacode.Long).Box(), nil
		case ast.DoubleTypeID:
			return javacode.NewPrimitive(javacode.Double).Box(), nil
		case ast.StringTypeID, ast.BinaryTypeID:
			return javacode.NewClassRef("java.lang", "String"), nil
		default:
			return nil, fmt.Errorf("unsupported base type %v", v.ID)
		}
	case ast.ListType:
		elem, err := thriftTypeToJava(v.ValueType)
		if err != nil {
			return nil, err
		}
		list, err := javacode.ClassRefOf("java.util", "List")
		if err != nil {
			return nil, err
		}
		return javacode.NewParameterizedType(list, elem), nil
	case ast.SetType:
		elem, err := thriftTypeToJava(v.ValueType)
		if err != nil {
			return nil, err
		}
		set, err := javacode.ClassRefOf("java.util", "Set")
		if err != nil {
			return nil, err
		}
		return javacode.NewParameterizedType(set, elem), nil
	case ast.MapType:
		key, err := thriftTypeToJava(v.KeyType)
		if err != nil {
			return nil, err
		}
		val, err := thriftTypeToJava(v.ValueType)
		if err != nil {
			return nil, err
		}
		m, err := javacode.ClassRefOf("java.util", "Map")
		if err != nil {
			return nil, err
		}
		return javacode.NewParameterizedType(m, key, val), nil
	case ast.TypeReference:
		return javacode.NewClassRef("", v.Name), nil
	default:
		return nil, fmt.Errorf("unsupported Thrift type %T", t)
	}
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
