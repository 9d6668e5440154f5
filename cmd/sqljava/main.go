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

// Command sqljava reads a SQL file of CREATE TABLE statements and renders
// one Java entity class per table: a private field per column, a getter
// per field, and an all-args constructor. It is the SQL DDL counterpart to
// cmd/thriftjava and cmd/protojava.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/xwb1989/sqlparser"

	"github.com/javacomposer/javacomposer/javacode"
	"github.com/javacomposer/javacomposer/javaspec"
	"github.com/javacomposer/javacomposer/render"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: sqljava <input.sql> <java-package>")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "sqljava:", err)
		os.Exit(1)
	}
}

func run(inputPath, javaPackage string, out *os.File) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	tokenizer := sqlparser.NewStrTokenizer(string(data))
	for {
		stmt, err := sqlparser.ParseNext(tokenizer)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing %s: %w", inputPath, err)
		}

		ddl, ok := stmt.(*sqlparser.DDL)
		if !ok || ddl.Action != sqlparser.CreateStr || ddl.TableSpec == nil {
			continue
		}

		spec, err := tableToJavaType(ddl, javaPackage)
		if err != nil {
			return fmt.Errorf("table %s: %w", ddl.NewName.Name.String(), err)
		}
		file := javaspec.NewFile(javaPackage, spec)
		if err := render.RenderFile(out, file); err != nil {
			return fmt.Errorf("rendering %s: %w", ddl.NewName.Name.String(), err)
		}
	}
	return nil
}

// tableToJavaType builds an immutable Java entity class for a CREATE TABLE
// statement, the same shape cmd/thriftjava and cmd/protojava build for
// their respective schema elements.
func tableToJavaType(ddl *sqlparser.DDL, javaPackage string) (*javaspec.TypeSpec, error) {
	className := upperCamel(ddl.NewName.Name.String())
	b := javaspec.NewClass(className).AddModifiers(javaspec.PublicMod, javaspec.FinalMod)

	ctor := javaspec.NewConstructor().AddModifiers(javaspec.PublicMod)

	for _, col := range ddl.TableSpec.Columns {
		fieldType, err := columnTypeToJava(col)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name.String(), err)
		}
		fieldName := lowerCamel(col.Name.String())

		field, err := javaspec.NewField(fieldType, fieldName).AddModifiers(javaspec.PrivateMod, javaspec.FinalMod).Build()
		if err != nil {
			return nil, err
		}
		b.AddField(field)

		ctor.AddParameter(javaspec.NewParameter(fieldType, fieldName))
		ctor.AddStatement("this.$N = $N;", fieldName, fieldName)

		getter, err := javaspec.NewMethod("get"+upperCamel(col.Name.String())).
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

// sqlColumnTypes maps common MySQL column type keywords to boxed Java
// equivalents: a SQL column is nullable unless declared NOT NULL, so the
// generated field is always boxed rather than a bare primitive.
var sqlColumnTypes = map[string]func() javacode.TypeRef{
	"tinyint":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"smallint":  func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"mediumint": func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"int":       func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"integer":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Int).Box() },
	"bigint":    func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Long).Box() },
	"float":     func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Float).Box() },
	"double":    func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Double).Box() },
	"decimal":   func() javacode.TypeRef { return javacode.NewClassRef("java.math", "BigDecimal") },
	"bool":      func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Boolean).Box() },
	"boolean":   func() javacode.TypeRef { return javacode.NewPrimitive(javacode.Boolean).Box() },
	"char":      func() javacode.TypeRef { return javacode.NewClassRef("java.lang", "String") },
	"varchar":   func() javacode.TypeRef { return javacode.NewClassRef("java.lang", "String") },
	"text":      func() javacode.TypeRef { return javacode.NewClassRef("java.lang", "String") },
	"date":      func() javacode.TypeRef { return javacode.NewClassRef("java.time", "LocalDate") },
	"datetime":  func() javacode.TypeRef { return javacode.NewClassRef("java.time", "LocalDateTime") },
	"timestamp": func() javacode.TypeRef { return javacode.NewClassRef("java.time", "Instant") },
}

func columnTypeToJava(col *sqlparser.ColumnDefinition) (javacode.TypeRef, error) {
	ctor, ok := sqlColumnTypes[col.Type.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported column type %q", col.Type.Type)
	}
	return ctor(), nil
}

func lowerCamel(s string) string {
	var out []rune
	upperNext := false
	for i, r := range s {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			out = append(out, toUpper(r))
			upperNext = false
			continue
		}
		if i == 0 {
			out = append(out, toLower(r))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func upperCamel(s string) string {
	camel := lowerCamel(s)
	if camel == "" {
		return camel
	}
	r := []rune(camel)
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
