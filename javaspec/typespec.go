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
	"fmt"
	"sort"
	"strings"

	"github.com/javacomposer/javacomposer/codewriter"
	"github.com/javacomposer/javacomposer/javacode"
)

// TypeKind distinguishes five declaration shapes: the four mast.java.go models
// as distinct node types (JavaClassDeclaration, JavaInterfaceDeclaration,
// JavaEnumDeclaration, JavaAnnotationDeclaration) plus the Java 16 record
// form this package adds.
type TypeKind int

const (
	ClassKind TypeKind = iota
	InterfaceKind
	EnumKind
	AnnotationKind
	RecordKind
)

func (k TypeKind) keyword() string {
	switch k {
	case ClassKind:
		return "class"
	case InterfaceKind:
		return "interface"
	case EnumKind:
		return "enum"
	case AnnotationKind:
		return "@interface"
	case RecordKind:
		return "record"
	default:
		return "class"
	}
}

// EnumConstantSpec is one constant of an enum declaration, optionally with
// constructor arguments and/or an anonymous class body overriding methods.
type EnumConstantSpec struct {
	Name      string
	Arguments *javacode.Fragment // nil if the constant's constructor takes no args
	Body      []*MethodSpec      // non-empty for an anonymous constant body
}

// TypeSpec is a class, interface, enum, annotation, or record declaration.
type TypeSpec struct {
	Kind          TypeKind
	Name          string
	Modifiers     []Modifier
	Annotations   []javacode.AnnotationSpec
	Javadoc       *javacode.Fragment
	TypeVariables []*javacode.TypeVariable
	SuperClass    javacode.TypeRef   // class only
	Interfaces    []javacode.TypeRef // implements (class) or extends (interface)
	RecordComponents []ParameterSpec // record only

	EnumConstants []EnumConstantSpec
	Fields        []*FieldSpec
	StaticBlock   *javacode.Fragment
	Methods       []*MethodSpec
	NestedTypes   []*TypeSpec
}

// TypeBuilder builds a TypeSpec incrementally.
type TypeBuilder struct {
	spec TypeSpec
	err  error
}

// NewClass starts building a class declaration.
func NewClass(name string) *TypeBuilder { return &TypeBuilder{spec: TypeSpec{Kind: ClassKind, Name: name}} }

// NewInterface starts building an interface declaration.
func NewInterface(name string) *TypeBuilder {
	return &TypeBuilder{spec: TypeSpec{Kind: InterfaceKind, Name: name}}
}

// NewEnum starts building an enum declaration.
func NewEnum(name string) *TypeBuilder { return &TypeBuilder{spec: TypeSpec{Kind: EnumKind, Name: name}} }

// NewAnnotationType starts building an annotation type declaration.
func NewAnnotationType(name string) *TypeBuilder {
	return &TypeBuilder{spec: TypeSpec{Kind: AnnotationKind, Name: name}}
}

// NewRecord starts building a record declaration.
func NewRecord(name string) *TypeBuilder {
	return &TypeBuilder{spec: TypeSpec{Kind: RecordKind, Name: name}}
}

// AddModifiers appends modifiers.
func (b *TypeBuilder) AddModifiers(mods ...Modifier) *TypeBuilder {
	b.spec.Modifiers = append(b.spec.Modifiers, mods...)
	return b
}

// AddAnnotation appends an annotation use.
func (b *TypeBuilder) AddAnnotation(a javacode.AnnotationSpec) *TypeBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// Javadoc sets the type's doc comment.
func (b *TypeBuilder) Javadoc(format string, args ...any) *TypeBuilder {
	frag, err := javacode.NewFragment(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Javadoc = frag
	return b
}

// AddTypeVariable appends a declared generic type parameter.
func (b *TypeBuilder) AddTypeVariable(tv *javacode.TypeVariable) *TypeBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, tv)
	return b
}

// Superclass sets the extended class (class declarations only).
func (b *TypeBuilder) Superclass(t javacode.TypeRef) *TypeBuilder {
	b.spec.SuperClass = t
	return b
}

// AddInterface appends an implemented interface (class) or extended
// interface (interface declaration).
func (b *TypeBuilder) AddInterface(t javacode.TypeRef) *TypeBuilder {
	b.spec.Interfaces = append(b.spec.Interfaces, t)
	return b
}

// AddRecordComponent appends a record component (record declarations
// only); it becomes both a canonical-constructor parameter and a field.
func (b *TypeBuilder) AddRecordComponent(p ParameterSpec) *TypeBuilder {
	b.spec.RecordComponents = append(b.spec.RecordComponents, p)
	return b
}

// AddEnumConstant appends an enum constant (enum declarations only).
func (b *TypeBuilder) AddEnumConstant(c EnumConstantSpec) *TypeBuilder {
	b.spec.EnumConstants = append(b.spec.EnumConstants, c)
	return b
}

// AddField appends a field declaration.
func (b *TypeBuilder) AddField(f *FieldSpec) *TypeBuilder {
	b.spec.Fields = append(b.spec.Fields, f)
	return b
}

// StaticBlock sets a static initializer block.
func (b *TypeBuilder) StaticBlock(body *javacode.Fragment) *TypeBuilder {
	b.spec.StaticBlock = body
	return b
}

// AddMethod appends a method or constructor declaration.
func (b *TypeBuilder) AddMethod(m *MethodSpec) *TypeBuilder {
	b.spec.Methods = append(b.spec.Methods, m)
	return b
}

// AddNestedType appends a nested type declaration.
func (b *TypeBuilder) AddNestedType(t *TypeSpec) *TypeBuilder {
	b.spec.NestedTypes = append(b.spec.NestedTypes, t)
	return b
}

// Build finalizes the type spec, validating the shape constraints that
// are specific to each declaration kind (e.g. only an enum may have enum
// constants).
func (b *TypeBuilder) Build() (*TypeSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	spec := b.spec
	if spec.Kind != EnumKind && len(spec.EnumConstants) > 0 {
		return nil, fmt.Errorf("javaspec: only an enum declaration may have enum constants, got %v", spec.Name)
	}
	if spec.Kind != RecordKind && len(spec.RecordComponents) > 0 {
		return nil, fmt.Errorf("javaspec: only a record declaration may have record components, got %v", spec.Name)
	}
	if spec.Kind != ClassKind && spec.SuperClass != nil {
		return nil, fmt.Errorf("javaspec: only a class declaration may extend a superclass, got %v", spec.Name)
	}
	return &spec, nil
}

// EmitTo renders the full type declaration: javadoc, annotations,
// modifiers, header (extends/implements), and braced body.
func (t *TypeSpec) EmitTo(w *codewriter.CodeWriter) error {
	if t.Javadoc != nil {
		if err := w.EmitJavadoc(t.Javadoc); err != nil {
			return err
		}
	}
	for _, a := range t.Annotations {
		w.WriteIndent()
		if err := w.EmitAnnotation(a); err != nil {
			return err
		}
		if err := (&rawText{"\n"}).EmitTo(w); err != nil {
			return err
		}
	}

	b := javacode.NewBuilder()
	w.WriteIndent()
	for _, kw := range modifierKeywordsOf(canonicalModifiers(t.Modifiers, nil)) {
		b.Add(kw + " ")
	}
	b.Add(t.Kind.keyword() + " $N", t.Name)
	if len(t.TypeVariables) > 0 {
		b.Add("<")
		for i, tv := range t.TypeVariables {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$L", &typeVariableDecl{tv})
		}
		b.Add(">")
	}
	if t.Kind == RecordKind {
		b.Add("(")
		for i, p := range t.RecordComponents {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$L", p)
		}
		b.Add(")")
	}
	if t.Kind == ClassKind && t.SuperClass != nil {
		b.Add(" extends $T", t.SuperClass)
	}
	if len(t.Interfaces) > 0 {
		if t.Kind == InterfaceKind {
			b.Add(" extends ")
		} else {
			b.Add(" implements ")
		}
		for i, iface := range t.Interfaces {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$T", iface)
		}
	}
	b.Add(" {\n")
	frag, err := b.Build()
	if err != nil {
		return err
	}
	if err := w.EmitFragment(frag); err != nil {
		return err
	}

	w.Indent()
	w.PushType(t.Name)

	if err := t.emitEnumConstants(w); err != nil {
		return err
	}

	var bodyErr error
	if w.Dialect() == codewriter.FoundationDialect {
		bodyErr = t.emitFoundationBody(w)
	} else {
		bodyErr = t.emitJavaPoetBody(w)
	}
	if bodyErr != nil {
		return bodyErr
	}

	w.PopType()
	w.Unindent()
	w.WriteIndent()
	return (&rawText{"}\n"}).EmitTo(w)
}

// emitJavaPoetBody emits fields, the static initializer, methods, and nested
// types in insertion order, one blank separator line before every method and
// every nested type.
func (t *TypeSpec) emitJavaPoetBody(w *codewriter.CodeWriter) error {
	for _, f := range t.Fields {
		if err := f.EmitTo(w); err != nil {
			return err
		}
	}
	if err := t.emitStaticBlock(w); err != nil {
		return err
	}
	for _, m := range t.Methods {
		if err := (&rawText{"\n"}).EmitTo(w); err != nil {
			return err
		}
		if err := m.EmitTo(w); err != nil {
			return err
		}
	}
	for _, nested := range t.NestedTypes {
		if err := (&rawText{"\n"}).EmitTo(w); err != nil {
			return err
		}
		if err := nested.EmitTo(w); err != nil {
			return err
		}
	}
	return nil
}

// emitFoundationBody emits the same members grouped by category under a
// decorated headline comment, each category's members sorted
// case-insensitively by name: fields, the static initializer, constructors
// (in declaration order — they share no distinguishing name to sort by),
// methods, then nested types.
func (t *TypeSpec) emitFoundationBody(w *codewriter.CodeWriter) error {
	fields := append([]*FieldSpec(nil), t.Fields...)
	sort.Slice(fields, func(i, j int) bool {
		return strings.ToLower(fields[i].Name) < strings.ToLower(fields[j].Name)
	})
	if len(fields) > 0 {
		if err := emitFoundationHeadline(w, "Fields"); err != nil {
			return err
		}
		for _, f := range fields {
			if err := f.EmitTo(w); err != nil {
				return err
			}
		}
	}

	if err := t.emitStaticBlock(w); err != nil {
		return err
	}

	var ctors, methods []*MethodSpec
	for _, m := range t.Methods {
		if m.Name == ConstructorName {
			ctors = append(ctors, m)
		} else {
			methods = append(methods, m)
		}
	}
	sort.Slice(methods, func(i, j int) bool {
		return strings.ToLower(methods[i].Name) < strings.ToLower(methods[j].Name)
	})

	if err := emitFoundationCategory(w, "Constructors", ctors); err != nil {
		return err
	}
	if err := emitFoundationCategory(w, "Methods", methods); err != nil {
		return err
	}

	if len(t.NestedTypes) > 0 {
		nested := append([]*TypeSpec(nil), t.NestedTypes...)
		sort.Slice(nested, func(i, j int) bool {
			return strings.ToLower(nested[i].Name) < strings.ToLower(nested[j].Name)
		})
		if err := (&rawText{"\n"}).EmitTo(w); err != nil {
			return err
		}
		if err := emitFoundationHeadline(w, "Nested Types"); err != nil {
			return err
		}
		for i, nt := range nested {
			if i > 0 {
				if err := (&rawText{"\n"}).EmitTo(w); err != nil {
					return err
				}
			}
			if err := nt.EmitTo(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitFoundationCategory(w *codewriter.CodeWriter, title string, methods []*MethodSpec) error {
	if len(methods) == 0 {
		return nil
	}
	if err := (&rawText{"\n"}).EmitTo(w); err != nil {
		return err
	}
	if err := emitFoundationHeadline(w, title); err != nil {
		return err
	}
	for i, m := range methods {
		if i > 0 {
			if err := (&rawText{"\n"}).EmitTo(w); err != nil {
				return err
			}
		}
		if err := m.EmitTo(w); err != nil {
			return err
		}
	}
	return nil
}

// emitFoundationHeadline writes a decorated banner comment naming a member
// category, e.g. "// ---------------------------------- Fields ----------------------------------\n".
func emitFoundationHeadline(w *codewriter.CodeWriter, title string) error {
	const width = 76
	label := " " + title + " "
	pad := width - len(label)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left
	return (&rawText{"// " + strings.Repeat("-", left) + label + strings.Repeat("-", right) + "\n"}).EmitTo(w)
}

func (t *TypeSpec) emitStaticBlock(w *codewriter.CodeWriter) error {
	if t.StaticBlock == nil {
		return nil
	}
	w.WriteIndent()
	if err := (&rawText{"static {\n"}).EmitTo(w); err != nil {
		return err
	}
	w.Indent()
	if err := w.EmitFragment(t.StaticBlock); err != nil {
		return err
	}
	w.Unindent()
	w.WriteIndent()
	return (&rawText{"}\n"}).EmitTo(w)
}

func (t *TypeSpec) emitEnumConstants(w *codewriter.CodeWriter) error {
	for i, c := range t.EnumConstants {
		w.WriteIndent()
		b := javacode.NewBuilder()
		b.Add("$N", c.Name)
		if c.Arguments != nil {
			b.Add("(").AddFragment(c.Arguments).Add(")")
		}
		frag, err := b.Build()
		if err != nil {
			return err
		}
		if err := w.EmitFragment(frag); err != nil {
			return err
		}
		if len(c.Body) > 0 {
			if err := (&rawText{" {\n"}).EmitTo(w); err != nil {
				return err
			}
			w.Indent()
			for _, m := range c.Body {
				if err := m.EmitTo(w); err != nil {
					return err
				}
			}
			w.Unindent()
			w.WriteIndent()
			if err := (&rawText{"}"}).EmitTo(w); err != nil {
				return err
			}
		}
		if i == len(t.EnumConstants)-1 {
			if err := (&rawText{";\n"}).EmitTo(w); err != nil {
				return err
			}
		} else {
			if err := (&rawText{",\n"}).EmitTo(w); err != nil {
				return err
			}
		}
	}
	if len(t.EnumConstants) > 0 && (len(t.Fields) > 0 || len(t.Methods) > 0) {
		if err := (&rawText{"\n"}).EmitTo(w); err != nil {
			return err
		}
	}
	return nil
}
