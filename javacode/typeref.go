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

// Package javacode holds the algebraic representation of Java type references
// (TypeRef) and the format-string fragment model (Fragment) used to describe
// snippets of Java source with typed holes. The two families live in one
// package because they are mutually recursive: an annotation attached to a
// TypeRef carries Fragment-valued members, and a $T hole inside a Fragment
// carries a TypeRef argument.
package javacode

import (
	"errors"
	"fmt"
	"strings"
)

// PrimitiveKind enumerates the eight Java primitive types plus void.
type PrimitiveKind int

// The primitive kinds, in the order the JLS lists them.
const (
	Void PrimitiveKind = iota
	Boolean
	Byte
	Short
	Int
	Long
	Char
	Float
	Double
)

// String returns the keyword spelling of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case Void:
		return "void"
	case Boolean:
		return "boolean"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Char:
		return "char"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// boxedNames maps each primitive kind to its java.lang boxed class simple name.
var boxedNames = map[PrimitiveKind]string{
	Void:    "Void",
	Boolean: "Boolean",
	Byte:    "Byte",
	Short:   "Short",
	Int:     "Integer",
	Long:    "Long",
	Char:    "Character",
	Float:   "Float",
	Double:  "Double",
}

// unboxedKinds is the reverse of boxedNames, keyed by java.lang simple name.
var unboxedKinds = map[string]PrimitiveKind{
	"Void":      Void,
	"Boolean":   Boolean,
	"Byte":      Byte,
	"Short":     Short,
	"Integer":   Int,
	"Long":      Long,
	"Character": Char,
	"Float":     Float,
	"Double":    Double,
}

// TypeRef is the closed sum type of every Java type reference: Primitive,
// *ClassRef, *ArrayType, *ParameterizedType, *TypeVariable, *WildcardType.
// Values are immutable once constructed; operations that appear to mutate
// (Annotated, Box, Nested, ...) return a new value.
type TypeRef interface {
	typeRef()
	// Annotations returns the annotation uses attached directly to this
	// type reference (not to any component type).
	Annotations() []AnnotationSpec
}

// Primitive is a bare Java primitive type, or void. Primitives never carry
// annotations in their unboxed form (invariant (a) of the data model).
type Primitive struct {
	Kind PrimitiveKind
}

func (*Primitive) typeRef() {}
func (*Primitive) Annotations() []AnnotationSpec { return nil }

// NewPrimitive constructs a TypeRef for the given primitive kind.
func NewPrimitive(kind PrimitiveKind) *Primitive {
	return &Primitive{Kind: kind}
}

// Box converts a primitive to its boxed ClassRef in java.lang. Box is the
// identity on every non-Primitive TypeRef.
func (p *Primitive) Box() TypeRef {
	name, ok := boxedNames[p.Kind]
	if !ok {
		name = "Object"
	}
	return &ClassRef{Package: "java.lang", SimpleNames: []string{name}}
}

// ClassRef is a (possibly nested) named class or interface type, e.g.
// java.util.Map.Entry. SimpleNames is non-empty and encodes outer-to-inner
// nesting; SimpleNames[0] is the top-level class.
type ClassRef struct {
	Package     string
	SimpleNames []string
	Anns        []AnnotationSpec
}

func (*ClassRef) typeRef() {}
func (c *ClassRef) Annotations() []AnnotationSpec { return c.Anns }

// NewClassRef builds a top-level class reference from a package and a single
// simple name.
func NewClassRef(pkg, simpleName string) *ClassRef {
	return &ClassRef{Package: pkg, SimpleNames: []string{simpleName}}
}

// ClassRefOf builds a class reference from explicit outer-to-inner nested
// simple names, e.g. ClassRefOf("java.util", "Map", "Entry").
func ClassRefOf(pkg string, simpleNames ...string) (*ClassRef, error) {
	if len(simpleNames) == 0 {
		return nil, errors.New("javacode: ClassRefOf requires at least one simple name")
	}
	names := make([]string, len(simpleNames))
	copy(names, simpleNames)
	return &ClassRef{Package: pkg, SimpleNames: names}, nil
}

// Nested returns a copy of c with an additional simple name appended,
// denoting a member type nested inside c.
func (c *ClassRef) Nested(name string) *ClassRef {
	names := append(append([]string{}, c.SimpleNames...), name)
	return &ClassRef{Package: c.Package, SimpleNames: names, Anns: c.Anns}
}

// NestedParameterized returns a Parameterized type whose raw type is c
// nested with name, instantiated with the given type arguments.
func (c *ClassRef) NestedParameterized(name string, args ...TypeRef) *ParameterizedType {
	return &ParameterizedType{Raw: c.Nested(name), Args: args}
}

// CanonicalName returns package + "." + simple names joined by ".".
func (c *ClassRef) CanonicalName() string {
	return joinPackageAndNames(c.Package, c.SimpleNames, ".")
}

// ReflectionName is like CanonicalName but joins nested names with "$".
func (c *ClassRef) ReflectionName() string {
	if len(c.SimpleNames) == 0 {
		return c.Package
	}
	head := c.SimpleNames[0]
	tail := strings.Join(c.SimpleNames[1:], "$")
	local := head
	if tail != "" {
		local = head + "$" + tail
	}
	if c.Package == "" {
		return local
	}
	return c.Package + "." + local
}

// SimpleName returns the innermost (most-nested) simple name.
func (c *ClassRef) SimpleName() string {
	return c.SimpleNames[len(c.SimpleNames)-1]
}

// Unbox converts a boxed java.lang class back to its primitive form. It
// fails when applied to a type that is not one of the eight boxed wrapper
// classes (or Void).
func (c *ClassRef) Unbox() (*Primitive, error) {
	if c.Package == "java.lang" && len(c.SimpleNames) == 1 {
		if kind, ok := unboxedKinds[c.SimpleNames[0]]; ok {
			return &Primitive{Kind: kind}, nil
		}
	}
	return nil, fmt.Errorf("javacode: %s cannot be unboxed", c.CanonicalName())
}

// ArrayType is a Java array type, e.g. String[]. IsVarargs marks a trailing
// parameter array that should render as "..." instead of "[]".
type ArrayType struct {
	Component TypeRef
	IsVarargs bool
	Anns      []AnnotationSpec
}

func (*ArrayType) typeRef() {}
func (a *ArrayType) Annotations() []AnnotationSpec { return a.Anns }

// NewArrayType builds an array type over the given component type.
func NewArrayType(component TypeRef) *ArrayType {
	return &ArrayType{Component: component}
}

// ParameterizedType is a generic type instantiation, e.g. List<String> or
// Outer<T>.Inner<U>. Enclosing is non-nil only for a parameterized member
// type of another parameterized type.
type ParameterizedType struct {
	Raw       *ClassRef
	Args      []TypeRef
	Enclosing *ParameterizedType
	Anns      []AnnotationSpec
}

func (*ParameterizedType) typeRef() {}
func (p *ParameterizedType) Annotations() []AnnotationSpec { return p.Anns }

// NewParameterizedType instantiates raw with the given type arguments.
func NewParameterizedType(raw *ClassRef, args ...TypeRef) *ParameterizedType {
	return &ParameterizedType{Raw: raw, Args: args}
}

// Nested returns a parameterized member type nested inside p, e.g. turning
// Outer<T> into Outer<T>.Inner<U> when called as p.Nested("Inner", u).
func (p *ParameterizedType) Nested(name string, args ...TypeRef) *ParameterizedType {
	return &ParameterizedType{
		Raw:       p.Raw.Nested(name),
		Args:      args,
		Enclosing: p,
	}
}

// TypeVariable is a declared or referenced generic type parameter, e.g. T
// or T extends Comparable<T>. Bounds are only emitted at the declaration
// site (class/method header); a use site emits only Name.
type TypeVariable struct {
	Name   string
	Bounds []TypeRef
	Anns   []AnnotationSpec
}

func (*TypeVariable) typeRef() {}
func (t *TypeVariable) Annotations() []AnnotationSpec { return t.Anns }

// NewTypeVariable builds a type variable with the given name and bounds.
func NewTypeVariable(name string, bounds ...TypeRef) *TypeVariable {
	return &TypeVariable{Name: name, Bounds: bounds}
}

// WildcardType is a Java wildcard, e.g. ? extends Number or ? super Integer.
// Exactly one of UpperBounds or LowerBounds may be non-empty;
// "? extends Object" canonicalises to a bare "?" (empty UpperBounds).
type WildcardType struct {
	UpperBounds []TypeRef
	LowerBounds []TypeRef
	Anns        []AnnotationSpec
}

func (*WildcardType) typeRef() {}
func (w *WildcardType) Annotations() []AnnotationSpec { return w.Anns }

// objectClassRef is the canonical java.lang.Object reference used to
// recognise (and canonicalise away) "? extends Object".
var objectClassRef = &ClassRef{Package: "java.lang", SimpleNames: []string{"Object"}}

// WildcardSubtypeOf builds "? extends bound", canonicalising "? extends
// Object" down to a bare wildcard.
func WildcardSubtypeOf(bound TypeRef) *WildcardType {
	if cr, ok := bound.(*ClassRef); ok && cr.CanonicalName() == objectClassRef.CanonicalName() {
		return &WildcardType{}
	}
	return &WildcardType{UpperBounds: []TypeRef{bound}}
}

// WildcardSupertypeOf builds "? super bound".
func WildcardSupertypeOf(bound TypeRef) *WildcardType {
	return &WildcardType{LowerBounds: []TypeRef{bound}}
}

// Annotated returns a copy of ref with its annotation set replaced by anns.
// It never mutates ref. Applying it to a Primitive boxes the primitive
// first, since bare primitives cannot carry annotations (invariant (a)).
func Annotated(ref TypeRef, anns ...AnnotationSpec) TypeRef {
	switch t := ref.(type) {
	case *Primitive:
		boxed := t.Box().(*ClassRef)
		cp := *boxed
		cp.Anns = anns
		return &cp
	case *ClassRef:
		cp := *t
		cp.Anns = anns
		return &cp
	case *ArrayType:
		cp := *t
		cp.Anns = anns
		return &cp
	case *ParameterizedType:
		cp := *t
		cp.Anns = anns
		return &cp
	case *TypeVariable:
		cp := *t
		cp.Anns = anns
		return &cp
	case *WildcardType:
		cp := *t
		cp.Anns = anns
		return &cp
	default:
		return ref
	}
}

// WithoutAnnotations returns a copy of ref with no annotations attached.
func WithoutAnnotations(ref TypeRef) TypeRef {
	if _, ok := ref.(*Primitive); ok {
		return ref
	}
	return Annotated(ref)
}

// Unbox converts a boxed primitive wrapper TypeRef back to its primitive
// form. It fails for any TypeRef that is not a java.lang wrapper class.
func Unbox(ref TypeRef) (*Primitive, error) {
	cr, ok := ref.(*ClassRef)
	if !ok {
		return nil, fmt.Errorf("javacode: %T cannot be unboxed", ref)
	}
	return cr.Unbox()
}

// Box converts a TypeRef to its boxed form. It is the identity on anything
// that is not a bare Primitive.
func Box(ref TypeRef) TypeRef {
	if p, ok := ref.(*Primitive); ok {
		return p.Box()
	}
	return ref
}

func joinPackageAndNames(pkg string, names []string, sep string) string {
	local := strings.Join(names, sep)
	if pkg == "" {
		return local
	}
	return pkg + "." + local
}
