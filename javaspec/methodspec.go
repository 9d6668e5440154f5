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
	"github.com/javacomposer/javacomposer/codewriter"
	"github.com/javacomposer/javacomposer/javacode"
)

// ConstructorName is the sentinel MethodSpec.Name value denoting a
// constructor rather than a named method; such a method omits its return
// type and is emitted under the enclosing type's simple name.
const ConstructorName = "<init>"

// MethodSpec is a method or constructor declaration.
type MethodSpec struct {
	Name          string
	ReturnType    javacode.TypeRef // nil/void for a constructor or void method
	Modifiers     []Modifier
	Annotations   []javacode.AnnotationSpec
	TypeVariables []*javacode.TypeVariable
	Parameters    []ParameterSpec
	Varargs       bool // last parameter's array type renders as "..."
	Exceptions    []javacode.TypeRef
	Javadoc       *javacode.Fragment
	Body          *javacode.Fragment // nil for an abstract/interface/native method
}

// MethodBuilder builds a MethodSpec incrementally.
type MethodBuilder struct {
	spec MethodSpec
	body *javacode.Builder
	err  error
}

// NewMethod starts building a named method.
func NewMethod(name string) *MethodBuilder {
	return &MethodBuilder{spec: MethodSpec{Name: name}, body: javacode.NewBuilder()}
}

// NewConstructor starts building a constructor.
func NewConstructor() *MethodBuilder {
	return NewMethod(ConstructorName)
}

// Returns sets the method's return type.
func (b *MethodBuilder) Returns(t javacode.TypeRef) *MethodBuilder {
	b.spec.ReturnType = t
	return b
}

// AddModifiers appends modifiers.
func (b *MethodBuilder) AddModifiers(mods ...Modifier) *MethodBuilder {
	b.spec.Modifiers = append(b.spec.Modifiers, mods...)
	return b
}

// AddAnnotation appends an annotation use.
func (b *MethodBuilder) AddAnnotation(a javacode.AnnotationSpec) *MethodBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// AddTypeVariable appends a declared generic type parameter.
func (b *MethodBuilder) AddTypeVariable(tv *javacode.TypeVariable) *MethodBuilder {
	b.spec.TypeVariables = append(b.spec.TypeVariables, tv)
	return b
}

// AddParameter appends a parameter.
func (b *MethodBuilder) AddParameter(p ParameterSpec) *MethodBuilder {
	b.spec.Parameters = append(b.spec.Parameters, p)
	return b
}

// Varargs marks the last parameter as a varargs parameter; its type must
// be an *javacode.ArrayType.
func (b *MethodBuilder) Varargs() *MethodBuilder {
	b.spec.Varargs = true
	return b
}

// AddException appends a declared checked exception type.
func (b *MethodBuilder) AddException(t javacode.TypeRef) *MethodBuilder {
	b.spec.Exceptions = append(b.spec.Exceptions, t)
	return b
}

// Javadoc sets the method's doc comment.
func (b *MethodBuilder) Javadoc(format string, args ...any) *MethodBuilder {
	frag, err := javacode.NewFragment(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Javadoc = frag
	return b
}

// AddStatement appends one statement to the method body.
func (b *MethodBuilder) AddStatement(format string, args ...any) *MethodBuilder {
	b.body.AddStatement(format, args...)
	return b
}

// AddCode appends raw (non-statement) code to the method body, e.g. to
// open/continue/close a control-flow block.
func (b *MethodBuilder) AddCode(format string, args ...any) *MethodBuilder {
	b.body.Add(format, args...)
	return b
}

// BeginControlFlow opens a braced control-flow block in the method body.
func (b *MethodBuilder) BeginControlFlow(format string, args ...any) *MethodBuilder {
	b.body.BeginControlFlow(format, args...)
	return b
}

// NextControlFlow continues a control-flow chain, e.g. an else-if branch.
func (b *MethodBuilder) NextControlFlow(format string, args ...any) *MethodBuilder {
	b.body.NextControlFlow(format, args...)
	return b
}

// EndControlFlow closes the current control-flow block.
func (b *MethodBuilder) EndControlFlow() *MethodBuilder {
	b.body.EndControlFlow()
	return b
}

// Build finalizes the method spec. A method with no body statements added
// is emitted without a body (its signature ends in ";"), matching an
// interface method or an abstract class method declaration; the abstract
// modifier is emitted only if it was added.
func (b *MethodBuilder) Build() (*MethodSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	body, err := b.body.Build()
	if err != nil {
		return nil, err
	}
	spec := b.spec
	if len(body.Parts()) > 0 {
		spec.Body = body
	}
	return &spec, nil
}

// EmitTo renders the method or constructor declaration, including its
// javadoc, annotations, modifiers, type parameters, parameter list,
// throws clause, and either a braced body or a bare ";".
func (m *MethodSpec) EmitTo(w *codewriter.CodeWriter) error {
	if m.Javadoc != nil {
		if err := w.EmitJavadoc(m.Javadoc); err != nil {
			return err
		}
	}
	for _, a := range m.Annotations {
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
	for _, kw := range modifierKeywordsOf(canonicalModifiers(m.Modifiers, nil)) {
		b.Add(kw + " ")
	}
	if len(m.TypeVariables) > 0 {
		b.Add("<")
		for i, tv := range m.TypeVariables {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$L", &typeVariableDecl{tv})
		}
		b.Add("> ")
	}
	if m.Name == ConstructorName {
		b.Add("$N(", w.CurrentTypeSimpleName())
	} else {
		b.Add("$T $N(", orVoid(m.ReturnType), m.Name)
	}
	if err := appendParams(b, m.Parameters, m.Varargs); err != nil {
		return err
	}
	b.Add(")")
	if len(m.Exceptions) > 0 {
		b.Add(" throws ")
		for i, ex := range m.Exceptions {
			if i > 0 {
				b.Add(", ")
			}
			b.Add("$T", ex)
		}
	}
	if m.Body == nil {
		b.Add(";\n")
	} else {
		b.Add(" {\n$>")
		b.AddFragment(m.Body)
		b.Add("$<}\n")
	}
	frag, err := b.Build()
	if err != nil {
		return err
	}
	return w.EmitFragment(frag)
}

func orVoid(t javacode.TypeRef) javacode.TypeRef {
	if t == nil {
		return javacode.NewPrimitive(javacode.Void)
	}
	return t
}

func appendParams(b *javacode.Builder, params []ParameterSpec, varargs bool) error {
	for i, p := range params {
		if i > 0 {
			b.Add(", ")
		}
		b.Add("$L", parameterEmittable{p, varargs && i == len(params)-1})
	}
	return nil
}

// parameterEmittable adapts ParameterSpec for varargs-aware emission: the
// last parameter of a varargs method renders its array type as "...".
type parameterEmittable struct {
	spec    ParameterSpec
	isFinal bool // true when this is the method's trailing varargs parameter
}

func (p parameterEmittable) EmitTo(w *codewriter.CodeWriter) error {
	spec := p.spec
	if p.isFinal {
		if arr, ok := spec.Type.(*javacode.ArrayType); ok {
			cp := *arr
			cp.IsVarargs = true
			spec.Type = &cp
		}
	}
	return spec.EmitTo(w)
}

// typeVariableDecl renders a type variable at its declaration site,
// including bounds, e.g. "T extends Comparable<T>".
type typeVariableDecl struct {
	tv *javacode.TypeVariable
}

func (t *typeVariableDecl) EmitTo(w *codewriter.CodeWriter) error {
	b := javacode.NewBuilder()
	b.Add("$N", t.tv.Name)
	if len(t.tv.Bounds) > 0 {
		b.Add(" extends ")
		for i, bound := range t.tv.Bounds {
			if i > 0 {
				b.Add(" & ")
			}
			b.Add("$T", bound)
		}
	}
	frag, err := b.Build()
	if err != nil {
		return err
	}
	return w.EmitFragment(frag)
}
