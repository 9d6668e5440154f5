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

// FieldSpec is a single field declaration, e.g. `private final int count;`
// or, with an initializer, `public static final String NAME = "widget";`.
type FieldSpec struct {
	Name        string
	Type        javacode.TypeRef
	Modifiers   []Modifier
	Annotations []javacode.AnnotationSpec
	Javadoc     *javacode.Fragment
	Initializer *javacode.Fragment
}

// FieldBuilder builds a FieldSpec incrementally.
type FieldBuilder struct {
	spec FieldSpec
	err  error
}

// NewField starts building a field of the given type and name.
func NewField(typ javacode.TypeRef, name string) *FieldBuilder {
	return &FieldBuilder{spec: FieldSpec{Name: name, Type: typ}}
}

// AddModifiers appends modifiers to the field.
func (b *FieldBuilder) AddModifiers(mods ...Modifier) *FieldBuilder {
	b.spec.Modifiers = append(b.spec.Modifiers, mods...)
	return b
}

// AddAnnotation appends an annotation use.
func (b *FieldBuilder) AddAnnotation(a javacode.AnnotationSpec) *FieldBuilder {
	b.spec.Annotations = append(b.spec.Annotations, a)
	return b
}

// Javadoc sets the field's doc comment from a format string.
func (b *FieldBuilder) Javadoc(format string, args ...any) *FieldBuilder {
	frag, err := javacode.NewFragment(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Javadoc = frag
	return b
}

// Initializer sets the field's initializer expression from a format
// string, e.g. Initializer("$S", "widget").
func (b *FieldBuilder) Initializer(format string, args ...any) *FieldBuilder {
	frag, err := javacode.NewFragment(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Initializer = frag
	return b
}

// Build finalizes the field spec.
func (b *FieldBuilder) Build() (*FieldSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	spec := b.spec
	return &spec, nil
}

// EmitTo renders the field declaration, terminated with ";\n".
func (f *FieldSpec) EmitTo(w *codewriter.CodeWriter) error {
	if f.Javadoc != nil {
		if err := w.EmitJavadoc(f.Javadoc); err != nil {
			return err
		}
	}
	for _, a := range f.Annotations {
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
	mods := canonicalModifiers(f.Modifiers, nil)
	for _, kw := range modifierKeywordsOf(mods) {
		b.Add(kw + " ")
	}
	b.Add("$T $N", f.Type, f.Name)
	if f.Initializer != nil {
		b.Add(" = ").AddFragment(f.Initializer)
	}
	frag, err := b.Build()
	if err != nil {
		return err
	}
	if err := w.EmitFragment(frag); err != nil {
		return err
	}
	return (&rawText{";\n"}).EmitTo(w)
}

// rawText is a tiny Emittable used internally by javaspec to drop literal
// text into the stream without going through the Fragment builder for
// single fixed strings.
type rawText struct{ text string }

func (r *rawText) EmitTo(w *codewriter.CodeWriter) error {
	frag, err := javacode.NewFragment(r.text)
	if err != nil {
		return err
	}
	return w.EmitFragment(frag)
}
