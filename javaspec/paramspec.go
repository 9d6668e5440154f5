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

// ParameterSpec is a single method/constructor parameter.
type ParameterSpec struct {
	Name        string
	Type        javacode.TypeRef
	Modifiers   []Modifier // typically just FinalMod, or empty
	Annotations []javacode.AnnotationSpec
}

// NewParameter builds a parameter spec.
func NewParameter(typ javacode.TypeRef, name string, mods ...Modifier) ParameterSpec {
	return ParameterSpec{Name: name, Type: typ, Modifiers: mods}
}

// EmitTo renders "Type name", with any modifiers/annotations prefixed. It
// does not emit a trailing comma; MethodSpec.EmitTo joins parameters.
func (p ParameterSpec) EmitTo(w *codewriter.CodeWriter) error {
	for _, a := range p.Annotations {
		if err := w.EmitAnnotation(a); err != nil {
			return err
		}
		if err := (&rawText{" "}).EmitTo(w); err != nil {
			return err
		}
	}
	for _, kw := range modifierKeywordsOf(p.Modifiers) {
		if err := (&rawText{kw + " "}).EmitTo(w); err != nil {
			return err
		}
	}
	frag, err := javacode.NewFragment("$T $N", p.Type, p.Name)
	if err != nil {
		return err
	}
	return w.EmitFragment(frag)
}
