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

package javacode

// AnnotationMember is one name = value pair inside an annotation use, e.g.
// `timeout = 30` in `@Retry(timeout = 30)`. Value is a Fragment so that it
// may itself reference types (`$T`), nested annotations, or array/literal
// syntax the caller assembles by hand.
type AnnotationMember struct {
	Name  string
	Value *Fragment
}

// AnnotationSpec is a single annotation use, e.g. @Deprecated or
// @Retry(timeout = 30, backoff = BackoffPolicy.EXPONENTIAL). Members are
// emitted in the order they were added; a single "value" member with no
// other members renders without its name (the Java shorthand
// `@Foo("bar")` instead of `@Foo(value = "bar")`).
type AnnotationSpec struct {
	Type    *ClassRef
	Members []AnnotationMember
}

// AnnotationBuilder builds an AnnotationSpec incrementally.
type AnnotationBuilder struct {
	typ     *ClassRef
	members []AnnotationMember
}

// NewAnnotation starts building a use of the given annotation type.
func NewAnnotation(typ *ClassRef) *AnnotationBuilder {
	return &AnnotationBuilder{typ: typ}
}

// AddMember appends a name = value pair built from a format string, in the
// same mini-language FieldBuilder/MethodBuilder accept.
func (b *AnnotationBuilder) AddMember(name, format string, args ...any) *AnnotationBuilder {
	frag, err := NewFragment(format, args...)
	if err != nil {
		// Defer the failure: Build surfaces it so callers see one error
		// shape regardless of which Add call produced the bad format.
		b.members = append(b.members, AnnotationMember{Name: name, Value: &Fragment{buildErr: err}})
		return b
	}
	b.members = append(b.members, AnnotationMember{Name: name, Value: frag})
	return b
}

// Build finalizes the annotation use. It fails if any member's format
// string failed to parse.
func (b *AnnotationBuilder) Build() (AnnotationSpec, error) {
	for _, m := range b.members {
		if m.Value.buildErr != nil {
			return AnnotationSpec{}, m.Value.buildErr
		}
	}
	return AnnotationSpec{Type: b.typ, Members: b.members}, nil
}
