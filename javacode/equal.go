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

import (
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Equal reports whether a and b denote the same Java type, ignoring the
// order annotations were attached in (spec.md §3 invariant (c): two
// TypeRefs differing only in annotation order are considered equal).
func Equal(a, b TypeRef) bool {
	nonEmpty := func(x, y []AnnotationSpec) bool { return len(x) > 0 || len(y) > 0 }
	return cmp.Equal(a, b, cmp.FilterValues(nonEmpty, cmp.Comparer(annotationSpecsEqual)), cmpopts.EquateEmpty())
}

// annotationSpecsEqual compares two annotation-use sets order-insensitively.
// Each annotation is keyed by its canonical class name followed by its member
// names in the order they were added; member values are not part of the key.
func annotationSpecsEqual(a, b []AnnotationSpec) bool {
	if len(a) != len(b) {
		return false
	}
	ak := make([]string, len(a))
	bk := make([]string, len(b))
	for i, s := range a {
		ak[i] = annotationSortKey(s)
	}
	for i, s := range b {
		bk[i] = annotationSortKey(s)
	}
	sort.Strings(ak)
	sort.Strings(bk)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func annotationSortKey(s AnnotationSpec) string {
	key := s.Type.CanonicalName()
	for _, m := range s.Members {
		key += "|" + m.Name
	}
	return key
}

// ReferencedIdentifiers returns the sorted, de-duplicated canonical names
// of every class this TypeRef mentions anywhere in its structure
// (including nested type arguments, bounds, and component/raw types).
func ReferencedIdentifiers(ref TypeRef) []string {
	seen := map[string]bool{}
	var walk func(TypeRef)
	walk = func(r TypeRef) {
		if r == nil {
			return
		}
		switch t := r.(type) {
		case *Primitive:
		case *ClassRef:
			seen[t.CanonicalName()] = true
		case *ArrayType:
			walk(t.Component)
		case *ParameterizedType:
			walk(t.Raw)
			for _, a := range t.Args {
				walk(a)
			}
			if t.Enclosing != nil {
				walk(t.Enclosing)
			}
		case *TypeVariable:
			for _, b := range t.Bounds {
				walk(b)
			}
		case *WildcardType:
			for _, b := range t.UpperBounds {
				walk(b)
			}
			for _, b := range t.LowerBounds {
				walk(b)
			}
		}
	}
	walk(ref)
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
