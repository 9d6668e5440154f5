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

	"go.uber.org/multierr"
)

// Validate checks t and every nested type for duplicate member names — a
// mistake the builders above don't catch locally because a field and a
// method (or two nested types) are added independently. Every problem
// found anywhere in the tree is reported together via multierr, rather
// than stopping at the first, so a caller generating a type from a schema
// with several bad fields sees every offender in one pass.
func (t *TypeSpec) Validate() error {
	var errs error

	seenFields := map[string]bool{}
	for _, f := range t.Fields {
		if seenFields[f.Name] {
			errs = multierr.Append(errs, fmt.Errorf("javaspec: %s: duplicate field %q", t.Name, f.Name))
		}
		seenFields[f.Name] = true
	}

	seenMethods := map[string]bool{}
	for _, m := range t.Methods {
		key := fmt.Sprintf("%s/%d", m.Name, len(m.Parameters))
		if seenMethods[key] {
			errs = multierr.Append(errs, fmt.Errorf("javaspec: %s: duplicate method %s with %d parameters", t.Name, m.Name, len(m.Parameters)))
		}
		seenMethods[key] = true
	}

	if t.Kind != EnumKind && len(t.EnumConstants) > 0 {
		errs = multierr.Append(errs, fmt.Errorf("javaspec: %s: enum constants on a non-enum declaration", t.Name))
	}

	seenNested := map[string]bool{}
	for _, nested := range t.NestedTypes {
		if seenNested[nested.Name] {
			errs = multierr.Append(errs, fmt.Errorf("javaspec: %s: duplicate nested type %q", t.Name, nested.Name))
		}
		seenNested[nested.Name] = true
		errs = multierr.Append(errs, nested.Validate())
	}

	return errs
}
