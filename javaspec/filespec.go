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

// FileSpec is a whole .java compilation unit: one top-level type plus an
// optional file header comment. Package name, import resolution, and
// static-import statements are the render façade's responsibility (they
// require the two-pass discovery this package has no access to), so
// FileSpec.EmitTo only ever emits the header comment and the type body.
type FileSpec struct {
	PackageName string
	Type        *TypeSpec
	FileComment *javacode.Fragment
}

// NewFile wraps typ as the sole top-level declaration of a file in pkg.
func NewFile(pkg string, typ *TypeSpec) *FileSpec {
	return &FileSpec{PackageName: pkg, Type: typ}
}

// EmitTo renders the file header comment, if any, followed by the type
// declaration.
func (f *FileSpec) EmitTo(w *codewriter.CodeWriter) error {
	if f.FileComment != nil {
		if err := w.EmitLineComment(f.FileComment); err != nil {
			return err
		}
	}
	return f.Type.EmitTo(w)
}
