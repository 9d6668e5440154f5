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

// Package render is the two-phase façade that turns a javaspec.FileSpec
// into Java source text: a first pass over a discard sink discovers every
// type the file references, then a second pass emits real output using
// the import map the first pass computed. This mirrors the teacher's
// Analyzer.ChangesEq, which runs symbolication over a forest before
// running the real equivalence check against the resulting symbol table.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"

	"github.com/javacomposer/javacomposer/codewriter"
	"github.com/javacomposer/javacomposer/javaspec"
)

// Options configures layout. The zero value is valid and uses the
// defaults noted on each field.
type Options struct {
	// IndentUnit is repeated once per indent level. Defaults to two spaces
	// (the Google Java Style / JavaPoet default); set to "\t" for the
	// Apache-style one-tab convention.
	IndentUnit string
	// ColumnLimit is the line-wrap width. Defaults to 100.
	ColumnLimit int
	// Dialect selects how javaspec.TypeSpec orchestrates a type's members.
	// The zero value is codewriter.JavaPoetDialect (insertion order,
	// brace-on-same-line); codewriter.FoundationDialect groups members by
	// category under a decorated headline comment, sorted case-insensitively
	// by name within each category.
	Dialect codewriter.Dialect
}

func (o Options) normalized() Options {
	if o.IndentUnit == "" {
		o.IndentUnit = "  "
	}
	if o.ColumnLimit <= 0 {
		o.ColumnLimit = 100
	}
	return o
}

// RenderFile renders file to out using default Options.
func RenderFile(out io.Writer, file *javaspec.FileSpec) error {
	return RenderFileWithOptions(out, file, Options{})
}

// RenderFileWithOptions renders file to out. A structural-defect error
// (e.g. a nested add_statement, or an unknown TypeRef variant) aborts
// before anything is written to out: output is assembled in memory and
// copied over only once both passes succeed, so a failed render never
// leaves a truncated or malformed .java file in the caller's writer.
func RenderFileWithOptions(out io.Writer, file *javaspec.FileSpec, opts Options) error {
	opts = opts.normalized()

	collector := codewriter.NewCollector(opts.IndentUnit, opts.ColumnLimit)
	collector.SetDialect(opts.Dialect)
	if err := file.EmitTo(collector); err != nil {
		return err
	}
	if err := collector.Flush(); err != nil {
		return err
	}

	imports, importList := codewriter.ResolveImports(collector.DiscoveredTypes(), file.PackageName)
	staticImports := codewriter.ResolveStaticImports(collector.DiscoveredStaticImports())

	var buf bytes.Buffer
	if file.PackageName != "" {
		fmt.Fprintf(&buf, "package %s;\n\n", file.PackageName)
	}
	staticKeys := sortedStaticImportKeys(staticImports)
	for _, k := range staticKeys {
		fmt.Fprintf(&buf, "import static %s.%s;\n", k.Class, k.Member)
	}
	if len(staticKeys) > 0 {
		buf.WriteString("\n")
	}
	for _, imp := range importList {
		fmt.Fprintf(&buf, "import %s;\n", imp)
	}
	if len(importList) > 0 {
		buf.WriteString("\n")
	}

	emitter := codewriter.NewEmitter(&buf, file.PackageName, imports, staticImports, opts.IndentUnit, opts.ColumnLimit)
	emitter.SetDialect(opts.Dialect)
	if err := file.EmitTo(emitter); err != nil {
		return err
	}
	if err := emitter.Flush(); err != nil {
		return err
	}

	_, err := out.Write(buf.Bytes())
	return err
}

// WriterFor resolves a logical file name (e.g. a Java canonical class
// name) to the io.Writer its rendered source should be written to.
type WriterFor func(name string) (io.Writer, error)

// RenderFiles renders every entry in files, resolving each destination
// writer through writerFor. Every file is attempted regardless of earlier
// failures; all failures are combined into one error via multierr so a
// batch run reports every broken file instead of stopping at the first.
func RenderFiles(files map[string]*javaspec.FileSpec, writerFor WriterFor, opts Options) error {
	var errs error
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out, err := writerFor(name)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("render: %s: %w", name, err))
			continue
		}
		if err := RenderFileWithOptions(out, files[name], opts); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("render: %s: %w", name, err))
		}
	}
	return errs
}

func sortedStaticImportKeys(m map[codewriter.StaticImportKey]bool) []codewriter.StaticImportKey {
	out := make([]codewriter.StaticImportKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Member < out[j].Member
	})
	return out
}
