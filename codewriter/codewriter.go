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

// Package codewriter is the emission engine: it walks CodeFragments and
// writes Java source, resolving type references to either a bare simple
// name or a fully-qualified name depending on what else the file
// references. It is run twice per file by package render — once over a
// discard sink to discover every type mentioned (so imports can be
// computed up front), and once for real with that import map in hand —
// mirroring the teacher's two-phase analysis (symbolicate, then check).
package codewriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/javacomposer/javacomposer/javacode"
	"github.com/javacomposer/javacomposer/linewrap"
)

// Emittable is implemented by anything that can render itself through a
// CodeWriter: field/method/parameter/type/file specs, and any caller type
// that wants to participate in $L emission. It is declared here, not in
// javacode or javaspec, so that javaspec can depend on both javacode and
// codewriter without codewriter ever needing to know about javaspec.
type Emittable interface {
	EmitTo(w *CodeWriter) error
}

// StaticImportKey identifies one static-import candidate discovered or
// resolved for a file: the declaring class's canonical name plus the
// member (field or method) name, e.g. {"java.util.Collections", "emptyList"}.
type StaticImportKey struct {
	Class  string
	Member string
}

// commentMode tracks whether the writer is currently emitting inside a
// comment, and which kind: a type reference inside a comment always renders
// fully qualified and never contributes to the file's import set, since
// Javadoc prose is not import-sensitive the way code is.
type commentMode int

const (
	commentNone commentMode = iota
	commentJavadoc
	commentBlock
	commentLine
)

// Dialect selects how javaspec.TypeSpec orchestrates a type's members.
// JavaPoetDialect and FoundationDialect share this package's emit engine and
// differ only in that per-type-kind orchestration.
type Dialect int

const (
	// JavaPoetDialect emits members in insertion order with brace-on-same-
	// line style. This is the default.
	JavaPoetDialect Dialect = iota
	// FoundationDialect groups members by category (fields, constructors,
	// methods, nested types) under a decorated headline comment, sorting
	// members case-insensitively by name within each category.
	FoundationDialect
)

// CodeWriter is the engine's one mutable, single-pass emitter. Construct
// one with NewCollector for the import-discovery pass, or NewEmitter for
// the real emission pass.
type CodeWriter struct {
	wrapOut     io.Writer
	wrap        *linewrap.Wrapper
	indentUnit  string
	columnLimit int

	packageName string

	collecting bool

	discoveredSeen  map[string]bool
	discoveredOrder []string

	resolvedImports map[string]string // canonical class name -> bare simple name to use; absent or "" => fully qualify

	staticImports map[StaticImportKey]bool // granted static imports; a reference to one of these renders as the bare member name

	discoveredStaticImports []StaticImportKey

	indentLevel   int
	statementLine int // -1 = not inside a statement ($[ ... $])
	atLineStart   bool // true once a newline has been written but no indent yet

	commentMode commentMode
	dialect     Dialect

	typeStack []string // enclosing declaration simple names, outermost first

	err error
}

// NewCollector builds a CodeWriter whose output is discarded; its only
// purpose is to populate DiscoveredTypes() by walking the same Emittable
// tree the real emission pass will walk.
func NewCollector(indentUnit string, columnLimit int) *CodeWriter {
	return newCodeWriter(io.Discard, "", nil, nil, indentUnit, columnLimit, true)
}

// NewEmitter builds a CodeWriter that writes real Java source to out,
// resolving $T references against the supplied import map (canonical class
// name -> chosen bare simple name) and granting the supplied static
// imports.
func NewEmitter(out io.Writer, packageName string, imports map[string]string, staticImports map[StaticImportKey]bool, indentUnit string, columnLimit int) *CodeWriter {
	return newCodeWriter(out, packageName, imports, staticImports, indentUnit, columnLimit, false)
}

func newCodeWriter(out io.Writer, packageName string, imports map[string]string, staticImports map[StaticImportKey]bool, indentUnit string, columnLimit int, collecting bool) *CodeWriter {
	if indentUnit == "" {
		indentUnit = "  "
	}
	return &CodeWriter{
		wrapOut:         out,
		wrap:            linewrap.New(out, indentUnit, columnLimit),
		indentUnit:      indentUnit,
		columnLimit:     columnLimit,
		packageName:     packageName,
		collecting:      collecting,
		discoveredSeen:  map[string]bool{},
		resolvedImports: imports,
		staticImports:   staticImports,
		statementLine:   -1,
		atLineStart:     true,
	}
}

// DiscoveredTypes returns, in first-seen order, the canonical names of
// every class type referenced during a collecting pass.
func (w *CodeWriter) DiscoveredTypes() []string {
	out := make([]string, len(w.discoveredOrder))
	copy(out, w.discoveredOrder)
	return out
}

// RequestStaticImport records, during the collecting pass, that a field or
// method spec would like to reference class.member via a static import
// rather than a qualified reference. The render façade decides which
// requests are actually granted (see ResolveStaticImports) and supplies
// the result back to NewEmitter.
func (w *CodeWriter) RequestStaticImport(class, member string) {
	if !w.collecting {
		return
	}
	w.discoveredStaticImports = append(w.discoveredStaticImports, StaticImportKey{Class: class, Member: member})
}

// DiscoveredStaticImports returns the static-import candidates requested
// during a collecting pass, in first-requested order (duplicates included;
// the render façade dedups when resolving).
func (w *CodeWriter) DiscoveredStaticImports() []StaticImportKey {
	out := make([]StaticImportKey, len(w.discoveredStaticImports))
	copy(out, w.discoveredStaticImports)
	return out
}

// PushType records entry into a nested type declaration's body, so that
// member emission can recognise references to enclosing types.
func (w *CodeWriter) PushType(simpleName string) { w.typeStack = append(w.typeStack, simpleName) }

// PopType records exit from a nested type declaration's body.
func (w *CodeWriter) PopType() {
	if len(w.typeStack) > 0 {
		w.typeStack = w.typeStack[:len(w.typeStack)-1]
	}
}

// CurrentTypeSimpleName returns the simple name of the innermost type
// declaration currently being emitted, or "" if none is open. A
// constructor's MethodSpec uses this to know what to name itself.
func (w *CodeWriter) CurrentTypeSimpleName() string {
	if len(w.typeStack) == 0 {
		return ""
	}
	return w.typeStack[len(w.typeStack)-1]
}

// SetDialect selects the layout dialect javaspec consults when orchestrating
// a type's members. The zero value is JavaPoetDialect, so existing callers
// that never call SetDialect see no change in behaviour.
func (w *CodeWriter) SetDialect(d Dialect) { w.dialect = d }

// Dialect returns the layout dialect in effect for this writer.
func (w *CodeWriter) Dialect() Dialect { return w.dialect }

// Indent increases the current indent level by one.
func (w *CodeWriter) Indent() { w.indentLevel++ }

// Unindent decreases the current indent level by one.
func (w *CodeWriter) Unindent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteIndent emits the current indent (used by callers assembling raw
// structural text around Emittable bodies, e.g. a brace on its own line).
func (w *CodeWriter) WriteIndent() { w.writeIndent() }

// Err returns the first error (I/O or structural defect) encountered so
// far.
func (w *CodeWriter) Err() error { return w.err }

// Flush drains any buffered, not-yet-decided line-wrap content.
func (w *CodeWriter) Flush() error {
	if err := w.wrap.Flush(); err != nil && w.err == nil {
		w.err = err
	}
	return w.err
}

// fail records the first structural-defect error and returns it, so
// EmitFragment callers can short-circuit.
func (w *CodeWriter) fail(format string, args ...any) error {
	if w.err == nil {
		w.err = fmt.Errorf(format, args...)
	}
	return w.err
}

// EmitFragment renders frag's parsed parts: literal text verbatim, $L/$N/$S/$T
// holes per their binding, and the control directives ($$ $> $< $[ $] $W $Z).
func (w *CodeWriter) EmitFragment(frag *javacode.Fragment) error {
	if w.err != nil {
		return w.err
	}
	if frag == nil {
		return nil
	}
	for _, p := range frag.Parts() {
		if w.err != nil {
			return w.err
		}
		switch p.Directive() {
		case 0:
			w.emitText(p.Text())
		case 'L':
			v, _ := p.Arg().Literal()
			w.emitLiteral(v)
		case 'N':
			name, _ := p.Arg().Name()
			w.emitText(name)
		case 'S':
			v, _ := p.Arg().StringValue()
			w.emitStringLiteral(v)
		case 'T':
			t, _ := p.Arg().Type()
			w.emitType(t)
		case '$':
			w.emitText("$")
		case '>':
			w.Indent()
		case '<':
			w.Unindent()
		case '[':
			if w.statementLine != -1 {
				return w.fail("codewriter: encountered '$[' while already inside a statement (nested add_statement is not allowed)")
			}
			w.statementLine = 0
		case ']':
			if w.statementLine == -1 {
				return w.fail("codewriter: encountered '$]' with no matching '$['")
			}
			w.statementLine = -1
		case 'W':
			w.wrap.WrappingSpace(w.continuationIndent())
		case 'Z':
			w.wrap.ZeroWidthSpace(w.continuationIndent())
		default:
			return w.fail("codewriter: unsupported format directive '$%c'", p.Directive())
		}
	}
	return w.err
}

func (w *CodeWriter) continuationIndent() int {
	if w.statementLine > 0 {
		return w.indentLevel + 2
	}
	return w.indentLevel
}

// emitLiteral renders an $L argument: an Emittable is delegated to, a
// *javacode.Fragment is spliced in, a TypeRef renders as a type name, the
// null sentinel renders as the literal "null", and anything else renders
// via fmt's default formatting (the natural behaviour for numbers,
// booleans, and pre-formatted strings).
func (w *CodeWriter) emitLiteral(v any) {
	switch t := v.(type) {
	case nil:
		w.emitText("null")
	case Emittable:
		if err := t.EmitTo(w); err != nil && w.err == nil {
			w.err = err
		}
	case *javacode.Fragment:
		if err := w.EmitFragment(t); err != nil && w.err == nil {
			w.err = err
		}
	case javacode.TypeRef:
		w.emitType(t)
	case string:
		w.emitText(t)
	case fmt.Stringer:
		w.emitText(t.String())
	default:
		w.emitText(fmt.Sprint(t))
	}
}

// EmitStaticMemberReference renders a reference to class.member, using the
// bare member name if a static import for it was granted, or otherwise the
// class reference, shortened or qualified like any other type reference,
// followed by ".member".
func (w *CodeWriter) EmitStaticMemberReference(class *javacode.ClassRef, member string) error {
	key := StaticImportKey{Class: class.CanonicalName(), Member: member}
	if w.commentMode != commentNone {
		w.emitText(class.CanonicalName() + "." + member)
		return w.err
	}
	if w.collecting {
		// Record only the static-import request, not a regular type
		// discovery: ResolveStaticImports grants every request, so the
		// class itself is never printed in the real pass and would
		// otherwise leave a spurious unused "import java.util.X;" behind
		// it. If a future caller supplies a staticImports map that
		// withholds the grant, emitClassRef's real-pass fallback still
		// renders a safe fully-qualified name for an unresolved class.
		w.RequestStaticImport(key.Class, key.Member)
		return w.err
	}
	if w.staticImports[key] {
		w.emitText(member)
		return w.err
	}
	w.emitClassRef(class)
	w.emitText("." + member)
	return w.err
}

// ResolveStaticImports grants every distinct class.member requested during
// a collecting pass. Unlike type-simple-name resolution, static-import
// members never collide with each other in this engine's simplified model:
// a caller asking for the same two members from different classes is
// responsible for not doing so if it would shadow Java identifiers.
func ResolveStaticImports(requested []StaticImportKey) map[StaticImportKey]bool {
	out := map[StaticImportKey]bool{}
	for _, k := range requested {
		out[k] = true
	}
	return out
}

func (w *CodeWriter) emitStringLiteral(v any) {
	if v == javacode.NullLiteral {
		w.emitText("null")
		return
	}
	s, _ := v.(string)
	w.emitText(javaStringLiteral(s))
}

// javaStringLiteral renders s as a double-quoted, escaped Java string
// literal.
func javaStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(hex)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// emitText writes s, splitting on embedded newlines. Indentation is written
// lazily: a line's indent reflects whatever w.indentLevel is at the moment
// its first non-empty content is actually appended, not at the moment its
// preceding newline was written. This matters because a $> or $< directive
// between two text parts changes indentLevel after the first part's trailing
// newline but before the second part's content — writing the indent eagerly
// at the newline would apply the wrong level.
func (w *CodeWriter) emitText(s string) {
	if w.err != nil || s == "" {
		return
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			w.wrap.Append("\n")
			if w.statementLine >= 0 {
				w.statementLine++
			}
			w.atLineStart = true
		}
		if line == "" {
			continue
		}
		if w.atLineStart {
			w.writeIndent()
		}
		w.wrap.Append(line)
	}
	if err := w.wrap.Err(); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *CodeWriter) writeIndent() {
	w.wrap.Append(strings.Repeat(w.indentUnit, w.indentLevel))
	if prefix := w.commentLinePrefix(); prefix != "" {
		w.wrap.Append(prefix)
	}
	w.atLineStart = false
}

// commentLinePrefix returns the per-line decoration a comment body's lines
// (including the first) are prefixed with, or "" outside a comment.
func (w *CodeWriter) commentLinePrefix() string {
	switch w.commentMode {
	case commentJavadoc, commentBlock:
		return " * "
	case commentLine:
		return "// "
	default:
		return ""
	}
}

// EmitJavadoc renders a /** ... */ Javadoc comment block containing frag.
// Per spec, a type reference inside a Javadoc is always rendered fully
// qualified and never recorded as a discovered (importable) type — doc
// prose is not import-sensitive the way code is.
func (w *CodeWriter) EmitJavadoc(frag *javacode.Fragment) error {
	return w.emitDelimitedComment(commentJavadoc, "/**", " */", frag)
}

// EmitBlockComment renders a /* ... */ block comment containing frag, with
// the same fully-qualified, non-importing treatment of type references as
// EmitJavadoc.
func (w *CodeWriter) EmitBlockComment(frag *javacode.Fragment) error {
	return w.emitDelimitedComment(commentBlock, "/*", " */", frag)
}

// EmitLineComment renders frag as one or more "// "-prefixed lines: every
// embedded newline in frag starts a fresh "// "-prefixed line rather than
// leaving continuation lines unadorned.
func (w *CodeWriter) EmitLineComment(frag *javacode.Fragment) error {
	if w.err != nil {
		return w.err
	}
	prev := w.commentMode
	w.commentMode = commentLine
	w.atLineStart = true
	w.writeIndent()
	if err := w.EmitFragment(frag); err != nil {
		w.commentMode = prev
		return err
	}
	w.commentMode = prev
	w.emitText("\n")
	return w.err
}

// emitDelimitedComment writes open on its own line, frag's content with a
// " * " prefix on every line (including the first), and close on its own
// line, suppressing import discovery and simple-name shortening for any
// type reference emitted while frag renders.
func (w *CodeWriter) emitDelimitedComment(mode commentMode, open, close string, frag *javacode.Fragment) error {
	if w.err != nil {
		return w.err
	}
	w.writeIndent()
	w.emitText(open + "\n")
	prev := w.commentMode
	w.commentMode = mode
	w.atLineStart = true
	if err := w.EmitFragment(frag); err != nil {
		w.commentMode = prev
		return err
	}
	w.commentMode = prev
	w.emitText("\n")
	w.writeIndent()
	w.emitText(close + "\n")
	return w.err
}

// emitType renders t, consulting (in the emitting pass) the resolved
// import map to decide between a bare simple name and a fully-qualified
// name, and recording discovery (in the collecting pass) so the render
// façade can compute that map for the next pass.
func (w *CodeWriter) emitType(t javacode.TypeRef) {
	if t == nil {
		return
	}
	w.emitTypeAnnotations(t.Annotations())
	switch v := t.(type) {
	case *javacode.Primitive:
		w.emitText(v.Kind.String())
	case *javacode.ClassRef:
		w.emitClassRef(v)
	case *javacode.ArrayType:
		w.emitType(v.Component)
		if v.IsVarargs {
			w.emitText("...")
		} else {
			w.emitText("[]")
		}
	case *javacode.ParameterizedType:
		if v.Enclosing != nil {
			w.emitType(v.Enclosing)
			w.emitText("." + v.Raw.SimpleName())
		} else {
			w.emitClassRef(v.Raw)
		}
		if len(v.Args) > 0 {
			w.emitText("<")
			for i, a := range v.Args {
				if i > 0 {
					w.emitText(", ")
				}
				w.emitType(a)
			}
			w.emitText(">")
		}
	case *javacode.TypeVariable:
		w.emitText(v.Name)
	case *javacode.WildcardType:
		w.emitText("?")
		if len(v.UpperBounds) > 0 {
			w.emitText(" extends ")
			w.emitType(v.UpperBounds[0])
		} else if len(v.LowerBounds) > 0 {
			w.emitText(" super ")
			w.emitType(v.LowerBounds[0])
		}
	default:
		w.fail("codewriter: unknown TypeRef variant %T", t)
	}
}

func (w *CodeWriter) emitTypeAnnotations(anns []javacode.AnnotationSpec) {
	for _, a := range anns {
		w.emitAnnotation(a)
		w.emitText(" ")
	}
}

// EmitAnnotation renders one annotation use, e.g. @Retry(timeout = 30).
func (w *CodeWriter) EmitAnnotation(a javacode.AnnotationSpec) error {
	w.emitAnnotation(a)
	return w.err
}

func (w *CodeWriter) emitAnnotation(a javacode.AnnotationSpec) {
	w.emitText("@")
	w.emitClassRef(a.Type)
	if len(a.Members) == 0 {
		return
	}
	w.emitText("(")
	shorthand := len(a.Members) == 1 && a.Members[0].Name == "value"
	for i, m := range a.Members {
		if i > 0 {
			w.emitText(", ")
		}
		if !shorthand {
			w.emitText(m.Name + " = ")
		}
		if err := w.EmitFragment(m.Value); err != nil {
			return
		}
	}
	w.emitText(")")
}

func (w *CodeWriter) emitClassRef(c *javacode.ClassRef) {
	canon := c.CanonicalName()
	if w.commentMode != commentNone {
		// A type referenced only inside a comment is never importable and
		// always renders fully qualified, in both passes: the collecting
		// pass must not record it as a discovered type, and the emitting
		// pass must not shorten it even if some other, code-level reference
		// to the same class earned it an import.
		w.emitText(canon)
		return
	}
	if w.collecting {
		w.recordDiscovery(canon)
		return
	}
	if alias, ok := w.resolvedImports[canon]; ok {
		if alias != "" {
			w.emitText(alias)
		} else {
			w.emitText(canon)
		}
		return
	}
	if c.Package == w.packageName {
		w.emitText(strings.Join(c.SimpleNames, "."))
		return
	}
	w.emitText(canon)
}

func (w *CodeWriter) recordDiscovery(canon string) {
	if w.discoveredSeen[canon] {
		return
	}
	w.discoveredSeen[canon] = true
	w.discoveredOrder = append(w.discoveredOrder, canon)
}

// ResolveImports computes the import map and sorted import-statement list
// for a file whose body referenced discovered (in first-seen order) while
// declared in packageName. The first type to claim a given simple name
// wins unqualified use; later types sharing that simple name must be
// fully qualified at every reference, matching real Java import shadowing
// rules.
func ResolveImports(discovered []string, packageName string) (resolved map[string]string, importList []string) {
	resolved = map[string]string{}
	claimed := map[string]string{}
	for _, canon := range discovered {
		simple := simpleNameOf(canon)
		if owner, ok := claimed[simple]; ok {
			if owner == canon {
				continue
			}
			resolved[canon] = ""
			continue
		}
		claimed[simple] = canon
		resolved[canon] = simple
	}
	for _, canon := range discovered {
		if resolved[canon] == "" {
			continue
		}
		pkg := packageNameOf(canon)
		if pkg == packageName || pkg == "java.lang" {
			continue
		}
		importList = append(importList, canon)
	}
	sort.Strings(importList)
	return resolved, importList
}

func simpleNameOf(canon string) string {
	i := strings.LastIndex(canon, ".")
	if i < 0 {
		return canon
	}
	return canon[i+1:]
}

func packageNameOf(canon string) string {
	i := strings.LastIndex(canon, ".")
	if i < 0 {
		return ""
	}
	return canon[:i]
}
