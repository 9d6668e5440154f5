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
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NullLiteral is the sentinel representing a literal Java `null` passed as
// an $L or $S argument. It is distinguished from an absent argument (which
// is a build-time error) and from the Go zero value of string/any (which
// would otherwise be ambiguous with "the empty string" or "no value").
var NullLiteral = &nullSentinel{}

type nullSentinel struct{}

func (*nullSentinel) String() string { return "null" }

// directive identifies one of the format-string hole/control kinds.
type directive byte

const (
	dirNone directive = 0 // part is literal text
	dirLiteral directive = 'L'
	dirName    directive = 'N'
	dirString  directive = 'S'
	dirType    directive = 'T'
	dirDollar  directive = '$'
	dirIndent  directive = '>'
	dirOutdent directive = '<'
	dirStmtBeg directive = '['
	dirStmtEnd directive = ']'
	dirWrap    directive = 'W'
	dirZero    directive = 'Z'
)

// part is one token of a parsed Fragment: either a run of literal text, or
// a directive, optionally paired with a bound Arg (for L, N, S, T).
type part struct {
	dir  directive
	text string // valid when dir == dirNone
	arg  Arg    // valid when dir is one of L, N, S, T
}

// Fragment is an immutable, already-parsed piece of Java source with typed
// holes resolved to concrete Args. Construct one with NewFragment,
// NewNamedFragment, or a Builder.
type Fragment struct {
	parts []part
	// containsStatement is true if this Fragment was produced by
	// Builder.AddStatement (directly, or by composing another Fragment for
	// which this is already true). It backs the build-time half of the
	// nested-statement rejection described in the design notes; the
	// codewriter package enforces the rest at emit time by tracking
	// statement scope the way the spec requires.
	containsStatement bool
	buildErr          error // set when construction failed; surfaces at first use
}

// argKind distinguishes the four shapes an Arg can hold.
type argKind int

const (
	argLiteral argKind = iota
	argName
	argString
	argType
)

// Arg is one resolved argument bound to an $L/$N/$S/$T hole.
type Arg struct {
	kind    argKind
	literal any // for argLiteral: anything with a sensible String()/%v form, or NullLiteral
	name    string
	str     any // for argString: a string, or NullLiteral
	typ     TypeRef
}

// Literal returns the bound value of an $L argument and true, or false if
// this Arg is not a literal argument.
func (a Arg) Literal() (any, bool) {
	if a.kind != argLiteral {
		return nil, false
	}
	return a.literal, true
}

// Name returns the bound identifier of an $N argument and true, or false
// otherwise.
func (a Arg) Name() (string, bool) {
	if a.kind != argName {
		return "", false
	}
	return a.name, true
}

// StringValue returns the bound value of an $S argument and true, or false
// otherwise. The value is either a Go string or NullLiteral.
func (a Arg) StringValue() (any, bool) {
	if a.kind != argString {
		return nil, false
	}
	return a.str, true
}

// Type returns the bound TypeRef of a $T argument and true, or false
// otherwise.
func (a Arg) Type() (TypeRef, bool) {
	if a.kind != argType {
		return nil, false
	}
	return a.typ, true
}

// Parts exposes the fragment's parsed tokens for codewriter's emission
// loop. The slice and its contents must not be mutated.
func (f *Fragment) Parts() []part { return f.parts }

// Part accessors used by codewriter; kept unexported-field-safe via methods
// rather than exporting the part type's fields directly.
func (p part) Directive() byte { return byte(p.dir) }
func (p part) Text() string    { return p.text }
func (p part) Arg() Arg        { return p.arg }

// ContainsStatement reports whether this Fragment embeds a statement
// produced by AddStatement (see Builder.AddStatement).
func (f *Fragment) ContainsStatement() bool { return f.containsStatement }

// NewFragment parses format with relative or positional argument binding
// (never named binding) and returns the resulting Fragment.
func NewFragment(format string, args ...any) (*Fragment, error) {
	b := NewBuilder()
	b.Add(format, args...)
	return b.Build()
}

// NewNamedFragment parses format with named argument binding.
func NewNamedFragment(format string, named map[string]any) (*Fragment, error) {
	b := NewBuilder()
	b.AddNamed(format, named)
	return b.Build()
}

// Builder assembles a Fragment from one or more format-string calls. Each
// individual Add/AddNamed call must use exactly one argument-binding mode
// (relative, positional, or named); different calls on the same Builder
// may use different modes.
type Builder struct {
	parts             []part
	containsStatement bool
	statementDepth    int
	err               error
}

// NewBuilder starts an empty fragment builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends format, resolving $L/$N/$S/$T holes against args in either
// relative order (bare $L) or explicit position (e.g. $2L, 1-based).
// Mixing the two styles within a single Add call is a build-time error.
func (b *Builder) Add(format string, args ...any) *Builder {
	if b.err != nil {
		return b
	}
	parts, err := parseFormat(format, args, nil)
	if err != nil {
		b.err = err
		return b
	}
	b.appendParts(parts)
	return b
}

// AddNamed appends format, resolving holes of the form $name:L against the
// given map. Every name referenced in format must be present in namedArgs.
func (b *Builder) AddNamed(format string, namedArgs map[string]any) *Builder {
	if b.err != nil {
		return b
	}
	parts, err := parseFormat(format, nil, namedArgs)
	if err != nil {
		b.err = err
		return b
	}
	b.appendParts(parts)
	return b
}

// AddFragment splices an already-built Fragment in verbatim. This is how
// composition (embedding one Fragment inside another) happens; it
// propagates the embedded fragment's containsStatement flag, which is the
// build-time half of the nested add_statement rejection.
func (b *Builder) AddFragment(frag *Fragment) *Builder {
	if b.err != nil {
		return b
	}
	if frag.buildErr != nil {
		b.err = frag.buildErr
		return b
	}
	b.parts = append(b.parts, frag.parts...)
	if frag.containsStatement {
		b.containsStatement = true
	}
	return b
}

// AddStatement wraps format/args in statement-scope markers ($[ ... $]\n),
// matching the one-statement-per-line convention CodeWriter enforces. It
// rejects, at build time, embedding a Fragment that itself already
// contains a statement (the defect spec.md's design notes call out): such
// nesting would otherwise only surface once CodeWriter hits a second,
// unexpected $[ mid-statement.
func (b *Builder) AddStatement(format string, args ...any) *Builder {
	if b.err != nil {
		return b
	}
	for _, a := range args {
		if frag, ok := a.(*Fragment); ok && frag.containsStatement {
			b.err = fmt.Errorf("javacode: cannot nest a fragment built from AddStatement inside another AddStatement")
			return b
		}
	}
	b.Add("$[")
	b.Add(format, args...)
	b.Add("$]\n")
	b.containsStatement = true
	return b
}

// BeginControlFlow opens a braced control-flow block, e.g.
// `if (condition) {`.
func (b *Builder) BeginControlFlow(format string, args ...any) *Builder {
	b.Add(format+" {\n", args...)
	return b.indent()
}

// NextControlFlow closes the current block and opens another on the same
// line, e.g. `} else if (x) {`.
func (b *Builder) NextControlFlow(format string, args ...any) *Builder {
	b.unindent()
	b.Add("} "+format+" {\n", args...)
	return b.indent()
}

// EndControlFlow closes the current block with a bare `}`.
func (b *Builder) EndControlFlow() *Builder {
	b.unindent()
	return b.Add("}\n")
}

// EndControlFlowWith closes the current block and appends a trailing
// clause, e.g. `} while (condition);` for a do-while loop.
func (b *Builder) EndControlFlowWith(format string, args ...any) *Builder {
	b.unindent()
	return b.Add("} "+format+"\n", args...)
}

func (b *Builder) indent() *Builder   { return b.Add("$>") }
func (b *Builder) unindent() *Builder { return b.Add("$<") }

func (b *Builder) appendParts(parts []part) {
	b.parts = append(b.parts, parts...)
}

// Build finalizes the fragment, surfacing the first structural error
// encountered by any Add/AddNamed/AddStatement call.
func (b *Builder) Build() (*Fragment, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Fragment{parts: b.parts, containsStatement: b.containsStatement}, nil
}

// parseFormat scans format for literal text and directives, resolving
// $L/$N/$S/$T holes against either args (relative/positional) or named
// (named mode). Exactly one of args/named should be supplied by the
// caller; which one determines which binding styles are legal.
func parseFormat(format string, args []any, named map[string]any) ([]part, error) {
	var out []part
	var text strings.Builder
	flushText := func() {
		if text.Len() > 0 {
			out = append(out, part{dir: dirNone, text: text.String()})
			text.Reset()
		}
	}

	relIdx := 0
	usedPositional := false
	usedRelative := false
	usedNamed := false

	runes := []rune(format)
	i := 0
	for i < len(runes) {
		c := runes[i]
		if c != '$' {
			text.WriteRune(c)
			i++
			continue
		}
		i++
		if i >= len(runes) {
			return nil, fmt.Errorf("javacode: dangling '$' at end of format string %q", format)
		}

		// Parse an optional positional index (digits) or named prefix
		// (identifier followed by ':'), then the directive character.
		start := i
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
		digits := string(runes[start:i])

		var nameRef string
		if digits == "" {
			// Look for "name:" form.
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			if j > i && j < len(runes) && runes[j] == ':' {
				nameRef = string(runes[i:j])
				i = j + 1
			}
		}

		if i >= len(runes) {
			return nil, fmt.Errorf("javacode: incomplete directive in format string %q", format)
		}
		d := directive(runes[i])
		i++

		switch d {
		case dirDollar, dirIndent, dirOutdent, dirStmtBeg, dirStmtEnd, dirWrap, dirZero:
			if digits != "" || nameRef != "" {
				return nil, fmt.Errorf("javacode: directive %q does not take an argument reference", string(rune(d)))
			}
			flushText()
			out = append(out, part{dir: d})
			continue
		case dirLiteral, dirName, dirString, dirType:
			// handled below
		default:
			return nil, fmt.Errorf("javacode: unknown format directive '$%c' in %q", rune(d), format)
		}

		var raw any
		switch {
		case nameRef != "":
			if named == nil {
				return nil, fmt.Errorf("javacode: named reference $%s:%c used outside AddNamed", nameRef, rune(d))
			}
			if usedRelative || usedPositional {
				return nil, fmt.Errorf("javacode: format string %q mixes named and positional/relative argument binding", format)
			}
			usedNamed = true
			v, ok := named[nameRef]
			if !ok {
				return nil, fmt.Errorf("javacode: no named argument %q supplied for format string %q", nameRef, format)
			}
			raw = v
		case digits != "":
			if usedNamed || usedRelative {
				return nil, fmt.Errorf("javacode: format string %q mixes positional and named/relative argument binding", format)
			}
			usedPositional = true
			idx, _ := strconv.Atoi(digits)
			if idx < 1 || idx > len(args) {
				return nil, fmt.Errorf("javacode: positional argument $%d out of range (%d args) in %q", idx, len(args), format)
			}
			raw = args[idx-1]
		default:
			if usedNamed || usedPositional {
				return nil, fmt.Errorf("javacode: format string %q mixes relative and named/positional argument binding", format)
			}
			usedRelative = true
			if relIdx >= len(args) {
				return nil, fmt.Errorf("javacode: not enough arguments for format string %q", format)
			}
			raw = args[relIdx]
			relIdx++
		}

		arg, err := bindArg(d, raw)
		if err != nil {
			return nil, err
		}
		flushText()
		out = append(out, part{dir: d, arg: arg})
	}
	flushText()
	return out, nil
}

// bindArg converts a raw Go value supplied for a directive into a typed
// Arg, validating it matches the directive's expected shape.
func bindArg(d directive, raw any) (Arg, error) {
	switch d {
	case dirLiteral:
		return Arg{kind: argLiteral, literal: raw}, nil
	case dirName:
		s, ok := raw.(string)
		if !ok {
			return Arg{}, fmt.Errorf("javacode: $N argument must be a string identifier, got %T", raw)
		}
		return Arg{kind: argName, name: s}, nil
	case dirString:
		if raw == NullLiteral {
			return Arg{kind: argString, str: NullLiteral}, nil
		}
		s, ok := raw.(string)
		if !ok {
			return Arg{}, fmt.Errorf("javacode: $S argument must be a string or NullLiteral, got %T", raw)
		}
		return Arg{kind: argString, str: s}, nil
	case dirType:
		t, ok := raw.(TypeRef)
		if !ok {
			return Arg{}, fmt.Errorf("javacode: $T argument must be a TypeRef, got %T", raw)
		}
		return Arg{kind: argType, typ: t}, nil
	default:
		return Arg{}, fmt.Errorf("javacode: directive '$%c' does not bind an argument", rune(d))
	}
}

// JoinFragments concatenates fragments with sep interposed between each
// pair, mirroring the join helper real generators use to assemble
// comma-separated argument lists from a slice of CodeFragments.
func JoinFragments(sep string, fragments ...*Fragment) (*Fragment, error) {
	b := NewBuilder()
	for i, f := range fragments {
		if i > 0 {
			b.Add(sep)
		}
		b.AddFragment(f)
	}
	return b.Build()
}
