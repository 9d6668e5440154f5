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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFragmentRelativeBinding(t *testing.T) {
	frag, err := NewFragment("$L + $L", 1, 2)
	require.NoError(t, err)
	require.Len(t, frag.Parts(), 3)
	v, ok := frag.Parts()[0].Arg().Literal()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestNewFragmentPositionalBinding(t *testing.T) {
	frag, err := NewFragment("$2L, $1L", "a", "b")
	require.NoError(t, err)
	first, _ := frag.Parts()[0].Arg().Literal()
	require.Equal(t, "b", first)
}

func TestNewNamedFragment(t *testing.T) {
	frag, err := NewNamedFragment("$value:S", map[string]any{"value": "hello"})
	require.NoError(t, err)
	v, ok := frag.Parts()[0].Arg().StringValue()
	require.True(t, ok)
	require.Equal(t, "hello", v)
}

func TestParseFormatRejectsMixedBindingModes(t *testing.T) {
	_, err := NewFragment("$L $1L", "a", "b")
	require.Error(t, err)
}

func TestParseFormatRejectsArgumentOnNoArgDirective(t *testing.T) {
	_, err := NewFragment("$1>")
	require.Error(t, err)
}

func TestParseFormatRejectsDanglingDollar(t *testing.T) {
	_, err := NewFragment("foo$")
	require.Error(t, err)
}

func TestParseFormatRejectsUnknownDirective(t *testing.T) {
	_, err := NewFragment("$Q", "x")
	require.Error(t, err)
}

func TestBindArgTypeChecksEachDirective(t *testing.T) {
	_, err := NewFragment("$N", 42)
	require.Error(t, err)

	_, err = NewFragment("$T", "not-a-type")
	require.Error(t, err)

	frag, err := NewFragment("$S", NullLiteral)
	require.NoError(t, err)
	v, _ := frag.Parts()[0].Arg().StringValue()
	require.Equal(t, NullLiteral, v)
}

func TestBuilderAddStatementRejectsDirectNesting(t *testing.T) {
	inner := NewBuilder()
	inner.AddStatement("foo()")
	innerFrag, err := inner.Build()
	require.NoError(t, err)
	require.True(t, innerFrag.ContainsStatement())

	outer := NewBuilder()
	outer.AddStatement("bar($L)", innerFrag)
	_, err = outer.Build()
	require.Error(t, err)
}

func TestBuilderAddFragmentPropagatesContainsStatement(t *testing.T) {
	inner := NewBuilder()
	inner.AddStatement("foo()")
	innerFrag, err := inner.Build()
	require.NoError(t, err)

	outer := NewBuilder()
	outer.AddFragment(innerFrag)
	outerFrag, err := outer.Build()
	require.NoError(t, err)
	require.True(t, outerFrag.ContainsStatement())
}

func TestJoinFragments(t *testing.T) {
	a, err := NewFragment("$L", 1)
	require.NoError(t, err)
	b, err := NewFragment("$L", 2)
	require.NoError(t, err)

	joined, err := JoinFragments(", ", a, b)
	require.NoError(t, err)
	require.Len(t, joined.Parts(), 3)
	require.Equal(t, ", ", joined.Parts()[1].Text())
}

func TestBeginEndControlFlow(t *testing.T) {
	b := NewBuilder()
	b.BeginControlFlow("if ($L)", true)
	b.AddStatement("doSomething()")
	b.EndControlFlow()
	frag, err := b.Build()
	require.NoError(t, err)
	require.NotEmpty(t, frag.Parts())
}
