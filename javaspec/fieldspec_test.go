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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/javacomposer/javacomposer/codewriter"
	"github.com/javacomposer/javacomposer/javacode"
)

func TestFieldSpecEmitsPrivateFinalField(t *testing.T) {
	f, err := NewField(javacode.NewPrimitive(javacode.Int), "count").
		AddModifiers(PrivateMod, FinalMod).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := codewriter.NewEmitter(&buf, "com.example", map[string]string{}, nil, "  ", 100)
	require.NoError(t, f.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "private final int count;\n", buf.String())
}

func TestFieldSpecEmitsInitializer(t *testing.T) {
	f, err := NewField(javacode.NewClassRef("java.lang", "String"), "NAME").
		AddModifiers(PublicMod, StaticMod, FinalMod).
		Initializer("$S", "widget").
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	imports := map[string]string{"java.lang.String": "String"}
	w := codewriter.NewEmitter(&buf, "com.example", imports, nil, "  ", 100)
	require.NoError(t, f.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, `public static final String NAME = "widget";`+"\n", buf.String())
}

func TestFieldSpecEmitsJavadocAndAnnotation(t *testing.T) {
	anno, err := javacode.NewAnnotation(javacode.NewClassRef("javax.annotation", "Nullable")).Build()
	require.NoError(t, err)

	f, err := NewField(javacode.NewClassRef("java.lang", "String"), "label").
		AddModifiers(PrivateMod).
		AddAnnotation(anno).
		Javadoc("the display label").
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	imports := map[string]string{
		"java.lang.String":      "String",
		"javax.annotation.Nullable": "Nullable",
	}
	w := codewriter.NewEmitter(&buf, "com.example", imports, nil, "  ", 100)
	require.NoError(t, f.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "/**\n * the display label\n */\n@Nullable\nprivate String label;\n", buf.String())
}
