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

func TestParameterSpecEmitsTypeAndName(t *testing.T) {
	p := NewParameter(javacode.NewPrimitive(javacode.Int), "count")

	var buf bytes.Buffer
	w := codewriter.NewEmitter(&buf, "com.example", map[string]string{}, nil, "  ", 100)
	require.NoError(t, p.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "int count", buf.String())
}

func TestParameterSpecEmitsFinalModifier(t *testing.T) {
	p := NewParameter(javacode.NewClassRef("java.lang", "String"), "name", FinalMod)

	var buf bytes.Buffer
	imports := map[string]string{"java.lang.String": "String"}
	w := codewriter.NewEmitter(&buf, "com.example", imports, nil, "  ", 100)
	require.NoError(t, p.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "final String name", buf.String())
}
