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

func TestFileSpecEmitsTypeWithoutComment(t *testing.T) {
	ts, err := NewClass("Widget").AddModifiers(PublicMod).Build()
	require.NoError(t, err)
	fs := NewFile("com.example", ts)

	var buf bytes.Buffer
	w := codewriter.NewEmitter(&buf, "com.example", map[string]string{}, nil, "  ", 100)
	require.NoError(t, fs.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "public class Widget {\n}\n", buf.String())
}

func TestFileSpecEmitsFileCommentBeforeType(t *testing.T) {
	ts, err := NewClass("Widget").AddModifiers(PublicMod).Build()
	require.NoError(t, err)
	fs := NewFile("com.example", ts)
	comment, err := javacode.NewFragment("Code generated. DO NOT EDIT.")
	require.NoError(t, err)
	fs.FileComment = comment

	var buf bytes.Buffer
	w := codewriter.NewEmitter(&buf, "com.example", map[string]string{}, nil, "  ", 100)
	require.NoError(t, fs.EmitTo(w))
	require.NoError(t, w.Flush())
	require.Equal(t, "// Code generated. DO NOT EDIT.\npublic class Widget {\n}\n", buf.String())
}
