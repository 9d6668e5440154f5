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

package buildintegration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeBuildFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "BUILD")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestRegisterSourceAppendsToExistingSrcs(t *testing.T) {
	path := writeBuildFile(t, `java_library(
    name = "widgets",
    srcs = ["Widget.java"],
)
`)

	require.NoError(t, RegisterSource(path, "widgets", "Gadget.java"))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), `"Widget.java"`)
	require.Contains(t, string(out), `"Gadget.java"`)
}

func TestRegisterSourceIsNoOpWhenSourceAlreadyListed(t *testing.T) {
	path := writeBuildFile(t, `java_library(
    name = "widgets",
    srcs = ["Widget.java"],
)
`)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, RegisterSource(path, "widgets", "Widget.java"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestRegisterSourceFailsWhenRuleNameNotFound(t *testing.T) {
	path := writeBuildFile(t, `java_library(
    name = "widgets",
    srcs = ["Widget.java"],
)
`)

	err := RegisterSource(path, "gizmos", "Gadget.java")
	require.Error(t, err)
	require.Contains(t, err.Error(), "gizmos")
}

func TestRegisterSourceFailsOnMissingFile(t *testing.T) {
	err := RegisterSource(filepath.Join(t.TempDir(), "BUILD"), "widgets", "Widget.java")
	require.Error(t, err)
}

func TestRegisterSourceFailsOnMalformedBuildFile(t *testing.T) {
	path := writeBuildFile(t, `java_library(name = "widgets", srcs = [`)

	err := RegisterSource(path, "widgets", "Widget.java")
	require.Error(t, err)
}

func TestRegisterSourceHandlesRuleWithNoExistingSrcs(t *testing.T) {
	path := writeBuildFile(t, `java_library(
    name = "widgets",
)
`)

	require.NoError(t, RegisterSource(path, "widgets", "Widget.java"))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(out), `"Widget.java"`)
}
