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

package genconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAMLDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent_unit: \"\\t\"\ncolumn_limit: 120\ndefault_package: com.example\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "\t", cfg.IndentUnit)
	require.Equal(t, 120, cfg.ColumnLimit)
	require.Equal(t, "com.example", cfg.DefaultPackage)
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRenderOptionsCarriesLayoutFields(t *testing.T) {
	cfg := Config{IndentUnit: "    ", ColumnLimit: 80}
	opts := cfg.RenderOptions()
	require.Equal(t, "    ", opts.IndentUnit)
	require.Equal(t, 80, opts.ColumnLimit)
}

func TestPackageFromModulePathReversesHostLabels(t *testing.T) {
	pkg, err := PackageFromModulePath("github.com/example/widgets")
	require.NoError(t, err)
	require.Equal(t, "com.github.example.widgets", pkg)
}

func TestPackageFromModulePathSanitizesIllegalLabelCharacters(t *testing.T) {
	pkg, err := PackageFromModulePath("example.com/my-project")
	require.NoError(t, err)
	require.Equal(t, "com.example.my_project", pkg)
}

func TestPackageFromModulePathRejectsInvalidModulePath(t *testing.T) {
	_, err := PackageFromModulePath("not a valid module path!")
	require.Error(t, err)
}

func TestLoadAdvancedBindsFactsAndReadsBackGlobals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.star")
	script := `
if java_package == "com.example.internal":
    indent_unit = "  "
else:
    indent_unit = "\t"
column_limit = 100
default_package = java_package
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))

	cfg, err := LoadAdvanced(path, map[string]string{"java_package": "com.example.internal"})
	require.NoError(t, err)
	require.Equal(t, "  ", cfg.IndentUnit)
	require.Equal(t, 100, cfg.ColumnLimit)
	require.Equal(t, "com.example.internal", cfg.DefaultPackage)
}

func TestLoadAdvancedDefaultsWhenGlobalsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.star")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o600))

	cfg, err := LoadAdvanced(path, nil)
	require.NoError(t, err)
	require.Equal(t, "  ", cfg.IndentUnit)
	require.Equal(t, 100, cfg.ColumnLimit)
}

func TestLoadAdvancedRejectsWrongGlobalType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.star")
	require.NoError(t, os.WriteFile(path, []byte("column_limit = \"not an int\"\n"), 0o600))

	_, err := LoadAdvanced(path, nil)
	require.Error(t, err)
}
