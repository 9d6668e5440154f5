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

// Package genconfig loads the layout configuration the cmd/ example
// generators render with: indent unit, column limit, and the default
// output Java package. A flat YAML document covers the common case; an
// optional Starlark script covers generation policy that depends on
// computed conditions (module path, file path) the YAML format has no way
// to express.
package genconfig

import (
	"fmt"
	"os"

	"golang.org/x/mod/module"
	"go.starlark.net/starlark"
	"gopkg.in/yaml.v3"

	"github.com/javacomposer/javacomposer/render"
)

// Config is the resolved layout configuration for one generation run.
type Config struct {
	IndentUnit    string `yaml:"indent_unit"`
	ColumnLimit   int    `yaml:"column_limit"`
	DefaultPackage string `yaml:"default_package"`
}

// RenderOptions converts Config to the render.Options the engine expects.
func (c Config) RenderOptions() render.Options {
	return render.Options{IndentUnit: c.IndentUnit, ColumnLimit: c.ColumnLimit}
}

// Load reads a YAML config document from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("genconfig: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("genconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// PackageFromModulePath validates modulePath as a Go-style module path and
// derives a Java package name from it by reversing the host component's
// labels (the common "reverse domain name" convention), e.g.
// "github.com/example/widgets" -> "com.github.example.widgets".
func PackageFromModulePath(modulePath string) (string, error) {
	if err := module.CheckPath(modulePath); err != nil {
		return "", fmt.Errorf("genconfig: %q is not a valid module path: %w", modulePath, err)
	}
	return reverseDomainPackage(modulePath), nil
}

func reverseDomainPackage(modulePath string) string {
	segments := splitPath(modulePath)
	if len(segments) == 0 {
		return ""
	}
	host := splitDot(segments[0])
	reversed := make([]string, 0, len(host)+len(segments)-1)
	for i := len(host) - 1; i >= 0; i-- {
		reversed = append(reversed, sanitizeLabel(host[i]))
	}
	for _, seg := range segments[1:] {
		reversed = append(reversed, sanitizeLabel(seg))
	}
	out := reversed[0]
	for _, s := range reversed[1:] {
		out += "." + s
	}
	return out
}

func splitPath(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitDot(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func sanitizeLabel(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "_"
	}
	return string(out)
}

// LoadAdvanced evaluates a Starlark configuration script at path, binding
// the given facts (e.g. {"java_package": "com.example.internal"}) as
// global variables, and reads back an "indent_unit", "column_limit", and
// "default_package" global the script computed from them. This is for
// callers whose layout policy depends on conditions a flat YAML document
// cannot express, e.g. "tabs outside com.example.internal, two spaces
// inside it".
func LoadAdvanced(path string, facts map[string]string) (Config, error) {
	predeclared := starlark.StringDict{}
	for k, v := range facts {
		predeclared[k] = starlark.String(v)
	}
	thread := &starlark.Thread{Name: "genconfig"}
	globals, err := starlark.ExecFile(thread, path, nil, predeclared)
	if err != nil {
		return Config{}, fmt.Errorf("genconfig: evaluating %s: %w", path, err)
	}

	cfg := Config{IndentUnit: "  ", ColumnLimit: 100}
	if v, ok := globals["indent_unit"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return Config{}, fmt.Errorf("genconfig: %s: indent_unit must be a string", path)
		}
		cfg.IndentUnit = s
	}
	if v, ok := globals["column_limit"]; ok {
		i, ok := v.(starlark.Int)
		if !ok {
			return Config{}, fmt.Errorf("genconfig: %s: column_limit must be an int", path)
		}
		n, _ := i.Int64()
		cfg.ColumnLimit = int(n)
	}
	if v, ok := globals["default_package"]; ok {
		s, ok := starlark.AsString(v)
		if !ok {
			return Config{}, fmt.Errorf("genconfig: %s: default_package must be a string", path)
		}
		cfg.DefaultPackage = s
	}
	return cfg, nil
}
