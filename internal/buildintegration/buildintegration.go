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

// Package buildintegration keeps a Bazel BUILD file's java_library rule in
// sync with freshly generated sources: after the render façade writes a
// new .java file, RegisterSource adds it to an existing rule's srcs list
// (if not already present) and rewrites the BUILD file in place.
package buildintegration

import (
	"fmt"
	"os"

	"github.com/bazelbuild/buildtools/build"
)

// RegisterSource parses the BUILD file at buildPath, finds the
// java_library rule named ruleName, and appends srcRelPath to its srcs
// attribute if it is not already listed. It rewrites buildPath in place
// only if a change was made.
func RegisterSource(buildPath, ruleName, srcRelPath string) error {
	data, err := os.ReadFile(buildPath)
	if err != nil {
		return fmt.Errorf("buildintegration: reading %s: %w", buildPath, err)
	}
	f, err := build.Parse(buildPath, data)
	if err != nil {
		return fmt.Errorf("buildintegration: parsing %s: %w", buildPath, err)
	}

	var rule *build.Rule
	for _, r := range f.Rules("java_library") {
		if r.Name() == ruleName {
			rule = r
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("buildintegration: no java_library rule named %q in %s", ruleName, buildPath)
	}

	srcs := rule.AttrStrings("srcs")
	for _, s := range srcs {
		if s == srcRelPath {
			return nil
		}
	}
	updated := append(srcs, srcRelPath)
	items := make([]build.Expr, 0, len(updated))
	for _, s := range updated {
		items = append(items, &build.StringExpr{Value: s})
	}
	rule.SetAttr("srcs", &build.ListExpr{List: items})

	out := build.Format(f)
	if err := os.WriteFile(buildPath, out, 0o644); err != nil {
		return fmt.Errorf("buildintegration: writing %s: %w", buildPath, err)
	}
	return nil
}
