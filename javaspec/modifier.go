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

// Package javaspec provides declaration-spec value objects — fields,
// parameters, methods, types, enum constants, and whole files — built on
// top of javacode and codewriter. spec.md treats these as out of scope for
// the core engine, but a generator needs real collaborators to drive it
// with, so this package supplies working ones in the same immutable,
// builder-constructed style as javacode's TypeRefs and Fragments.
package javaspec

import "sort"

// Modifier is a Java declaration modifier keyword. Names mirror the
// teacher's mast.java.go modifier constants.
type Modifier int

// The modifier set this package understands, in JLS §8.1.1/§9.1.1
// canonical emission order (public/protected/private, then abstract,
// default, static, final, transient, volatile, synchronized, native,
// strictfp).
const (
	PublicMod Modifier = iota
	ProtectedMod
	PrivateMod
	AbstractMod
	DefaultMod
	StaticMod
	FinalMod
	TransientMod
	VolatileMod
	SynchronizedMod
	NativeMod
	StrictfpMod
)

var modifierOrder = []Modifier{
	PublicMod, ProtectedMod, PrivateMod,
	AbstractMod, DefaultMod, StaticMod, FinalMod,
	TransientMod, VolatileMod, SynchronizedMod, NativeMod, StrictfpMod,
}

var modifierKeywords = map[Modifier]string{
	PublicMod:       "public",
	ProtectedMod:    "protected",
	PrivateMod:      "private",
	AbstractMod:     "abstract",
	DefaultMod:      "default",
	StaticMod:       "static",
	FinalMod:        "final",
	TransientMod:    "transient",
	VolatileMod:     "volatile",
	SynchronizedMod: "synchronized",
	NativeMod:       "native",
	StrictfpMod:     "strictfp",
}

// canonicalModifiers returns mods deduplicated, with any modifier present
// in implicit removed (e.g. an interface method's implicit "public
// abstract" is suppressed even when the caller listed it explicitly), and
// ordered per the JLS canonical modifier order.
func canonicalModifiers(mods []Modifier, implicit map[Modifier]bool) []Modifier {
	present := map[Modifier]bool{}
	for _, m := range mods {
		if implicit[m] {
			continue
		}
		present[m] = true
	}
	var out []Modifier
	for _, m := range modifierOrder {
		if present[m] {
			out = append(out, m)
		}
	}
	return out
}

func modifierKeywordsOf(mods []Modifier) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = modifierKeywords[m]
	}
	return out
}

func sortedStrings(in map[string]bool) []string {
	out := make([]string, 0, len(in))
	for k := range in {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
