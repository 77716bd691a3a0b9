// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package common holds small, dependency-free helpers shared by the type
// mapper, triviality analyzer, and emitters: identifier escaping and the
// casing conversions used when the target language's naming convention
// differs from the C++ spelling.
package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// rawIdentifierPrefix is the fixed prefix the emitter uses to render an
// identifier that collides with a reserved keyword of the target
// language, e.g. "type" -> "r#type". This mirrors Rust's own
// raw-identifier syntax.
const rawIdentifierPrefix = "r#"

// reservedWords is the target language's keyword table. It is a fixed
// configuration set, not derived from the IR.
var reservedWords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"fn": true, "for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true, "ref": true, "return": true, "self": true, "Self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"async": true, "await": true, "abstract": true, "become": true, "box": true,
	"do": true, "final": true, "macro": true, "override": true, "priv": true,
	"typeof": true, "unsized": true, "virtual": true, "yield": true,
}

// IsReserved reports whether name collides with the target language's
// keyword set.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// EscapeIdentifier renders name the way it must appear in emitted source:
// verbatim unless it collides with a reserved keyword, in which case it is
// prefixed to become a raw identifier. Applies uniformly to type names,
// field names, parameter names, and function names.
func EscapeIdentifier(name string) string {
	if IsReserved(name) {
		return rawIdentifierPrefix + name
	}
	return name
}

// nameParts splits name into case-change boundaries, discarding
// underscores but not altering case.
func nameParts(name string) []string {
	var parts []string
	for _, namePart := range strings.Split(name, "_") {
		if namePart == "" {
			continue
		}
		partStart := 0
		lastRune, _ := utf8.DecodeRuneInString(namePart)
		lastRuneStart := 0
		for i, curRune := range namePart {
			if i == 0 {
				continue
			}
			if unicode.IsUpper(curRune) && !unicode.IsUpper(lastRune) {
				parts = append(parts, namePart[partStart:i])
				partStart = i
			}
			if !(unicode.IsUpper(curRune) || unicode.IsDigit(curRune)) && unicode.IsUpper(lastRune) && partStart != lastRuneStart {
				parts = append(parts, namePart[partStart:lastRuneStart])
				partStart = lastRuneStart
			}
			lastRuneStart = i
			lastRune = curRune
		}
		parts = append(parts, namePart[partStart:])
	}
	return parts
}

// ToSnakeCase converts name to snake_case, the target language's
// convention for field, parameter, and function names.
func ToSnakeCase(name string) string {
	parts := nameParts(name)
	for i := range parts {
		parts[i] = strings.ToLower(parts[i])
	}
	return strings.Join(parts, "_")
}

// toUpperCamelCase converts name to UpperCamelCase, the target language's
// convention for type names. Record identifiers are currently emitted
// verbatim (modulo keyword-escaping) rather than recased, since the
// forward_declare binding must keep the Rust-side name in lockstep with
// the original C++ spelling it names — this stays unexported pending a
// use that needs it.
func toUpperCamelCase(name string) string {
	parts := nameParts(name)
	for i := range parts {
		if parts[i] == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(parts[i])
		parts[i] = string(unicode.ToUpper(r)) + strings.ToLower(parts[i][size:])
	}
	return strings.Join(parts, "")
}
