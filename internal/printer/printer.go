// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package printer assembles the two generated-file outputs — the
// target-language API surface ("Output A") and its C++ companion
// ("Output B") — from the pieces internal/gen accumulates while walking
// the IR. Rendering here is pure string concatenation; every decision
// about what to say was already made upstream by internal/emitter and
// internal/thunk.
package printer

import "strings"

const banner = "// Automatically generated by ccbindgen. Do not edit.\n"

// OutputA renders the target-side file: the banner, one block per IR item
// in order, and a trailing `extern "C"` detail module carrying every
// target-extern declaration the thunk pass collected. The compile-time
// layout assertions are not repeated here: each record's block already
// carries its own.
func OutputA(itemBlocks []string, externDecls []string) string {
	var b strings.Builder
	b.WriteString(banner)
	b.WriteString("\n")
	for _, item := range itemBlocks {
		b.WriteString(item)
		b.WriteString("\n\n")
	}
	if len(externDecls) > 0 {
		b.WriteString("mod detail {\n")
		b.WriteString("    extern \"C\" {\n")
		for _, d := range externDecls {
			b.WriteString(d)
			b.WriteString("\n")
		}
		b.WriteString("    }\n")
		b.WriteString("}\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// OutputB renders the C++ companion: the banner, one `#include` directive
// per used header in IR order, and every thunk definition in the order
// its owning item was emitted. A module with nothing direct-linkable
// skipped and no thunk-backed function at all needs no C++ companion —
// OutputB is the empty string in that case, rather than a banner standing
// alone over nothing.
func OutputB(headers []string, thunks []string) string {
	if len(headers) == 0 && len(thunks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(banner)
	b.WriteString("\n")
	for _, h := range headers {
		b.WriteString("#include \"")
		b.WriteString(h)
		b.WriteString("\"\n")
	}
	if len(headers) > 0 {
		b.WriteString("\n")
	}
	for _, t := range thunks {
		b.WriteString(t)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
