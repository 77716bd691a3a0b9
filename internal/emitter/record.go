// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package emitter generates the target-side surface for records, their
// special members, and free functions. This is the largest single
// component of the engine — for each IR item it decides which concrete
// surface(s) to emit, building a plain string per declaration rather than
// threading an AST through a separate pretty-printer pass.
package emitter

import (
	"fmt"
	"strings"

	"github.com/crossffi/ccbindgen/internal/common"
	"github.com/crossffi/ccbindgen/internal/ir"
	"github.com/crossffi/ccbindgen/internal/thunk"
	"github.com/crossffi/ccbindgen/internal/triviality"
	"github.com/crossffi/ccbindgen/internal/typemap"
)

// Emitter carries the cross-item state an emission pass needs: the thunk
// accumulator and the triviality category of every record, precomputed
// once so constructors/fields referencing other records don't need to
// re-derive it.
type Emitter struct {
	Thunk      *thunk.Emitter
	Categories thunk.Categories
}

// New builds an Emitter over every Record in doc.
func New(doc ir.Doc, headers []string) *Emitter {
	categories := make(thunk.Categories)
	for _, r := range doc.Records() {
		categories[r.DeclId] = triviality.Analyze(*r)
	}
	return &Emitter{
		Thunk:      thunk.NewEmitter(headers, categories),
		Categories: categories,
	}
}

// EmitComment renders a free-text Comment item as a documentation block.
func (e *Emitter) EmitComment(c ir.Comment) string {
	return "// " + strings.ReplaceAll(strings.TrimRight(c.Text, "\n"), "\n", "\n// ")
}

// EmitRecord renders the full target-side surface of one Record: doc
// comment, attributes, struct body, forward-declare binding, special
// member surfaces, and layout/capability assertions, in that order.
func (e *Emitter) EmitRecord(r ir.Record, rf *RecordFuncs) string {
	cat := triviality.Analyze(r)
	name := common.EscapeIdentifier(string(r.Identifier))

	var b strings.Builder

	if r.DocComment != "" {
		fmt.Fprintf(&b, "/// %s\n", r.DocComment)
	}

	switch cat {
	case triviality.Pinned:
		b.WriteString("#[repr(C)]\n#[recursively_pinned")
		if triviality.Slots(r, rf.DefaultCtor != nil, true, false, false, false, false).Dtor {
			b.WriteString("(PinnedDrop)")
		}
		b.WriteString("]\n")
	case triviality.UnpinTrivial:
		b.WriteString("#[derive(Clone, Copy)]\n#[repr(C)]\n")
	default:
		b.WriteString("#[repr(C)]\n")
	}

	fmt.Fprintf(&b, "pub struct %s {\n", name)
	for _, line := range renderFields(r) {
		fmt.Fprintf(&b, "    %s\n", line)
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "forward_declare::unsafe_define!(forward_declare::symbol!(%q), %s);\n", r.Identifier, name)

	for _, surface := range e.recordSurfaces(r, rf, cat, name) {
		b.WriteString(surface)
		b.WriteString("\n")
	}

	b.WriteString(layoutAssertions(r, name, cat))

	return strings.TrimRight(b.String(), "\n")
}

// renderFields renders every field of r in IR order: public fields keep
// their identifier and mapped type; private/protected fields become
// opaque, collision-free padding bytes.
func renderFields(r ir.Record) []string {
	var lines []string
	for i, f := range r.Fields {
		if f.Access != ir.Public {
			size := fieldSpan(r, i)
			lines = append(lines, fmt.Sprintf("__padding%d: [u8; %d],", i, size))
			continue
		}
		fname := common.EscapeIdentifier(string(f.Identifier))
		m := typemap.Map(f.Type, true)
		lines = append(lines, fmt.Sprintf("pub %s: %s,", fname, m.TargetTokens))
	}
	if len(r.Fields) == 0 && r.Size > 0 {
		lines = append(lines, fmt.Sprintf("__padding_tail: [u8; %d],", r.Size))
	}
	return lines
}

// fieldSpan estimates the byte span of field i: the distance to the next
// field's offset, or to the end of the record for the last field. The IR
// carries per-field offsets but not per-field sizes, so this is a
// conservative approximation documented in DESIGN.md.
func fieldSpan(r ir.Record, i int) int64 {
	startBytes := r.Fields[i].Offset / 8
	if i+1 < len(r.Fields) {
		return r.Fields[i+1].Offset/8 - startBytes
	}
	return r.Size - startBytes
}

// layoutAssertions emits the mandatory compile-time assertions: size,
// alignment, each public field's offset, and the Copy/Drop capability set
// implied by cat.
func layoutAssertions(r ir.Record, name string, cat triviality.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const _: () = {\n")
	fmt.Fprintf(&b, "    assert!(::std::mem::size_of::<%s>() == %d);\n", name, r.Size)
	fmt.Fprintf(&b, "    assert!(::std::mem::align_of::<%s>() == %d);\n", name, r.Alignment)
	for _, f := range r.Fields {
		if f.Access != ir.Public {
			continue
		}
		fname := common.EscapeIdentifier(string(f.Identifier))
		fmt.Fprintf(&b, "    assert!(::memoffset::offset_of!(%s, %s) == %d);\n", name, fname, f.Offset/8)
	}
	b.WriteString("};\n")

	switch cat {
	case triviality.UnpinTrivial:
		fmt.Fprintf(&b, "static_assertions::assert_impl_all!(%s: Copy);\n", name)
	case triviality.UnpinNontrivial:
		fmt.Fprintf(&b, "static_assertions::assert_not_impl_any!(%s: Copy);\n", name)
		fmt.Fprintf(&b, "static_assertions::assert_impl_all!(%s: Drop);\n", name)
	case triviality.Pinned:
		fmt.Fprintf(&b, "static_assertions::assert_not_impl_any!(%s: Copy);\n", name)
		if r.Dtor.IsUsable() {
			fmt.Fprintf(&b, "static_assertions::assert_impl_all!(%s: Drop);\n", name)
		}
	}
	return b.String()
}
