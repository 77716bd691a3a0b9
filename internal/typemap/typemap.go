// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package typemap renders a single C++ type occurrence (an ir.MappedType)
// into its target-language and C++-side spellings, and classifies how a
// value of that type is passed across the boundary.
//
// The mapper never fails. Refusing to bind a type occurrence (e.g. a
// non-movable type passed by value) is the item emitter's job, not the
// mapper's — see internal/emitter.
package typemap

import (
	"strings"

	"github.com/crossffi/ccbindgen/internal/ir"
)

// PassingMode classifies how a MappedType crosses the language boundary.
type PassingMode int

const (
	ByValueTrivial PassingMode = iota
	ByValueNontrivial
	ByLRef
	ByConstLRef
	ByRRef
	ByConstRRef
	ByPointer
	ByConstPointer
)

func (m PassingMode) String() string {
	switch m {
	case ByValueTrivial:
		return "ByValueTrivial"
	case ByValueNontrivial:
		return "ByValueNontrivial"
	case ByLRef:
		return "ByLRef"
	case ByConstLRef:
		return "ByConstLRef"
	case ByRRef:
		return "ByRRef"
	case ByConstRRef:
		return "ByConstRRef"
	case ByPointer:
		return "ByPointer"
	case ByConstPointer:
		return "ByConstPointer"
	default:
		return "Unknown"
	}
}

// referenceHeads maps a target-side head spelling to the passing mode it
// always implies, independent of whatever's nested inside it. Pointer,
// reference, and rvalue-reference categories are not structurally
// distinguished from plain identifier heads in the IR; they're just heads
// the mapper recognizes by name.
var referenceHeads = map[string]PassingMode{
	"*mut":            ByPointer,
	"*const":          ByConstPointer,
	"&":               ByConstLRef,
	"&mut":            ByLRef,
	"RvalueRef":       ByRRef,
	"ConstRvalueRef":  ByConstRRef,
}

// Mapped is the rendered form of one MappedType occurrence: a token
// sequence for each side of the boundary, and the passing mode that
// governs whether the item emitter may bind it by value.
type Mapped struct {
	TargetTokens string
	CppTokens    string
	Mode         PassingMode
	// IsTrivial records whether the occurrence denotes a trivially
	// copyable value, independent of how it happens to be passed here
	// (e.g. a trivial struct can still show up as ByLRef for a `&mut`
	// parameter). It is the isTrivial argument Map was given, recorded
	// alongside the mode.
	IsTrivial bool
}

// Map renders a MappedType in isolation. isTrivial must be supplied by the
// caller for identifier heads (i.e. record types): the mapper has no
// access to the triviality analyzer's verdict, only to the structural
// shape of the type occurrence itself.
func Map(mt ir.MappedType, isTrivial bool) Mapped {
	target := renderView(mt.Target)
	cpp := renderView(mt.Source)

	if mode, ok := referenceHeads[mt.Target.Name]; ok {
		return Mapped{TargetTokens: target, CppTokens: cpp, Mode: mode, IsTrivial: isTrivial}
	}

	if isTrivial {
		return Mapped{TargetTokens: target, CppTokens: cpp, Mode: ByValueTrivial, IsTrivial: true}
	}
	return Mapped{TargetTokens: target, CppTokens: cpp, Mode: ByValueNontrivial, IsTrivial: false}
}

// renderView renders one side of a MappedType. TypeView.IsConst is not
// rendered on either side; const appears in the output only where it is
// already part of a view's Name.
func renderView(v ir.TypeView) string {
	var b strings.Builder
	renderViewInto(&b, v)
	return b.String()
}

func renderViewInto(b *strings.Builder, v ir.TypeView) {
	b.WriteString(v.Name)
	if len(v.TypeParams) == 0 {
		return
	}
	b.WriteByte('<')
	for i, p := range v.TypeParams {
		if i > 0 {
			b.WriteString(", ")
		}
		renderViewInto(b, p)
	}
	b.WriteByte('>')
}

// renderCppConst prefixes "const " onto a rendered C++ view when the
// source-side view requested it. Map does not call it, and the thunk
// signatures in internal/thunk add receiver constness themselves; its only
// caller is this package's test.
func renderCppConst(tokens string, isConst bool) string {
	if isConst {
		return "const " + tokens
	}
	return tokens
}
