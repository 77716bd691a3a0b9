// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package thunk implements the state machine deciding, per function,
// whether an `extern "C"` C++ trampoline is required, plus the two
// append-only token buffers (target-extern declarations and C++ thunk
// definitions) that result.
package thunk

import (
	"fmt"
	"strings"

	"github.com/crossffi/ccbindgen/internal/ir"
	"github.com/crossffi/ccbindgen/internal/triviality"
	"github.com/crossffi/ccbindgen/internal/typemap"
)

// Categories resolves the triviality category of every Record in the IR,
// keyed by DeclId, so the thunk decision can tell whether a by-value
// parameter or return is trivial without re-walking the whole Doc.
type Categories map[ir.DeclId]triviality.Category

// isTrivialType reports whether a MappedType occurrence is a trivial
// value: true for any type with no decl_id (primitives, already-mapped
// pointer/reference heads), and for identifier types resolving to
// UnpinTrivial.
func (c Categories) isTrivialType(mt ir.MappedType) bool {
	id := mt.Target.DeclId
	if id == nil {
		id = mt.Source.DeclId
	}
	if id == nil {
		return true
	}
	cat, ok := c[*id]
	if !ok {
		return true
	}
	return cat == triviality.UnpinTrivial
}

// isOperator reports whether f's name denotes a C++ operator overload,
// which always requires a thunk regardless of other criteria (syntactic
// translation, e.g. `operator==` -> a named method, can't be expressed as
// a direct-link call).
func isOperator(f ir.Function) bool {
	return f.Name.Kind == ir.FuncNamePlain && strings.HasPrefix(string(f.Name.Identifier), "operator")
}

// isRefQualifiedLOrR reports whether f is an instance method with an
// explicit (non-Unqualified) ref-qualifier.
func isRefQualifiedLOrR(f ir.Function) bool {
	if !f.IsMember() {
		return false
	}
	ref := f.Member.Instance.Reference
	return ref == ir.LValue || ref == ir.RValue
}

// hasNonTrivialByValue reports whether any parameter or the return type of
// f is passed ByValueNontrivial.
func (c Categories) hasNonTrivialByValue(f ir.Function) bool {
	if m := typemap.Map(f.ReturnType, c.isTrivialType(f.ReturnType)); m.Mode == typemap.ByValueNontrivial {
		return true
	}
	for _, p := range f.Params {
		if m := typemap.Map(p.Type, c.isTrivialType(p.Type)); m.Mode == typemap.ByValueNontrivial {
			return true
		}
	}
	return false
}

// CanSkipThunk implements the thunk-elision state machine: true if and
// only if f is a plain, non-inline, non-ref-qualified, non-operator function
// with no non-trivial by-value parameter or return — in which case the
// target side can link directly against f's mangled name with no C++
// thunk at all.
func (c Categories) CanSkipThunk(f ir.Function) bool {
	if f.IsConstructor() || f.IsDestructor() {
		return false
	}
	if isRefQualifiedLOrR(f) {
		return false
	}
	if isOperator(f) {
		return false
	}
	if c.hasNonTrivialByValue(f) {
		return false
	}
	if f.IsInline {
		return false
	}
	return true
}

// Symbol builds the thunk symbol name: "__rust_thunk__" concatenated
// with the C++ mangled name, or — when mangling is
// unavailable, such as for a compiler-synthesized special member — a
// stable suffix derived from the owning record and an ABI-shape tag.
func Symbol(f ir.Function) string {
	if f.MangledName != "" {
		return "__rust_thunk__" + f.MangledName
	}
	var tag string
	switch {
	case f.IsConstructor():
		tag = "C1Ev"
	case f.IsDestructor():
		tag = "D1Ev"
	default:
		tag = "f"
	}
	owner := "Unknown"
	if f.Member != nil {
		owner = string(f.Member.ForType)
	}
	return fmt.Sprintf("__rust_thunk__%s%s", owner, tag)
}

// Emitter accumulates the two append-only buffers across a single
// emission pass: target-extern entries (direct-link or
// thunk-backed forward declarations) and the C++ companion's thunk
// definitions.
type Emitter struct {
	Categories Categories

	Headers     []string
	ExternDecls []string // target-side `extern "C"` forward declarations, in IR order
	CppThunks   []string // C++-side thunk definitions, in IR order
}

// NewEmitter constructs an Emitter over the header list (emitted verbatim,
// in order) and the record categories used to resolve by-value
// triviality.
func NewEmitter(headers []string, categories Categories) *Emitter {
	return &Emitter{Categories: categories, Headers: headers}
}

// EmitFunction runs f through the can-skip-thunk decision and appends to
// whichever buffers the decision requires. It returns the target-side
// extern-block entry text and whether a C++ thunk was written; the entry
// is also appended to e.ExternDecls for end-of-module flushing, which is
// the only place the item emitter's callers take it from.
func (e *Emitter) EmitFunction(f ir.Function) (externDecl string, wroteThunk bool) {
	if e.Categories.CanSkipThunk(f) {
		decl := directLinkDecl(f)
		e.ExternDecls = append(e.ExternDecls, decl)
		return decl, false
	}

	symbol := Symbol(f)
	e.CppThunks = append(e.CppThunks, cppThunkDefinition(e.Categories, f, symbol))
	decl := thunkExternDecl(e.Categories, f, symbol)
	e.ExternDecls = append(e.ExternDecls, decl)
	return decl, true
}

func sig(f ir.Function) (params []string, ret string) {
	for _, p := range f.Params {
		m := typemap.Map(p.Type, true)
		params = append(params, fmt.Sprintf("%s: %s", p.Identifier, m.TargetTokens))
	}
	ret = typemap.Map(f.ReturnType, true).TargetTokens
	return params, ret
}

// returnSlot reports the out-pointer a thunk needs in place of an ordinary
// return: every constructor, which has no return value of its own and
// always constructs its result in place at a caller-supplied destination,
// and any other function whose return type is a non-trivial by-value
// type, which cannot be passed back across the extern boundary by value
// at all. needed is false for everything else, in which case targetType
// and cppType are unused.
func returnSlot(c Categories, f ir.Function) (targetType, cppType string, needed bool) {
	if f.IsConstructor() {
		owner := "Unknown"
		if f.Member != nil {
			owner = string(f.Member.ForType)
		}
		return owner, owner, true
	}
	m := typemap.Map(f.ReturnType, c.isTrivialType(f.ReturnType))
	if m.Mode != typemap.ByValueNontrivial {
		return "", "", false
	}
	return m.TargetTokens, m.CppTokens, true
}

// directLinkDecl renders the target-extern entry for a function whose
// thunk can be skipped: a forward declaration carrying a link_name
// directive bound to the mangled symbol. The imported symbol keeps the
// `__rust_thunk__` naming
// convention even though no C++ source is emitted for it — link_name
// binds it straight to the mangled symbol, so the linker needs no
// trampoline to resolve the call.
func directLinkDecl(f ir.Function) string {
	params, ret := sig(f)
	return fmt.Sprintf("    #[link_name = %q]\n    fn %s(%s) -> %s;",
		f.MangledName, Symbol(f), strings.Join(params, ", "), ret)
}

// thunkExternDecl renders the target-extern entry for a thunk-backed
// function: a forward declaration naming the thunk symbol directly (no
// link_name needed, since the thunk symbol already matches what the C++
// side emits). It declares one distinct generic lifetime per reference
// parameter and for the receiver; the rendered parameter and receiver
// types do not name those lifetimes. A constructor, or
// any other function returning a non-trivial by-value type, takes a
// leading out-pointer parameter and returns unit instead: the result is
// constructed in place at the caller-supplied destination rather than
// carried back across the extern boundary.
func thunkExternDecl(c Categories, f ir.Function, symbol string) string {
	params, ret := sig(f)
	lifetimes := lifetimeParams(f)
	var receiver string
	if f.IsMember() {
		constness := ""
		if f.Member.Instance.IsConst {
			constness = "const "
		}
		receiver = fmt.Sprintf("__this: %s*mut %s", constness, f.Member.ForType)
	}
	var allParams []string
	if targetType, _, needed := returnSlot(c, f); needed {
		allParams = append(allParams, fmt.Sprintf("__ret: *mut %s", targetType))
		ret = "()"
	} else if f.IsDestructor() {
		// A destructor's IR carries no return_type of its own (there's
		// nothing to return), so sig(f) above rendered the empty string.
		ret = "()"
	}
	if receiver != "" {
		allParams = append(allParams, receiver)
	}
	allParams = append(allParams, params...)
	generics := ""
	if lifetimes != "" {
		generics = "<" + lifetimes + ">"
	}
	return fmt.Sprintf("    fn %s%s(%s) -> %s;", symbol, generics, strings.Join(allParams, ", "), ret)
}

// lifetimeParams assigns a distinct generic lifetime to the receiver (if
// any) and to each reference-typed parameter; the receiver and every
// reference parameter each get their own generic lifetime, with no
// implicit elision assumed.
func lifetimeParams(f ir.Function) string {
	n := 0
	if f.IsMember() {
		n++
	}
	for _, p := range f.Params {
		mode := typemap.Map(p.Type, true).Mode
		if ByRefMode(mode) != -1 {
			n++
		}
	}
	var lts []string
	for i := 0; i < n; i++ {
		lts = append(lts, fmt.Sprintf("'a%d", i))
	}
	return strings.Join(lts, ", ")
}

// ByRefMode is a narrow helper so lifetimeParams can ask "is this a
// reference passing mode" without importing typemap's unexported details.
func ByRefMode(m typemap.PassingMode) typemap.PassingMode {
	switch m {
	case typemap.ByLRef, typemap.ByConstLRef, typemap.ByRRef, typemap.ByConstRRef:
		return m
	default:
		return -1
	}
}

// cppThunkDefinition renders the C++-side extern "C" thunk body: the
// ABI-lowered signature, delegating to the original call expression with
// the correct member-call shape. A constructor, or any other function
// returning a non-trivial by-value type, gets a leading `__ret` out
// parameter and a `void` return; the body placement-news into `__ret`
// instead of returning.
func cppThunkDefinition(c Categories, f ir.Function, symbol string) string {
	_, retSlotType, needsSlot := returnSlot(c, f)

	var params []string
	if needsSlot {
		params = append(params, fmt.Sprintf("%s* __ret", retSlotType))
	}
	if f.IsMember() {
		constness := ""
		if f.Member.Instance.IsConst {
			constness = "const "
		}
		params = append(params, fmt.Sprintf("%s%s* __this", constness, f.Member.ForType))
	}
	for _, p := range f.Params {
		m := typemap.Map(p.Type, true)
		params = append(params, fmt.Sprintf("%s %s", m.CppTokens, p.Identifier))
	}

	retTokens := "void"
	if !needsSlot && !f.IsDestructor() {
		// A destructor's IR carries no return_type of its own; "void" is
		// the only sensible C++ return type for it regardless.
		retTokens = typemap.Map(f.ReturnType, true).CppTokens
	}

	body := callExpression(f, needsSlot)
	return fmt.Sprintf("extern \"C\" %s %s(%s) {\n  %s\n}",
		retTokens, symbol, strings.Join(params, ", "), body)
}

// callExpression reconstructs the C++ call the thunk delegates to,
// restoring the correct ref-qualifier/const-qualifier call shape from
// f.Member when present. needsRetSlot mirrors the decision returnSlot made
// for f: when true, the call's result is placement-new'd into `__ret`
// instead of returned.
func callExpression(f ir.Function, needsRetSlot bool) string {
	args := make([]string, len(f.Params))
	for i, p := range f.Params {
		args[i] = string(p.Identifier)
	}
	argList := strings.Join(args, ", ")

	name := string(f.Name.Identifier)
	switch {
	case f.IsConstructor():
		owner := "Unknown"
		if f.Member != nil {
			owner = string(f.Member.ForType)
		}
		return fmt.Sprintf("new (__ret) %s(%s);", owner, argList)
	case f.IsDestructor():
		owner := "Unknown"
		if f.Member != nil {
			owner = string(f.Member.ForType)
		}
		return fmt.Sprintf("reinterpret_cast<%s*>(__this)->~%s();", owner, owner)
	case f.IsMember():
		var call string
		if f.Member.Instance.Reference == ir.RValue {
			call = fmt.Sprintf("std::move(*__this).%s(%s)", name, argList)
		} else {
			call = fmt.Sprintf("__this->%s(%s)", name, argList)
		}
		if needsRetSlot {
			return fmt.Sprintf("new (__ret) %s(%s);", typemap.Map(f.ReturnType, true).CppTokens, call)
		}
		return fmt.Sprintf("return %s;", call)
	default:
		call := fmt.Sprintf("%s(%s)", name, argList)
		if needsRetSlot {
			return fmt.Sprintf("new (__ret) %s(%s);", typemap.Map(f.ReturnType, true).CppTokens, call)
		}
		return fmt.Sprintf("return %s;", call)
	}
}
