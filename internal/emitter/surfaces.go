// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

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

// recordSurfaces renders every special-member and method surface for r, in
// declaration order: constructors, copy/move construction, assignment,
// destructor, then ordinary methods.
func (e *Emitter) recordSurfaces(r ir.Record, rf *RecordFuncs, cat triviality.Category, name string) []string {
	slots := triviality.Slots(r,
		rf.DefaultCtor != nil, true,
		rf.CopyAssign != nil, true,
		rf.MoveAssign != nil, true,
	)

	var out []string

	if slots.DefaultCtor {
		out = append(out, e.ctorSurface(*rf.DefaultCtor, name, cat, "new"))
	}
	for i, ctor := range rf.UserCtors {
		fnName := "new"
		if i > 0 || rf.DefaultCtor != nil {
			fnName = fmt.Sprintf("new%d", i+1)
		}
		out = append(out, e.ctorSurface(ctor, name, cat, fnName))
	}

	if cat == triviality.Pinned {
		if slots.CopyCtor {
			out = append(out, e.pinnedCopyCtorSurface(r, name))
		}
		if slots.MoveCtor {
			out = append(out, e.pinnedMoveCtorSurface(r, name))
		}
	} else if slots.CopyCtor && cat == triviality.UnpinNontrivial {
		out = append(out, e.cloneImplSurface(r, name))
	}

	if slots.CopyAssign {
		out = append(out, e.assignSurface(*rf.CopyAssign, name, cat, "copy"))
	}
	if slots.MoveAssign {
		out = append(out, e.assignSurface(*rf.MoveAssign, name, cat, "move"))
	}

	if cat != triviality.UnpinTrivial && slots.Dtor {
		out = append(out, e.dtorSurface(r, name, cat))
	}

	for _, m := range rf.Methods {
		out = append(out, e.methodSurface(m, name, cat))
	}

	return out
}

// receiverSyntax renders the impl-block receiver parameter for a method of
// category cat, given its ref-qualifier and constness.
func receiverSyntax(cat triviality.Category, inst *ir.InstanceMethodMetadata) string {
	pin := cat == triviality.Pinned
	switch {
	case inst == nil || inst.Reference == ir.Unqualified || inst.Reference == ir.LValue:
		if inst != nil && inst.IsConst {
			if pin {
				return "self: ::std::pin::Pin<&Self>"
			}
			return "&self"
		}
		if pin {
			return "self: ::std::pin::Pin<&mut Self>"
		}
		return "&mut self"
	default: // RValue
		if inst.IsConst {
			return "self"
		}
		return "self"
	}
}

// ctorSurface renders one constructor's target-side surface: a plain
// associated "new" function returning Self by value for the two Unpin
// categories, or an emplacement-constructor function for Pinned records,
// since a non-movable value can never be produced by plain return.
func (e *Emitter) ctorSurface(f ir.Function, recv string, cat triviality.Category, fnName string) string {
	params := paramList(f.Params)
	args := argNames(f.Params)
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)

	if cat != triviality.Pinned {
		return fmt.Sprintf(
			"impl %s {\n    pub fn %s(%s) -> Self {\n        let mut __slot = ::std::mem::MaybeUninit::<Self>::uninit();\n        unsafe {\n            %s(__slot.as_mut_ptr(), %s);\n            __slot.assume_init()\n        }\n    }\n}",
			recv, fnName, strings.Join(params, ", "), symbol, strings.Join(args, ", "),
		)
	}
	return fmt.Sprintf(
		"impl %s {\n    pub fn %s(%s) -> impl ::ctor::Ctor<Output = Self> {\n        unsafe {\n            ::ctor::FnCtor::new(move |__dest: ::std::pin::Pin<&mut ::std::mem::MaybeUninit<Self>>| {\n                %s(__dest.get_unchecked_mut().as_mut_ptr(), %s);\n            })\n        }\n    }\n}",
		recv, fnName, strings.Join(params, ", "), symbol, strings.Join(args, ", "),
	)
}

// copyCtorFunc and moveCtorFunc synthesize the ir.Function for a record's
// copy/move constructor. Neither has a Func item of its own in the IR —
// only the SpecialMemberFunc slot on Record records that the slot is
// usable — so there is no mangled name to read off an existing
// declaration. A fabricated one is given instead, so thunk.Symbol's
// primary (mangled-name) branch fires and the copy-ctor, move-ctor, and
// any user-written constructor of the same record each land on a distinct
// symbol rather than colliding on the single shape-tag the no-mangled-name
// fallback would otherwise assign every constructor of a record.
func copyCtorFunc(r ir.Record) ir.Function {
	return ir.Function{
		Name:        ir.FuncName{Kind: ir.FuncNameConstructor},
		MangledName: fmt.Sprintf("%sC1ERKS_", r.Identifier),
		Member:      &ir.MemberFuncMetadata{ForType: r.Identifier},
		Params: []ir.Param{{
			Identifier: "__src",
			Type: ir.MappedType{
				Target: ir.TypeView{Name: "&", TypeParams: []ir.TypeView{{Name: string(r.Identifier)}}},
				Source: ir.TypeView{Name: fmt.Sprintf("const %s&", r.Identifier)},
			},
		}},
	}
}

func moveCtorFunc(r ir.Record) ir.Function {
	return ir.Function{
		Name:        ir.FuncName{Kind: ir.FuncNameConstructor},
		MangledName: fmt.Sprintf("%sC1EOS_", r.Identifier),
		Member:      &ir.MemberFuncMetadata{ForType: r.Identifier},
		Params: []ir.Param{{
			Identifier: "__src",
			Type: ir.MappedType{
				Target: ir.TypeView{Name: "RvalueRef", TypeParams: []ir.TypeView{{Name: string(r.Identifier)}}},
				Source: ir.TypeView{Name: fmt.Sprintf("%s&&", r.Identifier)},
			},
		}},
	}
}

// pinnedCopyCtorSurface and pinnedMoveCtorSurface render the emplacement
// surfaces a Pinned record exposes for its copy/move constructors: a
// function from a reference to `impl Ctor<Output = Self>`, since a pinned
// value can never be constructed by plain return.
func (e *Emitter) pinnedCopyCtorSurface(r ir.Record, name string) string {
	f := copyCtorFunc(r)
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)
	return fmt.Sprintf(
		"impl ::ctor::CopyCtor for %s {\n    unsafe fn copy_ctor(__dest: ::std::pin::Pin<&mut ::std::mem::MaybeUninit<Self>>, __src: ::std::pin::Pin<&Self>) {\n        %s(__dest.get_unchecked_mut().as_mut_ptr(), __src.get_ref());\n    }\n}",
		name, symbol,
	)
}

func (e *Emitter) pinnedMoveCtorSurface(r ir.Record, name string) string {
	f := moveCtorFunc(r)
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)
	return fmt.Sprintf(
		"impl ::ctor::MoveCtor for %s {\n    unsafe fn move_ctor(__dest: ::std::pin::Pin<&mut ::std::mem::MaybeUninit<Self>>, __src: ::std::pin::Pin<&mut Self>) {\n        %s(__dest.get_unchecked_mut().as_mut_ptr(), __src.get_unchecked_mut());\n    }\n}",
		name, symbol,
	)
}

// cloneImplSurface gives an UnpinNontrivial record a Clone impl backed by
// its copy constructor: the type is movable and returnable by value, but
// its copy is not a memcpy, so Rust's derive(Clone) cannot be used.
func (e *Emitter) cloneImplSurface(r ir.Record, name string) string {
	f := copyCtorFunc(r)
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)
	return fmt.Sprintf(
		"impl Clone for %s {\n    fn clone(&self) -> Self {\n        let mut __slot = ::std::mem::MaybeUninit::<Self>::uninit();\n        unsafe {\n            %s(__slot.as_mut_ptr(), self);\n            __slot.assume_init()\n        }\n    }\n}",
		name, symbol,
	)
}

// assignSurface renders an operator= surface. Pinned records get an
// emplace-assign method; Unpin records expose an explicit `assign` method
// since their ordinary `=` already does a bitwise move in Rust and cannot
// be overloaded to call the C++ operator.
func (e *Emitter) assignSurface(f ir.Function, recv string, cat triviality.Category, kind string) string {
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)
	fnName := kind + "_assign"
	param := "__src: &Self"
	if kind == "move" {
		param = "__src: &mut Self"
	}
	selfParam := "&mut self"
	if cat == triviality.Pinned {
		selfParam = "self: ::std::pin::Pin<&mut Self>"
	}
	return fmt.Sprintf(
		"impl %s {\n    pub fn %s(%s, %s) {\n        unsafe { %s(self as *mut Self, __src); }\n    }\n}",
		recv, fnName, selfParam, param, symbol,
	)
}

// dtorSurface renders the Drop (Unpin-nontrivial) or PinnedDrop (Pinned)
// surface calling through to the record's destructor thunk.
func (e *Emitter) dtorSurface(r ir.Record, name string, cat triviality.Category) string {
	f := ir.Function{
		Name:   ir.FuncName{Kind: ir.FuncNameDestructor},
		Member: &ir.MemberFuncMetadata{ForType: r.Identifier, Instance: &ir.InstanceMethodMetadata{}},
	}
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)

	if cat == triviality.Pinned {
		return fmt.Sprintf(
			"unsafe impl ::ctor::PinnedDrop for %s {\n    unsafe fn pinned_drop(self: ::std::pin::Pin<&mut Self>) {\n        %s(self.get_unchecked_mut());\n    }\n}",
			name, symbol,
		)
	}
	return fmt.Sprintf(
		"impl Drop for %s {\n    fn drop(&mut self) {\n        unsafe { %s(self); }\n    }\n}",
		name, symbol,
	)
}

// methodSurface renders one ordinary member function.
func (e *Emitter) methodSurface(f ir.Function, recv string, cat triviality.Category) string {
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)

	fnName := common.ToSnakeCase(common.EscapeIdentifier(string(f.Name.Identifier)))
	params := paramList(f.Params)
	args := argNames(f.Params)
	receiver := receiverSyntax(cat, f.Member.Instance)

	allParams := append([]string{receiver}, params...)
	retTokens := typemap.Map(f.ReturnType, true).TargetTokens

	receiverArg := "self"
	if cat == triviality.Pinned {
		receiverArg = "self.get_unchecked_mut() as *mut Self"
	} else if f.Member.Instance.Reference != ir.RValue {
		receiverArg = "self as *const Self as *mut Self"
	}

	callArgs := append([]string{receiverArg}, args...)
	return fmt.Sprintf(
		"impl %s {\n    pub fn %s(%s) -> %s {\n        unsafe { %s(%s) }\n    }\n}",
		recv, fnName, strings.Join(allParams, ", "), retTokens, symbol, strings.Join(callArgs, ", "),
	)
}

func paramList(params []ir.Param) []string {
	var out []string
	for _, p := range params {
		m := typemap.Map(p.Type, true)
		out = append(out, fmt.Sprintf("%s: %s", common.ToSnakeCase(common.EscapeIdentifier(string(p.Identifier))), m.TargetTokens))
	}
	return out
}

func argNames(params []ir.Param) []string {
	var out []string
	for _, p := range params {
		out = append(out, common.ToSnakeCase(common.EscapeIdentifier(string(p.Identifier))))
	}
	return out
}
