// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package thunk

import (
	"strings"
	"testing"

	"github.com/crossffi/ccbindgen/internal/ir"
)

func intMT() ir.MappedType {
	return ir.MappedType{Target: ir.TypeView{Name: "i32"}, Source: ir.TypeView{Name: "int"}}
}

func addFunc(inline bool) ir.Function {
	return ir.Function{
		Name:        ir.FuncName{Kind: ir.FuncNamePlain, Identifier: "add"},
		MangledName: "_Z3Addii",
		ReturnType:  intMT(),
		Params: []ir.Param{
			{Type: intMT(), Identifier: "a"},
			{Type: intMT(), Identifier: "b"},
		},
		IsInline: inline,
	}
}

func TestCanSkipThunk_SimpleFreeFunction(t *testing.T) {
	c := Categories{}
	f := addFunc(false)
	if !c.CanSkipThunk(f) {
		t.Fatalf("non-inline free function with trivial params should skip the thunk")
	}
}

func TestEmitFunction_SimpleFreeFunction(t *testing.T) {
	e := NewEmitter(nil, Categories{})
	decl, wroteThunk := e.EmitFunction(addFunc(false))
	if wroteThunk {
		t.Errorf("expected no C++ thunk to be written")
	}
	if len(e.CppThunks) != 0 {
		t.Errorf("CppThunks should be empty, got %v", e.CppThunks)
	}
	if !strings.Contains(decl, `link_name = "_Z3Addii"`) {
		t.Errorf("decl missing link_name directive: %q", decl)
	}
	if !strings.Contains(decl, "__rust_thunk___Z3Addii") {
		t.Errorf("decl should still use the __rust_thunk__ naming convention: %q", decl)
	}
}

func TestCanSkipThunk_InlineFreeFunction(t *testing.T) {
	c := Categories{}
	f := addFunc(true)
	if c.CanSkipThunk(f) {
		t.Fatalf("inline function must always get a thunk")
	}
}

func TestEmitFunction_InlineFreeFunction(t *testing.T) {
	e := NewEmitter([]string{"foo/bar.h", "foo/baz.h"}, Categories{})
	_, wroteThunk := e.EmitFunction(addFunc(true))
	if !wroteThunk {
		t.Fatalf("expected a C++ thunk to be written")
	}
	if len(e.CppThunks) != 1 {
		t.Fatalf("want 1 thunk, got %d", len(e.CppThunks))
	}
	if !strings.Contains(e.CppThunks[0], "__rust_thunk___Z3Addii") {
		t.Errorf("thunk missing symbol: %q", e.CppThunks[0])
	}
	if !strings.Contains(e.CppThunks[0], "return add(a, b);") {
		t.Errorf("thunk body wrong: %q", e.CppThunks[0])
	}
}

func TestSymbol_FallsBackToShapeTag(t *testing.T) {
	f := ir.Function{
		Name:   ir.FuncName{Kind: ir.FuncNameDestructor},
		Member: &ir.MemberFuncMetadata{ForType: "Nontrivial", Instance: &ir.InstanceMethodMetadata{}},
	}
	got := Symbol(f)
	if !strings.Contains(got, "D1Ev") || !strings.Contains(got, "Nontrivial") {
		t.Errorf("Symbol = %q, want a D1Ev-tagged fallback", got)
	}
}

func TestCanSkipThunk_OperatorAlwaysThunked(t *testing.T) {
	c := Categories{}
	f := addFunc(false)
	f.Name.Identifier = "operator=="
	if c.CanSkipThunk(f) {
		t.Fatalf("operator overloads always require a thunk")
	}
}

func TestCanSkipThunk_RefQualifiedAlwaysThunked(t *testing.T) {
	c := Categories{}
	f := addFunc(false)
	f.Member = &ir.MemberFuncMetadata{
		ForType:  "Widget",
		Instance: &ir.InstanceMethodMetadata{Reference: ir.RValue},
	}
	if c.CanSkipThunk(f) {
		t.Fatalf("RValue-ref-qualified methods always require a thunk")
	}
}
