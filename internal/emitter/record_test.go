// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package emitter

import (
	"strings"
	"testing"

	"github.com/crossffi/ccbindgen/internal/ir"
)

func intField(name ir.Identifier, offset int64) ir.Field {
	return ir.Field{
		Identifier: name,
		Access:     ir.Public,
		Offset:     offset,
		Type:       ir.MappedType{Target: ir.TypeView{Name: "i32"}, Source: ir.TypeView{Name: "int"}},
	}
}

func TestEmitRecord_TrivialStruct(t *testing.T) {
	r := ir.Record{
		Identifier: "SomeStruct",
		DeclId:     1,
		Size:       8,
		Alignment:  4,
		Fields: []ir.Field{
			intField("first_field", 0),
			intField("second_field", 32),
		},
		CopyCtor:     ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		MoveCtor:     ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		Dtor:         ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		IsTrivialAbi: true,
	}
	doc := ir.Doc{Items: []ir.Item{{Kind: ir.ItemRecord, Record: &r}}}
	e := New(doc, nil)
	got := e.EmitRecord(r, &RecordFuncs{})

	for _, want := range []string{
		"#[repr(C)]",
		"pub struct SomeStruct {",
		"pub first_field: i32,",
		"pub second_field: i32,",
		"size_of::<SomeStruct>() == 8",
		"align_of::<SomeStruct>() == 4",
		"offset_of!(SomeStruct, first_field) == 0",
		"offset_of!(SomeStruct, second_field) == 4",
		"assert_impl_all!(SomeStruct: Copy)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("EmitRecord() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "impl Drop for SomeStruct") {
		t.Errorf("trivial record should carry no drop surface:\n%s", got)
	}
}

func TestEmitRecord_PinnedNontrivial(t *testing.T) {
	r := ir.Record{
		Identifier: "Nontrivial",
		DeclId:     2,
		Size:       4,
		Alignment:  4,
		Fields: []ir.Field{
			{Identifier: "value", Access: ir.Private, Offset: 0,
				Type: ir.MappedType{Target: ir.TypeView{Name: "i32"}, Source: ir.TypeView{Name: "int"}}},
		},
		CopyCtor:     ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
		MoveCtor:     ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
		Dtor:         ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
		IsTrivialAbi: false,
	}
	rf := &RecordFuncs{
		DefaultCtor: &ir.Function{
			Name:   ir.FuncName{Kind: ir.FuncNameConstructor},
			Member: &ir.MemberFuncMetadata{ForType: "Nontrivial"},
		},
	}
	doc := ir.Doc{Items: []ir.Item{{Kind: ir.ItemRecord, Record: &r}}}
	e := New(doc, nil)
	got := e.EmitRecord(r, rf)

	for _, want := range []string{
		"#[recursively_pinned(PinnedDrop)]",
		"__padding0: [u8; 4]",
		"impl ::ctor::Ctor<Output = Self>",
		"impl ::ctor::CopyCtor for Nontrivial",
		"impl ::ctor::MoveCtor for Nontrivial",
		"impl ::ctor::PinnedDrop for Nontrivial",
		"assert_not_impl_any!(Nontrivial: Copy)",
		"assert_impl_all!(Nontrivial: Drop)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("EmitRecord() missing %q in:\n%s", want, got)
		}
	}
}

func TestEmitRecord_KeywordEscaped(t *testing.T) {
	r := ir.Record{
		Identifier: "type",
		DeclId:     3,
		Size:       4,
		Alignment:  4,
		Fields: []ir.Field{
			{Identifier: "dyn", Access: ir.Public, Offset: 0,
				Type: ir.MappedType{Target: ir.TypeView{Name: "i32"}, Source: ir.TypeView{Name: "int"}}},
		},
		CopyCtor:     ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		MoveCtor:     ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		Dtor:         ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public},
		IsTrivialAbi: true,
	}
	doc := ir.Doc{Items: []ir.Item{{Kind: ir.ItemRecord, Record: &r}}}
	e := New(doc, nil)
	got := e.EmitRecord(r, &RecordFuncs{})

	if !strings.Contains(got, "pub struct r#type {") {
		t.Errorf("record name should be raw-escaped: %q", got)
	}
	if !strings.Contains(got, "r#dyn") {
		t.Errorf("field name should be raw-escaped: %q", got)
	}
	if !strings.Contains(got, `symbol!("type")`) {
		t.Errorf("forward_declare binding should key on the literal unescaped symbol: %q", got)
	}
}
