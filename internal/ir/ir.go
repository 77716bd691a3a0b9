// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ir defines the typed, immutable tree of C++ declarations that the
// rest of ccbindgen consumes. It is deserialized once from a JSON document
// and never mutated afterwards.
package ir

// Identifier is a bare source name, before any keyword-escaping.
type Identifier string

// DeclId is an opaque dense integer identifying a Record by identity.
// Type occurrences close cycles through a DeclId back-reference rather
// than nominal lookup.
type DeclId int64

// Label denotes the build unit that owns a declaration. It only affects
// diagnostics and cross-unit visibility, both out of scope here.
type Label string

// Access is the C++ access specifier of a special member function or field.
type Access string

const (
	Public    Access = "Public"
	Protected Access = "Protected"
	Private   Access = "Private"
)

// Definition classifies how a special member function is defined.
type Definition string

const (
	Trivial            Definition = "Trivial"
	NontrivialMembers  Definition = "NontrivialMembers"
	NontrivialSelf     Definition = "NontrivialSelf"
	Deleted            Definition = "Deleted"
)

// Reference is the ref-qualifier on a C++ instance method.
type Reference string

const (
	LValue     Reference = "LValue"
	RValue     Reference = "RValue"
	Unqualified Reference = "Unqualified"
)

// TypeView is one side (target or source) of a MappedType occurrence.
type TypeView struct {
	Name       string     `json:"name"`
	IsConst    bool       `json:"is_const,omitempty"`
	TypeParams []TypeView `json:"type_params,omitempty"`
	DeclId     *DeclId    `json:"decl_id,omitempty"`
}

// MappedType is a single C++ type occurrence, described from both sides of
// the language boundary.
type MappedType struct {
	Target TypeView `json:"target"`
	Source TypeView `json:"source"`
}

// SpecialMemberFunc is one of a record's copy-ctor, move-ctor, or
// destructor slots.
type SpecialMemberFunc struct {
	Definition Definition `json:"definition"`
	Access     Access     `json:"access"`
}

// IsUsable reports whether this slot produces any target-side surface at
// all: it must be reachable (Public) and not explicitly removed (Deleted).
func (s SpecialMemberFunc) IsUsable() bool {
	return s.Access == Public && s.Definition != Deleted
}

// IsTrivial reports whether the slot is compiler-generated and
// bit-for-bit equivalent to a memcpy/no-op.
func (s SpecialMemberFunc) IsTrivial() bool {
	return s.Definition == Trivial
}

// Field is a single data member of a Record.
type Field struct {
	Identifier Identifier `json:"identifier"`
	DocComment string     `json:"doc_comment,omitempty"`
	Type       MappedType `json:"type"`
	Access     Access     `json:"access"`
	Offset     int64      `json:"offset"`
}

// Record describes one C++ class/struct declaration.
type Record struct {
	Identifier   Identifier `json:"identifier"`
	DeclId       DeclId     `json:"id"`
	Owner        Label      `json:"owning_target"`
	DocComment   string     `json:"doc_comment,omitempty"`
	Fields       []Field    `json:"fields"`
	Size         int64      `json:"size"`
	Alignment    int64      `json:"alignment"`
	CopyCtor     SpecialMemberFunc `json:"copy_constructor"`
	MoveCtor     SpecialMemberFunc `json:"move_constructor"`
	Dtor         SpecialMemberFunc `json:"destructor"`
	IsTrivialAbi bool       `json:"is_trivial_abi"`
}

// InstanceMethodMetadata describes the implicit object parameter of a
// non-static member function.
type InstanceMethodMetadata struct {
	Reference Reference `json:"reference"`
	IsConst   bool      `json:"is_const"`
	IsVirtual bool      `json:"is_virtual"`
}

// MemberFuncMetadata is present on constructors, destructors, and member
// functions; absent on free functions.
type MemberFuncMetadata struct {
	ForType  Identifier              `json:"for_type"`
	Instance *InstanceMethodMetadata `json:"instance_method_metadata,omitempty"`
}

// FuncNameKind distinguishes plain functions from the two special-member
// pseudo-names that carry no source spelling of their own.
type FuncNameKind string

const (
	FuncNamePlain       FuncNameKind = "Identifier"
	FuncNameConstructor FuncNameKind = "Constructor"
	FuncNameDestructor  FuncNameKind = "Destructor"
)

// FuncName is the tagged-union unqualified name of a Function.
type FuncName struct {
	Kind       FuncNameKind `json:"kind"`
	Identifier Identifier   `json:"identifier,omitempty"`
}

// Param is one parameter of a Function.
type Param struct {
	Type       MappedType `json:"type"`
	Identifier Identifier `json:"identifier"`
}

// Function describes a free function, constructor, destructor, or member
// function.
type Function struct {
	Name         FuncName            `json:"name"`
	DeclId       DeclId              `json:"id"`
	Owner        Label               `json:"owning_target"`
	MangledName  string              `json:"mangled_name"`
	DocComment   string              `json:"doc_comment,omitempty"`
	ReturnType   MappedType          `json:"return_type"`
	Params       []Param             `json:"params"`
	IsInline     bool                `json:"is_inline"`
	Member       *MemberFuncMetadata `json:"member_func_metadata,omitempty"`
}

// IsMember reports whether Function is a non-static member function
// (constructors and destructors always have Member metadata too, but are
// distinguished from regular methods by Name.Kind).
func (f Function) IsMember() bool {
	return f.Member != nil && f.Member.Instance != nil
}

// IsConstructor reports whether Function is a constructor of its owning
// record.
func (f Function) IsConstructor() bool {
	return f.Name.Kind == FuncNameConstructor
}

// IsDestructor reports whether Function is the destructor of its owning
// record.
func (f Function) IsDestructor() bool {
	return f.Name.Kind == FuncNameDestructor
}

// SourceLoc is a 1-based file position, used only for diagnostics.
type SourceLoc struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// UnsupportedItem is a C++ declaration the engine refuses to bind, along
// with the human-readable reason and its source location.
type UnsupportedItem struct {
	Name     string    `json:"name"`
	Reason   string    `json:"message"`
	Location SourceLoc `json:"source_loc"`
}

// Comment is free text emitted verbatim as a documentation block.
type Comment struct {
	Text string `json:"text"`
}

// ItemKind tags the variant held by an Item.
type ItemKind string

const (
	ItemFunc            ItemKind = "Func"
	ItemRecord          ItemKind = "Record"
	ItemUnsupported     ItemKind = "UnsupportedItem"
	ItemComment         ItemKind = "Comment"
)

// Item is the tagged union making up the IR's order-significant item
// sequence: exactly one of Func/Record/Unsupported/Comment is populated,
// selected by Kind.
type Item struct {
	Kind        ItemKind
	Func        *Function
	Record      *Record
	Unsupported *UnsupportedItem
	Comment     *Comment
}

// HeaderName is one entry of the IR's used_headers list.
type HeaderName struct {
	Name string `json:"name"`
}

// Doc is the top-level JSON IR document.
type Doc struct {
	UsedHeaders   []HeaderName `json:"used_headers"`
	CurrentTarget Label        `json:"current_target"`
	Items         []Item       `json:"items"`
}

// Records returns every Record item, in IR order.
func (d Doc) Records() []*Record {
	var out []*Record
	for i := range d.Items {
		if d.Items[i].Kind == ItemRecord {
			out = append(out, d.Items[i].Record)
		}
	}
	return out
}

// RecordByDeclId builds a lookup table over every Record in the document.
func (d Doc) RecordByDeclId() map[DeclId]*Record {
	out := make(map[DeclId]*Record, len(d.Items))
	for _, r := range d.Records() {
		out[r.DeclId] = r
	}
	return out
}
