// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package emitter

import "github.com/crossffi/ccbindgen/internal/ir"

// RecordFuncs collects the non-slot-derived functions belonging to one
// Record: the functions that appear as ordinary ir.Function items rather
// than being synthesized purely from a SpecialMemberFunc slot.
//
// Copy-ctor, move-ctor, and destructor surfaces are derived directly from
// Record.CopyCtor/MoveCtor/Dtor and need no matching Func item — the C++
// call they delegate to is reconstructed
// generically from for_type. Default constructors, other user-declared
// constructors, assignment operators, and ordinary member functions do
// not have a Record-level slot, so they are grouped here from the IR's
// flat Func item stream.
type RecordFuncs struct {
	DefaultCtor *ir.Function
	UserCtors   []ir.Function
	CopyAssign  *ir.Function
	MoveAssign  *ir.Function
	Methods     []ir.Function
}

// GroupByRecord buckets every Func item in doc by the record it belongs
// to (via member_func_metadata.for_type), in IR order.
func GroupByRecord(doc ir.Doc) map[ir.Identifier]*RecordFuncs {
	out := make(map[ir.Identifier]*RecordFuncs)
	bucket := func(id ir.Identifier) *RecordFuncs {
		rf, ok := out[id]
		if !ok {
			rf = &RecordFuncs{}
			out[id] = rf
		}
		return rf
	}

	for i := range doc.Items {
		item := doc.Items[i]
		if item.Kind != ir.ItemFunc {
			continue
		}
		f := item.Func
		if f.Member == nil {
			continue // free function, nothing to group
		}
		rf := bucket(f.Member.ForType)

		switch {
		case f.IsConstructor() && len(f.Params) == 0:
			fCopy := *f
			rf.DefaultCtor = &fCopy
		case f.IsConstructor():
			rf.UserCtors = append(rf.UserCtors, *f)
		case f.Name.Kind == ir.FuncNamePlain && f.Name.Identifier == "operator=" && len(f.Params) == 1:
			mode := assignMode(f.Params[0].Type)
			fCopy := *f
			if mode == assignMove {
				rf.MoveAssign = &fCopy
			} else {
				rf.CopyAssign = &fCopy
			}
		case f.IsMember():
			rf.Methods = append(rf.Methods, *f)
		}
	}
	return out
}

type assignKind int

const (
	assignCopy assignKind = iota
	assignMove
)

// assignMode distinguishes copy-assign from move-assign by the passing
// mode of operator='s sole parameter: an rvalue reference means move.
func assignMode(mt ir.MappedType) assignKind {
	switch mt.Target.Name {
	case "RvalueRef", "ConstRvalueRef":
		return assignMove
	default:
		return assignCopy
	}
}
