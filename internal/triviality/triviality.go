// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package triviality implements the per-record binding-category decision
// table as a literal table rather than branch-heavy code.
package triviality

import "github.com/crossffi/ccbindgen/internal/ir"

// Category is the binding category a Record is emitted under.
type Category int

const (
	// UnpinTrivial: plain value-semantics struct, no destructor surface.
	UnpinTrivial Category = iota
	// UnpinNontrivial: value type with an explicit destructor surface.
	UnpinNontrivial
	// Pinned: non-movable value type, mutated only through a pinned
	// handle, constructed only through emplacement.
	Pinned
)

func (c Category) String() string {
	switch c {
	case UnpinTrivial:
		return "UnpinTrivial"
	case UnpinNontrivial:
		return "UnpinNontrivial"
	case Pinned:
		return "Pinned"
	default:
		return "Unknown"
	}
}

// Analyze classifies r per the four-way rule:
//
//  1. Unpin-trivial:    is_trivial_abi && copy/move/dtor all Trivial+Public.
//  2. Unpin-nontrivial: is_trivial_abi && dtor accessible && something's non-trivial.
//  3. Pinned:           !is_trivial_abi.
//  4. Non-movable:      move-ctor Deleted forces Pinned regardless of (1)-(3).
func Analyze(r ir.Record) Category {
	if r.MoveCtor.Definition == ir.Deleted {
		return Pinned
	}
	if !r.IsTrivialAbi {
		return Pinned
	}
	if r.CopyCtor.IsTrivial() && r.CopyCtor.Access == ir.Public &&
		r.MoveCtor.IsTrivial() && r.MoveCtor.Access == ir.Public &&
		r.Dtor.IsTrivial() && r.Dtor.Access == ir.Public {
		return UnpinTrivial
	}
	if r.Dtor.Access == ir.Public && r.Dtor.Definition != ir.Deleted {
		return UnpinNontrivial
	}
	// is_trivial_abi with an inaccessible/deleted destructor: still a
	// by-value type, just without a Drop surface. Treated the same as
	// UnpinTrivial for passing-mode purposes; the constructor-surface
	// table (internal/emitter) separately gates each slot on its own
	// accessibility, so this does not over- or under-expose anything.
	return UnpinTrivial
}

// IsMovable reports whether r may be bound by value (passed/returned by
// value), as opposed to requiring the pinned/emplacement surface. A
// Deleted move-ctor forces this false even when is_trivial_abi is true.
func IsMovable(r ir.Record) bool {
	return r.MoveCtor.Definition != ir.Deleted
}

// SlotSurfaces reports, for each of the six special-member table rows,
// whether a target-side surface should be emitted at all. Access
// filtering happens here, uniformly: only Public slots produce a
// surface, and Deleted additionally inhibits any derived surface (e.g. a
// deleted copy-ctor inhibits clone) even if some other code path might
// otherwise have considered it reachable.
type SlotSurfaces struct {
	DefaultCtor bool
	CopyCtor    bool
	MoveCtor    bool
	CopyAssign  bool
	MoveAssign  bool
	Dtor        bool
}

// usable is the single predicate every slot surface is gated behind:
// Public access and not Deleted. It is intentionally the same rule for
// every slot, applied uniformly rather than special-casing any one member.
func usable(s ir.SpecialMemberFunc) bool {
	return s.IsUsable()
}

// Slots derives which surfaces r's special members produce. defaultCtor,
// copyAssign, and moveAssign are not modeled as SpecialMemberFunc in the
// IR's Record (only copy-ctor, move-ctor, and dtor are Record-level
// slots); default-ctor and assignment operators arrive as
// ordinary ir.Function items with a Constructor name / an `operator=` name
// respectively,
// so callers pass their accessibility in explicitly once they've found the
// corresponding ir.Function (or its absence, if the type has none).
func Slots(r ir.Record, hasDefaultCtor, defaultCtorPublic, hasCopyAssign, copyAssignPublic, hasMoveAssign, moveAssignPublic bool) SlotSurfaces {
	return SlotSurfaces{
		DefaultCtor: hasDefaultCtor && defaultCtorPublic,
		CopyCtor:    usable(r.CopyCtor),
		MoveCtor:    usable(r.MoveCtor),
		CopyAssign:  hasCopyAssign && copyAssignPublic,
		MoveAssign:  hasMoveAssign && moveAssignPublic,
		// Dtor surface emission additionally depends on category: unpin
		// records only get one when non-trivial, pinned records always
		// get pinned-drop when usable. Callers combine this with
		// Analyze's result.
		Dtor: usable(r.Dtor),
	}
}
