// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package triviality

import (
	"testing"

	"github.com/crossffi/ccbindgen/internal/ir"
)

func trivialSMF() ir.SpecialMemberFunc {
	return ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Public}
}

func TestAnalyze_UnpinTrivial(t *testing.T) {
	r := ir.Record{
		IsTrivialAbi: true,
		CopyCtor:     trivialSMF(),
		MoveCtor:     trivialSMF(),
		Dtor:         trivialSMF(),
	}
	if got := Analyze(r); got != UnpinTrivial {
		t.Errorf("Analyze = %v, want UnpinTrivial", got)
	}
}

func TestAnalyze_UnpinNontrivial(t *testing.T) {
	r := ir.Record{
		IsTrivialAbi: true,
		CopyCtor:     ir.SpecialMemberFunc{Definition: ir.NontrivialMembers, Access: ir.Public},
		MoveCtor:     trivialSMF(),
		Dtor:         trivialSMF(),
	}
	if got := Analyze(r); got != UnpinNontrivial {
		t.Errorf("Analyze = %v, want UnpinNontrivial", got)
	}
}

func TestAnalyze_Pinned(t *testing.T) {
	r := ir.Record{
		IsTrivialAbi: false,
		CopyCtor:     ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
		MoveCtor:     ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
		Dtor:         ir.SpecialMemberFunc{Definition: ir.NontrivialSelf, Access: ir.Public},
	}
	if got := Analyze(r); got != Pinned {
		t.Errorf("Analyze = %v, want Pinned", got)
	}
}

func TestAnalyze_NonMovableForcesPinned(t *testing.T) {
	r := ir.Record{
		IsTrivialAbi: true,
		CopyCtor:     trivialSMF(),
		MoveCtor:     ir.SpecialMemberFunc{Definition: ir.Deleted, Access: ir.Public},
		Dtor:         trivialSMF(),
	}
	if got := Analyze(r); got != Pinned {
		t.Errorf("Analyze = %v, want Pinned (non-movable)", got)
	}
	if IsMovable(r) {
		t.Errorf("IsMovable = true, want false")
	}
}

func TestSlots_DeletedInhibitsSurface(t *testing.T) {
	r := ir.Record{
		CopyCtor: ir.SpecialMemberFunc{Definition: ir.Deleted, Access: ir.Public},
		MoveCtor: trivialSMF(),
		Dtor:     trivialSMF(),
	}
	s := Slots(r, false, false, false, false, false, false)
	if s.CopyCtor {
		t.Errorf("CopyCtor surface should be inhibited by Deleted")
	}
	if !s.MoveCtor || !s.Dtor {
		t.Errorf("MoveCtor/Dtor surfaces should be present")
	}
}

func TestSlots_ProtectedElided(t *testing.T) {
	r := ir.Record{
		CopyCtor: ir.SpecialMemberFunc{Definition: ir.Trivial, Access: ir.Protected},
		MoveCtor: trivialSMF(),
		Dtor:     trivialSMF(),
	}
	s := Slots(r, false, false, false, false, false, false)
	if s.CopyCtor {
		t.Errorf("Protected copy-ctor should not produce a surface")
	}
}
