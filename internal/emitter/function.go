// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package emitter

import (
	"fmt"
	"strings"

	"github.com/crossffi/ccbindgen/internal/common"
	"github.com/crossffi/ccbindgen/internal/thunk"
	"github.com/crossffi/ccbindgen/internal/triviality"
	"github.com/crossffi/ccbindgen/internal/typemap"

	"github.com/crossffi/ccbindgen/internal/ir"
)

// EmitFreeFunction renders one non-member Function's surface: a thin
// wrapper with the same by-value/by-reference shape the type mapper
// assigned each parameter and the return type, delegating to either a
// direct-linked extern or a thunk per internal/thunk's decision.
func (e *Emitter) EmitFreeFunction(f ir.Function) string {
	symbol := thunk.Symbol(f)
	e.Thunk.EmitFunction(f)

	fnName := common.ToSnakeCase(common.EscapeIdentifier(string(f.Name.Identifier)))
	retTrivial := true
	retId := f.ReturnType.Target.DeclId
	if retId == nil {
		retId = f.ReturnType.Source.DeclId
	}
	if retId != nil {
		if cat, ok := e.Categories[*retId]; ok {
			retTrivial = cat == triviality.UnpinTrivial
		}
	}
	retMapped := typemap.Map(f.ReturnType, retTrivial)

	var params []string
	var args []string
	for _, p := range f.Params {
		pname := common.ToSnakeCase(common.EscapeIdentifier(string(p.Identifier)))
		m := typemap.Map(p.Type, true)
		params = append(params, fmt.Sprintf("%s: %s", pname, m.TargetTokens))
		args = append(args, pname)
	}

	doc := ""
	if f.DocComment != "" {
		doc = fmt.Sprintf("/// %s\n", f.DocComment)
	}

	if retMapped.Mode != typemap.ByValueNontrivial {
		return fmt.Sprintf(
			"%spub fn %s(%s) -> %s {\n    unsafe { %s(%s) }\n}",
			doc, fnName, strings.Join(params, ", "), retMapped.TargetTokens, symbol, strings.Join(args, ", "),
		)
	}

	// Non-trivial by-value return: the thunk takes a hidden return slot,
	// constructing the result in place, rather than returning the value
	// directly across the extern boundary.
	return fmt.Sprintf(
		"%spub fn %s(%s) -> %s {\n    let mut __ret = ::std::mem::MaybeUninit::uninit();\n    unsafe {\n        %s(__ret.as_mut_ptr(), %s);\n        __ret.assume_init()\n    }\n}",
		doc, fnName, strings.Join(params, ", "), retMapped.TargetTokens, symbol, strings.Join(args, ", "),
	)
}
