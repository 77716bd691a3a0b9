// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gen wires together internal/ir, internal/triviality,
// internal/emitter, internal/thunk, internal/diag, and internal/printer
// into the top-level two-file generation pipeline.
package gen

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/crossffi/ccbindgen/internal/diag"
	"github.com/crossffi/ccbindgen/internal/emitter"
	"github.com/crossffi/ccbindgen/internal/ir"
	"github.com/crossffi/ccbindgen/internal/printer"
)

// InternalError marks a panic the engine raised against its own invariant
// rather than a malformed input document; Generate recovers it at the
// boundary and turns it back into a plain error so callers never see a
// panic escape the package.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("ccbindgen: internal error during %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Generate parses, validates, and binds doc, producing the target-side
// API file and its C++ companion. Every Record, free Func, Comment, and
// UnsupportedItem contributes exactly one block to the target-side output,
// in the same order it appeared in the IR. A Func with member metadata
// contributes no block of its own: constructors, operator= and instance
// methods are rendered inside their owning Record's block, and any other
// member Func (a static member function, or a destructor, whose surface
// comes from the Record's destructor slot instead) produces no output.
func Generate(raw []byte) (rsAPI, rsAPIImpl string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				err = ie
				return
			}
			if e2, ok := r.(error); ok {
				err = &InternalError{Op: "generate", Err: e2}
				return
			}
			err = &InternalError{Op: "generate", Err: fmt.Errorf("%v", r)}
		}
	}()

	doc, decodeErr := ir.Decode(raw)
	if decodeErr != nil {
		return "", "", fmt.Errorf("decoding IR: %w", decodeErr)
	}
	if validateErr := ir.Validate(doc); validateErr != nil {
		return "", "", fmt.Errorf("validating IR: %w", validateErr)
	}

	headers := make([]string, 0, len(doc.UsedHeaders))
	for _, h := range doc.UsedHeaders {
		headers = append(headers, h.Name)
	}

	em := emitter.New(doc, headers)
	byRecord := emitter.GroupByRecord(doc)

	var itemBlocks []string
	var errs error

	for i := range doc.Items {
		item := doc.Items[i]
		switch item.Kind {
		case ir.ItemRecord:
			rf := byRecord[item.Record.Identifier]
			if rf == nil {
				rf = &emitter.RecordFuncs{}
			}
			itemBlocks = append(itemBlocks, em.EmitRecord(*item.Record, rf))
		case ir.ItemFunc:
			if item.Func.Member != nil {
				// Member functions are emitted as part of their owning
				// Record's block above; skip here to avoid duplication.
				// A member function's content lands in its owning Record's
				// block rather than one of its own, so len(itemBlocks) can
				// be less than len(doc.Items) whenever member functions
				// are present. Member functions GroupByRecord does not
				// bucket (static member functions) are not emitted at all.
				// See DESIGN.md.
				continue
			}
			itemBlocks = append(itemBlocks, em.EmitFreeFunction(*item.Func))
		case ir.ItemComment:
			itemBlocks = append(itemBlocks, em.EmitComment(*item.Comment))
		case ir.ItemUnsupported:
			itemBlocks = append(itemBlocks, diag.Block(*item.Unsupported))
		default:
			errs = multierr.Append(errs, fmt.Errorf("unknown item kind %q", item.Kind))
		}
	}
	if errs != nil {
		return "", "", errs
	}

	rsAPI = printer.OutputA(itemBlocks, em.Thunk.ExternDecls)
	rsAPIImpl = printer.OutputB(em.Thunk.Headers, em.Thunk.CppThunks)
	return rsAPI, rsAPIImpl, nil
}
