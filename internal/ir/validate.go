// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ir

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks every structural invariant a Doc must satisfy. It does
// not stop at the first problem: every violation found is
// collected and returned together, following the same multierr.Append
// accumulation pattern used elsewhere in the tree for batched error
// reporting, so a caller sees every structural defect in one invocation
// instead of fixing its IR one field at a time.
func Validate(d Doc) error {
	var err error

	byId := d.RecordByDeclId()

	walkType := func(context string, mt MappedType) {
		for _, view := range []TypeView{mt.Target, mt.Source} {
			if view.DeclId == nil {
				continue
			}
			if _, ok := byId[*view.DeclId]; !ok {
				err = multierr.Append(err, fmt.Errorf(
					"%s: type view %q references decl_id %d, but no Record with that id exists",
					context, view.Name, *view.DeclId))
			}
		}
	}

	for i, item := range d.Items {
		switch item.Kind {
		case ItemRecord:
			err = multierr.Append(err, validateRecord(i, item.Record))
			for _, f := range item.Record.Fields {
				walkType(fmt.Sprintf("item %d (Record %s, field %s)", i, item.Record.Identifier, f.Identifier), f.Type)
			}
		case ItemFunc:
			f := item.Func
			walkType(fmt.Sprintf("item %d (Func %s) return type", i, funcDisplayName(f)), f.ReturnType)
			for _, p := range f.Params {
				walkType(fmt.Sprintf("item %d (Func %s) param %s", i, funcDisplayName(f), p.Identifier), p.Type)
			}
			if (f.IsConstructor() || f.IsDestructor()) && f.Member == nil {
				err = multierr.Append(err, fmt.Errorf(
					"item %d: Func with Constructor/Destructor name must carry member_func_metadata", i))
			}
			if f.Member != nil {
				if _, ok := recordByIdentifier(d, f.Member.ForType); !ok {
					err = multierr.Append(err, fmt.Errorf(
						"item %d (Func %s): for_type %q does not match any Record in this IR",
						i, funcDisplayName(f), f.Member.ForType))
				}
			}
		case ItemUnsupported, ItemComment:
			// No cross-references to validate.
		default:
			err = multierr.Append(err, fmt.Errorf("item %d: Item has no recognized Kind", i))
		}
	}

	return err
}

func funcDisplayName(f *Function) string {
	switch f.Name.Kind {
	case FuncNameConstructor:
		return "<constructor>"
	case FuncNameDestructor:
		return "<destructor>"
	default:
		return string(f.Name.Identifier)
	}
}

func recordByIdentifier(d Doc, name Identifier) (*Record, bool) {
	for _, r := range d.Records() {
		if r.Identifier == name {
			return r, true
		}
	}
	return nil, false
}

func validateRecord(itemIdx int, r *Record) error {
	var err error

	if r.Alignment <= 0 || (r.Alignment&(r.Alignment-1)) != 0 {
		err = multierr.Append(err, fmt.Errorf(
			"item %d (Record %s): alignment %d is not a power of two", itemIdx, r.Identifier, r.Alignment))
	}
	if r.Size != 0 && r.Alignment != 0 && r.Size%r.Alignment != 0 {
		err = multierr.Append(err, fmt.Errorf(
			"item %d (Record %s): size %d is not a multiple of alignment %d", itemIdx, r.Identifier, r.Size, r.Alignment))
	}

	lastOffset := int64(-1)
	for _, f := range r.Fields {
		if f.Offset < lastOffset {
			err = multierr.Append(err, fmt.Errorf(
				"item %d (Record %s): field %s has offset %d, which is less than the preceding field's offset %d",
				itemIdx, r.Identifier, f.Identifier, f.Offset, lastOffset))
		}
		lastOffset = f.Offset
		if f.Offset < 0 || f.Offset >= 8*r.Size {
			err = multierr.Append(err, fmt.Errorf(
				"item %d (Record %s): field %s has offset %d bits, outside [0, %d)",
				itemIdx, r.Identifier, f.Identifier, f.Offset, 8*r.Size))
		}
	}

	if r.MoveCtor.Definition == Deleted && !r.IsTrivialAbi {
		// Non-movable pinned records are expected; nothing to flag.
		_ = r
	}

	return err
}
