// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package diag renders structured, source-located comments for items the
// engine refuses to bind. No item is ever silently dropped — every
// UnsupportedItem and every engine refusal becomes a comment block in the
// output position of the offending item.
package diag

import (
	"fmt"

	"github.com/crossffi/ccbindgen/internal/ir"
)

// Refusal is an engine-originated refusal to bind something the IR did
// carry as a regular item — e.g. a non-movable-by-value parameter, or a
// multi-argument constructor rejected by a simplified surface — as
// opposed to an UnsupportedItem the upstream IR producer already flagged.
type Refusal struct {
	Name   string
	Reason string
}

// Block renders the required comment block: the IR source location, the
// item name, and the human-readable reason, verbatim.
func Block(u ir.UnsupportedItem) string {
	return fmt.Sprintf(
		"// Not supported: %s\n// %s:%d:%d: %s",
		u.Name, u.Location.File, u.Location.Line, u.Location.Column, u.Reason,
	)
}

// RefusalBlock renders an engine refusal in the same shape as Block: the
// same "Not supported" first line, followed by the reason. A Refusal
// carries no source location, so the second line holds only the reason.
func RefusalBlock(r Refusal) string {
	return fmt.Sprintf("// Not supported: %s\n// %s", r.Name, r.Reason)
}
