// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ffiapi exposes internal/gen's pipeline across a process boundary:
// a pure byte-in/byte-out call usable directly from Go, and (in cgo.go) a
// C-linkage wrapper for embedding the engine in a non-Go driver.
package ffiapi

import "github.com/crossffi/ccbindgen/internal/gen"

// GenerateBindingsImpl runs the full generation pipeline over a raw JSON
// IR document and returns both output files as bytes.
func GenerateBindingsImpl(irJSON []byte) (rsAPI, rsAPIImpl []byte, err error) {
	a, b, genErr := gen.Generate(irJSON)
	if genErr != nil {
		return nil, nil, genErr
	}
	return []byte(a), []byte(b), nil
}
