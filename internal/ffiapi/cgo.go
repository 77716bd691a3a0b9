// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ffiapi

// #include <stddef.h>
// #include <stdint.h>
// #include <stdlib.h>
import "C"

import (
	"os"
	"unsafe"
)

// buffer is the length-prefixed handoff shape used for both output
// buffers: a pointer the caller must eventually pass to
// FreeBindingsBuffers, and the byte length valid at that pointer.
type buffer struct {
	data C.uintptr_t
	len  C.size_t
}

func toCBuffer(b []byte) buffer {
	if len(b) == 0 {
		return buffer{}
	}
	ptr := C.malloc(C.size_t(len(b)))
	copy((*[1 << 30]byte)(ptr)[:len(b):len(b)], b)
	return buffer{data: C.uintptr_t(uintptr(ptr)), len: C.size_t(len(b))}
}

//export GenerateBindings
func GenerateBindings(irData *C.uint8_t, irLen C.size_t, outAPI *buffer, outAPIImpl *buffer, outErr *buffer) (ok C.int) {
	defer func() {
		// Panic barrier: a panic crossing the cgo boundary into the host
		// process corrupts its state in ways Go's runtime cannot recover
		// from gracefully, so it is reported and the process is ended
		// here rather than let unwind past this frame.
		if r := recover(); r != nil {
			*outErr = toCBuffer([]byte(panicMessage(r)))
			ok = 0
			os.Exit(2)
		}
	}()

	in := C.GoBytes(unsafe.Pointer(irData), C.int(irLen))
	rsAPI, rsAPIImpl, err := GenerateBindingsImpl(in)
	if err != nil {
		*outErr = toCBuffer([]byte(err.Error()))
		return 0
	}
	*outAPI = toCBuffer(rsAPI)
	*outAPIImpl = toCBuffer(rsAPIImpl)
	return 1
}

//export FreeBindingsBuffers
func FreeBindingsBuffers(buffers *buffer, n C.size_t) {
	slice := (*[1 << 20]buffer)(unsafe.Pointer(buffers))[:n:n]
	for _, b := range slice {
		if b.data != 0 {
			C.free(unsafe.Pointer(uintptr(b.data)))
		}
	}
}

func panicMessage(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "ccbindgen: panic: " + fmtPanic(r)
}

func fmtPanic(r interface{}) string {
	type stringer interface{ String() string }
	if s, ok := r.(stringer); ok {
		return s.String()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unknown panic value"
}
