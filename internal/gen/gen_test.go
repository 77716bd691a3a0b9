// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gen

import (
	"strings"
	"testing"
)

const simpleFreeFunctionIR = `{
  "used_headers": [],
  "current_target": "//foo:bar",
  "items": [
    {"Func": {
      "name": {"kind": "Identifier", "identifier": "add"},
      "id": 1,
      "owning_target": "//foo:bar",
      "mangled_name": "_Z3Addii",
      "return_type": {"target": {"name": "i32"}, "source": {"name": "int"}},
      "params": [
        {"type": {"target": {"name": "i32"}, "source": {"name": "int"}}, "identifier": "a"},
        {"type": {"target": {"name": "i32"}, "source": {"name": "int"}}, "identifier": "b"}
      ],
      "is_inline": false
    }}
  ]
}`

func TestGenerate_SimpleFreeFunction(t *testing.T) {
	rsAPI, rsAPIImpl, err := Generate([]byte(simpleFreeFunctionIR))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(rsAPI, "pub fn add(a: i32, b: i32) -> i32") {
		t.Errorf("rsAPI missing wrapper: %q", rsAPI)
	}
	if !strings.Contains(rsAPI, `link_name = "_Z3Addii"`) {
		t.Errorf("rsAPI missing link_name directive: %q", rsAPI)
	}
	if strings.Contains(rsAPIImpl, "extern \"C\"") {
		t.Errorf("a direct-link function should produce no C++ thunk: %q", rsAPIImpl)
	}
}

func TestGenerate_InlineFreeFunctionEmitsThunk(t *testing.T) {
	inlineIR := strings.Replace(simpleFreeFunctionIR, `"is_inline": false`, `"is_inline": true`, 1)
	inlineIR = strings.Replace(inlineIR, `"used_headers": []`, `"used_headers": [{"name": "foo/bar.h"}, {"name": "foo/baz.h"}]`, 1)

	rsAPI, rsAPIImpl, err := Generate([]byte(inlineIR))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(rsAPI, "__rust_thunk___Z3Addii") {
		t.Errorf("rsAPI missing thunk-backed extern decl: %q", rsAPI)
	}
	for _, want := range []string{`#include "foo/bar.h"`, `#include "foo/baz.h"`, "return add(a, b);"} {
		if !strings.Contains(rsAPIImpl, want) {
			t.Errorf("rsAPIImpl missing %q: %q", want, rsAPIImpl)
		}
	}
}

func TestGenerate_UnsupportedItemBecomesComment(t *testing.T) {
	raw := `{
  "used_headers": [],
  "current_target": "//foo:bar",
  "items": [
    {"UnsupportedItem": {
      "name": "await",
      "message": "Class templates are not supported yet",
      "source_loc": {"file": "escaping_keywords.h", "line": 16, "column": 1}
    }}
  ]
}`
	rsAPI, _, err := Generate([]byte(raw))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, want := range []string{"await", "escaping_keywords.h", "Class templates are not supported yet"} {
		if !strings.Contains(rsAPI, want) {
			t.Errorf("rsAPI missing %q: %q", want, rsAPI)
		}
	}
}

func TestGenerate_MalformedJSONFails(t *testing.T) {
	if _, _, err := Generate([]byte("not json")); err == nil {
		t.Fatal("Generate() with malformed JSON should fail")
	}
}
