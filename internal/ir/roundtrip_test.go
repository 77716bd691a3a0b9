// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ir

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDecodeEncodeRoundTrip loads every fixture under testdata/, decodes it,
// re-encodes it, and decodes the result a second time: the two Docs must be
// identical.
func TestDecodeEncodeRoundTrip(t *testing.T) {
	fixtures, err := filepath.Glob("../../testdata/*.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(fixtures) == 0 {
		t.Fatal("no testdata fixtures found")
	}
	for _, path := range fixtures {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			first, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if err := Validate(first); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			reencoded, err := json.Marshal(first.Items)
			if err != nil {
				t.Fatalf("re-marshalling items: %v", err)
			}
			var items []json.RawMessage
			if err := json.Unmarshal(reencoded, &items); err != nil {
				t.Fatal(err)
			}
			second := Doc{UsedHeaders: first.UsedHeaders, CurrentTarget: first.CurrentTarget}
			for _, raw := range items {
				item, err := decodeItem(raw)
				if err != nil {
					t.Fatalf("decoding re-marshalled item: %v", err)
				}
				second.Items = append(second.Items, item)
			}

			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("round trip changed the decoded Doc (-before +after):\n%s", diff)
			}
		})
	}
}
