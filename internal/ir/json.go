// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ir

import (
	"encoding/json"
	"fmt"
)

// Decode parses a JSON IR document. Unknown fields are ignored for forward
// compatibility. Of the required fields, only a missing or empty
// current_target is reported as an error; any other missing field decodes
// to its zero value.
func Decode(data []byte) (Doc, error) {
	var raw rawDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return Doc{}, fmt.Errorf("ccbindgen: parsing JSON IR: %w", err)
	}

	doc := Doc{
		UsedHeaders:   raw.UsedHeaders,
		CurrentTarget: raw.CurrentTarget,
	}
	if doc.CurrentTarget == "" {
		return Doc{}, fmt.Errorf("ccbindgen: JSON IR missing required field %q", "current_target")
	}

	doc.Items = make([]Item, len(raw.Items))
	for i, rawItem := range raw.Items {
		item, err := decodeItem(rawItem)
		if err != nil {
			return Doc{}, fmt.Errorf("ccbindgen: decoding item %d: %w", i, err)
		}
		doc.Items[i] = item
	}
	return doc, nil
}

// rawDoc mirrors Doc but keeps Items as raw messages until each one's
// variant tag has been resolved.
type rawDoc struct {
	UsedHeaders   []HeaderName      `json:"used_headers"`
	CurrentTarget Label             `json:"current_target"`
	Items         []json.RawMessage `json:"items"`
}

// decodeItem resolves a single-key tagged-union object into an Item.
//
// The IR encodes Item the way Rust's serde would encode an externally
// tagged enum: a JSON object with exactly one of "Func", "Record",
// "UnsupportedItem", "Comment" as its key.
func decodeItem(raw json.RawMessage) (Item, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Item{}, err
	}

	if msg, ok := obj[string(ItemFunc)]; ok {
		var f Function
		if err := json.Unmarshal(msg, &f); err != nil {
			return Item{}, fmt.Errorf("Func: %w", err)
		}
		return Item{Kind: ItemFunc, Func: &f}, nil
	}
	if msg, ok := obj[string(ItemRecord)]; ok {
		var r Record
		if err := json.Unmarshal(msg, &r); err != nil {
			return Item{}, fmt.Errorf("Record: %w", err)
		}
		return Item{Kind: ItemRecord, Record: &r}, nil
	}
	if msg, ok := obj[string(ItemUnsupported)]; ok {
		var u UnsupportedItem
		if err := json.Unmarshal(msg, &u); err != nil {
			return Item{}, fmt.Errorf("UnsupportedItem: %w", err)
		}
		return Item{Kind: ItemUnsupported, Unsupported: &u}, nil
	}
	if msg, ok := obj[string(ItemComment)]; ok {
		var c Comment
		if err := json.Unmarshal(msg, &c); err != nil {
			return Item{}, fmt.Errorf("Comment: %w", err)
		}
		return Item{Kind: ItemComment, Comment: &c}, nil
	}
	return Item{}, fmt.Errorf("item has no recognized variant key (want one of Func, Record, UnsupportedItem, Comment)")
}

// MarshalJSON re-encodes Item back to the single-key tagged-union shape,
// used by round-trip tests.
func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case ItemFunc:
		return json.Marshal(map[string]*Function{"Func": it.Func})
	case ItemRecord:
		return json.Marshal(map[string]*Record{"Record": it.Record})
	case ItemUnsupported:
		return json.Marshal(map[string]*UnsupportedItem{"UnsupportedItem": it.Unsupported})
	case ItemComment:
		return json.Marshal(map[string]*Comment{"Comment": it.Comment})
	default:
		return nil, fmt.Errorf("ccbindgen: Item has unset Kind")
	}
}
