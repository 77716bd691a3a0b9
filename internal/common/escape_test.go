// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package common

import "testing"

func TestEscapeIdentifier(t *testing.T) {
	type testCase struct {
		input  string
		output string
	}
	tests := []testCase{
		{input: "foo", output: "foo"},
		{input: "type", output: "r#type"},
		{input: "self", output: "r#self"},
		{input: "Self", output: "r#Self"},
		{input: "dyn", output: "r#dyn"},
		{input: "not_reserved", output: "not_reserved"},
	}
	for _, tc := range tests {
		if got := EscapeIdentifier(tc.input); got != tc.output {
			t.Errorf("EscapeIdentifier(%q) = %q, want %q", tc.input, got, tc.output)
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	type testCase struct {
		input  string
		output string
	}
	tests := []testCase{
		{input: "SomeStruct", output: "some_struct"},
		{input: "firstField", output: "first_field"},
		{input: "already_snake", output: "already_snake"},
		{input: "ABCWidget", output: "abc_widget"},
	}
	for _, tc := range tests {
		if got := ToSnakeCase(tc.input); got != tc.output {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", tc.input, got, tc.output)
		}
	}
}

func TestToUpperCamelCase(t *testing.T) {
	type testCase struct {
		input  string
		output string
	}
	tests := []testCase{
		{input: "some_struct", output: "SomeStruct"},
		{input: "SomeStruct", output: "SomeStruct"},
		{input: "nontrivial", output: "Nontrivial"},
	}
	for _, tc := range tests {
		if got := toUpperCamelCase(tc.input); got != tc.output {
			t.Errorf("toUpperCamelCase(%q) = %q, want %q", tc.input, got, tc.output)
		}
	}
}
