// Copyright 2019 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/crossffi/ccbindgen/internal/ir"
)

// checkCmd validates a JSON IR document without generating anything: a
// fast pre-flight a build system can run before invoking generate.
type checkCmd struct {
	irPath string
}

func (*checkCmd) Name() string { return "check" }

func (*checkCmd) Usage() string {
	return "check -ir <path>\n\nflags:\n"
}

func (*checkCmd) Synopsis() string {
	return "Validates a JSON IR document's internal consistency without generating output"
}

func (cmd *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.irPath, "ir", "", "path to the JSON IR document")
}

func (cmd *checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.irPath == "" {
		glog.Error("check: -ir is required")
		return subcommands.ExitUsageError
	}

	raw, err := os.ReadFile(cmd.irPath)
	if err != nil {
		glog.Errorf("check: reading IR document: %v", err)
		return subcommands.ExitFailure
	}

	doc, err := ir.Decode(raw)
	if err != nil {
		glog.Errorf("check: decoding IR document: %v", err)
		return subcommands.ExitFailure
	}
	if err := ir.Validate(doc); err != nil {
		glog.Errorf("check: %v", err)
		return subcommands.ExitFailure
	}

	glog.Info("check: ok")
	return subcommands.ExitSuccess
}
