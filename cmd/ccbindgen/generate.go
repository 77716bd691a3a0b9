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

	"github.com/crossffi/ccbindgen/internal/gen"
)

type generateCmd struct {
	irPath       string
	rsAPIOut     string
	rsAPIImplOut string
}

func (*generateCmd) Name() string { return "generate" }

func (*generateCmd) Usage() string {
	return "generate -ir <path> -rs-api <path> -rs-api-impl <path>\n\nflags:\n"
}

func (*generateCmd) Synopsis() string {
	return "Generates the target-language API file and its C++ companion from a JSON IR document"
}

func (cmd *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.irPath, "ir", "", "path to the JSON IR document")
	f.StringVar(&cmd.rsAPIOut, "rs-api", "", "output path for the target-language API file")
	f.StringVar(&cmd.rsAPIImplOut, "rs-api-impl", "", "output path for the C++ companion file")
}

func (cmd *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if cmd.irPath == "" || cmd.rsAPIOut == "" || cmd.rsAPIImplOut == "" {
		glog.Error("generate: -ir, -rs-api, and -rs-api-impl are all required")
		return subcommands.ExitUsageError
	}

	raw, err := os.ReadFile(cmd.irPath)
	if err != nil {
		glog.Errorf("generate: reading IR document: %v", err)
		return subcommands.ExitFailure
	}

	rsAPI, rsAPIImpl, err := gen.Generate(raw)
	if err != nil {
		glog.Errorf("generate: %v", err)
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(cmd.rsAPIOut, []byte(rsAPI), 0644); err != nil {
		glog.Errorf("generate: writing %s: %v", cmd.rsAPIOut, err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(cmd.rsAPIImplOut, []byte(rsAPIImpl), 0644); err != nil {
		glog.Errorf("generate: writing %s: %v", cmd.rsAPIImplOut, err)
		return subcommands.ExitFailure
	}

	glog.Infof("generate: wrote %s and %s", cmd.rsAPIOut, cmd.rsAPIImplOut)
	return subcommands.ExitSuccess
}
