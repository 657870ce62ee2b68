// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(env *environment) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "jomtimer version [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if done, err := params.EmitJSON(env.stdout, version.Current()); done {
				return err
			}
			_, err := fmt.Fprintf(env.stdout, "jomtimer %s\n", version.Full())
			return err
		},
	}
}
