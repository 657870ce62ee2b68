// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
	"github.com/jomtimer/jomtimer/lib/timer"
)

type validateParams struct {
	cli.JSONOutput
}

func validateCommand(env *environment) *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Check time strings and print their canonical form",
		Description: `Parse each TIME as a timer would and print its canonical HH:MM:SS
form, or the reason it is rejected.

Exits 1 when any TIME is invalid.`,
		Usage: "jomtimer validate TIME... [--json]",
		Examples: []cli.Example{
			{
				Description: "Normalize a short time",
				Command:     "jomtimer validate 9:5",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("validate needs at least one TIME argument")
			}
			return env.validateTimes(args, &params)
		},
	}
}

// validateResult reports one validated input.
type validateResult struct {
	Input        string `json:"input"`
	Valid        bool   `json:"valid"`
	Canonical    string `json:"canonical,omitempty"`
	TotalSeconds int    `json:"total_seconds,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (env *environment) validateTimes(inputs []string, params *validateParams) error {
	results := make([]validateResult, len(inputs))
	invalid := 0
	for index, input := range inputs {
		result := validateResult{Input: input}
		parsed, err := timer.Parse(input)
		if err != nil {
			result.Error = err.Error()
			invalid++
		} else {
			result.Valid = true
			result.Canonical = parsed.String()
			result.TotalSeconds = parsed.TotalSeconds()
		}
		results[index] = result
	}

	if done, err := params.EmitJSON(env.stdout, results); done {
		if err != nil {
			return err
		}
	} else {
		writer := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
		for _, result := range results {
			if result.Valid {
				fmt.Fprintf(writer, "%s\t%s\n", result.Input, result.Canonical)
			} else {
				fmt.Fprintf(writer, "%s\tinvalid: %s\n", result.Input, result.Error)
			}
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
