// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Command jomtimer runs clock timers from the terminal. See
// "jomtimer --help" for the command list.
package main

import (
	"os"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/commands"
	"github.com/jomtimer/jomtimer/lib/process"
)

func main() {
	process.Exit(run())
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
