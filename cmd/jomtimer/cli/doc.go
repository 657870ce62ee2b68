// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the jomtimer
// binary: a tree of [Command] values dispatched by name, pflag flag
// sets bound from tagged params structs ([FlagsFromParams]), --json
// output ([JSONOutput]), categorized errors ([ToolError]), handled
// non-zero exits ([ExitError]), and typo suggestions for unknown
// commands and flags.
package cli
