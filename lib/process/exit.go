// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit status
// and have already reported themselves.
type exitCoder interface {
	ExitCode() int
}

// Exit terminates the process for the error returned by run(). A nil
// error exits 0. Errors with an ExitCode method exit with that code
// silently; anything else is printed as "error: err" and exits 1.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w as Exit would and returns the exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(exitCoder); ok {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
