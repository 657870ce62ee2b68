// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper for jomtimer:
// turning the error returned by run() into an exit status, with a
// plain "error: ..." line on stderr when no structured logger exists
// yet.
package process
