// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the jomtimer binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected at
// build time with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/jomtimer/jomtimer/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/jomtimer
//
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs.
package version
