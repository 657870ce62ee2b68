// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for jomtimer packages.
//
// [RequireReceive] and [RequireEventually] bound how long a test waits
// on another goroutine. They are the only place tests use real
// wall-clock timeouts; the code under test runs on a fake clock.
//
// Helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
