// Copyright 2026 The Jomtimer Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jomtimer/jomtimer/cmd/jomtimer/cli"
)

func TestValidateAllValid(t *testing.T) {
	env := newTestEnvironment(t)
	if err := env.execute("validate", "1:2:3", "9:5", "23:59:59"); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	got := lines(env.stdout.String())
	want := []string{"01:02:03", "09:05:00", "23:59:59"}
	if len(got) != len(want) {
		t.Fatalf("output = %q, want %d lines", got, len(want))
	}
	for index, line := range got {
		if !strings.HasSuffix(line, want[index]) {
			t.Errorf("line %d = %q, want canonical %s", index, line, want[index])
		}
	}
}

func TestValidateReportsInvalid(t *testing.T) {
	env := newTestEnvironment(t)
	err := env.execute("validate", "12:00:00", "24:00:00")

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want exit code 1", err)
	}
	output := env.stdout.String()
	if !strings.Contains(output, "24:00:00") || !strings.Contains(output, "invalid:") {
		t.Errorf("output does not report the invalid input:\n%s", output)
	}
}

func TestValidateJSON(t *testing.T) {
	env := newTestEnvironment(t)
	err := env.execute("validate", "--json", "0:0:61", "1:1")
	if err == nil {
		t.Fatal("validate succeeded with an out-of-range input")
	}

	var results []validateResult
	if err := json.Unmarshal(env.stdout.Bytes(), &results); err != nil {
		t.Fatalf("output %q: %v", env.stdout.String(), err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2", results)
	}
	if results[0].Valid || results[0].Error == "" {
		t.Errorf("results[0] = %+v, want invalid with an error", results[0])
	}
	if !results[1].Valid || results[1].Canonical != "01:01:00" || results[1].TotalSeconds != 3660 {
		t.Errorf("results[1] = %+v, want 01:01:00 (3660s)", results[1])
	}
}

func TestValidateNeedsArguments(t *testing.T) {
	env := newTestEnvironment(t)
	if err := env.execute("validate"); cli.CategoryOf(err) != cli.CategoryValidation {
		t.Fatalf("error = %v, want validation error", err)
	}
}
