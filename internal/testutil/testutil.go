// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that stand in for the Rust
// toolchain: fake cargo/rustup binaries backed by shell scripts.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// RequirePOSIX skips tests whose fake tools are POSIX shell scripts.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
}

// WriteFakeTool writes an executable shell script named name into dir and
// returns its path. The script body decides the tool's behavior (echo canned
// output, exit non-zero, inspect "$@").
func WriteFakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write fake %s: %v", name, err)
	}
	return path
}

// FakeToolDir creates a temp dir, fills it with fake tools, and puts it at
// the front of PATH for the remainder of the test. Not parallel-safe:
// t.Setenv forbids t.Parallel.
func FakeToolDir(t *testing.T, tools map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, script := range tools {
		WriteFakeTool(t, dir, name, script)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return dir
}
