// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

// requireShell skips tests that spawn real processes through /bin/sh.
func requireShell(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping process execution test in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
}

func TestNativeRunner_Validate(t *testing.T) {
	t.Parallel()

	r := NewNativeRunner()

	if err := r.Validate(&Invocation{Argv: []string{"cargo", "fmt"}}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	if err := r.Validate(&Invocation{}); err == nil {
		t.Error("Validate() with empty argv succeeded, want error")
	}
}

func TestNativeRunner_Execute(t *testing.T) {
	t.Parallel()
	requireShell(t)

	r := NewNativeRunner()

	res := r.Execute(context.Background(), &Invocation{
		Argv: []string{"/bin/sh", "-c", "echo out; echo err >&2"},
	})
	if !res.Success() {
		t.Fatalf("Execute() failed: exit=%s err=%v", res.ExitCode, res.Error)
	}
	if got := strings.TrimSpace(res.Output); got != "out" {
		t.Errorf("Output = %q, want %q", got, "out")
	}
	if got := strings.TrimSpace(res.ErrOutput); got != "err" {
		t.Errorf("ErrOutput = %q, want %q", got, "err")
	}
}

func TestNativeRunner_ExecuteExitStatus(t *testing.T) {
	t.Parallel()
	requireShell(t)

	r := NewNativeRunner()

	res := r.Execute(context.Background(), &Invocation{
		Argv: []string{"/bin/sh", "-c", "exit 101"},
	})
	if res.Success() {
		t.Fatal("Execute(exit 101) reported success")
	}
	if res.ExitCode != 101 {
		t.Errorf("ExitCode = %s, want 101", res.ExitCode)
	}
	if res.Error != nil {
		t.Errorf("a plain non-zero exit should not be an infrastructure error, got: %v", res.Error)
	}
}

func TestNativeRunner_ExecuteSpawnFailure(t *testing.T) {
	t.Parallel()

	r := NewNativeRunner()

	res := r.Execute(context.Background(), &Invocation{
		Argv: []string{"/nonexistent/definitely-not-a-binary"},
	})
	if res.Success() {
		t.Fatal("Execute of a missing binary reported success")
	}
	if res.Error == nil {
		t.Error("spawn failure should populate Error")
	}
}

func TestNativeRunner_ExecuteEnv(t *testing.T) {
	t.Parallel()
	requireShell(t)

	r := NewNativeRunner()

	res := r.Execute(context.Background(), &Invocation{
		Argv: []string{"/bin/sh", "-c", `echo "$CARGO_TARGET_DIR"`},
		Env:  map[string]string{"CARGO_TARGET_DIR": "/tmp/cell-ws"},
	})
	if !res.Success() {
		t.Fatalf("Execute() failed: exit=%s err=%v", res.ExitCode, res.Error)
	}
	if got := strings.TrimSpace(res.Output); got != "/tmp/cell-ws" {
		t.Errorf("Output = %q, want %q", got, "/tmp/cell-ws")
	}
}
