// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"crateci/internal/matrix"
	"crateci/internal/testutil"
)

func TestFindTool_Overrides(t *testing.T) {
	t.Parallel()

	tool, err := FindTool("/opt/rust/bin/cargo", "/opt/rust/bin/rustup")
	if err != nil {
		t.Fatalf("FindTool() error = %v", err)
	}
	if tool.Cargo != "/opt/rust/bin/cargo" {
		t.Errorf("Cargo = %q", tool.Cargo)
	}
	if tool.Rustup != "/opt/rust/bin/rustup" {
		t.Errorf("Rustup = %q", tool.Rustup)
	}
}

func TestFindTool_CargoMissing(t *testing.T) {
	// Clearing PATH makes every lookup fail; cargo is required, so FindTool
	// must report it. Not parallel: t.Setenv forbids it.
	t.Setenv("PATH", "")

	_, err := FindTool("", "")
	if err == nil {
		t.Fatal("FindTool() succeeded without cargo, want error")
	}
	if !errors.Is(err, ErrCargoNotFound) {
		t.Errorf("error should wrap ErrCargoNotFound, got: %v", err)
	}
}

func TestFindTool_PathLookup(t *testing.T) {
	testutil.RequirePOSIX(t)

	dir := testutil.FakeToolDir(t, map[string]string{
		"cargo":  `echo fake cargo`,
		"rustup": `echo fake rustup`,
	})

	tool, err := FindTool("", "")
	if err != nil {
		t.Fatalf("FindTool() error = %v", err)
	}
	if tool.Cargo != filepath.Join(dir, "cargo") {
		t.Errorf("Cargo = %q, want the fake in %s", tool.Cargo, dir)
	}
	if tool.Rustup != filepath.Join(dir, "rustup") {
		t.Errorf("Rustup = %q, want the fake in %s", tool.Rustup, dir)
	}
}

func TestFindTool_RustupMissingIsTolerated(t *testing.T) {
	t.Setenv("PATH", "")

	tool, err := FindTool("/opt/rust/bin/cargo", "")
	if err != nil {
		t.Fatalf("FindTool() error = %v", err)
	}
	if tool.Rustup != "" {
		t.Errorf("Rustup = %q, want empty when not installed", tool.Rustup)
	}
}

func TestTool_TestArgs(t *testing.T) {
	t.Parallel()

	tool := &Tool{Cargo: "cargo"}

	tests := []struct {
		name string
		tc   matrix.Toolchain
		fs   matrix.FeatureSet
		want []string
	}{
		{
			name: "stable default",
			tc:   matrix.ToolchainStable,
			fs:   matrix.FeatureSetDefault,
			want: []string{"cargo", "+stable", "test"},
		},
		{
			name: "beta none",
			tc:   matrix.ToolchainBeta,
			fs:   matrix.FeatureSetNone,
			want: []string{"cargo", "+beta", "test", "--no-default-features"},
		},
		{
			name: "nightly alloc",
			tc:   matrix.ToolchainNightly,
			fs:   matrix.FeatureSetAlloc,
			want: []string{"cargo", "+nightly", "test", "--no-default-features", "--features", "alloc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tool.TestArgs(tt.tc, tt.fs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TestArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTool_FmtArgs(t *testing.T) {
	t.Parallel()

	tool := &Tool{Cargo: "cargo"}
	want := []string{"cargo", "+nightly", "fmt", "--all", "--", "--check"}
	if got := tool.FmtArgs(matrix.ToolchainNightly); !reflect.DeepEqual(got, want) {
		t.Errorf("FmtArgs() = %v, want %v", got, want)
	}
}

func TestTool_ClippyArgs(t *testing.T) {
	t.Parallel()

	tool := &Tool{Cargo: "cargo"}
	want := []string{"cargo", "+stable", "clippy", "--all-targets", "--all-features", "--", "-D", "warnings"}
	if got := tool.ClippyArgs(matrix.ToolchainStable); !reflect.DeepEqual(got, want) {
		t.Errorf("ClippyArgs() = %v, want %v", got, want)
	}
}

func TestTool_FreestandingBuildArgs(t *testing.T) {
	t.Parallel()

	tool := &Tool{Cargo: "cargo"}
	target := matrix.FreestandingTarget{Triple: matrix.DefaultFreestandingTriple}

	want := []string{
		"cargo", "+stable", "build",
		"--target", "thumbv6m-none-eabi",
		"--no-default-features", "--features", "alloc",
	}
	if got := tool.FreestandingBuildArgs(target); !reflect.DeepEqual(got, want) {
		t.Errorf("FreestandingBuildArgs() = %v, want %v", got, want)
	}
}
