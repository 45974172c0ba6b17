// SPDX-License-Identifier: MPL-2.0

package cargo

import (
	"context"
	"fmt"
	"strings"

	"crateci/internal/matrix"
	"crateci/internal/runner"
)

// InstalledToolchains returns the toolchain names rustup reports as
// installed, with any "(default)"-style annotations stripped.
func InstalledToolchains(ctx context.Context, exec runner.Runner, tool *Tool) ([]string, error) {
	if tool.Rustup == "" {
		return nil, &ToolNotFoundError{Binary: "rustup", Err: ErrRustupNotFound}
	}

	res := exec.Execute(ctx, &runner.Invocation{Argv: []string{tool.Rustup, "toolchain", "list"}})
	if !res.Success() {
		return nil, fmt.Errorf("rustup toolchain list failed: %s", firstNonEmpty(res.ErrOutput, res.Output))
	}
	return parseLines(res.Output), nil
}

// InstalledTargets returns the target triples installed for a toolchain.
func InstalledTargets(ctx context.Context, exec runner.Runner, tool *Tool, tc matrix.Toolchain) ([]string, error) {
	if tool.Rustup == "" {
		return nil, &ToolNotFoundError{Binary: "rustup", Err: ErrRustupNotFound}
	}

	argv := []string{tool.Rustup, "target", "list", "--installed", "--toolchain", tc.String()}
	res := exec.Execute(ctx, &runner.Invocation{Argv: argv})
	if !res.Success() {
		return nil, fmt.Errorf("rustup target list failed: %s", firstNonEmpty(res.ErrOutput, res.Output))
	}
	return parseLines(res.Output), nil
}

// HasToolchain reports whether the toolchain channel appears in the
// installed list. Rustup lists channels as "stable-x86_64-unknown-linux-gnu",
// so a prefix match on the channel name is used.
func HasToolchain(installed []string, tc matrix.Toolchain) bool {
	for _, line := range installed {
		if strings.HasPrefix(line, tc.String()) {
			return true
		}
	}
	return false
}

// HasTarget reports whether the triple appears in the installed target list.
func HasTarget(installed []string, triple matrix.TargetTriple) bool {
	for _, line := range installed {
		if line == triple.String() {
			return true
		}
	}
	return false
}

// parseLines splits tool output into trimmed non-empty lines, dropping
// annotations such as "(default)" after the first field.
func parseLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, fields[0])
		}
	}
	return lines
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
