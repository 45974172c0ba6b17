// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// workspaceRoot is the directory under the crate's target dir that holds
// the per-cell isolated build workspaces.
const workspaceRoot = "crateci"

// cellWorkspace creates (if needed) and returns the isolated
// CARGO_TARGET_DIR for one cell. Cell identifiers contain '/' separators;
// they are flattened for the directory name.
func cellWorkspace(crateDir, cellID string) (string, error) {
	name := strings.ReplaceAll(cellID, "/", "-")
	dir := filepath.Join(crateDir, "target", workspaceRoot, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cell workspace %s: %w", dir, err)
	}
	return dir, nil
}
