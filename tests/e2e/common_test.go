package e2e

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// buildSieveBinary builds the sieve binary in the specified directory and returns its path.
// It handles the build command execution and error checking.
func buildSieveBinary(t *testing.T, dir string) string {
	t.Helper()
	sieveBin := filepath.Join(dir, "sieve.exe")
	// Assumes tests are running from tests/e2e or similar depth.
	buildCmd := exec.Command("go", "build", "-o", sieveBin, "../../cmd/sieve")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build sieve: %v\n%s", err, string(out))
	}
	return sieveBin
}
