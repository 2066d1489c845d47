//go:build !prod

package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// newTempRepo creates an isolated git repository under t.TempDir and returns
// a Client scoped to it. Tests are skipped when git is not installed.
func newTempRepo(t *testing.T) (*Client, string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	client := NewClient(Options{Dir: dir})

	mustRun(t, client, "init")
	mustRun(t, client, "config", "user.name", "Test User")
	mustRun(t, client, "config", "user.email", "test@example.com")
	mustRun(t, client, "config", "commit.gpgsign", "false")

	return client, dir
}

// writeFile writes content to a path inside the repository.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// mustRun executes a raw git command against the test repository.
func mustRun(t *testing.T, c *Client, args ...string) {
	t.Helper()
	if result, err := c.runner.Run(args...); err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, result.StderrString(true))
	}
}

// commitAll stages everything and commits it, establishing a baseline.
func commitAll(t *testing.T, c *Client, message string) {
	t.Helper()
	mustRun(t, c, "add", ".")
	mustRun(t, c, "commit", "-m", message)
}
