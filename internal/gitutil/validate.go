package gitutil

import (
	"errors"
	"fmt"
	"os"
)

// ValidateRepoPath checks that a repository path exists and points at a directory.
// It does not verify the directory is a git work tree; that check needs git
// itself and belongs to the client.
func ValidateRepoPath(path string) error {
	if path == "" {
		return errors.New("repository path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("repository path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access repository path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository path is not a directory: %s", path)
	}
	return nil
}
