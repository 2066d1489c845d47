package gitutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagehand/stagehand/internal/gitcmd"
)

func TestWrapGitErrorPrefersStderr(t *testing.T) {
	base := errors.New("exit status 128")
	result := gitcmd.Result{Stderr: []byte("fatal: not a git repository\n")}

	err := WrapGitError("failed to check working tree", result, base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check working tree")
	assert.Contains(t, err.Error(), "fatal: not a git repository")
	assert.ErrorIs(t, err, base)
}

func TestWrapGitErrorWithoutStderr(t *testing.T) {
	base := errors.New("exit status 1")

	err := WrapGitError("git commit failed", gitcmd.Result{}, base)
	require.Error(t, err)
	assert.Equal(t, "git commit failed: exit status 1", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestValidateRepoPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "valid directory", path: dir},
		{name: "empty path", path: "", wantErr: "cannot be empty"},
		{name: "missing path", path: filepath.Join(dir, "nope"), wantErr: "does not exist"},
		{name: "not a directory", path: file, wantErr: "not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRepoPath(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
