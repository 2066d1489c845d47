package gitcmd

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestResultStrings(t *testing.T) {
	result := Result{Stdout: []byte("  out  \n"), Stderr: []byte("  err  \n")}

	assert.Equal(t, "out", result.StdoutString(true))
	assert.Equal(t, "  out  \n", result.StdoutString(false))
	assert.Equal(t, "err", result.StderrString(true))
	assert.Equal(t, "  err  \n", result.StderrString(false))
}

func TestRunCapturesOutput(t *testing.T) {
	requireGit(t)

	result, err := Runner{}.Run("version")
	require.NoError(t, err)
	assert.Contains(t, result.StdoutString(true), "git version")
}

func TestRunWithInputPipesStdin(t *testing.T) {
	requireGit(t)

	// The blob hash of "hello\n" is a fixed point; it doubles as proof
	// that stdin actually reached the sub-process.
	result, err := Runner{Dir: t.TempDir()}.RunWithInput("hello\n", "hash-object", "--stdin")
	require.NoError(t, err)
	assert.Equal(t, "ce013625030ba8dba906f756967f9e9ca394464a", result.StdoutString(true))
}

func TestRunLoggedVerbose(t *testing.T) {
	requireGit(t)

	log := &bytes.Buffer{}
	_, err := Runner{Verbose: true, Logger: log}.RunLogged("version")
	require.NoError(t, err)
	assert.Contains(t, log.String(), "Running: git version")
}

func TestRunLoggedQuietByDefault(t *testing.T) {
	requireGit(t)

	log := &bytes.Buffer{}
	_, err := Runner{Logger: log}.RunLogged("version")
	require.NoError(t, err)
	assert.Empty(t, log.String())
}

func TestRunReportsFailure(t *testing.T) {
	requireGit(t)

	result, err := Runner{Dir: t.TempDir()}.Run("definitely-not-a-git-command")
	require.Error(t, err)
	assert.NotEmpty(t, result.StderrString(true))
}
