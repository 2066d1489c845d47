// Package git wraps the git operations the batching loop depends on.
package git

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/stagehand/stagehand/internal/gitcmd"
	"github.com/stagehand/stagehand/internal/gitutil"
	"github.com/stagehand/stagehand/internal/stringsutil"
)

// ErrNotRepository indicates the working directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// patchAnswers is the scripted response fed to `git add --patch`:
// stage the first hunk offered, then quit the remaining prompts.
const patchAnswers = "y\nq\n"

// Options configures a Client.
type Options struct {
	Verbose bool
	Dir     string
	Logger  io.Writer
}

// Client executes git operations against a single repository.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{
		runner: gitcmd.Runner{
			Verbose: opts.Verbose,
			Dir:     opts.Dir,
			Logger:  opts.Logger,
			// Interactive sub-commands must not page or open an editor.
			Env: []string{"GIT_PAGER=cat", "GIT_EDITOR=true"},
		},
	}
}

// IsGitRepository reports whether the working directory is inside a git work tree.
func (c *Client) IsGitRepository() bool {
	result, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && result.StdoutString(true) == "true"
}

// CheckGitRepository returns ErrNotRepository when outside a git work tree.
func (c *Client) CheckGitRepository() error {
	if !c.IsGitRepository() {
		return ErrNotRepository
	}
	return nil
}

// HasWorkingTreeChanges reports whether tracked files differ from the index.
// `git diff --quiet` exits 1 when differences exist; that is not an error.
func (c *Client) HasWorkingTreeChanges() (bool, error) {
	return c.hasDiff("failed to check working tree", "diff", "--quiet")
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges() (bool, error) {
	return c.hasDiff("failed to check staging area", "diff", "--cached", "--quiet")
}

func (c *Client) hasDiff(action string, args ...string) (bool, error) {
	result, err := c.runner.RunLogged(args...)
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, gitutil.WrapGitError(action, result, err)
}

// StageNextHunk runs one `git add --patch` pass, staging the first hunk the
// sub-process offers and declining to review the rest. When the diff has no
// hunks the pass stages nothing and exits cleanly.
func (c *Client) StageNextHunk() error {
	result, err := c.runner.RunWithInput(patchAnswers, "add", "--patch")
	if err != nil {
		return gitutil.WrapGitError("git add --patch failed", result, err)
	}
	return nil
}

// GetStagedDiff returns the staged-vs-HEAD diff.
func (c *Client) GetStagedDiff() (string, error) {
	result, err := c.runner.RunLogged("diff", "--cached")
	if err != nil {
		return "", gitutil.WrapGitError("failed to get staged diff", result, err)
	}
	return result.StdoutString(false), nil
}

// StagedFiles returns the paths currently staged for commit.
func (c *Client) StagedFiles() ([]string, error) {
	result, err := c.runner.RunLogged("diff", "--cached", "--name-only")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list staged files", result, err)
	}
	return stringsutil.SplitNonEmpty(result.StdoutString(true), "\n"), nil
}

// Commit creates a commit from the staged changes.
func (c *Client) Commit(message string, args ...string) error {
	commitArgs := append([]string{"commit", "-m", message}, args...)
	result, err := c.runner.RunLogged(commitArgs...)
	if err != nil {
		return gitutil.WrapGitError("git commit failed", result, err)
	}
	return nil
}

// ShortHead returns the abbreviated hash of HEAD.
func (c *Client) ShortHead() (string, error) {
	result, err := c.runner.Run("rev-parse", "--short", "HEAD")
	if err != nil {
		return "", gitutil.WrapGitError("failed to resolve HEAD", result, err)
	}
	return result.StdoutString(true), nil
}

// HighestHunkNumber scans the current branch history for commits whose
// subject matches `<prefix> Stage hunk #N` and returns the highest N found,
// or 0 when there are none.
func (c *Client) HighestHunkNumber(prefix string) (int, error) {
	result, err := c.runner.Run("log", "--pretty=format:%s")
	if err != nil {
		return 0, gitutil.WrapGitError("failed to read commit history", result, err)
	}
	return parseHighestHunk(prefix, result.StdoutString(false)), nil
}

func parseHighestHunk(prefix, log string) int {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + ` Stage hunk #(\d+)$`)

	highest := 0
	for _, subject := range stringsutil.SplitNonEmpty(log, "\n") {
		match := pattern.FindStringSubmatch(subject)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest
}

// HunkMessage builds the commit subject for the given counter value.
func HunkMessage(prefix string, counter int) string {
	return fmt.Sprintf("%s Stage hunk #%d", prefix, counter)
}
