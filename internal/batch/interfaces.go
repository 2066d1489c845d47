// Package batch drives the interactive commit-batching loop.
package batch

// GitClient abstracts git operations for testability.
type GitClient interface {
	CheckGitRepository() error
	HasWorkingTreeChanges() (bool, error)
	HasStagedChanges() (bool, error)
	StageNextHunk() error
	GetStagedDiff() (string, error)
	StagedFiles() ([]string, error)
	Commit(message string, args ...string) error
	ShortHead() (string, error)
	HighestHunkNumber(prefix string) (int, error)
}

// Describer abstracts the optional LLM hunk description.
type Describer interface {
	DescribeDiff(diff string) (string, error)
}
