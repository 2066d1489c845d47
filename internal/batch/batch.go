package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stagehand/stagehand/internal/git"
	"github.com/stagehand/stagehand/internal/ui"
)

// StepResult reports what a single staging pass accomplished.
type StepResult int

const (
	// StepCommitted means a hunk was staged and committed.
	StepCommitted StepResult = iota
	// StepNothingStaged means the patch pass left the index empty; the loop
	// must stop to avoid committing nothing forever.
	StepNothingStaged
)

// Options configures a batching run.
type Options struct {
	Prefix    string
	DryRun    bool
	NoVerify  bool
	Resume    bool
	Describe  bool
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Batcher repeatedly stages one hunk of the remaining diff and commits it
// with a numbered message until the working tree is clean.
type Batcher struct {
	git     GitClient
	desc    Describer
	opts    Options
	counter int
	commits int
}

func New(gitClient GitClient, opts Options) *Batcher {
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}
	return &Batcher{git: gitClient, opts: opts, counter: 1}
}

// SetDescriber enables LLM hunk descriptions for the run.
func (b *Batcher) SetDescriber(d Describer) {
	b.desc = d
}

// Commits returns the number of commits created so far.
func (b *Batcher) Commits() int {
	return b.commits
}

// Run executes the batching loop until the working tree is clean, a patch
// pass stages nothing, or the context is cancelled.
func (b *Batcher) Run(ctx context.Context) error {
	if err := b.git.CheckGitRepository(); err != nil {
		return err
	}

	if b.opts.Resume {
		if highest, err := b.git.HighestHunkNumber(b.opts.Prefix); err == nil && highest > 0 {
			b.counter = highest + 1
			fmt.Fprintf(b.opts.ErrWriter, "Found previous commits - continuing from hunk #%d\n", b.counter)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		changed, err := b.git.HasWorkingTreeChanges()
		if err != nil {
			return err
		}
		if !changed {
			break
		}

		result, err := b.Step()
		if err != nil {
			return err
		}
		if result == StepNothingStaged {
			break
		}
		// Without commits the tree never becomes clean; one pass is enough
		// to show what a real run would do.
		if b.opts.DryRun {
			break
		}
	}

	b.summarize()
	return nil
}

// Step performs one "stage one hunk and maybe commit" pass.
func (b *Batcher) Step() (StepResult, error) {
	sp := ui.NewSpinner(fmt.Sprintf("Staging hunk #%d...", b.counter))
	sp.Start()
	err := b.git.StageNextHunk()
	sp.Stop()
	if err != nil {
		return StepNothingStaged, fmt.Errorf("failed to stage hunk: %w", err)
	}

	staged, err := b.git.HasStagedChanges()
	if err != nil {
		return StepNothingStaged, err
	}
	if !staged {
		return StepNothingStaged, nil
	}

	subject := git.HunkMessage(b.opts.Prefix, b.counter)

	if b.opts.DryRun {
		fmt.Fprintf(b.opts.ErrWriter, "Dry run mode, would commit: %s\n", subject)
		return StepCommitted, nil
	}

	message := subject
	if b.opts.Describe && b.desc != nil {
		if body, descErr := b.describeStaged(); descErr != nil {
			fmt.Fprintf(b.opts.ErrWriter, "Warning: failed to describe hunk: %v\n", descErr)
		} else if body != "" {
			message = subject + "\n\n" + body
		}
	}

	files, _ := b.git.StagedFiles()

	if err := b.git.Commit(message, b.buildCommitArgs()...); err != nil {
		return StepNothingStaged, fmt.Errorf("failed to commit staged hunk: %w", err)
	}
	b.counter++
	b.commits++

	b.printCommitted(subject, files)
	return StepCommitted, nil
}

func (b *Batcher) buildCommitArgs() []string {
	var args []string
	if b.opts.NoVerify {
		args = append(args, "--no-verify")
	}
	return args
}

func (b *Batcher) describeStaged() (string, error) {
	diff, err := b.git.GetStagedDiff()
	if err != nil {
		return "", err
	}

	sp := ui.NewSpinner("Describing hunk...")
	sp.Start()
	body, err := b.desc.DescribeDiff(diff)
	sp.Stop()
	return body, err
}

func (b *Batcher) printCommitted(subject string, files []string) {
	line := "Committed"
	if hash, err := b.git.ShortHead(); err == nil && hash != "" {
		line += " " + hash
	}
	line += ": " + subject
	if len(files) > 0 {
		line += " (" + strings.Join(files, ", ") + ")"
	}
	fmt.Fprintln(b.opts.OutWriter, ui.Truncate(line, ui.TerminalWidth(80)))
}

func (b *Batcher) summarize() {
	if b.commits == 0 {
		// A clean tree at entry terminates silently.
		return
	}
	fmt.Fprintf(b.opts.ErrWriter, "Created %d commit(s).\n", b.commits)
}
