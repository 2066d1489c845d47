package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagehand/stagehand/internal/batch"
	"github.com/stagehand/stagehand/internal/config"
	"github.com/stagehand/stagehand/internal/git"
	"github.com/stagehand/stagehand/internal/gitutil"
	"github.com/stagehand/stagehand/internal/llm"
)

var (
	cfgFile   string
	repoPath  string
	prefix    string
	dryRun    bool
	noVerify  bool
	resume    bool
	describe  bool
	verbose   bool
	configErr error
	rootCtx   = context.Background()

	rootCmd = &cobra.Command{
		Use:   "stagehand",
		Short: "stagehand - Interactive hunk batcher",
		Long: `stagehand splits pending work into a series of small commits by repeatedly ` +
			`staging the next hunk of the working-tree diff and committing it with a ` +
			`numbered message, until no uncommitted changes remain.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			return handleErrors(runBatch(cmd))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// SetContext stores the context used for command execution.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

// RootCmd exposes the root command for documentation generation.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.stagehand.yaml)")
	rootCmd.Flags().StringVarP(&repoPath, "path", "C", "", "Repository path (prompted for when omitted)")
	rootCmd.Flags().StringVarP(&prefix, "prefix", "m", "", "Commit message prefix (prompted for when omitted)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stage one hunk and show the commit without creating it")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip pre-commit hooks")
	rootCmd.Flags().BoolVar(&resume, "resume", false,
		"Continue hunk numbering after the highest existing numbered commit")
	rootCmd.Flags().BoolVar(&describe, "describe", false, "Append an LLM-generated description to each commit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "Show underlying git invocations")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func handleErrors(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, git.ErrNotRepository) {
		return fmt.Errorf("%w\nHint: the path must point inside a git work tree", err)
	}
	return err
}

func runBatch(cmd *cobra.Command) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	prompter := &batch.InteractivePrompter{OutWriter: errWriter()}

	path := repoPath
	if path == "" {
		if path, err = prompter.PromptPath(); err != nil {
			return err
		}
	}

	msgPrefix := prefix
	if !cmd.Flags().Changed("prefix") {
		if cfg.Prefix != "" {
			msgPrefix = cfg.Prefix
		} else if msgPrefix, err = prompter.PromptPrefix(); err != nil {
			return err
		}
	}

	if err := gitutil.ValidateRepoPath(path); err != nil {
		return err
	}
	if err := os.Chdir(path); err != nil {
		return fmt.Errorf("failed to enter repository %s: %w", path, err)
	}

	client := git.NewClient(git.Options{Verbose: verbose, Logger: errWriter()})

	batcher := batch.New(client, batch.Options{
		Prefix:    msgPrefix,
		DryRun:    dryRun,
		NoVerify:  noVerify || cfg.NoVerify,
		Resume:    resume,
		Describe:  describe,
		OutWriter: outWriter(),
		ErrWriter: errWriter(),
	})
	if describe {
		batcher.SetDescriber(llm.NewClient(llm.Options{
			APIKey:  cfg.APIKey,
			APIBase: cfg.APIBase,
			Model:   cfg.Model,
		}))
	}

	return batcher.Run(cmd.Context())
}
