package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/stagehand/stagehand/internal/git"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", BuildTime)

	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Show stagehand version information", versionCmd.Short)
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "stagehand", rootCmd.Use)
	assert.Equal(t, "stagehand - Interactive hunk batcher", rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "staging the next hunk")
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootFlags(t *testing.T) {
	flags := rootCmd.Flags()

	path := flags.Lookup("path")
	if assert.NotNil(t, path) {
		assert.Equal(t, "C", path.Shorthand)
	}

	prefixFlag := flags.Lookup("prefix")
	if assert.NotNil(t, prefixFlag) {
		assert.Equal(t, "m", prefixFlag.Shorthand)
	}

	for _, name := range []string{"dry-run", "no-verify", "resume", "describe", "verbose"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %s", name)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestInitConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	cfgFile = ""
	assert.NotPanics(t, func() {
		initConfig()
	})
	assert.NoError(t, configErr)
}

func TestHandleErrors(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, handleErrors(nil))
	})

	t.Run("adds hint for non-repository error", func(t *testing.T) {
		err := handleErrors(git.ErrNotRepository)
		assert.ErrorIs(t, err, git.ErrNotRepository)
		assert.Contains(t, err.Error(), "Hint")
	})

	t.Run("propagates generic error", func(t *testing.T) {
		expectedErr := errors.New("boom")
		err := handleErrors(expectedErr)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestConfigCommands(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)

	subcommands := map[string]bool{}
	for _, sub := range configSetCmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range []string{"prefix", "model", "apikey", "apibase"} {
		assert.True(t, subcommands[name], "missing config set %s", name)
	}
}

func TestGlobalVariables(t *testing.T) {
	assert.IsType(t, "", cfgFile)
	assert.IsType(t, "", repoPath)
	assert.IsType(t, "", prefix)
	assert.IsType(t, false, dryRun)
	assert.IsType(t, false, noVerify)
	assert.IsType(t, false, resume)
	assert.IsType(t, false, describe)
	assert.IsType(t, false, verbose)
}
