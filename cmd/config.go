package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagehand/stagehand/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage stagehand configuration",
		Long:  `Manage stagehand configuration, such as the default commit prefix and LLM settings.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}

	configSetPrefixCmd = &cobra.Command{
		Use:   "prefix [value]",
		Short: "Set the default commit message prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue("prefix", args[0], "Default prefix set to: "+args[0])
		},
	}

	configSetModelCmd = &cobra.Command{
		Use:   "model [name]",
		Short: "Set the LLM model used by --describe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue("model", args[0], "Model set to: "+args[0])
		},
	}

	configSetAPIKeyCmd = &cobra.Command{
		Use:   "apikey [key]",
		Short: "Set the API key used by --describe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue("api_key", args[0], "API key set")
		},
	}

	configSetAPIBaseCmd = &cobra.Command{
		Use:   "apibase [url]",
		Short: "Set the API base URL used by --describe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue("api_base", args[0], "API base URL set to: "+args[0])
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			out := outWriter()
			fmt.Fprintf(out, "prefix: %q\n", cfg.Prefix)
			fmt.Fprintf(out, "no_verify: %t\n", cfg.NoVerify)
			fmt.Fprintf(out, "model: %s\n", cfg.Model)
			if cfg.APIKey != "" {
				fmt.Fprintln(out, "api_key: ********")
			} else {
				fmt.Fprintln(out, "api_key: <unset>")
			}
			if cfg.APIBase != "" {
				fmt.Fprintf(out, "api_base: %s\n", cfg.APIBase)
			} else {
				fmt.Fprintln(out, "api_base: <unset>")
			}
			return nil
		},
	}
)

func setConfigValue(key string, value any, confirmation string) error {
	config.SetConfigValue(key, value)
	if err := config.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintln(outWriter(), confirmation)
	return nil
}

func init() {
	configSetCmd.AddCommand(configSetPrefixCmd)
	configSetCmd.AddCommand(configSetModelCmd)
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetAPIBaseCmd)

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	rootCmd.AddCommand(configCmd)
}
