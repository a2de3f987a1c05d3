package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect uspto-lookup configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration as YAML",
	Long: `Print shows the configuration after defaults, the config file, and
USPTO_LOOKUP_* environment variables are applied. The API key is never
printed; only whether one is configured is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.File != "" {
			fmt.Fprintf(out, "# file: %s\n", cfg.File)
		}
		fmt.Fprintf(out, "# api_key set: %v\n", cfg.APIKey != "")
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(configPrintCmd)
	rootCmd.AddCommand(configCmd)
}
