package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/uspto-lookup/internal/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in parsing and formatting checks",
	Long: `Selftest runs quick offline checks of publication, application, and
patent number parsing and of the display formatting. It needs no API key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checks := selftest.Run()
		selftest.Format(checks, cmd.OutOrStdout())
		if !selftest.Passed(checks) {
			return fmt.Errorf("self-tests failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}
