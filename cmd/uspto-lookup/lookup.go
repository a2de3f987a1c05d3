package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pdiddy/uspto-lookup/internal/identifier"
	"github.com/pdiddy/uspto-lookup/internal/lookup"
	"github.com/pdiddy/uspto-lookup/internal/secrets"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [--by publication|application|patent] VALUE",
	Short: "Search the USPTO API by publication, application, or patent number",
	Long: `Lookup normalizes VALUE for the chosen number kind, queries each search
candidate in turn, and prints a summary of the first matching record:
application and patent numbers, earliest publication, grant date,
applicants, and the maintenance-fee link.

Examples:
  uspto-lookup lookup US20240088251A1
  uspto-lookup lookup --by application 15/745,021
  uspto-lookup lookup --by patent 11,578,110 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().String("by", identifier.KindPublication.String(), "number kind: publication, application, or patent")
	lookupCmd.Flags().String("api-key", "", "USPTO x-api-key (overrides config and .secrets)")
	lookupCmd.Flags().Bool("json", false, "output the summary as JSON")
	lookupCmd.Flags().Bool("yaml", false, "output the summary as YAML")
	lookupCmd.Flags().Bool("raw", false, "also print the merged API records")
	lookupCmd.Flags().Bool("copy", false, "copy the merged API records to the clipboard (OSC 52)")
	lookupCmd.Flags().Duration("timeout", 0, "overall request timeout, 0 for none (default from config)")
	lookupCmd.Flags().Bool("no-progress", false, "hide the progress bar")
	lookupCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")
	kind, err := identifier.ParseKind(by)
	if err != nil {
		return err
	}

	flagKey, _ := cmd.Flags().GetString("api-key")
	apiKey, err := secrets.APIKey(flagKey, cfg.APIKey, cfg.SecretsDir, log)
	if err != nil {
		return err
	}

	timeout := cfg.API.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s := &lookup.Searcher{
		Backend: &uspto.Client{
			HTTP:      &http.Client{},
			Endpoint:  cfg.API.Endpoint,
			UserAgent: userAgent(),
			Log:       log,
		},
		FeesBaseURL: cfg.API.FeesBaseURL,
		Log:         log,
		Tracer:      tracer,
	}
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var bar *progressbar.ProgressBar
	if !noProgress {
		s.Progress = func(done, total int, candidate string) {
			if bar == nil {
				bar = newProgressBar(cmd.ErrOrStderr(), total)
			}
			bar.Describe(candidate)
			_ = bar.Set(done)
		}
	}

	res, err := s.Run(ctx, lookup.Request{
		APIKey: apiKey,
		Kind:   kind,
		Value:  strings.Join(args, " "),
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	switch {
	case asJSON:
		err = lookup.FormatJSON(res, out)
	case asYAML:
		err = lookup.FormatYAML(res, out)
	default:
		lookup.FormatText(res, out)
	}
	if err != nil {
		return err
	}

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		fmt.Fprintln(out)
		if err := lookup.FormatRaw(res, out); err != nil {
			return err
		}
	}

	if cp, _ := cmd.Flags().GetBool("copy"); cp {
		if err := copyRecords(res, cmd.ErrOrStderr()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied results to clipboard.")
	}
	return nil
}

func userAgent() string {
	if cfg.API.UserAgent != "" {
		return cfg.API.UserAgent + "/" + version
	}
	return "uspto-lookup/" + version
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Searching..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// copyRecords sends the merged records to the terminal clipboard. Inside
// tmux or screen the sequence is wrapped so it reaches the outer terminal.
func copyRecords(res *lookup.Result, w io.Writer) error {
	data, err := res.RawJSON()
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	seq := osc52.New(string(data))
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("writing to clipboard: %w", err)
	}
	return nil
}
