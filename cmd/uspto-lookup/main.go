// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uspto-lookup CLI.
// Implements: identifier normalization, candidate search, and summary
// output against the USPTO patent applications search API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdiddy/uspto-lookup/internal/config"
	"github.com/pdiddy/uspto-lookup/internal/logger"
	"github.com/pdiddy/uspto-lookup/internal/telemetry"
	"github.com/pdiddy/uspto-lookup/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Settings resolved in PersistentPreRunE and shared by subcommands.
var (
	cfg      types.Config
	log      = zap.NewNop().Sugar()
	tracer   trace.Tracer
	shutdown telemetry.ShutdownFunc
)

// rootCmd is the base command for the uspto-lookup CLI.
var rootCmd = &cobra.Command{
	Use:   "uspto-lookup",
	Short: "Look up US patents and applications in the USPTO Open Data Portal",
	Long: `uspto-lookup searches the USPTO patent applications API by publication,
application, or patent number. Numbers may be typed with or without
separators: "US20240088251A1", "US 2024/0088251", and "2024/0088251 A1"
are all accepted.

A publication number without a kind code is tried as A1, A2, and A9 in turn.
The API key is read from --api-key, USPTO_LOOKUP_API_KEY, the config file,
or .secrets/uspto-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.Log.Level, _ = cmd.Flags().GetString("log-level")
			if err := config.Validate(c); err != nil {
				return err
			}
		}
		cfg = c

		l, err := logger.New(cfg.Log.Path, cfg.Log.Level)
		if err != nil {
			return err
		}
		log = l
		if cfg.File != "" {
			log.Infow("using config file", "path", cfg.File)
		}

		t, sd, err := telemetry.Setup(cfg.Telemetry, os.Stderr)
		if err != nil {
			return err
		}
		tracer, shutdown = t, sd
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uspto-lookup.yaml or ~/.config/uspto-lookup/uspto-lookup.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if shutdown != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if serr := shutdown(sctx); serr != nil {
			fmt.Fprintf(os.Stderr, "warning: flushing traces: %v\n", serr)
		}
		cancel()
	}
	_ = log.Sync()

	if err != nil {
		os.Exit(1)
	}
}
