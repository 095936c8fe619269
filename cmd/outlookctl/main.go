// Command outlookctl renders and inspects SPC outlooks from the command line.
//
// Usage:
//
//	outlookctl render cat 1
//	outlookctl summary tornado test
//	outlookctl inspect --category wind ./day1otlk_wind.geojson
//	outlookctl advisories
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-outlook-service/internal/config"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliState struct {
	cfg    *config.Config
	logger *slog.Logger

	outputDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           "outlookctl",
		Short:         "Render and inspect Storm Prediction Center convective outlooks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if st.outputDir != "" {
				cfg.OutputDir = st.outputDir
			}
			level := "warn"
			if st.verbose {
				level = "debug"
			}
			st.cfg = cfg
			st.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: observability.ParseLevel(level)}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&st.outputDir, "output-dir", "o", "", "directory for rendered maps (default $OUTPUT_DIR)")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newRenderCmd(st),
		newSummaryCmd(st),
		newInspectCmd(st),
		newAdvisoriesCmd(st),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...) //nolint:errcheck // terminal output
}
