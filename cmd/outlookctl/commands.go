package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-outlook-service/internal/adapter/assets"
	"github.com/couchcryptid/storm-outlook-service/internal/adapter/spc"
	"github.com/couchcryptid/storm-outlook-service/internal/app"
	"github.com/couchcryptid/storm-outlook-service/internal/domain"
	"github.com/couchcryptid/storm-outlook-service/internal/observability"
	"github.com/couchcryptid/storm-outlook-service/internal/render"
)

func parseArgs(args []string) (domain.OutlookRequest, error) {
	category, err := domain.ParseCategory(args[0])
	if err != nil {
		return domain.OutlookRequest{}, err
	}
	day, err := domain.ParseDay(args[1])
	if err != nil {
		return domain.OutlookRequest{}, err
	}
	return domain.NewOutlookRequest(category, day)
}

func newRenderCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "render <category> <day|test>",
		Short: "Fetch an outlook and write its map to the output directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseArgs(args)
			if err != nil {
				return err
			}
			svc, _, err := app.NewRenderService(st.cfg, st.logger, observability.NewMetrics())
			if err != nil {
				return err
			}

			artifact, err := svc.Render(cmd.Context(), req)
			if errors.Is(err, domain.ErrOutlookUnavailable) {
				printf(cmd, "%s: no outlook currently issued\n", req)
				return nil
			}
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", artifact.Path)
			return nil
		},
	}
}

func newSummaryCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <category> <day|test>",
		Short: "Print the highest risk and feature count of an outlook as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseArgs(args)
			if err != nil {
				return err
			}
			svc, _, err := app.NewRenderService(st.cfg, st.logger, observability.NewMetrics())
			if err != nil {
				return err
			}

			summary, err := svc.Summarize(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd, summary)
		},
	}
}

func newInspectCmd(st *cliState) *cobra.Command {
	var (
		categoryFlag string
		renderTo     string
	)
	cmd := &cobra.Command{
		Use:   "inspect <file.geojson>",
		Short: "Classify a local outlook file without network access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := domain.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			fc, err := domain.ParseFeatureCollection(category, data)
			if err != nil {
				return err
			}

			req := domain.OutlookRequest{Category: category, Day: domain.DayTest}
			summary, err := domain.Summarize(req, fc)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd, summary); err != nil {
				return err
			}

			if renderTo == "" {
				return nil
			}
			if !summary.Available {
				return domain.ErrOutlookUnavailable
			}
			layers, err := assets.LoadReferenceLayers(st.cfg.AssetsDir, st.logger)
			if err != nil {
				return err
			}
			if err := renderFile(cmd, st, req, fc, layers, renderTo); err != nil {
				return err
			}
			printf(cmd, "%s\n", renderTo)
			return nil
		},
	}
	cmd.Flags().StringVarP(&categoryFlag, "category", "c", string(domain.CategoryCategorical), "outlook category of the file")
	cmd.Flags().StringVar(&renderTo, "render", "", "also composite the file into this PNG path")
	return cmd
}

// renderFile composites into a scratch directory beside target and moves the
// result into place, so existing artifacts in target's directory are left alone.
func renderFile(cmd *cobra.Command, st *cliState, req domain.OutlookRequest, fc domain.FeatureCollection, layers domain.ReferenceLayers, target string) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	scratch, err := os.MkdirTemp(dir, ".outlookctl-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch) //nolint:errcheck // best-effort cleanup

	c := render.New(scratch, st.logger, render.WithOverlayDir(app.OverlayDir(st.cfg)))
	artifact, err := c.Render(cmd.Context(), req, fc, layers)
	if err != nil {
		return err
	}
	if err := os.Rename(artifact.Path, target); err != nil {
		return fmt.Errorf("move rendered map: %w", err)
	}
	return nil
}

func newAdvisoriesCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "advisories",
		Short: "List the entries currently in the SPC advisory feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher := spc.NewClient(st.cfg.SPCTimeout, st.cfg.SPCRateLimit, st.logger)
			entries, err := spc.NewFeedClient(fetcher, st.cfg.AdvisoryFeedURL).Advisories(cmd.Context())
			if err != nil {
				return err
			}
			for _, a := range entries {
				printf(cmd, "%s\t%s\n", domain.TruncateTitle(a.Title, st.cfg.AdvisoryTitleMax), a.Link)
			}
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
