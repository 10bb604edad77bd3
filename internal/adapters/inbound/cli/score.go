package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/tui"
	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		badge      bool
	)

	cmd := &cobra.Command{
		Use:   "score <slug>",
		Short: "Score a single plugin",
		Long:  "Fetch one plugin by slug and render its full scorecard with the per-signal breakdown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := buildServices(opts)
			if err != nil {
				return err
			}

			outcome, err := svcs.score.Score(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			switch {
			case jsonOutput:
				return renderScoreJSON(cmd, outcome)
			case badge:
				return renderBadge(cmd, outcome.Plugin)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScorecard(outcome.Plugin))
				if outcome.Notice != "" {
					fmt.Fprintln(cmd.OutOrStdout(), outcome.Notice)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output score as JSON")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")

	return cmd
}

func renderScoreJSON(cmd *cobra.Command, outcome *application.ScoreOutcome) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}

func renderBadge(cmd *cobra.Command, sp domain.ScoredPlugin) error {
	color := domain.BadgeColor(sp.Score.Health)
	url := fmt.Sprintf("https://img.shields.io/badge/health-%d%%2F100-%s", sp.Score.Health, color)
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}
