package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/tui"
	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		noCache    bool
		sortKey    string
		minHealth  int
		page       int
		perPage    int
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the plugin directory with health scores",
		Long:  "Search the WordPress.org plugin directory and list every match with its health and usability score.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := buildServices(opts)
			if err != nil {
				return err
			}

			query := domain.SearchQuery{
				Term:      args[0],
				Page:      page,
				PerPage:   perPage,
				Sort:      sortKey,
				MinHealth: minHealth,
			}

			ctx := cmd.Context()
			var result *application.SearchResult
			if noCache {
				result, err = svcs.search.Refresh(ctx, query)
			} else {
				result, err = svcs.search.Search(ctx, query)
			}
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if jsonOutput {
				return renderSearchJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderList(result.Plugins, result.Notice, result.Stale))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the cache and fetch fresh results")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: health, usability, rating, installs, updated, name")
	cmd.Flags().IntVar(&minHealth, "min-health", 0, "Hide plugins with a health score below this value")
	cmd.Flags().IntVar(&page, "page", 1, "Result page")
	cmd.Flags().IntVar(&perPage, "per-page", domain.DefaultPerPage, "Results per page")

	return cmd
}

func renderSearchJSON(cmd *cobra.Command, result *application.SearchResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
