package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance commands",
	}
	cmd.AddCommand(newCacheClearCmd(opts))
	return cmd
}

func newCacheClearCmd(opts *rootOptions) *cobra.Command {
	var (
		searchesOnly bool
		plugin       string
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached results",
		Long:  "Remove cached search results and plugin scorecards. By default everything is cleared; use --searches or --plugin to narrow the scope.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := buildServices(opts)
			if err != nil {
				return err
			}

			if plugin != "" {
				if err := svcs.cache.ClearPlugin(plugin); err != nil {
					return fmt.Errorf("clearing cache: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached scorecard for %q\n", plugin)
				return nil
			}

			var n int
			if searchesOnly {
				n, err = svcs.cache.ClearSearches()
			} else {
				n, err = svcs.cache.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached entries\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&searchesOnly, "searches", false, "Clear only cached search results")
	cmd.Flags().StringVar(&plugin, "plugin", "", "Clear only the cached scorecard for this slug")

	return cmd
}
