package cli

import (
	"github.com/spf13/cobra"

	"github.com/pluginpulse/pluginpulse/internal/log"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	debug       bool
	apiURL      string
	cacheDir    string
	memoryCache bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pluginpulse",
		Short: "Health scores for WordPress plugins",
		Long:  "PluginPulse queries the WordPress.org plugin directory and augments every result with cached health and usability scores, so you can judge a plugin before installing it.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				log.SetDebug(true)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Override the plugin directory API base URL")
	cmd.PersistentFlags().StringVar(&opts.cacheDir, "cache-dir", "", "Override the cache directory")
	cmd.PersistentFlags().BoolVar(&opts.memoryCache, "memory-cache", false, "Use an in-memory cache instead of the file store")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCacheCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
