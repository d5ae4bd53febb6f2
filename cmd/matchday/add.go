// ABOUTME: Sources add command that discovers a feed from a site URL
// ABOUTME: Appends the feed as an rss source and saves the config file

package main

import (
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/discover"
	"github.com/harper/matchday/internal/fetch"
)

var sourcesAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a feed source",
	Long: `Find the RSS/Atom feed for a URL and add it as a source.

The URL may be the feed itself or a site page that links to one. The new
source feeds every article page that does not list its sources explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		noDiscover, _ := cmd.Flags().GetBool("no-discover")

		endpoint := args[0]
		title := ""
		if !noDiscover {
			// A throwaway fetcher keeps probe payloads out of the shared cache.
			f := fetch.New(fetch.Options{Logger: logger, UserAgent: cfg.UserAgent})
			found, err := discover.Discover(cmd.Context(), f, endpoint)
			if err != nil {
				return fmt.Errorf("failed to discover feed: %w", err)
			}
			endpoint = found.URL
			title = found.Title
		}

		if label == "" {
			label = title
		}
		if label == "" {
			u, err := url.Parse(endpoint)
			if err != nil || u.Host == "" {
				return fmt.Errorf("cannot derive a label from %s, use --label", endpoint)
			}
			label = u.Host
		}

		if err := cfg.AddSource(config.SourceConfig{Kind: "rss", Label: label, Endpoint: endpoint}); err != nil {
			return err
		}

		path := config.ExpandPath(configPath)
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", green("Added"), label, faint(endpoint))
		return nil
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesAddCmd)

	sourcesAddCmd.Flags().StringP("label", "l", "", "source label (default: feed title)")
	sourcesAddCmd.Flags().Bool("no-discover", false, "use the URL as given without probing for a feed")
}
