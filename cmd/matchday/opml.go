// ABOUTME: Sources import and export commands for OPML subscription lists
// ABOUTME: Imports feeds as rss sources and exports configured rss sources

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/opml"
)

var sourcesImportCmd = &cobra.Command{
	Use:   "import <file.opml>",
	Short: "Import feed sources from OPML",
	Long:  "Add every feed in an OPML file as an rss source. Feeds whose label or URL is already configured are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feeds, err := opml.ParseFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		added := 0
		for _, f := range feeds {
			label := f.Title
			if label == "" {
				label = f.URL
			}
			if err := cfg.AddSource(config.SourceConfig{Kind: string(models.KindRSS), Label: label, Endpoint: f.URL}); err != nil {
				fmt.Fprintf(out, "%s %s %s\n", faint("skip"), label, faint(err.Error()))
				continue
			}
			fmt.Fprintf(out, "%s %s %s\n", green("add "), label, faint(f.URL))
			added++
		}

		if added == 0 {
			fmt.Fprintln(out, "No new sources")
			return nil
		}

		path := config.ExpandPath(configPath)
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(out, "Imported %d sources into %s\n", added, path)
		return nil
	},
}

var sourcesExportCmd = &cobra.Command{
	Use:   "export [file.opml]",
	Short: "Export feed sources as OPML",
	Long:  "Write the configured rss sources as OPML, to a file or stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var feeds []opml.Feed
		for _, s := range cfg.Sources {
			if models.SourceKind(s.Kind) == models.KindRSS {
				feeds = append(feeds, opml.Feed{URL: s.Endpoint, Title: s.Label})
			}
		}

		if len(args) == 0 {
			return opml.Write(cmd.OutOrStdout(), "matchday sources", feeds)
		}

		file, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		if err := opml.Write(file, "matchday sources", feeds); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesImportCmd)
	sourcesCmd.AddCommand(sourcesExportCmd)
}
