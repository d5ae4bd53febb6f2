// ABOUTME: Articles command aggregating an article page from all of its sources
// ABOUTME: Lists newest-first articles with color formatting, or full summaries with --full

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

var articlesCmd = &cobra.Command{
	Use:     "articles [page]",
	Aliases: []string{"news", "a"},
	Short:   "List articles for a page",
	Long:    "Aggregate an article page (default: home) and list its articles, newest first",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := "home"
		if len(args) == 1 {
			page = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetString("since")
		full, _ := cmd.Flags().GetBool("full")

		a, err := loadApp()
		if err != nil {
			return err
		}

		report, err := a.engine.Articles(cmd.Context(), page)
		if err != nil {
			return fmt.Errorf("failed to aggregate %s: %w", page, err)
		}

		if since != "" {
			cutoff, err := timeutil.ParseSince(since)
			if err != nil {
				return err
			}
			report.Items = aggregate.PublishedSince(report.Items, cutoff)
		}
		report.Items = aggregate.Cap(report.Items, limit)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, report)
		}

		printArticles(out, report.Items, full)
		printCoverage(cmd.ErrOrStderr(), report.Fallback, report.Sources)
		return nil
	},
}

func printArticles(w io.Writer, items []models.Article, full bool) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No articles found")
		return
	}

	faint := color.New(color.Faint).SprintFunc()
	for _, a := range items {
		if full {
			printArticleHeader(w, a)
			renderSnippet(w, a.Snippet)
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprint(w, faint(shortID(a.ID)))
		fmt.Fprint(w, " ")
		fmt.Fprint(w, a.Title)
		if a.PublishedAt != nil {
			fmt.Fprint(w, " ")
			fmt.Fprint(w, faint(a.PublishedAt.Local().Format(config.DateFormatShort)))
		}
		fmt.Fprint(w, " ")
		fmt.Fprint(w, faint("· "+a.SourceLabel))
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(articlesCmd)

	articlesCmd.Flags().IntP("limit", "n", config.DefaultListLimit, "max articles to show (0 for the page cap)")
	articlesCmd.Flags().StringP("since", "s", "", "only articles published since: today, yesterday, week, month, or a date")
	articlesCmd.Flags().BoolP("full", "f", false, "show rendered summaries")
}
