// ABOUTME: Read command for viewing one aggregated article
// ABOUTME: Finds the article by ID prefix on a page and renders its summary with glamour

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/models"
)

var readCmd = &cobra.Command{
	Use:   "read <article-id>",
	Short: "Read an article summary",
	Long:  "Display an article from an aggregated page by its ID or ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := args[0]
		page, _ := cmd.Flags().GetString("page")

		a, err := loadApp()
		if err != nil {
			return err
		}

		report, err := a.engine.Articles(cmd.Context(), page)
		if err != nil {
			return fmt.Errorf("failed to aggregate %s: %w", page, err)
		}

		article, err := findArticle(report.Items, ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, article)
		}
		printArticleHeader(out, article)
		renderSnippet(out, article.Snippet)
		fmt.Fprintln(out)
		return nil
	},
}

// findArticle matches a full ID or a unique prefix.
func findArticle(items []models.Article, ref string) (models.Article, error) {
	var matches []models.Article
	for _, a := range items {
		if a.ID == ref {
			return a, nil
		}
		if strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return models.Article{}, fmt.Errorf("article not found: %s", ref)
	case 1:
		return matches[0], nil
	}
	return models.Article{}, fmt.Errorf("article prefix %s is ambiguous (%d matches)", ref, len(matches))
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringP("page", "p", "home", "article page to look in")
}
