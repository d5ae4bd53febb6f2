// ABOUTME: Shared terminal output helpers for aggregation commands
// ABOUTME: Prints JSON, per-source coverage notes, and glamour-rendered article bodies

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/content"
	"github.com/harper/matchday/internal/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > config.DisplayIDLength {
		return id[:config.DisplayIDLength]
	}
	return id
}

// printCoverage reports failed or stale sources and fallback use after a listing.
func printCoverage(w io.Writer, fallback bool, sources []aggregate.SourceReport) {
	yellow := color.New(color.FgYellow).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	for _, s := range sources {
		switch {
		case s.ErrorKind != aggregate.ErrorNone && s.Stale:
			fmt.Fprintf(w, "%s %s %s\n", yellow("!"), s.Label, faint(fmt.Sprintf("(%s error, served stale cache)", s.ErrorKind)))
		case s.ErrorKind == aggregate.ErrorValidation:
			fmt.Fprintf(w, "%s %s %s\n", faint("-"), s.Label, faint(fmt.Sprintf("(%d invalid items dropped)", s.Dropped)))
		case s.ErrorKind != aggregate.ErrorNone:
			fmt.Fprintf(w, "%s %s %s\n", yellow("!"), s.Label, faint(fmt.Sprintf("(%s error: %s)", s.ErrorKind, s.Error)))
		}
	}
	if fallback {
		fmt.Fprintln(w, yellow("All sources unavailable, showing fallback content"))
	}
}

func printArticleHeader(w io.Writer, a models.Article) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(w, strings.Repeat("─", config.SeparatorWidth))
	fmt.Fprintf(w, "%s\n\n", bold(a.Title))
	fmt.Fprintf(w, "%s %s\n", faint("Source:"), a.SourceLabel)
	if a.PublishedAt != nil {
		fmt.Fprintf(w, "%s %s\n", faint("Published:"), a.PublishedAt.Local().Format(config.DateFormatLong))
	}
	if a.Link != "" {
		fmt.Fprintf(w, "%s %s\n", faint("Link:"), cyan(a.Link))
	}
	fmt.Fprintln(w, strings.Repeat("─", config.SeparatorWidth))
}

// renderSnippet converts the snippet to markdown and renders it for the terminal.
func renderSnippet(w io.Writer, snippet string) {
	faint := color.New(color.Faint).SprintFunc()
	if snippet == "" {
		fmt.Fprintln(w, "\n(No summary available)")
		return
	}

	markdown := content.ToMarkdown(snippet)
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		fmt.Fprintf(w, "%s\n", faint("(markdown rendering unavailable, showing plain text)"))
		fmt.Fprintf(w, "\n%s\n", markdown)
		return
	}
	fmt.Fprint(w, rendered)
}
