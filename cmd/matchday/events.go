// ABOUTME: Events command aggregating an event page from all of its sources
// ABOUTME: Lists upcoming events soonest-first with sport and local start time

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/aggregate"
	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/models"
)

var eventsCmd = &cobra.Command{
	Use:     "events [page]",
	Aliases: []string{"fixtures", "e"},
	Short:   "List upcoming events for a page",
	Long:    "Aggregate an event page (default: events) and list upcoming events, soonest first",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := "events"
		if len(args) == 1 {
			page = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")
		sport, _ := cmd.Flags().GetString("sport")

		a, err := loadApp()
		if err != nil {
			return err
		}

		report, err := a.engine.Events(cmd.Context(), page)
		if err != nil {
			return fmt.Errorf("failed to aggregate %s: %w", page, err)
		}

		if sport != "" {
			kept := report.Items[:0:0]
			for _, e := range report.Items {
				if strings.EqualFold(e.SportType, sport) {
					kept = append(kept, e)
				}
			}
			report.Items = kept
		}
		report.Items = aggregate.Cap(report.Items, limit)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, report)
		}

		printEvents(out, report.Items)
		printCoverage(cmd.ErrOrStderr(), report.Fallback, report.Sources)
		return nil
	},
}

func printEvents(w io.Writer, items []models.Event) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No upcoming events")
		return
	}

	faint := color.New(color.Faint).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for _, e := range items {
		fmt.Fprint(w, green(e.StartTime.Local().Format(config.DateFormatShort)))
		fmt.Fprint(w, " ")
		fmt.Fprint(w, e.Title)
		if e.SportType != "" {
			fmt.Fprint(w, " ")
			fmt.Fprint(w, faint("["+e.SportType+"]"))
		}
		fmt.Fprint(w, " ")
		fmt.Fprint(w, faint("· "+e.SourceLabel))
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntP("limit", "n", config.DefaultListLimit, "max events to show (0 for the page cap)")
	eventsCmd.Flags().String("sport", "", "only events for this sport or league")
}
