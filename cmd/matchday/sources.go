// ABOUTME: Sources command listing configured upstreams and their cache state
// ABOUTME: Shows kind, freshness window, and when each payload was last fetched

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/models"
)

type sourceStatus struct {
	Label            string             `json:"label"`
	Kind             models.SourceKind  `json:"kind"`
	Content          models.ContentKind `json:"content"`
	Endpoint         string             `json:"endpoint"`
	FreshnessSeconds int                `json:"freshness_seconds"`
	CachedAt         *time.Time         `json:"cached_at,omitempty"`
	Fresh            bool               `json:"fresh"`
}

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"src"},
	Short:   "List configured sources",
	Long:    "List the active sources with their freshness windows and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		entries, err := a.store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list cache: %w", err)
		}
		byKey := make(map[string]*models.CacheEntry, len(entries))
		for _, e := range entries {
			byKey[e.SourceKey] = e
		}

		now := time.Now()
		var statuses []sourceStatus
		for _, d := range a.engine.Sources() {
			st := sourceStatus{
				Label:            d.Label,
				Kind:             d.Kind,
				Content:          d.Yields(),
				Endpoint:         d.Endpoint,
				FreshnessSeconds: d.FreshnessSeconds,
			}
			if e, ok := byKey[d.Key()]; ok {
				at := e.FetchedAt
				st.CachedAt = &at
				st.Fresh = !e.Expired(now)
			}
			statuses = append(statuses, st)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, statuses)
		}

		if len(statuses) == 0 {
			fmt.Fprintln(out, "No sources configured")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		for _, st := range statuses {
			fmt.Fprintf(out, "%s %s\n", bold(st.Label), faint(fmt.Sprintf("(%s → %s)", st.Kind, st.Content)))
			fmt.Fprintf(out, "  %s\n", faint(st.Endpoint))
			switch {
			case st.CachedAt == nil:
				fmt.Fprintf(out, "  %s\n", faint("not cached"))
			case st.Fresh:
				fmt.Fprintf(out, "  %s %s\n", green("fresh"), faint("fetched "+st.CachedAt.Local().Format(config.DateFormatShort)))
			default:
				fmt.Fprintf(out, "  %s %s\n", yellow("stale"), faint("fetched "+st.CachedAt.Local().Format(config.DateFormatShort)))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
