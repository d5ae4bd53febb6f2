// ABOUTME: Cobra command for writing the matchday config file
// ABOUTME: Launches a bubbletea TUI wizard, or writes defaults with --defaults
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/matchday/internal/config"
	"github.com/harper/matchday/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write the matchday config file",
	Long: `Interactive wizard to choose the cache backend and API address.

The written file also lists the default sources and pages so they can be
edited. Store credentials are read from MATCHDAY_STORE_URL and
MATCHDAY_STORE_TOKEN and are never written to the file.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().Bool("defaults", false, "write the built-in defaults without prompting")
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := config.ExpandPath(configPath)
	if path == "" {
		path = config.GetConfigPath()
	}

	useDefaults, _ := cmd.Flags().GetBool("defaults")
	if !useDefaults {
		model := tui.NewSetupModel(cfg.Cache, cfg.Server.Addr)

		p := tea.NewProgram(model)
		result, err := p.Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}

		final := result.(tui.SetupModel)
		if !final.ShouldSave() {
			fmt.Fprintln(cmd.OutOrStdout(), "Setup canceled.")
			return nil
		}
		cfg.Cache, cfg.Server.Addr = final.Result()
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
	return nil
}
