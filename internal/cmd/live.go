package cmd

import (
	"fmt"

	"github.com/aziis98/trimlines/internal/source"
	"github.com/aziis98/trimlines/internal/ui"
	"github.com/aziis98/trimlines/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live [file]",
	Short: "Interactive live preview",
	Long: util.Dedent(`
		Start an interactive terminal UI showing the trimmed form of the
		text as you type. F1, F2 and F3 toggle the trimming options.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var initial string
		if len(args) == 1 {
			text, err := source.ReadFile(args[0], false)
			if err != nil {
				return fmt.Errorf("reading initial text: %w", err)
			}
			initial = text
		}

		// Enable tea logging only when the TUI is actually used
		if cfg.Verbose {
			f, err := tea.LogToFile("debug.log", "debug")
			if err != nil {
				return fmt.Errorf("opening debug log: %w", err)
			}
			defer f.Close()
		}

		uiHandler := ui.New(cfg.Trim, cfg.Verbose)
		return uiHandler.HandleLiveCommand(initial)
	},
}

func init() {
	rootCmd.AddCommand(liveCmd)
}
