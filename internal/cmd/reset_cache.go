package cmd

import (
	"fmt"

	"github.com/aziis98/trimlines/internal/util"
	"github.com/spf13/cobra"
)

var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Forget every cached check result",
	Long: util.Dedent(`
		Drop and recreate the cache of checked files. The next check reads
		every file again.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Resetting cache...")
		removed, err := db.Reset()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s.\n", removed, util.Plural(removed, "entry", "entries"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCacheCmd)
}
