package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aziis98/trimlines"
	"github.com/aziis98/trimlines/internal/config"
	"github.com/aziis98/trimlines/internal/database"
	"github.com/aziis98/trimlines/internal/util"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	db      *database.DB
	verbose bool

	noIndent     bool
	keepLeading  bool
	keepTrailing bool
	noCache      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trimlines",
	Short: "Multi-line text trimming tool",
	Long: util.Dedent(`
		Trim horizontal whitespace from every line of a text, re-indent it
		relative to its least indented line and drop leading and trailing
		blank lines.

		Files can be trimmed directly, checked in bulk with a cache of
		already trimmed files, or previewed interactively.
	`),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize configuration
		cfg = config.New()
		cfg.Verbose = verbose
		cfg.Trim = trimlines.NewConfig(
			trimlines.WithTrimLeftToLeastIndent(!noIndent),
			trimlines.WithTrimVerticalStart(!keepLeading),
			trimlines.WithTrimVerticalEnd(!keepTrailing),
		)

		// Setup logging
		if cfg.Verbose {
			log.SetFlags(log.Ltime | log.Lshortfile)
			log.SetOutput(os.Stderr)
		} else {
			log.SetFlags(0)
			log.SetOutput(io.Discard)
		}

		log.Printf("Trim options: %s", cfg.Trim)

		// Only the cache-backed commands need a database
		switch cmd.Name() {
		case "check":
			if noCache {
				return nil
			}
			if err := cfg.FindOrCreateDBPath(); err != nil {
				return fmt.Errorf("finding or creating cache path: %w", err)
			}
		case "reset-cache":
			if err := cfg.FindExistingDBPath(); err != nil {
				return fmt.Errorf("no cache found - nothing to reset")
			}
		default:
			return nil
		}

		log.Printf("Using cache at: %s", cfg.DBPath)

		var err error
		db, err = database.New(cfg.DBPath, cfg.Verbose)
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noIndent, "no-indent", false, "strip all indentation instead of re-indenting to the least indented line")
	rootCmd.PersistentFlags().BoolVar(&keepLeading, "keep-leading", false, "keep leading blank lines")
	rootCmd.PersistentFlags().BoolVar(&keepTrailing, "keep-trailing", false, "keep trailing blank lines")
}
