package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/aziis98/trimlines"
	"github.com/aziis98/trimlines/internal/source"
	"github.com/aziis98/trimlines/internal/util"
	"github.com/spf13/cobra"
)

const stdinName = "-"

var trimCmd = &cobra.Command{
	Use:   "trim [files...]",
	Short: "Trim files or standard input",
	Long: util.Dedent(`
		Trim the given files and print the result to standard output.
		With no files, or when a file is "-", standard input is read.

		Use --write to rewrite the files in place instead.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		nfc, _ := cmd.Flags().GetBool("nfc")

		return runTrimCommand(cmd.InOrStdin(), cmd.OutOrStdout(), args, write, nfc)
	},
}

func init() {
	rootCmd.AddCommand(trimCmd)

	trimCmd.Flags().BoolP("write", "w", false, "write the result back to the files")
	trimCmd.Flags().Bool("nfc", false, "convert input to Unicode normalization form C before trimming")
}

// formatFile returns the trimmed form of a whole file. A file trimmed at
// its end gets a single final newline, unless it became empty.
func formatFile(c trimlines.Config, text string) string {
	trimmed := c.Trim(text)
	if c.TrimVerticalEnd && trimmed != "" {
		trimmed += "\n"
	}
	return trimmed
}

func runTrimCommand(stdin io.Reader, out io.Writer, files []string, write, nfc bool) error {
	if len(files) == 0 {
		files = []string{stdinName}
	}

	if write && slices.Contains(files, stdinName) {
		return fmt.Errorf("cannot use --write with standard input")
	}

	var failed, changed int
	for _, path := range files {
		if path == stdinName {
			text, err := source.Read(stdin, nfc)
			if err != nil {
				return fmt.Errorf("reading standard input: %w", err)
			}
			if _, err := io.WriteString(out, formatFile(cfg.Trim, text)); err != nil {
				return err
			}
			continue
		}

		text, err := source.ReadFile(path, nfc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to read %s: %v\n", path, err)
			failed++
			continue
		}

		formatted := formatFile(cfg.Trim, text)

		if !write {
			if _, err := io.WriteString(out, formatted); err != nil {
				return err
			}
			continue
		}

		if formatted == text {
			log.Printf("File already trimmed: %s", path)
			continue
		}

		if err := source.WriteFile(path, formatted); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write %s: %v\n", path, err)
			failed++
			continue
		}

		log.Printf("Trimmed: %s", path)
		changed++
	}

	if write {
		fmt.Fprintf(out, "Trimmed %d %s.\n", changed, util.Plural(changed, "file", "files"))
	}

	if failed > 0 {
		return fmt.Errorf("%d %s could not be trimmed", failed, util.Plural(failed, "file", "files"))
	}
	return nil
}
