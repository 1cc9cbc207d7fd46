package cmd

import (
	"fmt"
	"io"

	"github.com/aziis98/trimlines/internal/pdf"
	"github.com/aziis98/trimlines/internal/util"
	"github.com/spf13/cobra"
)

// pageSeparator is written between consecutive pages
const pageSeparator = "\f\n"

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract and trim the text of a PDF",
	Long: util.Dedent(`
		Extract the text of every page of a PDF file, trim it and print it
		to standard output. Pages are separated by a form feed line.
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fold, _ := cmd.Flags().GetBool("fold-diacritics")

		return runExtractCommand(cmd.OutOrStdout(), args[0], fold)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().Bool("fold-diacritics", false, "remove diacritics from the extracted text")
}

func runExtractCommand(out io.Writer, path string, foldDiacritics bool) error {
	extractor := pdf.New(cfg.Trim, foldDiacritics, cfg.Verbose)

	pages, err := extractor.ExtractPages(path)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}

	return writePages(out, pages)
}

func writePages(out io.Writer, pages []string) error {
	for i, page := range pages {
		if i > 0 {
			if _, err := io.WriteString(out, pageSeparator); err != nil {
				return err
			}
		}
		if page == "" {
			continue
		}
		if _, err := fmt.Fprintln(out, page); err != nil {
			return err
		}
	}
	return nil
}
