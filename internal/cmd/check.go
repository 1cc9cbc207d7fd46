package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aziis98/trimlines/internal/database"
	"github.com/aziis98/trimlines/internal/source"
	"github.com/aziis98/trimlines/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// ErrUntrimmed is returned by check --exit-code when some files need trimming
var ErrUntrimmed = errors.New("some files are not trimmed")

var checkCmd = &cobra.Command{
	Use:   "check [folders...]",
	Short: "Report files that are not trimmed",
	Long: util.Dedent(`
		Scan directories for text files and report the ones whose content
		changes when trimmed. Results are cached by content hash, so only
		files that changed since the last check are read again unless
		--force is used.

		If no folders are specified, checks the current directory.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		exts, _ := cmd.Flags().GetStringSlice("ext")
		force, _ := cmd.Flags().GetBool("force")
		write, _ := cmd.Flags().GetBool("write")
		exitCode, _ := cmd.Flags().GetBool("exit-code")
		cached, _ := cmd.Flags().GetBool("cached")

		if err := validateCheckFlags(cached, write, force); err != nil {
			return err
		}

		var dirty []string
		var err error
		if cached {
			dirty, err = listCachedDirty()
		} else {
			folders := args
			if len(folders) == 0 {
				folders = []string{"."}
			}
			dirty, err = runCheckCommand(cmd.OutOrStdout(), folders, exts, force, write)
		}
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), dirty, write)

		if exitCode && !write && len(dirty) > 0 {
			return ErrUntrimmed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceP("ext", "e", source.DefaultExtensions, "file extensions to check")
	checkCmd.Flags().BoolP("force", "f", false, "ignore the cache and re-check every file")
	checkCmd.Flags().BoolP("write", "w", false, "trim the files that need it")
	checkCmd.Flags().Bool("exit-code", false, "exit with an error when some files are not trimmed")
	checkCmd.Flags().Bool("cached", false, "list untrimmed files recorded in the cache without scanning")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or update the cache")
}

// validateCheckFlags rejects flags that --cached cannot honor, since it
// only reads the cache
func validateCheckFlags(cached, write, force bool) error {
	if !cached {
		return nil
	}
	if write {
		return fmt.Errorf("--cached cannot be combined with --write")
	}
	if force {
		return fmt.Errorf("--cached cannot be combined with --force")
	}
	return nil
}

// FileInfo holds information about a file to be checked
type FileInfo struct {
	Path        string
	CurrentHash string
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// runCheckCommand returns the files that are not trimmed after the run
func runCheckCommand(out io.Writer, folders, exts []string, force, write bool) ([]string, error) {
	if cfg.Verbose {
		log.Printf("Checking folders: %v (extensions: %v, force: %t, write: %t)", folders, exts, force, write)
	}

	// Phase 1: Discovery
	fmt.Fprintln(out, "Phase 1: Discovering files...")
	files, err := source.Collect(folders, exts, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("collecting files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No files found.")
		return nil, nil
	}

	fmt.Fprintf(out, "Found %d %s.\n\n", len(files), util.Plural(len(files), "file", "files"))

	// Phase 2: Hash checking
	fmt.Fprintln(out, "Phase 2: Checking file hashes...")
	toProcess, dirty := checkHashes(files, force, write)

	if len(toProcess) == 0 {
		fmt.Fprintln(out, "All files are known to the cache. No processing needed.")
		return dirty, nil
	}

	fmt.Fprintf(out, "%d %s need processing.\n\n", len(toProcess), util.Plural(len(toProcess), "file", "files"))

	// Phase 3: Trimming
	fmt.Fprintln(out, "Phase 3: Trimming file contents...")
	dirty = append(dirty, processFiles(toProcess, write)...)

	return dirty, nil
}

// checkHashes splits files into the ones that must be read and the ones
// the cache already knows to be untrimmed
func checkHashes(files []string, force, write bool) ([]FileInfo, []string) {
	var toProcess []FileInfo
	var dirty []string

	bar := newProgressBar(len(files), "Checking hashes")
	defer fmt.Fprintln(os.Stderr) // New line after progress bar

	key := cfg.Trim.String()
	for _, path := range files {
		currentHash, err := source.HashFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to calculate hash for %s: %v\n", path, err)
			bar.Add(1)
			continue
		}

		if db != nil && !force {
			entry, ok, err := db.GetEntry(path, key)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to get cache entry for %s: %v\n", path, err)
			} else if ok && entry.Hash == currentHash {
				if cfg.Verbose {
					log.Printf("File unchanged: %s (clean: %t)", path, entry.Clean)
				}
				if entry.Clean {
					bar.Add(1)
					continue
				}
				if !write {
					dirty = append(dirty, path)
					bar.Add(1)
					continue
				}
			}
		}

		toProcess = append(toProcess, FileInfo{Path: path, CurrentHash: currentHash})
		bar.Add(1)
	}

	return toProcess, dirty
}

// processFiles trims the given files and returns the ones left untrimmed
func processFiles(toProcess []FileInfo, write bool) []string {
	var dirty []string

	bar := newProgressBar(len(toProcess), "Trimming files")
	defer fmt.Fprintln(os.Stderr)

	key := cfg.Trim.String()
	for _, fileInfo := range toProcess {
		text, err := source.ReadFile(fileInfo.Path, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to read %s: %v\n", fileInfo.Path, err)
			bar.Add(1)
			continue
		}

		formatted := formatFile(cfg.Trim, text)
		entry := database.Entry{
			Path:   fileInfo.Path,
			Config: key,
			Hash:   fileInfo.CurrentHash,
			Clean:  formatted == text,
		}

		if !entry.Clean && write {
			if err := source.WriteFile(fileInfo.Path, formatted); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to write %s: %v\n", fileInfo.Path, err)
			} else {
				log.Printf("Trimmed: %s", fileInfo.Path)
				entry.Hash = source.HashString(formatted)
				entry.Clean = true
			}
		}

		if !entry.Clean {
			dirty = append(dirty, fileInfo.Path)
		}

		if db != nil {
			if err := db.UpsertEntry(entry); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to store cache entry for %s: %v\n", fileInfo.Path, err)
			}
		}

		bar.Add(1)
	}

	return dirty
}

// listCachedDirty returns the untrimmed files recorded in the cache,
// dropping the ones that no longer exist
func listCachedDirty() ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("--cached needs the cache, remove --no-cache")
	}

	paths, err := db.ListDirty(cfg.Trim.String())
	if err != nil {
		return nil, err
	}

	var dirty []string
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Printf("Forgetting missing file: %s", path)
			if err := db.Forget(path); err != nil {
				return nil, err
			}
			continue
		}
		dirty = append(dirty, path)
	}
	return dirty, nil
}

func printReport(out io.Writer, dirty []string, write bool) {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("13")).
		Bold(true)

	pathStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("3"))

	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("3"))

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Bold(true)

	dirtyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	if len(dirty) == 0 {
		if write {
			fmt.Fprintln(out, countStyle.Render("All files are trimmed."))
		} else {
			fmt.Fprintln(out, countStyle.Render("All files are already trimmed."))
		}
		return
	}

	fmt.Fprintln(out, headerStyle.Render("Untrimmed files"))
	fmt.Fprintln(out, separatorStyle.Render(strings.Repeat("═", 60)))
	for _, path := range dirty {
		fmt.Fprintln(out, "  "+pathStyle.Render(path))
	}
	fmt.Fprintln(out, dirtyStyle.Render(fmt.Sprintf("%d %s not trimmed.", len(dirty), util.Plural(len(dirty), "file is", "files are"))))
}
