package source

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultExtensions are the file extensions collected when none are given
var DefaultExtensions = []string{".txt", ".md"}

// Collect walks the given folders and returns the absolute path of every
// regular file whose extension is one of exts. Entries that cannot be read
// are skipped.
func Collect(folders []string, exts []string, verbose bool) ([]string, error) {
	wanted := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted = append(wanted, ext)
	}

	var files []string
	for _, folder := range folders {
		root, err := filepath.Abs(folder)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", folder, err)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if verbose {
					log.Printf("Warning: Error accessing %s: %v", path, err)
				}
				return nil // Continue walking
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if slices.Contains(wanted, strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", folder, err)
		}
	}

	return files, nil
}

// HashFile calculates the SHA1 hash of a file
func HashFile(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha1.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashString returns the SHA1 hash of s, matching HashFile for a file holding s
func HashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Read reads all of r, optionally converting it to Unicode normalization form C
func Read(r io.Reader, nfc bool) (string, error) {
	if nfc {
		r = transform.NewReader(r, norm.NFC)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFile is Read for the named file
func ReadFile(path string, nfc bool) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	text, err := Read(file, nfc)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

// WriteFile replaces the contents of path keeping its permissions
func WriteFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
