package pdf

import (
	"fmt"
	"log"
	"unicode"

	"github.com/aziis98/trimlines"
	"github.com/gen2brain/go-fitz"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Extractor pulls page text out of PDF files and trims it
type Extractor struct {
	trim           trimlines.Config
	foldDiacritics bool
	verbose        bool
}

// New creates a new PDF extractor
func New(trim trimlines.Config, foldDiacritics, verbose bool) *Extractor {
	return &Extractor{
		trim:           trim,
		foldDiacritics: foldDiacritics,
		verbose:        verbose,
	}
}

// openPDFReader opens a PDF file and returns a fitz document
func (e *Extractor) openPDFReader(pdfPath string) (*fitz.Document, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF file %s: %w", pdfPath, err)
	}

	return doc, nil
}

// logWarning logs a warning message if verbose mode is enabled
func (e *Extractor) logWarning(format string, args ...interface{}) {
	if e.verbose {
		log.Printf("Warning: "+format, args...)
	}
}

var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeUnicode(s string, foldDiacritics bool) string {
	if !foldDiacritics {
		return norm.NFC.String(s)
	}

	result, _, err := transform.String(removeDiacritics, s)
	if err != nil {
		panic(fmt.Sprintf("normalizing string failed: %v", err))
	}

	return result
}

// CleanPage normalizes the text of a single page. Unlike a flat whitespace
// collapse it keeps the line structure and relative indentation.
func (e *Extractor) CleanPage(text string) string {
	return e.trim.Trim(normalizeUnicode(text, e.foldDiacritics))
}

// ExtractPages extracts text from each page of a PDF and returns a list of cleaned strings.
func (e *Extractor) ExtractPages(pdfPath string) ([]string, error) {
	doc, err := e.openPDFReader(pdfPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	numPages := doc.NumPage()

	pages := make([]string, 0, numPages)
	for pageIndex := 0; pageIndex < numPages; pageIndex++ {
		text, err := doc.Text(pageIndex)
		if err != nil {
			e.logWarning("could not extract text from page %d of %s: %v", pageIndex+1, pdfPath, err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, e.CleanPage(text))
	}

	return pages, nil
}
