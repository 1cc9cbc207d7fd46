// The trimlines binary needs cgo for its sqlite cache and PDF extraction:
// CGO_ENABLED=1 go build ./cmd/trimlines

package main

import (
	"fmt"
	"os"

	"github.com/aziis98/trimlines/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
