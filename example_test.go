package trimlines_test

import (
	"fmt"

	"github.com/aziis98/trimlines"
)

func ExampleTrimLines() {
	s := trimlines.TrimLines(`
		Usage:
		  trimlines [files...]
	`)
	fmt.Println(s)
	// Output:
	// Usage:
	//   trimlines [files...]
}

func ExampleConfig_Trim() {
	c := trimlines.NewConfig(trimlines.WithTrimVerticalStart(false))
	fmt.Printf("%q\n", c.Trim("\n\n    foo\n\n"))
	// Output:
	// "\n\nfoo"
}
