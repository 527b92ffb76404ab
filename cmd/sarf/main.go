// Command sarf manages a lexicon of Arabic roots and schemes stored in plain
// text files and runs the morphology operations over it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
