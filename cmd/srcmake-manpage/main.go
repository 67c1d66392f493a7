// Command srcmake-manpage writes the srcmake man pages. Without arguments
// the root page goes to stdout; with a directory one page per command is
// written there.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/srcmake/srcmake/cmd/srcmake"
	"github.com/srcmake/srcmake/internal/version"
)

func main() {
	rootCmd := srcmake.NewRootCmd()

	if len(os.Args) > 1 {
		if err := srcmake.GenerateManPages(rootCmd, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	header := &doc.GenManHeader{
		Title:   "SRCMAKE",
		Section: "1",
		Source:  "srcmake " + version.Version,
		Manual:  "srcmake manual",
	}
	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
