// Command srcmake-completions prints a shell completion script at build
// time by running "srcmake completion <shell>".
package main

import (
	"fmt"
	"os"

	"github.com/srcmake/srcmake/cmd/srcmake"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	rootCmd := srcmake.NewRootCmd()
	rootCmd.SetArgs([]string{"completion", os.Args[1]})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
