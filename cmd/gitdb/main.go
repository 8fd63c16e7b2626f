// Command gitdb inspects and produces loose git objects without a
// repository: hash-object computes (and optionally writes) an object from
// raw content, cat-file reads one back.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitdb",
	Short: "Inspect and produce loose git objects",
	Long: `gitdb works on standalone loose object files and stdin; it needs no
repository on disk.

Examples:
  # Hash stdin as a blob
  echo 'hello' | gitdb hash-object

  # Hash a file and write the loose object next to it
  gitdb hash-object -w myfile.txt

  # Show the type, size and content of a loose object file
  gitdb cat-file -p 3b18e512dba79e4c8300dd08aeb37f8e728b8dad`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
