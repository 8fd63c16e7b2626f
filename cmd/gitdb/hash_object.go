package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/format/objfile"
)

var (
	hashObjectType  string
	hashObjectWrite bool
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [file]",
	Short: "Compute the object hash for raw content",
	Long: `Compute the content hash of a file (or stdin when no file is given)
framed as a git object of the given type. With -w the loose object file is
written to the working directory, named by its hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashObject,
}

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().StringVarP(&hashObjectType, "type", "t", "blob", "object type to hash as")
	hashObjectCmd.Flags().BoolVarP(&hashObjectWrite, "write", "w", false, "write the loose object file")
}

func runHashObject(cmd *cobra.Command, args []string) error {
	t, err := plumbing.ParseObjectType(hashObjectType)
	if err != nil {
		return err
	}

	var content []byte
	if len(args) == 1 {
		content, err = os.ReadFile(args[0])
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	h := plumbing.ComputeHash(t, content)
	fmt.Fprintln(cmd.OutOrStdout(), h)

	if hashObjectWrite {
		return writeLooseObject(h, t, content)
	}

	return nil
}

func writeLooseObject(h plumbing.Hash, t plumbing.ObjectType, content []byte) error {
	f, err := os.Create(h.String())
	if err != nil {
		return err
	}

	w := objfile.NewWriter(f)
	if err := w.WriteHeader(t, int64(len(content))); err != nil {
		f.Close()
		return err
	}

	if _, err := w.Write(content); err != nil {
		f.Close()
		return err
	}

	if err := w.Close(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
