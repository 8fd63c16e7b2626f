package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/filemode"
	"github.com/go-gitdb/gitdb/plumbing/format/objfile"
	"github.com/go-gitdb/gitdb/plumbing/object"
)

var (
	catFileShowType bool
	catFileShowSize bool
	catFilePretty   bool
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <file>",
	Short: "Read a loose object file",
	Long: `Read a loose object file and show its type (-t), its size (-s) or
its content (-p). Trees are rendered one entry per line; every other type
prints its raw content.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatFile,
}

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&catFileShowType, "type", "t", false, "show the object type")
	catFileCmd.Flags().BoolVarP(&catFileShowSize, "size", "s", false, "show the content size")
	catFileCmd.Flags().BoolVarP(&catFilePretty, "pretty", "p", false, "show the object content")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	if !catFileShowType && !catFileShowSize && !catFilePretty {
		return errors.New("one of -t, -s or -p is required")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := objfile.NewReader(f)
	if err != nil {
		return err
	}
	defer r.Close()

	t, size, err := r.Header()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catFileShowType {
		fmt.Fprintln(out, t)
	}
	if catFileShowSize {
		fmt.Fprintln(out, size)
	}
	if !catFilePretty {
		return nil
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	if t != plumbing.TreeObject {
		_, err = out.Write(content)
		return err
	}

	return printTree(out, content)
}

func printTree(out io.Writer, content []byte) error {
	o := &plumbing.MemoryObject{}
	o.SetType(plumbing.TreeObject)
	o.SetSize(int64(len(content)))
	if _, err := o.Write(content); err != nil {
		return err
	}

	tree := &object.Tree{}
	if err := tree.Decode(o); err != nil {
		return err
	}

	for _, e := range tree.Entries {
		var kind plumbing.ObjectType
		switch e.Mode {
		case filemode.Dir:
			kind = plumbing.TreeObject
		case filemode.Submodule:
			kind = plumbing.CommitObject
		default:
			kind = plumbing.BlobObject
		}

		fmt.Fprintf(out, "%s %s %s\t%s\n", e.Mode, kind, e.Hash, e.Name)
	}

	return nil
}
