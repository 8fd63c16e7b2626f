package object

import (
	"errors"
	"io"
	"path"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/filemode"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// maxTreeDepth limits how deep a walk may recurse, guarding against
// self-referencing or corrupt tree graphs.
const maxTreeDepth = 1024

// ErrMaxTreeDepth is returned when the maximum tree depth is exceeded.
var ErrMaxTreeDepth = errors.New("maximum tree depth exceeded")

// TreeWalker enumerates all the entries reachable from a tree, subtrees
// included. Entries come out in store order, parents before their children.
type TreeWalker struct {
	stack []*TreeEntryIter
	base  string

	recursive bool
	seen      map[plumbing.Hash]bool

	s storer.EncodedObjectStorer
	t *Tree
}

// NewTreeWalker returns a new TreeWalker for the given tree. If recursive is
// false, the walker yields the direct children only. The seen map may be
// nil; when given, subtrees whose hash is in it are skipped.
//
// It is the caller's responsibility to call Close() when finished with the
// walker.
func NewTreeWalker(t *Tree, recursive bool, seen map[plumbing.Hash]bool) *TreeWalker {
	return &TreeWalker{
		stack:     []*TreeEntryIter{NewTreeEntryIter(t)},
		recursive: recursive,
		seen:      seen,
		s:         t.s,
		t:         t,
	}
}

// Next returns the next entry and its path relative to the walk root.
// Subtree entries are yielded before their contents. After the last entry,
// Next returns io.EOF.
func (w *TreeWalker) Next() (name string, entry TreeEntry, err error) {
	var tree *Tree
	for {
		current := len(w.stack) - 1
		if current < 0 {
			err = io.EOF
			return
		}

		if current > maxTreeDepth {
			err = ErrMaxTreeDepth
			return
		}

		entry, err = w.stack[current].Next()
		if err == io.EOF {
			w.stack = w.stack[:current]
			w.base, _ = path.Split(w.base)
			w.base = path.Clean(w.base)
			if w.base == "." {
				w.base = ""
			}
			continue
		}

		if err != nil {
			return
		}

		if w.seen[entry.Hash] {
			continue
		}

		if entry.Mode == filemode.Dir && w.recursive {
			tree, err = GetTree(w.s, entry.Hash)
			if err != nil {
				return
			}
		}

		name = path.Join(w.base, entry.Name)
		break
	}

	if tree != nil {
		w.stack = append(w.stack, NewTreeEntryIter(tree))
		w.base = path.Join(w.base, entry.Name)
	}

	return
}

// Tree returns the tree the walker started from.
func (w *TreeWalker) Tree() *Tree {
	return w.t
}

// Close releases any resources used by the TreeWalker.
func (w *TreeWalker) Close() {
	w.stack = nil
}
