package diff

import (
	"sort"

	"github.com/go-gitdb/gitdb/plumbing/filemode"
	"github.com/go-gitdb/gitdb/plumbing/object"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// TreeDiff compares two trees and returns one delta per changed path. Either
// tree may be nil: against a nil tree every path of the other side is
// reported as added or deleted. Subtrees with equal hashes are skipped
// without being read from the store.
//
// Deltas come out sorted by path within each directory, so the output order
// is deterministic for a given pair of trees.
func TreeDiff(s storer.EncodedObjectStorer, from, to *object.Tree) (Diff, error) {
	if from == to {
		return Diff{}, nil
	}

	if from != nil && to != nil && from.Hash == to.Hash {
		return Diff{}, nil
	}

	w := &treeWalker{s: s}
	if err := w.walk("", from, to); err != nil {
		return nil, err
	}

	return w.diff, nil
}

type treeWalker struct {
	s    storer.EncodedObjectStorer
	diff Diff
}

func (w *treeWalker) walk(prefix string, from, to *object.Tree) error {
	fromEntries := sortedEntries(from)
	toEntries := sortedEntries(to)

	for len(fromEntries) > 0 || len(toEntries) > 0 {
		switch {
		case len(toEntries) == 0 || (len(fromEntries) > 0 && fromEntries[0].Name < toEntries[0].Name):
			if err := w.one(prefix, fromEntries[0], StatusDeleted); err != nil {
				return err
			}
			fromEntries = fromEntries[1:]
		case len(fromEntries) == 0 || toEntries[0].Name < fromEntries[0].Name:
			if err := w.one(prefix, toEntries[0], StatusAdded); err != nil {
				return err
			}
			toEntries = toEntries[1:]
		default:
			if err := w.pair(prefix, fromEntries[0], toEntries[0]); err != nil {
				return err
			}
			fromEntries = fromEntries[1:]
			toEntries = toEntries[1:]
		}
	}

	return nil
}

// pair handles two entries sharing a name.
func (w *treeWalker) pair(prefix string, from, to object.TreeEntry) error {
	if from.Hash == to.Hash && from.Mode == to.Mode {
		return nil
	}

	fromKind := entryKind(from.Mode)
	toKind := entryKind(to.Mode)

	switch {
	case fromKind == kindDir && toKind == kindDir:
		fromTree, err := object.GetTree(w.s, from.Hash)
		if err != nil {
			return err
		}
		toTree, err := object.GetTree(w.s, to.Hash)
		if err != nil {
			return err
		}
		return w.walk(prefix+from.Name+"/", fromTree, toTree)
	case fromKind != toKind:
		// A directory replaced by a file, or a blob whose kind changed
		// (regular vs symlink vs submodule). The entry hashes stand in
		// for both sides; no subtree is expanded.
		return w.emit(prefix, from, to, StatusTypeChange)
	default:
		return w.emit(prefix, from, to, StatusModified)
	}
}

type kind int

const (
	kindFile kind = iota
	kindSymlink
	kindSubmodule
	kindDir
	kindOther
)

// entryKind folds the file modes into the kinds relevant for delta
// classification. Regular, Deprecated and Executable are one kind: a change
// among them is a modification, not a type change.
func entryKind(m filemode.FileMode) kind {
	switch {
	case m == filemode.Dir:
		return kindDir
	case m == filemode.Symlink:
		return kindSymlink
	case m == filemode.Submodule:
		return kindSubmodule
	case m.IsRegular() || m == filemode.Executable:
		return kindFile
	default:
		return kindOther
	}
}

// one reports a whole entry as added or deleted, descending into subtrees so
// every contained blob gets its own delta.
func (w *treeWalker) one(prefix string, e object.TreeEntry, status Status) error {
	if e.Mode == filemode.Dir {
		tree, err := object.GetTree(w.s, e.Hash)
		if err != nil {
			return err
		}

		if status == StatusDeleted {
			return w.walk(prefix+e.Name+"/", tree, nil)
		}
		return w.walk(prefix+e.Name+"/", nil, tree)
	}

	if status == StatusDeleted {
		return w.emitOne(prefix, &e, nil, status)
	}
	return w.emitOne(prefix, nil, &e, status)
}

func (w *treeWalker) emit(prefix string, from, to object.TreeEntry, status Status) error {
	return w.emitOne(prefix, &from, &to, status)
}

func (w *treeWalker) emitOne(prefix string, from, to *object.TreeEntry, status Status) error {
	var delta Delta
	delta.Status = status

	if from != nil {
		f, err := w.file(prefix, *from)
		if err != nil {
			return err
		}
		delta.From = f
		delta.Flags |= f.Flags
	}
	if to != nil {
		f, err := w.file(prefix, *to)
		if err != nil {
			return err
		}
		delta.To = f
		delta.Flags |= f.Flags
	}

	w.diff = append(w.diff, delta)
	return nil
}

func (w *treeWalker) file(prefix string, e object.TreeEntry) (*File, error) {
	// A submodule entry points at a commit in another database; it has no
	// size here and no object to read.
	if e.Mode == filemode.Submodule {
		return &File{Hash: e.Hash, Path: prefix + e.Name, Flags: ValidID}, nil
	}

	size, err := w.s.EncodedObjectSize(e.Hash)
	if err != nil {
		return nil, err
	}

	return &File{
		Hash:  e.Hash,
		Path:  prefix + e.Name,
		Size:  size,
		Flags: ValidID | Exists,
	}, nil
}

func sortedEntries(t *object.Tree) []object.TreeEntry {
	if t == nil {
		return nil
	}

	entries := make([]object.TreeEntry, len(t.Entries))
	copy(entries, t.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries
}
