package object

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/filemode"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

var (
	// ErrEntryNotFound is returned when a tree entry is looked up by a name
	// the tree does not hold.
	ErrEntryNotFound = errors.New("entry not found")
)

// Tree is basically like a directory - it references a bunch of other trees
// and/or blobs (i.e. files and sub-directories)
type Tree struct {
	// Entries holds the tree entries in store order.
	Entries []TreeEntry
	// Hash of the tree object.
	Hash plumbing.Hash

	s storer.EncodedObjectStorer
	m map[string]*TreeEntry
}

// TreeEntry represents a file
type TreeEntry struct {
	Name string
	Mode filemode.FileMode
	Hash plumbing.Hash
}

// GetTree gets a tree from an object storer and decodes it.
func GetTree(s storer.EncodedObjectStorer, h plumbing.Hash) (*Tree, error) {
	o, err := s.EncodedObject(plumbing.TreeObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeTree(s, o)
}

// DecodeTree decodes an encoded object into a *Tree and associates it to the
// given object storer.
func DecodeTree(s storer.EncodedObjectStorer, o plumbing.EncodedObject) (*Tree, error) {
	t := &Tree{s: s}
	if err := t.Decode(o); err != nil {
		return nil, err
	}

	return t, nil
}

// Entry returns the tree entry with the given name. When the raw tree held
// several entries under the same name, the one that appeared last in store
// order wins; duplicates are tolerated, not rejected.
func (t *Tree) Entry(name string) (*TreeEntry, error) {
	if t.m == nil {
		t.buildMap()
	}

	entry, ok := t.m[name]
	if !ok {
		return nil, ErrEntryNotFound
	}

	return entry, nil
}

func (t *Tree) buildMap() {
	t.m = make(map[string]*TreeEntry)
	for i := range t.Entries {
		t.m[t.Entries[i].Name] = &t.Entries[i]
	}
}

// ID returns the object ID of the tree. The returned value will always match
// the current value of Tree.Hash.
//
// ID is present to fulfill the Object interface.
func (t *Tree) ID() plumbing.Hash {
	return t.Hash
}

// Type returns the type of object. It always returns plumbing.TreeObject.
func (t *Tree) Type() plumbing.ObjectType {
	return plumbing.TreeObject
}

// Decode transform a plumbing.EncodedObject into a Tree struct. A single
// malformed entry aborts the decode of the whole tree; no partially
// populated Tree escapes.
func (t *Tree) Decode(o plumbing.EncodedObject) (err error) {
	if o.Type() != plumbing.TreeObject {
		return ErrUnsupportedObject
	}

	t.Hash = o.Hash()
	if o.Size() == 0 {
		return nil
	}

	t.Entries = nil
	t.m = nil

	reader, err := o.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	r := bufio.NewReader(reader)
	for {
		str, err := r.ReadString(' ')
		if err != nil {
			if err == io.EOF {
				break
			}

			return err
		}
		str = str[:len(str)-1] // strip last byte (' ')

		mode, err := filemode.New(str)
		if err != nil {
			return &plumbing.DecodeError{
				Type:   plumbing.TreeObject,
				Field:  "mode",
				Reason: "malformed file mode",
				Err:    err,
			}
		}

		name, err := r.ReadString(0)
		if err != nil {
			return &plumbing.DecodeError{
				Type:   plumbing.TreeObject,
				Field:  "name",
				Reason: "unterminated entry name",
				Err:    err,
			}
		}
		name = name[:len(name)-1] // strip last byte (0x00)

		if !utf8.ValidString(name) {
			return &plumbing.DecodeError{
				Type:   plumbing.TreeObject,
				Field:  "name",
				Reason: "entry name is not valid text",
			}
		}

		var hash plumbing.Hash
		if _, err = io.ReadFull(r, hash[:]); err != nil {
			return &plumbing.DecodeError{
				Type:   plumbing.TreeObject,
				Field:  "hash",
				Reason: "truncated entry hash",
				Err:    err,
			}
		}

		t.Entries = append(t.Entries, TreeEntry{
			Hash: hash,
			Mode: mode,
			Name: name,
		})
	}

	return nil
}

// Encode transforms a Tree into a plumbing.EncodedObject.
func (t *Tree) Encode(o plumbing.EncodedObject) (err error) {
	o.SetType(plumbing.TreeObject)
	w, err := o.Writer()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, entry := range t.Entries {
		if strings.IndexByte(entry.Name, 0) != -1 {
			return fmt.Errorf("malformed filename %q", entry.Name)
		}

		if _, err = fmt.Fprintf(w, "%o %s", entry.Mode, entry.Name); err != nil {
			return err
		}

		if _, err = w.Write([]byte{0x00}); err != nil {
			return err
		}

		if _, err = w.Write(entry.Hash.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

// TreeEntryIter facilitates iterating through the TreeEntry objects in a Tree.
type TreeEntryIter struct {
	t   *Tree
	pos int
}

// NewTreeEntryIter returns a TreeEntryIter over the direct children of the
// tree, in store order.
func NewTreeEntryIter(t *Tree) *TreeEntryIter {
	return &TreeEntryIter{t, 0}
}

// Next returns the next TreeEntry or io.EOF when the entries run out.
func (iter *TreeEntryIter) Next() (TreeEntry, error) {
	if iter.pos >= len(iter.t.Entries) {
		return TreeEntry{}, io.EOF
	}
	iter.pos++
	return iter.t.Entries[iter.pos-1], nil
}
