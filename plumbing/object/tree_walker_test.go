package object

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/storage/memory"
)

type TreeWalkerSuite struct {
	suite.Suite
	Storer *memory.Storage
	Tree   *Tree

	blob    plumbing.Hash
	subtree plumbing.Hash
}

func TestTreeWalkerSuite(t *testing.T) {
	suite.Run(t, new(TreeWalkerSuite))
}

func (s *TreeWalkerSuite) SetupTest() {
	s.Storer = memory.NewStorage()

	s.blob = storeObject(s.Storer, plumbing.BlobObject, []byte("content"))

	var sub bytes.Buffer
	rawTreeEntry(&sub, "100644", "inner.txt", s.blob)
	s.subtree = storeObject(s.Storer, plumbing.TreeObject, sub.Bytes())

	var root bytes.Buffer
	rawTreeEntry(&root, "100644", "a.txt", s.blob)
	rawTreeEntry(&root, "40000", "dir", s.subtree)

	tree, err := GetTree(s.Storer, storeObject(s.Storer, plumbing.TreeObject, root.Bytes()))
	s.NoError(err)
	s.Tree = tree
}

func (s *TreeWalkerSuite) walk(recursive bool, seen map[plumbing.Hash]bool) []string {
	w := NewTreeWalker(s.Tree, recursive, seen)
	defer w.Close()

	var names []string
	for {
		name, _, err := w.Next()
		if err == io.EOF {
			break
		}
		s.NoError(err)
		names = append(names, name)
	}

	return names
}

func (s *TreeWalkerSuite) TestRecursive() {
	s.Equal([]string{"a.txt", "dir", "dir/inner.txt"}, s.walk(true, nil))
}

func (s *TreeWalkerSuite) TestNonRecursive() {
	s.Equal([]string{"a.txt", "dir"}, s.walk(false, nil))
}

func (s *TreeWalkerSuite) TestSeenSkipsSubtree() {
	seen := map[plumbing.Hash]bool{s.subtree: true}
	s.Equal([]string{"a.txt"}, s.walk(true, seen))
}

func (s *TreeWalkerSuite) TestTreeAccessor() {
	w := NewTreeWalker(s.Tree, true, nil)
	defer w.Close()

	s.Equal(s.Tree, w.Tree())
}
