package gitdb

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/cache"
	"github.com/go-gitdb/gitdb/plumbing/filemode"
	"github.com/go-gitdb/gitdb/plumbing/object"
	"github.com/go-gitdb/gitdb/plumbing/storer"
	"github.com/go-gitdb/gitdb/storage/memory"
)

// countingStorer counts reads hitting the backing store.
type countingStorer struct {
	*memory.Storage
	reads int64
}

func (c *countingStorer) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	atomic.AddInt64(&c.reads, 1)
	return c.Storage.EncodedObject(t, h)
}

type ObjectDBSuite struct {
	suite.Suite
	store *countingStorer
}

func TestObjectDBSuite(t *testing.T) {
	suite.Run(t, new(ObjectDBSuite))
}

func (s *ObjectDBSuite) SetupTest() {
	s.store = &countingStorer{Storage: memory.NewStorage()}
}

func (s *ObjectDBSuite) TestHashObject() {
	db := NewObjectDB(s.store)

	content := []byte("hello world\n")
	h, err := db.HashObject(plumbing.BlobObject, content)
	s.NoError(err)
	s.Equal(plumbing.ComputeHash(plumbing.BlobObject, content), h)
	s.Equal("3b18e512dba79e4c8300dd08aeb37f8e728b8dad", h.String())

	blob, err := db.BlobObject(h)
	s.NoError(err)
	s.Equal(int64(12), blob.Size)
}

func (s *ObjectDBSuite) TestObjectNotFound() {
	db := NewObjectDB(s.store)

	h := plumbing.MustHash("8ab686eafeb1f44702738c8b0f24f2567c36da6d")
	_, err := db.Object(plumbing.AnyObject, h)
	s.ErrorIs(err, plumbing.ErrObjectNotFound)
}

func (s *ObjectDBSuite) TestTypedAccessorMismatch() {
	db := NewObjectDB(s.store)

	h, err := db.HashObject(plumbing.BlobObject, []byte("blob"))
	s.NoError(err)

	// A blob hash through the commit accessor resolves like a missing
	// object.
	_, err = db.CommitObject(h)
	s.ErrorIs(err, plumbing.ErrObjectNotFound)
}

func (s *ObjectDBSuite) TestCacheAvoidsSecondRead() {
	db := NewObjectDB(s.store, WithCache(cache.NewObjectLRUDefault()))

	h, err := db.HashObject(plumbing.BlobObject, []byte("cached content"))
	s.NoError(err)

	_, err = db.BlobObject(h)
	s.NoError(err)
	s.Equal(int64(1), atomic.LoadInt64(&s.store.reads))

	_, err = db.BlobObject(h)
	s.NoError(err)
	s.Equal(int64(1), atomic.LoadInt64(&s.store.reads))

	// Size and existence checks are served from the cache too.
	size, err := db.EncodedObjectSize(h)
	s.NoError(err)
	s.Equal(int64(14), size)
	s.NoError(db.HasEncodedObject(h))
	s.Equal(int64(1), atomic.LoadInt64(&s.store.reads))
}

func (s *ObjectDBSuite) TestWithoutCacheEveryReadHitsStore() {
	db := NewObjectDB(s.store)

	h, err := db.HashObject(plumbing.BlobObject, []byte("uncached"))
	s.NoError(err)

	_, err = db.BlobObject(h)
	s.NoError(err)
	_, err = db.BlobObject(h)
	s.NoError(err)
	s.Equal(int64(2), atomic.LoadInt64(&s.store.reads))
}

func (s *ObjectDBSuite) TestConcurrentReads() {
	db := NewObjectDB(s.store, WithCache(cache.NewObjectLRUDefault()))

	h, err := db.HashObject(plumbing.BlobObject, []byte("shared"))
	s.NoError(err)

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.BlobObject(h)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
	s.GreaterOrEqual(atomic.LoadInt64(&s.store.reads), int64(1))
}

func (s *ObjectDBSuite) storeCommit(unix int64, msg string, parents ...plumbing.Hash) plumbing.Hash {
	raw := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n"
	for _, p := range parents {
		raw += "parent " + p.String() + "\n"
	}
	raw += "author A <a@example.com> " + strconv.FormatInt(unix, 10) + " +0000\n"
	raw += "committer A <a@example.com> " + strconv.FormatInt(unix, 10) + " +0000\n"
	raw += "\n" + msg + "\n"

	db := NewObjectDB(s.store)
	h, err := db.HashObject(plumbing.CommitObject, []byte(raw))
	s.NoError(err)
	return h
}

func (s *ObjectDBSuite) TestLog() {
	c1 := s.storeCommit(1000, "one")
	c2 := s.storeCommit(2000, "two", c1)
	c3 := s.storeCommit(3000, "merge", c2, c1)

	db := NewObjectDB(s.store)

	iter, err := db.Log(c3)
	s.NoError(err)

	var visited []plumbing.Hash
	err = iter.ForEach(func(c *object.Commit) error {
		visited = append(visited, c.Hash)
		return nil
	})
	s.NoError(err)
	s.Equal([]plumbing.Hash{c3, c2, c1}, visited)
}

func (s *ObjectDBSuite) TestLogStop() {
	c1 := s.storeCommit(1000, "one")
	c2 := s.storeCommit(2000, "two", c1)

	db := NewObjectDB(s.store)

	iter, err := db.Log(c2)
	s.NoError(err)

	var count int
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return storer.ErrStop
	})
	s.NoError(err)
	s.Equal(1, count)
}

func (s *ObjectDBSuite) TestLogByCommitterTime() {
	c1 := s.storeCommit(1000, "one")
	c2 := s.storeCommit(2000, "two", c1)
	c3 := s.storeCommit(3000, "three", c1)
	c4 := s.storeCommit(4000, "merge", c2, c3)

	db := NewObjectDB(s.store)

	iter, err := db.LogByCommitterTime(c4)
	s.NoError(err)

	var visited []plumbing.Hash
	err = iter.ForEach(func(c *object.Commit) error {
		visited = append(visited, c.Hash)
		return nil
	})
	s.NoError(err)
	s.Equal([]plumbing.Hash{c4, c3, c2, c1}, visited)
}

func (s *ObjectDBSuite) TestDiffTree() {
	db := NewObjectDB(s.store)

	oldBlob, err := db.HashObject(plumbing.BlobObject, []byte("v1"))
	s.NoError(err)
	newBlob, err := db.HashObject(plumbing.BlobObject, []byte("v2"))
	s.NoError(err)

	storeTree := func(h plumbing.Hash) *object.Tree {
		tree := &object.Tree{Entries: []object.TreeEntry{
			{Name: "f.txt", Mode: filemode.Regular, Hash: h},
		}}
		o := db.NewEncodedObject()
		s.NoError(tree.Encode(o))
		th, err := db.SetEncodedObject(o)
		s.NoError(err)

		stored, err := db.TreeObject(th)
		s.NoError(err)
		return stored
	}

	d, err := db.DiffTree(storeTree(oldBlob), storeTree(newBlob))
	s.NoError(err)
	s.Len(d, 1)
	s.Equal("f.txt", d[0].Path())
	s.Equal(oldBlob, d[0].From.Hash)
	s.Equal(newBlob, d[0].To.Hash)
}
