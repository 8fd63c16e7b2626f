// Package gitdb is a content-addressed object database: immutable commits,
// trees, blobs and annotated tags stored and retrieved by hash, with a
// diff layer classifying the deltas between two trees.
//
// ObjectDB wraps any storer.EncodedObjectStorer with typed accessors,
// optional caching and history traversal. The storage/memory package
// provides the reference store implementation.
package gitdb

import (
	"golang.org/x/sync/singleflight"

	"github.com/go-gitdb/gitdb/diff"
	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/cache"
	"github.com/go-gitdb/gitdb/plumbing/object"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// ObjectDB is the database facade. It implements
// storer.EncodedObjectStorer itself, layering a cache and request
// coalescing over the backing store, so it can be handed to any code that
// consumes the raw store contract.
type ObjectDB struct {
	s storer.EncodedObjectStorer

	cache cache.Object
	group singleflight.Group
}

// Option configures an ObjectDB.
type Option func(*ObjectDB)

// WithCache sets the object cache. Without it every read goes to the
// backing store.
func WithCache(c cache.Object) Option {
	return func(db *ObjectDB) {
		db.cache = c
	}
}

// NewObjectDB returns a database over the given store.
func NewObjectDB(s storer.EncodedObjectStorer, opts ...Option) *ObjectDB {
	db := &ObjectDB{s: s}
	for _, opt := range opts {
		opt(db)
	}

	return db
}

// NewEncodedObject returns a new empty object from the backing store.
func (db *ObjectDB) NewEncodedObject() plumbing.EncodedObject {
	return db.s.NewEncodedObject()
}

// SetEncodedObject stores an object and returns its content hash.
func (db *ObjectDB) SetEncodedObject(o plumbing.EncodedObject) (plumbing.Hash, error) {
	return db.s.SetEncodedObject(o)
}

// EncodedObject reads an object by hash. Cached objects are served without
// touching the backing store; concurrent readers of the same uncached hash
// trigger a single store read between them.
func (db *ObjectDB) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	o, err := db.encodedObject(h)
	if err != nil {
		return nil, err
	}

	if t != plumbing.AnyObject && o.Type() != t {
		return nil, plumbing.ErrObjectNotFound
	}

	return o, nil
}

func (db *ObjectDB) encodedObject(h plumbing.Hash) (plumbing.EncodedObject, error) {
	if db.cache == nil {
		return db.s.EncodedObject(plumbing.AnyObject, h)
	}

	if o, ok := db.cache.Get(h); ok {
		return o, nil
	}

	v, err, _ := db.group.Do(h.String(), func() (interface{}, error) {
		o, err := db.s.EncodedObject(plumbing.AnyObject, h)
		if err != nil {
			return nil, err
		}

		db.cache.Put(o)
		return o, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(plumbing.EncodedObject), nil
}

// HasEncodedObject returns nil if the object exists.
func (db *ObjectDB) HasEncodedObject(h plumbing.Hash) error {
	if db.cache != nil {
		if _, ok := db.cache.Get(h); ok {
			return nil
		}
	}

	return db.s.HasEncodedObject(h)
}

// EncodedObjectSize returns the plaintext size of an object.
func (db *ObjectDB) EncodedObjectSize(h plumbing.Hash) (int64, error) {
	if db.cache != nil {
		if o, ok := db.cache.Get(h); ok {
			return o.Size(), nil
		}
	}

	return db.s.EncodedObjectSize(h)
}

// IterEncodedObjects iterates every object of the given type in the
// backing store.
func (db *ObjectDB) IterEncodedObjects(t plumbing.ObjectType) (storer.EncodedObjectIter, error) {
	return db.s.IterEncodedObjects(t)
}

// HashObject stores raw content under the given type and returns its hash.
func (db *ObjectDB) HashObject(t plumbing.ObjectType, content []byte) (plumbing.Hash, error) {
	o := db.s.NewEncodedObject()
	o.SetType(t)
	o.SetSize(int64(len(content)))

	w, err := o.Writer()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err := w.Write(content); err != nil {
		w.Close()
		return plumbing.ZeroHash, err
	}

	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, err
	}

	return db.s.SetEncodedObject(o)
}

// Object returns a decoded object of the given type.
func (db *ObjectDB) Object(t plumbing.ObjectType, h plumbing.Hash) (object.Object, error) {
	o, err := db.EncodedObject(t, h)
	if err != nil {
		return nil, err
	}

	return object.DecodeObject(db, o)
}

// CommitObject returns a decoded commit.
func (db *ObjectDB) CommitObject(h plumbing.Hash) (*object.Commit, error) {
	return object.GetCommit(db, h)
}

// TreeObject returns a decoded tree.
func (db *ObjectDB) TreeObject(h plumbing.Hash) (*object.Tree, error) {
	return object.GetTree(db, h)
}

// BlobObject returns a decoded blob.
func (db *ObjectDB) BlobObject(h plumbing.Hash) (*object.Blob, error) {
	return object.GetBlob(db, h)
}

// TagObject returns a decoded annotated tag.
func (db *ObjectDB) TagObject(h plumbing.Hash) (*object.Tag, error) {
	return object.GetTag(db, h)
}

// Log returns an iterator over the history reachable from the given
// commit, pre-order, first parent first. Each commit is yielded once.
func (db *ObjectDB) Log(from plumbing.Hash) (object.CommitIter, error) {
	commit, err := db.CommitObject(from)
	if err != nil {
		return nil, err
	}

	return object.NewCommitPreorderIter(commit, nil, nil), nil
}

// LogByCommitterTime returns the history reachable from the given commit
// ordered by committer time, newest first.
func (db *ObjectDB) LogByCommitterTime(from plumbing.Hash) (object.CommitIter, error) {
	commit, err := db.CommitObject(from)
	if err != nil {
		return nil, err
	}

	return object.NewCommitIterCTime(commit, nil, nil), nil
}

// DiffTree compares two trees of this database. Either may be nil.
func (db *ObjectDB) DiffTree(from, to *object.Tree) (diff.Diff, error) {
	return diff.TreeDiff(db, from, to)
}
