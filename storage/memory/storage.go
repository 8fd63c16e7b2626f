// Package memory is a storage backend base on memory
package memory

import (
	"sync"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// Storage is an implementation of storer.EncodedObjectStorer that stores
// every object in memory, keyed by hash. It is content-addressed: the hash
// returned by SetEncodedObject is computed from the object's type and
// content, and getting it back yields the exact same bytes.
//
// Reads may run concurrently; a mutex guards the maps.
type Storage struct {
	mut sync.RWMutex

	objects map[plumbing.Hash]plumbing.EncodedObject
	commits map[plumbing.Hash]plumbing.EncodedObject
	trees   map[plumbing.Hash]plumbing.EncodedObject
	blobs   map[plumbing.Hash]plumbing.EncodedObject
	tags    map[plumbing.Hash]plumbing.EncodedObject
}

// NewStorage returns a new empty Storage.
func NewStorage() *Storage {
	return &Storage{
		objects: make(map[plumbing.Hash]plumbing.EncodedObject),
		commits: make(map[plumbing.Hash]plumbing.EncodedObject),
		trees:   make(map[plumbing.Hash]plumbing.EncodedObject),
		blobs:   make(map[plumbing.Hash]plumbing.EncodedObject),
		tags:    make(map[plumbing.Hash]plumbing.EncodedObject),
	}
}

// NewEncodedObject returns a new plumbing.MemoryObject.
func (o *Storage) NewEncodedObject() plumbing.EncodedObject {
	return &plumbing.MemoryObject{}
}

// SetEncodedObject stores an object and returns its content hash. Objects
// with an invalid type are rejected with plumbing.ErrInvalidType.
func (o *Storage) SetEncodedObject(obj plumbing.EncodedObject) (plumbing.Hash, error) {
	h := obj.Hash()

	o.mut.Lock()
	defer o.mut.Unlock()

	o.objects[h] = obj

	switch obj.Type() {
	case plumbing.CommitObject:
		o.commits[h] = obj
	case plumbing.TreeObject:
		o.trees[h] = obj
	case plumbing.BlobObject:
		o.blobs[h] = obj
	case plumbing.TagObject:
		o.tags[h] = obj
	default:
		delete(o.objects, h)
		return h, plumbing.ErrInvalidType
	}

	return h, nil
}

// HasEncodedObject returns nil if the object exists, and
// plumbing.ErrObjectNotFound otherwise.
func (o *Storage) HasEncodedObject(h plumbing.Hash) (err error) {
	o.mut.RLock()
	defer o.mut.RUnlock()

	if _, ok := o.objects[h]; !ok {
		return plumbing.ErrObjectNotFound
	}
	return nil
}

// EncodedObjectSize returns the plaintext size of the stored object.
func (o *Storage) EncodedObjectSize(h plumbing.Hash) (int64, error) {
	o.mut.RLock()
	defer o.mut.RUnlock()

	obj, ok := o.objects[h]
	if !ok {
		return 0, plumbing.ErrObjectNotFound
	}

	return obj.Size(), nil
}

// EncodedObject gets an object by hash. Asking for a concrete type that does
// not match the stored object resolves to plumbing.ErrObjectNotFound, the
// same as a missing hash.
func (o *Storage) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	o.mut.RLock()
	defer o.mut.RUnlock()

	obj, ok := o.objects[h]
	if !ok || (plumbing.AnyObject != t && obj.Type() != t) {
		return nil, plumbing.ErrObjectNotFound
	}

	return obj, nil
}

// IterEncodedObjects returns an iterator over every stored object of the
// given type. Iteration order is unspecified.
func (o *Storage) IterEncodedObjects(t plumbing.ObjectType) (storer.EncodedObjectIter, error) {
	o.mut.RLock()
	defer o.mut.RUnlock()

	var series []plumbing.EncodedObject
	switch t {
	case plumbing.AnyObject:
		series = flattenObjectMap(o.objects)
	case plumbing.CommitObject:
		series = flattenObjectMap(o.commits)
	case plumbing.TreeObject:
		series = flattenObjectMap(o.trees)
	case plumbing.BlobObject:
		series = flattenObjectMap(o.blobs)
	case plumbing.TagObject:
		series = flattenObjectMap(o.tags)
	}

	return storer.NewEncodedObjectSliceIter(series), nil
}

func flattenObjectMap(m map[plumbing.Hash]plumbing.EncodedObject) []plumbing.EncodedObject {
	objects := make([]plumbing.EncodedObject, 0, len(m))
	for _, obj := range m {
		objects = append(objects, obj)
	}
	return objects
}
