package cache

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-gitdb/gitdb/plumbing"
)

type ObjectSuite struct {
	suite.Suite
	c       Object
	aObject plumbing.EncodedObject
	bObject plumbing.EncodedObject
	cObject plumbing.EncodedObject
	dObject plumbing.EncodedObject
}

func TestObjectSuite(t *testing.T) {
	suite.Run(t, new(ObjectSuite))
}

func (s *ObjectSuite) SetupTest() {
	s.aObject = newObject("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", 1*Byte)
	s.bObject = newObject("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", 3*Byte)
	s.cObject = newObject("cccccccccccccccccccccccccccccccccccccccc", 1*Byte)
	s.dObject = newObject("dddddddddddddddddddddddddddddddddddddddd", 1*Byte)

	s.c = NewObjectLRU(2 * Byte)
}

func (s *ObjectSuite) TestPutSameObject() {
	s.c.Put(s.aObject)
	s.c.Put(s.aObject)
	_, ok := s.c.Get(s.aObject.Hash())
	s.True(ok)
}

func (s *ObjectSuite) TestPutBigObject() {
	s.c.Put(s.bObject)
	_, ok := s.c.Get(s.aObject.Hash())
	s.False(ok)
}

func (s *ObjectSuite) TestPutCacheOverflow() {
	// this object should be evicted when the third one arrives
	s.c.Put(s.aObject)
	s.c.Put(s.cObject)
	s.c.Put(s.dObject)

	obj, ok := s.c.Get(s.aObject.Hash())
	s.False(ok)
	s.Nil(obj)

	obj, ok = s.c.Get(s.cObject.Hash())
	s.True(ok)
	s.NotNil(obj)

	obj, ok = s.c.Get(s.dObject.Hash())
	s.True(ok)
	s.NotNil(obj)
}

func (s *ObjectSuite) TestClear() {
	s.c.Put(s.aObject)
	s.c.Clear()
	obj, ok := s.c.Get(s.aObject.Hash())
	s.False(ok)
	s.Nil(obj)
}

func (s *ObjectSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup

	for i := 0; i < 1000; i++ {
		wg.Add(3)
		go func(i int) {
			s.c.Put(newObject(fmt.Sprintf("%040d", i), FileSize(i)))
			wg.Done()
		}(i)

		go func(i int) {
			if i%30 == 0 {
				s.c.Clear()
			}
			wg.Done()
		}(i)

		go func(i int) {
			s.c.Get(plumbing.MustHash(fmt.Sprintf("%040d", i)))
			wg.Done()
		}(i)
	}

	wg.Wait()
}

type dummyObject struct {
	hash plumbing.Hash
	size FileSize
}

func newObject(hash string, size FileSize) plumbing.EncodedObject {
	return &dummyObject{
		hash: plumbing.MustHash(hash),
		size: size,
	}
}

func (d *dummyObject) Hash() plumbing.Hash           { return d.hash }
func (*dummyObject) Type() plumbing.ObjectType       { return plumbing.InvalidObject }
func (*dummyObject) SetType(plumbing.ObjectType)     {}
func (d *dummyObject) Size() int64                   { return int64(d.size) }
func (*dummyObject) SetSize(s int64)                 {}
func (*dummyObject) Reader() (io.ReadCloser, error)  { return nil, nil }
func (*dummyObject) Writer() (io.WriteCloser, error) { return nil, nil }
