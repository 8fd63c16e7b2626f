// Package objfile implements the loose object serialization format: a
// "<type> <size>\x00" header followed by the object content, the whole
// stream compressed with zlib.
package objfile

import (
	"errors"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"

	"github.com/go-gitdb/gitdb/plumbing"
)

var (
	// ErrClosed is returned when the objfile Reader or Writer is already
	// closed.
	ErrClosed = errors.New("objfile: already closed")
	// ErrHeader is returned when the objfile has an invalid header.
	ErrHeader = errors.New("objfile: invalid header")
	// ErrNegativeSize is returned when a negative object size is declared.
	ErrNegativeSize = errors.New("objfile: negative size")
)

// Reader reads and decompresses zlib-compressed objfile data from a provided
// reader. Object type and size are read from the header, content is exposed
// through the io.Reader interface and the hash of the object is computed on
// the fly while reading.
type Reader struct {
	multi  io.Reader
	zlib   io.ReadCloser
	hasher plumbing.Hasher
}

// NewReader returns a new Reader reading from r.
func NewReader(r io.Reader) (*Reader, error) {
	zlib, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{
		zlib: zlib,
	}, nil
}

// Header reads the type and the size of the object, and prepares the reader
// to read the object's content. It must be called before any Read call.
func (r *Reader) Header() (t plumbing.ObjectType, size int64, err error) {
	var raw []byte
	raw, err = r.readUntil(' ')
	if err != nil {
		return
	}

	t, err = plumbing.ParseObjectType(string(raw))
	if err != nil {
		return
	}

	raw, err = r.readUntil(0)
	if err != nil {
		return
	}

	size, err = strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		err = ErrHeader
		return
	}

	if size < 0 {
		err = ErrNegativeSize
		return
	}

	defer r.prepareForRead(t, size)
	return
}

// readUntil reads from the zlib stream one byte at a time until delim is
// found. Returns the read bytes excluding delim. If the end of the stream is
// reached before finding delim, ErrHeader is returned.
func (r *Reader) readUntil(delim byte) ([]byte, error) {
	var buf [1]byte
	value := make([]byte, 0, 16)
	for {
		if n, err := r.zlib.Read(buf[:]); err != nil && (err != io.EOF || n == 0) {
			if err == io.EOF {
				return nil, ErrHeader
			}

			return nil, err
		}

		if buf[0] == delim {
			return value, nil
		}

		value = append(value, buf[0])
	}
}

func (r *Reader) prepareForRead(t plumbing.ObjectType, size int64) {
	r.hasher = plumbing.NewHasher(t, size)
	r.multi = io.TeeReader(r.zlib, r.hasher)
}

// Read reads the object's content. Header must have been called first.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.multi == nil {
		return 0, ErrHeader
	}

	return r.multi.Read(p)
}

// Hash returns the hash of the object data stream that has been read so far.
func (r *Reader) Hash() plumbing.Hash {
	return r.hasher.Sum()
}

// Close releases any resources consumed by the Reader. Calling Close does
// not close the wrapped io.Reader originally passed to NewReader.
func (r *Reader) Close() error {
	return r.zlib.Close()
}
