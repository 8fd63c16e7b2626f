package plumbing

import (
	"bytes"
	"encoding/hex"
	"hash"
	"sort"
	"strconv"

	"github.com/pjbgf/sha1cd"
)

const (
	// HashSize is the size, in bytes, of an object hash.
	HashSize = 20
	// HexSize is the size of an object hash in its hexadecimal form.
	HexSize = HashSize * 2
)

// Hash is the SHA1 identifier of a stored object, computed over the
// object's type header and content.
type Hash [HashSize]byte

// ZeroHash is Hash with value zero.
var ZeroHash Hash

// ComputeHash computes the hash for a given ObjectType and content.
func ComputeHash(t ObjectType, content []byte) Hash {
	h := NewHasher(t, int64(len(content)))
	h.Write(content)
	return h.Sum()
}

// NewHash returns a new Hash from its hexadecimal representation. It
// fails with a FormatError if the input has the wrong length or holds
// non-hexadecimal characters.
func NewHash(s string) (Hash, error) {
	var h Hash
	if len(s) != HexSize {
		return h, &FormatError{Value: s, Reason: "invalid hash length"}
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return h, &FormatError{Value: s, Reason: "invalid hexadecimal", Err: err}
	}

	copy(h[:], b)
	return h, nil
}

// MustHash returns a new Hash from its hexadecimal representation,
// panicking on malformed input. Intended for tests and constants.
func MustHash(s string) Hash {
	h, err := NewHash(s)
	if err != nil {
		panic("cannot create hash from " + s)
	}
	return h
}

// HashFromBytes creates a Hash from raw bytes. It fails with a
// FormatError if the input is not exactly HashSize bytes long.
func HashFromBytes(in []byte) (Hash, error) {
	var h Hash
	if len(in) != HashSize {
		return h, &FormatError{Value: string(in), Reason: "invalid hash length"}
	}

	copy(h[:], in)
	return h, nil
}

// String returns the hexadecimal representation of the Hash. It
// round-trips with NewHash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns the slice of bytes containing the hash.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Compare compares the hash's sum with a slice of bytes.
func (h Hash) Compare(b []byte) int {
	return bytes.Compare(h[:], b)
}

// Equal reports whether h and in hold the same sum.
func (h Hash) Equal(in Hash) bool {
	return h == in
}

// IsZero returns true if the hash is zero.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Hasher computes object hashes incrementally, framing the content
// with the canonical "<type> <size>\x00" header.
type Hasher struct {
	hash.Hash
}

func NewHasher(t ObjectType, size int64) Hasher {
	h := Hasher{sha1cd.New()}
	h.Reset(t, size)
	return h
}

func (h Hasher) Reset(t ObjectType, size int64) {
	h.Hash.Reset()
	h.Write(t.Bytes())
	h.Write([]byte(" "))
	h.Write([]byte(strconv.FormatInt(size, 10)))
	h.Write([]byte{0})
}

func (h Hasher) Sum() (hash Hash) {
	copy(hash[:], h.Hash.Sum(nil))
	return
}

// HashesSort sorts a slice of Hashes in increasing order.
func HashesSort(a []Hash) {
	sort.Sort(HashSlice(a))
}

// HashSlice attaches the methods of sort.Interface to []Hash, sorting in
// increasing order.
type HashSlice []Hash

func (p HashSlice) Len() int           { return len(p) }
func (p HashSlice) Less(i, j int) bool { return p[i].Compare(p[j].Bytes()) < 0 }
func (p HashSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
