// Package plumbing implements the core types used to address and hold
// git objects: hashes, object types and raw encoded objects.
package plumbing

import "io"

// EncodedObject is a generic representation of any git object, as
// handed out by an object store: a type tag plus raw content bytes.
type EncodedObject interface {
	Hash() Hash
	Type() ObjectType
	SetType(ObjectType)
	Size() int64
	SetSize(int64)
	Reader() (io.ReadCloser, error)
	Writer() (io.WriteCloser, error)
}

// ObjectType internal object type.
// Integer values from 0 to 4 map to those exposed by git.
// AnyObject is used to represent any from 0 to 4.
type ObjectType int8

const (
	// InvalidObject represents an invalid object type.
	InvalidObject ObjectType = 0
	// CommitObject is a git commit object.
	CommitObject ObjectType = 1
	// TreeObject is a git tree object.
	TreeObject ObjectType = 2
	// BlobObject is a git blob object.
	BlobObject ObjectType = 3
	// TagObject is a git tag object.
	TagObject ObjectType = 4

	// AnyObject is used to represent any object type.
	AnyObject ObjectType = -127
)

func (t ObjectType) String() string {
	switch t {
	case CommitObject:
		return "commit"
	case TreeObject:
		return "tree"
	case BlobObject:
		return "blob"
	case TagObject:
		return "tag"
	case AnyObject:
		return "any"
	default:
		return "unknown"
	}
}

// Bytes returns the byte representation of the ObjectType.
func (t ObjectType) Bytes() []byte {
	return []byte(t.String())
}

// Valid returns true if t is a valid ObjectType.
func (t ObjectType) Valid() bool {
	return t >= CommitObject && t <= TagObject
}

// ParseObjectType parses a string representation of ObjectType. It returns an
// error on parse failure.
func ParseObjectType(value string) (typ ObjectType, err error) {
	switch value {
	case "commit":
		typ = CommitObject
	case "tree":
		typ = TreeObject
	case "blob":
		typ = BlobObject
	case "tag":
		typ = TagObject
	default:
		err = ErrInvalidType
	}
	return typ, err
}

// TypedObjectID pairs an object kind with the hash it addresses. Two
// TypedObjectIDs are equal only when both the kind and the hash match.
type TypedObjectID struct {
	Type ObjectType
	Hash Hash
}

// NewTypedObjectID builds a TypedObjectID from a raw type tag and a
// hash. Unknown tags are not an error: the second return value is
// false and the zero TypedObjectID is returned, so callers stay
// forward compatible with object kinds this version does not know.
func NewTypedObjectID(tag string, h Hash) (TypedObjectID, bool) {
	t, err := ParseObjectType(tag)
	if err != nil {
		return TypedObjectID{}, false
	}

	return TypedObjectID{Type: t, Hash: h}, true
}

// ID returns the hash the TypedObjectID points at, regardless of kind.
func (t TypedObjectID) ID() Hash {
	return t.Hash
}

// IsZero returns true for the zero TypedObjectID, the sentinel for an
// unknown or absent object reference.
func (t TypedObjectID) IsZero() bool {
	return t.Type == InvalidObject && t.Hash.IsZero()
}

func (t TypedObjectID) String() string {
	return t.Type.String() + " " + t.Hash.String()
}
