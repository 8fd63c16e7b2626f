// Package object implements the decoded object model: Commit, Tree,
// Blob and Tag values built from the raw encoded objects handed out by
// a storer.EncodedObjectStorer.
package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// ErrUnsupportedObject trigger when a non-supported object is being decoded.
var ErrUnsupportedObject = errors.New("unsupported object type")

// Object is a generic representation of any git object. It is implemented by
// Commit, Tree, Blob and Tag, and includes the functions that requires
// interacting with the object storage.
//
// Object values are immutable snapshots: they are populated exactly once by
// Decode and never mutated afterwards. Identity is the object's hash.
type Object interface {
	ID() plumbing.Hash
	Type() plumbing.ObjectType
	Decode(plumbing.EncodedObject) error
	Encode(plumbing.EncodedObject) error
}

// GetObject gets an object from an object storer and decodes it.
func GetObject(s storer.EncodedObjectStorer, h plumbing.Hash) (Object, error) {
	o, err := s.EncodedObject(plumbing.AnyObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeObject(s, o)
}

// DecodeObject decodes an encoded object into an Object and associates it to
// the given object storer.
func DecodeObject(s storer.EncodedObjectStorer, o plumbing.EncodedObject) (Object, error) {
	switch o.Type() {
	case plumbing.CommitObject:
		return DecodeCommit(s, o)
	case plumbing.TreeObject:
		return DecodeTree(s, o)
	case plumbing.BlobObject:
		return DecodeBlob(o)
	case plumbing.TagObject:
		return DecodeTag(s, o)
	default:
		return nil, plumbing.ErrInvalidType
	}
}

// DateFormat is the format being used in the original git implementation
const DateFormat = "Mon Jan 02 15:04:05 2006 -0700"

// Signature is used to identify who and when created a commit or tag.
type Signature struct {
	// Name represents a person name. It is an arbitrary string.
	Name string
	// Email is an email, but it cannot be assumed to be well-formed.
	Email string
	// When is the timestamp of the signature, including the recorded
	// UTC offset.
	When time.Time
}

// Decode decodes a byte slice into a signature. The expected shape is
// "name <email> unix-timestamp utc-offset"; malformed input fails with a
// DecodeError naming the missing piece.
func (s *Signature) Decode(b []byte) error {
	open := bytes.LastIndexByte(b, '<')
	closeb := bytes.LastIndexByte(b, '>')
	if open == -1 || closeb == -1 || open > closeb {
		return &plumbing.DecodeError{
			Field:  "signature",
			Reason: "missing email delimiters",
		}
	}

	s.Name = string(bytes.Trim(b[:open], " "))
	s.Email = string(b[open+1 : closeb])

	hasTime := closeb+2 < len(b)
	if !hasTime {
		return &plumbing.DecodeError{
			Field:  "signature",
			Reason: "missing timestamp",
		}
	}

	return s.decodeTimeAndTimeZone(b[closeb+2:])
}

// Encode encodes a Signature into a writer.
func (s *Signature) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s <%s> ", s.Name, s.Email); err != nil {
		return err
	}
	if err := s.encodeTimeAndTimeZone(w); err != nil {
		return err
	}
	return nil
}

var timeZoneLength = 5

func (s *Signature) decodeTimeAndTimeZone(b []byte) error {
	space := bytes.IndexByte(b, ' ')
	if space == -1 {
		space = len(b)
	}

	ts, err := strconv.ParseInt(string(b[:space]), 10, 64)
	if err != nil {
		return &plumbing.DecodeError{
			Field:  "signature",
			Reason: "malformed timestamp",
			Err:    err,
		}
	}

	// Include a dummy year in this time.Parse() call to avoid a bug in Go:
	// https://github.com/golang/go/issues/19750
	//
	// Parsing the timezone with no other details causes the Parse() function
	// to return a Time object with the local timezone instead of UTC.
	fakeYear := "1970 "

	tzStart := space + 1
	if tzStart >= len(b) || tzStart+timeZoneLength > len(b) {
		s.When = time.Unix(ts, 0).In(time.UTC)
		return nil
	}

	timestamp, err := time.Parse("2006 -0700", fakeYear+string(b[tzStart:tzStart+timeZoneLength]))
	if err != nil {
		s.When = time.Unix(ts, 0).In(time.UTC)
		return nil
	}

	s.When = time.Unix(ts, 0).In(timestamp.Location())
	return nil
}

func (s *Signature) encodeTimeAndTimeZone(w io.Writer) error {
	u := s.When.Unix()
	if u < 0 {
		u = 0
	}
	_, err := fmt.Fprintf(w, "%d %s", u, s.When.Format("-0700"))
	return err
}

// Equal reports whether s and other hold the same name, email and
// instant. Time zones are compared by UTC offset only.
func (s Signature) Equal(other Signature) bool {
	_, sOffset := s.When.Zone()
	_, otherOffset := other.When.Zone()

	return s.Name == other.Name &&
		s.Email == other.Email &&
		s.When.Equal(other.When) &&
		sOffset == otherOffset
}

func (s *Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}
