package object

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/storage/memory"
)

func encodedObject(t plumbing.ObjectType, content []byte) plumbing.EncodedObject {
	o := &plumbing.MemoryObject{}
	o.SetType(t)
	o.SetSize(int64(len(content)))
	o.Write(content)

	return o
}

// storeObject saves content under the given type and returns the hash.
func storeObject(s *memory.Storage, t plumbing.ObjectType, content []byte) plumbing.Hash {
	h, err := s.SetEncodedObject(encodedObject(t, content))
	if err != nil {
		panic(err)
	}

	return h
}

type ObjectSuite struct {
	suite.Suite
	Storer *memory.Storage
}

func TestObjectSuite(t *testing.T) {
	suite.Run(t, new(ObjectSuite))
}

func (s *ObjectSuite) SetupTest() {
	s.Storer = memory.NewStorage()
}

func (s *ObjectSuite) TestDecodeObject() {
	blobHash := storeObject(s.Storer, plumbing.BlobObject, []byte("content"))

	obj, err := GetObject(s.Storer, blobHash)
	s.NoError(err)
	s.Equal(plumbing.BlobObject, obj.Type())
	s.Equal(blobHash, obj.ID())
}

func (s *ObjectSuite) TestDecodeObjectInvalid() {
	o := encodedObject(plumbing.InvalidObject, []byte("nope"))

	_, err := DecodeObject(s.Storer, o)
	s.ErrorIs(err, plumbing.ErrInvalidType)
}

type SignatureSuite struct {
	suite.Suite
}

func TestSignatureSuite(t *testing.T) {
	suite.Run(t, new(SignatureSuite))
}

func (s *SignatureSuite) TestDecode() {
	var sig Signature
	err := sig.Decode([]byte("Foo Bar <foo@example.com> 1257894000 +0100"))
	s.NoError(err)

	s.Equal("Foo Bar", sig.Name)
	s.Equal("foo@example.com", sig.Email)
	s.Equal(int64(1257894000), sig.When.Unix())

	_, offset := sig.When.Zone()
	s.Equal(3600, offset)
}

func (s *SignatureSuite) TestDecodeNegativeOffset() {
	var sig Signature
	err := sig.Decode([]byte("Foo Bar <foo@example.com> 1257894000 -0500"))
	s.NoError(err)

	_, offset := sig.When.Zone()
	s.Equal(-5*3600, offset)
}

func (s *SignatureSuite) TestDecodeMissingEmail() {
	var sig Signature
	err := sig.Decode([]byte("Foo Bar 1257894000 +0100"))

	var derr *plumbing.DecodeError
	s.ErrorAs(err, &derr)
	s.Equal("signature", derr.Field)
}

func (s *SignatureSuite) TestDecodeMissingTimestamp() {
	var sig Signature
	err := sig.Decode([]byte("Foo Bar <foo@example.com>"))

	var derr *plumbing.DecodeError
	s.ErrorAs(err, &derr)
}

func (s *SignatureSuite) TestDecodeMalformedTimestamp() {
	var sig Signature
	err := sig.Decode([]byte("Foo Bar <foo@example.com> yesterday +0100"))

	var derr *plumbing.DecodeError
	s.ErrorAs(err, &derr)
}

func (s *SignatureSuite) TestEncodeRoundTrip() {
	sig := Signature{
		Name:  "Foo Bar",
		Email: "foo@example.com",
		When:  time.Unix(1257894000, 0).In(time.FixedZone("", 3600)),
	}

	var buf bytes.Buffer
	s.NoError(sig.Encode(&buf))
	s.Equal("Foo Bar <foo@example.com> 1257894000 +0100", buf.String())

	var back Signature
	s.NoError(back.Decode(buf.Bytes()))
	s.True(sig.Equal(back))
}

func (s *SignatureSuite) TestEqualComparesOffsetNotIdentity() {
	when := time.Unix(1257894000, 0)

	a := Signature{Name: "Foo", Email: "foo@example.com", When: when.In(time.FixedZone("CET", 3600))}
	b := Signature{Name: "Foo", Email: "foo@example.com", When: when.In(time.FixedZone("custom", 3600))}
	c := Signature{Name: "Foo", Email: "foo@example.com", When: when.In(time.FixedZone("", 7200))}

	// Same offset under a different zone name is still equal.
	s.True(a.Equal(b))
	// Same instant under a different offset is not.
	s.False(a.Equal(c))
}
