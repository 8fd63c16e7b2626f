package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/storage/memory"
)

type TagSuite struct {
	suite.Suite
	Storer     *memory.Storage
	CommitHash plumbing.Hash
}

func TestTagSuite(t *testing.T) {
	suite.Run(t, new(TagSuite))
}

func (s *TagSuite) SetupTest() {
	s.Storer = memory.NewStorage()

	s.CommitHash = storeObject(s.Storer, plumbing.CommitObject, []byte(
		"tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n"+
			"author A <a@example.com> 1257894000 +0000\n"+
			"committer A <a@example.com> 1257894000 +0000\n"+
			"\n"+
			"initial\n"))
}

func (s *TagSuite) rawTag(targetType string) string {
	return "object " + s.CommitHash.String() + "\n" +
		"type " + targetType + "\n" +
		"tag v1.0.0\n" +
		"tagger Foo Bar <foo@example.com> 1257894000 +0100\n" +
		"\n" +
		"release v1.0.0\n"
}

func (s *TagSuite) storeTag(raw string) *Tag {
	hash := storeObject(s.Storer, plumbing.TagObject, []byte(raw))

	tag, err := GetTag(s.Storer, hash)
	s.NoError(err)
	return tag
}

func (s *TagSuite) TestDecode() {
	tag := s.storeTag(s.rawTag("commit"))

	s.Equal("v1.0.0", tag.Name)
	s.Equal("Foo Bar", tag.Tagger.Name)
	s.Equal("foo@example.com", tag.Tagger.Email)
	s.Equal("release v1.0.0\n", tag.Message)
	s.Equal(plumbing.CommitObject, tag.Target.Type)
	s.Equal(s.CommitHash, tag.Target.Hash)
	s.Equal(plumbing.TagObject, tag.Type())
	s.Equal(tag.Hash, tag.ID())
}

func (s *TagSuite) TestCommit() {
	tag := s.storeTag(s.rawTag("commit"))

	commit, err := tag.Commit()
	s.NoError(err)
	s.Equal(s.CommitHash, commit.Hash)
}

func (s *TagSuite) TestObject() {
	tag := s.storeTag(s.rawTag("commit"))

	obj, err := tag.Object()
	s.NoError(err)
	s.Equal(plumbing.CommitObject, obj.Type())
	s.Equal(s.CommitHash, obj.ID())
}

func (s *TagSuite) TestUnknownTargetType() {
	tag := s.storeTag(s.rawTag("changeset"))

	// Unknown target kinds decode to a zero target instead of failing.
	s.True(tag.Target.IsZero())
	s.Equal("v1.0.0", tag.Name)

	_, err := tag.Commit()
	s.ErrorIs(err, ErrUnsupportedObject)
}

func (s *TagSuite) TestDecodeNonTag() {
	commit, err := s.Storer.EncodedObject(plumbing.AnyObject, s.CommitHash)
	s.NoError(err)

	tag := &Tag{}
	s.ErrorIs(tag.Decode(commit), ErrUnsupportedObject)
}

func (s *TagSuite) TestDecodeMalformedObjectHash() {
	raw := strings.Replace(s.rawTag("commit"),
		"object "+s.CommitHash.String(), "object zzz", 1)

	tag := &Tag{}
	err := tag.Decode(encodedObject(plumbing.TagObject, []byte(raw)))

	var derr *plumbing.DecodeError
	s.ErrorAs(err, &derr)
	s.Equal("object", derr.Field)
}

func (s *TagSuite) TestDecodeMissingMessageSeparator() {
	raw := "object " + s.CommitHash.String() + "\n" +
		"type commit\n" +
		"tag v1.0.0\n" +
		"tagger Foo Bar <foo@example.com> 1257894000 +0100\n"

	tag := &Tag{}
	err := tag.Decode(encodedObject(plumbing.TagObject, []byte(raw)))

	var derr *plumbing.DecodeError
	s.ErrorAs(err, &derr)
	s.Equal("message", derr.Field)
}

func (s *TagSuite) TestPGPSignature() {
	pgpsignature := `-----BEGIN PGP SIGNATURE-----

iQEcBAABAgAGBQJTZbQlAAoJEF0+sviABDDrZbQH/09PfE51KPVPlanr6q1v4/Ut
=EFTF
-----END PGP SIGNATURE-----
`

	tag := s.storeTag(s.rawTag("commit") + pgpsignature)

	s.Equal("release v1.0.0\n", tag.Message)
	s.Equal(pgpsignature, tag.PGPSignature)
}

func (s *TagSuite) TestEncodeRoundTrip() {
	tag := s.storeTag(s.rawTag("commit"))

	o := &plumbing.MemoryObject{}
	s.NoError(tag.Encode(o))
	s.Equal(tag.Hash, o.Hash())

	back, err := DecodeTag(s.Storer, o)
	s.NoError(err)
	s.Equal(tag.Name, back.Name)
	s.Equal(tag.Target, back.Target)
	s.Equal(tag.Message, back.Message)
	s.True(tag.Tagger.Equal(back.Tagger))
}

func (s *TagSuite) TestString() {
	tag := s.storeTag(s.rawTag("commit"))

	str := tag.String()
	s.Contains(str, "tag v1.0.0")
	s.Contains(str, "Tagger: Foo Bar <foo@example.com>")
	s.Contains(str, "release v1.0.0")
}
