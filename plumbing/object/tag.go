package object

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-gitdb/gitdb/plumbing"
	"github.com/go-gitdb/gitdb/plumbing/storer"
)

// Tag represents an annotated tag object. It points to a single git object of
// any type, but tags typically are applied to commits. This is different
// from a lightweight tag, which is just a named reference and has no object
// of its own.
type Tag struct {
	// Hash of the tag.
	Hash plumbing.Hash
	// Name of the tag.
	Name string
	// Tagger is the one who created the tag.
	Tagger Signature
	// Message is an arbitrary text message.
	Message string
	// PGPSignature is the PGP signature of the tag, carried as opaque text.
	PGPSignature string
	// Target is the object the tag points at: the target's kind paired
	// with its hash. When the stored type tag is unknown to this
	// version, Target is left zero rather than failing the decode.
	Target plumbing.TypedObjectID

	s storer.EncodedObjectStorer
}

// GetTag gets a tag from an object storer and decodes it.
func GetTag(s storer.EncodedObjectStorer, h plumbing.Hash) (*Tag, error) {
	o, err := s.EncodedObject(plumbing.TagObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeTag(s, o)
}

// DecodeTag decodes an encoded object into a *Tag and associates it to the
// given object storer.
func DecodeTag(s storer.EncodedObjectStorer, o plumbing.EncodedObject) (*Tag, error) {
	t := &Tag{s: s}
	if err := t.Decode(o); err != nil {
		return nil, err
	}

	return t, nil
}

// ID returns the object ID of the tag, not the object that the tag
// references. The returned value will always match the current value of
// Tag.Hash.
//
// ID is present to fulfill the Object interface.
func (t *Tag) ID() plumbing.Hash {
	return t.Hash
}

// Type returns the type of object. It always returns plumbing.TagObject.
//
// Type is present to fulfill the Object interface.
func (t *Tag) Type() plumbing.ObjectType {
	return plumbing.TagObject
}

// Decode transforms a plumbing.EncodedObject into a Tag struct.
func (t *Tag) Decode(o plumbing.EncodedObject) (err error) {
	if o.Type() != plumbing.TagObject {
		return ErrUnsupportedObject
	}

	t.Hash = o.Hash()

	reader, err := o.Reader()
	if err != nil {
		return err
	}
	defer reader.Close()

	r := bufio.NewReader(reader)

	var target plumbing.Hash
	var targetType string
	for {
		var line []byte
		line, err = r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			break // Start of message
		}

		split := bytes.SplitN(line, []byte{' '}, 2)
		var data []byte
		if len(split) == 2 {
			data = split[1]
		}

		switch string(split[0]) {
		case "object":
			target, err = decodeHashField(plumbing.TagObject, "object", data)
			if err != nil {
				return err
			}
		case "type":
			targetType = string(data)
		case "tag":
			t.Name = string(data)
		case "tagger":
			if err := t.Tagger.Decode(data); err != nil {
				return decodeErrIn(err, plumbing.TagObject, "tagger")
			}
		}

		if err == io.EOF {
			return &plumbing.DecodeError{
				Type:   plumbing.TagObject,
				Field:  "message",
				Reason: "missing message separator",
			}
		}
	}

	// An unrecognized target type leaves Target zero; future store
	// formats may introduce kinds this version does not know.
	t.Target, _ = plumbing.NewTypedObjectID(targetType, target)

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	// A tag may hold a signature block after the message; keep it out of
	// Message and carry it verbatim.
	sigindex := bytes.Index(data, []byte(beginpgp))
	if sigindex != -1 {
		t.PGPSignature = string(data[sigindex:])
		data = data[:sigindex]
	}

	t.Message = string(data)
	return nil
}

// Encode transforms a Tag into a plumbing.EncodedObject.
func (t *Tag) Encode(o plumbing.EncodedObject) error {
	o.SetType(plumbing.TagObject)

	w, err := o.Writer()
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err = fmt.Fprintf(w,
		"object %s\ntype %s\ntag %s\ntagger ",
		t.Target.Hash.String(), t.Target.Type.Bytes(), t.Name); err != nil {
		return err
	}

	if err = t.Tagger.Encode(w); err != nil {
		return err
	}

	if _, err = fmt.Fprintf(w, "\n\n%s", t.Message); err != nil {
		return err
	}

	if t.PGPSignature != "" {
		if _, err = fmt.Fprint(w, t.PGPSignature); err != nil {
			return err
		}
	}

	return nil
}

// Object returns the object the tag points at, decoded.
func (t *Tag) Object() (Object, error) {
	o, err := t.s.EncodedObject(t.Target.Type, t.Target.Hash)
	if err != nil {
		return nil, err
	}

	return DecodeObject(t.s, o)
}

// Commit returns the commit pointed to by the tag. If the tag points to a
// different type of object ErrUnsupportedObject will be returned.
func (t *Tag) Commit() (*Commit, error) {
	if t.Target.Type != plumbing.CommitObject {
		return nil, ErrUnsupportedObject
	}

	return GetCommit(t.s, t.Target.Hash)
}

// String returns a human readable representation of the tag.
func (t *Tag) String() string {
	return fmt.Sprintf(
		"tag %s\nTagger: %s\nDate:   %s\n\n%s\n",
		t.Name, t.Tagger.String(),
		t.Tagger.When.Format(DateFormat), t.Message,
	)
}
