// Package diff models the deltas between two tree-like states of an object
// database: which paths changed, how, and the file descriptors on each side.
//
// The package does not compare trees of files itself beyond TreeDiff; its
// main job is decoding the raw delta records an external provider hands it
// into typed Delta values and classifying each one into a Status.
package diff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gitdb/gitdb/plumbing"
)

// Flag is a bitset of independent facets describing one side of a delta.
// Facets compose with | and are tested with Has; none of them excludes
// another.
type Flag uint32

const (
	// Binary marks content known to be binary.
	Binary Flag = 1 << iota
	// NotBinary marks content known not to be binary.
	NotBinary
	// ValidID marks the Hash field as filled in and trustworthy.
	ValidID
	// Exists marks the file as present on its side of the delta.
	Exists
)

// Has reports whether all bits of f are set in fl.
func (fl Flag) Has(f Flag) bool {
	return fl&f == f
}

// File describes one side of a delta: the blob at a path.
type File struct {
	Hash  plumbing.Hash
	Path  string
	Size  int64
	Flags Flag
}

// Delta is a single path's before/after description. From or To may be nil:
// an added path has no From, a deleted path has no To.
type Delta struct {
	Status Status
	Flags  Flag
	From   *File
	To     *File
}

// Path returns the path the delta describes, preferring the destination
// side.
func (d *Delta) Path() string {
	if d.To != nil {
		return d.To.Path
	}
	if d.From != nil {
		return d.From.Path
	}
	return ""
}

func (d *Delta) String() string {
	return fmt.Sprintf("<%s %s>", d.Status, d.Path())
}

// Diff is an ordered sequence of deltas, one per changed path, in the order
// the provider produced them.
type Diff []Delta

// RawFile is a provider-native file descriptor.
type RawFile struct {
	ID    plumbing.Hash
	Path  string
	Size  int64
	Flags Flag
}

// RawDelta is a provider-native delta record. OldFile or NewFile may be nil.
type RawDelta struct {
	StatusCode byte
	Flags      Flag
	OldFile    *RawFile
	NewFile    *RawFile
}

// Provider is the external diff computation this package decodes from. It
// compares two tree-like inputs elsewhere and exposes the result as a
// counted list of raw records.
type Provider interface {
	Len() int
	Delta(i int) (RawDelta, error)
}

// NewDiff decodes every record of the provider into a Diff. Decoding is
// strict: the first failing record aborts with a *plumbing.DecodeError and
// no partial Diff is returned. A provider with zero deltas yields an empty
// Diff and no error.
func NewDiff(p Provider) (Diff, error) {
	n := p.Len()
	diff := make(Diff, 0, n)

	for i := 0; i < n; i++ {
		raw, err := p.Delta(i)
		if err != nil {
			return nil, &plumbing.DecodeError{
				Field:  "delta",
				Reason: fmt.Sprintf("provider failed at record %d", i),
				Err:    err,
			}
		}

		delta, err := decodeDelta(raw)
		if err != nil {
			return nil, err
		}

		logger.Debug("decoded delta",
			zap.String("path", delta.Path()),
			zap.String("status", delta.Status.String()),
		)

		diff = append(diff, delta)
	}

	return diff, nil
}

func decodeDelta(raw RawDelta) (Delta, error) {
	if raw.OldFile == nil && raw.NewFile == nil {
		return Delta{}, &plumbing.DecodeError{
			Field:  "delta",
			Reason: "record carries neither side of the change",
		}
	}

	return Delta{
		Status: ClassifyStatus(raw.StatusCode),
		Flags:  raw.Flags,
		From:   decodeFile(raw.OldFile),
		To:     decodeFile(raw.NewFile),
	}, nil
}

func decodeFile(raw *RawFile) *File {
	if raw == nil {
		return nil
	}

	return &File{
		Hash:  raw.ID,
		Path:  raw.Path,
		Size:  raw.Size,
		Flags: raw.Flags,
	}
}
