package diff

// Status is the closed classification of a delta. Providers express it as a
// single status character; ClassifyStatus maps every byte into exactly one
// of the values below, falling back to StatusNone for codes this version
// does not know. The fallback keeps decoding forward compatible with
// providers that introduce new codes.
type Status int8

const (
	StatusNone Status = iota
	StatusUntracked
	StatusAdded
	StatusCopied
	StatusDeleted
	StatusIgnored
	StatusModified
	StatusRenamed
	StatusTypeChange
	StatusUnreadable
)

// ClassifyStatus maps a provider status character to a Status. It is total:
// unmapped codes classify as StatusNone, never as an error.
func ClassifyStatus(code byte) Status {
	switch code {
	case 'A':
		return StatusAdded
	case 'C':
		return StatusCopied
	case 'D':
		return StatusDeleted
	case 'I':
		return StatusIgnored
	case 'M':
		return StatusModified
	case 'R':
		return StatusRenamed
	case 'T':
		return StatusTypeChange
	case 'X':
		return StatusUnreadable
	case '?':
		return StatusUntracked
	default:
		return StatusNone
	}
}

// Byte returns the status character, the inverse of ClassifyStatus for the
// known values. StatusNone renders as a space, matching short-format output.
func (s Status) Byte() byte {
	switch s {
	case StatusAdded:
		return 'A'
	case StatusCopied:
		return 'C'
	case StatusDeleted:
		return 'D'
	case StatusIgnored:
		return 'I'
	case StatusModified:
		return 'M'
	case StatusRenamed:
		return 'R'
	case StatusTypeChange:
		return 'T'
	case StatusUnreadable:
		return 'X'
	case StatusUntracked:
		return '?'
	default:
		return ' '
	}
}

func (s Status) String() string {
	switch s {
	case StatusUntracked:
		return "untracked"
	case StatusAdded:
		return "added"
	case StatusCopied:
		return "copied"
	case StatusDeleted:
		return "deleted"
	case StatusIgnored:
		return "ignored"
	case StatusModified:
		return "modified"
	case StatusRenamed:
		return "renamed"
	case StatusTypeChange:
		return "typechange"
	case StatusUnreadable:
		return "unreadable"
	default:
		return "none"
	}
}

// StatusEntry pairs the two comparison stages for a single path: the delta
// between HEAD and the index, and the delta between the index and the
// working directory. Either may be nil; an untracked path has no
// head-to-index delta, and a path staged but untouched since has no
// index-to-workdir delta.
type StatusEntry struct {
	Status         Status
	HeadToIndex    *Delta
	IndexToWorkdir *Delta
}

// RawStatusEntry is a provider-native status record for one path.
type RawStatusEntry struct {
	StatusCode     byte
	HeadToIndex    *RawDelta
	IndexToWorkdir *RawDelta
}

// StatusProvider is the external status computation: per changed path, a
// status code plus up to two raw delta records.
type StatusProvider interface {
	Len() int
	Entry(i int) (RawStatusEntry, error)
}

// NewStatusEntry decodes a raw status record. A record carrying no delta at
// all is still valid; both stages may simply be clean.
func NewStatusEntry(raw RawStatusEntry) (*StatusEntry, error) {
	entry := &StatusEntry{
		Status: ClassifyStatus(raw.StatusCode),
	}

	if raw.HeadToIndex != nil {
		delta, err := decodeDelta(*raw.HeadToIndex)
		if err != nil {
			return nil, err
		}
		entry.HeadToIndex = &delta
	}

	if raw.IndexToWorkdir != nil {
		delta, err := decodeDelta(*raw.IndexToWorkdir)
		if err != nil {
			return nil, err
		}
		entry.IndexToWorkdir = &delta
	}

	return entry, nil
}

// Path returns the path the entry describes, preferring the index-to-workdir
// stage.
func (e *StatusEntry) Path() string {
	if e.IndexToWorkdir != nil {
		return e.IndexToWorkdir.Path()
	}
	if e.HeadToIndex != nil {
		return e.HeadToIndex.Path()
	}
	return ""
}
