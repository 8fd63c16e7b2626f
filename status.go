package gitdb

import (
	"fmt"
	"sort"

	"github.com/go-gitdb/gitdb/diff"
)

// Status aggregates the state of every changed path, keyed by path.
type Status map[string]*diff.StatusEntry

// NewStatus decodes every record of the provider into a Status. Records
// that resolve to an empty path are dropped; a later record for the same
// path replaces the earlier one.
func NewStatus(p diff.StatusProvider) (Status, error) {
	status := make(Status)

	for i := 0; i < p.Len(); i++ {
		raw, err := p.Entry(i)
		if err != nil {
			return nil, err
		}

		entry, err := diff.NewStatusEntry(raw)
		if err != nil {
			return nil, err
		}

		if path := entry.Path(); path != "" {
			status[path] = entry
		}
	}

	return status, nil
}

// File returns the entry for the given path, creating a clean one if the
// path has no entry yet.
func (s Status) File(path string) *diff.StatusEntry {
	if _, ok := s[path]; !ok {
		s[path] = &diff.StatusEntry{}
	}

	return s[path]
}

// IsClean reports whether no path carries a status.
func (s Status) IsClean() bool {
	for _, entry := range s {
		if entry.Status != diff.StatusNone {
			return false
		}
	}

	return true
}

// String renders the short format: one "<code> <path>" line per changed
// path, sorted by path.
func (s Status) String() string {
	var paths []string
	for path := range s {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var output string
	for _, path := range paths {
		entry := s[path]
		if entry.Status == diff.StatusNone {
			continue
		}

		output += fmt.Sprintf("%c %s\n", entry.Status.Byte(), path)
	}

	return output
}
