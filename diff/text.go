package diff

import (
	"bytes"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DoText computes the line-based chunks turning src into dst. Chunks come
// back in order; Src and Dst reassemble either side.
func DoText(src, dst string) []diffmatchpatch.Diff {
	// The default timeout of one second can truncate the diff of large
	// blobs under load, which yields wrong chunks rather than an error.
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Hour

	wSrc, wDst, warray := dmp.DiffLinesToRunes(src, dst)
	diffs := dmp.DiffMainRunes(wSrc, wDst, false)
	return dmp.DiffCharsToLines(diffs, warray)
}

// Src reassembles the source side of a chunk sequence.
func Src(diffs []diffmatchpatch.Diff) string {
	var text bytes.Buffer
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffInsert {
			text.WriteString(d.Text)
		}
	}

	return text.String()
}

// Dst reassembles the destination side of a chunk sequence.
func Dst(diffs []diffmatchpatch.Diff) string {
	var text bytes.Buffer
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffDelete {
			text.WriteString(d.Text)
		}
	}

	return text.String()
}
