// Package filemode defines the file modes recognized in git tree entries.
package filemode

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// A FileMode represents the kind of tree entries used by git. It
// resembles regular file systems modes, although FileModes are
// considerably simpler (there are not so many), and there are some,
// like Submodule that has no file system equivalent.
type FileMode uint32

const (
	// Empty is used as the FileMode of tree elements when comparing
	// trees in the following situations:
	//
	// - the mode of tree elements before their creation.
	// - the mode of tree elements after their deletion.
	// - the mode of unmerged elements when checking the index.
	//
	// Empty has no file system equivalent. As Empty is the zero value
	// of FileMode, it is also returned by New and other functions, when
	// an error occurs.
	Empty FileMode = 0

	// Dir represent a Directory.
	Dir FileMode = 0o040000

	// Regular represent non-executable files.
	Regular FileMode = 0o100644

	// Deprecated represent non-executable files with the group writable
	// bit set. This mode was supported by the first versions of git,
	// but it has been deprecated nowadays.
	Deprecated FileMode = 0o100664

	// Executable represents executable files.
	Executable FileMode = 0o100755

	// Symlink represents symbolic links to files.
	Symlink FileMode = 0o120000

	// Submodule represents git submodules. This mode has no file system
	// equivalent.
	Submodule FileMode = 0o160000
)

// New takes the octal string representation of a FileMode and returns
// the FileMode and a nil error. If the string can not be parsed to a
// 32 bit unsigned octal number, it returns Empty and an error.
//
// Example: "40000" means Dir, "100644" means Regular.
//
// Please note this function does not check if the returned FileMode
// is valid in git or if it is malformed. For instance, "1" will
// return the malformed FileMode(1) and a nil error.
func New(s string) (FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return Empty, err
	}

	return FileMode(n), nil
}

// String returns the FileMode as a string in the standardized git
// format, this is, an octal number padded with ceros to 7 digits.
// Malformed modes are printed in that same format, for easier
// debugging.
//
// Example: Regular is "0100644", Empty is "0000000".
func (m FileMode) String() string {
	return fmt.Sprintf("%07o", uint32(m))
}

// IsMalformed returns if the FileMode should not appear in a git
// repository, no matter the type of the object holding them.
func (m FileMode) IsMalformed() bool {
	return m != Empty &&
		m != Dir &&
		m != Regular &&
		m != Deprecated &&
		m != Executable &&
		m != Symlink &&
		m != Submodule
}

// IsRegular returns if the FileMode represents that of a regular file,
// this is, either Regular or Deprecated.
func (m FileMode) IsRegular() bool {
	return m == Regular ||
		m == Deprecated
}

// IsFile returns if the FileMode represents that of a file, this is,
// Regular, Deprecated, Executable or Symlink.
func (m FileMode) IsFile() bool {
	return m == Regular ||
		m == Deprecated ||
		m == Executable ||
		m == Symlink
}

// Bytes returns the 32-bit little endian binary representation of the
// FileMode.
func (m FileMode) Bytes() []byte {
	ret := make([]byte, 4)
	binary.LittleEndian.PutUint32(ret, uint32(m))
	return ret
}
